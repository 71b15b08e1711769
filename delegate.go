package grip

// Delegate receives lifecycle notifications for one target. Widgets
// implement it to update their own visual model.
//
// Embed NopDelegate to implement only the methods you need, or use
// DelegateFuncs to supply individual callbacks.
type Delegate interface {
	DragDidStart(target Target, ray Ray)
	DragDidUpdate(target Target, ray Ray)
	DragDidEnd(target Target, ray Ray)
	DragCancelled(target Target)
	CollisionDidUpdate(target Target, collided bool)
	TouchUpInsideComplete(target Target, ray Ray)
	TouchUpInsideFail(target Target, ray Ray)
}

// NopDelegate implements every Delegate method as a no-op.
type NopDelegate struct{}

func (NopDelegate) DragDidStart(Target, Ray)          {}
func (NopDelegate) DragDidUpdate(Target, Ray)         {}
func (NopDelegate) DragDidEnd(Target, Ray)            {}
func (NopDelegate) DragCancelled(Target)              {}
func (NopDelegate) CollisionDidUpdate(Target, bool)   {}
func (NopDelegate) TouchUpInsideComplete(Target, Ray) {}
func (NopDelegate) TouchUpInsideFail(Target, Ray)     {}

// DelegateFuncs is a Delegate built from optional callbacks. Nil fields are
// skipped (zero cost when unused).
type DelegateFuncs struct {
	OnDragStart     func(Target, Ray)
	OnDragUpdate    func(Target, Ray)
	OnDragEnd       func(Target, Ray)
	OnDragCancel    func(Target)
	OnCollision     func(Target, bool)
	OnTouchUpInside func(Target, Ray)
	OnTouchUpFail   func(Target, Ray)
}

func (d DelegateFuncs) DragDidStart(t Target, r Ray) {
	if d.OnDragStart != nil {
		d.OnDragStart(t, r)
	}
}

func (d DelegateFuncs) DragDidUpdate(t Target, r Ray) {
	if d.OnDragUpdate != nil {
		d.OnDragUpdate(t, r)
	}
}

func (d DelegateFuncs) DragDidEnd(t Target, r Ray) {
	if d.OnDragEnd != nil {
		d.OnDragEnd(t, r)
	}
}

func (d DelegateFuncs) DragCancelled(t Target) {
	if d.OnDragCancel != nil {
		d.OnDragCancel(t)
	}
}

func (d DelegateFuncs) CollisionDidUpdate(t Target, collided bool) {
	if d.OnCollision != nil {
		d.OnCollision(t, collided)
	}
}

func (d DelegateFuncs) TouchUpInsideComplete(t Target, r Ray) {
	if d.OnTouchUpInside != nil {
		d.OnTouchUpInside(t, r)
	}
}

func (d DelegateFuncs) TouchUpInsideFail(t Target, r Ray) {
	if d.OnTouchUpFail != nil {
		d.OnTouchUpFail(t, r)
	}
}
