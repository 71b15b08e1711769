package grip

import (
	"github.com/go-gl/mathgl/mgl32"
)

// --- Handler registry ---

type eventHandler struct {
	id uint32
	fn func(InteractionEvent)
}

type handlerRegistry struct {
	byType [numEventTypes][]eventHandler
	nextID uint32
}

// CallbackHandle allows removing a registered controller-level listener.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this listener so it no longer fires.
// The entry is removed from the slice to avoid nil iteration waste.
func (h CallbackHandle) Remove() {
	if h.reg == nil || h.event >= numEventTypes {
		return
	}
	s := h.reg.byType[h.event]
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = eventHandler{}
			h.reg.byType[h.event] = s[:len(s)-1]
			return
		}
	}
}

// --- Bindings ---

type binding struct {
	target   Target
	typ      InteractionType
	delegate Delegate
	state    *dragState // nil while idle
}

// Handle is returned by Attach and refers to one attachment of a target.
// After the target is re-attached or detached, the old Handle goes stale and
// its mutating methods do nothing.
type Handle struct {
	c *Controller
	b *binding
}

// Target returns the attached target.
func (h *Handle) Target() Target { return h.b.target }

// Type returns the interaction type chosen at attach time.
func (h *Handle) Type() InteractionType { return h.b.typ }

// Dragging reports whether an interaction is in progress.
func (h *Handle) Dragging() bool { return h.live() && h.b.state != nil }

// SetDelegate replaces the delegate. nil silences per-target notifications.
func (h *Handle) SetDelegate(d Delegate) {
	if h.live() {
		h.b.delegate = d
	}
}

// Detach removes the attachment. An interaction in progress is cancelled
// first, with the usual notification.
func (h *Handle) Detach() {
	if h.live() {
		h.c.Detach(h.b.target)
	}
}

func (h *Handle) live() bool {
	return h.c != nil && h.c.bindings[h.b.target] == h.b
}

// --- Controller ---

// Controller is the drag state machine. It owns one optional dragState per
// attached target and turns host-supplied rays into position, orientation
// and click updates.
//
// Controller is not safe for concurrent use. The host must not call two entry
// points concurrently for the same target.
type Controller struct {
	host     Host
	bindings map[Target]*binding
	handlers handlerRegistry
	store    EntityStore
	debug    bool
}

// NewController creates a controller that reads and writes targets through
// host. Panics if host is nil.
func NewController(host Host) *Controller {
	if host == nil {
		panic("grip: nil host")
	}
	return &Controller{
		host:     host,
		bindings: make(map[Target]*binding),
	}
}

// Host returns the collaborator passed to NewController.
func (c *Controller) Host() Host {
	return c.host
}

// SetEntityStore sets the optional ECS bridge.
func (c *Controller) SetEntityStore(store EntityStore) {
	c.store = store
}

// SetDebugMode enables or disables debug logging of refused starts, skipped
// updates and overwritten drags to stderr.
func (c *Controller) SetDebugMode(enabled bool) {
	c.debug = enabled
	globalDebug = enabled
}

// On registers a controller-level listener for one event type. Listeners
// run before the target's delegate.
func (c *Controller) On(event EventType, fn func(InteractionEvent)) CallbackHandle {
	if event >= numEventTypes || fn == nil {
		return CallbackHandle{}
	}
	c.handlers.nextID++
	id := c.handlers.nextID
	c.handlers.byType[event] = append(c.handlers.byType[event], eventHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &c.handlers, event: event}
}

// OnAny registers fn for every event type. The returned handles remove the
// individual registrations.
func (c *Controller) OnAny(fn func(InteractionEvent)) []CallbackHandle {
	handles := make([]CallbackHandle, 0, numEventTypes)
	for e := EventType(0); e < numEventTypes; e++ {
		handles = append(handles, c.On(e, fn))
	}
	return handles
}

// Attach configures target with an interaction type and an optional
// delegate. No transient state is created. Attaching an already attached
// target replaces its configuration and silently drops any live drag.
// Panics if target is NoTarget.
func (c *Controller) Attach(target Target, typ InteractionType, d Delegate) *Handle {
	if target == NoTarget {
		panic("grip: cannot attach NoTarget")
	}
	if old := c.bindings[target]; old != nil && old.state != nil {
		c.debugf("attach on target %d drops active %s drag", target, old.state.kind)
	}
	b := &binding{target: target, typ: typ, delegate: d}
	c.bindings[target] = b
	return &Handle{c: c, b: b}
}

// Detach forgets target. An interaction in progress is cancelled first.
func (c *Controller) Detach(target Target) {
	if _, ok := c.bindings[target]; !ok {
		return
	}
	c.DragCancelled(target)
	delete(c.bindings, target)
}

// Attached reports whether target has a configuration.
func (c *Controller) Attached(target Target) bool {
	_, ok := c.bindings[target]
	return ok
}

// Dragging reports whether target has an interaction in progress.
func (c *Controller) Dragging(target Target) bool {
	b := c.bindings[target]
	return b != nil && b.state != nil
}

// NumAttached returns the number of attached targets.
func (c *Controller) NumAttached() int {
	return len(c.bindings)
}

// --- Entry points ---

// DragStarted begins an interaction on target from ray. It reports false,
// leaving target idle, when target is not attached or when a turn's ray runs
// parallel to its reference plane. Starting while a drag is active replaces
// the old state without ending it.
func (c *Controller) DragStarted(target Target, ray Ray) bool {
	b := c.bindings[target]
	if b == nil {
		c.debugf("drag start on unattached target %d", target)
		return false
	}

	var st *dragState
	switch b.typ.kind {
	case KindMove:
		st = &dragState{
			kind:            KindMove,
			pointOfInterest: c.host.Convert(target, ray.End(), SpaceWorld, SpaceLocal),
			distance:        ray.Direction.Len(),
		}
	case KindTurn:
		plane, ok := c.turnPlane(target, b.typ.axis)
		if !ok {
			c.debugf("turn start refused on target %d: zero axis", target)
			return false
		}
		hit, ok := FindPointOnPlane(convertRay(c.host, target, ray, SpaceWorld, SpaceParent), plane)
		if !ok {
			c.debugf("turn start refused on target %d: ray parallel to reference plane", target)
			return false
		}
		st = &dragState{
			kind:      KindTurn,
			plane:     plane,
			lastPoint: hit.Sub(plane.Col(3).Vec3()),
		}
	case KindClick:
		st = &dragState{kind: KindClick, collided: true}
	default:
		return false
	}

	if b.state != nil {
		c.debugf("drag start on target %d overwrites active %s drag", target, b.state.kind)
	}
	b.state = st
	c.fire(b, InteractionEvent{Type: EventDragStart, Ray: ray})
	return true
}

// DragUpdated feeds a new ray sample to target's interaction. hasCollided
// is the host's hit-test result for click interactions and is ignored by the
// others. No-op when target is idle. A DragUpdate notification is sent for
// every call on an active target, even when the geometry did not advance.
func (c *Controller) DragUpdated(target Target, ray Ray, hasCollided bool) {
	b := c.bindings[target]
	if b == nil || b.state == nil {
		return
	}
	st := b.state
	ev := InteractionEvent{Type: EventDragUpdate, Ray: ray}

	switch st.kind {
	case KindMove:
		dir, ok := safeNormalize(ray.Direction)
		if !ok {
			c.debugf("move update on target %d skipped: zero-length ray", target)
			break
		}
		touch := ray.Origin.Add(dir.Mul(st.distance))
		local := c.host.Convert(target, touch, SpaceWorld, SpaceLocal)
		delta := c.host.Convert(target, local, SpaceLocal, SpaceParent).
			Sub(c.host.Convert(target, st.pointOfInterest, SpaceLocal, SpaceParent))
		pos := applyConstraint(b.typ.constraint, c.host.Position(target).Add(delta))
		c.host.SetPosition(target, pos)
		ev.Ray = Ray{Origin: ray.Origin, Direction: dir.Mul(st.distance)}

	case KindTurn:
		hit, ok := FindPointOnPlane(convertRay(c.host, target, ray, SpaceWorld, SpaceParent), st.plane)
		if !ok {
			c.debugf("turn update on target %d skipped: ray parallel to reference plane", target)
			break
		}
		next := hit.Sub(st.pivot())
		if angle, ok := SignedAngle(st.lastPoint, next, st.axis()); ok {
			axis, _ := safeNormalize(b.typ.axis)
			q := c.host.Orientation(target).Mul(mgl32.QuatRotate(angle, axis)).Normalize()
			c.host.SetOrientation(target, q)
			st.lastPoint = next
			ev.Angle = angle
		}
		worldHit := c.host.Convert(target, hit, SpaceParent, SpaceWorld)
		ev.Ray = ray.Rescaled(worldHit.Sub(ray.Origin).Len())

	case KindClick:
		if hasCollided != st.collided {
			st.collided = hasCollided
			c.fire(b, InteractionEvent{Type: EventCollisionUpdate, Collided: hasCollided})
		}
		ev.Collided = st.collided
	}

	c.fire(b, ev)
}

// DragEnded finishes target's interaction. Move and turn results were
// already applied by the updates; a click reports whether it was released
// over the target. No-op when target is idle.
func (c *Controller) DragEnded(target Target, ray Ray) {
	b := c.bindings[target]
	if b == nil || b.state == nil {
		return
	}
	st := b.state
	b.state = nil

	out := ray
	switch st.kind {
	case KindMove:
		out = ray.Rescaled(st.distance)
	case KindClick:
		if st.collided {
			c.fire(b, InteractionEvent{Type: EventTouchUpInside, Ray: ray, Collided: true})
		} else {
			c.fire(b, InteractionEvent{Type: EventTouchUpOutside, Ray: ray})
		}
		c.fire(b, InteractionEvent{Type: EventCollisionUpdate, Collided: false})
	}

	c.fire(b, InteractionEvent{Type: EventDragEnd, Ray: out, Collided: st.collided})
}

// DragCancelled abandons target's interaction. Position and orientation
// changes already applied by earlier updates are kept. No-op when target is
// idle.
func (c *Controller) DragCancelled(target Target) {
	b := c.bindings[target]
	if b == nil || b.state == nil {
		return
	}
	b.state = nil
	c.fire(b, InteractionEvent{Type: EventDragCancel})
}

// turnPlane builds the reference plane for a turn on target: the local axis
// carried into parent space and the plane moved to the target's position.
func (c *Controller) turnPlane(target Target, localAxis mgl32.Vec3) (mgl32.Mat4, bool) {
	axis, ok := safeNormalize(localAxis)
	if !ok {
		return mgl32.Mat4{}, false
	}
	parentAxis, ok := safeNormalize(c.host.Orientation(target).Rotate(axis))
	if !ok {
		return mgl32.Mat4{}, false
	}
	return withTranslation(TurnReferencePlane(parentAxis), c.host.Position(target)), true
}

// --- Event dispatch ---

// fire completes ev with the target's current transform and delivers it:
// controller-level listeners first, then the delegate, then the ECS bridge.
func (c *Controller) fire(b *binding, ev InteractionEvent) {
	ev.Target = b.target
	ev.Kind = b.typ.kind
	ev.Position = c.host.Position(b.target)
	ev.Orientation = c.host.Orientation(b.target)

	for _, h := range c.handlers.byType[ev.Type] {
		h.fn(ev)
	}

	if d := b.delegate; d != nil {
		switch ev.Type {
		case EventDragStart:
			d.DragDidStart(ev.Target, ev.Ray)
		case EventDragUpdate:
			d.DragDidUpdate(ev.Target, ev.Ray)
		case EventDragEnd:
			d.DragDidEnd(ev.Target, ev.Ray)
		case EventDragCancel:
			d.DragCancelled(ev.Target)
		case EventCollisionUpdate:
			d.CollisionDidUpdate(ev.Target, ev.Collided)
		case EventTouchUpInside:
			d.TouchUpInsideComplete(ev.Target, ev.Ray)
		case EventTouchUpOutside:
			d.TouchUpInsideFail(ev.Target, ev.Ray)
		}
	}

	if c.store != nil {
		c.store.EmitEvent(ev)
	}
}
