package grip

import "github.com/go-gl/mathgl/mgl32"

// MoveConstraint limits where a moved target may end up. Positions passed in
// and returned are in the target's parent space.
//
// The set of constraints is closed: BoxConstraint, PointsConstraint and
// ClampConstraint. A nil MoveConstraint leaves positions unchanged.
type MoveConstraint interface {
	Apply(p mgl32.Vec3) mgl32.Vec3
	isMoveConstraint()
}

// BoxConstraint clamps each component into [Min, Max].
type BoxConstraint struct {
	Min, Max mgl32.Vec3
}

// Apply clamps p into the box.
func (b BoxConstraint) Apply(p mgl32.Vec3) mgl32.Vec3 {
	return ClampBox(b.Min, b.Max, p)
}

// Contains reports whether p lies inside the box. Points on a face count as
// inside.
func (b BoxConstraint) Contains(p mgl32.Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

func (BoxConstraint) isMoveConstraint() {}

// PointsConstraint snaps to the nearest of a fixed set of points. An empty
// set leaves positions unchanged.
type PointsConstraint struct {
	Points []mgl32.Vec3
}

// Apply returns the point nearest to p.
func (c PointsConstraint) Apply(p mgl32.Vec3) mgl32.Vec3 {
	return ClosestPoint(p, c.Points)
}

func (PointsConstraint) isMoveConstraint() {}

// ClampFunc projects a candidate position onto an allowed one.
type ClampFunc func(mgl32.Vec3) mgl32.Vec3

// ClampConstraint hands every candidate position to Fn. A nil Fn leaves
// positions unchanged.
type ClampConstraint struct {
	Fn ClampFunc
}

// Apply returns Fn(p).
func (c ClampConstraint) Apply(p mgl32.Vec3) mgl32.Vec3 {
	if c.Fn == nil {
		return p
	}
	return c.Fn(p)
}

func (ClampConstraint) isMoveConstraint() {}

// Box is shorthand for BoxConstraint{Min: lo, Max: hi}.
func Box(lo, hi mgl32.Vec3) BoxConstraint {
	return BoxConstraint{Min: lo, Max: hi}
}

// Points is shorthand for PointsConstraint{Points: pts}.
func Points(pts ...mgl32.Vec3) PointsConstraint {
	return PointsConstraint{Points: pts}
}

// Clamp is shorthand for ClampConstraint{Fn: fn}.
func Clamp(fn ClampFunc) ClampConstraint {
	return ClampConstraint{Fn: fn}
}

// applyConstraint runs c on p, treating nil as identity.
func applyConstraint(c MoveConstraint, p mgl32.Vec3) mgl32.Vec3 {
	if c == nil {
		return p
	}
	return c.Apply(p)
}
