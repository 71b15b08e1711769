package grip

import "github.com/go-gl/mathgl/mgl32"

// Target identifies the object receiving pointer-driven updates. Values are
// opaque to the controller; hosts hand them out and resolve them.
type Target uint64

// NoTarget is the zero Target. Hosts never hand it out.
const NoTarget Target = 0

// Ray is a world-space origin plus a direction used for intersection.
//
// Direction is NOT normalized. For move interactions its magnitude is the
// distance from the viewer to the touched point, and callers must carry that
// magnitude between calls. Helpers in this package never normalize a Ray in
// place.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// At returns the point origin + t*normalize(direction).
func (r Ray) At(t float32) mgl32.Vec3 {
	dir, ok := safeNormalize(r.Direction)
	if !ok {
		return r.Origin
	}
	return r.Origin.Add(dir.Mul(t))
}

// Rescaled returns a copy of r whose direction has the given length. A
// zero-length direction is returned unchanged.
func (r Ray) Rescaled(length float32) Ray {
	dir, ok := safeNormalize(r.Direction)
	if !ok {
		return r
	}
	return Ray{Origin: r.Origin, Direction: dir.Mul(length)}
}

// End returns origin + direction, the point the ray's magnitude refers to.
func (r Ray) End() mgl32.Vec3 {
	return r.Origin.Add(r.Direction)
}

// Space names a coordinate frame relative to a Target.
type Space uint8

const (
	SpaceWorld  Space = iota // scene root frame
	SpaceParent              // frame the target's Position and Orientation are expressed in
	SpaceLocal               // the target's own frame
)

// String returns the space name.
func (s Space) String() string {
	switch s {
	case SpaceWorld:
		return "world"
	case SpaceParent:
		return "parent"
	case SpaceLocal:
		return "local"
	default:
		return "unknown"
	}
}

// EventType identifies a kind of interaction notification.
type EventType uint8

const (
	EventDragStart       EventType = iota // an interaction began
	EventDragUpdate                       // fires on every update while dragging
	EventDragEnd                          // the pointer was released
	EventDragCancel                       // the host cancelled the interaction
	EventCollisionUpdate                  // a click's pointer moved on or off the target
	EventTouchUpInside                    // click released while over the target
	EventTouchUpOutside                   // click released away from the target

	numEventTypes
)

// String returns the event name used in logs and CLI output.
func (e EventType) String() string {
	switch e {
	case EventDragStart:
		return "drag-start"
	case EventDragUpdate:
		return "drag-update"
	case EventDragEnd:
		return "drag-end"
	case EventDragCancel:
		return "drag-cancel"
	case EventCollisionUpdate:
		return "collision-update"
	case EventTouchUpInside:
		return "touch-up-inside"
	case EventTouchUpOutside:
		return "touch-up-outside"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so events print by name.
func (e EventType) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}
