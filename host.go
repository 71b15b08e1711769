package grip

import "github.com/go-gl/mathgl/mgl32"

// Host is the engine-side collaborator the controller reads and writes
// targets through. Graph is an in-memory implementation; ecs.Host adapts a
// Donburi world.
//
// Position and Orientation are expressed in the target's parent space.
// Implementations should treat unknown targets as identity transforms
// rather than panicking.
type Host interface {
	// Convert maps point p from one of target's spaces to another.
	Convert(target Target, p mgl32.Vec3, from, to Space) mgl32.Vec3
	Position(target Target) mgl32.Vec3
	SetPosition(target Target, p mgl32.Vec3)
	Orientation(target Target) mgl32.Quat
	SetOrientation(target Target, q mgl32.Quat)
}

// convertRay maps a ray between spaces by converting its origin and end
// point, so the direction keeps whatever scale the frames apply.
func convertRay(h Host, target Target, r Ray, from, to Space) Ray {
	o := h.Convert(target, r.Origin, from, to)
	e := h.Convert(target, r.End(), from, to)
	return Ray{Origin: o, Direction: e.Sub(o)}
}

// EntityStore is the interface for optional ECS integration.
// When set on a Controller, every interaction event is forwarded to it.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries one notification for listeners and the ECS bridge.
type InteractionEvent struct {
	Type   EventType
	Target Target
	Kind   InteractionKind
	// Ray is the output ray reported to the delegate. Zero for
	// EventDragCancel and EventCollisionUpdate.
	Ray Ray
	// Collided is the click collision flag (EventCollisionUpdate and the
	// touch-up events).
	Collided bool
	// Position and Orientation are the target's transform after the
	// update was applied.
	Position    mgl32.Vec3
	Orientation mgl32.Quat
	// Angle is the signed rotation applied by this turn update, if any.
	Angle float32
}
