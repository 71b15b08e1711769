package grip

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// InteractionKind selects how a target reacts to a drag.
type InteractionKind uint8

const (
	KindMove  InteractionKind = iota // translate, optionally constrained
	KindTurn                         // rotate about an axis
	KindClick                        // press/release with collision tracking
)

// String returns the kind name.
func (k InteractionKind) String() string {
	switch k {
	case KindMove:
		return "move"
	case KindTurn:
		return "turn"
	case KindClick:
		return "click"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k InteractionKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// InteractionType is the per-target configuration chosen at attach time.
// Build one with Move, Turn or Click. The zero value is an unconstrained move.
type InteractionType struct {
	kind       InteractionKind
	constraint MoveConstraint
	axis       mgl32.Vec3
}

// Move configures a translating interaction. c may be nil.
func Move(c MoveConstraint) InteractionType {
	return InteractionType{kind: KindMove, constraint: c}
}

// Turn configures a rotation about axis, expressed in the target's local
// space. The axis does not need to be normalized.
func Turn(axis mgl32.Vec3) InteractionType {
	return InteractionType{kind: KindTurn, axis: axis}
}

// Click configures a press/release interaction.
func Click() InteractionType {
	return InteractionType{kind: KindClick}
}

// Kind returns the interaction kind.
func (t InteractionType) Kind() InteractionKind { return t.kind }

// Constraint returns the move constraint, or nil.
func (t InteractionType) Constraint() MoveConstraint { return t.constraint }

// Axis returns the turn axis as configured (not normalized).
func (t InteractionType) Axis() mgl32.Vec3 { return t.axis }

// String describes the type, e.g. "turn(0,0,1)".
func (t InteractionType) String() string {
	switch t.kind {
	case KindTurn:
		return fmt.Sprintf("turn(%g,%g,%g)", t.axis[0], t.axis[1], t.axis[2])
	case KindMove:
		switch c := t.constraint.(type) {
		case BoxConstraint:
			return "move(box)"
		case PointsConstraint:
			return fmt.Sprintf("move(points[%d])", len(c.Points))
		case ClampConstraint:
			return "move(clamp)"
		}
		return "move"
	default:
		return t.kind.String()
	}
}

// --- Transient state ---

// dragState lives for one press-to-release cycle of a single target. Only
// the fields for kind are meaningful.
type dragState struct {
	kind InteractionKind

	// move
	pointOfInterest mgl32.Vec3 // target-local touch point
	distance        float32    // fixed |ray.Direction| from the start ray

	// turn
	plane     mgl32.Mat4 // parent space, translated to the pivot
	lastPoint mgl32.Vec3 // last intersection relative to the pivot

	// click
	collided bool
}

// axis returns the plane normal of a turn state.
func (s *dragState) axis() mgl32.Vec3 {
	return s.plane.Col(2).Vec3()
}

// pivot returns the plane origin of a turn state.
func (s *dragState) pivot() mgl32.Vec3 {
	return s.plane.Col(3).Vec3()
}
