package grip

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestConstraintApply(t *testing.T) {
	snapX := func(p mgl32.Vec3) mgl32.Vec3 { return mgl32.Vec3{p[0], 0, 0} }

	tests := []struct {
		name string
		c    MoveConstraint
		in   mgl32.Vec3
		want mgl32.Vec3
	}{
		{"nil", nil, mgl32.Vec3{1, 2, 3}, mgl32.Vec3{1, 2, 3}},
		{"box inside", Box(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1}), mgl32.Vec3{0.5, 0, 0}, mgl32.Vec3{0.5, 0, 0}},
		{"box clamps", Box(mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{1, 0, 0}), mgl32.Vec3{3, 2, -1}, mgl32.Vec3{1, 0, 0}},
		{"points snap", Points(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{2, 0, 0}), mgl32.Vec3{1.4, 0.3, 0}, mgl32.Vec3{1, 0, 0}},
		{"points empty", Points(), mgl32.Vec3{7, 7, 7}, mgl32.Vec3{7, 7, 7}},
		{"clamp func", Clamp(snapX), mgl32.Vec3{4, 5, 6}, mgl32.Vec3{4, 0, 0}},
		{"clamp nil func", Clamp(nil), mgl32.Vec3{4, 5, 6}, mgl32.Vec3{4, 5, 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertVec(t, "applyConstraint", applyConstraint(tt.c, tt.in), tt.want)
		})
	}
}

func TestBoxContains(t *testing.T) {
	b := Box(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 2, 3})
	tests := []struct {
		name string
		p    mgl32.Vec3
		want bool
	}{
		{"inside", mgl32.Vec3{0.5, 1, 1}, true},
		{"corner", mgl32.Vec3{1, 2, 3}, true},
		{"face", mgl32.Vec3{0, 1, 1}, true},
		{"outside x", mgl32.Vec3{-0.1, 1, 1}, false},
		{"outside z", mgl32.Vec3{0.5, 1, 3.1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestInteractionTypeString(t *testing.T) {
	tests := []struct {
		typ  InteractionType
		want string
	}{
		{Move(nil), "move"},
		{Move(Box(mgl32.Vec3{}, mgl32.Vec3{1, 1, 1})), "move(box)"},
		{Move(Points(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0})), "move(points[2])"},
		{Move(Clamp(nil)), "move(clamp)"},
		{Turn(mgl32.Vec3{0, 0, 1}), "turn(0,0,1)"},
		{Click(), "click"},
		{InteractionType{}, "move"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
