package grip

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// --- computeLocalMatrix ---

func TestLocalMatrixIdentity(t *testing.T) {
	n := NewNode("test")
	if got := n.LocalMatrix(); got != mgl32.Ident4() {
		t.Errorf("LocalMatrix = %v, want identity", got)
	}
}

func TestLocalMatrixComposition(t *testing.T) {
	n := NewNode("test")
	n.Position = mgl32.Vec3{10, 0, 0}
	n.Orientation = mgl32.QuatRotate(math.Pi/2, mgl32.Vec3{0, 0, 1})
	n.Scale = mgl32.Vec3{2, 2, 2}

	// Scale, then rotate, then translate.
	got := transformPoint(computeLocalMatrix(n), mgl32.Vec3{1, 0, 0})
	assertVec(t, "S->R->T", got, mgl32.Vec3{10, 2, 0})
}

func TestInvertMatrixSingular(t *testing.T) {
	if got := invertMatrix(mgl32.Scale3D(0, 1, 1)); got != mgl32.Ident4() {
		t.Errorf("singular inverse = %v, want identity", got)
	}
}

// --- World matrix / dirty propagation ---

func TestWorldMatrixParentChild(t *testing.T) {
	parent := NewNode("parent")
	child := NewNode("child")
	parent.AddChild(child)

	parent.SetPosition(mgl32.Vec3{100, 0, 0})
	child.SetPosition(mgl32.Vec3{10, 0, 0})

	assertVec(t, "child world", child.WorldPosition(), mgl32.Vec3{110, 0, 0})
}

func TestDirtyFlagSkipsClean(t *testing.T) {
	n := NewNode("n")
	n.SetPosition(mgl32.Vec3{5, 0, 0})
	_ = n.WorldMatrix()

	n.Position = mgl32.Vec3{999, 0, 0} // dirty flag NOT set
	assertVec(t, "stale", n.WorldPosition(), mgl32.Vec3{5, 0, 0})

	n.MarkDirty()
	assertVec(t, "refreshed", n.WorldPosition(), mgl32.Vec3{999, 0, 0})
}

func TestParentChangePropagates(t *testing.T) {
	parent := NewNode("parent")
	child := NewNode("child")
	parent.AddChild(child)
	child.SetPosition(mgl32.Vec3{10, 0, 0})
	_ = child.WorldMatrix()

	parent.SetPosition(mgl32.Vec3{200, 0, 0})
	assertVec(t, "child world", child.WorldPosition(), mgl32.Vec3{210, 0, 0})
}

func TestWorldToLocalRoundtrip(t *testing.T) {
	parent := NewNode("parent")
	child := NewNode("child")
	parent.AddChild(child)

	parent.SetPosition(mgl32.Vec3{100, 50, -3})
	parent.SetOrientation(mgl32.QuatRotate(0.7, mgl32.Vec3{1, 1, 0}.Normalize()))
	child.SetPosition(mgl32.Vec3{10, 20, 0})
	child.SetScale(mgl32.Vec3{2, 3, 1})
	child.SetOrientation(mgl32.QuatRotate(math.Pi/6, mgl32.Vec3{0, 0, 1}))

	w := mgl32.Vec3{150, 80, 4}
	back := child.LocalToWorld(child.WorldToLocal(w))
	assertVec(t, "roundtrip", back, w)
}

func TestDeepHierarchy(t *testing.T) {
	nodes := make([]*Node, 10)
	for i := range nodes {
		nodes[i] = NewNode("")
		nodes[i].SetPosition(mgl32.Vec3{10, 0, 0})
		if i > 0 {
			nodes[i-1].AddChild(nodes[i])
		}
	}
	assertVec(t, "leaf", nodes[9].WorldPosition(), mgl32.Vec3{100, 0, 0})
}

// --- Graph.Convert ---

func TestConvertSpaces(t *testing.T) {
	g := NewGraph()
	parent := NewNode("parent")
	parent.SetPosition(mgl32.Vec3{5, 0, 0})
	parent.SetScale(mgl32.Vec3{2, 2, 2})
	g.Root().AddChild(parent)
	child := NewNode("child")
	child.SetPosition(mgl32.Vec3{1, 0, 0})
	child.SetOrientation(mgl32.QuatRotate(math.Pi/2, mgl32.Vec3{0, 0, 1}))
	parent.AddChild(child)

	// child local +X points along parent +Y; child origin sits at world (7,0,0).
	tests := []struct {
		name     string
		p        mgl32.Vec3
		from, to Space
		want     mgl32.Vec3
	}{
		{"same space", mgl32.Vec3{1, 2, 3}, SpaceLocal, SpaceLocal, mgl32.Vec3{1, 2, 3}},
		{"local to parent", mgl32.Vec3{1, 0, 0}, SpaceLocal, SpaceParent, mgl32.Vec3{1, 1, 0}},
		{"local to world", mgl32.Vec3{1, 0, 0}, SpaceLocal, SpaceWorld, mgl32.Vec3{7, 2, 0}},
		{"world to local", mgl32.Vec3{7, 0, 0}, SpaceWorld, SpaceLocal, mgl32.Vec3{}},
		{"world to parent", mgl32.Vec3{9, 0, 0}, SpaceWorld, SpaceParent, mgl32.Vec3{2, 0, 0}},
		{"parent to world", mgl32.Vec3{0, 1, 0}, SpaceParent, SpaceWorld, mgl32.Vec3{5, 2, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertVec(t, "Convert", g.Convert(child.ID, tt.p, tt.from, tt.to), tt.want)
		})
	}
}

func TestConvertRayKeepsFrameScale(t *testing.T) {
	g := NewGraph()
	parent := NewNode("parent")
	parent.SetScale(mgl32.Vec3{2, 2, 2})
	g.Root().AddChild(parent)
	child := NewNode("child")
	parent.AddChild(child)

	r := Ray{Origin: mgl32.Vec3{0, 0, 10}, Direction: mgl32.Vec3{0, 0, -10}}
	got := convertRay(g, child.ID, r, SpaceWorld, SpaceParent)
	assertVec(t, "origin", got.Origin, mgl32.Vec3{0, 0, 5})
	assertVec(t, "direction", got.Direction, mgl32.Vec3{0, 0, -5})
}
