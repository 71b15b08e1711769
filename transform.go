package grip

import "github.com/go-gl/mathgl/mgl32"

// computeLocalMatrix builds the parent-space matrix from the node's
// transform properties.
//
// Composition order:
//
//	Scale -> Rotate(Orientation) -> Translate(Position)
func computeLocalMatrix(n *Node) mgl32.Mat4 {
	t := mgl32.Translate3D(n.Position[0], n.Position[1], n.Position[2])
	r := n.Orientation.Normalize().Mat4()
	s := mgl32.Scale3D(n.Scale[0], n.Scale[1], n.Scale[2])
	return t.Mul4(r).Mul4(s)
}

// invertMatrix returns the inverse of m, or the identity if m is singular
// (determinant ≈ 0, e.g. a zero scale).
func invertMatrix(m mgl32.Mat4) mgl32.Mat4 {
	det := m.Det()
	if det > -1e-12 && det < 1e-12 {
		return mgl32.Ident4()
	}
	return m.Inv()
}

// transformPoint applies m to a point (w = 1).
func transformPoint(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

// refresh recomputes the cached matrices if this node or an ancestor is dirty.
func (n *Node) refresh() {
	if n.Parent != nil {
		n.Parent.refresh()
	}
	if !n.transformDirty {
		return
	}
	n.localMatrix = computeLocalMatrix(n)
	if n.Parent != nil {
		n.worldMatrix = n.Parent.worldMatrix.Mul4(n.localMatrix)
	} else {
		n.worldMatrix = n.localMatrix
	}
	n.transformDirty = false
}

// LocalMatrix returns the node's parent-space transform.
func (n *Node) LocalMatrix() mgl32.Mat4 {
	n.refresh()
	return n.localMatrix
}

// WorldMatrix returns the node's local-to-world transform.
func (n *Node) WorldMatrix() mgl32.Mat4 {
	n.refresh()
	return n.worldMatrix
}

// parentMatrix returns the parent's local-to-world transform, or the
// identity for a root.
func (n *Node) parentMatrix() mgl32.Mat4 {
	if n.Parent == nil {
		return mgl32.Ident4()
	}
	return n.Parent.WorldMatrix()
}

// spaceMatrix returns the matrix taking points in space s to world space.
func (n *Node) spaceMatrix(s Space) mgl32.Mat4 {
	switch s {
	case SpaceLocal:
		return n.WorldMatrix()
	case SpaceParent:
		return n.parentMatrix()
	default:
		return mgl32.Ident4()
	}
}

// --- Transform property setters ---

// SetPosition sets the node's position and marks it dirty.
func (n *Node) SetPosition(p mgl32.Vec3) {
	n.Position = p
	markSubtreeDirty(n)
}

// SetOrientation sets the node's orientation and marks it dirty.
func (n *Node) SetOrientation(q mgl32.Quat) {
	n.Orientation = q
	markSubtreeDirty(n)
}

// SetScale sets the node's scale and marks it dirty.
func (n *Node) SetScale(s mgl32.Vec3) {
	n.Scale = s
	markSubtreeDirty(n)
}

// MarkDirty marks the node's transform as dirty, forcing recomputation
// on the next read. Useful after bulk-setting fields directly.
func (n *Node) MarkDirty() {
	markSubtreeDirty(n)
}

// --- Coordinate conversion ---

// WorldToLocal converts a world-space point to this node's local space.
func (n *Node) WorldToLocal(p mgl32.Vec3) mgl32.Vec3 {
	return transformPoint(invertMatrix(n.WorldMatrix()), p)
}

// LocalToWorld converts a local-space point to world space.
func (n *Node) LocalToWorld(p mgl32.Vec3) mgl32.Vec3 {
	return transformPoint(n.WorldMatrix(), p)
}

// WorldPosition returns the node's origin in world space.
func (n *Node) WorldPosition() mgl32.Vec3 {
	return n.LocalToWorld(mgl32.Vec3{})
}
