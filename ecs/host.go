package ecs

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/phanxgames/grip"

	"github.com/yohamta/donburi"
)

// TransformData is an entity's transform relative to its parent entity.
// Entities without a parent (HasParent false) are expressed in world space.
type TransformData struct {
	Position    mgl32.Vec3
	Orientation mgl32.Quat
	Scale       mgl32.Vec3
	Parent      donburi.Entity
	HasParent   bool
}

// Transform is the component Host reads and writes.
var Transform = donburi.NewComponentType[TransformData]()

// DefaultTransform returns an identity transform with no parent.
func DefaultTransform() TransformData {
	return TransformData{
		Orientation: mgl32.QuatIdent(),
		Scale:       mgl32.Vec3{1, 1, 1},
	}
}

// NewTransformEntity creates an entity carrying the Transform component set
// to data.
func NewTransformEntity(w donburi.World, data TransformData) donburi.Entity {
	e := w.Create(Transform)
	Transform.SetValue(w.Entry(e), data)
	return e
}

// maxParentDepth bounds parent-chain walks so a cycle cannot hang Convert.
const maxParentDepth = 64

// Host adapts a Donburi world to grip.Host. Entities must be bound to a
// grip.Target with Bind before a Controller can address them.
//
// Host is not safe for concurrent use.
type Host struct {
	world    donburi.World
	entities map[grip.Target]donburi.Entity
	targets  map[donburi.Entity]grip.Target
	next     grip.Target
}

// NewHost creates a host over world.
func NewHost(world donburi.World) *Host {
	return &Host{
		world:    world,
		entities: make(map[grip.Target]donburi.Entity),
		targets:  make(map[donburi.Entity]grip.Target),
	}
}

// World returns the wrapped world.
func (h *Host) World() donburi.World { return h.world }

// Bind returns the target for e, assigning one on first use.
func (h *Host) Bind(e donburi.Entity) grip.Target {
	if t, ok := h.targets[e]; ok {
		return t
	}
	h.next++
	h.entities[h.next] = e
	h.targets[e] = h.next
	return h.next
}

// Unbind forgets target. The entity itself is left alone.
func (h *Host) Unbind(target grip.Target) {
	if e, ok := h.entities[target]; ok {
		delete(h.targets, e)
		delete(h.entities, target)
	}
}

// Entity resolves target. ok is false for unbound targets.
func (h *Host) Entity(target grip.Target) (donburi.Entity, bool) {
	e, ok := h.entities[target]
	return e, ok
}

// transform returns the live Transform of e, or nil when e is gone or has
// no Transform.
func (h *Host) transform(e donburi.Entity) *TransformData {
	if !h.world.Valid(e) {
		return nil
	}
	entry := h.world.Entry(e)
	if !entry.HasComponent(Transform) {
		return nil
	}
	return Transform.Get(entry)
}

func (h *Host) lookup(target grip.Target) *TransformData {
	e, ok := h.entities[target]
	if !ok {
		return nil
	}
	return h.transform(e)
}

// localMatrix composes scale, then rotation, then translation.
func localMatrix(td *TransformData) mgl32.Mat4 {
	t := mgl32.Translate3D(td.Position[0], td.Position[1], td.Position[2])
	r := td.Orientation.Normalize().Mat4()
	s := mgl32.Scale3D(td.Scale[0], td.Scale[1], td.Scale[2])
	return t.Mul4(r).Mul4(s)
}

// parentMatrix walks td's parent chain and returns the parent-to-world
// matrix. Missing parents end the walk.
func (h *Host) parentMatrix(td *TransformData) mgl32.Mat4 {
	m := mgl32.Ident4()
	for depth := 0; td.HasParent && depth < maxParentDepth; depth++ {
		p := h.transform(td.Parent)
		if p == nil {
			break
		}
		m = localMatrix(p).Mul4(m)
		td = p
	}
	return m
}

func (h *Host) spaceMatrix(td *TransformData, s grip.Space) mgl32.Mat4 {
	switch s {
	case grip.SpaceLocal:
		return h.parentMatrix(td).Mul4(localMatrix(td))
	case grip.SpaceParent:
		return h.parentMatrix(td)
	default:
		return mgl32.Ident4()
	}
}

func invert(m mgl32.Mat4) mgl32.Mat4 {
	det := m.Det()
	if det > -1e-12 && det < 1e-12 {
		return mgl32.Ident4()
	}
	return m.Inv()
}

// Convert maps p between target's spaces. Unbound targets and entities
// without a Transform use identity frames.
func (h *Host) Convert(target grip.Target, p mgl32.Vec3, from, to grip.Space) mgl32.Vec3 {
	if from == to {
		return p
	}
	td := h.lookup(target)
	if td == nil {
		return p
	}
	world := h.spaceMatrix(td, from).Mul4x1(p.Vec4(1))
	return invert(h.spaceMatrix(td, to)).Mul4x1(world).Vec3()
}

// Position returns the target's Transform position.
func (h *Host) Position(target grip.Target) mgl32.Vec3 {
	if td := h.lookup(target); td != nil {
		return td.Position
	}
	return mgl32.Vec3{}
}

// SetPosition writes the target's Transform position.
func (h *Host) SetPosition(target grip.Target, p mgl32.Vec3) {
	if td := h.lookup(target); td != nil {
		td.Position = p
	}
}

// Orientation returns the target's Transform orientation.
func (h *Host) Orientation(target grip.Target) mgl32.Quat {
	if td := h.lookup(target); td != nil {
		return td.Orientation
	}
	return mgl32.QuatIdent()
}

// SetOrientation writes the target's Transform orientation.
func (h *Host) SetOrientation(target grip.Target, q mgl32.Quat) {
	if td := h.lookup(target); td != nil {
		td.Orientation = q
	}
}

var _ grip.Host = (*Host)(nil)
