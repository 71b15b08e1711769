// Package ecs provides ECS adapters for grip.
//
// [NewDonburiStore] bridges grip interaction events (drag start, update,
// end, cancel and the click notifications) into a [Donburi] world as typed
// events. Subscribe to [InteractionEventType] in your ECS systems to
// receive them.
//
// [Host] lets a grip Controller read and write entity transforms stored in
// the [Transform] component, following TransformData.Parent links to build
// world matrices.
//
// Usage:
//
//	world := donburi.NewWorld()
//	host := ecs.NewHost(world)
//	knob := host.Bind(ecs.NewTransformEntity(world, ecs.DefaultTransform()))
//
//	c := grip.NewController(host)
//	c.SetEntityStore(ecs.NewDonburiStore(world))
//	c.Attach(knob, grip.Turn(mgl32.Vec3{0, 0, 1}), nil)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
