// Package grip turns pointer rays into 3D object manipulation.
//
// A host engine hit-tests the pointer, then hands grip a world-space [Ray]
// for each press, move and release. grip converts those rays into a new
// position (move), a new orientation (turn) or a press/release verdict
// (click) for the touched [Target], writes the result back through the
// [Host] interface, and notifies a per-target [Delegate].
//
// # Quick start
//
// [Graph] is an in-memory transform tree that implements [Host]:
//
//	g := grip.NewGraph()
//	knob := grip.NewNode("knob")
//	g.Root().AddChild(knob)
//
//	c := grip.NewController(g)
//	c.Attach(knob.ID, grip.Turn(mgl32.Vec3{0, 0, 1}), nil)
//
//	c.DragStarted(knob.ID, ray)        // pointer pressed on the knob
//	c.DragUpdated(knob.ID, ray2, true) // pointer moved
//	c.DragEnded(knob.ID, ray2)         // pointer released
//
// # Interaction types
//
// [Move] drags a target along with the pointer, keeping the grab distance
// fixed, and passes each candidate position through an optional
// [MoveConstraint]: [Box] clamps to an axis-aligned box, [Points] snaps to
// the nearest detent and [Clamp] runs a custom function.
//
// [Turn] rotates a target about a local axis by the angle the pointer sweeps
// around the target's position on the plane perpendicular to that axis.
//
// [Click] tracks whether the pointer is still over the target and reports
// TouchUpInside or TouchUpOutside on release.
//
// # Notifications
//
// Events are delivered in a fixed order: controller listeners registered
// with [Controller.On], then the target's [Delegate], then the optional
// [EntityStore]. The ECS bridge lives in the grip/ecs module, which adapts a
// [Donburi] world as both a [Host] and an [EntityStore].
//
// # Scripted replay
//
// [DecodeScript] and [LoadScriptFile] read a scene plus a list of pointer
// steps in JSON, YAML or TOML. [NewReplay] builds the scene and feeds the
// steps to a [Controller], one call per frame. The grip command line tool
// wraps this for headless runs.
//
// [Donburi]: https://github.com/yohamta/donburi
package grip
