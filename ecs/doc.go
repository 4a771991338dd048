// Package ecs mirrors an outliner hierarchy into a [Donburi] world.
//
// A [Bridge] keeps one entity per registered node, carrying a [NodeData]
// component, and publishes every registration, removal and applied move as
// a [HierarchyEvent]. Subscribe to [HierarchyEventType] in your ECS systems
// to receive them.
//
// Usage:
//
//	bridge := ecs.NewBridge(world)
//	bridge.Attach(h)
//	// each frame, after h.Update():
//	events.ProcessAllEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
