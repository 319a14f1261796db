// Package ecs provides ECS adapters for solar's selection events.
//
// The primary adapter is [NewDonburiSink], which bridges camera selection
// outcomes into a [Donburi] world as typed events. Subscribe to
// [SelectionEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	scene.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
