// Package ecs provides ECS adapters for openrealm's engine event stream.
//
// The primary adapter is [NewDonburiStore], which bridges openrealm
// engine events (pointer interaction, collider hits, GLTF-ready
// notifications) into a [Donburi] world as typed events. Subscribe to
// [EngineEventType] in your ECS systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	store.EmitEvent(openrealm.EngineEvent{Kind: openrealm.EventPointerUp, Entity: 1})
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
