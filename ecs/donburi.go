// Package ecs adapts openrealm's engine event stream onto a Donburi ECS
// world, so host applications built on Donburi can subscribe to
// pointer, collider, and GLTF-ready events with events.Subscribe instead
// of polling the runtime directly.
package ecs

import (
	"github.com/phanxgames/openrealm"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// EngineEventType is the Donburi event type carrying openrealm engine
// events. Subscribe to this in a Donburi system to receive pointer,
// collider-hit, and GLTF-ready notifications.
var EngineEventType = events.NewEventType[openrealm.EngineEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore returns an [openrealm.EntityStore] backed by a Donburi
// world. Events are published to EngineEventType and consumed with
// events.Subscribe / ProcessEvents, following the same pattern as
// Donburi's own built-in event features.
func NewDonburiStore(world donburi.World) openrealm.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event openrealm.EngineEvent) {
	EngineEventType.Publish(s.world, event)
}
