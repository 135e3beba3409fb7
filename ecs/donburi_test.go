package ecs

import (
	"testing"

	"github.com/phanxgames/openrealm"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiStore(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	if store == nil {
		t.Fatal("NewDonburiStore returned nil")
	}
}

func TestDonburiStoreEmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []openrealm.EngineEvent
	EngineEventType.Subscribe(world, func(w donburi.World, e openrealm.EngineEvent) {
		received = append(received, e)
	})

	store.EmitEvent(openrealm.EngineEvent{
		Kind:   openrealm.EventPointerDown,
		Entity: 42,
		Scene:  "H1",
	})
	store.EmitEvent(openrealm.EngineEvent{
		Kind:   openrealm.EventGltfReady,
		Entity: 7,
		Scene:  "H1",
	})

	EngineEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if received[0].Kind != openrealm.EventPointerDown || received[0].Entity != 42 {
		t.Errorf("event 0: %+v", received[0])
	}
	if received[1].Kind != openrealm.EventGltfReady || received[1].Entity != 7 {
		t.Errorf("event 1: %+v", received[1])
	}
}

func TestDonburiStoreImplementsEntityStore(t *testing.T) {
	world := donburi.NewWorld()
	var store openrealm.EntityStore = NewDonburiStore(world)
	_ = store
}

func TestDonburiStoreMultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var count1, count2 int
	EngineEventType.Subscribe(world, func(w donburi.World, e openrealm.EngineEvent) {
		count1++
	})
	EngineEventType.Subscribe(world, func(w donburi.World, e openrealm.EngineEvent) {
		count2++
	})

	store.EmitEvent(openrealm.EngineEvent{Kind: openrealm.EventPointerUp, Entity: 1})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}
