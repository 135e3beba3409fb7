package openrealm

// EngineEventKind distinguishes the different read-back events the
// renderer/physics/UI layers publish toward scene logic.
type EngineEventKind int

const (
	// EventPointerDown/Up/Enter/Leave mirror UI pointer interaction,
	// carrying the UiNode's owning entity.
	EventPointerDown EngineEventKind = iota
	EventPointerUp
	EventPointerEnter
	EventPointerLeave
	// EventColliderHit is published when a scene-authored pointer-masked
	// collider is clicked.
	EventColliderHit
	// EventGltfReady is published once an entity's GLTF mesh finishes
	// processing and is attached.
	EventGltfReady
)

// EngineEvent is a single read-back event from the runtime toward
// scene/ECS-side logic: "something happened to this entity."
type EngineEvent struct {
	Kind   EngineEventKind
	Entity SceneEntityId
	Scene  Hash
}

// EntityStore is the interface a host ECS adapter implements to receive
// [EngineEvent] publications from the runtime without the runtime
// importing any specific ECS library.
type EntityStore interface {
	EmitEvent(event EngineEvent)
}
