package openrealm

import "fmt"

// gltfBlockWindow is how many ticks after a GLTF container starts being
// tracked it may still hold the scene blocked; past this window the
// scene unblocks regardless of load state, since waiting forever on an
// asset that may never finish would leave the scene dark permanently.
const gltfBlockWindow = 6

// imposterBakingBlockReason blocks a scene currently serving as a bake
// ingredient for an imposter tile: its CRDT state has to hold steady
// while it's being sampled for the bake.
const imposterBakingBlockReason = "imposter-baking"

// Scene owns one scene's entity tree and CRDT component store. A scene
// corresponds to one or more parcels (its [ScenePointer.Parcels]) and is
// created when the orchestrator resolves a parcel to a scene hash and
// its content finishes loading.
type Scene struct {
	Hash    Hash
	Parcels []Parcel

	root *Entity

	store *ComponentStore
	tick  uint32

	entities map[SceneEntityId]*Entity

	// SuperUser marks a scene loaded outside the normal parcel grid
	// (an operator-launched local scene, or a world the player owns
	// outright), which is never evicted by load-radius bookkeeping.
	SuperUser bool

	// blocked is the scene's reason-set. Non-empty means rendering is
	// held and this frame's CRDT materialization output is discarded;
	// the underlying store keeps applying messages regardless, so a
	// blocked scene still converges, it just doesn't surface anything
	// while it does.
	blocked map[string]bool

	// gltfRequestedAt records, per GLTF container entity currently being
	// tracked, the tick tracking started, so ReconcileGltfBlockers can
	// tell when a container has exceeded gltfBlockWindow.
	gltfRequestedAt map[SceneEntityId]uint32
}

// NewScene returns an empty scene for the given hash and parcel set. Each
// applied component message carries its own crdt scheme (see
// [ComponentMessage]), so the store itself no longer fixes one kind for
// the whole scene.
func NewScene(hash Hash, parcels []Parcel) *Scene {
	s := &Scene{
		Hash:            hash,
		Parcels:         parcels,
		root:            NewEntity(RootEntity),
		store:           NewComponentStore(),
		entities:        make(map[SceneEntityId]*Entity),
		blocked:         make(map[string]bool),
		gltfRequestedAt: make(map[SceneEntityId]uint32),
	}
	s.entities[RootEntity] = s.root
	return s
}

// Root returns the scene's root entity.
func (s *Scene) Root() *Entity { return s.root }

// Entity returns the entity with the given id, creating it (and
// attaching it to the root) if it doesn't exist yet. Scene content may
// reference entity ids before any component has been applied to them.
func (s *Scene) Entity(id SceneEntityId) *Entity {
	if e, ok := s.entities[id]; ok {
		return e
	}
	e := NewEntity(id)
	s.entities[id] = e
	s.root.AddChild(e)
	return e
}

// Block adds reason to the scene's blocked set.
func (s *Scene) Block(reason string) {
	s.blocked[reason] = true
}

// Unblock removes reason from the scene's blocked set.
func (s *Scene) Unblock(reason string) {
	delete(s.blocked, reason)
}

// Blocked reports whether the scene currently holds any blocking reason.
func (s *Scene) Blocked() bool {
	return len(s.blocked) > 0
}

// BlockedReasons returns the scene's current blocking reasons, in no
// particular order.
func (s *Scene) BlockedReasons() []string {
	out := make([]string, 0, len(s.blocked))
	for r := range s.blocked {
		out = append(out, r)
	}
	return out
}

func gltfBlockReason(entity SceneEntityId) string {
	return fmt.Sprintf("gltf:%d", entity)
}

// TrackGltfContainer begins tracking entity as a GLTF container blocking
// the scene until it reaches GltfReady or gltfBlockWindow ticks elapse,
// whichever comes first. Calling it again for an entity already tracked
// is a no-op: tracking doesn't restart on repeated calls within the same
// window.
func (s *Scene) TrackGltfContainer(entity SceneEntityId) {
	if _, tracked := s.gltfRequestedAt[entity]; tracked {
		return
	}
	s.gltfRequestedAt[entity] = s.tick
	s.Block(gltfBlockReason(entity))
}

// ReconcileGltfBlockers re-evaluates every tracked GLTF container against
// state, clearing its block once the container reaches GltfReady or its
// tracking window has elapsed, and forgetting containers that no longer
// need tracking either way.
func (s *Scene) ReconcileGltfBlockers(state func(SceneEntityId) GltfLoadState) {
	for entity, requestedAt := range s.gltfRequestedAt {
		ready := state(entity) == GltfReady
		expired := s.tick-requestedAt >= gltfBlockWindow
		if ready || expired {
			s.Unblock(gltfBlockReason(entity))
			delete(s.gltfRequestedAt, entity)
		}
	}
}

// SetImposterBaking blocks or unblocks the scene for serving as a bake
// ingredient for an in-progress imposter tile bake.
func (s *Scene) SetImposterBaking(baking bool) {
	if baking {
		s.Block(imposterBakingBlockReason)
	} else {
		s.Unblock(imposterBakingBlockReason)
	}
}

// ApplyMessage applies one CRDT update to the scene's component store.
// The scene's monotonic tick only ever increases: a message claiming an
// earlier tick than what the scene has already observed is clamped, so
// a late-arriving out-of-order network message can't rewind scene time
// for every subsequent update.
//
// msg.CrdtType is taken from the component's registration when one
// exists (the registry is the source of truth for a component's wire
// scheme), falling back to whatever msg itself carries otherwise. Once
// accepted, the update's materializer handler only runs while the scene
// is unblocked: a blocked scene keeps applying messages to its store so
// it still converges, but this frame's rendering-facing output is
// discarded.
func (s *Scene) ApplyMessage(msg ComponentMessage) bool {
	if msg.Timestamp > s.tick {
		s.tick = msg.Timestamp
	}
	reg, registered := LookupComponent(msg.Component)
	if registered {
		msg.CrdtType = reg.Crdt
	}

	accepted := s.store.Apply(msg)
	if !accepted {
		return false
	}
	if msg.Payload == nil {
		s.store.DeleteEntity(msg.Entity, msg.Timestamp, msg.CrdtType)
	}
	if s.Blocked() {
		return true
	}
	if registered && reg.Handler != nil {
		reg.Handler(s, s.Entity(msg.Entity), msg.Payload)
	}
	return true
}

// Tick returns the scene's current monotonic tick counter.
func (s *Scene) Tick() uint32 { return s.tick }

// Store returns the scene's underlying CRDT component store.
func (s *Scene) Store() *ComponentStore { return s.store }

// Dispose tears down the scene's entity tree.
func (s *Scene) Dispose() {
	s.root.Dispose()
}
