package openrealm

import "google.golang.org/protobuf/encoding/protowire"

// ComponentId identifies a component type in the scene wire protocol
// (e.g. Transform, MeshRenderer, GltfContainer). These numbers are
// assigned by the protocol, not by this client.
type ComponentId uint32

// CrdtType selects the conflict-resolution rule applied when two updates
// to the same (entity, component) pair race.
type CrdtType int

const (
	// CrdtLWWAny last-write-wins by timestamp; on a tie, the update whose
	// raw wire payload compares greater byte-wise (bytes.Compare) wins (an
	// arbitrary but deterministic tiebreak).
	CrdtLWWAny CrdtType = iota
	// CrdtLWWEnt is LWW-any plus a rule that deletes for the component
	// are tracked per entity so a late-arriving stale put can't resurrect
	// a component the authoritative stream already deleted.
	CrdtLWWEnt
)

// ComponentMessage is one CRDT update received from a scene's wire
// stream: "set (entity, component) to this payload as of this tick" or,
// when Payload is nil, "delete (entity, component)". CrdtType is the
// scheme the sender used to encode this update; [Scene.ApplyMessage]
// prefers the component's registered scheme when one exists and falls
// back to this field otherwise, so a scene's store is never pinned to a
// single crdt kind for every component it carries.
type ComponentMessage struct {
	Entity    SceneEntityId
	Component ComponentId
	CrdtType  CrdtType
	Timestamp uint32
	Payload   []byte // nil means delete
}

// componentKey is the CRDT store's map key: one slot per (entity,
// component) pair, matching the protocol's conflict-resolution grain.
type componentKey struct {
	Entity    SceneEntityId
	Component ComponentId
}

// ComponentHandler materializes an accepted update for one component
// onto its target entity: decoding payload (nil on delete) and applying
// its effect to scene/entity-facing state. scene is threaded in
// alongside the entity because some handlers affect scene-wide state
// (e.g. the GLTF-container handler tracking the scene's block reasons),
// not just the entity the message targets.
type ComponentHandler func(scene *Scene, e *Entity, payload []byte)

// ComponentRegistration is what startup declares for one component id:
// the crdt scheme the protocol uses to encode it, and the handler that
// materializes accepted updates.
type ComponentRegistration struct {
	Crdt    CrdtType
	Handler ComponentHandler
}

// componentRegistry holds every component id's (crdt scheme, handler)
// declaration, populated once at startup by RegisterComponent calls
// rather than fixed per scene.
var componentRegistry = map[ComponentId]ComponentRegistration{}

// RegisterComponent declares id's crdt scheme and materializer handler.
// Intended to be called during startup wiring, before any scene applies
// messages carrying that component id; registering the same id twice
// replaces the prior registration.
func RegisterComponent(id ComponentId, reg ComponentRegistration) {
	componentRegistry[id] = reg
}

// LookupComponent returns id's registration, if startup declared one.
func LookupComponent(id ComponentId) (ComponentRegistration, bool) {
	reg, ok := componentRegistry[id]
	return reg, ok
}

// structuralHash returns a stable hash of a component payload used by
// the GLTF/material caches to detect "same shape, don't reprocess".
// It walks the payload as a protobuf wire stream, folding in each
// field's number, wire type and raw value bytes, so payloads with the
// same fields in the same order hash the same and a renumbered field
// hashes differently; decode failures fall back to hashing the
// remaining raw bytes.
func structuralHash(payload []byte) uint64 {
	var h uint64 = 1469598103934665603 // FNV offset basis
	const prime uint64 = 1099511628211

	mix := func(b byte) {
		h ^= uint64(b)
		h *= prime
	}

	b := payload
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			for _, c := range b {
				mix(c)
			}
			return h
		}
		mix(byte(num))
		mix(byte(typ))
		b = b[n:]

		n = protowire.ConsumeFieldValue(num, typ, b)
		if n < 0 {
			for _, c := range b {
				mix(c)
			}
			return h
		}
		for _, c := range b[:n] {
			mix(c)
		}
		b = b[n:]
	}
	return h
}
