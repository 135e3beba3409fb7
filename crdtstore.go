package openrealm

import "bytes"

// entry is one CRDT store slot: the last-applied message's timestamp and
// payload, or a tombstone (Payload == nil) if the component was deleted.
type entry struct {
	timestamp uint32
	payload   []byte
}

// ComponentStore is the CRDT state for a single scene: the last-write-
// wins value of every (entity, component) pair the scene's wire stream
// has sent. Updates are applied via [ComponentStore.Apply], which
// implements the tie-break rule: a message with a lower timestamp than
// what's stored is dropped; equal timestamps fall back to comparing the
// raw payload bytes, with the lexicographically greater payload winning
// (an arbitrary but deterministic and reproducible tiebreak, matching
// what the protocol requires for two clients to converge on the same
// state from the same message set applied in any order).
//
// Unlike a store fixed to one CRDT kind for every component it holds,
// conflict resolution here is driven by each message's own CrdtType, so
// one scene can mix LWW-any and LWW-ent components side by side — which
// is what the wire protocol actually does per component type.
type ComponentStore struct {
	entries map[componentKey]entry
	// deleted tracks entities the stream has explicitly deleted under
	// LWWEnt, so a stale put for a component on that entity can't
	// resurrect it even if its timestamp looks newer than what we've
	// applied so far for that specific component slot.
	deleted map[SceneEntityId]uint32
}

// NewComponentStore returns an empty store.
func NewComponentStore() *ComponentStore {
	return &ComponentStore{
		entries: make(map[componentKey]entry),
		deleted: make(map[SceneEntityId]uint32),
	}
}

// Apply applies msg to the store, using msg.CrdtType for conflict
// resolution, and returns true if it was accepted (changed the store's
// visible state) and false if it was dropped as stale.
func (s *ComponentStore) Apply(msg ComponentMessage) bool {
	if msg.CrdtType == CrdtLWWEnt {
		if dt, ok := s.deleted[msg.Entity]; ok && msg.Timestamp <= dt {
			return false
		}
	}

	key := componentKey{Entity: msg.Entity, Component: msg.Component}
	cur, exists := s.entries[key]
	if exists {
		if msg.Timestamp < cur.timestamp {
			return false
		}
		if msg.Timestamp == cur.timestamp && bytes.Compare(msg.Payload, cur.payload) <= 0 {
			return false
		}
	}

	s.entries[key] = entry{timestamp: msg.Timestamp, payload: msg.Payload}
	return true
}

// Get returns the current payload for (entity, component) and whether it
// exists (false if never set or deleted).
func (s *ComponentStore) Get(e SceneEntityId, c ComponentId) ([]byte, bool) {
	v, ok := s.entries[componentKey{Entity: e, Component: c}]
	if !ok || v.payload == nil {
		return nil, false
	}
	return v.payload, true
}

// DeleteEntity removes every component on e and, when crdtType is
// CrdtLWWEnt, records a tombstone so later-arriving stale updates for e
// are rejected. crdtType is the scheme of the delete message that
// triggered this call, mirroring how Apply resolves it per message
// rather than per store.
func (s *ComponentStore) DeleteEntity(e SceneEntityId, atTick uint32, crdtType CrdtType) {
	for k := range s.entries {
		if k.Entity == e {
			delete(s.entries, k)
		}
	}
	if crdtType == CrdtLWWEnt {
		if cur, ok := s.deleted[e]; !ok || atTick > cur {
			s.deleted[e] = atTick
		}
	}
}

// Components returns every (entity, component) pair currently set on e.
func (s *ComponentStore) Components(e SceneEntityId) []ComponentId {
	var out []ComponentId
	for k, v := range s.entries {
		if k.Entity == e && v.payload != nil {
			out = append(out, k.Component)
		}
	}
	return out
}
