package openrealm

import lru "github.com/hashicorp/golang-lru/v2"

// EntityMetadata is auxiliary, non-component data kept about an entity
// for debugging and tooling: its originating scene, the wall-clock tick
// it was created on, and a free-form label.
type EntityMetadata struct {
	Scene   Hash
	Created uint32
	Label   string
}

// metadataCacheSize bounds the entity metadata map. The protocol leaves
// this policy unspecified; openrealm resolves it as a bounded LRU rather
// than an unbounded map keyed by realm lifetime, so a long client
// session walking through many scenes doesn't accumulate metadata for
// entities whose scenes were evicted hours ago.
const metadataCacheSize = 4096

// EntityMetadataStore is a bounded, least-recently-used cache of
// [EntityMetadata] keyed by (scene, entity).
type EntityMetadataStore struct {
	cache *lru.Cache[metadataKey, EntityMetadata]
}

type metadataKey struct {
	Scene  Hash
	Entity SceneEntityId
}

// NewEntityMetadataStore returns a store bounded to metadataCacheSize
// entries.
func NewEntityMetadataStore() *EntityMetadataStore {
	c, err := lru.New[metadataKey, EntityMetadata](metadataCacheSize)
	if err != nil {
		// Only returns an error for a non-positive size, which
		// metadataCacheSize never is.
		panic(err)
	}
	return &EntityMetadataStore{cache: c}
}

// Set records metadata for (scene, entity), evicting the least recently
// used entry if the store is at capacity.
func (s *EntityMetadataStore) Set(scene Hash, entity SceneEntityId, md EntityMetadata) {
	s.cache.Add(metadataKey{scene, entity}, md)
}

// Get returns the metadata for (scene, entity), marking it
// most-recently-used.
func (s *EntityMetadataStore) Get(scene Hash, entity SceneEntityId) (EntityMetadata, bool) {
	return s.cache.Get(metadataKey{scene, entity})
}

// Len returns the number of entries currently cached.
func (s *EntityMetadataStore) Len() int {
	return s.cache.Len()
}
