package openrealm

import "fmt"

// Parcel is an integer land coordinate.
type Parcel struct {
	X, Z int32
}

func (p Parcel) String() string { return fmt.Sprintf("%d,%d", p.X, p.Z) }

// ParcelState is where a parcel sits in the orchestrator's lifecycle.
type ParcelState int

const (
	// ParcelUnknown means the parcel has never been looked at.
	ParcelUnknown ParcelState = iota
	// ParcelResolving means an active-entities lookup is in flight for it.
	ParcelResolving
	// ParcelEmpty means the lookup completed and no scene occupies it.
	ParcelEmpty
	// ParcelResolved means a scene hash was found but content hasn't
	// loaded yet.
	ParcelResolved
	// ParcelLive means the scene's entities are loaded and running.
	ParcelLive
	// ParcelImposter means the parcel is outside load radius and is
	// represented by a baked billboard instead of live content.
	ParcelImposter
	// ParcelEvicted means the parcel, in any state other than Empty, fell
	// outside the imposter radius and its scene (unless super-user) has
	// been torn down.
	ParcelEvicted
)

func (s ParcelState) String() string {
	switch s {
	case ParcelResolving:
		return "resolving"
	case ParcelEmpty:
		return "empty"
	case ParcelResolved:
		return "resolved"
	case ParcelLive:
		return "live"
	case ParcelImposter:
		return "imposter"
	case ParcelEvicted:
		return "evicted"
	default:
		return "unknown"
	}
}

// ScenePointer is a resolved (parcel -> scene hash) binding as returned
// by the realm's active-entities lookup.
type ScenePointer struct {
	Hash    Hash
	Parcels []Parcel
}

// ParcelRecord tracks one parcel's current lifecycle state plus the
// scene it belongs to, if resolved.
type ParcelRecord struct {
	Coord Parcel
	State ParcelState
	Scene Hash // zero value if ParcelEmpty or unresolved
}
