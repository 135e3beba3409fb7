package openrealm

import "context"

// Orchestrator decides, frame to frame, which parcels around the player
// are Live (full scene content), Imposter (billboard LOD), or Evicted
// (dropped entirely), based on the player's current parcel and a
// configurable load radius.
type Orchestrator struct {
	realm *Realm

	// LoadRadius is the Chebyshev distance (in parcels) within which a
	// parcel is kept Live. Parcels beyond LoadRadius but within
	// ImposterRadius are Imposter; beyond that, Evicted.
	LoadRadius     int
	ImposterRadius int

	records map[Parcel]*ParcelRecord
	scenes  map[Hash]*Scene

	// superUser holds scenes pinned outside normal eviction, keyed by
	// hash, so a locally-launched or owned scene survives the player
	// walking away from it.
	superUser map[Hash]*Scene
}

// NewOrchestrator returns an orchestrator bound to realm with the given
// load/imposter radii.
func NewOrchestrator(realm *Realm, loadRadius, imposterRadius int) *Orchestrator {
	return &Orchestrator{
		realm:          realm,
		LoadRadius:     loadRadius,
		ImposterRadius: imposterRadius,
		records:        make(map[Parcel]*ParcelRecord),
		scenes:         make(map[Hash]*Scene),
		superUser:      make(map[Hash]*Scene),
	}
}

// chebyshev returns the Chebyshev (grid king-move) distance between two parcels.
func chebyshev(a, b Parcel) int {
	dx := int(a.X - b.X)
	if dx < 0 {
		dx = -dx
	}
	dz := int(a.Z - b.Z)
	if dz < 0 {
		dz = -dz
	}
	if dx > dz {
		return dx
	}
	return dz
}

// parcelsInRadius returns every parcel within r of center, in row-major
// order, used both for the live-set target and for driving resolution
// requests.
func parcelsInRadius(center Parcel, r int) []Parcel {
	var out []Parcel
	for dz := -r; dz <= r; dz++ {
		for dx := -r; dx <= r; dx++ {
			out = append(out, Parcel{X: center.X + int32(dx), Z: center.Z + int32(dz)})
		}
	}
	return out
}

// recordFor returns (creating if absent) the ParcelRecord for coord.
func (o *Orchestrator) recordFor(coord Parcel) *ParcelRecord {
	rec, ok := o.records[coord]
	if !ok {
		rec = &ParcelRecord{Coord: coord, State: ParcelUnknown}
		o.records[coord] = rec
	}
	return rec
}

// Reconcile is the orchestrator's per-frame driver: given the player's
// current parcel, it resolves newly-in-range parcels, promotes resolved
// parcels to Live or Imposter depending on distance, and evicts parcels
// that have fallen outside ImposterRadius. It returns the ids of
// parcels that should be (re)requested from the realm this frame
// (those still ParcelUnknown within ImposterRadius).
func (o *Orchestrator) Reconcile(ctx context.Context, playerParcel Parcel) []Parcel {
	var toResolve []Parcel

	for _, coord := range parcelsInRadius(playerParcel, o.ImposterRadius) {
		rec := o.recordFor(coord)
		dist := chebyshev(playerParcel, coord)

		switch rec.State {
		case ParcelUnknown:
			toResolve = append(toResolve, coord)
		case ParcelResolved, ParcelImposter, ParcelLive:
			if dist <= o.LoadRadius {
				rec.State = ParcelLive
			} else {
				rec.State = ParcelImposter
			}
		}
	}

	for coord, rec := range o.records {
		dist := chebyshev(playerParcel, coord)
		if dist > o.ImposterRadius && rec.State != ParcelEvicted && rec.State != ParcelEmpty {
			if scene, ok := o.scenes[rec.Scene]; ok && !scene.SuperUser {
				scene.Dispose()
				delete(o.scenes, rec.Scene)
			}
			rec.State = ParcelEvicted
		}
	}

	return toResolve
}

// ResolveParcel marks coord as resolved to the given scene hash (or
// ParcelEmpty if hash is the zero value), called once the realm's
// active-entities lookup for coord completes.
func (o *Orchestrator) ResolveParcel(coord Parcel, hash Hash) {
	rec := o.recordFor(coord)
	if hash == "" {
		rec.State = ParcelEmpty
		return
	}
	rec.Scene = hash
	rec.State = ParcelResolved
}

// AttachScene registers a loaded scene, making it available to
// [Orchestrator.ContainingScene] lookups.
func (o *Orchestrator) AttachScene(scene *Scene) {
	o.scenes[scene.Hash] = scene
	if scene.SuperUser {
		o.superUser[scene.Hash] = scene
	}
}

// ContainingScene returns the scene occupying the given parcel, if any
// scene has been resolved and loaded for it.
func (o *Orchestrator) ContainingScene(coord Parcel) (*Scene, bool) {
	rec, ok := o.records[coord]
	if !ok || rec.Scene == "" {
		return nil, false
	}
	scene, ok := o.scenes[rec.Scene]
	return scene, ok
}

// State returns the current lifecycle state of coord.
func (o *Orchestrator) State(coord Parcel) ParcelState {
	rec, ok := o.records[coord]
	if !ok {
		return ParcelUnknown
	}
	return rec.State
}

// LiveScenes returns every distinct loaded scene currently covering at
// least one ParcelLive parcel. [RequiredTiles] takes parcels, not
// scenes; see [Orchestrator.LiveParcels].
func (o *Orchestrator) LiveScenes() []*Scene {
	seen := make(map[Hash]bool)
	var out []*Scene
	for _, rec := range o.records {
		if rec.State != ParcelLive || rec.Scene == "" || seen[rec.Scene] {
			continue
		}
		scene, ok := o.scenes[rec.Scene]
		if !ok {
			continue
		}
		seen[rec.Scene] = true
		out = append(out, scene)
	}
	return out
}

// LiveParcels returns every parcel currently covered by a live scene,
// the shape [RequiredTiles] takes for its live-parcel exclusion.
func (o *Orchestrator) LiveParcels() []Parcel {
	var out []Parcel
	for coord, rec := range o.records {
		if rec.State == ParcelLive {
			out = append(out, coord)
		}
	}
	return out
}

// TickScenes re-evaluates every loaded scene's GLTF blockers against
// state and returns the scenes that remain blocked afterward, driving
// [Scene.ReconcileGltfBlockers] once per frame for the orchestrator's
// whole scene set rather than leaving each scene to reconcile itself.
func (o *Orchestrator) TickScenes(state func(Hash, SceneEntityId) GltfLoadState) []*Scene {
	var blocked []*Scene
	for hash, scene := range o.scenes {
		scene.ReconcileGltfBlockers(func(e SceneEntityId) GltfLoadState {
			return state(hash, e)
		})
		if scene.Blocked() {
			blocked = append(blocked, scene)
		}
	}
	return blocked
}
