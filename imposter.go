package openrealm

import (
	"sort"

	"golang.org/x/sync/semaphore"
)

// ImposterLevel is a tile grid level; level k covers a 2^k x 2^k parcel
// tile, with level 0 being a single parcel.
type ImposterLevel int

const MaxImposterLevel ImposterLevel = 5

// ImposterTile identifies one tile: its level and its origin parcel
// (the tile's minimum-coordinate corner).
type ImposterTile struct {
	Level  ImposterLevel
	Origin Parcel
}

// size returns the tile's edge length in parcels: 2^Level.
func (t ImposterTile) size() int32 {
	return int32(1) << uint(t.Level)
}

// contains reports whether p falls within t's footprint.
func (t ImposterTile) contains(p Parcel) bool {
	s := t.size()
	return p.X >= t.Origin.X && p.X < t.Origin.X+s && p.Z >= t.Origin.Z && p.Z < t.Origin.Z+s
}

// ImposterResolution is the current state of one tile's baked billboard.
type ImposterResolution int

const (
	ImposterMissing ImposterResolution = iota
	ImposterPendingRemote
	ImposterPending
	ImposterPendingWithSubstitute
	ImposterPendingWithPrevious
	ImposterReady
)

// ImposterTileState tracks one tile's resolution and, while pending, a
// substitute texture borrowed from a coarser already-downloaded level.
type ImposterTileState struct {
	Tile       ImposterTile
	Resolution ImposterResolution

	// SubstituteTile and SubstituteUV describe the nearest larger
	// downloaded tile to sample from while this tile bakes, and the UV
	// window within it corresponding to this tile's footprint.
	SubstituteTile ImposterTile
	SubstituteUV   [4]float64

	// BakeIngredients lists the parcel hashes that were live when this
	// tile's bake was kicked off; if any of them change before the bake
	// completes, the result is stale and must be rebaked.
	BakeIngredients map[Parcel]Hash
}

// tileForParcel returns the level-`level` tile containing p, aligned to
// a grid of that level's tile size.
func tileForParcel(p Parcel, level ImposterLevel) ImposterTile {
	size := int32(1) << uint(level)
	ox := floorDiv(p.X, size) * size
	oz := floorDiv(p.Z, size) * size
	return ImposterTile{Level: level, Origin: Parcel{X: ox, Z: oz}}
}

func floorDiv(a, b int32) int32 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// FocusPoint is the point used to select which imposter tiles matter
// most: either the player's own position, or, when the player is
// looking away from their own parcel, the camera-forward ray projected
// onto the ground plane.
type FocusPoint struct {
	Position Parcel
}

// tileIntersectsLive reports whether any parcel in liveParcels falls
// within t's footprint. Checked against each live parcel individually
// rather than scanning every cell of t, since a coarse tile's footprint
// can be far larger than the live-parcel set itself.
func tileIntersectsLive(t ImposterTile, liveParcels []Parcel) bool {
	for _, p := range liveParcels {
		if t.contains(p) {
			return true
		}
	}
	return false
}

// RequiredTiles returns the set of tiles, across all levels from
// MaxImposterLevel down to 0, that should be resolved for the given
// focus point and imposter radius, using recursive subdivision: coarse
// tiles far from focus stay coarse, while tiles near focus are
// subdivided down to finer levels for a sharper billboard close to the
// camera. A tile whose footprint intersects any parcel in liveParcels is
// never emitted: subdivision keeps splitting it past the distance
// threshold so that only the live portion is excluded, stopping on a
// tile once it both passes the distance test and contains no live
// scenes.
func RequiredTiles(focus FocusPoint, radius int, liveParcels []Parcel) []ImposterTile {
	var out []ImposterTile
	var subdivide func(t ImposterTile)
	subdivide = func(t ImposterTile) {
		center := Parcel{
			X: t.Origin.X + t.size()/2,
			Z: t.Origin.Z + t.size()/2,
		}
		dist := chebyshev(focus.Position, center)
		// Close tiles subdivide down to level 0; the subdivision
		// threshold scales with tile size so a tile twice as large
		// needs to be twice as far before it stops splitting.
		threshold := int(t.size()) * radius / 4
		live := tileIntersectsLive(t, liveParcels)
		if t.Level > 0 && (dist <= threshold || live) {
			half := t.size() / 2
			for _, dz := range []int32{0, half} {
				for _, dx := range []int32{0, half} {
					subdivide(ImposterTile{
						Level:  t.Level - 1,
						Origin: Parcel{X: t.Origin.X + dx, Z: t.Origin.Z + dz},
					})
				}
			}
			return
		}
		if live {
			return
		}
		out = append(out, t)
	}

	top := tileForParcel(focus.Position, MaxImposterLevel)
	// Scan a small neighborhood of top-level tiles around focus so the
	// subdivision has somewhere to recurse from in every direction.
	topSize := top.size()
	for dz := int32(-1); dz <= 1; dz++ {
		for dx := int32(-1); dx <= 1; dx++ {
			subdivide(ImposterTile{
				Level:  MaxImposterLevel,
				Origin: Parcel{X: top.Origin.X + dx*topSize, Z: top.Origin.Z + dz*topSize},
			})
		}
	}
	return out
}

// FindSubstitute walks up from tile's level toward MaxImposterLevel
// looking for the nearest already-Ready ancestor tile, returning it plus
// the UV window within that ancestor corresponding to tile's footprint.
// Returns false if no ancestor at any level is ready.
func FindSubstitute(tile ImposterTile, states map[ImposterTile]*ImposterTileState) (ImposterTile, [4]float64, bool) {
	for lvl := tile.Level + 1; lvl <= MaxImposterLevel; lvl++ {
		anc := tileForParcel(tile.Origin, lvl)
		st, ok := states[anc]
		if !ok || st.Resolution != ImposterReady {
			continue
		}
		ancSize := float64(anc.size())
		u0 := float64(tile.Origin.X-anc.Origin.X) / ancSize
		v0 := float64(tile.Origin.Z-anc.Origin.Z) / ancSize
		span := float64(tile.size()) / ancSize
		return anc, [4]float64{u0, v0, u0 + span, v0 + span}, true
	}
	return ImposterTile{}, [4]float64{}, false
}

// imposterFadeDuration is how long a newly-ready tile cross-fades in
// over its substitute, in seconds. Tunable: a shorter fade reads as a
// visible pop on slower connections, a longer one leaves a stale
// substitute visible after the real bake is ready.
const imposterFadeDuration = 1.25

// DownloadBudget bounds how many imposter tile bakes/downloads run
// concurrently, prioritized by (distance to focus, level) so near tiles
// resolve before far ones, and at equal distance finer (lower-level)
// tiles go first.
type DownloadBudget struct {
	sem *semaphore.Weighted
}

// NewDownloadBudget returns a budget allowing up to n concurrent
// downloads. There is no built-in default; the caller chooses n, trading
// bandwidth against how quickly a freshly-opened world's skyline fills in.
func NewDownloadBudget(n int64) *DownloadBudget {
	return &DownloadBudget{sem: semaphore.NewWeighted(n)}
}

// PrioritizeTiles sorts tiles by (distance to focus ascending, level
// ascending), the order the download budget should service them in.
func PrioritizeTiles(tiles []ImposterTile, focus FocusPoint) {
	sort.Slice(tiles, func(i, j int) bool {
		ci := Parcel{tiles[i].Origin.X + tiles[i].size()/2, tiles[i].Origin.Z + tiles[i].size()/2}
		cj := Parcel{tiles[j].Origin.X + tiles[j].size()/2, tiles[j].Origin.Z + tiles[j].size()/2}
		di := chebyshev(focus.Position, ci)
		dj := chebyshev(focus.Position, cj)
		if di != dj {
			return di < dj
		}
		return tiles[i].Level < tiles[j].Level
	})
}

// TryAcquire attempts to claim one download slot without blocking,
// returning false if the budget is fully spent this frame.
func (b *DownloadBudget) TryAcquire() bool {
	return b.sem.TryAcquire(1)
}

// Release frees a previously acquired slot.
func (b *DownloadBudget) Release() {
	b.sem.Release(1)
}
