package openrealm

import "math"

// SpatialIndex is a per-scene collider index. It keeps a flat list of
// registered colliders plus a per-collider world AABB cache that is
// lazily rebuilt: insert/remove just mark the index dirty, and the next
// query rebuilds world bounds before scanning, rather than maintaining
// exact bounds on every entity transform change.
type SpatialIndex struct {
	colliders []*ColliderShape
	bounds    []AABB
	dirty     bool
}

// NewSpatialIndex returns an empty index.
func NewSpatialIndex() *SpatialIndex {
	return &SpatialIndex{dirty: true}
}

// Insert adds shape to the index.
func (idx *SpatialIndex) Insert(shape *ColliderShape) {
	idx.colliders = append(idx.colliders, shape)
	idx.dirty = true
}

// Remove drops shape from the index, if present.
func (idx *SpatialIndex) Remove(shape *ColliderShape) {
	for i, c := range idx.colliders {
		if c == shape {
			idx.colliders = append(idx.colliders[:i], idx.colliders[i+1:]...)
			idx.dirty = true
			return
		}
	}
}

func colliderWorldAABB(c *ColliderShape) AABB {
	center := c.Owner.WorldPosition()
	switch c.Kind {
	case ColliderBox:
		return AABB{Min: center.Sub(c.HalfExtents), Max: center.Add(c.HalfExtents)}
	case ColliderSphere:
		r := Vec3{c.Radius, c.Radius, c.Radius}
		return AABB{Min: center.Sub(r), Max: center.Add(r)}
	case ColliderCylinder:
		r := Vec3{c.Radius, c.HalfHeight, c.Radius}
		return AABB{Min: center.Sub(r), Max: center.Add(r)}
	default:
		// Plane and Trimesh use a generous bound; precise narrow-phase
		// still runs per-shape during the actual intersection test.
		big := Vec3{1e6, 1e6, 1e6}
		return AABB{Min: center.Sub(big), Max: center.Add(big)}
	}
}

func (idx *SpatialIndex) rebuildIfDirty() {
	if !idx.dirty {
		return
	}
	idx.bounds = idx.bounds[:0]
	for _, c := range idx.colliders {
		idx.bounds = append(idx.bounds, colliderWorldAABB(c))
	}
	idx.dirty = false
}

// RayHit is one result of a ray query.
type RayHit struct {
	Collider *ColliderShape
	Distance float64
	Point    Vec3
}

// intersectRaySphere returns the nearest positive distance along the ray
// where it enters the sphere, or false if it misses.
func intersectRaySphere(origin, dir, center Vec3, radius float64) (float64, bool) {
	oc := origin.Sub(center)
	b := oc.Dot(dir)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq
		if t < 0 {
			return 0, false
		}
	}
	return t, true
}

// intersectRayBox returns the nearest positive entry distance, or false
// if the ray misses the box.
func intersectRayBox(origin, dir Vec3, box AABB) (float64, bool) {
	tmin, tmax := math.Inf(-1), math.Inf(1)
	axes := [3][2]float64{
		{origin.X, dir.X}, {origin.Y, dir.Y}, {origin.Z, dir.Z},
	}
	mins := [3]float64{box.Min.X, box.Min.Y, box.Min.Z}
	maxs := [3]float64{box.Max.X, box.Max.Y, box.Max.Z}
	for i := 0; i < 3; i++ {
		o, d := axes[i][0], axes[i][1]
		if d == 0 {
			if o < mins[i] || o > maxs[i] {
				return 0, false
			}
			continue
		}
		t1 := (mins[i] - o) / d
		t2 := (maxs[i] - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, false
		}
	}
	if tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

func intersectRayShape(origin, dir Vec3, c *ColliderShape) (float64, bool) {
	switch c.Kind {
	case ColliderSphere:
		return intersectRaySphere(origin, dir, c.Owner.WorldPosition(), c.Radius)
	default:
		return intersectRayBox(origin, dir, colliderWorldAABB(c))
	}
}

// CastRayNearest returns the closest collider hit by the ray matching
// mask, within maxDistance.
func (idx *SpatialIndex) CastRayNearest(origin, dir Vec3, maxDistance float64, mask uint32) (RayHit, bool) {
	idx.rebuildIfDirty()
	dir = dir.Normalized()
	best := RayHit{}
	found := false
	for _, c := range idx.colliders {
		if c.Mask&mask == 0 {
			continue
		}
		t, ok := intersectRayShape(origin, dir, c)
		if !ok || t > maxDistance {
			continue
		}
		if !found || t < best.Distance {
			best = RayHit{Collider: c, Distance: t, Point: origin.Add(dir.Scale(t))}
			found = true
		}
	}
	return best, found
}

// CastRayAll returns every collider hit by the ray matching mask, within
// maxDistance, nearest first.
func (idx *SpatialIndex) CastRayAll(origin, dir Vec3, maxDistance float64, mask uint32) []RayHit {
	idx.rebuildIfDirty()
	dir = dir.Normalized()
	var hits []RayHit
	for _, c := range idx.colliders {
		if c.Mask&mask == 0 {
			continue
		}
		t, ok := intersectRayShape(origin, dir, c)
		if !ok || t > maxDistance {
			continue
		}
		hits = append(hits, RayHit{Collider: c, Distance: t, Point: origin.Add(dir.Scale(t))})
	}
	for i := 1; i < len(hits); i++ {
		for j := i; j > 0 && hits[j].Distance < hits[j-1].Distance; j-- {
			hits[j], hits[j-1] = hits[j-1], hits[j]
		}
	}
	return hits
}

// CastAvatarNearest casts a capsule-approximated (as a sphere swept
// along the ray, radius r) avatar body along dir from origin and returns
// the nearest matching collider. Only sphere colliders are inflated by
// radius; other shapes are tested against the bare ray.
func (idx *SpatialIndex) CastAvatarNearest(origin, dir Vec3, radius, maxDistance float64, mask uint32) (RayHit, bool) {
	idx.rebuildIfDirty()
	dir = dir.Normalized()
	best := RayHit{}
	found := false
	for _, c := range idx.colliders {
		if c.Mask&mask == 0 {
			continue
		}
		expanded := *c
		if c.Kind == ColliderSphere {
			expanded.Radius += radius
		}
		t, ok := intersectRayShape(origin, dir, &expanded)
		if !ok || t > maxDistance {
			continue
		}
		if !found || t < best.Distance {
			best = RayHit{Collider: c, Distance: t, Point: origin.Add(dir.Scale(t))}
			found = true
		}
	}
	return best, found
}

// CastAvatarAll is the "all hits" variant of CastAvatarNearest: every
// mask-matching collider the swept avatar sphere touches along dir
// within maxDistance, nearest first.
func (idx *SpatialIndex) CastAvatarAll(origin, dir Vec3, radius, maxDistance float64, mask uint32) []RayHit {
	idx.rebuildIfDirty()
	dir = dir.Normalized()
	var hits []RayHit
	for _, c := range idx.colliders {
		if c.Mask&mask == 0 {
			continue
		}
		expanded := *c
		if c.Kind == ColliderSphere {
			expanded.Radius += radius
		}
		t, ok := intersectRayShape(origin, dir, &expanded)
		if !ok || t > maxDistance {
			continue
		}
		hits = append(hits, RayHit{Collider: c, Distance: t, Point: origin.Add(dir.Scale(t))})
	}
	for i := 1; i < len(hits); i++ {
		for j := i; j > 0 && hits[j].Distance < hits[j-1].Distance; j-- {
			hits[j], hits[j-1] = hits[j-1], hits[j]
		}
	}
	return hits
}

// MoveCharacter sweeps a kinematic character controller capsule
// (approximated as a sphere of the given radius) from origin by
// displacement, stopping short of any physics-masked collider it would
// otherwise penetrate. This is a simplified sweep-and-slide: it detects
// the nearest blocking collider along the move direction and clamps
// distance to just short of contact, without iterative sliding along
// multiple surfaces.
func (idx *SpatialIndex) MoveCharacter(origin Vec3, displacement Vec3, radius float64) Vec3 {
	dist := displacement.Length()
	if dist == 0 {
		return origin
	}
	dir := displacement.Normalized()
	hit, ok := idx.CastAvatarNearest(origin, dir, radius, dist, MaskPhysics)
	if !ok {
		return origin.Add(displacement)
	}
	safe := hit.Distance - 0.01
	if safe < 0 {
		safe = 0
	}
	return origin.Add(dir.Scale(safe))
}

// fibonacciSphereDirections returns n roughly-evenly-distributed unit
// vectors using the spherical Fibonacci spiral construction, used by
// DepenetrateCharacter to search for a clear direction to push out of
// an overlap.
func fibonacciSphereDirections(n int) []Vec3 {
	out := make([]Vec3, n)
	ga := math.Pi * (3 - math.Sqrt(5))
	for i := 0; i < n; i++ {
		y := 1 - (float64(i)/float64(n-1))*2
		r := math.Sqrt(1 - y*y)
		theta := ga * float64(i)
		out[i] = Vec3{X: math.Cos(theta) * r, Y: y, Z: math.Sin(theta) * r}
	}
	return out
}

// DepenetrateCharacter searches fibonacciSphereDirections(sampleCount)
// outward from origin for the first direction, at the given probe
// distance, with no blocking collider within radius, used to resolve an
// avatar spawned or teleported into overlapping geometry.
func (idx *SpatialIndex) DepenetrateCharacter(origin Vec3, radius, probeDistance float64, sampleCount int) Vec3 {
	idx.rebuildIfDirty()
	for _, dir := range fibonacciSphereDirections(sampleCount) {
		if _, blocked := idx.CastAvatarNearest(origin, dir, radius, probeDistance, MaskPhysics); !blocked {
			return origin.Add(dir.Scale(probeDistance))
		}
	}
	return origin
}

// GetGround returns the highest ground-masked collider's surface height
// under position's X/Z, casting down from 1000 above position (so a
// surface up to that far above position counts), or false if none is
// found.
func (idx *SpatialIndex) GetGround(position Vec3) (float64, bool) {
	hit, ok := idx.CastRayNearest(Vec3{position.X, position.Y + 1000, position.Z}, Vec3{0, -1, 0}, 2000, MaskGround)
	if !ok {
		return 0, false
	}
	return hit.Point.Y, true
}

// ClosestPoint returns the closest point on any mask-matching collider's
// AABB surface to p, and that collider.
func (idx *SpatialIndex) ClosestPoint(p Vec3, mask uint32) (Vec3, *ColliderShape, bool) {
	idx.rebuildIfDirty()
	var best Vec3
	var bestShape *ColliderShape
	bestDist := math.Inf(1)
	for i, c := range idx.colliders {
		if c.Mask&mask == 0 {
			continue
		}
		b := idx.bounds[i]
		cp := Vec3{
			X: clamp(p.X, b.Min.X, b.Max.X),
			Y: clamp(p.Y, b.Min.Y, b.Max.Y),
			Z: clamp(p.Z, b.Min.Z, b.Max.Z),
		}
		d := cp.Sub(p).Length()
		if d < bestDist {
			bestDist = d
			best = cp
			bestShape = c
		}
	}
	return best, bestShape, bestShape != nil
}

// AvatarCollisions returns every mask-matching collider whose world AABB
// currently overlaps a sphere of the given radius centered at position.
// Unlike CastAvatarAll this is a static overlap query along no direction
// at all: it answers "what is the avatar standing in right now" rather
// than "what would the avatar hit if it moved this way".
func (idx *SpatialIndex) AvatarCollisions(position Vec3, radius float64, mask uint32) []*ColliderShape {
	idx.rebuildIfDirty()
	var out []*ColliderShape
	for i, c := range idx.colliders {
		if c.Mask&mask == 0 {
			continue
		}
		b := idx.bounds[i]
		cp := Vec3{
			X: clamp(position.X, b.Min.X, b.Max.X),
			Y: clamp(position.Y, b.Min.Y, b.Max.Y),
			Z: clamp(position.Z, b.Min.Z, b.Max.Z),
		}
		if cp.Sub(position).Length() <= radius {
			out = append(out, c)
		}
	}
	return out
}

// AvatarConstraints computes, for every collider currently returned by
// AvatarCollisions at position/radius/mask, the minimal per-axis push-out
// vector that clears that one overlap, in the same order. A caller
// resolving several simultaneous overlaps (an avatar wedged into a
// corner) should apply each axis clamp in turn rather than averaging
// them: averaging two opposing push-outs can cancel to zero and leave
// the avatar still stuck.
func (idx *SpatialIndex) AvatarConstraints(position Vec3, radius float64, mask uint32) []Vec3 {
	idx.rebuildIfDirty()
	var out []Vec3
	for i, c := range idx.colliders {
		if c.Mask&mask == 0 {
			continue
		}
		b := idx.bounds[i]
		cp := Vec3{
			X: clamp(position.X, b.Min.X, b.Max.X),
			Y: clamp(position.Y, b.Min.Y, b.Max.Y),
			Z: clamp(position.Z, b.Min.Z, b.Max.Z),
		}
		delta := position.Sub(cp)
		dist := delta.Length()
		if dist > radius {
			continue
		}
		if dist == 0 {
			// position sits on or inside the collider surface: push along
			// whichever axis has the least penetration depth rather than
			// picking an arbitrary direction.
			out = append(out, leastPenetrationAxis(position, b, radius))
			continue
		}
		out = append(out, delta.Normalized().Scale(radius-dist))
	}
	return out
}

// leastPenetrationAxis returns the axis-aligned push-out vector with the
// smallest magnitude that would clear p (treated as a sphere of the
// given radius) out of box b, used when p has fully penetrated to a
// collider's closest-point surface and a direction can't be derived from
// a non-zero delta.
func leastPenetrationAxis(p Vec3, b AABB, radius float64) Vec3 {
	candidates := [6]struct {
		axis  Vec3
		depth float64
	}{
		{Vec3{-1, 0, 0}, p.X - b.Min.X + radius},
		{Vec3{1, 0, 0}, b.Max.X - p.X + radius},
		{Vec3{0, -1, 0}, p.Y - b.Min.Y + radius},
		{Vec3{0, 1, 0}, b.Max.Y - p.Y + radius},
		{Vec3{0, 0, -1}, p.Z - b.Min.Z + radius},
		{Vec3{0, 0, 1}, b.Max.Z - p.Z + radius},
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.depth < best.depth {
			best = c
		}
	}
	return best.axis.Scale(best.depth)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
