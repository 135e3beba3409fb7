package openrealm

// ColliderKind is the geometric shape of a collider.
type ColliderKind int

const (
	ColliderBox ColliderKind = iota
	ColliderPlane
	ColliderSphere
	ColliderCylinder
	ColliderTrimesh
)

// Mask bit channels a collider can belong to: pointer-interaction,
// physics (avatar/KCC), and ground (defines walkable floor height).
const (
	MaskPointer uint32 = 1 << iota
	MaskPhysics
	MaskGround
)

// ColliderShape is one collider attached to an entity, in the entity's
// local space. Ray casts transform it by the owning entity's current
// world transform at query time; the closest-point and avatar overlap
// queries use world bounds the [SpatialIndex] caches and rebuilds only
// after an Insert or Remove, so they do not see an owner moved since.
type ColliderShape struct {
	Kind ColliderKind
	Mask uint32

	// Box half-extents, Sphere/Cylinder radius (Cylinder uses X as
	// radius and Y as half-height), Plane normal+offset, or Trimesh mesh
	// data, depending on Kind.
	HalfExtents Vec3
	Radius      float64
	HalfHeight  float64
	Normal      Vec3
	Offset      float64
	Mesh        *GltfPrimitive

	Owner *Entity
}

// groundColliderSize is the half-extent of the synthetic ground box
// inserted under every parcel that defines no explicit ground geometry:
// an 8m x 8m footprint, 8m tall, so avatars standing at a parcel's edge
// still find floor.
var groundColliderSize = Vec3{X: 4, Y: 4, Z: 4}

// NewGroundCollider returns the synthetic ground collider for a parcel
// with no scene-authored floor, centered at the parcel's world-space
// center with its top surface at y=0.
func NewGroundCollider(parcelCenter Vec3) *ColliderShape {
	center := parcelCenter
	center.Y -= groundColliderSize.Y
	owner := NewEntity(0)
	owner.SetPosition(center)
	return &ColliderShape{
		Kind:        ColliderBox,
		Mask:        MaskGround | MaskPhysics,
		HalfExtents: groundColliderSize,
		Owner:       owner,
	}
}
