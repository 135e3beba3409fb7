package openrealm

import (
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

// GltfLoadState tracks a GLTF asset's progress through the materializer
// pipeline: fetched, parsed, and finally processed into renderer-ready
// mesh/collider/material data.
type GltfLoadState int

const (
	GltfRequested GltfLoadState = iota
	GltfLoading
	GltfLoaded
	GltfProcessed
	GltfReady
)

// GltfNode is one node of a parsed GLTF document, generalized far enough
// to drive processing without depending on a specific decoder library.
type GltfNode struct {
	Name     string
	Children []*GltfNode

	Translation Vec3
	Rotation    Quaternion
	Scale       Vec3

	Mesh *GltfPrimitive // nil if this node carries no mesh

	// ColliderMask is the explicit collider mask for this node, read
	// from the node's "extras" field. Nil means unset (inherit from
	// parent extras, then container defaults); distinguishing unset
	// from an explicit zero is why this is a pointer rather than a
	// bare uint32.
	ColliderMask *uint32

	// Skin, when non-nil, carries this node's joint/weight data prior
	// to validation; processing strips it to nil if joints and weights
	// disagree in count (a malformed export we'd rather render rigid
	// than crash on).
	Skin *GltfSkin
}

// GltfSkin is a mesh's joint/weight skinning data.
type GltfSkin struct {
	JointIndices [][4]uint16
	Weights      [][4]float32
	JointNames   []string
}

// GltfPrimitive is a single mesh primitive: a vertex/index buffer plus
// the material index it uses. Structural hashing runs over this struct
// to detect equivalent meshes across unrelated GLTF assets.
type GltfPrimitive struct {
	Positions []Vec3
	Normals   []Vec3
	UVs       [][2]float32
	Indices   []uint32

	MaterialIndex int

	// HasMorphTargets disables the structural-hash mesh cache: morph
	// target data isn't captured by the hash below, so two primitives
	// that hash equal might animate differently.
	HasMorphTargets bool
}

// GltfDocument is the parsed result of a GLTF/GLB asset, prior to
// per-instance processing (root rotation, collider extraction).
type GltfDocument struct {
	Root *GltfNode
}

// GltfMeshInstance is the processed, scene-ready result of materializing
// one GLTF document for one entity: the mesh geometry, with root children
// rotated for engine handedness. Collider-only nodes stay in Doc; they are
// not removed or marked invisible.
type GltfMeshInstance struct {
	State GltfLoadState
	Doc   *GltfDocument

	// Colliders extracted from every mesh-bearing node whose resolved
	// mask is non-zero: "_collider"-suffixed nodes by default, plus any
	// visible mesh node carrying an explicit non-zero override.
	Colliders []*ColliderShape

	// vertexBuf is a high-water-mark scratch buffer reused across frames
	// so per-primitive vertex rebuilds don't allocate once warmed up.
	vertexBuf []ebiten.Vertex
}

// Vertices projects prim's positions/UVs into an ebiten.DrawTriangles
// vertex buffer tinted by tint, reusing inst's scratch buffer across
// calls the same way the engine's mesh batching reuses transformedVerts.
func (inst *GltfMeshInstance) Vertices(prim *GltfPrimitive, tint Color) []ebiten.Vertex {
	need := len(prim.Positions)
	if cap(inst.vertexBuf) < need {
		inst.vertexBuf = make([]ebiten.Vertex, need)
	}
	buf := inst.vertexBuf[:need]

	cr := float32(tint.R)
	cg := float32(tint.G)
	cb := float32(tint.B)
	ca := float32(tint.A)

	for i, p := range prim.Positions {
		var u, v float32
		if i < len(prim.UVs) {
			u, v = prim.UVs[i][0], prim.UVs[i][1]
		}
		buf[i] = ebiten.Vertex{
			DstX:   float32(p.X),
			DstY:   float32(p.Y),
			SrcX:   u,
			SrcY:   v,
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		}
	}
	return buf
}

// gltfHandednessRotation is applied to every direct child of a GLTF's
// root node on load, converting the asset's right-handed Y-up export
// convention into the engine's world orientation.
var gltfHandednessRotation = FromAxisAngleY(3.14159265358979323846)

// colliderSuffix marks a node as collider-only. Such a node gets the
// invisible-node default collider mask; it is not removed from the
// document.
const colliderSuffix = "_collider"

// isColliderNode reports whether a GLTF node represents collision
// geometry rather than visible geometry.
func isColliderNode(n *GltfNode) bool {
	return strings.HasSuffix(n.Name, colliderSuffix)
}

// defaultVisibleColliderMask is applied to an ordinary visible mesh node
// when neither it nor any ancestor specifies a collider mask: visible
// geometry doesn't block anything by default.
const defaultVisibleColliderMask uint32 = 0

// defaultInvisibleColliderMask is applied to a "_collider"-suffixed node
// when neither it nor any ancestor specifies one: invisible collision
// geometry blocks both the character controller and pointer raycasts
// unless an author explicitly narrows it.
const defaultInvisibleColliderMask = MaskPhysics | MaskPointer

// resolveColliderMask walks from n up through ancestors (node extras,
// then parent extras) before falling back to the visible/invisible
// default, implementing the "nearest explicit setting wins" inheritance
// rule. invisible selects which default applies once no explicit mask is
// found anywhere in the chain.
func resolveColliderMask(n *GltfNode, ancestors []*GltfNode, invisible bool) uint32 {
	if n.ColliderMask != nil {
		return *n.ColliderMask
	}
	for i := len(ancestors) - 1; i >= 0; i-- {
		if ancestors[i].ColliderMask != nil {
			return *ancestors[i].ColliderMask
		}
	}
	if invisible {
		return defaultInvisibleColliderMask
	}
	return defaultVisibleColliderMask
}

// validateSkin strips n's skin if joint and weight counts disagree,
// returning the (possibly nilled) skin. A mismatched skin is treated as
// a malformed export: rather than fail the whole mesh, openrealm renders
// it rigid.
func validateSkin(skin *GltfSkin) *GltfSkin {
	if skin == nil {
		return nil
	}
	if len(skin.JointIndices) != len(skin.Weights) {
		return nil
	}
	return skin
}

// normalizeJointWeights rescales each vertex's four skin weights so they
// sum to 1, which GLTF exporters don't always guarantee.
func normalizeJointWeights(skin *GltfSkin) {
	for i, w := range skin.Weights {
		var sum float32
		for _, c := range w {
			sum += c
		}
		if sum == 0 {
			continue
		}
		for j := range w {
			skin.Weights[i][j] = w[j] / sum
		}
	}
}

// ProcessGltf walks doc's node tree, rotating root children for
// handedness, resolving a collider mask for every mesh-bearing node
// (visible nodes default to no collider, "_collider"-suffixed nodes
// default to blocking physics and pointer raycasts, either overridable
// per node or per ancestor), and validating/normalizing skin data. It
// returns a ready-to-use GltfMeshInstance.
func ProcessGltf(doc *GltfDocument) *GltfMeshInstance {
	inst := &GltfMeshInstance{State: GltfProcessed, Doc: doc}

	if doc.Root == nil {
		inst.State = GltfReady
		return inst
	}

	for _, child := range doc.Root.Children {
		child.Rotation = gltfHandednessRotation.Mul(child.Rotation)
	}

	var walk func(n *GltfNode, ancestors []*GltfNode)
	walk = func(n *GltfNode, ancestors []*GltfNode) {
		n.Skin = validateSkin(n.Skin)
		if n.Skin != nil {
			normalizeJointWeights(n.Skin)
		}
		if n.Mesh != nil {
			invisible := isColliderNode(n)
			if mask := resolveColliderMask(n, ancestors, invisible); mask != 0 {
				inst.Colliders = append(inst.Colliders, &ColliderShape{
					Kind: ColliderTrimesh,
					Mask: mask,
					Mesh: n.Mesh,
				})
			}
		}
		next := append(ancestors, n)
		for _, c := range n.Children {
			walk(c, next)
		}
	}
	walk(doc.Root, nil)

	inst.State = GltfReady
	return inst
}

// meshCache memoizes processed meshes by structural hash so that two
// scenes (or two entities in the same scene) referencing equivalent
// geometry share one processed instance. Meshes with morph targets are
// never cached: their animated state makes structural equality
// insufficient for safe sharing.
type meshCache struct {
	mu      sync.Mutex
	entries map[uint64]*GltfMeshInstance
}

func newMeshCache() *meshCache {
	return &meshCache{entries: make(map[uint64]*GltfMeshInstance)}
}

// GetOrProcess returns a cached instance for hash if one exists and
// hasMorphTargets is false; otherwise it processes doc, caches the
// result (unless it has morph targets), and returns it.
func (c *meshCache) GetOrProcess(hash uint64, hasMorphTargets bool, doc *GltfDocument) *GltfMeshInstance {
	if !hasMorphTargets {
		c.mu.Lock()
		if inst, ok := c.entries[hash]; ok {
			c.mu.Unlock()
			return inst
		}
		c.mu.Unlock()
	}

	inst := ProcessGltf(doc)

	if !hasMorphTargets {
		c.mu.Lock()
		c.entries[hash] = inst
		c.mu.Unlock()
	}
	return inst
}
