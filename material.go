package openrealm

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/draw"
)

// TextureSourceKind distinguishes where a material's texture bytes come
// from; this determines whether the material is safe to cache by
// structural hash (File is immutable; Avatar/Video/UI sources mutate
// after creation and so are never cached).
type TextureSourceKind int

const (
	TextureFile TextureSourceKind = iota
	TextureAvatar
	TextureVideo
	TextureUI
)

// TextureSource is a reference to a texture, resolved lazily by the
// content layer.
type TextureSource struct {
	Kind TextureSourceKind
	Hash Hash // meaningful only for TextureFile
}

// mutable reports whether the texture's pixel contents can change after
// creation without the handle itself changing, which disqualifies a
// material using it from the structural-hash cache.
func (t TextureSource) mutable() bool {
	return t.Kind != TextureFile
}

// maxTextureDim caps a decoded texture's longest side; scene content
// occasionally ships textures far larger than any GPU budget needs for
// a parcel-scale object.
const maxTextureDim = 2048

// DecodeTexture decodes raw file bytes (PNG/JPEG) fetched by the content
// layer into an ebiten.Image, downscaling with a bilinear filter if
// either dimension exceeds maxTextureDim.
func DecodeTexture(data []byte) (*ebiten.Image, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, NewRealmError(ErrDecodeError, "decode texture", err)
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w > maxTextureDim || h > maxTextureDim {
		scale := float64(maxTextureDim) / float64(w)
		if hs := float64(maxTextureDim) / float64(h); hs < scale {
			scale = hs
		}
		dw := int(float64(w) * scale)
		dh := int(float64(h) * scale)
		dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
		src = dst
	}

	return ebiten.NewImageFromImage(src), nil
}

// MaterialKind selects the shading model.
type MaterialKind int

const (
	MaterialUnlit MaterialKind = iota
	MaterialPBR
)

// AlphaMode controls how a material's alpha channel is interpreted.
// Openrealm derives it by the policy in [ResolveAlphaMode] rather than
// trusting the GLTF source's alphaMode string directly, since many
// scenes ship Mask materials with no cutoff set.
type AlphaMode int

const (
	AlphaOpaque AlphaMode = iota
	AlphaMask
	AlphaBlend
)

// ResolveAlphaMode implements the alpha-mode resolution policy:
// an explicit mode from the source always wins; otherwise, a nonzero
// alphaCutoff implies Mask; otherwise a base color alpha below 1
// implies Blend; otherwise Opaque.
func ResolveAlphaMode(explicit *AlphaMode, alphaCutoff float64, baseAlpha float64) (AlphaMode, float64) {
	if explicit != nil {
		return *explicit, alphaCutoff
	}
	if alphaCutoff > 0 {
		return AlphaMask, alphaCutoff
	}
	if baseAlpha < 1 {
		return AlphaBlend, 0
	}
	return AlphaOpaque, 0
}

// MaterialInstance is a fully resolved material ready for the renderer.
// Fields below EmissiveColor only take effect when Kind is MaterialPBR;
// an Unlit material ignores them.
type MaterialInstance struct {
	Kind        MaterialKind
	BaseColor   Color
	Texture     TextureSource
	Alpha       AlphaMode
	AlphaCutoff float64

	// EmissiveColor/EmissiveIntensity add light the material emits
	// regardless of scene lighting; EmissiveTexture, when set, modulates
	// EmissiveColor per-texel the same way Texture modulates BaseColor.
	EmissiveColor      Color
	EmissiveIntensity  float64
	EmissiveTexture    TextureSource
	HasEmissiveTexture bool

	// Metallic and Roughness are the metallic-roughness PBR workflow's
	// two scalar factors, each in [0, 1]; MetallicRoughnessTexture, when
	// set, supplies per-texel factors (roughness in the green channel,
	// metallic in the blue channel, matching glTF's packing) multiplied
	// against the scalars.
	Metallic                    float64
	Roughness                   float64
	MetallicRoughnessTexture    TextureSource
	HasMetallicRoughnessTexture bool

	// NormalTexture perturbs shading normals in tangent space;
	// NormalScale scales its XY channels before reconstructing Z.
	NormalTexture    TextureSource
	HasNormalTexture bool
	NormalScale      float64

	// SortKey orders Blend materials back-to-front; it has no effect on
	// Opaque/Mask materials, which the renderer z-tests normally.
	SortKey float64
}

// DepthBiasSortKey computes a stable sort key for a Blend material at
// the given camera-space depth, applying a small per-material bias so
// that coplanar blend surfaces (common in decal-style scene content)
// sort deterministically rather than flickering frame to frame.
func DepthBiasSortKey(depth float64, bias float64) float64 {
	return depth + bias
}

// SortBlendMaterials orders insts back-to-front by SortKey, the draw
// order the renderer must use for correct alpha blending.
func SortBlendMaterials(insts []*MaterialInstance) {
	sort.Slice(insts, func(i, j int) bool {
		return insts[i].SortKey > insts[j].SortKey
	})
}

// SceneBounds is a scene's bound polygon: the convex hull of its parcel
// footprint, expressed in world XZ. Entities whose world position falls
// outside it are faded rather than clipped outright, matching the
// smoothstep-based "soft boundary" the protocol expects scenes to
// respect at their own edges.
type SceneBounds struct {
	Hull []Vec3 // XZ convex hull vertices, Y ignored
}

// smoothstep is the classic Hermite interpolation used for the
// out-of-bounds fade curve.
func smoothstep(edge0, edge1, x float64) float64 {
	if edge1 == edge0 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := (x - edge0) / (edge1 - edge0)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return t * t * (3 - 2*t)
}

// FadeAlpha returns the opacity multiplier for a point at the given
// signed distance outside the scene bounds (0 = on the boundary,
// positive = outside). Fully inside (distance <= 0) is always 1; fully
// faded by fadeDistance meters past the edge.
func FadeAlpha(distanceOutside, fadeDistance float64) float64 {
	if distanceOutside <= 0 {
		return 1
	}
	return 1 - smoothstep(0, fadeDistance, distanceOutside)
}

// materialCache memoizes materials by structural hash, the same pattern
// as [meshCache]: materials whose texture source is mutable are never
// cached, since a cached instance could be reused across entities that
// expect independent video/avatar textures.
type materialCache struct {
	entries map[uint64]*MaterialInstance
}

func newMaterialCache() *materialCache {
	return &materialCache{entries: make(map[uint64]*MaterialInstance)}
}

func (c *materialCache) GetOrCreate(hash uint64, src TextureSource, build func() *MaterialInstance) *MaterialInstance {
	if !src.mutable() {
		if m, ok := c.entries[hash]; ok {
			return m
		}
	}
	m := build()
	if !src.mutable() {
		c.entries[hash] = m
	}
	return m
}
