package openrealm

import "google.golang.org/protobuf/encoding/protowire"

// Built-in component ids this client knows how to materialize. Assigned
// by the wire protocol, not by this client; values mirror the scene
// runtime's well-known component numbering.
const (
	ComponentTransform                 ComponentId = 1
	ComponentGltfContainer             ComponentId = 1041
	ComponentGltfContainerLoadingState ComponentId = 1042
	ComponentMeshRenderer              ComponentId = 1017
	ComponentMeshCollider              ComponentId = 1018
	ComponentMaterial                  ComponentId = 1019
)

// GltfContainerSpec is the decoded content of a GltfContainer component
// message: which GLTF asset to load, and the default visible/invisible
// collider masks nodes inside it inherit unless they specify their own.
type GltfContainerSpec struct {
	Src            string
	VisibleMask    uint32
	InvisibleMask  uint32
	DisablePhysics bool
}

// decodeGltfContainer parses a GltfContainer payload's well-known
// fields, skipping (not failing on) any field number it doesn't
// recognize, so a newer protocol revision adding fields this client
// doesn't know about yet still decodes the fields it does.
func decodeGltfContainer(payload []byte) GltfContainerSpec {
	var spec GltfContainerSpec
	b := payload
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return spec
		}
		b = b[n:]
		switch {
		case num == 1 && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return spec
			}
			spec.Src = v
			b = b[n:]
		case num == 2 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return spec
			}
			spec.VisibleMask = uint32(v)
			b = b[n:]
		case num == 3 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return spec
			}
			spec.InvisibleMask = uint32(v)
			b = b[n:]
		case num == 4 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return spec
			}
			spec.DisablePhysics = v != 0
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return spec
			}
			b = b[n:]
		}
	}
	return spec
}

// gltfContainerHandler is the registered materializer for
// ComponentGltfContainer: on set, it begins tracking the entity as a
// GLTF load blocker (see [Scene.TrackGltfContainer]) so the scene holds
// rendering until the asset reaches GltfReady or the tracking window
// elapses; on delete it's a no-op, since the blocker either already
// cleared or will expire on its own.
func gltfContainerHandler(scene *Scene, e *Entity, payload []byte) {
	if payload == nil {
		return
	}
	decodeGltfContainer(payload)
	scene.TrackGltfContainer(e.ID)
}

func init() {
	RegisterComponent(ComponentGltfContainer, ComponentRegistration{
		Crdt:    CrdtLWWEnt,
		Handler: gltfContainerHandler,
	})
}
