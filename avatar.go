package openrealm

import "strings"

// Avatar is an assembled player body: its outfit, the composed meshes
// per visible category, and the entity it's attached under.
type Avatar struct {
	Root    *Entity
	Outfit  WearableOutfit
	Hidden  map[WearableCategory]bool
	meshes  map[WearableCategory]*GltfMeshInstance
	recolor map[WearableCategory]Color

	// ForeignPlayer marks an avatar belonging to another connected user
	// rather than the local player, which gets a billboarded name label
	// and skips local input-driven movement.
	ForeignPlayer bool
	DisplayName   string
	label         *Entity
}

// AssembleAvatar resolves outfit against catalog, composes the visible
// meshes (skipping hidden categories), and returns the avatar attached
// under parent.
func AssembleAvatar(parent *Entity, outfit WearableOutfit, catalog map[Urn]WearableDef, cache *meshCache) *Avatar {
	replaced := ReplacedSet(outfit.Equipped, catalog)
	slots := ResolveSlots(outfit, catalog, replaced)
	hidden := HideSet(slots, catalog)

	a := &Avatar{
		Root:    NewEntity(PlayerAnchorEntity),
		Outfit:  outfit,
		Hidden:  hidden,
		meshes:  make(map[WearableCategory]*GltfMeshInstance),
		recolor: make(map[WearableCategory]Color),
	}
	parent.AddChild(a.Root)

	for cat, urn := range slots {
		if hidden[cat] {
			continue
		}
		def, ok := catalog[urn]
		if !ok {
			continue
		}
		doc := &GltfDocument{} // resolved by caller's content layer in practice
		inst := cache.GetOrProcess(uint64(structuralHashBytes(def.MeshHash)), false, doc)
		a.meshes[cat] = inst
	}
	return a
}

func structuralHashBytes(h Hash) uint64 {
	return structuralHash([]byte(h))
}

// SetRecolor sets a tint applied to category's mesh (hair/skin color),
// cached per category so repeated identical recolors don't rebuild
// material instances.
func (a *Avatar) SetRecolor(cat WearableCategory, c Color) {
	a.recolor[cat] = c
}

// boneRemap maps a wearable mesh's joint name to the body skeleton's
// joint name. Exact name matches win; if a wearable ships a joint name
// the body skeleton doesn't have, it falls back to mapping onto any
// body joint whose name shares the wearable joint's suffix after the
// last '_', a deliberately loose rule that keeps third-party wearables
// with nonstandard rigs from rendering fully unskinned.
func boneRemap(wearableJoint string, bodyJoints []string) (string, bool) {
	for _, b := range bodyJoints {
		if b == wearableJoint {
			return b, true
		}
	}
	suffix := wearableJoint
	if i := strings.LastIndex(wearableJoint, "_"); i >= 0 {
		suffix = wearableJoint[i+1:]
	}
	for _, b := range bodyJoints {
		if strings.HasSuffix(b, suffix) {
			return b, true
		}
	}
	return "", false
}

// AttachPoint identifies a named socket on the body skeleton (hand,
// head, etc) that scene content or wearables can reparent entities
// under.
type AttachPoint string

const (
	AttachRightHand AttachPoint = "RightHand"
	AttachLeftHand  AttachPoint = "LeftHand"
	AttachHead      AttachPoint = "Head"
	AttachNameTag   AttachPoint = "NameTag"
)

// attachBoneName maps an AttachPoint to the skeleton joint it reparents
// under.
var attachBoneName = map[AttachPoint]string{
	AttachRightHand: "Avatar_RightHand",
	AttachLeftHand:  "Avatar_LeftHand",
	AttachHead:      "Avatar_Head",
	AttachNameTag:   "Avatar_Head",
}

// Attach reparents child under the named attach point, finding the
// matching entity among the avatar's skeleton joints (passed in as
// joints, keyed by bone name; a real assembly resolves these from the
// loaded GLTF's node hierarchy).
func (a *Avatar) Attach(point AttachPoint, child *Entity, joints map[string]*Entity) bool {
	boneName, ok := attachBoneName[point]
	if !ok {
		return false
	}
	bone, ok := joints[boneName]
	if !ok {
		return false
	}
	bone.AddChild(child)
	return true
}

// SetLabel attaches a billboarded name-tag entity above the avatar's
// head for foreign players. Billboard is a flag the renderer reads to
// orient the label toward the camera every frame rather than inheriting
// the avatar's own rotation.
func (a *Avatar) SetLabel(joints map[string]*Entity) {
	if !a.ForeignPlayer {
		return
	}
	label := NewEntity(0)
	label.Billboard = true
	label.SetPosition(Vec3{0, 0.3, 0})
	if !a.Attach(AttachNameTag, label, joints) {
		a.Root.AddChild(label)
	}
	a.label = label
}
