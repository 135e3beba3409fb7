package openrealm

import "testing"

func TestBoneRemapExactMatch(t *testing.T) {
	bodyJoints := []string{"Avatar_Hips", "Avatar_Spine", "Avatar_Head"}
	name, ok := boneRemap("Avatar_Head", bodyJoints)
	if !ok || name != "Avatar_Head" {
		t.Fatalf("got (%q, %v), want exact match Avatar_Head", name, ok)
	}
}

func TestBoneRemapSuffixFallback(t *testing.T) {
	bodyJoints := []string{"Avatar_Hips", "Avatar_Spine", "Avatar_Head"}
	name, ok := boneRemap("Wearable_Custom_Head", bodyJoints)
	if !ok || name != "Avatar_Head" {
		t.Fatalf("got (%q, %v), want suffix fallback to Avatar_Head", name, ok)
	}
}

func TestBoneRemapNoMatch(t *testing.T) {
	bodyJoints := []string{"Avatar_Hips", "Avatar_Spine"}
	_, ok := boneRemap("Wearable_Custom_Tail", bodyJoints)
	if ok {
		t.Fatalf("got match, want none since no body joint shares the suffix")
	}
}

func TestAssembleAvatarSkipsHiddenCategories(t *testing.T) {
	catalog := map[Urn]WearableDef{
		"urn:suit": {
			URN:           "urn:suit",
			Category:      CategoryUpperBody,
			MeshHash:      "hash-suit",
			OverrideHides: []WearableCategory{CategoryLowerBody},
		},
		"urn:pants": {
			URN:      "urn:pants",
			Category: CategoryLowerBody,
			MeshHash: "hash-pants",
		},
	}
	outfit := WearableOutfit{
		BodyShape: "urn:decentraland:off-chain:base-avatars:BaseMale",
		Equipped: map[WearableCategory]Urn{
			CategoryUpperBody: "urn:suit",
			CategoryLowerBody: "urn:pants",
		},
	}
	root := NewEntity(0)
	cache := newMeshCache()
	a := AssembleAvatar(root, outfit, catalog, cache)

	if _, ok := a.meshes[CategoryLowerBody]; ok {
		t.Fatalf("got lower_body mesh composed, want hidden by suit's OverrideHides")
	}
	if _, ok := a.meshes[CategoryUpperBody]; !ok {
		t.Fatalf("got upper_body mesh missing, want present")
	}
}

func TestAssembleAvatarAttachesRootUnderParent(t *testing.T) {
	root := NewEntity(0)
	outfit := WearableOutfit{BodyShape: "urn:decentraland:off-chain:base-avatars:BaseMale"}
	a := AssembleAvatar(root, outfit, map[Urn]WearableDef{}, newMeshCache())
	if a.Root.Parent() != root {
		t.Fatalf("got avatar root's parent %v, want %v", a.Root.Parent(), root)
	}
}

func TestSetLabelOnlyAppliesToForeignPlayers(t *testing.T) {
	root := NewEntity(0)
	outfit := WearableOutfit{BodyShape: "urn:decentraland:off-chain:base-avatars:BaseMale"}
	a := AssembleAvatar(root, outfit, map[Urn]WearableDef{}, newMeshCache())
	a.SetLabel(map[string]*Entity{})
	if a.label != nil {
		t.Fatalf("got label set for local player, want nil")
	}

	a.ForeignPlayer = true
	a.SetLabel(map[string]*Entity{})
	if a.label == nil {
		t.Fatalf("got no label for foreign player, want one attached")
	}
	if !a.label.Billboard {
		t.Fatalf("got label.Billboard=false, want true so it faces the camera")
	}
}

func TestAttachReturnsFalseWhenBoneMissing(t *testing.T) {
	root := NewEntity(0)
	outfit := WearableOutfit{BodyShape: "urn:decentraland:off-chain:base-avatars:BaseMale"}
	a := AssembleAvatar(root, outfit, map[Urn]WearableDef{}, newMeshCache())
	child := NewEntity(1)
	ok := a.Attach(AttachRightHand, child, map[string]*Entity{})
	if ok {
		t.Fatalf("got true, want false since no joint map was supplied")
	}
}
