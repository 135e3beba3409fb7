package openrealm

import "testing"

func TestResolveSlotsFillsDefaultsForUnequippedCategories(t *testing.T) {
	outfit := WearableOutfit{
		BodyShape: "urn:decentraland:off-chain:base-avatars:BaseMale",
		Equipped:  map[WearableCategory]Urn{},
	}
	slots := ResolveSlots(outfit, nil, nil)
	if slots[CategoryHair] != "urn:decentraland:off-chain:base-avatars:casual_hair_01" {
		t.Fatalf("got %q, want default hair", slots[CategoryHair])
	}
}

func TestResolveSlotsKeepsExplicitEquip(t *testing.T) {
	outfit := WearableOutfit{
		BodyShape: "urn:decentraland:off-chain:base-avatars:BaseMale",
		Equipped: map[WearableCategory]Urn{
			CategoryHair: "urn:custom:fancy_hair",
		},
	}
	slots := ResolveSlots(outfit, nil, nil)
	if slots[CategoryHair] != "urn:custom:fancy_hair" {
		t.Fatalf("got %q, want explicit equip preserved", slots[CategoryHair])
	}
}

func TestResolveSlotsSkipsDefaultForReplacedCategory(t *testing.T) {
	outfit := WearableOutfit{
		BodyShape: "urn:decentraland:off-chain:base-avatars:BaseMale",
		Equipped:  map[WearableCategory]Urn{},
	}
	replaced := map[WearableCategory]bool{CategoryHair: true}
	slots := ResolveSlots(outfit, nil, replaced)
	if _, ok := slots[CategoryHair]; ok {
		t.Fatalf("got hair slot filled, want absent since it's replaced")
	}
}

func TestHideSetUnionsHidesAndReplaces(t *testing.T) {
	catalog := map[Urn]WearableDef{
		"urn:suit": {
			URN:              "urn:suit",
			Category:         CategoryUpperBody,
			OverrideHides:    []WearableCategory{CategoryLowerBody},
			OverrideReplaces: []WearableCategory{CategoryFeet},
		},
	}
	equipped := map[WearableCategory]Urn{CategoryUpperBody: "urn:suit"}
	hidden := HideSet(equipped, catalog)
	if !hidden[CategoryLowerBody] || !hidden[CategoryFeet] {
		t.Fatalf("got %v, want both lower_body and feet hidden", hidden)
	}
}

func TestReplacedSetDoesNotIncludeHides(t *testing.T) {
	catalog := map[Urn]WearableDef{
		"urn:suit": {
			URN:              "urn:suit",
			Category:         CategoryUpperBody,
			OverrideHides:    []WearableCategory{CategoryLowerBody},
			OverrideReplaces: []WearableCategory{CategoryFeet},
		},
	}
	equipped := map[WearableCategory]Urn{CategoryUpperBody: "urn:suit"}
	replaced := ReplacedSet(equipped, catalog)
	if replaced[CategoryLowerBody] {
		t.Fatalf("got lower_body in replaced set, want only feet (hides is tracked separately)")
	}
	if !replaced[CategoryFeet] {
		t.Fatalf("got feet missing from replaced set")
	}
}

func TestResolveSlotsReplacedDoesNotOverrideExplicitEquip(t *testing.T) {
	// A category the player explicitly equipped must survive even if
	// another wearable's OverrideReplaces names it: replaced only
	// suppresses the *default* fill-in, per HideSet's doc comment.
	outfit := WearableOutfit{
		BodyShape: "urn:decentraland:off-chain:base-avatars:BaseMale",
		Equipped: map[WearableCategory]Urn{
			CategoryFeet: "urn:custom:boots",
		},
	}
	replaced := map[WearableCategory]bool{CategoryFeet: true}
	slots := ResolveSlots(outfit, nil, replaced)
	if slots[CategoryFeet] != "urn:custom:boots" {
		t.Fatalf("got %q, want explicit equip preserved despite replaced flag", slots[CategoryFeet])
	}
}
