package openrealm

// WearableCategory is the equip slot a wearable occupies. Two wearables
// in the same category conflict; the later one in equip order wins.
type WearableCategory string

const (
	CategoryBodyShape WearableCategory = "body_shape"
	CategoryUpperBody WearableCategory = "upper_body"
	CategoryLowerBody WearableCategory = "lower_body"
	CategoryFeet      WearableCategory = "feet"
	CategoryHair      WearableCategory = "hair"
	CategoryFacialHair WearableCategory = "facial_hair"
	CategoryEyes      WearableCategory = "eyes"
	CategoryEyebrows  WearableCategory = "eyebrows"
	CategoryMouth     WearableCategory = "mouth"
	CategoryHat       WearableCategory = "hat"
)

// defaultWearables fills any category not explicitly equipped, keyed by
// body shape URN since male/female defaults differ.
var defaultWearables = map[Urn]map[WearableCategory]Urn{
	"urn:decentraland:off-chain:base-avatars:BaseMale": {
		CategoryUpperBody: "urn:decentraland:off-chain:base-avatars:blue_tshirt",
		CategoryLowerBody: "urn:decentraland:off-chain:base-avatars:trousers",
		CategoryFeet:      "urn:decentraland:off-chain:base-avatars:sneakers",
		CategoryHair:      "urn:decentraland:off-chain:base-avatars:casual_hair_01",
		CategoryEyes:      "urn:decentraland:off-chain:base-avatars:eyes_00",
		CategoryEyebrows:  "urn:decentraland:off-chain:base-avatars:eyebrows_00",
		CategoryMouth:     "urn:decentraland:off-chain:base-avatars:mouth_00",
	},
	"urn:decentraland:off-chain:base-avatars:BaseFemale": {
		CategoryUpperBody: "urn:decentraland:off-chain:base-avatars:f_sweater",
		CategoryLowerBody: "urn:decentraland:off-chain:base-avatars:f_jeans",
		CategoryFeet:      "urn:decentraland:off-chain:base-avatars:bun_shoes",
		CategoryHair:      "urn:decentraland:off-chain:base-avatars:standard_hair",
		CategoryEyes:      "urn:decentraland:off-chain:base-avatars:f_eyes_00",
		CategoryEyebrows:  "urn:decentraland:off-chain:base-avatars:f_eyebrows_00",
		CategoryMouth:     "urn:decentraland:off-chain:base-avatars:f_mouth_00",
	},
}

// WearableDef is a catalog entry: its category, the GLTF hash (or URN
// pointing at one) for its mesh, and the hide rules it carries.
type WearableDef struct {
	URN      Urn
	Category WearableCategory
	MeshHash Hash

	// OverrideHides lists categories this wearable always hides when
	// equipped (e.g. a full-body suit hides upper and lower body).
	OverrideHides []WearableCategory
	// OverrideReplaces lists categories this wearable replaces outright:
	// the replaced category's *default* no longer fills in if the player
	// hasn't equipped anything there (see [ResolveSlots]), and [HideSet]
	// drops the category at the final step even if the player equipped
	// something there explicitly.
	OverrideReplaces []WearableCategory
}

// WearableOutfit is a resolved equip set: body shape plus explicit
// wearables by category, prior to hide-set resolution.
type WearableOutfit struct {
	BodyShape Urn
	Equipped  map[WearableCategory]Urn
}

// ResolveSlots fills any category left empty in outfit.Equipped with the
// body shape's default, for categories not already implied hidden by
// override_replaces. Returns the fully-resolved slot map.
func ResolveSlots(outfit WearableOutfit, catalog map[Urn]WearableDef, replaced map[WearableCategory]bool) map[WearableCategory]Urn {
	resolved := make(map[WearableCategory]Urn, len(outfit.Equipped))
	for k, v := range outfit.Equipped {
		resolved[k] = v
	}
	defaults := defaultWearables[outfit.BodyShape]
	for cat, def := range defaults {
		if _, ok := resolved[cat]; ok {
			continue
		}
		if replaced[cat] {
			continue
		}
		resolved[cat] = def
	}
	return resolved
}

// HideSet computes the union of every equipped wearable's
// OverrideHides and OverrideReplaces, per the protocol's "both hide
// sources apply at the final drop step, but are tracked separately
// while slots are being resolved" rule: during slot resolution
// OverrideReplaces only keeps a default from filling in and leaves an
// explicit equip in its slot (see [ResolveSlots]), but at the end both
// sets drop their target categories from the rendered mesh the same way.
func HideSet(equipped map[WearableCategory]Urn, catalog map[Urn]WearableDef) map[WearableCategory]bool {
	hidden := make(map[WearableCategory]bool)
	for _, urn := range equipped {
		def, ok := catalog[urn]
		if !ok {
			continue
		}
		for _, c := range def.OverrideHides {
			hidden[c] = true
		}
		for _, c := range def.OverrideReplaces {
			hidden[c] = true
		}
	}
	return hidden
}

// ReplacedSet computes just the OverrideReplaces union, used as the
// `replaced` input to [ResolveSlots] before [HideSet] is computed on the
// fully resolved slot map.
func ReplacedSet(equipped map[WearableCategory]Urn, catalog map[Urn]WearableDef) map[WearableCategory]bool {
	replaced := make(map[WearableCategory]bool)
	for _, urn := range equipped {
		def, ok := catalog[urn]
		if !ok {
			continue
		}
		for _, c := range def.OverrideReplaces {
			replaced[c] = true
		}
	}
	return replaced
}
