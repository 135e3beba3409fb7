package openrealm

import "testing"

func TestTileForParcelAlignment(t *testing.T) {
	tile := tileForParcel(Parcel{5, 5}, 2) // size 4
	if tile.Origin != (Parcel{X: 4, Z: 4}) {
		t.Fatalf("got origin %+v, want (4,4)", tile.Origin)
	}
	if !tile.contains(Parcel{5, 5}) {
		t.Fatal("expected tile to contain the source parcel")
	}
}

func TestTileForParcelNegativeCoords(t *testing.T) {
	tile := tileForParcel(Parcel{-1, -1}, 1) // size 2
	if tile.Origin != (Parcel{X: -2, Z: -2}) {
		t.Fatalf("got origin %+v, want (-2,-2)", tile.Origin)
	}
}

func TestRequiredTilesNonEmpty(t *testing.T) {
	tiles := RequiredTiles(FocusPoint{Position: Parcel{0, 0}}, 8, nil)
	if len(tiles) == 0 {
		t.Fatal("expected at least one required tile")
	}
}

func TestRequiredTilesExcludesLiveParcels(t *testing.T) {
	live := []Parcel{{X: 0, Z: 0}}
	tiles := RequiredTiles(FocusPoint{Position: Parcel{0, 0}}, 8, live)
	for _, tile := range tiles {
		if tile.contains(live[0]) {
			t.Fatalf("got tile %+v covering a live parcel, want it excluded", tile)
		}
	}
}

func TestRequiredTilesStillCoversAreaAroundLiveParcel(t *testing.T) {
	live := []Parcel{{X: 0, Z: 0}}
	tiles := RequiredTiles(FocusPoint{Position: Parcel{0, 0}}, 8, live)
	found := false
	for _, tile := range tiles {
		if tile.contains(Parcel{X: 3, Z: 3}) {
			found = true
			break
		}
	}
	if !found {
		t.Fatal("expected a nearby non-live parcel to still be covered by some tile")
	}
}

func TestFindSubstituteWalksUpLevels(t *testing.T) {
	states := map[ImposterTile]*ImposterTileState{}
	level3 := tileForParcel(Parcel{0, 0}, 3)
	states[level3] = &ImposterTileState{Tile: level3, Resolution: ImposterReady}

	target := ImposterTile{Level: 0, Origin: Parcel{1, 1}}
	anc, uv, ok := FindSubstitute(target, states)
	if !ok {
		t.Fatal("expected to find a substitute")
	}
	if anc != level3 {
		t.Fatalf("got ancestor %+v, want %+v", anc, level3)
	}
	if uv[0] < 0 || uv[0] > 1 || uv[2] < uv[0] {
		t.Fatalf("got nonsensical uv window %+v", uv)
	}
}

func TestPrioritizeTilesOrdersByDistanceThenLevel(t *testing.T) {
	tiles := []ImposterTile{
		{Level: 1, Origin: Parcel{10, 10}},
		{Level: 0, Origin: Parcel{0, 0}},
		{Level: 2, Origin: Parcel{0, 0}},
	}
	PrioritizeTiles(tiles, FocusPoint{Position: Parcel{0, 0}})
	if tiles[0].Level != 0 {
		t.Fatalf("expected nearest/finest tile first, got %+v", tiles[0])
	}
	if tiles[len(tiles)-1].Origin != (Parcel{10, 10}) {
		t.Fatalf("expected farthest tile last, got %+v", tiles[len(tiles)-1])
	}
}
