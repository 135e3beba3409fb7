package content

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStaticFallbackKnownName(t *testing.T) {
	p, ok := StaticFallback("default-male-body")
	if !ok || p == "" {
		t.Fatal("expected a built-in path for default-male-body")
	}
}

func TestStaticFallbackUnknownName(t *testing.T) {
	if _, ok := StaticFallback("not-a-reserved-name"); ok {
		t.Fatal("expected no fallback for an unreserved name")
	}
}

func TestFetchWearablesHitsUsersEndpointAndDecodesElements(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(map[string]any{
			"elements": []map[string]any{
				{
					"urn":      "urn:decentraland:off-chain:base-avatars:blue_bandana",
					"name":     "Blue Bandana",
					"category": "hat",
					"rarity":   "common",
					"individualData": []map[string]any{
						{"transferredAt": "1700000000"},
					},
				},
			},
		})
	}))
	defer srv.Close()

	c := NewLambdasClient(10)
	entries, err := c.FetchWearables(context.Background(), srv.URL+"/lambdas", "0xabc")
	if err != nil {
		t.Fatalf("FetchWearables: %v", err)
	}
	if gotPath != "/lambdas/users/0xabc/wearables" {
		t.Fatalf("got path %q, want /lambdas/users/0xabc/wearables", gotPath)
	}
	if len(entries) != 1 || entries[0].Category != "hat" {
		t.Fatalf("got %+v, want one hat entry", entries)
	}
	if len(entries[0].IndividualData) != 1 || entries[0].IndividualData[0].TransferredAt != "1700000000" {
		t.Fatalf("got %+v, want individualData[0].transferredAt = 1700000000", entries[0].IndividualData)
	}
}
