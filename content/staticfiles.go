package content

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/time/rate"
)

// staticFallbacks maps reserved names to a built-in path shipped with the
// client itself, for content that normal pointer/hash resolution never
// produces a remote URL for: the platform's default wearables, used to
// fill any avatar slot a player's profile leaves uncovered.
var staticFallbacks = map[string]string{
	"default-male-body":       "builtin/wearables/bodyshapes/male.glb",
	"default-female-body":     "builtin/wearables/bodyshapes/female.glb",
	"default-male-head":       "builtin/wearables/head/male_head.glb",
	"default-female-head":     "builtin/wearables/head/female_head.glb",
	"default-male-hair":       "builtin/wearables/hair/male_hair_regular.glb",
	"default-female-hair":     "builtin/wearables/hair/female_hair_regular.glb",
	"default-male-upper-body": "builtin/wearables/upper_body/male_tshirt.glb",
	"default-male-lower-body": "builtin/wearables/lower_body/male_jeans.glb",
	"default-feet":            "builtin/wearables/feet/sneakers.glb",
	"default-eyes":            "builtin/wearables/eyes/eyes_00.glb",
	"default-eyebrows":        "builtin/wearables/eyebrows/eyebrows_00.glb",
	"default-mouth":           "builtin/wearables/mouth/mouth_00.glb",
}

// StaticFallback returns the built-in path for a reserved name, if one
// exists. Callers try this only after normal pointer/hash resolution
// yields no remote URL for name.
func StaticFallback(name string) (string, bool) {
	p, ok := staticFallbacks[name]
	return p, ok
}

// LambdasClient calls a realm's lambdas API (wearable catalog lookups,
// profile data) which is rate-limited more conservatively than the
// content endpoint since it's backed by a database rather than static
// blob storage.
type LambdasClient struct {
	http    *http.Client
	limiter *rate.Limiter
}

// NewLambdasClient returns a client allowing at most reqsPerSecond
// requests/sec with a burst of one.
func NewLambdasClient(reqsPerSecond float64) *LambdasClient {
	return &LambdasClient{
		http:    &http.Client{},
		limiter: rate.NewLimiter(rate.Limit(reqsPerSecond), 1),
	}
}

// WearableEntry is a single item in a lambdas wearables response: one
// wearable an address owns, with the data needed to rank duplicates
// (transferredAt) and slot it into the avatar assembly pipeline.
type WearableEntry struct {
	URN      string `json:"urn"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Rarity   string `json:"rarity"`

	IndividualData []struct {
		TransferredAt string `json:"transferredAt"`
	} `json:"individualData"`
}

// FetchWearables looks up every wearable address owns against baseURL's
// lambdas wearables endpoint.
func (c *LambdasClient) FetchWearables(ctx context.Context, baseURL, address string) ([]WearableEntry, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	url := strings.TrimRight(baseURL, "/") + "/users/" + address + "/wearables"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("lambdas wearables: status %d", resp.StatusCode)
	}
	var body struct {
		Elements []WearableEntry `json:"elements"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode lambdas response: %w", err)
	}
	return body.Elements, nil
}
