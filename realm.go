package openrealm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"
)

// RealmInfo is the parsed response of a realm's "/about" endpoint: the
// minimum a client needs to know which content/comms/lambdas servers
// back a world.
type RealmInfo struct {
	ContentServerURL string
	LambdasURL       string
	CommsAdapterURL  string
	// PublicKey identifies the realm for comms handshake, when present.
	PublicKey string
}

type aboutResponse struct {
	Content struct {
		PublicURL string `json:"publicUrl"`
	} `json:"content"`
	Lambdas struct {
		PublicURL string `json:"publicUrl"`
	} `json:"lambdas"`
	Comms struct {
		Adapter string `json:"adapter"`
	} `json:"comms"`
}

// Realm holds the current connection target for a running client: which
// server is authoritative right now, and a channel that signals when
// that changes (the user teleported to a different realm, or the realm
// handed off to another instance).
type Realm struct {
	info RealmInfo
	http *http.Client

	changed chan RealmInfo
}

// NewRealm returns a Realm with no server resolved yet.
func NewRealm() *Realm {
	return &Realm{
		http:    &http.Client{},
		changed: make(chan RealmInfo, 1),
	}
}

// Changed returns a channel that receives the new [RealmInfo] after every
// successful [Realm.Resolve], whether or not the realm differs. It holds
// one value; a newer value replaces one that has not been received yet.
func (r *Realm) Changed() <-chan RealmInfo { return r.changed }

// Current returns the most recently resolved realm info.
func (r *Realm) Current() RealmInfo { return r.info }

// Resolve fetches baseURL's "/about" endpoint and, on success, makes it
// the current realm, publishing the change on the Changed channel.
func (r *Realm) Resolve(ctx context.Context, baseURL string) error {
	url := strings.TrimRight(baseURL, "/") + "/about"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return NewRealmError(ErrInvariantViolation, "build about request", err)
	}
	resp, err := r.http.Do(req)
	if err != nil {
		return NewRealmError(ErrRemoteTransient, "about request failed", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 500 {
		return NewRealmError(ErrRealmDown, fmt.Sprintf("about returned %d", resp.StatusCode), nil)
	}
	if resp.StatusCode != http.StatusOK {
		return NewRealmError(ErrRemotePermanent, fmt.Sprintf("about returned %d", resp.StatusCode), nil)
	}
	var body aboutResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return NewRealmError(ErrDecodeError, "decode about response", err)
	}
	info := RealmInfo{
		ContentServerURL: body.Content.PublicURL,
		LambdasURL:       body.Lambdas.PublicURL,
		CommsAdapterURL:  body.Comms.Adapter,
	}
	r.info = info
	select {
	case <-r.changed:
	default:
	}
	select {
	case r.changed <- info:
	default:
	}
	return nil
}

// ActiveEntity is one scene pointer returned by the realm's
// active-entities endpoint.
type ActiveEntity struct {
	ID      string   `json:"id"`
	Pointer []string `json:"pointers"`
}

// FetchActiveEntities asks the content server which scene entities are
// active at the given parcel pointers ("x,y" strings).
func (r *Realm) FetchActiveEntities(ctx context.Context, pointers []string) ([]ActiveEntity, error) {
	if r.info.ContentServerURL == "" {
		return nil, NewRealmError(ErrInvariantViolation, "no realm resolved", nil)
	}
	reqBody, err := json.Marshal(map[string][]string{"pointers": pointers})
	if err != nil {
		return nil, NewRealmError(ErrInvariantViolation, "marshal active-entities request", err)
	}
	url := strings.TrimRight(r.info.ContentServerURL, "/") + "/entities/active"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(string(reqBody)))
	if err != nil {
		return nil, NewRealmError(ErrInvariantViolation, "build active-entities request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := r.http.Do(req)
	if err != nil {
		return nil, NewRealmError(ErrRemoteTransient, "active-entities request failed", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, NewRealmError(ErrRemotePermanent, fmt.Sprintf("active-entities returned %d", resp.StatusCode), nil)
	}
	var entities []ActiveEntity
	if err := json.NewDecoder(resp.Body).Decode(&entities); err != nil {
		return nil, NewRealmError(ErrDecodeError, "decode active-entities response", err)
	}
	return entities, nil
}

// FetchActiveEntitiesBatched issues one FetchActiveEntities call per
// batch in pointerBatches concurrently, for orchestrators that split a
// player's load radius into several pointer groups to keep any single
// request body small. It fails fast on the first batch error, the
// contract errgroup.Group gives.
func (r *Realm) FetchActiveEntitiesBatched(ctx context.Context, pointerBatches [][]string) ([]ActiveEntity, error) {
	results := make([][]ActiveEntity, len(pointerBatches))

	g, gctx := errgroup.WithContext(ctx)
	for i, batch := range pointerBatches {
		i, batch := i, batch
		g.Go(func() error {
			entities, err := r.FetchActiveEntities(gctx, batch)
			if err != nil {
				return err
			}
			results[i] = entities
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []ActiveEntity
	for _, r := range results {
		all = append(all, r...)
	}
	return all, nil
}
