package openrealm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRealmResolveParsesAboutResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"content": {"publicUrl": "https://content.example/"},
			"lambdas": {"publicUrl": "https://lambdas.example/"},
			"comms": {"adapter": "ws-room:wss://comms.example"}
		}`))
	}))
	defer srv.Close()

	r := NewRealm()
	if err := r.Resolve(context.Background(), srv.URL); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	info := r.Current()
	if info.ContentServerURL != "https://content.example/" {
		t.Fatalf("got %q, want content URL", info.ContentServerURL)
	}
	if info.LambdasURL != "https://lambdas.example/" {
		t.Fatalf("got %q, want lambdas URL", info.LambdasURL)
	}
}

func TestRealmResolvePublishesOnChangedChannel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content":{"publicUrl":"https://content.example/"}}`))
	}))
	defer srv.Close()

	r := NewRealm()
	if err := r.Resolve(context.Background(), srv.URL); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	select {
	case info := <-r.Changed():
		if info.ContentServerURL != "https://content.example/" {
			t.Fatalf("got %q on channel, want content URL", info.ContentServerURL)
		}
	default:
		t.Fatal("expected a value on Changed(), got none")
	}
}

func TestRealmResolveServerErrorIsRealmDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	r := NewRealm()
	err := r.Resolve(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected error for 503 response")
	}
	re, ok := err.(*RealmError)
	if !ok {
		t.Fatalf("got %T, want *RealmError", err)
	}
	if re.Kind != ErrRealmDown {
		t.Fatalf("got kind %v, want ErrRealmDown", re.Kind)
	}
}

func TestRealmResolveNotFoundIsNotRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	r := NewRealm()
	err := r.Resolve(context.Background(), srv.URL)
	re, ok := err.(*RealmError)
	if !ok {
		t.Fatalf("got %T, want *RealmError", err)
	}
	if re.Retryable() {
		t.Fatalf("got retryable, want permanent for a 404 about response")
	}
}

func TestFetchActiveEntitiesRequiresResolvedRealm(t *testing.T) {
	r := NewRealm()
	_, err := r.FetchActiveEntities(context.Background(), []string{"0,0"})
	if err == nil {
		t.Fatal("expected error when no realm has been resolved")
	}
}

func TestFetchActiveEntitiesParsesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/entities/active" {
			t.Errorf("got path %q, want /entities/active", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"scene-1","pointers":["0,0","0,1"]}]`))
	}))
	defer srv.Close()

	r := NewRealm()
	aboutSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`{"content":{"publicUrl":"` + srv.URL + `"}}`))
	}))
	defer aboutSrv.Close()
	if err := r.Resolve(context.Background(), aboutSrv.URL); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	entities, err := r.FetchActiveEntities(context.Background(), []string{"0,0"})
	if err != nil {
		t.Fatalf("FetchActiveEntities: %v", err)
	}
	if len(entities) != 1 || entities[0].ID != "scene-1" {
		t.Fatalf("got %+v, want one entity with id scene-1", entities)
	}
}

func TestFetchActiveEntitiesBatchedMergesAllBatches(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"scene-x"}]`))
	}))
	defer srv.Close()

	r := NewRealm()
	aboutSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`{"content":{"publicUrl":"` + srv.URL + `"}}`))
	}))
	defer aboutSrv.Close()
	if err := r.Resolve(context.Background(), aboutSrv.URL); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	entities, err := r.FetchActiveEntitiesBatched(context.Background(), [][]string{{"0,0"}, {"1,1"}, {"2,2"}})
	if err != nil {
		t.Fatalf("FetchActiveEntitiesBatched: %v", err)
	}
	if len(entities) != 3 {
		t.Fatalf("got %d entities, want 3 (one per batch)", len(entities))
	}
}

func TestFetchActiveEntitiesBatchedFailsFastOnAnyBatchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	r := NewRealm()
	aboutSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`{"content":{"publicUrl":"` + srv.URL + `"}}`))
	}))
	defer aboutSrv.Close()
	if err := r.Resolve(context.Background(), aboutSrv.URL); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	_, err := r.FetchActiveEntitiesBatched(context.Background(), [][]string{{"0,0"}})
	if err == nil {
		t.Fatal("expected error when a batch request fails")
	}
}
