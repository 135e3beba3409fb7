package openrealm

import "testing"

func TestComponentStoreLWWRejectsStale(t *testing.T) {
	s := NewComponentStore()
	e, c := SceneEntityId(512), ComponentId(1)

	if !s.Apply(ComponentMessage{Entity: e, Component: c, CrdtType: CrdtLWWAny, Timestamp: 5, Payload: []byte("new")}) {
		t.Fatal("expected first apply to be accepted")
	}
	if s.Apply(ComponentMessage{Entity: e, Component: c, CrdtType: CrdtLWWAny, Timestamp: 3, Payload: []byte("stale")}) {
		t.Fatal("expected stale timestamp to be rejected")
	}
	v, ok := s.Get(e, c)
	if !ok || string(v) != "new" {
		t.Fatalf("got %q, want %q", v, "new")
	}
}

func TestComponentStoreTieBreakByPayload(t *testing.T) {
	s := NewComponentStore()
	e, c := SceneEntityId(512), ComponentId(1)

	s.Apply(ComponentMessage{Entity: e, Component: c, CrdtType: CrdtLWWAny, Timestamp: 5, Payload: []byte("aaa")})
	if !s.Apply(ComponentMessage{Entity: e, Component: c, CrdtType: CrdtLWWAny, Timestamp: 5, Payload: []byte("bbb")}) {
		t.Fatal("expected lexicographically greater payload to win tie")
	}
	v, _ := s.Get(e, c)
	if string(v) != "bbb" {
		t.Fatalf("got %q, want bbb", v)
	}
}

func TestComponentStoreLWWEntRejectsStaleAfterDelete(t *testing.T) {
	s := NewComponentStore()
	e, c := SceneEntityId(512), ComponentId(1)

	s.Apply(ComponentMessage{Entity: e, Component: c, CrdtType: CrdtLWWEnt, Timestamp: 1, Payload: []byte("v1")})
	s.DeleteEntity(e, 10, CrdtLWWEnt)

	if s.Apply(ComponentMessage{Entity: e, Component: c, CrdtType: CrdtLWWEnt, Timestamp: 4, Payload: []byte("late")}) {
		t.Fatal("expected put with timestamp before the delete tick to be rejected")
	}
	if _, ok := s.Get(e, c); ok {
		t.Fatal("expected entity to remain deleted")
	}

	if !s.Apply(ComponentMessage{Entity: e, Component: c, CrdtType: CrdtLWWEnt, Timestamp: 11, Payload: []byte("after")}) {
		t.Fatal("expected put with timestamp after the delete tick to be accepted")
	}
}

func TestComponentStoreMixesCrdtTypesPerComponent(t *testing.T) {
	s := NewComponentStore()
	e := SceneEntityId(512)
	anyComp, entComp := ComponentId(1), ComponentId(2)

	s.Apply(ComponentMessage{Entity: e, Component: entComp, CrdtType: CrdtLWWEnt, Timestamp: 1, Payload: []byte("v1")})
	s.DeleteEntity(e, 10, CrdtLWWEnt)

	if !s.Apply(ComponentMessage{Entity: e, Component: anyComp, CrdtType: CrdtLWWAny, Timestamp: 2, Payload: []byte("still-any")}) {
		t.Fatal("expected a CrdtLWWAny component on the same entity to ignore the LWWEnt tombstone")
	}
}

func TestStructuralHashStable(t *testing.T) {
	payload := []byte{0x08, 0x01, 0x12, 0x02, 0x68, 0x69}
	h1 := structuralHash(payload)
	h2 := structuralHash(append([]byte(nil), payload...))
	if h1 != h2 {
		t.Fatalf("expected stable hash, got %d and %d", h1, h2)
	}
	other := structuralHash([]byte{0x08, 0x02, 0x12, 0x02, 0x68, 0x69})
	if h1 == other {
		t.Fatal("expected different payloads to hash differently")
	}
}
