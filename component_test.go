package openrealm

import "testing"

func TestRegisterComponentStoresCrdtScheme(t *testing.T) {
	const id = ComponentId(8000)
	RegisterComponent(id, ComponentRegistration{Crdt: CrdtLWWEnt})

	reg, ok := LookupComponent(id)
	if !ok {
		t.Fatal("expected a registration after RegisterComponent")
	}
	if reg.Crdt != CrdtLWWEnt {
		t.Fatalf("got %v, want CrdtLWWEnt", reg.Crdt)
	}
}

func TestLookupComponentMissesForUnregisteredId(t *testing.T) {
	if _, ok := LookupComponent(ComponentId(0x7fffffff)); ok {
		t.Fatal("expected no registration for an id nothing ever registered")
	}
}

func TestApplyMessagePrefersRegistrySchemeOverMessageField(t *testing.T) {
	const id = ComponentId(8001)
	RegisterComponent(id, ComponentRegistration{Crdt: CrdtLWWEnt})

	s := NewScene("hash", nil)
	s.ApplyMessage(ComponentMessage{Entity: 1, Component: id, CrdtType: CrdtLWWAny, Timestamp: 1, Payload: []byte("v1")})
	s.store.DeleteEntity(1, 5, CrdtLWWEnt)

	if s.ApplyMessage(ComponentMessage{Entity: 1, Component: id, CrdtType: CrdtLWWAny, Timestamp: 3, Payload: []byte("late")}) {
		t.Fatal("expected the registry's CrdtLWWEnt scheme to reject a stale put even though the message itself claimed CrdtLWWAny")
	}
}
