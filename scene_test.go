package openrealm

import "testing"

func TestSceneBlockUnblockTracksReasonSet(t *testing.T) {
	s := NewScene("hash", nil)
	if s.Blocked() {
		t.Fatal("got blocked on a fresh scene, want unblocked")
	}
	s.Block("reason-a")
	s.Block("reason-b")
	if !s.Blocked() {
		t.Fatal("got unblocked with two reasons set, want blocked")
	}
	if len(s.BlockedReasons()) != 2 {
		t.Fatalf("got %d reasons, want 2", len(s.BlockedReasons()))
	}
	s.Unblock("reason-a")
	if !s.Blocked() {
		t.Fatal("got unblocked with one reason remaining, want still blocked")
	}
	s.Unblock("reason-b")
	if s.Blocked() {
		t.Fatal("got blocked after clearing every reason, want unblocked")
	}
}

func TestApplyMessageDiscardsMaterializationWhileBlocked(t *testing.T) {
	s := NewScene("hash", nil)
	var materialized int
	const testComponent = ComponentId(9000)
	RegisterComponent(testComponent, ComponentRegistration{
		Crdt: CrdtLWWAny,
		Handler: func(scene *Scene, e *Entity, payload []byte) {
			materialized++
		},
	})

	s.Block("gltf:512")
	s.ApplyMessage(ComponentMessage{Entity: 512, Component: testComponent, Timestamp: 1, Payload: []byte("x")})
	if materialized != 0 {
		t.Fatalf("got %d materializations while blocked, want 0", materialized)
	}

	s.Unblock("gltf:512")
	s.ApplyMessage(ComponentMessage{Entity: 512, Component: testComponent, Timestamp: 2, Payload: []byte("y")})
	if materialized != 1 {
		t.Fatalf("got %d materializations once unblocked, want 1", materialized)
	}
}

func TestApplyMessageStillConvergesStoreWhileBlocked(t *testing.T) {
	s := NewScene("hash", nil)
	const testComponent = ComponentId(9001)
	RegisterComponent(testComponent, ComponentRegistration{Crdt: CrdtLWWAny})

	s.Block("some-reason")
	s.ApplyMessage(ComponentMessage{Entity: 512, Component: testComponent, Timestamp: 1, Payload: []byte("stored")})

	v, ok := s.Store().Get(512, testComponent)
	if !ok || string(v) != "stored" {
		t.Fatalf("got (%q, %v), want the store to hold the update even while blocked", v, ok)
	}
}

func TestTrackGltfContainerBlocksUntilReady(t *testing.T) {
	s := NewScene("hash", nil)
	s.TrackGltfContainer(600)
	if !s.Blocked() {
		t.Fatal("expected tracking a fresh GLTF container to block the scene")
	}

	s.ReconcileGltfBlockers(func(SceneEntityId) GltfLoadState { return GltfLoading })
	if !s.Blocked() {
		t.Fatal("expected scene to remain blocked while the container is still loading within the window")
	}

	s.ReconcileGltfBlockers(func(SceneEntityId) GltfLoadState { return GltfReady })
	if s.Blocked() {
		t.Fatal("expected scene to unblock once the container reaches GltfReady")
	}
}

func TestTrackGltfContainerExpiresAfterBlockWindow(t *testing.T) {
	s := NewScene("hash", nil)
	s.TrackGltfContainer(601)

	s.ApplyMessage(ComponentMessage{Entity: 700, Component: ComponentId(0xffff), CrdtType: CrdtLWWAny, Timestamp: gltfBlockWindow})

	s.ReconcileGltfBlockers(func(SceneEntityId) GltfLoadState { return GltfLoading })
	if s.Blocked() {
		t.Fatal("expected scene to unblock once the tracking window elapses even though the container never reached GltfReady")
	}
}

func TestSetImposterBakingBlocksScene(t *testing.T) {
	s := NewScene("hash", nil)
	s.SetImposterBaking(true)
	if !s.Blocked() {
		t.Fatal("expected baking to block the scene")
	}
	s.SetImposterBaking(false)
	if s.Blocked() {
		t.Fatal("expected clearing baking to unblock the scene")
	}
}
