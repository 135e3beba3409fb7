package openrealm

import "testing"

func TestProcessGltfRotatesRootChildrenForHandedness(t *testing.T) {
	child := &GltfNode{Name: "mesh_0", Rotation: IdentityQuaternion()}
	doc := &GltfDocument{Root: &GltfNode{Name: "root", Children: []*GltfNode{child}}}

	ProcessGltf(doc)

	if child.Rotation == IdentityQuaternion() {
		t.Fatalf("got identity rotation on root child, want handedness rotation applied")
	}
}

func TestProcessGltfExtractsColliderNodes(t *testing.T) {
	collider := &GltfNode{Name: "floor_collider", Mesh: &GltfPrimitive{}}
	doc := &GltfDocument{Root: &GltfNode{Name: "root", Children: []*GltfNode{collider}}}

	inst := ProcessGltf(doc)

	if len(inst.Colliders) != 1 {
		t.Fatalf("got %d colliders, want 1", len(inst.Colliders))
	}
	if inst.Colliders[0].Mask&MaskPhysics == 0 || inst.Colliders[0].Mask&MaskPointer == 0 {
		t.Fatalf("got mask %d, want both MaskPhysics and MaskPointer set by default", inst.Colliders[0].Mask)
	}
}

func TestProcessGltfColliderInheritsAncestorMask(t *testing.T) {
	explicit := uint32(MaskPhysics)
	collider := &GltfNode{Name: "wall_collider", Mesh: &GltfPrimitive{}}
	parent := &GltfNode{Name: "group", ColliderMask: &explicit, Children: []*GltfNode{collider}}
	doc := &GltfDocument{Root: &GltfNode{Name: "root", Children: []*GltfNode{parent}}}

	inst := ProcessGltf(doc)

	if len(inst.Colliders) != 1 {
		t.Fatalf("got %d colliders, want 1", len(inst.Colliders))
	}
	if inst.Colliders[0].Mask != explicit {
		t.Fatalf("got mask %d, want inherited %d", inst.Colliders[0].Mask, explicit)
	}
}

func TestProcessGltfSkipsColliderlessVisibleMesh(t *testing.T) {
	visible := &GltfNode{Name: "rock_0", Mesh: &GltfPrimitive{}}
	doc := &GltfDocument{Root: &GltfNode{Name: "root", Children: []*GltfNode{visible}}}

	inst := ProcessGltf(doc)

	if len(inst.Colliders) != 0 {
		t.Fatalf("got %d colliders, want 0 for a plain visible mesh with no override", len(inst.Colliders))
	}
}

func TestProcessGltfHonorsExplicitMaskOnVisibleMesh(t *testing.T) {
	explicit := uint32(MaskPhysics | MaskPointer)
	visible := &GltfNode{Name: "fence_0", Mesh: &GltfPrimitive{}, ColliderMask: &explicit}
	doc := &GltfDocument{Root: &GltfNode{Name: "root", Children: []*GltfNode{visible}}}

	inst := ProcessGltf(doc)

	if len(inst.Colliders) != 1 {
		t.Fatalf("got %d colliders, want 1 for a visible mesh with an explicit non-zero mask", len(inst.Colliders))
	}
	if inst.Colliders[0].Mask != explicit {
		t.Fatalf("got mask %d, want %d", inst.Colliders[0].Mask, explicit)
	}
}

func TestValidateSkinStripsMismatchedCounts(t *testing.T) {
	skin := &GltfSkin{
		JointIndices: [][4]uint16{{0, 1, 2, 3}},
		Weights:      [][4]float32{{0.5, 0.5, 0, 0}, {1, 0, 0, 0}},
	}
	if got := validateSkin(skin); got != nil {
		t.Fatalf("got non-nil skin, want stripped due to joint/weight count mismatch")
	}
}

func TestValidateSkinKeepsMatchedCounts(t *testing.T) {
	skin := &GltfSkin{
		JointIndices: [][4]uint16{{0, 1, 2, 3}},
		Weights:      [][4]float32{{0.5, 0.5, 0, 0}},
	}
	if got := validateSkin(skin); got == nil {
		t.Fatalf("got nil skin, want preserved since counts match")
	}
}

func TestNormalizeJointWeightsSumsToOne(t *testing.T) {
	skin := &GltfSkin{Weights: [][4]float32{{1, 1, 0, 0}}}
	normalizeJointWeights(skin)
	var sum float32
	for _, w := range skin.Weights[0] {
		sum += w
	}
	if sum < 0.999 || sum > 1.001 {
		t.Fatalf("got sum %v, want ~1", sum)
	}
}

func TestMeshCacheReusesInstanceByHash(t *testing.T) {
	c := newMeshCache()
	doc := &GltfDocument{}
	a := c.GetOrProcess(42, false, doc)
	b := c.GetOrProcess(42, false, doc)
	if a != b {
		t.Fatalf("got distinct instances for same hash, want cached reuse")
	}
}

func TestGltfMeshInstanceVerticesProjectsPositionsAndUVs(t *testing.T) {
	inst := &GltfMeshInstance{}
	prim := &GltfPrimitive{
		Positions: []Vec3{{1, 2, 3}, {4, 5, 6}},
		UVs:       [][2]float32{{0.1, 0.2}, {0.3, 0.4}},
	}
	verts := inst.Vertices(prim, White)
	if len(verts) != 2 {
		t.Fatalf("got %d vertices, want 2", len(verts))
	}
	if verts[0].DstX != 1 || verts[0].DstY != 2 {
		t.Fatalf("got (%v,%v), want (1,2)", verts[0].DstX, verts[0].DstY)
	}
	if verts[1].SrcX != 0.3 || verts[1].SrcY != 0.4 {
		t.Fatalf("got (%v,%v), want (0.3,0.4)", verts[1].SrcX, verts[1].SrcY)
	}
	if verts[0].ColorA != 1 {
		t.Fatalf("got alpha %v, want 1 for White tint", verts[0].ColorA)
	}
}

func TestGltfMeshInstanceVerticesReusesScratchBuffer(t *testing.T) {
	inst := &GltfMeshInstance{}
	prim := &GltfPrimitive{Positions: []Vec3{{0, 0, 0}}}
	first := inst.Vertices(prim, White)
	second := inst.Vertices(prim, White)
	if &first[0] != &second[0] {
		t.Fatalf("got distinct backing arrays, want the scratch buffer reused")
	}
}

func TestMeshCacheBypassesCacheForMorphTargets(t *testing.T) {
	c := newMeshCache()
	doc := &GltfDocument{}
	a := c.GetOrProcess(7, true, doc)
	b := c.GetOrProcess(7, true, doc)
	if a == b {
		t.Fatalf("got shared instance for morph-target mesh, want a fresh instance each call")
	}
}
