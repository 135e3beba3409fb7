// Package openrealm implements the client-side runtime of a 3D virtual
// world: realm discovery, a content-addressed asset layer, scene and
// parcel orchestration driven by a CRDT component store, a GLTF
// materialization pipeline, a collider/spatial-query system, avatar
// assembly, a flex-based UI layout engine, and an imposter LOD system
// for distant parcels.
//
// The package is organized around a small number of long-lived types:
//
//   - [Realm] resolves which server backs a world and exposes its
//     content, comms, and lambdas endpoints.
//   - [Scene] owns one parcel's worth of entities, driven by a
//     [ComponentStore] fed from the network.
//   - [Orchestrator] decides which parcels are Live, Imposter, or
//     Evicted based on player position and load radius.
//   - [Entity] is the in-scene node: a transform plus whatever
//     components have been attached to it.
//
// None of the render backend lives here; openrealm produces the data
// (meshes, materials, collider shapes, UI trees) that a renderer
// consumes each frame.
package openrealm
