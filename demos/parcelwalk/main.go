// Command parcelwalk is a smoke-test client: it resolves a realm,
// walks the orchestrator's reconcile loop for a fixed player path, and
// prints the player parcel's state at each step. It constructs a content
// client but fetches nothing through it; every parcel is resolved as
// empty and given a ground collider. There is no render backend.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/phanxgames/openrealm"
	"github.com/phanxgames/openrealm/content"
)

func main() {
	realmURL := flag.String("realm", "https://peer.decentraland.org", "realm base URL")
	cacheDir := flag.String("cache", os.TempDir()+"/parcelwalk-cache", "content cache directory")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	cache, err := content.NewDiskCache(*cacheDir)
	if err != nil {
		logger.Fatal("open disk cache", zap.Error(err))
	}
	client := content.NewClient(cache, 8, logger)
	_ = client

	realm := openrealm.NewRealm()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := realm.Resolve(ctx, *realmURL); err != nil {
		logger.Warn("realm resolve failed, continuing with no scenes", zap.Error(err))
	}

	orch := openrealm.NewOrchestrator(realm, 2, 4)
	idx := openrealm.NewSpatialIndex()

	path := []openrealm.Parcel{{0, 0}, {1, 0}, {2, 0}, {2, 1}}
	for _, p := range path {
		toResolve := orch.Reconcile(ctx, p)
		for _, coord := range toResolve {
			orch.ResolveParcel(coord, "")
			idx.Insert(openrealm.NewGroundCollider(openrealm.Vec3{
				X: float64(coord.X) * 16,
				Y: 0,
				Z: float64(coord.Z) * 16,
			}))
		}
		fmt.Printf("player at %s: state=%s, %d parcels resolved this step\n", p, orch.State(p), len(toResolve))
	}
}
