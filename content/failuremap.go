package content

import (
	"sync"
	"time"
)

// failureTTL is how long a failed hash is remembered before a fetch is
// allowed to retry it. Kept short: most failures are transient server
// hiccups, and a scene re-entering view after a short absence shouldn't
// be stuck replaying a stale failure.
const failureTTL = 10 * time.Second

// failureMap remembers recently-failed content hashes so repeated
// requests for the same known-bad hash fail fast instead of re-issuing
// a doomed network round trip. Entries expire after failureTTL.
type failureMap struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

func newFailureMap() *failureMap {
	return &failureMap{entries: make(map[string]time.Time)}
}

// Record marks key as recently failed.
func (f *failureMap) Record(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[key] = time.Now()
}

// Check reports whether key failed recently (within failureTTL). Expired
// entries are evicted lazily on lookup.
func (f *failureMap) Check(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.entries[key]
	if !ok {
		return false
	}
	if time.Since(t) > failureTTL {
		delete(f.entries, key)
		return false
	}
	return true
}

// Clear removes the failure record for key, used after an explicit
// successful fetch.
func (f *failureMap) Clear(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, key)
}
