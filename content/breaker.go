package content

import (
	"time"

	"github.com/sony/gobreaker"
)

// newRealmBreaker returns a circuit breaker guarding requests to a single
// realm's content server. It opens after five consecutive failures and
// probes again after 30 seconds, matching the "treat a dead realm as
// RealmDown rather than hammering it" behavior callers expect from
// [openrealm.ErrRealmDown].
func newRealmBreaker(name string) *gobreaker.CircuitBreaker {
	st := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    0,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}
	return gobreaker.NewCircuitBreaker(st)
}
