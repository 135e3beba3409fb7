package content

import "github.com/prometheus/client_golang/prometheus"

var (
	fetchTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "openrealm",
		Subsystem: "content",
		Name:      "fetch_total",
		Help:      "Content fetches by outcome.",
	}, []string{"outcome"})

	fetchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "openrealm",
		Subsystem: "content",
		Name:      "fetch_duration_seconds",
		Help:      "Content fetch latency, cache misses only.",
		Buckets:   prometheus.DefBuckets,
	})

	cacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "openrealm",
		Subsystem: "content",
		Name:      "cache_hits_total",
		Help:      "Content lookups served from the local disk cache.",
	})
)

// RegisterMetrics registers the content package's collectors with reg.
// Call once at startup; registering twice against the same registry
// returns an error from reg.Register that callers may safely ignore if
// they expect to call this more than once in tests.
func RegisterMetrics(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{fetchTotal, fetchDuration, cacheHits} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
