package openrealm

import "github.com/prometheus/client_golang/prometheus"

var (
	liveParcels = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "openrealm",
		Name:      "live_parcels",
		Help:      "Number of parcels currently in the Live state.",
	})
	imposterParcels = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "openrealm",
		Name:      "imposter_parcels",
		Help:      "Number of parcels currently in the Imposter state.",
	})
	sceneTickGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "openrealm",
		Name:      "scene_tick",
		Help:      "Current CRDT tick per loaded scene.",
	}, []string{"scene_hash"})
)

// RegisterMetrics registers the root package's collectors with reg.
func RegisterMetrics(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{liveParcels, imposterParcels, sceneTickGauge} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// ObserveOrchestrator updates the live/imposter gauges from o's current
// parcel records. Call once per frame, or on whatever cadence the
// embedding application scrapes metrics.
func ObserveOrchestrator(o *Orchestrator) {
	var live, imposter float64
	for _, rec := range o.records {
		switch rec.State {
		case ParcelLive:
			live++
		case ParcelImposter:
			imposter++
		}
	}
	liveParcels.Set(live)
	imposterParcels.Set(imposter)
}

// ObserveScene records s's current tick.
func ObserveScene(s *Scene) {
	sceneTickGauge.WithLabelValues(string(s.Hash)).Set(float64(s.Tick()))
}
