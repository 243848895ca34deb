package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of a full trip generation run
	GenerationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "trip_generation_duration_seconds",
		Help:    "Latency of a full trip generation run",
		Buckets: prometheus.DefBuckets,
	})

	GenerationRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "trip_generation_runs_total",
		Help: "Generation runs by outcome (cold, cached, refresh)",
	}, []string{"mode"})

	TripsGenerated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "trips_generated_total",
		Help: "Total trip suggestions assembled and persisted",
	})

	// Which fallback tier produced each travel component
	FallbackTier = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "travel_component_fallback_tier_total",
		Help: "Fallback tier that produced a component, by component kind",
	}, []string{"kind", "tier"})

	CacheHits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "Cache hits by namespace",
	}, []string{"namespace"})

	CacheMisses = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "Cache misses by namespace",
	}, []string{"namespace"})
)

func Init() {
	prometheus.MustRegister(
		GenerationDuration,
		GenerationRuns,
		TripsGenerated,
		FallbackTier,
		CacheHits,
		CacheMisses,
	)
}
