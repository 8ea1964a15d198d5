package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	PingsReceivedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "geodorm_pings_received_total",
		Help: "Total location pings received over MQTT",
	})
	PingsDroppedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "geodorm_pings_dropped_total",
		Help: "Total pings dropped (malformed payload, unknown device, invalid coordinates)",
	})
	EvaluationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "geodorm_evaluations_total",
		Help: "Total per-membership geofence evaluations",
	})
	StatusChangesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "geodorm_status_changes_total",
		Help: "Total presence status transitions persisted",
	})
	MembershipsSkippedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "geodorm_memberships_skipped_total",
		Help: "Total memberships skipped during evaluation (bad geofence record)",
	})
	RosterCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "geodorm_roster_cache_hits_total",
		Help: "Total roster reads served from redis",
	})
	RosterCacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "geodorm_roster_cache_misses_total",
		Help: "Total roster reads that fell through to postgres",
	})
)

func init() {
	prometheus.MustRegister(PingsReceivedTotal)
	prometheus.MustRegister(PingsDroppedTotal)
	prometheus.MustRegister(EvaluationsTotal)
	prometheus.MustRegister(StatusChangesTotal)
	prometheus.MustRegister(MembershipsSkippedTotal)
	prometheus.MustRegister(RosterCacheHitsTotal)
	prometheus.MustRegister(RosterCacheMissesTotal)
}

// Handler exposes the registered metrics for scraping.
func Handler() http.Handler { return promhttp.Handler() }
