package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collectors for the purchase flow, registered on the default registry and
// exposed by the binaries via promhttp.
var (
	EstimationAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sale_gas_estimation_attempts_total",
		Help: "Gas estimation attempts by method and result.",
	}, []string{"method", "result"})

	EstimationRetries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sale_gas_estimation_retries_total",
		Help: "Estimation retries issued after a failed first attempt.",
	}, []string{"method"})

	Submissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sale_submissions_total",
		Help: "Transaction submissions by method and result.",
	}, []string{"method", "result"})

	ReadRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sale_read_refreshes_total",
		Help: "Reader refreshes by reader and result.",
	}, []string{"reader", "result"})

	StaleReadsDiscarded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sale_stale_reads_discarded_total",
		Help: "Read responses dropped because a newer read superseded them.",
	})
)
