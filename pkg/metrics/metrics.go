// Package metrics provides Prometheus observability for flatpool pools.
//
// Named pools record every checkout and every return outcome into the
// collectors below; unnamed pools stay silent so ad-hoc pools do not
// pollute label cardinality.
//
// # Basic Usage
//
//	pool := pool.NewLocal().Name("ingest").Build()
//	b := pool.Get()       // flatpool_gets_total{pool="ingest",result="miss"}
//	b.Release()           // flatpool_returns_total{pool="ingest",outcome="returned"}
//
// # Metric Types
//
// Counter: Monotonically increasing values (e.g., total checkouts)
// Gauge: Values that can go up or down (e.g., idle builders)
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values used by the pool packages.
const (
	// ResultHit marks a checkout satisfied by a recycled builder.
	ResultHit = "hit"
	// ResultMiss marks a checkout that had to allocate a fresh builder.
	ResultMiss = "miss"

	// OutcomeReturned marks a release that pushed the builder back into its pool.
	OutcomeReturned = "returned"
	// OutcomeDiscarded marks a release that dropped the builder (pool full,
	// closed, or the handle was drained).
	OutcomeDiscarded = "discarded"
)

var (
	// PoolGets tracks builder checkouts per pool.
	// Labels: pool (pool name), result (hit/miss)
	PoolGets = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flatpool_gets_total",
			Help: "Total number of builder checkouts by pool and result",
		},
		[]string{"pool", "result"},
	)

	// PoolReturns tracks handle releases per pool.
	// Labels: pool (pool name), outcome (returned/discarded)
	PoolReturns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flatpool_returns_total",
			Help: "Total number of handle releases by pool and outcome",
		},
		[]string{"pool", "outcome"},
	)

	// PoolIdle tracks the number of idle builders currently inside each pool.
	// Labels: pool (pool name)
	PoolIdle = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "flatpool_idle_builders",
			Help: "Number of idle builders currently held by each pool",
		},
		[]string{"pool"},
	)

	// PoolClosed counts pool teardowns.
	// Labels: pool (pool name)
	PoolClosed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flatpool_pools_closed_total",
			Help: "Total number of pools closed",
		},
		[]string{"pool"},
	)
)

// RecordGet records a checkout for a named pool. A hit means the builder was
// recycled; a miss means a fresh allocation.
func RecordGet(pool string, hit bool) {
	if pool == "" {
		return
	}
	result := ResultMiss
	if hit {
		result = ResultHit
	}
	PoolGets.WithLabelValues(pool, result).Inc()
}

// RecordReturn records a release outcome for a named pool.
func RecordReturn(pool string, returned bool) {
	if pool == "" {
		return
	}
	outcome := OutcomeDiscarded
	if returned {
		outcome = OutcomeReturned
	}
	PoolReturns.WithLabelValues(pool, outcome).Inc()
}

// SetIdle records the current idle-builder count for a named pool.
func SetIdle(pool string, n int) {
	if pool == "" {
		return
	}
	PoolIdle.WithLabelValues(pool).Set(float64(n))
}

// RecordClose records a pool teardown.
func RecordClose(pool string) {
	if pool == "" {
		return
	}
	PoolClosed.WithLabelValues(pool).Inc()
}
