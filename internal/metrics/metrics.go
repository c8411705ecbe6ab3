// Package metrics defines the Prometheus metrics of the budgeting
// client. It is the single source of truth for metric names, labels,
// and help strings; promauto registers everything with the default
// registry at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "paycheckbuddy"

// GatewayRequestsTotal counts requests sent to the remote gateway.
// Labels:
//   - op: logical operation (e.g. "create expense", "fetch user data")
//   - outcome: "ok" or "error"
var GatewayRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gateway_requests_total",
		Help:      "Total number of gateway requests, by operation and outcome.",
	},
	[]string{"op", "outcome"},
)

// GatewayRequestDuration measures gateway round-trip time per operation.
var GatewayRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "gateway_request_duration_seconds",
		Help:      "Duration of gateway requests from send to decoded response.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"op"},
)

// CacheLoadsTotal counts successful bulk loads. One authenticated
// session performs at most one, so this also approximates sessions.
var CacheLoadsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_loads_total",
		Help:      "Total number of successful bulk data loads.",
	},
)

// CacheMutationsTotal counts confirmed mutations applied to the cache.
// Labels:
//   - entity: "time_period", "expense", or "paycheck"
//   - action: "create", "update", or "delete"
var CacheMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_mutations_total",
		Help:      "Total number of confirmed mutations applied to the cache.",
	},
	[]string{"entity", "action"},
)
