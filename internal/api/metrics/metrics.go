// Package metrics defines and registers all custom Prometheus metrics for
// the storefront client. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry at import
// time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// ── Backend request metrics ──────────────────────────────────────────────────

// BackendRequestsTotal counts calls made to the remote API.
// Labels:
//   - operation: the gateway operation (e.g. "login", "add_item", "confirm_cart")
//   - outcome: "success", "remote_error", "auth_required", or "network_error"
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of remote API calls, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// BackendRequestDuration measures the round-trip time of remote API calls.
// Label:
//   - operation: the gateway operation
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of remote API calls from send to decoded response.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"operation"},
)

// ── Cart mutation metrics ────────────────────────────────────────────────────

// CartMutationsTotal counts cart line mutations issued by the coordinator.
// Labels:
//   - action: "add", "update", "remove", or "clear"
//   - outcome: "success", "error", or "busy" (rejected, line already in flight)
var CartMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_mutations_total",
		Help:      "Total number of cart mutations, by action and outcome.",
	},
	[]string{"action", "outcome"},
)

// CartLinesBusy tracks how many cart lines currently have a mutation in
// flight.
var CartLinesBusy = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "cart_lines_busy",
		Help:      "Number of cart lines with an in-flight mutation.",
	},
)
