// Package metrics defines and registers all custom Prometheus metrics for the
// admin console. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry at import time
// via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "console"

// UpstreamRequestsTotal counts calls to the platform REST API.
// Labels:
//   - endpoint: logical endpoint name (e.g. "list_datasets")
//   - outcome: "ok", "http_error" (non-2xx) or "transport_error"
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of requests issued to the upstream platform API.",
	},
	[]string{"endpoint", "outcome"},
)

// UpstreamRequestDuration measures upstream call latency end-to-end.
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of upstream platform API calls.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"endpoint"},
)

// ScreenRefreshTotal counts list-screen refresh attempts.
// Labels:
//   - screen: "donnees", "paiement" or "utilisateurs"
//   - result: "ok" or "error"
var ScreenRefreshTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "screen_refresh_total",
		Help:      "Total number of list screen refreshes, by result.",
	},
	[]string{"screen", "result"},
)

// DatasetSubmissionsTotal counts dataset form submissions.
// Label:
//   - outcome: "ok", "validation_failed" or "upstream_error"
var DatasetSubmissionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dataset_submissions_total",
		Help:      "Total number of dataset form submissions, by outcome.",
	},
	[]string{"outcome"},
)
