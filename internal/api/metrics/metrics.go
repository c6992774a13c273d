// Package metrics defines and registers the custom Prometheus metrics of the
// HR console. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation and exposed by the /metrics route.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Witch19/rrhh-console/internal/core/domain"
)

const namespace = "rrhh"

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "invalid_response",
//     "in_progress" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SessionTransitionsTotal counts identity container transitions.
// Label:
//   - reason: login, profile, logout, expired or corrupt
var SessionTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_transitions_total",
		Help:      "Total number of session state transitions, by reason.",
	},
	[]string{"reason"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditEventsTotal counts session events handed to the audit dispatcher.
// Label:
//   - result: "written", "failed" or "dropped" (queue full)
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of session audit events, by outcome.",
	},
	[]string{"result"},
)

// AuditQueueDepth tracks the events waiting in each audit worker channel.
// Label:
//   - worker_id: numeric worker index
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of events pending in each audit worker channel.",
	},
	[]string{"worker_id"},
)

// ── HR backend metrics ────────────────────────────────────────────────────────

// BackendRequestsTotal counts outbound calls to the HR backend.
// Labels are filled by promhttp: code and method.
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of requests sent to the HR backend.",
	},
	[]string{"code", "method"},
)

// BackendRequestDuration measures outbound call latency.
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Latency of requests sent to the HR backend.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// InstrumentBackend wraps the base transport of the HR backend client.
func InstrumentBackend(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return promhttp.InstrumentRoundTripperCounter(BackendRequestsTotal,
		promhttp.InstrumentRoundTripperDuration(BackendRequestDuration, next))
}

// ObserveSessionChange is a session listener feeding SessionTransitionsTotal.
func ObserveSessionChange(change domain.SessionChange) {
	SessionTransitionsTotal.WithLabelValues(string(change.Reason)).Inc()
}
