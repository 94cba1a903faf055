// Package metrics defines and registers all custom Prometheus metrics for the
// studio CRM API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics registered via promauto attach to the default registry at package
// init, before the HTTP server starts.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "studiocrm"

// ── Authentication metrics ────────────────────────────────────────────────────

// LoginsTotal counts login attempts by outcome.
// Labels:
//   - role: the role the attempt targeted ("photographer", "client", "admin")
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by role and result.",
	},
	[]string{"role", "result"},
)

// TokenVerificationsTotal counts token verifications in the auth middleware.
// Label:
//   - result: "ok", "missing", or "rejected" (invalid/expired collapse into one)
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of session token verifications, by result.",
	},
	[]string{"result"},
)

// GateDenialsTotal counts feature-gate denials.
// Label:
//   - gate: "subscription" or "gallery_plan"
var GateDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_denials_total",
		Help:      "Total number of feature-gate denials, by gate.",
	},
	[]string{"gate"},
)

// ImpersonationsTotal counts impersonation transitions.
// Label:
//   - transition: "start" or "exit"
var ImpersonationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "impersonations_total",
		Help:      "Total number of admin impersonation transitions.",
	},
	[]string{"transition"},
)

// ── Audit pipeline metrics ────────────────────────────────────────────────────

// AuditEventsTotal counts audit events that completed processing.
// Label:
//   - action: the audit action recorded (e.g. "login", "impersonate_start")
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of audit events successfully recorded.",
	},
	[]string{"action"},
)

// AuditQueueDepth tracks the current number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
