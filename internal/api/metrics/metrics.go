// Package metrics defines and registers all custom Prometheus metrics for the
// invoicing API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry at package init, so
// importing any user of this package is enough to expose them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "invoicing"

// ── Invoice lifecycle metrics ─────────────────────────────────────────────────

// InvoicesCreatedTotal counts newly created invoices.
var InvoicesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "invoices_created_total",
		Help:      "Total number of invoices created.",
	},
)

// TransitionsTotal counts applied invoice status transitions.
// Labels:
//   - from: the prior status (e.g. "pending_approval")
//   - to: the status the invoice moved into (e.g. "approved")
var TransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_transitions_total",
		Help:      "Total number of invoice status transitions applied, by edge.",
	},
	[]string{"from", "to"},
)

// ApprovalDecisionsTotal counts terminal client decisions.
// Label:
//   - decision: "approved" or "rejected"
var ApprovalDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "approval_decisions_total",
		Help:      "Total number of client approval decisions recorded.",
	},
	[]string{"decision"},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// EmailsSentTotal counts emails handed to the mail provider successfully.
var EmailsSentTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "emails_sent_total",
		Help:      "Total number of notification emails sent.",
	},
)

// EmailsErrorsTotal counts emails that failed delivery.
// Label:
//   - reason: short description of the failure (e.g. "smtp_error")
var EmailsErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "emails_errors_total",
		Help:      "Total number of notification emails that failed delivery.",
	},
	[]string{"reason"},
)

// NotificationQueueDepth tracks the current number of emails waiting in each
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of emails pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// EmailSendDuration measures how long one delivery attempt takes.
var EmailSendDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "email_send_duration_seconds",
		Help:      "Duration of a single email delivery attempt.",
		Buckets:   prometheus.DefBuckets,
	},
)
