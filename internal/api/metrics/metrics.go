// Package metrics defines and registers the custom Prometheus metrics of the
// marketplace API. It is the single source of truth for metric names, labels,
// and help strings.
//
// All collectors are registered with the default registry through promauto at
// package init, so importing the package is enough.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/domain"
)

const namespace = "marketplace"

// ── Identity ─────────────────────────────────────────────────────────────────

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "created", "duplicate", "provider_error", or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// ── Catalog ──────────────────────────────────────────────────────────────────

// ListingsTotal counts listing mutations.
// Label:
//   - action: "created", "edited", or "deleted"
var ListingsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listings_total",
		Help:      "Total number of listing mutations, by action.",
	},
	[]string{"action"},
)

var ReviewsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reviews_created_total",
		Help:      "Total number of reviews posted.",
	},
)

// ── Messaging ────────────────────────────────────────────────────────────────

// MessagesTotal counts stored chat messages.
// Label:
//   - kind: "compose" (opens a chat) or "reply"
var MessagesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_total",
		Help:      "Total number of chat messages stored, by kind.",
	},
	[]string{"kind"},
)

// ── Checkout ─────────────────────────────────────────────────────────────────

// CheckoutSessionsTotal counts checkout attempts.
// Label:
//   - result: "created", "replayed", "not_payable", "provider_error", or "error"
var CheckoutSessionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkout_sessions_total",
		Help:      "Total number of checkout session requests, by result.",
	},
	[]string{"result"},
)

// ProviderErrorsTotal counts payment processor failures.
// Label:
//   - stage: "onboarding" or "charge_session"
var ProviderErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payment_provider_errors_total",
		Help:      "Total number of payment processor failures, by stage.",
	},
	[]string{"stage"},
)

// ProviderCallDuration measures single calls to the payment processor.
// Labels:
//   - operation: adapter operation, e.g. "create_checkout_session"
//   - outcome: "ok" or "error"
var ProviderCallDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "payment_provider_call_duration_seconds",
		Help:      "Duration of payment processor API calls.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation", "outcome"},
)

// ObserveProviderCall records one processor call. Its signature matches the
// payment adapter's call observer.
func ObserveProviderCall(operation string, elapsed time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	ProviderCallDuration.WithLabelValues(operation, outcome).Observe(elapsed.Seconds())
}

// ObserveProviderError increments ProviderErrorsTotal when err carries a
// processor failure. It reports whether it did.
func ObserveProviderError(err error) bool {
	var pe *domain.PayoutProviderError
	if !errors.As(err, &pe) {
		return false
	}
	ProviderErrorsTotal.WithLabelValues(string(pe.Stage)).Inc()
	return true
}
