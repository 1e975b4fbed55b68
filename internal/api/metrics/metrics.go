// Package metrics defines the custom Prometheus metrics of the identity API.
// It is the single source of truth for metric names, labels and help strings.
//
// Metrics are registered with the default registry through promauto, so they
// are exposed on /metrics alongside the echoprometheus request metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "identity"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// RegistrationsTotal counts self-registration attempts.
// Label:
//   - result: "created", "conflict", "invalid" or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of self-registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "invalid" or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokenVerificationsTotal counts decisions of the token middleware.
// Label:
//   - result: "valid", "missing" or "invalid"
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of token verifications, by result.",
	},
	[]string{"result"},
)

// AccessDeniedTotal counts requests rejected by the role gate.
var AccessDeniedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of authenticated requests rejected for insufficient role.",
	},
)

// RateLimitedTotal counts requests rejected by a rate limiter.
// Label:
//   - scope: limiter name (e.g. "login")
var RateLimitedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected by a rate limiter.",
	},
	[]string{"scope"},
)
