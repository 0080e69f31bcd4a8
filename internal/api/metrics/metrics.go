// Package metrics defines and registers all custom Prometheus metrics for
// the society dashboard. It is the single source of truth for metric names,
// labels, and help strings.
//
// Variables are registered with the default registry at init time via
// promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dashboard"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokenRefreshesTotal counts silent access-token refreshes.
// Label:
//   - result: "success" (session kept alive) or "failure" (session cleared)
var TokenRefreshesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refreshes_total",
		Help:      "Total number of silent token refresh attempts, by result.",
	},
	[]string{"result"},
)

// SessionsActive tracks the number of live browser sessions created by this
// instance (created minus logged out).
var SessionsActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sessions_active",
		Help:      "Current number of live browser sessions.",
	},
)

// GuardRedirectsTotal counts protected-page requests turned into redirects.
// Label:
//   - target: "login" or "pending_approval"
var GuardRedirectsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_redirects_total",
		Help:      "Total number of route-guard redirects, by target page.",
	},
	[]string{"target"},
)
