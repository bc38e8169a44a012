// Package metrics defines and registers all custom Prometheus metrics for the
// account system. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register themselves with the default Prometheus registry at import
// time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "accounts"

// TokenVerificationsTotal counts bearer-token verification outcomes in the
// request identity resolver.
// Label:
//   - result: "ok", "expired", "signature_invalid", "malformed", "wrong_kind"
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of bearer token verifications, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok" or "failed"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RefreshesTotal counts refresh-token redemptions.
// Label:
//   - result: "ok", "invalid", "banned", "not_found"
var RefreshesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "refreshes_total",
		Help:      "Total number of refresh token redemptions, by result.",
	},
	[]string{"result"},
)

// ModerationActionsTotal counts successful privileged mutations.
// Label:
//   - action: "BAN", "UNBAN", "ROLE_CHANGE", "CREATE", "DELETE"
var ModerationActionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "moderation_actions_total",
		Help:      "Total number of successful moderation actions, by action.",
	},
	[]string{"action"},
)
