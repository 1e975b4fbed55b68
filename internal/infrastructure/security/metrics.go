package security

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// passwordHashDuration measures bcrypt work including time queued in the pool.
// Label:
//   - op: "hash" or "compare"
var passwordHashDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "identity",
		Name:      "password_hash_duration_seconds",
		Help:      "Duration of bcrypt hash and compare operations, queue wait included.",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5},
	},
	[]string{"op"},
)
