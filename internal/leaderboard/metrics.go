package leaderboard

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the leaderboard engine's Prometheus instruments.
type Metrics struct {
	RankingDuration prometheus.Histogram
	RankingMembers  prometheus.Histogram
	StatsFailures   prometheus.Counter
	InvitesRedeemed prometheus.Counter
}

// NewMetrics creates the instruments and registers them with reg.
// A nil reg creates unregistered instruments.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RankingDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "cpnboard",
			Subsystem: "leaderboard",
			Name:      "ranking_duration_seconds",
			Help:      "Time spent computing a group ranking, including stats fan-out.",
			Buckets:   prometheus.DefBuckets,
		}),
		RankingMembers: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "cpnboard",
			Subsystem: "leaderboard",
			Name:      "ranking_members",
			Help:      "Number of members ranked per request.",
			Buckets:   []float64{1, 2, 5, 10, 20, 50, 100},
		}),
		StatsFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "cpnboard",
			Subsystem: "leaderboard",
			Name:      "stats_degraded_total",
			Help:      "Stats computations that fell back to zero values.",
		}),
		InvitesRedeemed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "cpnboard",
			Subsystem: "leaderboard",
			Name:      "invites_redeemed_total",
			Help:      "Successful group joins through an invite token.",
		}),
	}
}
