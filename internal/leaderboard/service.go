// Package leaderboard implements invite-only leaderboard groups: group and
// membership lifecycle, per-user stats aggregation and ranked group views.
package leaderboard

import (
	"time"

	"github.com/mmynk/cpnboard/internal/storage"
)

const (
	defaultFanoutLimit    = 8
	defaultRankingTimeout = 10 * time.Second
)

// Options tune the ranking fan-out.
type Options struct {
	// FanoutLimit bounds concurrent stats computations per ranking. Defaults to 8.
	FanoutLimit int

	// RankingTimeout caps a whole ranking computation. Defaults to 10s.
	RankingTimeout time.Duration

	// Metrics defaults to unregistered instruments.
	Metrics *Metrics
}

// Service is the leaderboard engine.
type Service struct {
	store    storage.Store
	stats    StatsProvider
	metrics  *Metrics
	fanout   int
	timeout  time.Duration
	newToken func() (string, error)
}

// NewService creates a Service over store, computing member stats with stats.
func NewService(store storage.Store, stats StatsProvider, opts Options) *Service {
	if opts.FanoutLimit <= 0 {
		opts.FanoutLimit = defaultFanoutLimit
	}
	if opts.RankingTimeout <= 0 {
		opts.RankingTimeout = defaultRankingTimeout
	}
	if opts.Metrics == nil {
		opts.Metrics = NewMetrics(nil)
	}
	return &Service{
		store:    store,
		stats:    stats,
		metrics:  opts.Metrics,
		fanout:   opts.FanoutLimit,
		timeout:  opts.RankingTimeout,
		newToken: newInviteToken,
	}
}
