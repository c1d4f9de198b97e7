package leaderboard

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mmynk/cpnboard/internal/calculator"
	"github.com/mmynk/cpnboard/internal/models"
)

// GroupRankings ranks the group's members by their current stats.
//
// Stats are computed concurrently, at most FanoutLimit at a time, under
// RankingTimeout. A member whose stats fail is ranked with zero stats. The
// ranking is empty only when members cannot be listed or the deadline passes.
func (s *Service) GroupRankings(ctx context.Context, groupID string) []models.Ranking {
	start := time.Now()
	defer func() { s.metrics.RankingDuration.Observe(time.Since(start).Seconds()) }()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	members, err := s.store.ListMembers(ctx, groupID)
	if err != nil {
		slog.Error("Ranking failed to list members", "group_id", groupID, "error", err)
		return []models.Ranking{}
	}
	s.metrics.RankingMembers.Observe(float64(len(members)))

	withStats := make([]models.MemberWithStats, len(members))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.fanout)
	for i, m := range members {
		g.Go(func() error {
			withStats[i] = models.MemberWithStats{Member: *m}
			stats, err := s.stats.Compute(gctx, m.UserID)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				s.metrics.StatsFailures.Inc()
				slog.Warn("Stats degraded to zero", "group_id", groupID, "user_id", m.UserID, "error", err)
				return nil
			}
			withStats[i].Stats = stats
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		slog.Error("Ranking abandoned", "group_id", groupID, "error", err)
		return []models.Ranking{}
	}

	return calculator.CalculateRankings(withStats)
}
