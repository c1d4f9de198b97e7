package leaderboard

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/cpnboard/internal/calculator"
	"github.com/mmynk/cpnboard/internal/models"
	"github.com/mmynk/cpnboard/internal/storage"
)

// StatsProvider computes a user's stats. On error the returned stats are the
// zero snapshot.
type StatsProvider interface {
	Compute(ctx context.Context, userID string) (models.UserStats, error)
}

// Aggregator derives UserStats from a user's tracked entities and entries.
type Aggregator struct {
	store      storage.TrackerStore
	serverSide bool
	metrics    *Metrics
}

// NewAggregator creates an Aggregator. With serverSide set, totals are
// computed by the store instead of summing raw rows in memory.
func NewAggregator(store storage.TrackerStore, serverSide bool, metrics *Metrics) *Aggregator {
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	return &Aggregator{store: store, serverSide: serverSide, metrics: metrics}
}

// Compute returns the user's stats across all their entities, active or not.
func (a *Aggregator) Compute(ctx context.Context, userID string) (models.UserStats, error) {
	var (
		totals *models.UserTotals
		err    error
	)
	if a.serverSide {
		totals, err = a.store.AggregateUserTotals(ctx, userID)
	} else {
		totals, err = a.sumRows(ctx, userID)
	}
	if err != nil {
		return models.UserStats{}, fmt.Errorf("failed to compute stats for user %s: %w", userID, err)
	}
	return StatsFromTotals(*totals), nil
}

// UserStats is Compute with failures logged and replaced by zero stats.
func (a *Aggregator) UserStats(ctx context.Context, userID string) models.UserStats {
	stats, err := a.Compute(ctx, userID)
	if err != nil {
		a.metrics.StatsFailures.Inc()
		slog.Warn("Stats degraded to zero", "user_id", userID, "error", err)
	}
	return stats
}

func (a *Aggregator) sumRows(ctx context.Context, userID string) (*models.UserTotals, error) {
	entities, err := a.store.ListEntitiesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	entries, err := a.store.ListEntriesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	totals := &models.UserTotals{TotalEntities: len(entities)}
	for _, e := range entries {
		totals.TotalSpent += e.AmountSpent
		totals.TotalUnits += e.UnitsCount
		totals.TotalMinutes += e.DurationMinutes
	}
	if len(entities) > 0 {
		var sum float64
		for _, e := range entities {
			sum += e.Rating
		}
		totals.AverageRating = sum / float64(len(entities))
	}
	return totals, nil
}

// StatsFromTotals applies the metric formulas to raw totals.
//
// Spent and the mean rating are rounded to cents first, so totals summed in
// memory and totals summed by the database yield identical stats.
func StatsFromTotals(t models.UserTotals) models.UserStats {
	t.TotalSpent = calculator.Round2(t.TotalSpent)
	t.AverageRating = calculator.Round2(t.AverageRating)
	return models.UserStats{
		TotalSpent:       t.TotalSpent,
		TotalUnits:       t.TotalUnits,
		CostPerUnit:      calculator.CostPerUnit(t.TotalSpent, t.TotalUnits),
		TotalTimeMinutes: t.TotalMinutes,
		TotalEntities:    t.TotalEntities,
		EfficiencyScore: calculator.EfficiencyScore(
			t.TotalUnits, t.TotalSpent, float64(t.TotalMinutes), t.AverageRating,
		),
	}
}
