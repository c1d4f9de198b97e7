package calculator

import (
	"math"
	"sort"

	"github.com/mmynk/cpnboard/internal/models"
)

// CalculateRankings orders group members into a leaderboard.
//
// Members with data (TotalUnits > 0) come first, sorted by CostPerUnit
// ascending and then EfficiencyScore descending. Members without data follow,
// sorted by JoinedAt ascending. Ranks are 1..n with no gaps or shared ranks;
// exact ties keep input order. NaN keys sort after every finite key.
func CalculateRankings(members []models.MemberWithStats) []models.Ranking {
	withData := make([]models.MemberWithStats, 0, len(members))
	var noData []models.MemberWithStats
	for _, m := range members {
		if m.Stats.HasData() {
			withData = append(withData, m)
		} else {
			noData = append(noData, m)
		}
	}

	sort.SliceStable(withData, func(i, j int) bool {
		a, b := withData[i].Stats, withData[j].Stats
		if c := compareAsc(a.CostPerUnit, b.CostPerUnit); c != 0 {
			return c < 0
		}
		return compareDesc(a.EfficiencyScore, b.EfficiencyScore) < 0
	})

	sort.SliceStable(noData, func(i, j int) bool {
		return noData[i].JoinedAt < noData[j].JoinedAt
	})

	rankings := make([]models.Ranking, 0, len(members))
	for _, m := range append(withData, noData...) {
		rankings = append(rankings, models.Ranking{
			Rank:   len(rankings) + 1,
			Member: m,
		})
	}
	return rankings
}

// compareAsc orders a before b when a < b, with NaN last.
func compareAsc(a, b float64) int {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return 1
	case bNaN:
		return -1
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// compareDesc orders a before b when a > b, with NaN last.
func compareDesc(a, b float64) int {
	if math.IsNaN(a) || math.IsNaN(b) {
		return compareAsc(a, b)
	}
	return compareAsc(b, a)
}
