package models

// UserStats is the derived metrics snapshot for one user.
// The zero value is the "no data" snapshot.
type UserStats struct {
	TotalSpent       float64
	TotalUnits       int
	CostPerUnit      float64
	TotalTimeMinutes int
	TotalEntities    int
	EfficiencyScore  float64
}

// HasData reports whether the user logged at least one unit.
func (s UserStats) HasData() bool {
	return s.TotalUnits > 0
}

// MemberWithStats attaches a member's stats for ranking.
type MemberWithStats struct {
	Member
	Stats UserStats
}

// Ranking is one row of a computed leaderboard. Rank starts at 1.
type Ranking struct {
	Rank   int
	Member MemberWithStats
}
