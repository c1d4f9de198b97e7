package calculator

import (
	"math"
	"testing"

	"github.com/mmynk/cpnboard/internal/models"
)

func member(id string, joinedAt int64, units int, cpu, eff float64) models.MemberWithStats {
	return models.MemberWithStats{
		Member: models.Member{ID: id, UserID: "user-" + id, DisplayAlias: id, JoinedAt: joinedAt},
		Stats: models.UserStats{
			TotalUnits:      units,
			CostPerUnit:     cpu,
			EfficiencyScore: eff,
		},
	}
}

func order(rankings []models.Ranking) []string {
	ids := make([]string, len(rankings))
	for i, r := range rankings {
		ids[i] = r.Member.ID
	}
	return ids
}

func assertOrder(t *testing.T, rankings []models.Ranking, want ...string) {
	t.Helper()
	got := order(rankings)
	if len(got) != len(want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func assertContiguousRanks(t *testing.T, rankings []models.Ranking) {
	t.Helper()
	for i, r := range rankings {
		if r.Rank != i+1 {
			t.Errorf("rankings[%d].Rank = %d, want %d", i, r.Rank, i+1)
		}
	}
}

func TestCalculateRankings(t *testing.T) {
	tests := []struct {
		name    string
		members []models.MemberWithStats
		want    []string
	}{
		{
			name:    "empty group",
			members: nil,
			want:    []string{},
		},
		{
			name:    "single member without data still ranked",
			members: []models.MemberWithStats{member("a", 1, 0, 0, 0)},
			want:    []string{"a"},
		},
		{
			name: "cost per unit ascending",
			members: []models.MemberWithStats{
				member("a", 1, 10, 20, 50),
				member("b", 2, 10, 5, 10),
				member("c", 3, 10, 12, 90),
			},
			want: []string{"b", "c", "a"},
		},
		{
			name: "efficiency breaks cost ties",
			members: []models.MemberWithStats{
				member("A", 1, 3, 5, 60),
				member("B", 2, 3, 5, 80),
				member("C", 3, 0, 0, 0),
			},
			want: []string{"B", "A", "C"},
		},
		{
			name: "lower cost wins regardless of efficiency",
			members: []models.MemberWithStats{
				member("a", 1, 1, 6, 1000),
				member("b", 2, 1, 5, 1),
			},
			want: []string{"b", "a"},
		},
		{
			name: "no data members last ordered by join time",
			members: []models.MemberWithStats{
				member("late", 30, 0, 0, 0),
				member("data", 40, 1, 99, 0),
				member("early", 10, 0, 0, 0),
			},
			want: []string{"data", "early", "late"},
		},
		{
			name: "exact ties keep input order",
			members: []models.MemberWithStats{
				member("x", 1, 2, 7, 7),
				member("y", 2, 2, 7, 7),
				member("z", 3, 2, 7, 7),
			},
			want: []string{"x", "y", "z"},
		},
		{
			name: "NaN cost sorts after finite cost",
			members: []models.MemberWithStats{
				member("nan", 1, 2, math.NaN(), 50),
				member("ok", 2, 2, 100, 0),
			},
			want: []string{"ok", "nan"},
		},
		{
			name: "NaN efficiency loses tie",
			members: []models.MemberWithStats{
				member("nan", 1, 2, 5, math.NaN()),
				member("ok", 2, 2, 5, 1),
			},
			want: []string{"ok", "nan"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rankings := CalculateRankings(tt.members)
			if rankings == nil {
				t.Fatal("expected non-nil rankings")
			}
			assertOrder(t, rankings, tt.want...)
			assertContiguousRanks(t, rankings)
		})
	}
}

func TestCalculateRankings_NoDataNeverOutranksData(t *testing.T) {
	members := []models.MemberWithStats{
		member("n1", 1, 0, 0, 500),
		member("d1", 2, 1, 1000, 0),
		member("n2", 3, 0, -5, 900),
		member("d2", 4, 50, 1, 10),
	}

	rankings := CalculateRankings(members)
	if len(rankings) != len(members) {
		t.Fatalf("len = %d, want %d", len(rankings), len(members))
	}

	worstWithData, bestWithout := 0, len(rankings)+1
	for _, r := range rankings {
		if r.Member.Stats.HasData() && r.Rank > worstWithData {
			worstWithData = r.Rank
		}
		if !r.Member.Stats.HasData() && r.Rank < bestWithout {
			bestWithout = r.Rank
		}
	}
	if worstWithData >= bestWithout {
		t.Errorf("member without data ranked %d above member with data ranked %d", bestWithout, worstWithData)
	}
}

func TestCalculateRankings_DoesNotMutateInput(t *testing.T) {
	members := []models.MemberWithStats{
		member("a", 1, 1, 9, 0),
		member("b", 2, 1, 1, 0),
	}
	CalculateRankings(members)
	if members[0].ID != "a" || members[1].ID != "b" {
		t.Errorf("input reordered: %s, %s", members[0].ID, members[1].ID)
	}
}
