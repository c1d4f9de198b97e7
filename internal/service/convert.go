package service

import (
	"github.com/mmynk/cpnboard/internal/models"
	"github.com/mmynk/cpnboard/internal/rpc"
)

func toRPCGroup(g *models.Group) rpc.Group {
	return rpc.Group{
		ID:          g.ID,
		Name:        g.Name,
		CreatedBy:   g.CreatedBy,
		InviteToken: g.InviteToken,
		MemberCount: g.MemberCount,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}

func toRPCMember(m *models.Member) rpc.Member {
	return rpc.Member{
		ID:           m.ID,
		GroupID:      m.GroupID,
		UserID:       m.UserID,
		DisplayAlias: m.DisplayAlias,
		JoinedAt:     m.JoinedAt,
	}
}

func toRPCStats(s models.UserStats) rpc.UserStats {
	return rpc.UserStats{
		TotalSpent:       s.TotalSpent,
		TotalUnits:       s.TotalUnits,
		CostPerUnit:      s.CostPerUnit,
		TotalTimeMinutes: s.TotalTimeMinutes,
		TotalEntities:    s.TotalEntities,
		EfficiencyScore:  s.EfficiencyScore,
	}
}

func toRPCRanking(r models.Ranking) rpc.Ranking {
	return rpc.Ranking{
		Rank:   r.Rank,
		Member: toRPCMember(&r.Member.Member),
		Stats:  toRPCStats(r.Member.Stats),
	}
}

func toRPCEntity(e *models.Entity) rpc.Entity {
	return rpc.Entity{
		ID:              e.ID,
		Name:            e.Name,
		Age:             e.Age,
		Nationality:     e.Nationality,
		Ethnicity:       e.Ethnicity,
		HairColor:       e.HairColor,
		LocationCity:    e.LocationCity,
		LocationCountry: e.LocationCountry,
		Rating:          e.Rating,
		IsActive:        e.IsActive,
		CreatedAt:       e.CreatedAt,
	}
}

func toRPCEntry(e *models.Entry) rpc.Entry {
	return rpc.Entry{
		ID:              e.ID,
		EntityID:        e.EntityID,
		Date:            e.Date,
		AmountSpent:     e.AmountSpent,
		DurationMinutes: e.DurationMinutes,
		UnitsCount:      e.UnitsCount,
		CreatedAt:       e.CreatedAt,
	}
}
