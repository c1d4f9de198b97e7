package postgres

import (
	"context"
	"errors"
	"math"
	"os"
	"testing"

	"github.com/mmynk/cpnboard/internal/models"
	"github.com/mmynk/cpnboard/internal/storage"
)

// newTestStore connects to CPNBOARD_TEST_POSTGRES_URL and empties the tables.
func newTestStore(t *testing.T) *PostgresStore {
	t.Helper()

	url := os.Getenv("CPNBOARD_TEST_POSTGRES_URL")
	if url == "" {
		t.Skip("CPNBOARD_TEST_POSTGRES_URL not set")
	}

	ctx := context.Background()
	store, err := New(ctx, url)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if _, err := store.pool.Exec(ctx, `TRUNCATE users, entities, entries, leaderboard_groups, leaderboard_members CASCADE`); err != nil {
		t.Fatalf("Failed to truncate tables: %v", err)
	}
	return store
}

func TestPostgresStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, u := range []*models.User{
		models.NewUser("creator", "creator@example.com", "Creator"),
		models.NewUser("joiner", "joiner@example.com", ""),
	} {
		if err := store.CreateUser(ctx, u); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
	}

	t.Run("duplicate user is a conflict", func(t *testing.T) {
		err := store.CreateUser(ctx, models.NewUser("creator", "again@example.com", ""))
		if !errors.Is(err, storage.ErrConflict) {
			t.Errorf("Expected ErrConflict, got %v", err)
		}
	})

	t.Run("AggregateUserTotals matches raw rows", func(t *testing.T) {
		entity := &models.Entity{UserID: "creator", Name: "Alpha", Age: 30, Rating: 9, IsActive: true}
		if err := store.CreateEntity(ctx, entity); err != nil {
			t.Fatalf("CreateEntity failed: %v", err)
		}
		for _, e := range []*models.Entry{
			{EntityID: entity.ID, Date: "2024-01-01", AmountSpent: 120.5, DurationMinutes: 90, UnitsCount: 3},
			{EntityID: entity.ID, Date: "2024-01-02", AmountSpent: 40, DurationMinutes: 30, UnitsCount: 1},
		} {
			if err := store.CreateEntry(ctx, e); err != nil {
				t.Fatalf("CreateEntry failed: %v", err)
			}
		}

		totals, err := store.AggregateUserTotals(ctx, "creator")
		if err != nil {
			t.Fatalf("AggregateUserTotals failed: %v", err)
		}
		if math.Abs(totals.TotalSpent-160.5) > 0.001 || totals.TotalUnits != 4 || totals.TotalMinutes != 120 {
			t.Errorf("Unexpected totals: %+v", totals)
		}
		if totals.TotalEntities != 1 || math.Abs(totals.AverageRating-9) > 0.001 {
			t.Errorf("Unexpected entity totals: %+v", totals)
		}
	})

	t.Run("group lifecycle", func(t *testing.T) {
		group := &models.Group{Name: "Crew", CreatedBy: "creator", InviteToken: "pg-token"}
		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}

		created, err := store.EnsureMember(ctx, &models.Member{GroupID: group.ID, UserID: "creator", DisplayAlias: "Creator"})
		if err != nil || !created {
			t.Fatalf("EnsureMember: created=%v err=%v", created, err)
		}
		created, err = store.EnsureMember(ctx, &models.Member{GroupID: group.ID, UserID: "creator", DisplayAlias: "Other"})
		if err != nil || created {
			t.Fatalf("second EnsureMember: created=%v err=%v", created, err)
		}
		if err := store.AddMember(ctx, &models.Member{GroupID: group.ID, UserID: "joiner", DisplayAlias: "Jo"}); err != nil {
			t.Fatalf("AddMember failed: %v", err)
		}
		if err := store.AddMember(ctx, &models.Member{GroupID: group.ID, UserID: "joiner", DisplayAlias: "Jo"}); !errors.Is(err, storage.ErrConflict) {
			t.Errorf("Expected ErrConflict, got %v", err)
		}

		preview, err := store.GetInvitePreview(ctx, "pg-token")
		if err != nil {
			t.Fatalf("GetInvitePreview failed: %v", err)
		}
		if preview.MemberCount != 2 || preview.CreatorEmail != "creator@example.com" {
			t.Errorf("Unexpected preview: %+v", preview)
		}

		if _, err := store.UpdateGroupName(ctx, group.ID, "joiner", "Nope"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound for non-owner rename, got %v", err)
		}
		member, err := store.UpdateMemberAlias(ctx, group.ID, "joiner", "Joey")
		if err != nil || member.DisplayAlias != "Joey" {
			t.Errorf("UpdateMemberAlias: member=%+v err=%v", member, err)
		}

		members, err := store.ListMembers(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListMembers failed: %v", err)
		}
		if len(members) != 2 || members[0].UserID != "creator" {
			t.Errorf("Unexpected members: %+v", members)
		}

		if err := store.DeleteGroup(ctx, group.ID, "creator"); err != nil {
			t.Fatalf("DeleteGroup failed: %v", err)
		}
		if _, err := store.GetGroup(ctx, group.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}
