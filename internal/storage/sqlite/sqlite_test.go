package sqlite

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mmynk/cpnboard/internal/models"
	"github.com/mmynk/cpnboard/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "cpnboard-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func createUser(t *testing.T, store *SQLiteStore, id, email string) *models.User {
	t.Helper()
	user := models.NewUser(id, email, "")
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser(%s) failed: %v", id, err)
	}
	return user
}

func TestUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateUser and GetUserByID round trip", func(t *testing.T) {
		createUser(t, store, "user-1", "one@example.com")

		got, err := store.GetUserByID(ctx, "user-1")
		if err != nil {
			t.Fatalf("GetUserByID failed: %v", err)
		}
		if got.Email != "one@example.com" {
			t.Errorf("Email mismatch: got %s", got.Email)
		}
		if got.SubscriptionTier != models.TierBoyfriend {
			t.Errorf("Expected default tier %s, got %s", models.TierBoyfriend, got.SubscriptionTier)
		}
	})

	t.Run("duplicate ID is a conflict", func(t *testing.T) {
		err := store.CreateUser(ctx, models.NewUser("user-1", "other@example.com", ""))
		if !errors.Is(err, storage.ErrConflict) {
			t.Errorf("Expected ErrConflict, got %v", err)
		}
	})

	t.Run("emails need not be unique", func(t *testing.T) {
		for _, id := range []string{"blank-1", "blank-2"} {
			if err := store.CreateUser(ctx, models.NewUser(id, "", "")); err != nil {
				t.Fatalf("CreateUser(%s) with empty email failed: %v", id, err)
			}
		}
		if err := store.CreateUser(ctx, models.NewUser("user-moved", "one@example.com", "")); err != nil {
			t.Errorf("CreateUser with a reused email failed: %v", err)
		}
	})

	t.Run("GetUserByID returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetUserByID(ctx, "missing")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("UpdateSubscription keeps empty fields", func(t *testing.T) {
		createUser(t, store, "user-2", "two@example.com")

		err := store.UpdateSubscription(ctx, "user-2", models.SubscriptionUpdate{
			Tier:             models.TierPlayer,
			Status:           models.StatusActive,
			StripeCustomerID: "cus_123",
		})
		if err != nil {
			t.Fatalf("UpdateSubscription failed: %v", err)
		}
		err = store.UpdateSubscription(ctx, "user-2", models.SubscriptionUpdate{
			Status: models.StatusCanceled,
		})
		if err != nil {
			t.Fatalf("UpdateSubscription failed: %v", err)
		}

		got, err := store.GetUserByID(ctx, "user-2")
		if err != nil {
			t.Fatalf("GetUserByID failed: %v", err)
		}
		if got.SubscriptionTier != models.TierPlayer {
			t.Errorf("Tier: got %s, want %s", got.SubscriptionTier, models.TierPlayer)
		}
		if got.SubscriptionStatus != models.StatusCanceled {
			t.Errorf("Status: got %s, want %s", got.SubscriptionStatus, models.StatusCanceled)
		}
		if got.StripeCustomerID != "cus_123" {
			t.Errorf("StripeCustomerID: got %s", got.StripeCustomerID)
		}
	})

	t.Run("UpdateProfile on missing user", func(t *testing.T) {
		err := store.UpdateProfile(ctx, "missing", "x@example.com", "X")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}

func TestTracker(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	createUser(t, store, "owner", "owner@example.com")
	createUser(t, store, "other", "other@example.com")

	newEntity := func(t *testing.T, name string, rating float64) *models.Entity {
		t.Helper()
		entity := &models.Entity{UserID: "owner", Name: name, Age: 25, Rating: rating, IsActive: true}
		if err := store.CreateEntity(ctx, entity); err != nil {
			t.Fatalf("CreateEntity failed: %v", err)
		}
		return entity
	}
	addEntry := func(t *testing.T, entityID string, spent float64, minutes, units int) {
		t.Helper()
		entry := &models.Entry{EntityID: entityID, Date: "2024-05-01", AmountSpent: spent, DurationMinutes: minutes, UnitsCount: units}
		if err := store.CreateEntry(ctx, entry); err != nil {
			t.Fatalf("CreateEntry failed: %v", err)
		}
	}

	first := newEntity(t, "Alpha", 8)
	second := newEntity(t, "Beta", 6)
	addEntry(t, first.ID, 100, 60, 2)
	addEntry(t, first.ID, 50.5, 30, 1)
	addEntry(t, second.ID, 20, 45, 0)

	t.Run("entity round trip", func(t *testing.T) {
		got, err := store.GetEntity(ctx, first.ID)
		if err != nil {
			t.Fatalf("GetEntity failed: %v", err)
		}
		if got.Name != "Alpha" || !got.IsActive || got.Rating != 8 {
			t.Errorf("Unexpected entity: %+v", got)
		}
	})

	t.Run("SetEntityActive is owner scoped", func(t *testing.T) {
		if err := store.SetEntityActive(ctx, second.ID, "other", false); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound for non-owner, got %v", err)
		}
		if err := store.SetEntityActive(ctx, second.ID, "owner", false); err != nil {
			t.Fatalf("SetEntityActive failed: %v", err)
		}
		n, err := store.CountActiveEntities(ctx, "owner")
		if err != nil {
			t.Fatalf("CountActiveEntities failed: %v", err)
		}
		if n != 1 {
			t.Errorf("Expected 1 active entity, got %d", n)
		}
	})

	t.Run("ListEntriesByUser includes inactive entities", func(t *testing.T) {
		entries, err := store.ListEntriesByUser(ctx, "owner")
		if err != nil {
			t.Fatalf("ListEntriesByUser failed: %v", err)
		}
		if len(entries) != 3 {
			t.Errorf("Expected 3 entries, got %d", len(entries))
		}
	})

	t.Run("AggregateUserTotals matches summing rows", func(t *testing.T) {
		totals, err := store.AggregateUserTotals(ctx, "owner")
		if err != nil {
			t.Fatalf("AggregateUserTotals failed: %v", err)
		}

		entries, _ := store.ListEntriesByUser(ctx, "owner")
		var spent float64
		var units, minutes int
		for _, e := range entries {
			spent += e.AmountSpent
			units += e.UnitsCount
			minutes += e.DurationMinutes
		}

		if math.Abs(totals.TotalSpent-spent) > 0.001 {
			t.Errorf("TotalSpent: got %f, want %f", totals.TotalSpent, spent)
		}
		if totals.TotalUnits != units || totals.TotalMinutes != minutes {
			t.Errorf("Totals mismatch: got units=%d minutes=%d, want %d %d",
				totals.TotalUnits, totals.TotalMinutes, units, minutes)
		}
		if totals.TotalEntities != 2 {
			t.Errorf("TotalEntities: got %d, want 2", totals.TotalEntities)
		}
		if math.Abs(totals.AverageRating-7) > 0.001 {
			t.Errorf("AverageRating: got %f, want 7", totals.AverageRating)
		}
	})

	t.Run("AggregateUserTotals with no data", func(t *testing.T) {
		totals, err := store.AggregateUserTotals(ctx, "other")
		if err != nil {
			t.Fatalf("AggregateUserTotals failed: %v", err)
		}
		if *totals != (models.UserTotals{}) {
			t.Errorf("Expected zero totals, got %+v", totals)
		}
	})

	t.Run("DeleteEntity cascades entries", func(t *testing.T) {
		if err := store.DeleteEntity(ctx, first.ID, "owner"); err != nil {
			t.Fatalf("DeleteEntity failed: %v", err)
		}
		entries, err := store.ListEntriesByEntity(ctx, first.ID)
		if err != nil {
			t.Fatalf("ListEntriesByEntity failed: %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("Expected entries to be cascaded, got %d", len(entries))
		}
	})
}

func TestGroupsAndMembers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	createUser(t, store, "creator", "creator@example.com")
	createUser(t, store, "joiner", "joiner@example.com")

	group := &models.Group{Name: "Friday Crew", CreatedBy: "creator", InviteToken: "token-1"}
	if err := store.CreateGroup(ctx, group); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	base := time.Now().Unix()
	if err := store.AddMember(ctx, &models.Member{GroupID: group.ID, UserID: "creator", DisplayAlias: "Boss", JoinedAt: base}); err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}

	t.Run("duplicate invite token is a conflict", func(t *testing.T) {
		err := store.CreateGroup(ctx, &models.Group{Name: "Other", CreatedBy: "creator", InviteToken: "token-1"})
		if !errors.Is(err, storage.ErrConflict) {
			t.Errorf("Expected ErrConflict, got %v", err)
		}
	})

	t.Run("AddMember twice is a conflict", func(t *testing.T) {
		err := store.AddMember(ctx, &models.Member{GroupID: group.ID, UserID: "creator", DisplayAlias: "Again"})
		if !errors.Is(err, storage.ErrConflict) {
			t.Errorf("Expected ErrConflict, got %v", err)
		}
	})

	t.Run("EnsureMember is idempotent", func(t *testing.T) {
		created, err := store.EnsureMember(ctx, &models.Member{GroupID: group.ID, UserID: "joiner", DisplayAlias: "J", JoinedAt: base + 1})
		if err != nil {
			t.Fatalf("EnsureMember failed: %v", err)
		}
		if !created {
			t.Error("Expected first EnsureMember to create a row")
		}

		created, err = store.EnsureMember(ctx, &models.Member{GroupID: group.ID, UserID: "joiner", DisplayAlias: "J2"})
		if err != nil {
			t.Fatalf("EnsureMember failed: %v", err)
		}
		if created {
			t.Error("Expected second EnsureMember to be a no-op")
		}

		member, err := store.GetMember(ctx, group.ID, "joiner")
		if err != nil {
			t.Fatalf("GetMember failed: %v", err)
		}
		if member.DisplayAlias != "J" {
			t.Errorf("Alias should be unchanged, got %s", member.DisplayAlias)
		}
	})

	t.Run("reads carry member count", func(t *testing.T) {
		got, err := store.GetGroupByInviteToken(ctx, "token-1")
		if err != nil {
			t.Fatalf("GetGroupByInviteToken failed: %v", err)
		}
		if got.MemberCount != 2 {
			t.Errorf("MemberCount: got %d, want 2", got.MemberCount)
		}

		preview, err := store.GetInvitePreview(ctx, "token-1")
		if err != nil {
			t.Fatalf("GetInvitePreview failed: %v", err)
		}
		if preview.CreatorEmail != "creator@example.com" || preview.MemberCount != 2 {
			t.Errorf("Unexpected preview: %+v", preview)
		}
	})

	t.Run("ListMembers in join order", func(t *testing.T) {
		members, err := store.ListMembers(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListMembers failed: %v", err)
		}
		if len(members) != 2 || members[0].UserID != "creator" || members[1].UserID != "joiner" {
			t.Errorf("Unexpected member order: %+v", members)
		}
	})

	t.Run("ListGroupsByMember", func(t *testing.T) {
		groups, err := store.ListGroupsByMember(ctx, "joiner")
		if err != nil {
			t.Fatalf("ListGroupsByMember failed: %v", err)
		}
		if len(groups) != 1 || groups[0].ID != group.ID {
			t.Errorf("Unexpected groups: %+v", groups)
		}
	})

	t.Run("UpdateGroupName is owner scoped", func(t *testing.T) {
		if _, err := store.UpdateGroupName(ctx, group.ID, "joiner", "Hijacked"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound for non-owner, got %v", err)
		}
		got, err := store.UpdateGroupName(ctx, group.ID, "creator", "Saturday Crew")
		if err != nil {
			t.Fatalf("UpdateGroupName failed: %v", err)
		}
		if got.Name != "Saturday Crew" {
			t.Errorf("Name: got %s", got.Name)
		}
	})

	t.Run("UpdateMemberAlias", func(t *testing.T) {
		got, err := store.UpdateMemberAlias(ctx, group.ID, "joiner", "Jay")
		if err != nil {
			t.Fatalf("UpdateMemberAlias failed: %v", err)
		}
		if got.DisplayAlias != "Jay" {
			t.Errorf("Alias: got %s", got.DisplayAlias)
		}
		if _, err := store.UpdateMemberAlias(ctx, group.ID, "nobody", "X"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("RemoveMember tolerates missing rows", func(t *testing.T) {
		if err := store.RemoveMember(ctx, group.ID, "nobody"); err != nil {
			t.Errorf("RemoveMember failed: %v", err)
		}
		if err := store.RemoveMember(ctx, group.ID, "joiner"); err != nil {
			t.Fatalf("RemoveMember failed: %v", err)
		}
		if _, err := store.GetMember(ctx, group.ID, "joiner"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound after removal, got %v", err)
		}
	})

	t.Run("DeleteGroup is owner scoped and removes members", func(t *testing.T) {
		if err := store.DeleteGroup(ctx, group.ID, "joiner"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound for non-owner, got %v", err)
		}
		if err := store.DeleteGroup(ctx, group.ID, "creator"); err != nil {
			t.Fatalf("DeleteGroup failed: %v", err)
		}
		if _, err := store.GetGroup(ctx, group.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound after delete, got %v", err)
		}
		members, err := store.ListMembers(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListMembers failed: %v", err)
		}
		if len(members) != 0 {
			t.Errorf("Expected no members, got %d", len(members))
		}
	})
}
