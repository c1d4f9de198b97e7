package tracker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mmynk/cpnboard/internal/models"
	"github.com/mmynk/cpnboard/internal/storage/sqlite"
)

func newTestService(t *testing.T) (*Service, *sqlite.SQLiteStore) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "cpnboard-tracker-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	free := models.NewUser("free", "free@example.com", "")
	paid := models.NewUser("paid", "paid@example.com", "")
	paid.SubscriptionTier = models.TierPlayer
	for _, u := range []*models.User{free, paid} {
		if err := store.CreateUser(ctx, u); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
	}

	return NewService(store), store
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr string
	}{
		{"Anna", "Anna", ""},
		{"  Anna  ", "Anna", ""},
		{"", "", "Name is required"},
		{"   ", "", "Name is required"},
		{"Anna Maria", "", "Enter first name only"},
		{"Anna\tMaria", "", "Enter first name only"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := validateName(tt.input)
			if tt.wantErr != "" {
				if err == nil || err.Error() != tt.wantErr {
					t.Errorf("validateName(%q) error = %v, want %q", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("validateName(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("validateName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCreateEntity(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	t.Run("rejects invalid input", func(t *testing.T) {
		inputs := []EntityInput{
			{Name: "Anna", Age: 17, Rating: 5},
			{Name: "Anna", Age: 20, Rating: -1},
			{Name: "Anna", Age: 20, Rating: 10.5},
			{Name: "Anna Maria", Age: 20, Rating: 5},
		}
		for _, in := range inputs {
			_, err := svc.CreateEntity(ctx, "paid", in)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("CreateEntity(%+v): expected ValidationError, got %v", in, err)
			}
		}
	})

	t.Run("free tier allows one active entity", func(t *testing.T) {
		first, err := svc.CreateEntity(ctx, "free", EntityInput{Name: "Anna", Age: 20, Rating: 7})
		if err != nil {
			t.Fatalf("CreateEntity failed: %v", err)
		}
		if _, err := svc.CreateEntity(ctx, "free", EntityInput{Name: "Bea", Age: 22, Rating: 6}); !errors.Is(err, ErrActiveLimit) {
			t.Fatalf("Expected ErrActiveLimit, got %v", err)
		}

		if err := svc.SetEntityActive(ctx, "free", first.ID, false); err != nil {
			t.Fatalf("SetEntityActive failed: %v", err)
		}
		second, err := svc.CreateEntity(ctx, "free", EntityInput{Name: "Bea", Age: 22, Rating: 6})
		if err != nil {
			t.Fatalf("CreateEntity after deactivation failed: %v", err)
		}

		if err := svc.SetEntityActive(ctx, "free", first.ID, true); !errors.Is(err, ErrActiveLimit) {
			t.Errorf("Expected ErrActiveLimit on reactivation, got %v", err)
		}
		if err := svc.SetEntityActive(ctx, "free", second.ID, true); err != nil {
			t.Errorf("Re-activating an active entity should succeed: %v", err)
		}
	})

	t.Run("paid tier is unlimited", func(t *testing.T) {
		for _, name := range []string{"Cara", "Dana", "Eve"} {
			if _, err := svc.CreateEntity(ctx, "paid", EntityInput{Name: name, Age: 30, Rating: 8}); err != nil {
				t.Fatalf("CreateEntity(%s) failed: %v", name, err)
			}
		}
		entities, err := svc.ListEntities(ctx, "paid")
		if err != nil {
			t.Fatalf("ListEntities failed: %v", err)
		}
		if len(entities) != 3 {
			t.Errorf("Expected 3 entities, got %d", len(entities))
		}
	})
}

func TestEntries(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	entity, err := svc.CreateEntity(ctx, "paid", EntityInput{Name: "Anna", Age: 25, Rating: 9})
	if err != nil {
		t.Fatalf("CreateEntity failed: %v", err)
	}

	t.Run("rejects invalid entries", func(t *testing.T) {
		inputs := []EntryInput{
			{EntityID: entity.ID, Date: "03/01/2024", AmountSpent: 10, DurationMinutes: 30, UnitsCount: 1},
			{EntityID: entity.ID, Date: "2024-03-01", AmountSpent: -1, DurationMinutes: 30, UnitsCount: 1},
			{EntityID: entity.ID, Date: "2024-03-01", AmountSpent: 10, DurationMinutes: 0, UnitsCount: 1},
			{EntityID: entity.ID, Date: "2024-03-01", AmountSpent: 10, DurationMinutes: 30, UnitsCount: -1},
		}
		for _, in := range inputs {
			var verr *ValidationError
			if _, err := svc.AddEntry(ctx, "paid", in); !errors.As(err, &verr) {
				t.Errorf("AddEntry(%+v): expected ValidationError, got %v", in, err)
			}
		}
	})

	t.Run("entries are owner scoped", func(t *testing.T) {
		_, err := svc.AddEntry(ctx, "free", EntryInput{EntityID: entity.ID, Date: "2024-03-01", AmountSpent: 10, DurationMinutes: 30})
		if !errors.Is(err, ErrEntityNotFound) {
			t.Errorf("Expected ErrEntityNotFound, got %v", err)
		}
		if _, err := svc.ListEntries(ctx, "free", entity.ID); !errors.Is(err, ErrEntityNotFound) {
			t.Errorf("Expected ErrEntityNotFound, got %v", err)
		}
	})

	t.Run("zero units is allowed", func(t *testing.T) {
		if _, err := svc.AddEntry(ctx, "paid", EntryInput{EntityID: entity.ID, Date: "2024-03-01", AmountSpent: 0, DurationMinutes: 15}); err != nil {
			t.Fatalf("AddEntry failed: %v", err)
		}
		if _, err := svc.AddEntry(ctx, "paid", EntryInput{EntityID: entity.ID, Date: "2024-03-02", AmountSpent: 80, DurationMinutes: 60, UnitsCount: 2}); err != nil {
			t.Fatalf("AddEntry failed: %v", err)
		}

		entries, err := svc.ListEntries(ctx, "paid", entity.ID)
		if err != nil {
			t.Fatalf("ListEntries failed: %v", err)
		}
		if len(entries) != 2 || entries[0].Date != "2024-03-02" {
			t.Errorf("Unexpected entries: %+v", entries)
		}
	})

	t.Run("DeleteEntity cascades and is owner scoped", func(t *testing.T) {
		if err := svc.DeleteEntity(ctx, "free", entity.ID); !errors.Is(err, ErrEntityNotFound) {
			t.Errorf("Expected ErrEntityNotFound, got %v", err)
		}
		if err := svc.DeleteEntity(ctx, "paid", entity.ID); err != nil {
			t.Fatalf("DeleteEntity failed: %v", err)
		}
		if _, err := svc.ListEntries(ctx, "paid", entity.ID); !errors.Is(err, ErrEntityNotFound) {
			t.Errorf("Expected ErrEntityNotFound after delete, got %v", err)
		}
	})
}
