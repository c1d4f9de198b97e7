package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/cpnboard/internal/models"
	"github.com/mmynk/cpnboard/internal/storage"
)

const entityColumns = `id, user_id, name, age, nationality, ethnicity, hair_color,
	location_city, location_country, rating, is_active, created_at, updated_at`

const entryColumns = `e.id, e.entity_id, e.date, e.amount_spent, e.duration_minutes,
	e.units_count, e.created_at, e.updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntity(row rowScanner) (*models.Entity, error) {
	entity := &models.Entity{}
	var active int
	err := row.Scan(
		&entity.ID, &entity.UserID, &entity.Name, &entity.Age,
		&entity.Nationality, &entity.Ethnicity, &entity.HairColor,
		&entity.LocationCity, &entity.LocationCountry,
		&entity.Rating, &active, &entity.CreatedAt, &entity.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	entity.IsActive = active != 0
	return entity, nil
}

func scanEntry(row rowScanner) (*models.Entry, error) {
	entry := &models.Entry{}
	err := row.Scan(
		&entry.ID, &entry.EntityID, &entry.Date, &entry.AmountSpent,
		&entry.DurationMinutes, &entry.UnitsCount, &entry.CreatedAt, &entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// CreateEntity persists a new tracked entity.
func (s *SQLiteStore) CreateEntity(ctx context.Context, entity *models.Entity) error {
	if entity.ID == "" {
		entity.ID = uuid.New().String()
	}
	if entity.CreatedAt == 0 {
		entity.CreatedAt = time.Now().Unix()
	}
	entity.UpdatedAt = entity.CreatedAt

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO entities (`+entityColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entity.ID, entity.UserID, entity.Name, entity.Age,
		entity.Nationality, entity.Ethnicity, entity.HairColor,
		entity.LocationCity, entity.LocationCountry,
		entity.Rating, boolToInt(entity.IsActive), entity.CreatedAt, entity.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert entity: %w", err)
	}
	return nil
}

// GetEntity retrieves an entity by ID.
func (s *SQLiteStore) GetEntity(ctx context.Context, id string) (*models.Entity, error) {
	entity, err := scanEntity(s.db.QueryRowContext(ctx,
		`SELECT `+entityColumns+` FROM entities WHERE id = ?`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entity: %w", err)
	}
	return entity, nil
}

// ListEntitiesByUser retrieves all entities owned by the user.
func (s *SQLiteStore) ListEntitiesByUser(ctx context.Context, userID string) ([]*models.Entity, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+entityColumns+` FROM entities WHERE user_id = ? ORDER BY created_at DESC, rowid DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list entities: %w", err)
	}
	defer rows.Close()

	var entities []*models.Entity
	for rows.Next() {
		entity, err := scanEntity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entity: %w", err)
		}
		entities = append(entities, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entities: %w", err)
	}
	return entities, nil
}

// CountActiveEntities counts the user's active entities.
func (s *SQLiteStore) CountActiveEntities(ctx context.Context, userID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM entities WHERE user_id = ? AND is_active = 1`, userID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count active entities: %w", err)
	}
	return n, nil
}

// SetEntityActive toggles the soft-deactivation flag.
func (s *SQLiteStore) SetEntityActive(ctx context.Context, id, userID string, active bool) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE entities SET is_active = ?, updated_at = ? WHERE id = ? AND user_id = ?`,
		boolToInt(active), time.Now().Unix(), id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update entity: %w", err)
	}
	return requireAffected(res)
}

// DeleteEntity removes an entity and, by cascade, its entries.
func (s *SQLiteStore) DeleteEntity(ctx context.Context, id, userID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM entities WHERE id = ? AND user_id = ?`, id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete entity: %w", err)
	}
	return requireAffected(res)
}

// CreateEntry persists a new encounter entry.
func (s *SQLiteStore) CreateEntry(ctx context.Context, entry *models.Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt == 0 {
		entry.CreatedAt = time.Now().Unix()
	}
	entry.UpdatedAt = entry.CreatedAt

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO entries (id, entity_id, date, amount_spent, duration_minutes, units_count, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.EntityID, entry.Date, entry.AmountSpent,
		entry.DurationMinutes, entry.UnitsCount, entry.CreatedAt, entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert entry: %w", err)
	}
	return nil
}

// ListEntriesByEntity retrieves an entity's entries, most recent date first.
func (s *SQLiteStore) ListEntriesByEntity(ctx context.Context, entityID string) ([]*models.Entry, error) {
	return s.queryEntries(ctx,
		`SELECT `+entryColumns+` FROM entries e WHERE e.entity_id = ? ORDER BY e.date DESC, e.rowid DESC`,
		entityID,
	)
}

// ListEntriesByUser retrieves the entries of every entity the user owns,
// active or not.
func (s *SQLiteStore) ListEntriesByUser(ctx context.Context, userID string) ([]*models.Entry, error) {
	return s.queryEntries(ctx,
		`SELECT `+entryColumns+` FROM entries e
		 JOIN entities t ON t.id = e.entity_id
		 WHERE t.user_id = ?
		 ORDER BY e.rowid`,
		userID,
	)
}

func (s *SQLiteStore) queryEntries(ctx context.Context, query string, args ...any) ([]*models.Entry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}
	return entries, nil
}

// AggregateUserTotals sums a user's entries and counts their entities in SQL.
func (s *SQLiteStore) AggregateUserTotals(ctx context.Context, userID string) (*models.UserTotals, error) {
	totals := &models.UserTotals{}

	err := s.db.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(e.amount_spent), 0),
			COALESCE(SUM(e.units_count), 0),
			COALESCE(SUM(e.duration_minutes), 0)
		FROM entries e
		JOIN entities t ON t.id = e.entity_id
		WHERE t.user_id = ?`,
		userID,
	).Scan(&totals.TotalSpent, &totals.TotalUnits, &totals.TotalMinutes)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate entries: %w", err)
	}

	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(AVG(rating), 0) FROM entities WHERE user_id = ?`,
		userID,
	).Scan(&totals.TotalEntities, &totals.AverageRating)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate entities: %w", err)
	}

	return totals, nil
}
