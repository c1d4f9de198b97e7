package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mmynk/cpnboard/internal/models"
	"github.com/mmynk/cpnboard/internal/storage"
)

const entityColumns = `id, user_id, name, age, nationality, ethnicity, hair_color,
	location_city, location_country, rating, is_active, created_at, updated_at`

const entryColumns = `e.id, e.entity_id, e.date, e.amount_spent, e.duration_minutes,
	e.units_count, e.created_at, e.updated_at`

func scanEntity(row pgx.Row) (*models.Entity, error) {
	entity := &models.Entity{}
	err := row.Scan(
		&entity.ID, &entity.UserID, &entity.Name, &entity.Age,
		&entity.Nationality, &entity.Ethnicity, &entity.HairColor,
		&entity.LocationCity, &entity.LocationCountry,
		&entity.Rating, &entity.IsActive, &entity.CreatedAt, &entity.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return entity, nil
}

func scanEntry(row pgx.Row) (*models.Entry, error) {
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
func (s *PostgresStore) CreateEntity(ctx context.Context, entity *models.Entity) error {
	if entity.ID == "" {
		entity.ID = uuid.New().String()
	}
	if entity.CreatedAt == 0 {
		entity.CreatedAt = time.Now().Unix()
	}
	entity.UpdatedAt = entity.CreatedAt

	_, err := s.pool.Exec(ctx,
		`INSERT INTO entities (`+entityColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		entity.ID, entity.UserID, entity.Name, entity.Age,
		entity.Nationality, entity.Ethnicity, entity.HairColor,
		entity.LocationCity, entity.LocationCountry,
		entity.Rating, entity.IsActive, entity.CreatedAt, entity.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert entity: %w", err)
	}
	return nil
}

// GetEntity retrieves an entity by ID.
func (s *PostgresStore) GetEntity(ctx context.Context, id string) (*models.Entity, error) {
	entity, err := scanEntity(s.pool.QueryRow(ctx,
		`SELECT `+entityColumns+` FROM entities WHERE id = $1`, id,
	))
	if isNoRows(err) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entity: %w", err)
	}
	return entity, nil
}

// ListEntitiesByUser retrieves all entities owned by the user, newest first.
func (s *PostgresStore) ListEntitiesByUser(ctx context.Context, userID string) ([]*models.Entity, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+entityColumns+` FROM entities WHERE user_id = $1 ORDER BY created_at DESC, seq DESC`,
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
func (s *PostgresStore) CountActiveEntities(ctx context.Context, userID string) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM entities WHERE user_id = $1 AND is_active`, userID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count active entities: %w", err)
	}
	return n, nil
}

// SetEntityActive toggles the soft-deactivation flag.
func (s *PostgresStore) SetEntityActive(ctx context.Context, id, userID string, active bool) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE entities SET is_active = $1, updated_at = $2 WHERE id = $3 AND user_id = $4`,
		active, time.Now().Unix(), id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update entity: %w", err)
	}
	return requireAffected(tag)
}

// DeleteEntity removes an entity and, by cascade, its entries.
func (s *PostgresStore) DeleteEntity(ctx context.Context, id, userID string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM entities WHERE id = $1 AND user_id = $2`, id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete entity: %w", err)
	}
	return requireAffected(tag)
}

// CreateEntry persists a new encounter entry.
func (s *PostgresStore) CreateEntry(ctx context.Context, entry *models.Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt == 0 {
		entry.CreatedAt = time.Now().Unix()
	}
	entry.UpdatedAt = entry.CreatedAt

	_, err := s.pool.Exec(ctx,
		`INSERT INTO entries (id, entity_id, date, amount_spent, duration_minutes, units_count, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		entry.ID, entry.EntityID, entry.Date, entry.AmountSpent,
		entry.DurationMinutes, entry.UnitsCount, entry.CreatedAt, entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert entry: %w", err)
	}
	return nil
}

// ListEntriesByEntity retrieves an entity's entries, most recent date first.
func (s *PostgresStore) ListEntriesByEntity(ctx context.Context, entityID string) ([]*models.Entry, error) {
	return s.queryEntries(ctx,
		`SELECT `+entryColumns+` FROM entries e WHERE e.entity_id = $1 ORDER BY e.date DESC, e.seq DESC`,
		entityID,
	)
}

// ListEntriesByUser retrieves the entries of every entity the user owns.
func (s *PostgresStore) ListEntriesByUser(ctx context.Context, userID string) ([]*models.Entry, error) {
	return s.queryEntries(ctx,
		`SELECT `+entryColumns+` FROM entries e
		 JOIN entities t ON t.id = e.entity_id
		 WHERE t.user_id = $1
		 ORDER BY e.seq`,
		userID,
	)
}

func (s *PostgresStore) queryEntries(ctx context.Context, query string, args ...any) ([]*models.Entry, error) {
	rows, err := s.pool.Query(ctx, query, args...)
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
func (s *PostgresStore) AggregateUserTotals(ctx context.Context, userID string) (*models.UserTotals, error) {
	totals := &models.UserTotals{}

	err := s.pool.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(e.amount_spent), 0)::double precision,
			COALESCE(SUM(e.units_count), 0)::bigint,
			COALESCE(SUM(e.duration_minutes), 0)::bigint
		FROM entries e
		JOIN entities t ON t.id = e.entity_id
		WHERE t.user_id = $1`,
		userID,
	).Scan(&totals.TotalSpent, &totals.TotalUnits, &totals.TotalMinutes)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate entries: %w", err)
	}

	err = s.pool.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(AVG(rating), 0)::double precision FROM entities WHERE user_id = $1`,
		userID,
	).Scan(&totals.TotalEntities, &totals.AverageRating)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate entities: %w", err)
	}

	return totals, nil
}
