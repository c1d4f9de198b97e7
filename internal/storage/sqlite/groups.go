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

// groupSelect reads a group together with its live member count.
const groupSelect = `
	SELECT g.id, g.name, g.created_by, g.invite_token, g.created_at, g.updated_at,
		(SELECT COUNT(*) FROM leaderboard_members m WHERE m.group_id = g.id)
	FROM leaderboard_groups g`

func scanGroup(row rowScanner) (*models.Group, error) {
	group := &models.Group{}
	err := row.Scan(
		&group.ID, &group.Name, &group.CreatedBy, &group.InviteToken,
		&group.CreatedAt, &group.UpdatedAt, &group.MemberCount,
	)
	if err != nil {
		return nil, err
	}
	return group, nil
}

// CreateGroup inserts a new leaderboard group.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if group.CreatedAt == 0 {
		group.CreatedAt = now
	}
	group.UpdatedAt = group.CreatedAt

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO leaderboard_groups (id, name, created_by, invite_token, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		group.ID, group.Name, group.CreatedBy, group.InviteToken, group.CreatedAt, group.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("failed to insert group: %w", storage.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}
	return nil
}

// GetGroup retrieves a group by ID.
func (s *SQLiteStore) GetGroup(ctx context.Context, id string) (*models.Group, error) {
	group, err := scanGroup(s.db.QueryRowContext(ctx, groupSelect+` WHERE g.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return group, nil
}

// GetGroupByInviteToken resolves an invite token to its group.
func (s *SQLiteStore) GetGroupByInviteToken(ctx context.Context, token string) (*models.Group, error) {
	group, err := scanGroup(s.db.QueryRowContext(ctx, groupSelect+` WHERE g.invite_token = ?`, token))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group by invite token: %w", err)
	}
	return group, nil
}

// GetInvitePreview loads the public details shown on an invite page.
func (s *SQLiteStore) GetInvitePreview(ctx context.Context, token string) (*models.InvitePreview, error) {
	preview := &models.InvitePreview{}
	err := s.db.QueryRowContext(ctx, `
		SELECT g.id, g.name, COALESCE(u.email, ''),
			(SELECT COUNT(*) FROM leaderboard_members m WHERE m.group_id = g.id)
		FROM leaderboard_groups g
		LEFT JOIN users u ON u.id = g.created_by
		WHERE g.invite_token = ?`,
		token,
	).Scan(&preview.GroupID, &preview.GroupName, &preview.CreatorEmail, &preview.MemberCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invite preview: %w", err)
	}
	return preview, nil
}

// ListGroupsByMember returns the groups the user belongs to, most recently joined first.
func (s *SQLiteStore) ListGroupsByMember(ctx context.Context, userID string) ([]*models.Group, error) {
	rows, err := s.db.QueryContext(ctx, groupSelect+`
		JOIN leaderboard_members me ON me.group_id = g.id
		WHERE me.user_id = ?
		ORDER BY me.joined_at DESC, me.rowid DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*models.Group
	for rows.Next() {
		group, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}
	return groups, nil
}

// UpdateGroupName renames a group owned by ownerID.
func (s *SQLiteStore) UpdateGroupName(ctx context.Context, id, ownerID, name string) (*models.Group, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE leaderboard_groups SET name = ?, updated_at = ? WHERE id = ? AND created_by = ?`,
		name, time.Now().Unix(), id, ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to rename group: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	return s.GetGroup(ctx, id)
}

// DeleteGroup removes a group owned by ownerID along with its memberships.
func (s *SQLiteStore) DeleteGroup(ctx context.Context, id, ownerID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`DELETE FROM leaderboard_groups WHERE id = ? AND created_by = ?`, id, ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return err
	}

	// Cascade already covers this when foreign keys are enforced.
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM leaderboard_members WHERE group_id = ?`, id,
	); err != nil {
		return fmt.Errorf("failed to delete members: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
