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

const groupSelect = `
	SELECT g.id, g.name, g.created_by, g.invite_token, g.created_at, g.updated_at,
		(SELECT COUNT(*) FROM leaderboard_members m WHERE m.group_id = g.id)
	FROM leaderboard_groups g`

func scanGroup(row pgx.Row) (*models.Group, error) {
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
func (s *PostgresStore) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}
	group.UpdatedAt = group.CreatedAt

	_, err := s.pool.Exec(ctx,
		`INSERT INTO leaderboard_groups (id, name, created_by, invite_token, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
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

func (s *PostgresStore) getGroupWhere(ctx context.Context, where string, arg string) (*models.Group, error) {
	group, err := scanGroup(s.pool.QueryRow(ctx, groupSelect+` WHERE `+where, arg))
	if isNoRows(err) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return group, nil
}

// GetGroup retrieves a group by ID.
func (s *PostgresStore) GetGroup(ctx context.Context, id string) (*models.Group, error) {
	return s.getGroupWhere(ctx, `g.id = $1`, id)
}

// GetGroupByInviteToken resolves an invite token to its group.
func (s *PostgresStore) GetGroupByInviteToken(ctx context.Context, token string) (*models.Group, error) {
	return s.getGroupWhere(ctx, `g.invite_token = $1`, token)
}

// GetInvitePreview loads the public details shown on an invite page.
func (s *PostgresStore) GetInvitePreview(ctx context.Context, token string) (*models.InvitePreview, error) {
	preview := &models.InvitePreview{}
	err := s.pool.QueryRow(ctx, `
		SELECT g.id, g.name, COALESCE(u.email, ''),
			(SELECT COUNT(*) FROM leaderboard_members m WHERE m.group_id = g.id)
		FROM leaderboard_groups g
		LEFT JOIN users u ON u.id = g.created_by
		WHERE g.invite_token = $1`,
		token,
	).Scan(&preview.GroupID, &preview.GroupName, &preview.CreatorEmail, &preview.MemberCount)
	if isNoRows(err) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invite preview: %w", err)
	}
	return preview, nil
}

// ListGroupsByMember returns the groups the user belongs to, most recently joined first.
func (s *PostgresStore) ListGroupsByMember(ctx context.Context, userID string) ([]*models.Group, error) {
	rows, err := s.pool.Query(ctx, groupSelect+`
		JOIN leaderboard_members me ON me.group_id = g.id
		WHERE me.user_id = $1
		ORDER BY me.joined_at DESC, me.seq DESC`,
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
func (s *PostgresStore) UpdateGroupName(ctx context.Context, id, ownerID, name string) (*models.Group, error) {
	tag, err := s.pool.Exec(ctx,
		`UPDATE leaderboard_groups SET name = $1, updated_at = $2 WHERE id = $3 AND created_by = $4`,
		name, time.Now().Unix(), id, ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to rename group: %w", err)
	}
	if err := requireAffected(tag); err != nil {
		return nil, err
	}
	return s.GetGroup(ctx, id)
}

// DeleteGroup removes a group owned by ownerID along with its memberships.
func (s *PostgresStore) DeleteGroup(ctx context.Context, id, ownerID string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`DELETE FROM leaderboard_groups WHERE id = $1 AND created_by = $2`, id, ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	if err := requireAffected(tag); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM leaderboard_members WHERE group_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete members: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
