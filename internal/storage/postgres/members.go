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

const memberColumns = `id, group_id, user_id, display_alias, joined_at`

func scanMember(row pgx.Row) (*models.Member, error) {
	member := &models.Member{}
	err := row.Scan(&member.ID, &member.GroupID, &member.UserID, &member.DisplayAlias, &member.JoinedAt)
	if err != nil {
		return nil, err
	}
	return member, nil
}

func prepareMember(member *models.Member) {
	if member.ID == "" {
		member.ID = uuid.New().String()
	}
	if member.JoinedAt == 0 {
		member.JoinedAt = time.Now().Unix()
	}
}

// AddMember inserts a membership row.
func (s *PostgresStore) AddMember(ctx context.Context, member *models.Member) error {
	prepareMember(member)

	_, err := s.pool.Exec(ctx,
		`INSERT INTO leaderboard_members (`+memberColumns+`) VALUES ($1, $2, $3, $4, $5)`,
		member.ID, member.GroupID, member.UserID, member.DisplayAlias, member.JoinedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("failed to add member: %w", storage.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}
	return nil
}

// EnsureMember inserts a membership unless the user is already in the group.
func (s *PostgresStore) EnsureMember(ctx context.Context, member *models.Member) (bool, error) {
	prepareMember(member)

	tag, err := s.pool.Exec(ctx,
		`INSERT INTO leaderboard_members (`+memberColumns+`) VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (group_id, user_id) DO NOTHING`,
		member.ID, member.GroupID, member.UserID, member.DisplayAlias, member.JoinedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to ensure member: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// GetMember retrieves a user's membership in a group.
func (s *PostgresStore) GetMember(ctx context.Context, groupID, userID string) (*models.Member, error) {
	member, err := scanMember(s.pool.QueryRow(ctx,
		`SELECT `+memberColumns+` FROM leaderboard_members WHERE group_id = $1 AND user_id = $2`,
		groupID, userID,
	))
	if isNoRows(err) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return member, nil
}

// RemoveMember deletes a membership. Missing rows are not an error.
func (s *PostgresStore) RemoveMember(ctx context.Context, groupID, userID string) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM leaderboard_members WHERE group_id = $1 AND user_id = $2`, groupID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	return nil
}

// UpdateMemberAlias changes the alias a member is shown under.
func (s *PostgresStore) UpdateMemberAlias(ctx context.Context, groupID, userID, alias string) (*models.Member, error) {
	member, err := scanMember(s.pool.QueryRow(ctx,
		`UPDATE leaderboard_members SET display_alias = $1
		 WHERE group_id = $2 AND user_id = $3
		 RETURNING `+memberColumns,
		alias, groupID, userID,
	))
	if isNoRows(err) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update alias: %w", err)
	}
	return member, nil
}

// ListMembers returns a group's members in join order.
func (s *PostgresStore) ListMembers(ctx context.Context, groupID string) ([]*models.Member, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+memberColumns+` FROM leaderboard_members WHERE group_id = $1 ORDER BY joined_at, seq`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []*models.Member
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	return members, nil
}
