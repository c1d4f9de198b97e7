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

const memberColumns = `id, group_id, user_id, display_alias, joined_at`

func scanMember(row rowScanner) (*models.Member, error) {
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
func (s *SQLiteStore) AddMember(ctx context.Context, member *models.Member) error {
	prepareMember(member)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO leaderboard_members (`+memberColumns+`) VALUES (?, ?, ?, ?, ?)`,
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
func (s *SQLiteStore) EnsureMember(ctx context.Context, member *models.Member) (bool, error) {
	prepareMember(member)

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO leaderboard_members (`+memberColumns+`) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (group_id, user_id) DO NOTHING`,
		member.ID, member.GroupID, member.UserID, member.DisplayAlias, member.JoinedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to ensure member: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n > 0, nil
}

// GetMember retrieves a user's membership in a group.
func (s *SQLiteStore) GetMember(ctx context.Context, groupID, userID string) (*models.Member, error) {
	member, err := scanMember(s.db.QueryRowContext(ctx,
		`SELECT `+memberColumns+` FROM leaderboard_members WHERE group_id = ? AND user_id = ?`,
		groupID, userID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return member, nil
}

// RemoveMember deletes a membership. Missing rows are not an error.
func (s *SQLiteStore) RemoveMember(ctx context.Context, groupID, userID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM leaderboard_members WHERE group_id = ? AND user_id = ?`, groupID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	return nil
}

// UpdateMemberAlias changes the alias a member is shown under.
func (s *SQLiteStore) UpdateMemberAlias(ctx context.Context, groupID, userID, alias string) (*models.Member, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE leaderboard_members SET display_alias = ? WHERE group_id = ? AND user_id = ?`,
		alias, groupID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update alias: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	return s.GetMember(ctx, groupID, userID)
}

// ListMembers returns a group's members in join order.
func (s *SQLiteStore) ListMembers(ctx context.Context, groupID string) ([]*models.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+memberColumns+` FROM leaderboard_members WHERE group_id = ? ORDER BY joined_at, rowid`,
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
