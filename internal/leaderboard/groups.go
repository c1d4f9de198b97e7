package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmynk/cpnboard/internal/models"
	"github.com/mmynk/cpnboard/internal/storage"
)

// CreateGroup creates a group owned by userID and enrolls the creator as its
// first member. A failed enrollment is logged and does not fail the create.
func (s *Service) CreateGroup(ctx context.Context, name, userID string) (*models.Group, error) {
	name, err := validateGroupName(name)
	if err != nil {
		return nil, err
	}

	token, err := s.newToken()
	if err != nil {
		return nil, err
	}

	group := &models.Group{
		Name:        name,
		CreatedBy:   userID,
		InviteToken: token,
	}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	alias := "User"
	if user, err := s.store.GetUserByID(ctx, userID); err == nil {
		alias = defaultAlias(user.DisplayName, user.Email)
	} else {
		slog.Warn("Creator profile lookup failed, using default alias", "user_id", userID, "error", err)
	}

	created, err := s.store.EnsureMember(ctx, &models.Member{
		GroupID:      group.ID,
		UserID:       userID,
		DisplayAlias: alias,
	})
	if err != nil {
		slog.Error("Failed to add creator as member", "group_id", group.ID, "user_id", userID, "error", err)
	} else {
		if !created {
			slog.Debug("Creator membership already present", "group_id", group.ID)
		}
		group.MemberCount = 1
	}

	slog.Info("Group created", "group_id", group.ID, "created_by", userID)
	return group, nil
}

// UserGroups returns every group the user belongs to. No groups is an empty slice.
func (s *Service) UserGroups(ctx context.Context, userID string) ([]*models.Group, error) {
	groups, err := s.store.ListGroupsByMember(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	if groups == nil {
		groups = []*models.Group{}
	}
	return groups, nil
}

// GroupByID returns a group with its live member count.
func (s *Service) GroupByID(ctx context.Context, groupID string) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrGroupNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return group, nil
}

// RenameGroup renames a group. Only its creator may do so.
func (s *Service) RenameGroup(ctx context.Context, groupID, name, userID string) (*models.Group, error) {
	name, err := validateGroupName(name)
	if err != nil {
		return nil, err
	}

	group, err := s.store.UpdateGroupName(ctx, groupID, userID, name)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, s.ownershipError(ctx, groupID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to rename group: %w", err)
	}
	return group, nil
}

// DeleteGroup deletes a group and its memberships. Only its creator may do so.
func (s *Service) DeleteGroup(ctx context.Context, groupID, userID string) error {
	err := s.store.DeleteGroup(ctx, groupID, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return s.ownershipError(ctx, groupID)
	}
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	slog.Info("Group deleted", "group_id", groupID, "deleted_by", userID)
	return nil
}

// ownershipError explains why an owner-scoped write matched nothing.
func (s *Service) ownershipError(ctx context.Context, groupID string) error {
	if _, err := s.store.GetGroup(ctx, groupID); err == nil {
		return ErrNotOwner
	}
	return ErrGroupNotFound
}

// GroupByInviteToken resolves an invite token by exact match.
func (s *Service) GroupByInviteToken(ctx context.Context, token string) (models.GroupRef, error) {
	if token == "" {
		return models.GroupRef{}, ErrInvalidInvite
	}
	group, err := s.store.GetGroupByInviteToken(ctx, token)
	if errors.Is(err, storage.ErrNotFound) {
		return models.GroupRef{}, ErrInvalidInvite
	}
	if err != nil {
		return models.GroupRef{}, fmt.Errorf("failed to resolve invite: %w", err)
	}
	return models.GroupRef{ID: group.ID, Name: group.Name}, nil
}

// PreviewInvite returns what the join page shows before an alias is chosen.
func (s *Service) PreviewInvite(ctx context.Context, token string) (*models.InvitePreview, error) {
	if token == "" {
		return nil, ErrInvalidInvite
	}
	preview, err := s.store.GetInvitePreview(ctx, token)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrInvalidInvite
	}
	if err != nil {
		return nil, fmt.Errorf("failed to preview invite: %w", err)
	}
	return preview, nil
}
