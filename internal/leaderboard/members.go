package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmynk/cpnboard/internal/models"
	"github.com/mmynk/cpnboard/internal/storage"
)

// JoinGroup redeems an invite token for userID under alias.
// A second join by the same user returns ErrAlreadyMember.
func (s *Service) JoinGroup(ctx context.Context, token, userID, alias string) (*models.Member, error) {
	alias, err := validateAlias(alias)
	if err != nil {
		return nil, err
	}

	ref, err := s.GroupByInviteToken(ctx, token)
	if err != nil {
		return nil, err
	}

	_, err = s.store.GetMember(ctx, ref.ID, userID)
	if err == nil {
		return nil, ErrAlreadyMember
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}

	member := &models.Member{
		GroupID:      ref.ID,
		UserID:       userID,
		DisplayAlias: alias,
	}
	if err := s.store.AddMember(ctx, member); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, ErrAlreadyMember
		}
		return nil, fmt.Errorf("failed to join group: %w", err)
	}

	s.metrics.InvitesRedeemed.Inc()
	slog.Info("Member joined group", "group_id", ref.ID, "user_id", userID)
	return member, nil
}

// LeaveGroup removes userID from the group. Leaving a group you are not in succeeds.
func (s *Service) LeaveGroup(ctx context.Context, groupID, userID string) error {
	if err := s.store.RemoveMember(ctx, groupID, userID); err != nil {
		return fmt.Errorf("failed to leave group: %w", err)
	}
	slog.Info("Member left group", "group_id", groupID, "user_id", userID)
	return nil
}

// UpdateDisplayAlias changes the alias userID is shown under in the group.
func (s *Service) UpdateDisplayAlias(ctx context.Context, groupID, userID, alias string) (*models.Member, error) {
	alias, err := validateAlias(alias)
	if err != nil {
		return nil, err
	}

	member, err := s.store.UpdateMemberAlias(ctx, groupID, userID, alias)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotMember
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update alias: %w", err)
	}
	return member, nil
}

// ListMembers returns the group's members in join order.
func (s *Service) ListMembers(ctx context.Context, groupID string) ([]*models.Member, error) {
	members, err := s.store.ListMembers(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	if members == nil {
		members = []*models.Member{}
	}
	return members, nil
}

// IsMember reports whether userID belongs to the group. Lookup errors read as false.
func (s *Service) IsMember(ctx context.Context, groupID, userID string) bool {
	_, err := s.store.GetMember(ctx, groupID, userID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		slog.Warn("Membership check failed", "group_id", groupID, "user_id", userID, "error", err)
	}
	return err == nil
}

// DisplayAlias returns the alias userID uses in the group, if a member.
func (s *Service) DisplayAlias(ctx context.Context, groupID, userID string) (string, bool) {
	member, err := s.store.GetMember(ctx, groupID, userID)
	if err != nil {
		return "", false
	}
	return member.DisplayAlias, true
}
