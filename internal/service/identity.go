package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/cpnboard/internal/auth"
	"github.com/mmynk/cpnboard/internal/entitlement"
	"github.com/mmynk/cpnboard/internal/middleware"
	"github.com/mmynk/cpnboard/internal/models"
	"github.com/mmynk/cpnboard/internal/storage"
)

// profiles keeps the local user row in step with the identity in the token.
type profiles struct {
	store storage.UserStore
}

// caller returns the authenticated user, creating the profile row on first
// sight and refreshing email and display name when the token changed them.
func (p profiles) caller(ctx context.Context) (*models.User, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	email := middleware.GetEmail(ctx)
	displayName := middleware.GetDisplayName(ctx)

	user, err := p.ensure(ctx, userID, email, displayName)
	if err != nil {
		slog.Error("Failed to load caller profile", "user_id", userID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, errInternal)
	}

	if user.Email != email || user.DisplayName != displayName {
		if err := p.store.UpdateProfile(ctx, userID, email, displayName); err != nil {
			// A stale profile only affects default aliases.
			slog.Warn("Failed to refresh profile", "user_id", userID, "error", err)
		} else {
			user.Email = email
			user.DisplayName = displayName
		}
	}
	return user, nil
}

func (p profiles) ensure(ctx context.Context, userID, email, displayName string) (*models.User, error) {
	user, err := p.store.GetUserByID(ctx, userID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	user = models.NewUser(userID, email, displayName)
	err = p.store.CreateUser(ctx, user)
	if errors.Is(err, storage.ErrConflict) {
		// Lost a race with a concurrent first request.
		existing, getErr := p.store.GetUserByID(ctx, userID)
		if getErr != nil {
			return nil, fmt.Errorf("profile insert conflicted but reload failed: %w", getErr)
		}
		return existing, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	slog.Info("Profile created", "user_id", userID)
	return user, nil
}

// requireLeaderboards rejects callers whose tier has leaderboards locked.
func requireLeaderboards(user *models.User) error {
	if entitlement.IsLocked(user.SubscriptionTier, entitlement.Leaderboards) {
		return connect.NewError(connect.CodePermissionDenied, errLeaderboardsLocked)
	}
	return nil
}
