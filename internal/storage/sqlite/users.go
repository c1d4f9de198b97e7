package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mmynk/cpnboard/internal/models"
	"github.com/mmynk/cpnboard/internal/storage"
)

const userColumns = `id, email, display_name, subscription_tier, subscription_status,
	stripe_customer_id, stripe_subscription_id, has_seen_paywall, created_at, updated_at`

// CreateUser inserts a new user into the database.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.DisplayName,
		string(user.SubscriptionTier),
		string(user.SubscriptionStatus),
		user.StripeCustomerID,
		user.StripeSubscriptionID,
		boolToInt(user.HasSeenPaywall),
		user.CreatedAt,
		user.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("failed to create user: %w", storage.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetUserByID retrieves a user by their ID.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`

	user := &models.User{}
	var tier, status string
	var paywall int
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.DisplayName,
		&tier,
		&status,
		&user.StripeCustomerID,
		&user.StripeSubscriptionID,
		&paywall,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	user.SubscriptionTier = models.SubscriptionTier(tier)
	user.SubscriptionStatus = models.SubscriptionStatus(status)
	user.HasSeenPaywall = paywall != 0
	return user, nil
}

// UpdateProfile refreshes the identity-provided fields of a user.
func (s *SQLiteStore) UpdateProfile(ctx context.Context, id, email, displayName string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET email = ?, display_name = ?, updated_at = ? WHERE id = ?`,
		email, displayName, time.Now().Unix(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return requireAffected(res)
}

// UpdateSubscription applies a billing update, keeping fields left empty.
func (s *SQLiteStore) UpdateSubscription(ctx context.Context, id string, update models.SubscriptionUpdate) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE users SET
			subscription_tier = COALESCE(NULLIF(?, ''), subscription_tier),
			subscription_status = COALESCE(NULLIF(?, ''), subscription_status),
			stripe_customer_id = COALESCE(NULLIF(?, ''), stripe_customer_id),
			stripe_subscription_id = COALESCE(NULLIF(?, ''), stripe_subscription_id),
			updated_at = ?
		WHERE id = ?`,
		string(update.Tier),
		string(update.Status),
		update.StripeCustomerID,
		update.StripeSubscriptionID,
		time.Now().Unix(),
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to update subscription: %w", err)
	}
	return requireAffected(res)
}
