package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/mmynk/cpnboard/internal/models"
	"github.com/mmynk/cpnboard/internal/storage"
)

const userColumns = `id, email, display_name, subscription_tier, subscription_status,
	stripe_customer_id, stripe_subscription_id, has_seen_paywall, created_at, updated_at`

// CreateUser inserts a new user.
func (s *PostgresStore) CreateUser(ctx context.Context, user *models.User) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		user.ID, user.Email, user.DisplayName,
		string(user.SubscriptionTier), string(user.SubscriptionStatus),
		user.StripeCustomerID, user.StripeSubscriptionID, user.HasSeenPaywall,
		user.CreatedAt, user.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("failed to create user: %w", storage.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByID retrieves a user by ID.
func (s *PostgresStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	user := &models.User{}
	var tier, status string
	err := s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id).Scan(
		&user.ID, &user.Email, &user.DisplayName, &tier, &status,
		&user.StripeCustomerID, &user.StripeSubscriptionID, &user.HasSeenPaywall,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if isNoRows(err) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	user.SubscriptionTier = models.SubscriptionTier(tier)
	user.SubscriptionStatus = models.SubscriptionStatus(status)
	return user, nil
}

// UpdateProfile refreshes the identity-provided fields of a user.
func (s *PostgresStore) UpdateProfile(ctx context.Context, id, email, displayName string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET email = $1, display_name = $2, updated_at = $3 WHERE id = $4`,
		email, displayName, time.Now().Unix(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return requireAffected(tag)
}

// UpdateSubscription applies a billing update, keeping fields left empty.
func (s *PostgresStore) UpdateSubscription(ctx context.Context, id string, update models.SubscriptionUpdate) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE users SET
			subscription_tier = COALESCE(NULLIF($1::text, ''), subscription_tier),
			subscription_status = COALESCE(NULLIF($2::text, ''), subscription_status),
			stripe_customer_id = COALESCE(NULLIF($3::text, ''), stripe_customer_id),
			stripe_subscription_id = COALESCE(NULLIF($4::text, ''), stripe_subscription_id),
			updated_at = $5
		WHERE id = $6`,
		string(update.Tier), string(update.Status),
		update.StripeCustomerID, update.StripeSubscriptionID,
		time.Now().Unix(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update subscription: %w", err)
	}
	return requireAffected(tag)
}
