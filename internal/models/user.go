package models

import "time"

// SubscriptionTier is the billing tier written by the billing boundary.
type SubscriptionTier string

const (
	// TierBoyfriend is the free tier.
	TierBoyfriend SubscriptionTier = "boyfriend"
	// TierPlayer is the paid tier.
	TierPlayer SubscriptionTier = "player"

	// Legacy tiers still present on older accounts.
	TierFree     SubscriptionTier = "free"
	TierPremium  SubscriptionTier = "premium"
	TierLifetime SubscriptionTier = "lifetime"
)

// Valid reports whether t is a known tier.
func (t SubscriptionTier) Valid() bool {
	switch t {
	case TierBoyfriend, TierPlayer, TierFree, TierPremium, TierLifetime:
		return true
	}
	return false
}

// SubscriptionStatus mirrors the billing provider's subscription status.
// The zero value means the user never subscribed.
type SubscriptionStatus string

const (
	StatusNone     SubscriptionStatus = ""
	StatusActive   SubscriptionStatus = "active"
	StatusCanceled SubscriptionStatus = "canceled"
	StatusPastDue  SubscriptionStatus = "past_due"
	StatusTrialing SubscriptionStatus = "trialing"
	StatusUnpaid   SubscriptionStatus = "unpaid"
)

// User represents a registered user account.
//
// The core only reads the subscription fields; they are written by the
// billing boundary through Store.UpdateSubscription.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Email comes from the identity provider. It may be empty and is not unique:
	// the provider owns identity and may reassign an address.
	Email string

	// DisplayName is optional; empty when the user never set one.
	DisplayName string

	// SubscriptionTier defaults to TierBoyfriend for new accounts.
	SubscriptionTier SubscriptionTier

	// SubscriptionStatus is empty until the first checkout.
	SubscriptionStatus SubscriptionStatus

	// StripeCustomerID and StripeSubscriptionID are billing provider references.
	StripeCustomerID     string
	StripeSubscriptionID string

	// HasSeenPaywall is flipped by the settings screens.
	HasSeenPaywall bool

	CreatedAt int64
	UpdatedAt int64
}

// NewUser creates a free-tier user with the given email and display name.
func NewUser(id, email, displayName string) *User {
	now := time.Now().Unix()
	return &User{
		ID:               id,
		Email:            email,
		DisplayName:      displayName,
		SubscriptionTier: TierBoyfriend,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// SubscriptionUpdate is what the billing boundary applies to a user.
// Empty string fields are left unchanged.
type SubscriptionUpdate struct {
	Tier                 SubscriptionTier
	Status               SubscriptionStatus
	StripeCustomerID     string
	StripeSubscriptionID string
}
