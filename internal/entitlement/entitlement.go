// Package entitlement decides which features a subscription tier unlocks.
package entitlement

import "github.com/mmynk/cpnboard/internal/models"

// Feature is a premium surface gated by tier.
type Feature string

const (
	DataVault    Feature = "data_vault"
	Leaderboards Feature = "leaderboards"
	Analytics    Feature = "analytics"
	Share        Feature = "share"
)

// Features lists every gated feature.
var Features = []Feature{DataVault, Leaderboards, Analytics, Share}

// freeTierActiveEntities is the active entity allowance of the free tier.
const freeTierActiveEntities = 1

// IsFreeTier reports whether tier is the free tier. The legacy "free" tier
// and an unset tier count as free.
func IsFreeTier(tier models.SubscriptionTier) bool {
	switch tier {
	case models.TierBoyfriend, models.TierFree, "":
		return true
	}
	return false
}

// IsLocked reports whether tier is locked out of feature.
func IsLocked(tier models.SubscriptionTier, feature Feature) bool {
	return IsFreeTier(tier)
}

// ActiveEntityLimit returns how many active entities tier may have.
// Zero means unlimited.
func ActiveEntityLimit(tier models.SubscriptionTier) int {
	if IsFreeTier(tier) {
		return freeTierActiveEntities
	}
	return 0
}

// TierForStatus maps a billing subscription status to the tier it grants.
// ok is false for statuses that leave the tier unchanged.
func TierForStatus(status models.SubscriptionStatus) (tier models.SubscriptionTier, ok bool) {
	switch status {
	case models.StatusActive, models.StatusTrialing:
		return models.TierPlayer, true
	case models.StatusCanceled, models.StatusUnpaid, models.StatusPastDue:
		return models.TierBoyfriend, true
	}
	return "", false
}

// Entitlements is the per-feature lock state of a user.
type Entitlements struct {
	Tier   models.SubscriptionTier
	Status models.SubscriptionStatus
	Locked map[Feature]bool
}

// For computes the lock state of every feature for user.
func For(user *models.User) Entitlements {
	e := Entitlements{
		Tier:   user.SubscriptionTier,
		Status: user.SubscriptionStatus,
		Locked: make(map[Feature]bool, len(Features)),
	}
	for _, f := range Features {
		e.Locked[f] = IsLocked(user.SubscriptionTier, f)
	}
	return e
}
