package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/cpnboard/internal/entitlement"
	"github.com/mmynk/cpnboard/internal/models"
	"github.com/mmynk/cpnboard/internal/rpc"
	"github.com/mmynk/cpnboard/internal/storage"
)

// AccountService implements the Connect AccountService: entitlement reads for
// the app and subscription writes for the billing webhook worker.
type AccountService struct {
	store         storage.UserStore
	users         profiles
	billingSecret string
}

var _ rpc.AccountServiceHandler = (*AccountService)(nil)

// NewAccountService creates an AccountService. An empty billingSecret
// disables ApplySubscription.
func NewAccountService(store storage.UserStore, billingSecret string) *AccountService {
	return &AccountService{
		store:         store,
		users:         profiles{store: store},
		billingSecret: billingSecret,
	}
}

// GetEntitlements reports the caller's tier and which features it locks.
func (s *AccountService) GetEntitlements(ctx context.Context, req *connect.Request[rpc.GetEntitlementsRequest]) (*connect.Response[rpc.GetEntitlementsResponse], error) {
	user, err := s.users.caller(ctx)
	if err != nil {
		return nil, err
	}

	ent := entitlement.For(user)
	resp := &rpc.GetEntitlementsResponse{
		Tier:              string(ent.Tier),
		Status:            string(ent.Status),
		Locked:            make(map[string]bool, len(ent.Locked)),
		ActiveEntityLimit: entitlement.ActiveEntityLimit(user.SubscriptionTier),
	}
	for f, locked := range ent.Locked {
		resp.Locked[string(f)] = locked
	}
	return connect.NewResponse(resp), nil
}

// ApplySubscription records a billing provider update. The caller
// authenticates with the shared billing secret instead of a user token.
func (s *AccountService) ApplySubscription(ctx context.Context, req *connect.Request[rpc.ApplySubscriptionRequest]) (*connect.Response[rpc.ApplySubscriptionResponse], error) {
	slog.Info("ApplySubscription request received",
		"user_id", req.Msg.UserID,
		"tier", req.Msg.Tier,
		"status", req.Msg.Status,
	)

	if s.billingSecret == "" {
		return nil, connect.NewError(connect.CodeUnimplemented, errBillingDisabled)
	}
	secret := req.Header().Get(rpc.BillingSecretHeader)
	if subtle.ConstantTimeCompare([]byte(secret), []byte(s.billingSecret)) != 1 {
		return nil, connect.NewError(connect.CodePermissionDenied, errBadBillingSecret)
	}

	update, err := subscriptionUpdate(req.Msg)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	err = s.store.UpdateSubscription(ctx, req.Msg.UserID, update)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("user %s not found", req.Msg.UserID))
	}
	if err != nil {
		return nil, toConnectError("ApplySubscription", err)
	}

	user, err := s.store.GetUserByID(ctx, req.Msg.UserID)
	if err != nil {
		return nil, toConnectError("ApplySubscription", err)
	}

	slog.Info("Subscription applied",
		"user_id", user.ID,
		"tier", user.SubscriptionTier,
		"status", user.SubscriptionStatus,
	)

	return connect.NewResponse(&rpc.ApplySubscriptionResponse{
		Tier:   string(user.SubscriptionTier),
		Status: string(user.SubscriptionStatus),
	}), nil
}

// subscriptionUpdate derives the tier from the status when none is given.
func subscriptionUpdate(msg *rpc.ApplySubscriptionRequest) (models.SubscriptionUpdate, error) {
	if msg.UserID == "" {
		return models.SubscriptionUpdate{}, errors.New("user_id is required")
	}

	update := models.SubscriptionUpdate{
		Tier:                 models.SubscriptionTier(msg.Tier),
		Status:               models.SubscriptionStatus(msg.Status),
		StripeCustomerID:     msg.StripeCustomerID,
		StripeSubscriptionID: msg.StripeSubscriptionID,
	}
	if update.Tier != "" && !update.Tier.Valid() {
		return models.SubscriptionUpdate{}, fmt.Errorf("unknown tier %q", msg.Tier)
	}
	if update.Tier == "" {
		if tier, ok := entitlement.TierForStatus(update.Status); ok {
			update.Tier = tier
		}
	}
	return update, nil
}
