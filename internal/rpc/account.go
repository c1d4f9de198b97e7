package rpc

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// AccountServiceHandler is implemented by the server side of AccountService.
// AccountService exposes subscription entitlements and the billing boundary.
type AccountServiceHandler interface {
	GetEntitlements(context.Context, *connect.Request[GetEntitlementsRequest]) (*connect.Response[GetEntitlementsResponse], error)
	ApplySubscription(context.Context, *connect.Request[ApplySubscriptionRequest]) (*connect.Response[ApplySubscriptionResponse], error)
}

// NewAccountServiceHandler builds an HTTP handler for svc and returns the path to mount it on.
// opts apply to every procedure.
func NewAccountServiceHandler(svc AccountServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(AccountServiceGetEntitlementsProcedure, connect.NewUnaryHandler(AccountServiceGetEntitlementsProcedure, svc.GetEntitlements, opts...))
	mux.Handle(AccountServiceApplySubscriptionProcedure, connect.NewUnaryHandler(AccountServiceApplySubscriptionProcedure, svc.ApplySubscription, opts...))
	return "/" + AccountServiceName + "/", mux
}

// AccountServiceClient is a typed client for AccountService.
type AccountServiceClient struct {
	getEntitlements   *connect.Client[GetEntitlementsRequest, GetEntitlementsResponse]
	applySubscription *connect.Client[ApplySubscriptionRequest, ApplySubscriptionResponse]
}

// NewAccountServiceClient creates a client for the service hosted at baseURL.
func NewAccountServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AccountServiceClient {
	opts = clientOptions(opts)
	return &AccountServiceClient{
		getEntitlements:   connect.NewClient[GetEntitlementsRequest, GetEntitlementsResponse](httpClient, baseURL+AccountServiceGetEntitlementsProcedure, opts...),
		applySubscription: connect.NewClient[ApplySubscriptionRequest, ApplySubscriptionResponse](httpClient, baseURL+AccountServiceApplySubscriptionProcedure, opts...),
	}
}

func (c *AccountServiceClient) GetEntitlements(ctx context.Context, req *connect.Request[GetEntitlementsRequest]) (*connect.Response[GetEntitlementsResponse], error) {
	return c.getEntitlements.CallUnary(ctx, req)
}

func (c *AccountServiceClient) ApplySubscription(ctx context.Context, req *connect.Request[ApplySubscriptionRequest]) (*connect.Response[ApplySubscriptionResponse], error) {
	return c.applySubscription.CallUnary(ctx, req)
}
