package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/cpnboard/internal/auth"
	"github.com/mmynk/cpnboard/internal/models"
	"github.com/mmynk/cpnboard/internal/rpc"
)

// stubBoard echoes the caller identity. Only the two procedures under test are implemented.
type stubBoard struct {
	rpc.LeaderboardServiceHandler
}

func (stubBoard) CreateGroup(ctx context.Context, req *connect.Request[rpc.CreateGroupRequest]) (*connect.Response[rpc.CreateGroupResponse], error) {
	return connect.NewResponse(&rpc.CreateGroupResponse{
		Group: rpc.Group{Name: req.Msg.Name, CreatedBy: GetUserID(ctx)},
	}), nil
}

func (stubBoard) PreviewInvite(ctx context.Context, req *connect.Request[rpc.PreviewInviteRequest]) (*connect.Response[rpc.PreviewInviteResponse], error) {
	return connect.NewResponse(&rpc.PreviewInviteResponse{AlreadyMember: GetUserID(ctx) != ""}), nil
}

func newInterceptedClient(t *testing.T, jwtManager *auth.JWTManager, perMinute int) *rpc.LeaderboardServiceClient {
	t.Helper()

	limiter := NewRateLimiter(perMinute)
	path, handler := rpc.NewLeaderboardServiceHandler(stubBoard{}, connect.WithInterceptors(
		RequireAuth(jwtManager, rpc.LeaderboardServicePreviewInviteProcedure),
		LoggingInterceptor(),
		limiter.Interceptor(rpc.LeaderboardServicePreviewInviteProcedure),
	))

	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return rpc.NewLeaderboardServiceClient(http.DefaultClient, server.URL)
}

func withToken[T any](msg *T, token string) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+token)
	return req
}

func TestRequireAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	token, err := jwtManager.Generate(models.NewUser("user-1", "one@example.com", "One"))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	client := newInterceptedClient(t, jwtManager, 0)
	ctx := context.Background()

	t.Run("required without token", func(t *testing.T) {
		_, err := client.CreateGroup(ctx, connect.NewRequest(&rpc.CreateGroupRequest{Name: "Club"}))
		if connect.CodeOf(err) != connect.CodeUnauthenticated {
			t.Errorf("Expected Unauthenticated, got %v", err)
		}
	})

	t.Run("required with token", func(t *testing.T) {
		resp, err := client.CreateGroup(ctx, withToken(&rpc.CreateGroupRequest{Name: "Club"}, token))
		if err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
		if resp.Msg.Group.CreatedBy != "user-1" {
			t.Errorf("Expected identity in context, got %q", resp.Msg.Group.CreatedBy)
		}
	})

	t.Run("optional", func(t *testing.T) {
		anon, err := client.PreviewInvite(ctx, connect.NewRequest(&rpc.PreviewInviteRequest{Token: "x"}))
		if err != nil {
			t.Fatalf("Anonymous PreviewInvite failed: %v", err)
		}
		if anon.Msg.AlreadyMember {
			t.Error("Expected no identity for anonymous call")
		}

		authed, err := client.PreviewInvite(ctx, withToken(&rpc.PreviewInviteRequest{Token: "x"}, token))
		if err != nil {
			t.Fatalf("Authenticated PreviewInvite failed: %v", err)
		}
		if !authed.Msg.AlreadyMember {
			t.Error("Expected identity for authenticated call")
		}

		bad, err := client.PreviewInvite(ctx, withToken(&rpc.PreviewInviteRequest{Token: "x"}, "garbage"))
		if err != nil {
			t.Fatalf("PreviewInvite with bad token failed: %v", err)
		}
		if bad.Msg.AlreadyMember {
			t.Error("Expected bad token to be treated as anonymous")
		}
	})
}

func TestRateLimitInterceptor(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	token, _ := jwtManager.Generate(models.NewUser("user-1", "one@example.com", "One"))
	client := newInterceptedClient(t, jwtManager, 2)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := client.PreviewInvite(ctx, connect.NewRequest(&rpc.PreviewInviteRequest{})); err != nil {
			t.Fatalf("Call %d failed: %v", i, err)
		}
	}
	_, err := client.PreviewInvite(ctx, connect.NewRequest(&rpc.PreviewInviteRequest{}))
	if connect.CodeOf(err) != connect.CodeResourceExhausted {
		t.Errorf("Expected ResourceExhausted, got %v", err)
	}

	// Authenticated callers have their own bucket.
	if _, err := client.PreviewInvite(ctx, withToken(&rpc.PreviewInviteRequest{}, token)); err != nil {
		t.Errorf("Expected separate bucket for user, got %v", err)
	}

	// Procedures not listed are never limited.
	for i := 0; i < 5; i++ {
		if _, err := client.CreateGroup(ctx, withToken(&rpc.CreateGroupRequest{Name: "Club"}, token)); err != nil {
			t.Fatalf("CreateGroup %d failed: %v", i, err)
		}
	}
}
