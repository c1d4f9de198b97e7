package middleware

import (
	"context"

	"connectrpc.com/connect"

	"github.com/mmynk/cpnboard/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// UserIDKey is the context key for storing the authenticated user ID.
	UserIDKey contextKey = "user_id"
	// EmailKey is the context key for storing the authenticated user's email.
	EmailKey contextKey = "email"
	// DisplayNameKey is the context key for the display name from the token.
	DisplayNameKey contextKey = "display_name"
)

// GetUserID extracts the user ID from the context.
// Returns empty string if not found.
func GetUserID(ctx context.Context) string {
	userID, _ := ctx.Value(UserIDKey).(string)
	return userID
}

// GetEmail extracts the user email from the context.
// Returns empty string if not found.
func GetEmail(ctx context.Context) string {
	email, _ := ctx.Value(EmailKey).(string)
	return email
}

// GetDisplayName extracts the display name from the context.
func GetDisplayName(ctx context.Context) string {
	name, _ := ctx.Value(DisplayNameKey).(string)
	return name
}

// WithClaims returns ctx carrying the identity in claims.
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, claims.UserID)
	ctx = context.WithValue(ctx, EmailKey, claims.Email)
	ctx = context.WithValue(ctx, DisplayNameKey, claims.DisplayName)
	return ctx
}

// RequireAuth returns a middleware that validates JWT tokens and requires authentication.
// It extracts the token from the Authorization header, validates it, and adds
// the caller's identity to the request context.
//
// Procedures listed in optional also accept anonymous calls; a valid token
// still populates the context for them.
func RequireAuth(jwtManager *auth.JWTManager, optional ...string) connect.UnaryInterceptorFunc {
	anonymous := make(map[string]bool, len(optional))
	for _, p := range optional {
		anonymous[p] = true
	}

	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			claims, err := authenticate(jwtManager, req.Header().Get("Authorization"))
			if err != nil {
				if anonymous[req.Spec().Procedure] {
					return next(ctx, req)
				}
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}
			return next(WithClaims(ctx, claims), req)
		}
	}
}

func authenticate(jwtManager *auth.JWTManager, header string) (*auth.Claims, error) {
	token, err := auth.BearerToken(header)
	if err != nil {
		return nil, err
	}
	return jwtManager.Validate(token)
}
