package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// LoggingInterceptor returns a Connect interceptor that logs every RPC call.
// Caller mistakes (bad input, missing rows, conflicts) log at Warn; server
// faults log at Error.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure

			resp, err := next(ctx, req)

			attrs := []slog.Attr{
				slog.String("procedure", procedure),
				slog.String("user_id", GetUserID(ctx)),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()),
			}
			if err == nil {
				slog.LogAttrs(ctx, slog.LevelInfo, "RPC ok", attrs...)
				return resp, nil
			}

			level := slog.LevelError
			var connectErr *connect.Error
			if errors.As(err, &connectErr) {
				attrs = append(attrs,
					slog.String("code", connectErr.Code().String()),
					slog.String("error", connectErr.Message()),
				)
				if isClientCode(connectErr.Code()) {
					level = slog.LevelWarn
				}
			} else {
				attrs = append(attrs, slog.Any("error", err))
			}
			slog.LogAttrs(ctx, level, "RPC error", attrs...)
			return resp, err
		}
	}
}

func isClientCode(code connect.Code) bool {
	switch code {
	case connect.CodeInvalidArgument, connect.CodeNotFound, connect.CodeAlreadyExists,
		connect.CodePermissionDenied, connect.CodeUnauthenticated,
		connect.CodeResourceExhausted, connect.CodeFailedPrecondition:
		return true
	}
	return false
}
