package service

import (
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/cpnboard/internal/leaderboard"
	"github.com/mmynk/cpnboard/internal/tracker"
)

var (
	errInternal           = errors.New("internal error")
	errLeaderboardsLocked = errors.New("Leaderboards are available on the Player plan")
	errBillingDisabled    = errors.New("billing updates are not enabled")
	errBadBillingSecret   = errors.New("invalid billing secret")
)

// toConnectError maps domain errors onto Connect codes. Unclassified errors
// are logged and hidden behind a generic internal error.
func toConnectError(op string, err error) error {
	var trackerValidation *tracker.ValidationError
	switch {
	case errors.Is(err, leaderboard.ErrValidation), errors.As(err, &trackerValidation):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, leaderboard.ErrNotFound), errors.Is(err, tracker.ErrEntityNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, leaderboard.ErrConflict):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, leaderboard.ErrForbidden):
		return connect.NewError(connect.CodePermissionDenied, err)
	case errors.Is(err, tracker.ErrActiveLimit):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	}
	slog.Error(op+" failed", "error", err)
	return connect.NewError(connect.CodeInternal, errInternal)
}
