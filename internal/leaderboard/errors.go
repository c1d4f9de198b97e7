package leaderboard

import "errors"

// Error kinds. Every error returned by Service matches exactly one of these
// with errors.Is, or is an unclassified storage failure.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrForbidden  = errors.New("forbidden")
)

var (
	ErrGroupNotFound = &Error{kind: ErrNotFound, msg: "Group not found"}
	ErrInvalidInvite = &Error{kind: ErrNotFound, msg: "Invalid or expired invite link"}
	ErrNotMember     = &Error{kind: ErrNotFound, msg: "You are not a member of this group"}
	ErrAlreadyMember = &Error{kind: ErrConflict, msg: "You are already a member of this group"}
	ErrNotOwner      = &Error{kind: ErrForbidden, msg: "Only the group creator can do that"}
)

// Error is a user-facing failure with a fixed message.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }
func (e *Error) Unwrap() error { return e.kind }

// ValidationError reports an input rejected before any storage access.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
func (e *ValidationError) Unwrap() error { return ErrValidation }
