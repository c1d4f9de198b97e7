package leaderboard

import (
	"strings"
	"unicode/utf8"
)

const (
	minGroupNameLen = 3
	maxGroupNameLen = 100
	minAliasLen     = 2
	maxAliasLen     = 50
)

// validateGroupName returns the trimmed name or a *ValidationError.
func validateGroupName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if n := utf8.RuneCountInString(trimmed); n < minGroupNameLen || n > maxGroupNameLen {
		return "", &ValidationError{
			Field:   "name",
			Message: "Group name must be between 3 and 100 characters",
		}
	}
	return trimmed, nil
}

// validateAlias returns the trimmed alias or a *ValidationError.
func validateAlias(alias string) (string, error) {
	trimmed := strings.TrimSpace(alias)
	if n := utf8.RuneCountInString(trimmed); n < minAliasLen || n > maxAliasLen {
		return "", &ValidationError{
			Field:   "display_alias",
			Message: "Username must be between 2 and 50 characters",
		}
	}
	return trimmed, nil
}

// defaultAlias derives the creator's alias: display name, else the local
// part of the email, else "User".
func defaultAlias(displayName, email string) string {
	if name := strings.TrimSpace(displayName); name != "" {
		return name
	}
	if local, _, _ := strings.Cut(email, "@"); local != "" {
		return local
	}
	return "User"
}
