package leaderboard

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

const inviteTokenBytes = 32

// newInviteToken returns 32 random bytes as unpadded base64url.
func newInviteToken() (string, error) {
	b := make([]byte, inviteTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate invite token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
