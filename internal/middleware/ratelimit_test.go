package middleware

import (
	"fmt"
	"testing"
	"time"
)

func TestRateLimiter(t *testing.T) {
	t.Run("burst then reject", func(t *testing.T) {
		rl := NewRateLimiter(3)
		for i := 0; i < 3; i++ {
			if !rl.Allow("user-1") {
				t.Fatalf("call %d rejected within burst", i+1)
			}
		}
		if rl.Allow("user-1") {
			t.Error("Expected fourth call to be rejected")
		}
		if !rl.Allow("user-2") {
			t.Error("Limits should be per key")
		}
	})

	t.Run("disabled", func(t *testing.T) {
		rl := NewRateLimiter(0)
		for i := 0; i < 100; i++ {
			if !rl.Allow("user-1") {
				t.Fatal("Disabled limiter rejected a call")
			}
		}
	})
}

func TestPeerHost(t *testing.T) {
	tests := map[string]string{
		"127.0.0.1:5423": "127.0.0.1",
		"[::1]:80":       "::1",
		"unix-socket":    "unix-socket",
	}
	for addr, want := range tests {
		if got := peerHost(addr); got != want {
			t.Errorf("peerHost(%q) = %q, want %q", addr, got, want)
		}
	}
}

func TestRateLimiterEvictsIdleCallers(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1)
	rl.now = func() time.Time { return now }
	rl.lastSweep = now

	for i := 0; i < 50; i++ {
		rl.Allow(fmt.Sprintf("10.0.0.%d", i))
	}
	if got := rl.size(); got != 50 {
		t.Fatalf("Expected 50 tracked callers, got %d", got)
	}

	now = now.Add(idleTTL / 2)
	rl.Allow("10.0.0.1")

	now = now.Add(idleTTL/2 + time.Second)
	rl.Allow("10.0.1.1")

	// Only the caller seen within idleTTL and the new one remain.
	if got := rl.size(); got != 2 {
		t.Errorf("Expected 2 tracked callers after eviction, got %d", got)
	}
	if rl.Allow("10.0.0.1") {
		t.Error("Recently seen caller should keep its exhausted limiter")
	}
}
