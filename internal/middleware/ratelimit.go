package middleware

import (
	"context"
	"errors"
	"net"
	"sync"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/time/rate"
)

var ErrRateLimited = errors.New("too many requests, slow down")

// idleTTL is how long a caller's limiter is kept without calls. It exceeds the
// one minute a limiter needs to refill, so eviction never grants extra calls.
const idleTTL = 10 * time.Minute

// RateLimiter throttles calls per caller: the authenticated user ID when
// present, else the peer address. Limiters idle for longer than idleTTL are evicted.
type RateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*callerLimiter
	lastSweep time.Time
	every     time.Duration
	burst     int
	now       func() time.Time
}

type callerLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter allows perMinute calls per caller with a burst of the same size.
// perMinute <= 0 disables limiting.
func NewRateLimiter(perMinute int) *RateLimiter {
	rl := &RateLimiter{
		limiters: make(map[string]*callerLimiter),
		now:      time.Now,
	}
	rl.lastSweep = rl.now()
	if perMinute > 0 {
		rl.every = time.Minute / time.Duration(perMinute)
		rl.burst = perMinute
	}
	return rl
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) >= idleTTL {
		rl.evictIdle(now)
	}

	if c, ok := rl.limiters[key]; ok {
		c.lastSeen = now
		return c.limiter
	}
	c := &callerLimiter{limiter: rate.NewLimiter(rate.Every(rl.every), rl.burst), lastSeen: now}
	rl.limiters[key] = c
	return c.limiter
}

// evictIdle drops limiters unused for idleTTL. Callers hold mu.
func (rl *RateLimiter) evictIdle(now time.Time) {
	for key, c := range rl.limiters {
		if now.Sub(c.lastSeen) >= idleTTL {
			delete(rl.limiters, key)
		}
	}
	rl.lastSweep = now
}

// size reports how many callers are tracked.
func (rl *RateLimiter) size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}

// Allow reports whether key may make another call now.
func (rl *RateLimiter) Allow(key string) bool {
	if rl.burst == 0 {
		return true
	}
	return rl.limiter(key).Allow()
}

// Interceptor rejects over-limit calls to the given procedures with
// CodeResourceExhausted. Other procedures pass through.
func (rl *RateLimiter) Interceptor(procedures ...string) connect.UnaryInterceptorFunc {
	limited := make(map[string]bool, len(procedures))
	for _, p := range procedures {
		limited[p] = true
	}

	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if !limited[req.Spec().Procedure] {
				return next(ctx, req)
			}
			key := GetUserID(ctx)
			if key == "" {
				key = peerHost(req.Peer().Addr)
			}
			if !rl.Allow(key) {
				return nil, connect.NewError(connect.CodeResourceExhausted, ErrRateLimited)
			}
			return next(ctx, req)
		}
	}
}

func peerHost(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
