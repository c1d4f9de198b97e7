package main

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/cpnboard/internal/auth"
	"github.com/mmynk/cpnboard/internal/config"
	"github.com/mmynk/cpnboard/internal/leaderboard"
	"github.com/mmynk/cpnboard/internal/middleware"
	"github.com/mmynk/cpnboard/internal/rpc"
	"github.com/mmynk/cpnboard/internal/service"
	"github.com/mmynk/cpnboard/internal/storage"
	"github.com/mmynk/cpnboard/internal/tracker"
)

// tokenDuration only matters for tokens minted locally; the server itself
// validates tokens issued by the identity provider.
const tokenDuration = 24 * time.Hour

// newHandler wires the services, interceptors and plain HTTP routes.
func newHandler(cfg *config.Config, store storage.Store, reg *prometheus.Registry) http.Handler {
	boardMetrics := leaderboard.NewMetrics(reg)
	rpcMetrics := middleware.NewRPCMetrics(reg)

	stats := leaderboard.NewAggregator(store, cfg.Stats.ServerSide, boardMetrics)
	board := leaderboard.NewService(store, stats, leaderboard.Options{
		FanoutLimit:    cfg.Ranking.FanoutLimit,
		RankingTimeout: cfg.RankingTimeout(),
		Metrics:        boardMetrics,
	})

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, tokenDuration)
	limiter := middleware.NewRateLimiter(cfg.Invite.RatePerMinute)

	interceptors := connect.WithInterceptors(
		middleware.RequireAuth(jwtManager,
			rpc.LeaderboardServicePreviewInviteProcedure,
			rpc.AccountServiceApplySubscriptionProcedure,
		),
		middleware.LoggingInterceptor(),
		rpcMetrics.Interceptor(),
		limiter.Interceptor(
			rpc.LeaderboardServiceJoinGroupProcedure,
			rpc.LeaderboardServicePreviewInviteProcedure,
		),
	)

	mux := http.NewServeMux()

	// Register Connect services
	mux.Handle(rpc.NewLeaderboardServiceHandler(
		service.NewLeaderboardService(store, board, stats), interceptors))
	mux.Handle(rpc.NewTrackerServiceHandler(
		service.NewTrackerService(store, tracker.NewService(store)), interceptors))
	mux.Handle(rpc.NewAccountServiceHandler(
		service.NewAccountService(store, cfg.Billing.WebhookSecret), interceptors))

	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	// Shared invite links point here and bounce to the frontend join page.
	mux.HandleFunc("GET /join/{token}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, cfg.JoinURL(url.PathEscape(r.PathValue("token"))), http.StatusFound)
	})

	return loggingMiddleware(corsMiddleware(cfg.Server.ClientURL, mux))
}

// statusRecorder captures the response code for request logs.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"remote_addr", r.RemoteAddr,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for the configured frontend origin.
func corsMiddleware(clientURL string, next http.Handler) http.Handler {
	origin := strings.TrimRight(clientURL, "/")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Add("Vary", "Origin")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
