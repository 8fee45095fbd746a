package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/metrics"
	"github.com/gokatarajesh/trivia-api/internal/question"
	"github.com/gokatarajesh/trivia-api/internal/ratelimit"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// Pinger reports whether the question store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependencies are the collaborators the HTTP layer needs. Redis and
// Limiter may be nil when no Redis address is configured.
type Dependencies struct {
	Questions *question.HTTPHandler
	Store     Pinger
	Redis     *redis.Client
	Limiter   *ratelimit.Limiter
	Metrics   *metrics.Registry
}

// NewHTTPServer wires the trivia routes, ops endpoints and middleware.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, deps Dependencies) *http.Server {
	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: NewHandler(cfg, logger, deps),
	}
}

// NewHandler builds the routed, middleware-wrapped handler.
func NewHandler(cfg *config.App, logger zerolog.Logger, deps Dependencies) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{"status": "ok"})
	})

	if deps.Metrics != nil {
		mux.Handle("/metrics", deps.Metrics.Handler())
	}

	mux.HandleFunc("/v1/ping", func(w http.ResponseWriter, r *http.Request) {
		if err := pingDependencies(r.Context(), deps.Store, deps.Redis); err != nil {
			logging.FromContextOr(r.Context(), logger).Error().Err(err).Msg("dependency ping failed")
			httperrors.RespondUpstreamError(w)
			return
		}
		writeJSON(w, map[string]bool{"pong": true})
	})

	deps.Questions.Register(mux)
	mux.HandleFunc("/", deps.Questions.HandleNotFound)

	var h http.Handler = mux
	if deps.Metrics != nil {
		h = withMetrics(mux, deps.Metrics, h)
	}
	if deps.Limiter != nil {
		h = withRateLimit(h, deps.Limiter, deps.Metrics, logger)
	}
	h = withCORS(h, cfg.CORS)
	h = withAccessLog(h)
	h = withRecover(h)
	h = withRequestID(h, logger)
	return h
}

func pingDependencies(ctx context.Context, store Pinger, rdb *redis.Client) error {
	if err := store.Ping(ctx); err != nil {
		return err
	}
	if rdb != nil {
		if err := rdb.Ping(ctx).Err(); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}
