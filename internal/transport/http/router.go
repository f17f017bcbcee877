// Package httptransport assembles the middleware chain and mounts every page
// handler on one chi router.
package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"supplierfront/internal/platform/metrics"
	"supplierfront/internal/platform/middleware"
	"supplierfront/pkg/requestcontext"
)

// Registrar is implemented by every page handler.
type Registrar interface {
	Register(r chi.Router)
}

// Aborter renders the error page for unmatched routes.
type Aborter interface {
	Abort(w http.ResponseWriter, r *http.Request, status int, message string)
}

// HealthCheck reports whether a backing service is reachable.
type HealthCheck func(ctx context.Context) error

// Config carries what the router needs beyond the handlers themselves.
type Config struct {
	Logger          *slog.Logger
	Metrics         *metrics.Metrics
	Gatherer        prometheus.Gatherer
	Sessions        func(http.Handler) http.Handler
	Render          Aborter
	RequestIDHeader string
	// TrustedProxyHops is how many reverse proxies append to X-Forwarded-For.
	TrustedProxyHops int
	// Checks run on /_status, keyed by the name reported on failure.
	Checks map[string]HealthCheck
}

// NewRouter wires the middleware chain, the status and metrics endpoints and
// the page handlers.
func NewRouter(cfg Config, handlers ...Registrar) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID(cfg.RequestIDHeader))
	r.Use(middleware.ClientMetadata(cfg.TrustedProxyHops))
	r.Use(middleware.RequestTime)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.NoCache)
	r.Use(middleware.Latency(cfg.Metrics))

	r.Get("/_status", statusHandler(cfg.Checks, cfg.Logger))
	if cfg.Gatherer != nil {
		r.Method(http.MethodGet, "/_metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(cfg.Sessions)
		for _, h := range handlers {
			h.Register(r)
		}
		r.NotFound(func(w http.ResponseWriter, req *http.Request) {
			cfg.Render.Abort(w, req, http.StatusNotFound, "")
		})
		r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
			cfg.Render.Abort(w, req, http.StatusMethodNotAllowed, "")
		})
	})
	return r
}

type statusResponse struct {
	Status string            `json:"status"`
	Errors map[string]string `json:"errors,omitempty"`
}

// statusHandler answers load balancer checks. Any failing check turns the
// response into a 503 naming the failures.
func statusHandler(checks map[string]HealthCheck, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := statusResponse{Status: "ok"}
		for name, check := range checks {
			if err := check(ctx); err != nil {
				if resp.Errors == nil {
					resp.Errors = map[string]string{}
				}
				resp.Errors[name] = err.Error()
			}
		}

		status := http.StatusOK
		if len(resp.Errors) > 0 {
			status = http.StatusServiceUnavailable
			resp.Status = "error"
			logger.ErrorContext(r.Context(), "status check failed",
				"request_id", requestcontext.RequestID(r.Context()),
				"errors", resp.Errors,
			)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(resp)
	}
}
