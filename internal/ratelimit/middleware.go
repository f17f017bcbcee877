package ratelimit

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"supplierfront/internal/platform/metrics"
	"supplierfront/pkg/requestcontext"
)

// KeyFunc picks the bucket a request draws from.
type KeyFunc func(r *http.Request) string

// ByClientIP keys anonymous forms such as login.
func ByClientIP(r *http.Request) string {
	return "ip:" + requestcontext.ClientIP(r.Context())
}

// BySupplier keys logged-in forms by supplier, falling back to client IP.
func BySupplier(r *http.Request) string {
	if user := requestcontext.User(r.Context()); user != nil && user.SupplierID != 0 {
		return "supplier:" + strconv.FormatInt(user.SupplierID, 10)
	}
	return ByClientIP(r)
}

// Aborter renders the rejection page.
type Aborter interface {
	Abort(w http.ResponseWriter, r *http.Request, status int, message string)
}

type Middleware struct {
	name    string
	limiter *Limiter
	key     KeyFunc
	abort   Aborter
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewMiddleware(name string, limiter *Limiter, key KeyFunc, abort Aborter, logger *slog.Logger, m *metrics.Metrics) *Middleware {
	return &Middleware{name: name, limiter: limiter, key: key, abort: abort, logger: logger, metrics: m}
}

// Handler only throttles POSTs; pages are always viewable.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			next.ServeHTTP(w, r)
			return
		}
		allowed, retryAfter := m.limiter.Allow(m.key(r))
		if allowed {
			next.ServeHTTP(w, r)
			return
		}

		m.metrics.ObserveRateLimited(m.name)
		m.logger.WarnContext(r.Context(), "rate limit exceeded",
			"limiter", m.name,
			"request_id", requestcontext.RequestID(r.Context()),
			"path", r.URL.Path,
		)
		w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
		m.abort.Abort(w, r, http.StatusTooManyRequests, "You have made too many requests. Please wait a minute and try again.")
	})
}
