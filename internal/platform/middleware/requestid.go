package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"supplierfront/pkg/requestcontext"
)

// RequestIDHeader is echoed on every response and forwarded to the data API.
const RequestIDHeader = "X-Request-ID"

// RequestID reuses the id a CDN or load balancer put in downstreamHeader (for
// example X-Amz-Cf-Id), then X-Request-ID, and otherwise mints a new one.
func RequestID(downstreamHeader string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := ""
			if downstreamHeader != "" {
				requestID = strings.TrimSpace(r.Header.Get(downstreamHeader))
			}
			if requestID == "" {
				requestID = strings.TrimSpace(r.Header.Get(RequestIDHeader))
			}
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, requestID)
			ctx := requestcontext.WithRequestID(r.Context(), requestID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
