package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"supplierfront/internal/platform/metrics"
	"supplierfront/internal/platform/middleware"
	"supplierfront/pkg/testutil"
)

type pingHandler struct{}

func (pingHandler) Register(r chi.Router) {
	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("pong"))
	})
	r.Get("/panic", func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
}

type RouterSuite struct {
	suite.Suite
	checkErr error
	router   http.Handler
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	s.checkErr = nil
	site := testutil.NewSite(s.T())
	reg := prometheus.NewRegistry()
	s.router = NewRouter(Config{
		Logger:          site.Logger,
		Metrics:         metrics.New(reg),
		Gatherer:        reg,
		Sessions:        site.Sessions.Middleware,
		Render:          site.Renderer,
		RequestIDHeader: "X-Amz-Cf-Id",
		Checks: map[string]HealthCheck{
			"redis": func(context.Context) error { return s.checkErr },
		},
	}, pingHandler{})
}

func (s *RouterSuite) do(method, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, httptest.NewRequest(method, path, nil))
	return rr
}

func (s *RouterSuite) TestHandlersAreMounted() {
	rr := s.do(http.MethodGet, "/ping")
	s.Equal(http.StatusOK, rr.Code)
	s.Equal("pong", rr.Body.String())
	s.NotEmpty(rr.Header().Get(middleware.RequestIDHeader))
	s.Contains(rr.Header().Get("Cache-Control"), "no-cache")
}

func (s *RouterSuite) TestUnknownRoutesRenderTheErrorPage() {
	rr := s.do(http.MethodGet, "/nope")
	s.Equal(http.StatusNotFound, rr.Code)
	s.Contains(rr.Body.String(), "Not Found")

	rr = s.do(http.MethodPost, "/ping")
	s.Equal(http.StatusMethodNotAllowed, rr.Code)
}

func (s *RouterSuite) TestPanicsBecome500() {
	s.Equal(http.StatusInternalServerError, s.do(http.MethodGet, "/panic").Code)
}

func (s *RouterSuite) TestStatus() {
	s.Run("healthy", func() {
		rr := s.do(http.MethodGet, "/_status")
		s.Equal(http.StatusOK, rr.Code)
		var body statusResponse
		require.NoError(s.T(), json.NewDecoder(rr.Body).Decode(&body))
		assert.Equal(s.T(), "ok", body.Status)
		assert.Empty(s.T(), body.Errors)
	})

	s.Run("failing check", func() {
		s.checkErr = errors.New("connection refused")
		rr := s.do(http.MethodGet, "/_status")
		s.Equal(http.StatusServiceUnavailable, rr.Code)
		var body statusResponse
		require.NoError(s.T(), json.NewDecoder(rr.Body).Decode(&body))
		assert.Equal(s.T(), "error", body.Status)
		assert.Equal(s.T(), map[string]string{"redis": "connection refused"}, body.Errors)
	})
}

func (s *RouterSuite) TestMetricsEndpoint() {
	s.do(http.MethodGet, "/ping")
	rr := s.do(http.MethodGet, "/_metrics")
	s.Equal(http.StatusOK, rr.Code)
	s.Contains(rr.Body.String(), "supplier_frontend_request_duration_seconds")
}
