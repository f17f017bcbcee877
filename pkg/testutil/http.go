// Package testutil provides a test site for the page handlers: a chi router
// with the session middleware, the embedded templates and a cookie that
// follows the browser's session across requests.
package testutil

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supplierfront/assets"
	"supplierfront/internal/platform/config"
	"supplierfront/internal/session"
	"supplierfront/internal/web"
	"supplierfront/pkg/domain"
)

const SecretKey = "not_very_secret"

// Site is one browser talking to a router of page handlers.
type Site struct {
	Router   chi.Router
	Sessions *session.Manager
	Renderer *web.Renderer
	Logger   *slog.Logger

	cookie *http.Cookie
}

// Registrar is implemented by every page handler.
type Registrar interface {
	Register(r chi.Router)
}

// NewSite builds the renderer and session manager. Call Mount once the
// handlers under test are built from s.Renderer and s.Sessions.
func NewSite(t *testing.T) *Site {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sessions := session.NewManager(session.NewMemoryStore(), config.Session{
		CookieName: "dm_session",
		CookiePath: "/",
		Lifetime:   4 * time.Hour,
	}, SecretKey, logger)
	renderer, err := web.NewRenderer(assets.Templates(), map[string]any{
		"header_class": "with-proposition",
		"asset_path":   "/suppliers/static/",
	}, sessions, logger)
	require.NoError(t, err)

	router := chi.NewRouter()
	router.Use(sessions.Middleware)
	return &Site{Router: router, Sessions: sessions, Renderer: renderer, Logger: logger}
}

func (s *Site) Mount(handlers ...Registrar) {
	for _, h := range handlers {
		h.Register(s.Router)
	}
}

// LoginAs starts a session for user; later requests carry its cookie.
func (s *Site) LoginAs(t *testing.T, user *domain.CurrentUser) {
	t.Helper()
	login := s.Sessions.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, s.Sessions.Login(w, r, user))
	}))
	rr := httptest.NewRecorder()
	login.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	s.keepCookie(rr)
}

// Flashes pops the flash messages queued in the current session.
func (s *Site) Flashes(t *testing.T) []session.Flash {
	t.Helper()
	var flashes []session.Flash
	pop := s.Sessions.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flashes = s.Sessions.PopFlashes(w, r)
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if s.cookie != nil {
		req.AddCookie(s.cookie)
	}
	rr := httptest.NewRecorder()
	pop.ServeHTTP(rr, req)
	s.keepCookie(rr)
	return flashes
}

// Do sends req with the session cookie and keeps any cookie set in reply.
func (s *Site) Do(req *http.Request) *httptest.ResponseRecorder {
	if s.cookie != nil {
		req.AddCookie(s.cookie)
	}
	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)
	s.keepCookie(rr)
	return rr
}

func (s *Site) Get(path string) *httptest.ResponseRecorder {
	return s.Do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (s *Site) PostForm(path string, form url.Values) *httptest.ResponseRecorder {
	return s.Do(NewFormRequest(http.MethodPost, path, form))
}

func (s *Site) keepCookie(rr *httptest.ResponseRecorder) {
	for _, c := range rr.Result().Cookies() {
		if c.Name != "dm_session" {
			continue
		}
		if c.MaxAge < 0 {
			s.cookie = nil
			continue
		}
		s.cookie = c
	}
}

// NewFormRequest creates a url-encoded form request.
func NewFormRequest(method, path string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// AssertRedirect asserts a 302 to location.
func AssertRedirect(t *testing.T, rr *httptest.ResponseRecorder, location string) {
	t.Helper()
	assert.Equal(t, http.StatusFound, rr.Code, "unexpected status code")
	assert.Equal(t, location, rr.Header().Get("Location"))
}

// AssertStatus asserts the response status code matches expected.
func AssertStatus(t *testing.T, rr *httptest.ResponseRecorder, expected int) {
	t.Helper()
	assert.Equal(t, expected, rr.Code, "unexpected status code")
}

// AssertBodyContains asserts the rendered page contains each fragment.
func AssertBodyContains(t *testing.T, rr *httptest.ResponseRecorder, fragments ...string) {
	t.Helper()
	body := rr.Body.String()
	for _, f := range fragments {
		assert.Contains(t, body, f)
	}
}
