package session

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"supplierfront/internal/platform/config"
	"supplierfront/pkg/domain"
	"supplierfront/pkg/platform/sentinel"
	"supplierfront/pkg/requestcontext"
)

type ManagerSuite struct {
	suite.Suite
	store   *MemoryStore
	manager *Manager
	now     time.Time
}

func TestManagerSuite(t *testing.T) {
	suite.Run(t, new(ManagerSuite))
}

func (s *ManagerSuite) SetupTest() {
	s.now = time.Date(2015, 10, 1, 12, 0, 0, 0, time.UTC)
	s.store = NewMemoryStore()
	s.store.now = func() time.Time { return s.now }
	s.manager = NewManager(s.store, config.Session{
		CookieName: "dm_session",
		CookiePath: "/",
		Secure:     true,
		Lifetime:   4 * time.Hour,
	}, "not_very_secret", slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.manager.now = func() time.Time { return s.now }
}

func (s *ManagerSuite) supplier() *domain.CurrentUser {
	return &domain.CurrentUser{ID: 123, EmailAddress: "email@email.com", Name: "Name", Role: domain.RoleSupplier, SupplierID: 1234, SupplierName: "Supplier Name"}
}

// serve runs handler behind the session middleware with the given cookies.
func (s *ManagerSuite) serve(handler http.HandlerFunc, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/frameworks/g-cloud-7", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	s.manager.Middleware(handler).ServeHTTP(rr, req)
	return rr
}

func sessionCookie(rr *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == "dm_session" {
			return c
		}
	}
	return nil
}

func (s *ManagerSuite) TestLoginRoundTrip() {
	rr := s.serve(func(w http.ResponseWriter, r *http.Request) {
		s.Require().NoError(s.manager.Login(w, r, s.supplier()))
	})
	cookie := sessionCookie(rr)
	s.Require().NotNil(cookie)
	s.True(cookie.HttpOnly)
	s.True(cookie.Secure)
	s.Equal("/", cookie.Path)

	var seen *domain.CurrentUser
	s.serve(func(w http.ResponseWriter, r *http.Request) {
		seen = requestcontext.User(r.Context())
	}, cookie)
	s.Require().NotNil(seen)
	s.Equal(int64(1234), seen.SupplierID)
}

func (s *ManagerSuite) TestTamperedCookieIsAnonymous() {
	var seen *domain.CurrentUser
	s.serve(func(w http.ResponseWriter, r *http.Request) {
		seen = requestcontext.User(r.Context())
	}, &http.Cookie{Name: "dm_session", Value: "not-a-token"})
	s.Nil(seen)
}

func (s *ManagerSuite) TestExpiredSessionIsAnonymous() {
	rr := s.serve(func(w http.ResponseWriter, r *http.Request) {
		s.Require().NoError(s.manager.Login(w, r, s.supplier()))
	})
	cookie := sessionCookie(rr)

	s.now = s.now.Add(5 * time.Hour)
	var seen *domain.CurrentUser
	s.serve(func(w http.ResponseWriter, r *http.Request) {
		seen = requestcontext.User(r.Context())
	}, cookie)
	s.Nil(seen)
}

func (s *ManagerSuite) TestFlashesArePoppedOnce() {
	rr := s.serve(func(w http.ResponseWriter, r *http.Request) {
		s.Require().NoError(s.manager.AddFlash(w, r, "success", "message_sent"))
	})
	cookie := sessionCookie(rr)
	s.Require().NotNil(cookie)

	var flashes []Flash
	s.serve(func(w http.ResponseWriter, r *http.Request) {
		flashes = s.manager.PopFlashes(w, r)
	}, cookie)
	s.Equal([]Flash{{Category: "success", Message: "message_sent"}}, flashes)

	s.serve(func(w http.ResponseWriter, r *http.Request) {
		flashes = s.manager.PopFlashes(w, r)
	}, cookie)
	s.Empty(flashes)
}

func (s *ManagerSuite) TestLogoutClearsSession() {
	rr := s.serve(func(w http.ResponseWriter, r *http.Request) {
		s.Require().NoError(s.manager.Login(w, r, s.supplier()))
	})
	cookie := sessionCookie(rr)

	rr = s.serve(func(w http.ResponseWriter, r *http.Request) {
		s.Require().NoError(s.manager.Logout(w, r))
	}, cookie)
	cleared := sessionCookie(rr)
	s.Require().NotNil(cleared)
	s.Equal(-1, cleared.MaxAge)

	id, err := s.manager.parseToken(cookie.Value)
	s.Require().NoError(err)
	_, err = s.store.Get(context.Background(), id)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *ManagerSuite) TestRequireLogin() {
	protected := RequireLogin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/frameworks/g-cloud-7/updates", nil)
	rr := httptest.NewRecorder()
	protected.ServeHTTP(rr, req)
	s.Equal(http.StatusFound, rr.Code)
	s.Equal("/login?next=%2Fframeworks%2Fg-cloud-7%2Fupdates", rr.Header().Get("Location"))

	req = req.WithContext(requestcontext.WithUser(req.Context(), s.supplier()))
	rr = httptest.NewRecorder()
	protected.ServeHTTP(rr, req)
	s.Equal(http.StatusTeapot, rr.Code)
}
