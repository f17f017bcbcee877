package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"supplierfront/internal/platform/config"
	"supplierfront/pkg/domain"
	"supplierfront/pkg/platform/sentinel"
	"supplierfront/pkg/requestcontext"
)

type contextKey struct{}

// Manager ties the cookie to the stored session. The cookie only carries a
// signed token naming the session id.
type Manager struct {
	store      Store
	cfg        config.Session
	signingKey []byte
	logger     *slog.Logger
	now        func() time.Time
}

func NewManager(store Store, cfg config.Session, secretKey string, logger *slog.Logger) *Manager {
	return &Manager{store: store, cfg: cfg, signingKey: []byte(secretKey), logger: logger, now: time.Now}
}

// Middleware loads the session named by the cookie and puts the user, if
// any, into the request context. A bad or stale cookie yields an empty
// session.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		data := m.load(r)
		ctx = context.WithValue(ctx, contextKey{}, data)
		if data.User != nil {
			ctx = requestcontext.WithUser(ctx, data.User)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Manager) load(r *http.Request) *Data {
	cookie, err := r.Cookie(m.cfg.CookieName)
	if err != nil || cookie.Value == "" {
		return &Data{}
	}
	id, err := m.parseToken(cookie.Value)
	if err != nil {
		return &Data{}
	}
	data, err := m.store.Get(r.Context(), id)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			m.logger.WarnContext(r.Context(), "session load failed", "error", err)
		}
		return &Data{}
	}
	return data
}

func fromContext(ctx context.Context) *Data {
	if data, ok := ctx.Value(contextKey{}).(*Data); ok {
		return data
	}
	return &Data{}
}

// Login starts a fresh session for user, replacing any existing one.
func (m *Manager) Login(w http.ResponseWriter, r *http.Request, user *domain.CurrentUser) error {
	ctx := r.Context()
	old := fromContext(ctx)
	if old.ID != "" {
		_ = m.store.Delete(ctx, old.ID)
	}
	data := &Data{ID: uuid.NewString(), User: user, Flashes: old.Flashes}
	return m.save(w, r, data)
}

// Logout drops the session and clears the cookie.
func (m *Manager) Logout(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()
	data := fromContext(ctx)
	if data.ID != "" {
		if err := m.store.Delete(ctx, data.ID); err != nil {
			return err
		}
	}
	*data = Data{}
	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    "",
		Path:     m.cfg.CookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// AddFlash queues a message for the next page.
func (m *Manager) AddFlash(w http.ResponseWriter, r *http.Request, category, message string) error {
	data := fromContext(r.Context())
	data.Flashes = append(data.Flashes, Flash{Category: category, Message: message})
	return m.save(w, r, data)
}

// PopFlashes returns queued messages and removes them from the session.
func (m *Manager) PopFlashes(w http.ResponseWriter, r *http.Request) []Flash {
	data := fromContext(r.Context())
	if len(data.Flashes) == 0 {
		return nil
	}
	flashes := data.Flashes
	data.Flashes = nil
	if err := m.save(w, r, data); err != nil {
		m.logger.WarnContext(r.Context(), "clearing flashes failed", "error", err)
	}
	return flashes
}

func (m *Manager) save(w http.ResponseWriter, r *http.Request, data *Data) error {
	isNew := data.ID == ""
	if isNew {
		data.ID = uuid.NewString()
	}
	data.ExpiresAt = m.now().Add(m.cfg.Lifetime)
	if err := m.store.Save(r.Context(), data); err != nil {
		return err
	}
	if cur := fromContext(r.Context()); cur != data {
		*cur = *data
	}

	token, err := m.signToken(data.ID, data.ExpiresAt)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    token,
		Path:     m.cfg.CookiePath,
		Expires:  data.ExpiresAt,
		HttpOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (m *Manager) signToken(id string, expiresAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        id,
		IssuedAt:  jwt.NewNumericDate(m.now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	return token.SignedString(m.signingKey)
}

func (m *Manager) parseToken(raw string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return m.signingKey, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil || !parsed.Valid || claims.ID == "" {
		return "", sentinel.ErrInvalid
	}
	return claims.ID, nil
}

// RequireLogin sends anonymous visitors to the login page, remembering where
// they were going.
func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user := requestcontext.User(r.Context()); user == nil || !user.IsSupplier() {
			http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}
