// Package auth serves the login, password reset and user invitation pages.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"supplierfront/internal/apiclient"
	"supplierfront/internal/audit"
	"supplierfront/internal/email"
	jwttoken "supplierfront/internal/jwt_token"
	"supplierfront/internal/platform/config"
	"supplierfront/internal/platform/metrics"
	"supplierfront/internal/session"
	"supplierfront/internal/web"
	"supplierfront/pkg/domain"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks DataAPI

// DataAPI is the slice of the data API the account pages use.
type DataAPI interface {
	AuthenticateUser(ctx context.Context, emailAddress, password string) (*apiclient.User, error)
	GetUserByEmail(ctx context.Context, emailAddress string) (*apiclient.User, error)
	UpdateUserPassword(ctx context.Context, userID int64, password, updater string) error
	CreateUser(ctx context.Context, user apiclient.NewUser) (*apiclient.User, error)
}

// Sessions starts and ends logged-in sessions.
type Sessions interface {
	Login(w http.ResponseWriter, r *http.Request, user *domain.CurrentUser) error
	Logout(w http.ResponseWriter, r *http.Request) error
	AddFlash(w http.ResponseWriter, r *http.Request, category, message string) error
}

// Renderer draws pages and email bodies.
type Renderer interface {
	Render(w http.ResponseWriter, r *http.Request, status int, name string, data web.Data)
	Abort(w http.ResponseWriter, r *http.Request, status int, message string)
	AbortError(w http.ResponseWriter, r *http.Request, err error)
	RenderEmail(name string, data web.Data) (string, error)
}

// AuditPublisher records user actions.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Tokens signs the links sent by email.
type Tokens struct {
	ResetPassword *jwttoken.Service
	Invite        *jwttoken.Service
}

// Settings are the email senders and link scheme the handlers need.
type Settings struct {
	HTTPProto          string
	ResetPasswordEmail config.EmailSender
	InviteEmail        config.EmailSender
}

type Handler struct {
	api      DataAPI
	sessions Sessions
	render   Renderer
	mailer   email.Sender
	audit    AuditPublisher
	tokens   Tokens
	settings Settings
	logger   *slog.Logger
	metrics  *metrics.Metrics
	throttle func(http.Handler) http.Handler
}

type Option func(*Handler)

// WithThrottle limits the login and reset-password posts.
func WithThrottle(mw func(http.Handler) http.Handler) Option {
	return func(h *Handler) {
		h.throttle = mw
	}
}

func New(
	api DataAPI,
	sessions Sessions,
	render Renderer,
	mailer email.Sender,
	auditor AuditPublisher,
	tokens Tokens,
	settings Settings,
	logger *slog.Logger,
	metrics *metrics.Metrics,
	opts ...Option,
) *Handler {
	h := &Handler{
		api:      api,
		sessions: sessions,
		render:   render,
		mailer:   mailer,
		audit:    auditor,
		tokens:   tokens,
		settings: settings,
		logger:   logger,
		metrics:  metrics,
		throttle: func(next http.Handler) http.Handler { return next },
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the account routes. The router must already run the
// session middleware.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.throttle)
		r.Get("/login", h.handleLoginPage)
		r.Post("/login", h.handleLogin)
		r.Get("/reset-password", h.handleResetPasswordPage)
		r.Post("/reset-password", h.handleSendResetPasswordEmail)
	})
	r.Get("/logout", h.handleLogout)
	r.Get("/reset-password/{token}", h.handleChangePasswordPage)
	r.Post("/reset-password/{token}", h.handleChangePassword)
	r.Get("/create-user/{token}", h.handleCreateUserPage)
	r.Post("/create-user/{token}", h.handleCreateUser)

	r.Group(func(r chi.Router) {
		r.Use(session.RequireLogin)
		r.Get("/users/invite", h.handleInviteUserPage)
		r.Post("/users/invite", h.handleInviteUser)
	})
}

func (h *Handler) link(r *http.Request, path string) string {
	return fmt.Sprintf("%s://%s%s", h.settings.HTTPProto, r.Host, path)
}

func (h *Handler) flash(w http.ResponseWriter, r *http.Request, category, message string) {
	if err := h.sessions.AddFlash(w, r, category, message); err != nil {
		h.logger.WarnContext(r.Context(), "failed to add flash", "error", err)
	}
}
