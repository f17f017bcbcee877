// Package handler serves the /frameworks pages: the application dashboard,
// submissions, the declaration wizard, document downloads, updates and
// framework agreements.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"supplierfront/internal/apiclient"
	"supplierfront/internal/audit"
	"supplierfront/internal/blob"
	"supplierfront/internal/content"
	"supplierfront/internal/declaration"
	"supplierfront/internal/email"
	"supplierfront/internal/platform/config"
	"supplierfront/internal/platform/metrics"
	"supplierfront/internal/session"
	"supplierfront/internal/web"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks DataAPI

// DataAPI is the slice of the data API the framework pages use.
type DataAPI interface {
	GetFramework(ctx context.Context, slug string) (*apiclient.Framework, error)
	FindUsers(ctx context.Context, supplierID int64) ([]apiclient.User, error)
	FindDraftServices(ctx context.Context, supplierID int64, frameworkSlug string) ([]apiclient.Service, error)
	CreateNewDraftService(ctx context.Context, frameworkSlug, lot string, supplierID int64, data map[string]any, user string) (apiclient.Service, error)
	GetSupplierDeclaration(ctx context.Context, supplierID int64, frameworkSlug string) (apiclient.Declaration, error)
	SetSupplierDeclaration(ctx context.Context, supplierID int64, frameworkSlug string, declaration apiclient.Declaration, user string) error
	GetSupplierFrameworkInfo(ctx context.Context, supplierID int64, frameworkSlug string) (*apiclient.SupplierFramework, error)
	RegisterFrameworkInterest(ctx context.Context, supplierID int64, frameworkSlug, user string) error
	RegisterFrameworkAgreementReturned(ctx context.Context, supplierID int64, frameworkSlug, user string) error
}

// Renderer draws pages and email bodies.
type Renderer interface {
	Render(w http.ResponseWriter, r *http.Request, status int, name string, data web.Data)
	Abort(w http.ResponseWriter, r *http.Request, status int, message string)
	AbortError(w http.ResponseWriter, r *http.Request, err error)
	RenderEmail(name string, data web.Data) (string, error)
}

// Flasher queues messages for the next page.
type Flasher interface {
	AddFlash(w http.ResponseWriter, r *http.Request, category, message string) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Settings are the addresses and hosts the framework pages need.
type Settings struct {
	AssetsURL                  string
	ClarificationQuestionEmail string
	FollowUpEmailTo            string
	FrameworkAgreementsEmail   string
	ClarificationEmail         config.EmailSender
}

type Handler struct {
	api          DataAPI
	declarations *declaration.Service
	content      *content.Loader
	buckets      blob.Buckets
	render       Renderer
	flashes      Flasher
	mailer       email.Sender
	audit        AuditPublisher
	settings     Settings
	logger       *slog.Logger
	metrics      *metrics.Metrics
	throttle     func(http.Handler) http.Handler
}

type Option func(*Handler)

// WithThrottle limits clarification question posts.
func WithThrottle(mw func(http.Handler) http.Handler) Option {
	return func(h *Handler) {
		h.throttle = mw
	}
}

func New(
	api DataAPI,
	loader *content.Loader,
	buckets blob.Buckets,
	render Renderer,
	flashes Flasher,
	mailer email.Sender,
	auditor AuditPublisher,
	settings Settings,
	logger *slog.Logger,
	metrics *metrics.Metrics,
	opts ...Option,
) *Handler {
	h := &Handler{
		api:          api,
		declarations: declaration.NewService(api, logger, metrics),
		content:      loader,
		buckets:      buckets,
		render:       render,
		flashes:      flashes,
		mailer:       mailer,
		audit:        auditor,
		settings:     settings,
		logger:       logger,
		metrics:      metrics,
		throttle:     func(next http.Handler) http.Handler { return next },
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the framework routes. The router must already run the
// session middleware.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(session.RequireLogin)
		r.Get("/frameworks/{framework}", h.handleDashboard)
		r.Post("/frameworks/{framework}", h.handleDashboard)
		r.Get("/frameworks/{framework}/submissions", h.handleSubmissionLots)
		r.Get("/frameworks/{framework}/submissions/{lot}", h.handleSubmissionServices)
		r.Get("/frameworks/{framework}/declaration", h.handleDeclarationStart)
		r.Get("/frameworks/{framework}/declaration/{section}", h.handleDeclarationSection)
		r.Post("/frameworks/{framework}/declaration/{section}", h.handleDeclarationSection)
		r.Get("/frameworks/{framework}/files/*", h.handleDownloadSupplierFile)
		r.Get("/frameworks/{framework}/agreements/{document}", h.handleDownloadAgreementFile)
		r.Get("/frameworks/{framework}/updates", h.handleUpdates)
		r.With(h.throttle).Post("/frameworks/{framework}/updates", h.handleClarificationQuestion)
		r.Get("/frameworks/{framework}/agreement", h.handleAgreement)
		r.Post("/frameworks/{framework}/agreement", h.handleUploadAgreement)
	})
	r.Get("/frameworks/{framework}/*", h.handleLegacyDownload)
}

func (h *Handler) flash(w http.ResponseWriter, r *http.Request, category, message string) {
	if err := h.flashes.AddFlash(w, r, category, message); err != nil {
		h.logger.WarnContext(r.Context(), "failed to add flash", "error", err)
	}
}

// messages returns a framework's message file, or nil if the framework has
// none.
func (h *Handler) messages(framework, name string) (content.Messages, error) {
	msgs, err := h.content.Message(framework, name)
	if errors.Is(err, content.ErrNotLoaded) {
		return nil, nil
	}
	return msgs, err
}
