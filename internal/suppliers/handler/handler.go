// Package handler serves the supplier dashboard.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"supplierfront/internal/apiclient"
	"supplierfront/internal/frameworks"
	"supplierfront/internal/session"
	"supplierfront/internal/web"
	"supplierfront/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks DataAPI

type DataAPI interface {
	GetSupplier(ctx context.Context, supplierID int64) (*apiclient.Supplier, error)
	FindFrameworks(ctx context.Context) ([]apiclient.Framework, error)
	FindUsers(ctx context.Context, supplierID int64) ([]apiclient.User, error)
	GetSupplierFrameworkInfo(ctx context.Context, supplierID int64, frameworkSlug string) (*apiclient.SupplierFramework, error)
}

type Renderer interface {
	Render(w http.ResponseWriter, r *http.Request, status int, name string, data web.Data)
	AbortError(w http.ResponseWriter, r *http.Request, err error)
}

// Frameworks a supplier can still do something with.
var dashboardStatuses = []string{
	apiclient.FrameworkOpen,
	apiclient.FrameworkPending,
	apiclient.FrameworkStandstill,
	apiclient.FrameworkLive,
}

// maxConcurrentLookups bounds the per-framework data API calls of one page.
const maxConcurrentLookups = 4

type Handler struct {
	api    DataAPI
	render Renderer
	logger *slog.Logger
}

func New(api DataAPI, render Renderer, logger *slog.Logger) *Handler {
	return &Handler{api: api, render: render, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.With(session.RequireLogin).Get("/suppliers", h.handleDashboard)
}

// frameworkView is one framework on the dashboard with the supplier's
// progress on it.
type frameworkView struct {
	Framework         apiclient.Framework
	Registered        bool
	DeclarationStatus string
	OnFramework       bool
	AgreementReturned bool
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	supplierID := requestcontext.SupplierID(ctx)

	var (
		supplier *apiclient.Supplier
		all      []apiclient.Framework
		users    []apiclient.User
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		supplier, err = h.api.GetSupplier(gctx, supplierID)
		return err
	})
	g.Go(func() error {
		var err error
		all, err = h.api.FindFrameworks(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = h.api.FindUsers(gctx, supplierID)
		return err
	})
	if err := g.Wait(); err != nil {
		h.render.AbortError(w, r, err)
		return
	}

	views, err := h.frameworkViews(ctx, supplierID, all)
	if err != nil {
		h.render.AbortError(w, r, err)
		return
	}

	activeUsers := slices.DeleteFunc(users, func(u apiclient.User) bool { return !u.Active })
	h.render.Render(w, r, http.StatusOK, "suppliers/dashboard.html", web.Data{
		"supplier":   supplier,
		"frameworks": views,
		"users":      activeUsers,
	})
}

// frameworkViews looks up the supplier's interest in each visible framework
// in parallel, keeping the API's framework order.
func (h *Handler) frameworkViews(ctx context.Context, supplierID int64, all []apiclient.Framework) ([]frameworkView, error) {
	var visible []apiclient.Framework
	for _, f := range all {
		if slices.Contains(dashboardStatuses, f.Status) {
			visible = append(visible, f)
		}
	}

	views := make([]frameworkView, len(visible))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)
	for i, f := range visible {
		g.Go(func() error {
			info, err := frameworks.SupplierFrameworkInfo(gctx, h.api, supplierID, f.Slug)
			if err != nil {
				return err
			}
			views[i] = frameworkView{
				Framework:         f,
				Registered:        info != nil,
				DeclarationStatus: frameworks.DeclarationStatusFromInfo(info),
				OnFramework:       frameworks.SupplierOnFrameworkFromInfo(info),
				AgreementReturned: info != nil && info.AgreementReturned,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Live frameworks are only shown to suppliers who applied.
	return slices.DeleteFunc(views, func(v frameworkView) bool {
		return v.Framework.Status == apiclient.FrameworkLive && !v.Registered
	}), nil
}
