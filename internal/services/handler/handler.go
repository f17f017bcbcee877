// Package handler serves the draft service summary page.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"supplierfront/internal/apiclient"
	"supplierfront/internal/blob"
	"supplierfront/internal/content"
	"supplierfront/internal/frameworks"
	"supplierfront/internal/services"
	"supplierfront/internal/session"
	"supplierfront/internal/web"
	"supplierfront/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks DataAPI

type DataAPI interface {
	GetFramework(ctx context.Context, slug string) (*apiclient.Framework, error)
	GetDraftService(ctx context.Context, draftID int64) (apiclient.Service, error)
}

type Renderer interface {
	Render(w http.ResponseWriter, r *http.Request, status int, name string, data web.Data)
	Abort(w http.ResponseWriter, r *http.Request, status int, message string)
	AbortError(w http.ResponseWriter, r *http.Request, err error)
}

type Handler struct {
	api       DataAPI
	content   *content.Loader
	documents blob.Store
	assetsURL string
	render    Renderer
	logger    *slog.Logger
}

func New(api DataAPI, loader *content.Loader, documents blob.Store, assetsURL string, render Renderer, logger *slog.Logger) *Handler {
	return &Handler{
		api:       api,
		content:   loader,
		documents: documents,
		assetsURL: assetsURL,
		render:    render,
		logger:    logger,
	}
}

func (h *Handler) Register(r chi.Router) {
	r.With(session.RequireLogin).Get("/frameworks/{framework}/submissions/{lot}/{id}", h.handleViewServiceSubmission)
}

type sectionView struct {
	content.SummarySection
	NextSectionName string
}

// document is an uploaded file answer.
type document struct {
	URL        string
	UploadedAt time.Time
}

func (h *Handler) handleViewServiceSubmission(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := requestcontext.User(ctx)
	slug := chi.URLParam(r, "framework")

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.render.Abort(w, r, http.StatusNotFound, "")
		return
	}
	framework, err := frameworks.GetFramework(ctx, h.api, slug, false)
	if err != nil {
		h.render.AbortError(w, r, err)
		return
	}
	draft, err := h.api.GetDraftService(ctx, id)
	if err != nil {
		h.render.AbortError(w, r, err)
		return
	}
	if !services.IsServiceAssociatedWithSupplier(draft, user.SupplierID) || draft.Lot() != chi.URLParam(r, "lot") {
		h.render.Abort(w, r, http.StatusNotFound, "")
		return
	}

	manifest, err := h.content.Manifest(slug, "edit_submission")
	if err != nil {
		h.render.AbortError(w, r, err)
		return
	}
	manifest = manifest.Filter(draft)
	summary := services.ServiceAttributes(services.ReformatPricingData(draft, manifest), manifest)
	required, optional := services.CountUnansweredQuestions(summary)

	sections := make([]sectionView, 0, len(summary))
	for _, s := range summary {
		sections = append(sections, sectionView{SummarySection: s, NextSectionName: services.NextSectionName(manifest, s.ID)})
	}

	docs, err := h.documentLinks(ctx, manifest, draft)
	if err != nil {
		h.render.AbortError(w, r, err)
		return
	}

	h.render.Render(w, r, http.StatusOK, "services/service_submission.html", web.Data{
		"framework":           framework,
		"service_id":          id,
		"service_data":        draft,
		"sections":            sections,
		"documents":           docs,
		"unanswered_required": required,
		"unanswered_optional": optional,
		"price":               services.FormatServicePrice(draft),
		"modifiable":          services.IsServiceModifiable(draft),
		"can_mark_complete":   required == 0 && draft.Status() == apiclient.DraftNotSubmitted,
	})
}

// documentLinks signs every uploaded document of the draft. Answers hold the
// public URL of the file; only its path is used.
func (h *Handler) documentLinks(ctx context.Context, manifest *content.Manifest, draft apiclient.Service) (map[string]document, error) {
	docs := map[string]document{}
	for _, q := range manifest.Questions() {
		if q.Type != content.TypeUpload {
			continue
		}
		raw, _ := draft[q.ID].(string)
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil {
			h.logger.WarnContext(ctx, "unparseable document url", "question", q.ID, "error", err)
			continue
		}
		signed, err := services.DraftDocumentURL(ctx, h.documents, strings.TrimPrefix(u.Path, "/"), h.assetsURL)
		if err != nil {
			return nil, err
		}
		if signed == "" {
			continue
		}
		uploadedAt, _ := services.ParseDocumentUploadTime(u.Path)
		docs[q.ID] = document{URL: signed, UploadedAt: uploadedAt}
	}
	return docs, nil
}
