package handler

import (
	"net/http"
	"path"
	"time"

	"github.com/go-chi/chi/v5"

	"supplierfront/internal/documents"
	"supplierfront/internal/frameworks"
	"supplierfront/internal/services"
	"supplierfront/pkg/requestcontext"
)

// Legacy G-Cloud 7 download links stopped being advertised on this date.
var legacyDownloadsDieAt = time.Date(2015, 11, 9, 0, 0, 0, 0, time.UTC)

func (h *Handler) handleDownloadSupplierFile(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "framework")
	key := slug + "/communications/" + chi.URLParam(r, "*")

	url, err := services.DraftDocumentURL(r.Context(), h.buckets.Communications, key, h.settings.AssetsURL)
	if err != nil {
		h.render.AbortError(w, r, err)
		return
	}
	if url == "" {
		h.render.Abort(w, r, http.StatusNotFound, "")
		return
	}
	http.Redirect(w, r, url, http.StatusFound)
}

func (h *Handler) handleDownloadAgreementFile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := requestcontext.User(ctx)
	slug := chi.URLParam(r, "framework")

	info, err := frameworks.SupplierFrameworkInfo(ctx, h.api, user.SupplierID, slug)
	if err != nil {
		h.render.AbortError(w, r, err)
		return
	}
	if info == nil || len(info.Declaration) == 0 {
		h.render.Abort(w, r, http.StatusNotFound, "")
		return
	}

	key := documents.AgreementDocumentPath(slug, user.SupplierID, chi.URLParam(r, "document"))
	url, err := documents.SignedURL(ctx, h.buckets.Agreements, key, h.settings.AssetsURL)
	if err != nil {
		h.render.AbortError(w, r, err)
		return
	}
	if url == "" {
		h.render.Abort(w, r, http.StatusNotFound, "")
		return
	}
	http.Redirect(w, r, url, http.StatusFound)
}

// handleLegacyDownload permanently redirects the old G-Cloud 7 zip and pdf
// links to the files route. Anything else under a framework is not found.
func (h *Handler) handleLegacyDownload(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "framework")
	filepath := chi.URLParam(r, "*")
	ext := path.Ext(filepath)
	if slug != frameworks.GCloud7 || (ext != ".zip" && ext != ".pdf") || filepath == ext {
		h.render.Abort(w, r, http.StatusNotFound, "")
		return
	}

	ctx := r.Context()
	if requestcontext.Now(ctx).After(legacyDownloadsDieAt) {
		h.logger.WarnContext(ctx, "deprecated route called after removal date",
			"request_id", requestcontext.RequestID(ctx),
			"path", r.URL.Path,
		)
	}
	http.Redirect(w, r, "/frameworks/"+frameworks.GCloud7+"/files/"+filepath, http.StatusMovedPermanently)
}
