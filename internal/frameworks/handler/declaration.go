package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"supplierfront/internal/declaration"
	"supplierfront/internal/frameworks"
	"supplierfront/internal/web"
	"supplierfront/pkg/requestcontext"
)

func (h *Handler) handleDeclarationStart(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "framework")
	if _, err := frameworks.GetFramework(r.Context(), h.api, slug, true); err != nil {
		h.render.AbortError(w, r, err)
		return
	}
	manifest, err := h.content.Manifest(slug, "declaration")
	if err != nil {
		h.render.AbortError(w, r, err)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/frameworks/%s/declaration/%s", slug, manifest.NextEditableSectionID("")), http.StatusFound)
}

func (h *Handler) handleDeclarationSection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := requestcontext.User(ctx)
	slug := chi.URLParam(r, "framework")

	framework, err := frameworks.GetFramework(ctx, h.api, slug, true)
	if err != nil {
		h.render.AbortError(w, r, err)
		return
	}
	manifest, err := h.content.Manifest(slug, "declaration")
	if err != nil {
		h.render.AbortError(w, r, err)
		return
	}
	section := manifest.Section(chi.URLParam(r, "section"))
	if section == nil || !section.Editable {
		h.render.Abort(w, r, http.StatusNotFound, "")
		return
	}

	status := http.StatusOK
	var answers declaration.Answers
	errs := declaration.Errors{}

	if r.Method == http.MethodGet {
		answers, err = h.declarations.Load(ctx, user.SupplierID, slug)
		if err != nil {
			h.render.AbortError(w, r, err)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			h.render.Abort(w, r, http.StatusBadRequest, "")
			return
		}
		result, err := h.declarations.SubmitSection(ctx, declaration.Submission{
			SupplierID: user.SupplierID,
			Framework:  slug,
			Manifest:   manifest,
			Section:    section,
			Form:       r.PostForm,
			UpdatedBy:  user.EmailAddress,
		})
		if err != nil {
			h.render.AbortError(w, r, err)
			return
		}
		if len(result.Errors) == 0 {
			if result.NextSection != "" {
				http.Redirect(w, r, fmt.Sprintf("/frameworks/%s/declaration/%s", slug, result.NextSection), http.StatusFound)
				return
			}
			dashboard := "/frameworks/" + slug
			h.flash(w, r, "declaration_complete", dashboard+"/declaration_complete")
			http.Redirect(w, r, dashboard, http.StatusFound)
			return
		}
		status = http.StatusBadRequest
		answers = result.Answers
		errs = result.Errors
	}

	h.render.Render(w, r, status, "frameworks/edit_declaration_section.html", web.Data{
		"framework":           framework,
		"section":             section,
		"declaration_answers": answers,
		"is_last_page":        manifest.IsLastSection(section.ID),
		"errors":              errs,
	})
}
