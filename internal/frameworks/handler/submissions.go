package handler

import (
	"fmt"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"supplierfront/internal/apiclient"
	"supplierfront/internal/declaration"
	"supplierfront/internal/frameworks"
	"supplierfront/internal/services"
	"supplierfront/internal/web"
	"supplierfront/pkg/requestcontext"
)

type lotSummary struct {
	Link     string
	Title    string
	Body     string
	Statuses []frameworks.LotStatus
}

// draftSummary is a draft service as listed on a lot page.
type draftSummary struct {
	ID                 int64
	Name               string
	PriceString        string
	UnansweredRequired int
	UnansweredOptional int
}

func (h *Handler) handleSubmissionLots(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := requestcontext.User(ctx)
	slug := chi.URLParam(r, "framework")

	framework, err := frameworks.GetFramework(ctx, h.api, slug, false)
	if err != nil {
		h.render.AbortError(w, r, err)
		return
	}
	drafts, complete, err := services.GetDrafts(ctx, h.api, user.SupplierID, slug)
	if err != nil {
		h.render.AbortError(w, r, err)
		return
	}
	declarationStatus, err := frameworks.DeclarationStatus(ctx, h.api, user.SupplierID, slug)
	if err != nil {
		h.render.AbortError(w, r, err)
		return
	}
	applicationMade := len(complete) > 0 && declarationStatus == declaration.StatusComplete
	if framework.Status == apiclient.FrameworkPending && !applicationMade {
		h.render.Abort(w, r, http.StatusNotFound, "")
		return
	}

	lotQuestion, err := h.content.Question(slug, "services", "lot")
	if err != nil {
		h.render.AbortError(w, r, err)
		return
	}
	unit, unitPlural := frameworks.Units(slug)
	lots := make([]lotSummary, 0, len(lotQuestion.Options))
	for _, option := range lotQuestion.Options {
		lots = append(lots, lotSummary{
			Link:  fmt.Sprintf("/frameworks/%s/submissions/%s", slug, option.Value),
			Title: option.Label,
			Body:  option.Description,
			Statuses: frameworks.StatusesForLot(frameworks.LotStatusInput{
				HasOneServiceLimit:  frameworks.HasOneServiceLimit(option.Value, framework.Lots),
				DraftsCount:         frameworks.CountDraftsByLot(drafts, option.Value),
				CompleteDraftsCount: frameworks.CountDraftsByLot(complete, option.Value),
				DeclarationStatus:   declarationStatus,
				FrameworkStatus:     framework.Status,
				Unit:                unit,
				UnitPlural:          unitPlural,
			}),
		})
	}

	slices.Reverse(drafts)
	slices.Reverse(complete)
	h.render.Render(w, r, http.StatusOK, "frameworks/submission_lots.html", web.Data{
		"complete_drafts":    complete,
		"drafts":             drafts,
		"declaration_status": declarationStatus,
		"framework":          framework,
		"lots":               lots,
	})
}

func (h *Handler) handleSubmissionServices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := requestcontext.User(ctx)
	slug := chi.URLParam(r, "framework")
	lotSlug := chi.URLParam(r, "lot")

	framework, lot, err := frameworks.GetFrameworkAndLot(ctx, h.api, slug, lotSlug, false)
	if err != nil {
		h.render.AbortError(w, r, err)
		return
	}
	drafts, complete, err := services.GetLotDrafts(ctx, h.api, user.SupplierID, slug, lotSlug)
	if err != nil {
		h.render.AbortError(w, r, err)
		return
	}
	declarationStatus, err := frameworks.DeclarationStatus(ctx, h.api, user.SupplierID, slug)
	if err != nil {
		h.render.AbortError(w, r, err)
		return
	}
	if framework.Status == apiclient.FrameworkPending && declarationStatus != declaration.StatusComplete {
		h.render.Abort(w, r, http.StatusNotFound, "")
		return
	}

	if lot.OneServiceLimit {
		var draft apiclient.Service
		if all := append(drafts, complete...); len(all) > 0 {
			draft = all[0]
		} else {
			draft, err = h.api.CreateNewDraftService(ctx, slug, lotSlug, user.SupplierID, map[string]any{}, user.EmailAddress)
			if err != nil {
				h.render.AbortError(w, r, err)
				return
			}
		}
		http.Redirect(w, r, fmt.Sprintf("/frameworks/%s/submissions/%s/%d", slug, lotSlug, draft.ID()), http.StatusFound)
		return
	}

	manifest, err := h.content.Manifest(slug, "edit_submission")
	if err != nil {
		h.render.AbortError(w, r, err)
		return
	}
	summarise := func(in []apiclient.Service) []draftSummary {
		out := make([]draftSummary, 0, len(in))
		for i := len(in) - 1; i >= 0; i-- {
			d := in[i]
			required, optional := services.CountUnansweredQuestions(manifest.Filter(d).Summary(d))
			name, _ := d["serviceName"].(string)
			out = append(out, draftSummary{
				ID:                 d.ID(),
				Name:               name,
				PriceString:        services.FormatServicePrice(d),
				UnansweredRequired: required,
				UnansweredOptional: optional,
			})
		}
		return out
	}

	h.render.Render(w, r, http.StatusOK, "frameworks/services.html", web.Data{
		"complete_drafts":    summarise(complete),
		"drafts":             summarise(drafts),
		"declaration_status": declarationStatus,
		"framework":          framework,
		"lot":                lot,
	})
}
