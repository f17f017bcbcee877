package handler

import (
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"supplierfront/internal/apiclient"
	"supplierfront/internal/declaration"
	"supplierfront/internal/documents"
	"supplierfront/internal/email"
	"supplierfront/internal/frameworks"
	"supplierfront/internal/services"
	"supplierfront/internal/web"
	"supplierfront/pkg/requestcontext"
)

// Lots whose display name differs from a lowercased lot name.
var lotDisplayNames = map[string]string{
	"digital-outcomes":           "digital outcome",
	"digital-specialists":        "individual specialist",
	"user-research-studios":      "user research studio",
	"user-research-participants": "user research participant recruitment",
}

type completedLot struct {
	Name          string
	DisplayName   string
	CompleteCount int
	Unit          string
	UnitPlural    string
}

type lastModified struct {
	SupplierPack    time.Time
	SupplierUpdates time.Time
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := requestcontext.User(ctx)
	slug := chi.URLParam(r, "framework")

	framework, err := frameworks.GetFramework(ctx, h.api, slug, false)
	if err != nil {
		h.render.AbortError(w, r, err)
		return
	}

	if r.Method == http.MethodPost {
		if err := frameworks.RegisterInterest(ctx, h.api, user.SupplierID, slug, user.EmailAddress); err != nil {
			h.render.AbortError(w, r, err)
			return
		}
		if err := h.sendApplicationStarted(r, framework); err != nil {
			h.render.AbortError(w, r, err)
			return
		}
	}

	drafts, complete, err := services.GetDrafts(ctx, h.api, user.SupplierID, slug)
	if err != nil {
		h.render.AbortError(w, r, err)
		return
	}
	info, err := frameworks.SupplierFrameworkInfo(ctx, h.api, user.SupplierID, slug)
	if err != nil {
		h.render.AbortError(w, r, err)
		return
	}
	declarationStatus := frameworks.DeclarationStatusFromInfo(info)

	// Earlier iterations of a framework have no dashboard for suppliers who
	// never applied.
	if declarationStatus == declaration.StatusUnstarted && framework.Status == apiclient.FrameworkLive {
		h.render.Abort(w, r, http.StatusNotFound, "")
		return
	}

	files, err := h.buckets.Communications.List(ctx, slug)
	if err != nil {
		h.render.AbortError(w, r, err)
		return
	}
	slices.Reverse(files)

	manifest, err := h.content.Manifest(slug, "declaration")
	if err != nil {
		h.render.AbortError(w, r, err)
		return
	}

	countersigned, err := frameworks.CountersignedAgreementExists(ctx, h.buckets.Agreements, slug, user.SupplierID)
	if err != nil {
		h.render.AbortError(w, r, err)
		return
	}
	countersignedFile := ""
	if countersigned {
		countersignedFile = documents.CountersignedAgreementFilename
	}

	dates, err := h.messages(slug, "dates")
	if err != nil {
		h.render.AbortError(w, r, err)
		return
	}

	supplierPack := fmt.Sprintf("%s-supplier-pack.zip", slug)
	var modified lastModified
	modified.SupplierPack, _ = frameworks.LastModifiedFromFirstMatchingFile(files, slug, "communications/"+supplierPack)
	modified.SupplierUpdates, _ = frameworks.LastModifiedFromFirstMatchingFile(files, slug, "communications/updates/")

	h.render.Render(w, r, http.StatusOK, "frameworks/dashboard.html", web.Data{
		"application_made":             len(complete) > 0 && declarationStatus == declaration.StatusComplete,
		"completed_lots":               completedLots(framework, complete),
		"counts":                       map[string]int{"draft": len(drafts), "complete": len(complete)},
		"dates":                        dates,
		"declaration_status":           declarationStatus,
		"first_page_of_declaration":    manifest.NextEditableSectionID(""),
		"framework":                    framework,
		"last_modified":                modified,
		"supplier_is_on_framework":     frameworks.SupplierOnFrameworkFromInfo(info),
		"supplier_pack_filename":       supplierPack,
		"result_letter_filename":       documents.ResultLetterFilename,
		"countersigned_agreement_file": countersignedFile,
	})
}

func completedLots(framework *apiclient.Framework, complete []apiclient.Service) []completedLot {
	var out []completedLot
	for _, lot := range framework.Lots {
		n := frameworks.CountDraftsByLot(complete, lot.Slug)
		if n == 0 {
			continue
		}
		name, ok := lotDisplayNames[lot.Slug]
		if !ok {
			name = strings.ToLower(lot.Name)
		}
		out = append(out, completedLot{
			Name:          lot.Name,
			DisplayName:   name,
			CompleteCount: n,
			Unit:          "service",
			UnitPlural:    "services",
		})
	}
	return out
}

// sendApplicationStarted tells every active user of the supplier that an
// application has begun. Delivery failures are logged and otherwise ignored.
func (h *Handler) sendApplicationStarted(r *http.Request, framework *apiclient.Framework) error {
	ctx := r.Context()
	user := requestcontext.User(ctx)

	users, err := h.api.FindUsers(ctx, user.SupplierID)
	if err != nil {
		return err
	}
	var recipients []string
	for _, u := range users {
		if u.Active {
			recipients = append(recipients, u.EmailAddress)
		}
	}

	body, err := h.render.RenderEmail("dos_application_started.html", web.Data{"framework": framework})
	if err != nil {
		return err
	}
	msg := email.Message{
		To:        recipients,
		Subject:   fmt.Sprintf("You have started your %s application", framework.Name),
		HTML:      body,
		FromEmail: h.settings.ClarificationEmail.From,
		FromName:  h.settings.ClarificationEmail.Name,
		Tags:      []string{framework.Slug + "-application-started"},
	}
	if err := h.mailer.Send(ctx, msg); err != nil {
		h.metrics.ObserveEmailFailed(msg.Tags)
		h.logger.ErrorContext(ctx, "application started email failed to send",
			"request_id", requestcontext.RequestID(ctx),
			"supplier_id", user.SupplierID,
			"error", err,
		)
	}
	return nil
}
