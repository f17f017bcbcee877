package handler

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"

	"supplierfront/internal/apiclient"
	"supplierfront/internal/blob"
	"supplierfront/internal/documents"
	"supplierfront/internal/email"
	"supplierfront/internal/web"
	pkgemail "supplierfront/pkg/email"
	"supplierfront/pkg/requestcontext"
)

const (
	// maxUploadBody caps the whole multipart request. It sits above the 5Mb
	// document limit so oversized files still get the size message.
	maxUploadBody = 6 << 20
	// Uploads are parsed in memory up to this size before spilling to disk.
	maxUploadMemory = 6 << 20
)

var agreementStatuses = []string{apiclient.FrameworkStandstill, apiclient.FrameworkLive}

// agreementContext loads the framework and the supplier's place on it, or
// writes a 404 when the supplier cannot return an agreement.
func (h *Handler) agreementContext(w http.ResponseWriter, r *http.Request) (*apiclient.Framework, *apiclient.SupplierFramework, bool) {
	ctx := r.Context()
	slug := chi.URLParam(r, "framework")

	framework, err := h.api.GetFramework(ctx, slug)
	if err != nil {
		h.render.AbortError(w, r, err)
		return nil, nil, false
	}
	if !slices.Contains(agreementStatuses, framework.Status) {
		h.render.Abort(w, r, http.StatusNotFound, "")
		return nil, nil, false
	}

	info, err := h.api.GetSupplierFrameworkInfo(ctx, requestcontext.SupplierID(ctx), slug)
	if err != nil {
		h.render.AbortError(w, r, err)
		return nil, nil, false
	}
	if !info.IsOnFramework() {
		h.render.Abort(w, r, http.StatusNotFound, "")
		return nil, nil, false
	}
	return framework, info, true
}

func (h *Handler) renderAgreement(w http.ResponseWriter, r *http.Request, status int, framework *apiclient.Framework, info *apiclient.SupplierFramework, uploadError string) {
	var returnedAt time.Time
	if info.AgreementReturned && info.AgreementReturnedAt != "" {
		if t, err := time.Parse(time.RFC3339Nano, info.AgreementReturnedAt); err == nil {
			returnedAt = t
		} else {
			h.logger.WarnContext(r.Context(), "unparseable agreementReturnedAt",
				"value", info.AgreementReturnedAt,
				"error", err,
			)
		}
	}
	h.render.Render(w, r, status, "frameworks/agreement.html", web.Data{
		"framework":             framework,
		"supplier_framework":    info,
		"agreement_returned_at": returnedAt,
		"agreement_filename":    documents.AgreementFilename,
		"upload_error":          uploadError,
	})
}

func (h *Handler) handleAgreement(w http.ResponseWriter, r *http.Request) {
	framework, info, ok := h.agreementContext(w, r)
	if !ok {
		return
	}
	h.renderAgreement(w, r, http.StatusOK, framework, info, "")
}

func (h *Handler) handleUploadAgreement(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := requestcontext.User(ctx)
	framework, info, ok := h.agreementContext(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.renderAgreement(w, r, http.StatusBadRequest, framework, info, "Document must be less than 5Mb")
			return
		}
		h.render.Abort(w, r, http.StatusBadRequest, "")
		return
	}
	file, header, err := r.FormFile("agreement")
	var size int64
	if err == nil {
		defer file.Close()
		size = header.Size
	}

	uploadError := ""
	switch {
	case !documents.FileIsLessThan5MB(size):
		uploadError = "Document must be less than 5Mb"
	case err != nil || documents.FileIsEmpty(size):
		uploadError = "Document must not be empty"
	}
	if uploadError != "" {
		h.renderAgreement(w, r, http.StatusBadRequest, framework, info, uploadError)
		return
	}

	ext := documents.Extension(header.Filename)
	key := documents.AgreementDocumentPath(framework.Slug, user.SupplierID, documents.SignedAgreementPrefix+ext)
	err = h.buckets.Agreements.Put(ctx, key, file, blob.PutOptions{
		ACL: blob.ACLPrivate,
		DownloadFilename: fmt.Sprintf("%s-%d-%s%s",
			documents.SanitiseSupplierName(user.SupplierName), user.SupplierID, documents.SignedAgreementPrefix, ext),
	})
	if err != nil {
		h.render.AbortError(w, r, err)
		return
	}

	if err := h.api.RegisterFrameworkAgreementReturned(ctx, user.SupplierID, framework.Slug, user.EmailAddress); err != nil {
		h.render.AbortError(w, r, err)
		return
	}
	h.metrics.IncrementAgreementsUploaded()

	body, err := h.render.RenderEmail("framework_agreement_uploaded.html", web.Data{
		"framework_name": framework.Name,
		"supplier_name":  user.SupplierName,
		"supplier_id":    user.SupplierID,
		"user_name":      user.Name,
	})
	if err != nil {
		h.render.AbortError(w, r, err)
		return
	}
	msg := email.Message{
		To:        []string{h.settings.FrameworkAgreementsEmail},
		Subject:   framework.Name + " framework agreement",
		HTML:      body,
		FromEmail: user.EmailAddress,
		FromName:  framework.Name + " Supplier",
		Tags:      []string{framework.Slug + "-framework-agreement"},
	}
	if err := h.mailer.Send(ctx, msg); err != nil {
		h.metrics.ObserveEmailFailed(msg.Tags)
		h.logger.ErrorContext(ctx, "framework agreement email failed to send",
			"request_id", requestcontext.RequestID(ctx),
			"supplier_id", user.SupplierID,
			"email_hash", pkgemail.Hash(user.EmailAddress),
			"error", err,
		)
		h.render.Abort(w, r, http.StatusServiceUnavailable, "Framework agreement email failed to send")
		return
	}

	http.Redirect(w, r, "/frameworks/"+framework.Slug+"/agreement", http.StatusFound)
}
