package handler

import (
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"supplierfront/internal/apiclient"
	"supplierfront/internal/audit"
	"supplierfront/internal/blob"
	"supplierfront/internal/email"
	"supplierfront/internal/frameworks"
	"supplierfront/internal/web"
	"supplierfront/pkg/domain"
	pkgemail "supplierfront/pkg/email"
	"supplierfront/pkg/requestcontext"
)

const (
	clarificationQuestionName = "clarification_question"
	maxQuestionLength         = 5000
)

// Update categories are the folder under {framework}/communications/updates/.
const (
	categoryCommunications = "communications"
	categoryClarifications = "clarifications"
)

func (h *Handler) handleUpdates(w http.ResponseWriter, r *http.Request) {
	framework, err := frameworks.GetFramework(r.Context(), h.api, chi.URLParam(r, "framework"), false)
	if err != nil {
		h.render.AbortError(w, r, err)
		return
	}
	h.renderUpdates(w, r, framework, "", "")
}

func (h *Handler) renderUpdates(w http.ResponseWriter, r *http.Request, framework *apiclient.Framework, errorMessage, questionValue string) {
	ctx := r.Context()
	user := requestcontext.User(ctx)

	h.logger.InfoContext(ctx, "updates viewed",
		"request_id", requestcontext.RequestID(ctx),
		"framework", framework.Slug,
		"user_id", user.ID,
		"supplier_id", user.SupplierID,
	)

	list, err := h.buckets.Communications.List(ctx, framework.Slug+"/communications/updates/")
	if err != nil {
		h.render.AbortError(w, r, err)
		return
	}
	dates, err := h.messages(framework.Slug, "dates")
	if err != nil {
		h.render.AbortError(w, r, err)
		return
	}
	countersigned, err := frameworks.CountersignedAgreementExists(ctx, h.buckets.Agreements, framework.Slug, user.SupplierID)
	if err != nil {
		h.render.AbortError(w, r, err)
		return
	}

	status := http.StatusOK
	if errorMessage != "" {
		status = http.StatusBadRequest
	}
	h.render.Render(w, r, status, "frameworks/updates.html", web.Data{
		"framework":                    framework,
		"clarification_question_name":  clarificationQuestionName,
		"clarification_question_value": questionValue,
		"error_message":                errorMessage,
		"files":                        splitUpdates(list),
		"dates":                        dates,
		"agreement_countersigned":      countersigned,
	})
}

// splitUpdates files each update under its category, with paths relative to
// the framework's communications folder. Unknown categories are dropped.
func splitUpdates(list []blob.Info) map[string][]blob.Info {
	files := map[string][]blob.Info{
		categoryCommunications: {},
		categoryClarifications: {},
	}
	for _, info := range list {
		parts := strings.Split(info.Path, "/")
		if len(parts) < 5 {
			continue
		}
		category := parts[3]
		if _, ok := files[category]; !ok {
			continue
		}
		info.Path = strings.Join(parts[2:], "/")
		files[category] = append(files[category], info)
	}
	return files
}

func (h *Handler) handleClarificationQuestion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := requestcontext.User(ctx)

	framework, err := frameworks.GetFramework(ctx, h.api, chi.URLParam(r, "framework"), false)
	if err != nil {
		h.render.AbortError(w, r, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.render.Abort(w, r, http.StatusBadRequest, "")
		return
	}

	question := strings.TrimSpace(r.PostForm.Get(clarificationQuestionName))
	if question == "" {
		h.renderUpdates(w, r, framework, "Question cannot be empty", "")
		return
	}
	if utf8.RuneCountInString(question) > maxQuestionLength {
		h.renderUpdates(w, r, framework, fmt.Sprintf("Question cannot be longer than %d characters", maxQuestionLength), question)
		return
	}

	// The question must reach the team that answers it.
	msg, kind, err := h.questionMessage(framework, user, question)
	if err != nil {
		h.render.AbortError(w, r, err)
		return
	}
	if err := h.mailer.Send(ctx, msg); err != nil {
		h.metrics.ObserveEmailFailed(msg.Tags)
		h.logger.ErrorContext(ctx, "clarification question email failed to send",
			"request_id", requestcontext.RequestID(ctx),
			"framework", framework.Slug,
			"supplier_id", user.SupplierID,
			"email_hash", pkgemail.Hash(user.EmailAddress),
			"error", err,
		)
		h.render.Abort(w, r, http.StatusServiceUnavailable, "Clarification question email failed to send")
		return
	}

	auditType := audit.TypeSendApplicationQuestion
	if framework.ClarificationQuestionsOpen {
		auditType = audit.TypeSendClarificationQuestion
		h.sendQuestionConfirmation(r, framework, question)
	}

	if err := h.audit.Emit(ctx, audit.Event{
		Type:       auditType,
		User:       user.EmailAddress,
		ObjectType: "suppliers",
		ObjectID:   user.SupplierID,
		Data:       map[string]any{"question": question, "framework": framework.Slug},
	}); err != nil {
		h.render.AbortError(w, r, err)
		return
	}
	h.metrics.ObserveClarificationQuestion(framework.Slug, kind)

	h.flash(w, r, "success", "message_sent")
	h.renderUpdates(w, r, framework, "", "")
}

// questionMessage builds the email carrying a supplier's question. While
// clarification questions are open it goes to the clarification inbox;
// afterwards it is a follow-up sent from the supplier's own address.
func (h *Handler) questionMessage(framework *apiclient.Framework, user *domain.CurrentUser, question string) (email.Message, string, error) {
	if framework.ClarificationQuestionsOpen {
		body, err := h.render.RenderEmail("clarification_question.html", web.Data{
			"supplier_name": user.SupplierName,
			"user_name":     user.Name,
			"message":       question,
		})
		if err != nil {
			return email.Message{}, "", err
		}
		return email.Message{
			To:        []string{h.settings.ClarificationQuestionEmail},
			Subject:   fmt.Sprintf("%s clarification question", framework.Name),
			HTML:      body,
			FromEmail: fmt.Sprintf("suppliers+%s@digitalmarketplace.service.gov.uk", framework.Slug),
			FromName:  framework.Name + " Supplier",
			Tags:      []string{"clarification-question"},
		}, "clarification", nil
	}

	body, err := h.render.RenderEmail("follow_up_question.html", web.Data{
		"supplier_name":  user.SupplierName,
		"user_name":      user.Name,
		"framework_name": framework.Name,
		"message":        question,
	})
	if err != nil {
		return email.Message{}, "", err
	}
	return email.Message{
		To:        []string{h.settings.FollowUpEmailTo},
		Subject:   fmt.Sprintf("%s application question", framework.Name),
		HTML:      body,
		FromEmail: user.EmailAddress,
		FromName:  framework.Name + " Supplier",
		Tags:      []string{"application-question"},
	}, "application", nil
}

// sendQuestionConfirmation emails the asker a copy. Failures are logged only.
func (h *Handler) sendQuestionConfirmation(r *http.Request, framework *apiclient.Framework, question string) {
	ctx := r.Context()
	user := requestcontext.User(ctx)

	body, err := h.render.RenderEmail("clarification_question_submitted.html", web.Data{
		"user_name":      user.Name,
		"framework_name": framework.Name,
		"message":        question,
	})
	if err == nil {
		msg := email.Message{
			To:        []string{user.EmailAddress},
			Subject:   h.settings.ClarificationEmail.Subject,
			HTML:      body,
			FromEmail: h.settings.ClarificationEmail.From,
			FromName:  h.settings.ClarificationEmail.Name,
			Tags:      []string{"clarification-question-confirm"},
		}
		if err = h.mailer.Send(ctx, msg); err != nil {
			h.metrics.ObserveEmailFailed(msg.Tags)
		}
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "clarification question confirmation email failed to send",
			"request_id", requestcontext.RequestID(ctx),
			"framework", framework.Slug,
			"supplier_id", user.SupplierID,
			"email_hash", pkgemail.Hash(user.EmailAddress),
			"error", err,
		)
	}
}
