package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"supplierfront/internal/email"
	"supplierfront/internal/forms"
	jwttoken "supplierfront/internal/jwt_token"
	"supplierfront/internal/web"
	pkgemail "supplierfront/pkg/email"
	"supplierfront/pkg/requestcontext"
)

func (h *Handler) handleResetPasswordPage(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, r, http.StatusOK, "auth/reset_password.html", web.Data{
		"form":   forms.EmailAddress{},
		"errors": forms.Errors{},
	})
}

// handleSendResetPasswordEmail answers the same way whether or not the
// address has an account.
func (h *Handler) handleSendResetPasswordEmail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		h.render.Abort(w, r, http.StatusBadRequest, "")
		return
	}
	form := forms.ParseEmailAddress(r.PostForm)
	if errs := form.Validate(); !errs.Valid() {
		h.render.Render(w, r, http.StatusBadRequest, "auth/reset_password.html", web.Data{
			"form": form, "errors": errs,
		})
		return
	}

	user, err := h.api.GetUserByEmail(ctx, form.EmailAddress)
	if err != nil {
		h.render.AbortError(w, r, err)
		return
	}
	if user != nil && user.Active {
		token, err := h.tokens.ResetPassword.GenerateResetPasswordToken(user.ID, user.EmailAddress)
		if err != nil {
			h.render.AbortError(w, r, err)
			return
		}
		body, err := h.render.RenderEmail("reset_password.html", web.Data{
			"name": user.Name,
			"url":  h.link(r, "/reset-password/"+token),
		})
		if err != nil {
			h.render.AbortError(w, r, err)
			return
		}
		msg := email.Message{
			To:        []string{user.EmailAddress},
			Subject:   h.settings.ResetPasswordEmail.Subject,
			HTML:      body,
			FromEmail: h.settings.ResetPasswordEmail.From,
			FromName:  h.settings.ResetPasswordEmail.Name,
			Tags:      []string{"password-resets"},
		}
		if err := h.mailer.Send(ctx, msg); err != nil {
			h.metrics.ObserveEmailFailed(msg.Tags)
			h.logger.ErrorContext(ctx, "password reset email failed to send",
				"request_id", requestcontext.RequestID(ctx),
				"email_hash", pkgemail.Hash(user.EmailAddress),
				"error", err,
			)
			h.render.Abort(w, r, http.StatusServiceUnavailable, "Failed to send password reset.")
			return
		}
		h.logger.InfoContext(ctx, "sent password reset email",
			"request_id", requestcontext.RequestID(ctx),
			"email_hash", pkgemail.Hash(user.EmailAddress),
		)
	} else {
		h.logger.InfoContext(ctx, "password reset requested for unknown or inactive user",
			"request_id", requestcontext.RequestID(ctx),
			"email_hash", pkgemail.Hash(form.EmailAddress),
		)
	}

	h.flash(w, r, "success", "password_reset_sent")
	http.Redirect(w, r, "/reset-password", http.StatusFound)
}

func (h *Handler) resetClaims(w http.ResponseWriter, r *http.Request) (*jwttoken.ResetPasswordClaims, bool) {
	claims, err := h.tokens.ResetPassword.ValidateResetPasswordToken(chi.URLParam(r, "token"))
	if err != nil {
		h.logger.InfoContext(r.Context(), "invalid reset password token",
			"request_id", requestcontext.RequestID(r.Context()),
			"expired", jwttoken.IsExpired(err),
		)
		h.flash(w, r, "error", "token_invalid")
		http.Redirect(w, r, "/reset-password", http.StatusFound)
		return nil, false
	}
	return claims, true
}

func (h *Handler) handleChangePasswordPage(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.resetClaims(w, r)
	if !ok {
		return
	}
	h.render.Render(w, r, http.StatusOK, "auth/change_password.html", web.Data{
		"email_address": claims.EmailAddress,
		"token":         chi.URLParam(r, "token"),
		"errors":        forms.Errors{},
	})
}

func (h *Handler) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	claims, ok := h.resetClaims(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.render.Abort(w, r, http.StatusBadRequest, "")
		return
	}
	form := forms.ParseChangePassword(r.PostForm)
	if errs := form.Validate(); !errs.Valid() {
		h.render.Render(w, r, http.StatusBadRequest, "auth/change_password.html", web.Data{
			"email_address": claims.EmailAddress,
			"token":         chi.URLParam(r, "token"),
			"errors":        errs,
		})
		return
	}

	if err := h.api.UpdateUserPassword(ctx, claims.UserID, form.Password, claims.EmailAddress); err != nil {
		h.render.AbortError(w, r, err)
		return
	}
	h.logger.InfoContext(ctx, "password updated",
		"request_id", requestcontext.RequestID(ctx),
		"user_id", claims.UserID,
	)
	h.flash(w, r, "success", "password_updated")
	http.Redirect(w, r, "/login", http.StatusFound)
}
