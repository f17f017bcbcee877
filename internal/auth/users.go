package auth

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"supplierfront/internal/apiclient"
	"supplierfront/internal/audit"
	"supplierfront/internal/email"
	"supplierfront/internal/forms"
	jwttoken "supplierfront/internal/jwt_token"
	"supplierfront/internal/web"
	"supplierfront/pkg/domain"
	pkgemail "supplierfront/pkg/email"
	"supplierfront/pkg/requestcontext"
)

func (h *Handler) handleInviteUserPage(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, r, http.StatusOK, "auth/invite_user.html", web.Data{
		"form":   forms.EmailAddress{},
		"errors": forms.Errors{},
	})
}

func (h *Handler) handleInviteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := requestcontext.User(ctx)
	if err := r.ParseForm(); err != nil {
		h.render.Abort(w, r, http.StatusBadRequest, "")
		return
	}
	form := forms.ParseEmailAddress(r.PostForm)
	if errs := form.Validate(); !errs.Valid() {
		h.render.Render(w, r, http.StatusBadRequest, "auth/invite_user.html", web.Data{
			"form": form, "errors": errs,
		})
		return
	}

	token, err := h.tokens.Invite.GenerateInviteToken(user.SupplierID, user.SupplierName, form.EmailAddress)
	if err != nil {
		h.render.AbortError(w, r, err)
		return
	}
	body, err := h.render.RenderEmail("invite_user.html", web.Data{
		"name":          user.Name,
		"supplier_name": user.SupplierName,
		"url":           h.link(r, "/create-user/"+token),
	})
	if err != nil {
		h.render.AbortError(w, r, err)
		return
	}
	msg := email.Message{
		To:        []string{form.EmailAddress},
		Subject:   h.settings.InviteEmail.Subject,
		HTML:      body,
		FromEmail: h.settings.InviteEmail.From,
		FromName:  h.settings.InviteEmail.Name,
		Tags:      []string{"user-invite"},
	}
	if err := h.mailer.Send(ctx, msg); err != nil {
		h.metrics.ObserveEmailFailed(msg.Tags)
		h.logger.ErrorContext(ctx, "invitation email failed to send",
			"request_id", requestcontext.RequestID(ctx),
			"supplier_id", user.SupplierID,
			"email_hash", pkgemail.Hash(form.EmailAddress),
			"error", err,
		)
		h.render.Abort(w, r, http.StatusServiceUnavailable, "Failed to send user invite.")
		return
	}

	if err := h.audit.Emit(ctx, audit.Event{
		Type:       audit.TypeInviteUser,
		User:       user.EmailAddress,
		ObjectType: "suppliers",
		ObjectID:   user.SupplierID,
		Data:       map[string]any{"invitedEmail": form.EmailAddress},
	}); err != nil {
		h.render.AbortError(w, r, err)
		return
	}

	h.flash(w, r, "success", "user_invited")
	http.Redirect(w, r, "/suppliers", http.StatusFound)
}

func (h *Handler) inviteClaims(w http.ResponseWriter, r *http.Request) (*jwttoken.InviteClaims, bool) {
	claims, err := h.tokens.Invite.ValidateInviteToken(chi.URLParam(r, "token"))
	if err != nil {
		h.logger.InfoContext(r.Context(), "invalid invitation token",
			"request_id", requestcontext.RequestID(r.Context()),
			"expired", jwttoken.IsExpired(err),
		)
		h.render.Abort(w, r, http.StatusBadRequest, "The link you used to create an account is not valid. Check you’ve entered the correct link or ask the person who invited you to send a new invitation.")
		return nil, false
	}
	return claims, true
}

func (h *Handler) handleCreateUserPage(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.inviteClaims(w, r)
	if !ok {
		return
	}
	existing, err := h.api.GetUserByEmail(r.Context(), claims.EmailAddress)
	if err != nil {
		h.render.AbortError(w, r, err)
		return
	}
	if existing != nil {
		h.render.Render(w, r, http.StatusBadRequest, "auth/create_user_exists.html", web.Data{
			"email_address": claims.EmailAddress,
		})
		return
	}
	h.render.Render(w, r, http.StatusOK, "auth/create_user.html", web.Data{
		"form":          forms.CreateUser{Name: pkgemail.DisplayName(claims.EmailAddress)},
		"errors":        forms.Errors{},
		"email_address": claims.EmailAddress,
		"supplier_name": claims.SupplierName,
		"token":         chi.URLParam(r, "token"),
	})
}

func (h *Handler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	claims, ok := h.inviteClaims(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.render.Abort(w, r, http.StatusBadRequest, "")
		return
	}
	form := forms.ParseCreateUser(r.PostForm)
	if errs := form.Validate(); !errs.Valid() {
		h.render.Render(w, r, http.StatusBadRequest, "auth/create_user.html", web.Data{
			"form":          form,
			"errors":        errs,
			"email_address": claims.EmailAddress,
			"supplier_name": claims.SupplierName,
			"token":         chi.URLParam(r, "token"),
		})
		return
	}

	created, err := h.api.CreateUser(ctx, apiclient.NewUser{
		Role:         string(domain.RoleSupplier),
		SupplierID:   claims.SupplierID,
		Name:         form.Name,
		Password:     form.Password,
		EmailAddress: claims.EmailAddress,
	})
	if err != nil {
		var apiErr *apiclient.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict {
			h.render.Render(w, r, http.StatusBadRequest, "auth/create_user_exists.html", web.Data{
				"email_address": claims.EmailAddress,
			})
			return
		}
		h.render.AbortError(w, r, err)
		return
	}

	if err := h.sessions.Login(w, r, currentUser(created)); err != nil {
		h.render.AbortError(w, r, err)
		return
	}
	h.logger.InfoContext(ctx, "user created from invitation",
		"request_id", requestcontext.RequestID(ctx),
		"user_id", created.ID,
		"supplier_id", claims.SupplierID,
	)
	http.Redirect(w, r, "/suppliers", http.StatusFound)
}
