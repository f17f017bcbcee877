package auth

import (
	"net/http"

	"supplierfront/internal/apiclient"
	"supplierfront/internal/forms"
	"supplierfront/internal/web"
	"supplierfront/pkg/domain"
	pkgemail "supplierfront/pkg/email"
	"supplierfront/pkg/requestcontext"
)

const loginFailedMessage = "Make sure you've entered the right email address and password. " +
	"Accounts are locked after 10 failed attempts."

func (h *Handler) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	next := r.URL.Query().Get("next")
	if user := requestcontext.User(r.Context()); user.IsSupplier() {
		http.Redirect(w, r, web.SafeNext(next, "/suppliers"), http.StatusFound)
		return
	}
	h.render.Render(w, r, http.StatusOK, "auth/login.html", web.Data{
		"form":   forms.Login{},
		"errors": forms.Errors{},
		"next":   next,
	})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		h.render.Abort(w, r, http.StatusBadRequest, "")
		return
	}
	next := r.URL.Query().Get("next")
	form := forms.ParseLogin(r.PostForm)
	if errs := form.Validate(); !errs.Valid() {
		h.render.Render(w, r, http.StatusBadRequest, "auth/login.html", web.Data{
			"form": form, "errors": errs, "next": next,
		})
		return
	}

	user, err := h.api.AuthenticateUser(ctx, form.EmailAddress, form.Password)
	if err != nil {
		h.render.AbortError(w, r, err)
		return
	}
	if user == nil || user.Role != string(domain.RoleSupplier) || user.Supplier == nil {
		h.metrics.ObserveLogin("failure")
		h.logger.InfoContext(ctx, "login failed",
			"request_id", requestcontext.RequestID(ctx),
			"email_hash", pkgemail.Hash(form.EmailAddress),
		)
		h.render.Render(w, r, http.StatusForbidden, "auth/login.html", web.Data{
			"form":   forms.Login{EmailAddress: form.EmailAddress},
			"errors": forms.Errors{},
			"next":   next,
			"error":  loginFailedMessage,
		})
		return
	}

	if err := h.sessions.Login(w, r, currentUser(user)); err != nil {
		h.render.AbortError(w, r, err)
		return
	}
	h.metrics.ObserveLogin("success")
	h.logger.InfoContext(ctx, "logged in",
		"request_id", requestcontext.RequestID(ctx),
		"user_id", user.ID,
		"supplier_id", user.Supplier.SupplierID,
	)
	http.Redirect(w, r, web.SafeNext(next, "/suppliers"), http.StatusFound)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(w, r); err != nil {
		h.logger.WarnContext(r.Context(), "logout failed", "error", err)
	}
	http.Redirect(w, r, "/login", http.StatusFound)
}

func currentUser(u *apiclient.User) *domain.CurrentUser {
	cu := &domain.CurrentUser{
		ID:           u.ID,
		EmailAddress: u.EmailAddress,
		Name:         u.Name,
		Role:         domain.Role(u.Role),
	}
	if u.Supplier != nil {
		cu.SupplierID = u.Supplier.SupplierID
		cu.SupplierName = u.Supplier.Name
	}
	return cu
}
