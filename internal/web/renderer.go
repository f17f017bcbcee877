// Package web renders the server-side HTML pages and email bodies.
package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"maps"
	"net/http"
	"path"
	"strings"

	"supplierfront/internal/apiclient"
	"supplierfront/internal/session"
	dErrors "supplierfront/pkg/domain-errors"
	"supplierfront/pkg/requestcontext"
)

const (
	layoutTemplate = "layout.html"
	errorTemplate  = "errors.html"
	emailDir       = "emails"
)

// Data is the template context for one page.
type Data map[string]any

// FlashSource hands out the flash messages queued for this request.
type FlashSource interface {
	PopFlashes(w http.ResponseWriter, r *http.Request) []session.Flash
}

// Renderer parses every page once at start-up. Each page is its own template
// set of layout.html plus the page file, so pages can each define "content".
type Renderer struct {
	pages   map[string]*template.Template
	emails  map[string]*template.Template
	base    map[string]any
	flashes FlashSource
	logger  *slog.Logger
}

// NewRenderer parses the templates under fsys. base is merged into the data
// of every page.
func NewRenderer(fsys fs.FS, base map[string]any, flashes FlashSource, logger *slog.Logger) (*Renderer, error) {
	r := &Renderer{
		pages:   make(map[string]*template.Template),
		emails:  make(map[string]*template.Template),
		base:    base,
		flashes: flashes,
		logger:  logger,
	}

	err := fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(name) != ".html" || name == layoutTemplate {
			return nil
		}
		if strings.HasPrefix(name, emailDir+"/") {
			tmpl, err := template.New(path.Base(name)).Funcs(Funcs()).ParseFS(fsys, name)
			if err != nil {
				return fmt.Errorf("parse email template %s: %w", name, err)
			}
			r.emails[strings.TrimPrefix(name, emailDir+"/")] = tmpl
			return nil
		}
		tmpl, err := template.New(layoutTemplate).Funcs(Funcs()).ParseFS(fsys, layoutTemplate, name)
		if err != nil {
			return fmt.Errorf("parse template %s: %w", name, err)
		}
		r.pages[name] = tmpl
		return nil
	})
	if err != nil {
		return nil, err
	}
	if _, ok := r.pages[errorTemplate]; !ok {
		return nil, fmt.Errorf("missing %s", errorTemplate)
	}
	return r, nil
}

// Render writes the named page with status. Flashes are consumed here, so a
// page rendered after a redirect shows them exactly once.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, status int, name string, data Data) {
	tmpl, ok := r.pages[name]
	if !ok {
		r.logger.ErrorContext(req.Context(), "unknown template", "template", name)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	page := make(map[string]any, len(r.base)+len(data)+2)
	maps.Copy(page, r.base)
	maps.Copy(page, data)
	page["current_user"] = requestcontext.User(req.Context())
	if r.flashes != nil {
		page["flashes"] = r.flashes.PopFlashes(w, req)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, layoutTemplate, page); err != nil {
		r.logger.ErrorContext(req.Context(), "render failed", "template", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// RenderEmail executes an email body template.
func (r *Renderer) RenderEmail(name string, data Data) (string, error) {
	tmpl, ok := r.emails[name]
	if !ok {
		return "", fmt.Errorf("unknown email template %q", name)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render email %s: %w", name, err)
	}
	return buf.String(), nil
}

// Abort renders the error page with status.
func (r *Renderer) Abort(w http.ResponseWriter, req *http.Request, status int, message string) {
	if message == "" {
		message = http.StatusText(status)
	}
	r.Render(w, req, status, errorTemplate, Data{
		"status":  status,
		"message": message,
	})
}

// AbortError renders the error page for err. Data API errors keep the API's
// status; coded domain errors use their code; anything else is a 500.
func (r *Renderer) AbortError(w http.ResponseWriter, req *http.Request, err error) {
	status, message := StatusFor(err)
	if status >= http.StatusInternalServerError {
		r.logger.ErrorContext(req.Context(), "request failed",
			"request_id", requestcontext.RequestID(req.Context()),
			"status", status,
			"error", err,
		)
	}
	r.Abort(w, req, status, message)
}

// StatusFor picks the response status and user-facing message for err.
func StatusFor(err error) (int, string) {
	if errors.Is(err, context.Canceled) {
		return http.StatusServiceUnavailable, ""
	}
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode, ""
	}
	var de *dErrors.Error
	if errors.As(err, &de) {
		status := dErrors.ToHTTPStatus(de.Code)
		if status >= http.StatusInternalServerError {
			return status, ""
		}
		return status, de.Message
	}
	return http.StatusInternalServerError, ""
}
