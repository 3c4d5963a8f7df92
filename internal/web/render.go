// AngelaMos | 2026
// render.go

package web

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carterperez-dev/recraft/internal/core"
	"github.com/carterperez-dev/recraft/internal/middleware"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "templates/layout.html"

type pages struct {
	byName map[string]*template.Template
}

var funcs = template.FuncMap{
	"price": func(d decimal.Decimal) string {
		return d.StringFixed(2)
	},
	"date": func(t time.Time) string {
		return t.Format("Jan 2, 2006")
	},
	"first": func(photos []string) string {
		if len(photos) == 0 {
			return ""
		}
		return photos[0]
	},
	"join": strings.Join,
}

func loadPages() (*pages, error) {
	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	p := &pages{byName: make(map[string]*template.Template, len(files))}
	for _, file := range files {
		if file == layoutFile {
			continue
		}

		t, err := template.New(path.Base(file)).
			Funcs(funcs).
			ParseFS(templateFS, layoutFile, file)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		p.byName[strings.TrimSuffix(path.Base(file), ".html")] = t
	}

	return p, nil
}

type view struct {
	Title     string
	User      *middleware.Identity
	CartCount int
	Error     string
	Data      any
}

func (h *Handler) render(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	page, title string,
	data any,
) {
	h.renderView(w, r, status, page, view{Title: title, Data: data})
}

func (h *Handler) renderView(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	page string,
	v view,
) {
	t, ok := h.pages.byName[page]
	if !ok {
		slog.ErrorContext(r.Context(), "unknown page", "page", page)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	v.User = middleware.GetIdentity(r.Context())
	cart := h.readCart(r)
	v.CartCount = cart.Count()

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", v); err != nil {
		slog.ErrorContext(r.Context(), "render page failed",
			"page", page,
			"error", err,
		)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w) //nolint:errcheck // client disconnects are not actionable
}

// renderError shows business errors with their message and status;
// anything else is logged and shown as a generic 500.
func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := errorView(err)
	if status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "web request failed",
			"path", r.URL.Path,
			"error", err,
		)
	}

	h.renderView(w, r, status, "error", view{Title: "Error", Error: message})
}

func errorView(err error) (int, string) {
	if appErr, ok := core.AsAppError(err); ok {
		return appErr.StatusCode, appErr.Message
	}
	if errors.Is(err, core.ErrNotFound) {
		return http.StatusNotFound, "Page not found"
	}
	return http.StatusInternalServerError, "Something went wrong"
}

// requireSession sends anonymous visitors to the login form and back.
func (h *Handler) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !middleware.IsAuthenticated(r.Context()) {
			target := r.URL.Path
			if r.Method != http.MethodGet {
				target = safeNext(r.Referer())
			}
			http.Redirect(w, r, "/login?next="+url.QueryEscape(target), http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) requireArtisan(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !middleware.GetIdentity(r.Context()).IsArtisan() {
			h.renderError(w, r, core.UnauthorizedError("Not authorized as an artisan"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// safeNext keeps redirects on this site.
func safeNext(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Path == "" || !strings.HasPrefix(u.Path, "/") ||
		strings.HasPrefix(u.Path, "//") {
		return "/"
	}
	if u.RawQuery != "" {
		return u.Path + "?" + u.RawQuery
	}
	return u.Path
}
