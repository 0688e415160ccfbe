package site

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"oakwood-site/internal/content"
)

// Content is what the page handlers read.
type Content interface {
	Home(ctx context.Context) (*content.HomeContent, error)
	Navbar(ctx context.Context) *content.NavbarContent
	Footer(ctx context.Context) *content.FooterSection
	Service(ctx context.Context, slug string) (*content.ServiceContent, error)
}

// Handler serves the site's HTML pages.
type Handler struct {
	content  Content
	brand    Brand
	log      *slog.Logger
}

// NewHandler returns a page Handler.
func NewHandler(c Content, brand Brand, log *slog.Logger) *Handler {
	return &Handler{content: c, brand: brand, log: log}
}

// Routes mounts the page routes on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.Home)
	r.Get("/services", h.ServicesIndex)
	r.Get("/services/{slug}", h.Service)
	r.NotFound(h.NotFound)
}

func (h *Handler) chrome(r *http.Request) Chrome {
	return Chrome{
		Brand:      h.brand,
		Navbar:     h.content.Navbar(r.Context()),
		Footer:     h.content.Footer(r.Context()),
		Catalog:    content.MicrosoftServices,
		ActivePath: r.URL.Path,
	}
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, meta Meta, body templ.Component) {
	templ.Handler(Layout(meta, h.chrome(r), body), templ.WithStatus(status)).ServeHTTP(w, r)
}

// Home handles GET /. A content failure still renders the page chrome.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	home, err := h.content.Home(r.Context())
	if err != nil {
		h.log.Error("error loading home content", slog.String("error", err.Error()))
		home = nil
	}
	h.render(w, r, http.StatusOK, HomeMeta(h.brand, home), HomePage(home))
}

// ServicesIndex handles GET /services by redirecting to the first catalog service.
func (h *Handler) ServicesIndex(w http.ResponseWriter, r *http.Request) {
	if len(content.MicrosoftServices) == 0 {
		h.NotFound(w, r)
		return
	}
	http.Redirect(w, r, content.MicrosoftServices[0].Link, http.StatusFound)
}

// Service handles GET /services/{slug}.
func (h *Handler) Service(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	svc, err := h.content.Service(r.Context(), slug)
	switch {
	case errors.Is(err, content.ErrNotFound):
		h.log.Info("service not found", slog.String("slug", slug))
		h.renderError(w, r, http.StatusNotFound, fmt.Sprintf("Service %q not found", slug))
		return
	case err != nil:
		h.log.Error("error loading services content", slog.String("slug", slug), slog.String("error", err.Error()))
		h.renderError(w, r, http.StatusInternalServerError, "Failed to load service content")
		return
	}

	h.render(w, r, http.StatusOK, ServiceMeta(h.brand, svc), ServicePage(svc))
}

// NotFound renders the 404 page inside the site chrome.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.renderError(w, r, http.StatusNotFound, "Page not found")
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.render(w, r, status, ErrorMeta(h.brand, http.StatusText(status)), ErrorPage(status, message))
}
