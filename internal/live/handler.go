package live

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"slices"

	"github.com/gorilla/websocket"

	"oakwood-site/internal/content"
)

// Handler upgrades browser connections into carousel sessions.
type Handler struct {
	registry *Registry
	upgrader websocket.Upgrader
	log      *slog.Logger
}

// NewHandler returns a Handler. allowedOrigins lists the origins permitted
// to connect; "*" allows any, and an empty list allows only same-host requests.
func NewHandler(reg *Registry, allowedOrigins []string, log *slog.Logger) *Handler {
	h := &Handler{registry: reg, log: log}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}
	return h
}

func originChecker(allowed []string) func(*http.Request) bool {
	if slices.Contains(allowed, "*") {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if slices.Contains(allowed, origin) {
			return true
		}
		u, err := url.Parse(origin)
		return err == nil && u.Host == r.Host
	}
}

// ServeWS handles GET /ws/carousel?page=home or ?page=service&slug=<slug>.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	key := PageKey{Page: r.URL.Query().Get("page"), Slug: r.URL.Query().Get("slug")}
	switch {
	case key.Page == content.PageHome:
		key.Slug = ""
	case key.Page == content.PageService && key.Slug != "":
	default:
		http.Error(w, "page must be home, or service with a slug", http.StatusBadRequest)
		return
	}

	clips, err := h.registry.clips.Clips(r.Context(), key.Page, key.Slug)
	switch {
	case errors.Is(err, content.ErrNotFound):
		http.Error(w, "page not found", http.StatusNotFound)
		return
	case err != nil:
		h.log.Error("error loading carousel clips", slog.String("page", key.String()), slog.String("error", err.Error()))
		http.Error(w, "failed to load clips", http.StatusInternalServerError)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Debug("carousel upgrade failed", slog.String("error", err.Error()))
		return
	}
	h.registry.Serve(conn, key, clips)
}
