package proxy

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
)

// CacheControl is sent with successful home content responses.
const CacheControl = "public, max-age=3600, stale-while-revalidate=86400"

// Source is what the handler needs from a Fetcher.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// Handler serves the upstream home content document to browsers.
type Handler struct {
	src Source
	log *slog.Logger
}

// NewHandler returns a Handler reading from src.
func NewHandler(src Source, log *slog.Logger) *Handler {
	return &Handler{src: src, log: log}
}

// HomeContent handles GET /api/home-content.
func (h *Handler) HomeContent(w http.ResponseWriter, r *http.Request) {
	body, err := h.src.Fetch(r.Context())
	if err != nil {
		h.log.Error("home content proxy failed", slog.String("error", err.Error()))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "Failed to fetch external content"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", CacheControl)
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
