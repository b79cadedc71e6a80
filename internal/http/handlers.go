package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"news-map/internal/presentation"
	"news-map/internal/services/news"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// Enricher runs the enrichment pipeline for a category.
type Enricher interface {
	Enrich(ctx context.Context, category string) (*news.Result, error)
}

// NewsHandler handles the news endpoints and the map page.
type NewsHandler struct {
	service Enricher
	page    *presentation.MapPage
}

// NewNewsHandler creates a new NewsHandler
func NewNewsHandler(service Enricher, page *presentation.MapPage) *NewsHandler {
	return &NewsHandler{service: service, page: page}
}

// RegisterRoutes registers all news routes
func (h *NewsHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/news", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/report", h.Report)
	})
	r.Get("/map", h.Map)
}

// List returns the enriched articles as a bare JSON array. The number of
// dropped articles goes in the X-Articles-Skipped header.
func (h *NewsHandler) List(w http.ResponseWriter, r *http.Request) {
	result, ok := h.enrich(w, r)
	if !ok {
		return
	}

	w.Header().Set("X-Articles-Skipped", strconv.Itoa(len(result.Skipped)))
	writeJSON(w, http.StatusOK, result.Articles)
}

// Report returns the enriched articles together with the skipped ones.
func (h *NewsHandler) Report(w http.ResponseWriter, r *http.Request) {
	result, ok := h.enrich(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Map renders the map page. A pipeline failure still renders the page, with
// the error shown above an empty list.
func (h *NewsHandler) Map(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	result, err := h.service.Enrich(r.Context(), category)
	errMsg := ""
	status := http.StatusOK
	if err != nil {
		log.Error().Err(err).Str("category", category).Msg("Failed to enrich news for map")
		errMsg = err.Error()
		status = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.page.Render(w, category, result, errMsg); err != nil {
		log.Error().Err(err).Msg("Failed to render map page")
	}
}

func (h *NewsHandler) enrich(w http.ResponseWriter, r *http.Request) (*news.Result, bool) {
	category := r.URL.Query().Get("category")

	result, err := h.service.Enrich(r.Context(), category)
	if err != nil {
		log.Error().Err(err).Str("category", category).Msg("Failed to enrich news")
		writeJSON(w, http.StatusInternalServerError, news.NewErrorResponse(err.Error()))
		return nil, false
	}
	return result, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}
