// Copyright (c) 2025-2026 Wind Space
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the REST handlers for articles, categories and
// tags, serialized in the stable envelope the public client depends on.
package api

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/windspace/windspace-go/internal/service"
	"github.com/windspace/windspace-go/internal/store"
	"github.com/windspace/windspace-go/internal/version"
)

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	queries  *store.Queries
	articles *service.ArticleService
	isDev    bool
}

// NewHandler creates a new API handler. In development mode error
// responses carry the underlying error text instead of a generic message.
func NewHandler(db *sql.DB, isDev bool) *Handler {
	return &Handler{
		queries:  store.New(db),
		articles: service.NewArticleService(db),
		isDev:    isDev,
	}
}

// ListResponse is the envelope for paginated list responses. Both the
// page-oriented pagination block and the offset-oriented meta block are
// preserved exactly; existing clients read different halves.
type ListResponse struct {
	Data       any                `json:"data"`
	Pagination service.Pagination `json:"pagination"`
	Meta       service.Meta       `json:"meta"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// writeData writes a single-item response: {"data": ...}.
func writeData(w http.ResponseWriter, statusCode int, data any) {
	writeJSON(w, statusCode, map[string]any{"data": data})
}

// writeMessage writes a message-only response: {"message": ...}.
func writeMessage(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, map[string]string{"message": message})
}

// writeError writes an error response: {"error": ...}.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// serverError writes a 500. Production gets the generic message, the
// underlying error text is only exposed in development mode.
func (h *Handler) serverError(w http.ResponseWriter, generic string, err error) {
	slog.Error(generic, "error", err)

	message := generic
	if h.isDev && err != nil {
		message = err.Error()
	}
	writeError(w, http.StatusInternalServerError, message)
}

// Index handles GET /api - the self-describing endpoint map.
func (h *Handler) Index(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Wind Space API",
		"version": version.APIVersion,
		"endpoints": map[string]any{
			"articles": map[string]string{
				"GET /api/articles":         "Get all articles",
				"GET /api/articles/{slug}":  "Get article by slug",
				"POST /api/articles":        "Create new article",
				"PUT /api/articles/{id}":    "Update article",
				"DELETE /api/articles/{id}": "Delete article",
			},
			"categories": map[string]string{
				"GET /api/categories":         "Get all categories",
				"GET /api/categories/{slug}":  "Get category by slug",
				"POST /api/categories":        "Create new category",
				"PUT /api/categories/{id}":    "Update category",
				"DELETE /api/categories/{id}": "Delete category",
			},
			"tags": map[string]string{
				"GET /api/tags": "Get tags with article counts",
			},
		},
	})
}

// Root handles GET / - the root index response.
func (h *Handler) Root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Wind Space Blog API",
		"version": version.APIVersion,
		"endpoints": map[string]string{
			"health":     "/health",
			"api":        "/api",
			"articles":   "/api/articles",
			"categories": "/api/categories",
		},
	})
}
