// Copyright (c) 2025-2026 Wind Space
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/windspace/windspace-go/internal/handler"
	"github.com/windspace/windspace-go/internal/store"
	"github.com/windspace/windspace-go/internal/util"
)

// CategoryResponse represents a category in API responses.
type CategoryResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryRequest is the request body for creating or updating a category.
// On update the slug is only re-derived when the caller supplies one;
// renaming alone never rotates the external lookup key.
type CategoryRequest struct {
	Name        string  `json:"name"`
	Slug        *string `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
}

func storeCategoryToResponse(c store.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: util.StringPtrFromNull(c.Description),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ListCategories handles GET /api/categories.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.queries.ListCategories(r.Context())
	if err != nil {
		h.serverError(w, "Failed to fetch categories", err)
		return
	}

	responses := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		responses = append(responses, storeCategoryToResponse(c))
	}

	writeData(w, http.StatusOK, responses)
}

// GetCategory handles GET /api/categories/{slug}.
func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	category, err := h.queries.GetCategoryBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Category not found")
		} else {
			h.serverError(w, "Failed to fetch category", err)
		}
		return
	}

	writeData(w, http.StatusOK, storeCategoryToResponse(category))
}

// CreateCategory handles POST /api/categories. The slug is derived from
// the name server-side.
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	now := time.Now()
	category, err := h.queries.CreateCategory(r.Context(), store.CreateCategoryParams{
		Name:        req.Name,
		Slug:        util.Slugify(req.Name),
		Description: util.NullStringFromPtr(req.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		h.serverError(w, "Failed to create category", err)
		return
	}

	writeData(w, http.StatusCreated, storeCategoryToResponse(category))
}

// UpdateCategory handles PUT /api/categories/{id}.
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := handler.ParseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid category ID")
		return
	}

	existing, err := h.queries.GetCategoryByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Category not found")
		} else {
			h.serverError(w, "Failed to update category", err)
		}
		return
	}

	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	params := store.UpdateCategoryParams{
		ID:          existing.ID,
		Name:        existing.Name,
		Slug:        existing.Slug,
		Description: existing.Description,
		UpdatedAt:   time.Now(),
	}

	if req.Name != "" {
		params.Name = req.Name
	}
	if req.Slug != nil && *req.Slug != "" {
		params.Slug = util.Slugify(*req.Slug)
	}
	if req.Description != nil {
		params.Description = util.NullStringFromValue(*req.Description)
	}

	category, err := h.queries.UpdateCategory(r.Context(), params)
	if err != nil {
		h.serverError(w, "Failed to update category", err)
		return
	}

	writeData(w, http.StatusOK, storeCategoryToResponse(category))
}

// DeleteCategory handles DELETE /api/categories/{id}. Articles in the
// category are kept; their category link is cleared by the schema.
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := handler.ParseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid category ID")
		return
	}

	if err := h.queries.DeleteCategory(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Category not found")
		} else {
			h.serverError(w, "Failed to delete category", err)
		}
		return
	}

	writeMessage(w, "Category deleted successfully")
}
