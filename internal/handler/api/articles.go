// Copyright (c) 2025-2026 Wind Space
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/windspace/windspace-go/internal/handler"
	"github.com/windspace/windspace-go/internal/render"
	"github.com/windspace/windspace-go/internal/service"
	"github.com/windspace/windspace-go/internal/store"
	"github.com/windspace/windspace-go/internal/util"
)

// Author defaults substituted when the request leaves the fields blank.
const (
	DefaultAuthorName   = "Wind Space Team"
	DefaultAuthorAvatar = "/placeholder.svg"
)

// ArticleResponse represents an article in API responses. ContentHTML is
// only populated on detail responses.
type ArticleResponse struct {
	ID            int64             `json:"id"`
	Title         string            `json:"title"`
	Slug          string            `json:"slug"`
	Content       string            `json:"content"`
	ContentHTML   string            `json:"content_html,omitempty"`
	Excerpt       *string           `json:"excerpt"`
	FeaturedImage *string           `json:"featured_image"`
	Published     bool              `json:"published"`
	CategoryID    *int64            `json:"category_id"`
	AuthorName    string            `json:"author_name"`
	AuthorAvatar  string            `json:"author_avatar"`
	Tags          []string          `json:"tags"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	Category      *CategoryResponse `json:"category,omitempty"`
}

// CreateArticleRequest is the request body for creating an article.
type CreateArticleRequest struct {
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Excerpt       *string  `json:"excerpt,omitempty"`
	FeaturedImage *string  `json:"featured_image,omitempty"`
	Published     *bool    `json:"published,omitempty"`
	CategoryID    *int64   `json:"category_id,omitempty"`
	AuthorName    *string  `json:"author_name,omitempty"`
	AuthorAvatar  *string  `json:"author_avatar,omitempty"`
	Tags          []string `json:"tags,omitempty"`
}

// UpdateArticleRequest is the request body for a partial article update.
// Nil fields leave the stored value unchanged; the slug is only
// re-derived when the caller supplies one.
type UpdateArticleRequest struct {
	Title         *string   `json:"title,omitempty"`
	Slug          *string   `json:"slug,omitempty"`
	Content       *string   `json:"content,omitempty"`
	Excerpt       *string   `json:"excerpt,omitempty"`
	FeaturedImage *string   `json:"featured_image,omitempty"`
	Published     *bool     `json:"published,omitempty"`
	CategoryID    *int64    `json:"category_id,omitempty"`
	AuthorName    *string   `json:"author_name,omitempty"`
	AuthorAvatar  *string   `json:"author_avatar,omitempty"`
	Tags          *[]string `json:"tags,omitempty"`
}

// storeArticleToResponse converts a store row to the API shape.
func storeArticleToResponse(a store.Article) ArticleResponse {
	resp := ArticleResponse{
		ID:            a.ID,
		Title:         a.Title,
		Slug:          a.Slug,
		Content:       a.Content,
		Excerpt:       util.StringPtrFromNull(a.Excerpt),
		FeaturedImage: util.StringPtrFromNull(a.FeaturedImage),
		Published:     a.Published,
		AuthorName:    a.AuthorName,
		AuthorAvatar:  a.AuthorAvatar,
		Tags:          a.Tags,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}

	if a.CategoryID.Valid {
		resp.CategoryID = &a.CategoryID.Int64
	}
	if a.Category != nil {
		c := storeCategoryToResponse(*a.Category)
		resp.Category = &c
	}

	return resp
}

// ListArticles handles GET /api/articles.
func (h *Handler) ListArticles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := service.ListFilter{
		CategorySlug: q.Get("category"),
		// published defaults to true; only an explicit "false" widens
		// the set to include drafts
		PublishedOnly: q.Get("published") != "false",
		Search:        q.Get("search"),
		Limit:         handler.ParseLimitParam(r),
		Offset:        handler.ParseOffsetParam(r),
	}

	articles, pagination, meta, err := h.articles.List(r.Context(), filter)
	if err != nil {
		h.serverError(w, "Failed to fetch articles", err)
		return
	}

	responses := make([]ArticleResponse, 0, len(articles))
	for _, a := range articles {
		responses = append(responses, storeArticleToResponse(a))
	}

	writeJSON(w, http.StatusOK, ListResponse{
		Data:       responses,
		Pagination: pagination,
		Meta:       meta,
	})
}

// GetArticle handles GET /api/articles/{slug}.
func (h *Handler) GetArticle(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	article, err := h.queries.GetArticleBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Article not found")
		} else {
			h.serverError(w, "Failed to fetch article", err)
		}
		return
	}

	resp := storeArticleToResponse(article)
	if html, err := render.ArticleHTML(article.Content); err == nil {
		resp.ContentHTML = html
	} else {
		slog.Warn("rendering article content", "slug", slug, "error", err)
	}

	writeData(w, http.StatusOK, resp)
}

// CreateArticle handles POST /api/articles. The slug is derived from the
// title server-side; timestamps are never taken from the client.
func (h *Handler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	var req CreateArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if req.Title == "" || req.Content == "" {
		writeError(w, http.StatusBadRequest, "Title and content are required")
		return
	}

	now := time.Now()
	params := store.CreateArticleParams{
		Title:         req.Title,
		Slug:          util.Slugify(req.Title),
		Content:       req.Content,
		Excerpt:       util.NullStringFromPtr(req.Excerpt),
		FeaturedImage: util.NullStringFromPtr(req.FeaturedImage),
		CategoryID:    util.NullInt64FromPtr(req.CategoryID),
		AuthorName:    DefaultAuthorName,
		AuthorAvatar:  DefaultAuthorAvatar,
		Tags:          req.Tags,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if req.Published != nil {
		params.Published = *req.Published
	}
	if req.AuthorName != nil && *req.AuthorName != "" {
		params.AuthorName = *req.AuthorName
	}
	if req.AuthorAvatar != nil && *req.AuthorAvatar != "" {
		params.AuthorAvatar = *req.AuthorAvatar
	}

	article, err := h.queries.CreateArticle(r.Context(), params)
	if err != nil {
		h.serverError(w, "Failed to create article", err)
		return
	}

	writeData(w, http.StatusCreated, storeArticleToResponse(article))
}

// UpdateArticle handles PUT /api/articles/{id}. Partial fields are merged
// into the existing row; last writer wins on concurrent edits.
func (h *Handler) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	id, err := handler.ParseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid article ID")
		return
	}

	existing, err := h.queries.GetArticleByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Article not found")
		} else {
			h.serverError(w, "Failed to update article", err)
		}
		return
	}

	var req UpdateArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	params := store.UpdateArticleParams{
		ID:            existing.ID,
		Title:         existing.Title,
		Slug:          existing.Slug,
		Content:       existing.Content,
		Excerpt:       existing.Excerpt,
		FeaturedImage: existing.FeaturedImage,
		Published:     existing.Published,
		CategoryID:    existing.CategoryID,
		AuthorName:    existing.AuthorName,
		AuthorAvatar:  existing.AuthorAvatar,
		Tags:          existing.Tags,
		UpdatedAt:     time.Now(),
	}

	if req.Title != nil && *req.Title != "" {
		params.Title = *req.Title
	}
	if req.Slug != nil && *req.Slug != "" {
		params.Slug = util.Slugify(*req.Slug)
	}
	if req.Content != nil && *req.Content != "" {
		params.Content = *req.Content
	}
	if req.Excerpt != nil {
		params.Excerpt = util.NullStringFromValue(*req.Excerpt)
	}
	if req.FeaturedImage != nil {
		params.FeaturedImage = util.NullStringFromValue(*req.FeaturedImage)
	}
	if req.Published != nil {
		params.Published = *req.Published
	}
	if req.CategoryID != nil {
		if *req.CategoryID == 0 {
			params.CategoryID = util.NullInt64FromPtr(nil)
		} else {
			params.CategoryID = util.NullInt64FromPtr(req.CategoryID)
		}
	}
	if req.AuthorName != nil && *req.AuthorName != "" {
		params.AuthorName = *req.AuthorName
	}
	if req.AuthorAvatar != nil && *req.AuthorAvatar != "" {
		params.AuthorAvatar = *req.AuthorAvatar
	}
	if req.Tags != nil {
		params.Tags = *req.Tags
	}

	article, err := h.queries.UpdateArticle(r.Context(), params)
	if err != nil {
		h.serverError(w, "Failed to update article", err)
		return
	}

	writeData(w, http.StatusOK, storeArticleToResponse(article))
}

// DeleteArticle handles DELETE /api/articles/{id}. The delete is hard;
// there is no tombstone to restore from.
func (h *Handler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	id, err := handler.ParseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid article ID")
		return
	}

	if err := h.queries.DeleteArticle(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Article not found")
		} else {
			h.serverError(w, "Failed to delete article", err)
		}
		return
	}

	writeMessage(w, "Article deleted successfully")
}
