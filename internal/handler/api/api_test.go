// Copyright (c) 2025-2026 Wind Space
// SPDX-License-Identifier: GPL-3.0-or-later

package api_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/windspace/windspace-go/internal/handler/api"
	"github.com/windspace/windspace-go/internal/service"
	"github.com/windspace/windspace-go/internal/store"
	"github.com/windspace/windspace-go/internal/testutil"
)

// newTestRouter mounts the API routes the way the server does.
func newTestRouter(t *testing.T) (chi.Router, *sql.DB) {
	t.Helper()

	slog.SetDefault(testutil.TestLogger())

	db := testutil.TestDB(t)
	h := api.NewHandler(db, false)

	r := chi.NewRouter()
	r.Get("/", h.Root)
	r.Route("/api", func(r chi.Router) {
		r.Get("/", h.Index)
		r.Route("/articles", func(r chi.Router) {
			r.Get("/", h.ListArticles)
			r.Post("/", h.CreateArticle)
			r.Get("/{slug}", h.GetArticle)
			r.Put("/{id}", h.UpdateArticle)
			r.Delete("/{id}", h.DeleteArticle)
		})
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", h.ListCategories)
			r.Post("/", h.CreateCategory)
			r.Get("/{slug}", h.GetCategory)
			r.Put("/{id}", h.UpdateCategory)
			r.Delete("/{id}", h.DeleteCategory)
		})
		r.Get("/tags", h.ListTags)
	})

	return r, db
}

func doJSON(t *testing.T, r chi.Router, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling body: %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
}

func seedArticle(t *testing.T, db *sql.DB, title, slug string, published bool, categoryID sql.NullInt64, tags []string, createdAt time.Time) store.Article {
	t.Helper()

	a, err := store.New(db).CreateArticle(context.Background(), store.CreateArticleParams{
		Title:        title,
		Slug:         slug,
		Content:      "Body of " + title,
		Published:    published,
		CategoryID:   categoryID,
		AuthorName:   "Wind Space Team",
		AuthorAvatar: "/placeholder.svg",
		Tags:         tags,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	})
	if err != nil {
		t.Fatalf("seeding article %q: %v", slug, err)
	}
	return a
}

func seedCategory(t *testing.T, db *sql.DB, name, slug string) store.Category {
	t.Helper()

	now := time.Now()
	c, err := store.New(db).CreateCategory(context.Background(), store.CreateCategoryParams{
		Name:      name,
		Slug:      slug,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("seeding category %q: %v", slug, err)
	}
	return c
}

// listEnvelope mirrors the list response for decoding in tests.
type listEnvelope struct {
	Data       []api.ArticleResponse `json:"data"`
	Pagination service.Pagination    `json:"pagination"`
	Meta       service.Meta          `json:"meta"`
}

func TestCreateArticleValidation(t *testing.T) {
	r, _ := newTestRouter(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing title", map[string]any{"content": "text"}},
		{"missing content", map[string]any{"title": "Hello"}},
		{"both empty", map[string]any{"title": "", "content": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, r, http.MethodPost, "/api/articles", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}

			var body map[string]string
			decodeBody(t, rec, &body)
			if body["error"] != "Title and content are required" {
				t.Errorf("error = %q, want %q", body["error"], "Title and content are required")
			}
		})
	}
}

func TestCreateAndGetArticle(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/articles", map[string]any{
		"title":     "My First Post",
		"content":   "# Hello\n\nSome *markdown* here.",
		"published": true,
		"tags":      []string{"intro"},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}

	var created struct {
		Data api.ArticleResponse `json:"data"`
	}
	decodeBody(t, rec, &created)

	if created.Data.Slug != "my-first-post" {
		t.Errorf("slug = %q, want my-first-post", created.Data.Slug)
	}
	if created.Data.AuthorName != "Wind Space Team" {
		t.Errorf("author_name = %q, want Wind Space Team", created.Data.AuthorName)
	}
	if created.Data.AuthorAvatar != "/placeholder.svg" {
		t.Errorf("author_avatar = %q, want /placeholder.svg", created.Data.AuthorAvatar)
	}

	rec = doJSON(t, r, http.MethodGet, "/api/articles/my-first-post", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}

	var got struct {
		Data api.ArticleResponse `json:"data"`
	}
	decodeBody(t, rec, &got)

	if got.Data.ID != created.Data.ID {
		t.Errorf("id = %d, want %d", got.Data.ID, created.Data.ID)
	}
	if !strings.Contains(got.Data.ContentHTML, "<em>markdown</em>") {
		t.Errorf("content_html = %q, want rendered markdown", got.Data.ContentHTML)
	}
}

func TestGetArticleNotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/api/articles/no-such-slug", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	var body map[string]string
	decodeBody(t, rec, &body)
	if body["error"] != "Article not found" {
		t.Errorf("error = %q, want %q", body["error"], "Article not found")
	}
}

func TestListArticlesPagination(t *testing.T) {
	r, db := newTestRouter(t)

	cat := seedCategory(t, db, "Food", "food")
	catID := sql.NullInt64{Int64: cat.ID, Valid: true}

	// five food articles A..E, A newest
	base := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	for i, slug := range []string{"e", "d", "c", "b", "a"} {
		seedArticle(t, db, "Post "+strings.ToUpper(slug), slug, true, catID, nil, base.Add(time.Duration(i)*time.Hour))
	}
	// noise outside the category
	seedArticle(t, db, "Other", "other", true, sql.NullInt64{}, nil, base.Add(10*time.Hour))

	rec := doJSON(t, r, http.MethodGet, "/api/articles?category=food&limit=2&offset=2", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var env listEnvelope
	decodeBody(t, rec, &env)

	if len(env.Data) != 2 || env.Data[0].Slug != "c" || env.Data[1].Slug != "d" {
		t.Fatalf("page = %v, want [c d]", slugsOf(env.Data))
	}

	want := service.Pagination{Page: 2, Limit: 2, Total: 5, TotalPages: 3}
	if env.Pagination != want {
		t.Errorf("pagination = %+v, want %+v", env.Pagination, want)
	}
	if !env.Meta.HasMore || env.Meta.Offset != 2 || env.Meta.Total != 5 {
		t.Errorf("meta = %+v, want hasMore with offset 2 total 5", env.Meta)
	}
}

func TestListArticlesDefaultsAndDrafts(t *testing.T) {
	r, db := newTestRouter(t)

	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	seedArticle(t, db, "Published", "published-post", true, sql.NullInt64{}, nil, base)
	seedArticle(t, db, "Draft", "draft-post", false, sql.NullInt64{}, nil, base.Add(time.Hour))

	rec := doJSON(t, r, http.MethodGet, "/api/articles", nil)
	var env listEnvelope
	decodeBody(t, rec, &env)
	if len(env.Data) != 1 || env.Data[0].Slug != "published-post" {
		t.Fatalf("default list = %v, want only published-post", slugsOf(env.Data))
	}
	if env.Pagination.Limit != 10 {
		t.Errorf("default limit = %d, want 10", env.Pagination.Limit)
	}

	rec = doJSON(t, r, http.MethodGet, "/api/articles?published=false", nil)
	decodeBody(t, rec, &env)
	if len(env.Data) != 2 {
		t.Errorf("published=false list = %v, want both", slugsOf(env.Data))
	}

	// invalid paging params fall back to defaults rather than failing
	rec = doJSON(t, r, http.MethodGet, "/api/articles?limit=abc&offset=-4", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	decodeBody(t, rec, &env)
	if env.Pagination.Limit != 10 || env.Meta.Offset != 0 {
		t.Errorf("fallback paging = limit %d offset %d, want 10/0", env.Pagination.Limit, env.Meta.Offset)
	}
}

func TestListArticlesSearch(t *testing.T) {
	r, db := newTestRouter(t)

	cat := seedCategory(t, db, "Food", "food")
	catID := sql.NullInt64{Int64: cat.ID, Valid: true}

	base := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	seedArticle(t, db, "Street Eats", "street-eats", true, catID, []string{"thai-food"}, base)
	seedArticle(t, db, "Mountain Trails", "mountain-trails", true, sql.NullInt64{}, []string{"hiking"}, base.Add(time.Hour))

	rec := doJSON(t, r, http.MethodGet, "/api/articles?search=thai", nil)
	var env listEnvelope
	decodeBody(t, rec, &env)
	if len(env.Data) != 1 || env.Data[0].Slug != "street-eats" {
		t.Fatalf("search=thai = %v, want [street-eats]", slugsOf(env.Data))
	}
	if env.Pagination.Total != 1 {
		t.Errorf("total = %d, want 1 (counted after filtering)", env.Pagination.Total)
	}

	// search composes with the category filter
	rec = doJSON(t, r, http.MethodGet, "/api/articles?category=food&search=mountain", nil)
	decodeBody(t, rec, &env)
	if len(env.Data) != 0 {
		t.Errorf("category=food&search=mountain = %v, want empty", slugsOf(env.Data))
	}
}

func TestUpdateArticle(t *testing.T) {
	r, db := newTestRouter(t)

	a := seedArticle(t, db, "Original", "original", true, sql.NullInt64{}, []string{"one"}, time.Now())

	rec := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/articles/%d", a.ID), map[string]any{
		"title":     "Renamed",
		"published": false,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var got struct {
		Data api.ArticleResponse `json:"data"`
	}
	decodeBody(t, rec, &got)

	if got.Data.Title != "Renamed" {
		t.Errorf("title = %q, want Renamed", got.Data.Title)
	}
	if got.Data.Published {
		t.Error("article still published")
	}
	// untouched fields survive the partial update
	if got.Data.Slug != "original" {
		t.Errorf("slug = %q, want original", got.Data.Slug)
	}
	if len(got.Data.Tags) != 1 || got.Data.Tags[0] != "one" {
		t.Errorf("tags = %v, want [one]", got.Data.Tags)
	}
}

func TestUpdateArticleInvalidID(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPut, "/api/articles/abc", map[string]any{"title": "X"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var body map[string]string
	decodeBody(t, rec, &body)
	if body["error"] != "Invalid article ID" {
		t.Errorf("error = %q, want %q", body["error"], "Invalid article ID")
	}
}

func TestDeleteArticle(t *testing.T) {
	r, db := newTestRouter(t)

	a := seedArticle(t, db, "Doomed", "doomed", true, sql.NullInt64{}, nil, time.Now())

	rec := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/articles/%d", a.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body map[string]string
	decodeBody(t, rec, &body)
	if body["message"] != "Article deleted successfully" {
		t.Errorf("message = %q, want %q", body["message"], "Article deleted successfully")
	}

	rec = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/articles/%d", a.ID), nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rec.Code)
	}
}

func TestCategoryEndpoints(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/categories", map[string]any{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty create status = %d, want 400", rec.Code)
	}
	var errBody map[string]string
	decodeBody(t, rec, &errBody)
	if errBody["error"] != "Name is required" {
		t.Errorf("error = %q, want %q", errBody["error"], "Name is required")
	}

	rec = doJSON(t, r, http.MethodPost, "/api/categories", map[string]any{
		"name":        "Thai Food",
		"description": "Street eats",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}

	var created struct {
		Data api.CategoryResponse `json:"data"`
	}
	decodeBody(t, rec, &created)
	if created.Data.Slug != "thai-food" {
		t.Errorf("slug = %q, want thai-food", created.Data.Slug)
	}

	rec = doJSON(t, r, http.MethodGet, "/api/categories/thai-food", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}

	rec = doJSON(t, r, http.MethodGet, "/api/categories", nil)
	var list struct {
		Data []api.CategoryResponse `json:"data"`
	}
	decodeBody(t, rec, &list)
	if len(list.Data) != 1 {
		t.Fatalf("list count = %d, want 1", len(list.Data))
	}

	rec = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/categories/%d", created.Data.ID), nil)
	var msg map[string]string
	decodeBody(t, rec, &msg)
	if msg["message"] != "Category deleted successfully" {
		t.Errorf("message = %q, want %q", msg["message"], "Category deleted successfully")
	}

	rec = doJSON(t, r, http.MethodGet, "/api/categories/thai-food", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestUpdateCategoryKeepsSlug(t *testing.T) {
	r, db := newTestRouter(t)

	cat := seedCategory(t, db, "Food", "food")

	// a rename alone must not rotate the external lookup key
	rec := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/categories/%d", cat.ID), map[string]any{
		"name": "Thai Food",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("rename status = %d, body %s", rec.Code, rec.Body.String())
	}

	var got struct {
		Data api.CategoryResponse `json:"data"`
	}
	decodeBody(t, rec, &got)
	if got.Data.Name != "Thai Food" {
		t.Errorf("name = %q, want Thai Food", got.Data.Name)
	}
	if got.Data.Slug != "food" {
		t.Errorf("slug after rename = %q, want food", got.Data.Slug)
	}

	rec = doJSON(t, r, http.MethodGet, "/api/categories/food", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get by old slug status = %d, want 200", rec.Code)
	}

	// an explicitly supplied slug is re-derived and applied
	rec = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/categories/%d", cat.ID), map[string]any{
		"slug": "Thai Food",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("slug update status = %d, body %s", rec.Code, rec.Body.String())
	}
	decodeBody(t, rec, &got)
	if got.Data.Slug != "thai-food" {
		t.Errorf("slug = %q, want thai-food", got.Data.Slug)
	}

	rec = doJSON(t, r, http.MethodGet, "/api/categories/thai-food", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("get by new slug status = %d, want 200", rec.Code)
	}
}

func TestListTags(t *testing.T) {
	r, db := newTestRouter(t)

	base := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	seedArticle(t, db, "One", "one", true, sql.NullInt64{}, []string{"bangkok", "thai-food"}, base)
	seedArticle(t, db, "Two", "two", true, sql.NullInt64{}, []string{"thai-food"}, base.Add(time.Hour))
	// draft tags are not counted
	seedArticle(t, db, "Three", "three", false, sql.NullInt64{}, []string{"hidden"}, base.Add(2*time.Hour))

	rec := doJSON(t, r, http.MethodGet, "/api/tags", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body struct {
		Data  []service.TagCount `json:"data"`
		Total int                `json:"total"`
	}
	decodeBody(t, rec, &body)

	if body.Total != 2 {
		t.Fatalf("total = %d, want 2", body.Total)
	}
	if body.Data[0].Tag != "thai-food" || body.Data[0].Count != 2 {
		t.Errorf("top tag = %+v, want thai-food x2", body.Data[0])
	}
	if body.Data[1].Tag != "bangkok" || body.Data[1].Count != 1 {
		t.Errorf("second tag = %+v, want bangkok x1", body.Data[1])
	}
}

func TestIndexAndRoot(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/api", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("index status = %d", rec.Code)
	}
	var idx map[string]any
	decodeBody(t, rec, &idx)
	if idx["message"] != "Wind Space API" {
		t.Errorf("index message = %v", idx["message"])
	}

	rec = doJSON(t, r, http.MethodGet, "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("root status = %d", rec.Code)
	}
	var root map[string]any
	decodeBody(t, rec, &root)
	if root["version"] != "1.0.0" {
		t.Errorf("root version = %v", root["version"])
	}
}

func slugsOf(articles []api.ArticleResponse) []string {
	slugs := make([]string, len(articles))
	for i, a := range articles {
		slugs[i] = a.Slug
	}
	return slugs
}
