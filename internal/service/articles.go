// Copyright (c) 2025-2026 Wind Space
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service implements the article retrieval contract: filtering,
// in-memory search and the pagination envelope served by the API.
package service

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/windspace/windspace-go/internal/store"
)

// ArticleService answers list and aggregation queries over articles.
// It holds no state between calls; every request re-reads the store.
type ArticleService struct {
	queries *store.Queries
}

// NewArticleService creates an ArticleService on top of db.
func NewArticleService(db *sql.DB) *ArticleService {
	return &ArticleService{queries: store.New(db)}
}

// ListFilter holds the query parameters of a list request, already
// parsed and defaulted by the transport layer.
type ListFilter struct {
	CategorySlug  string
	PublishedOnly bool
	Search        string
	Limit         int
	Offset        int
}

// List resolves a filter into one page of articles plus both envelope
// shapes. The base set is category/published-filtered in the store,
// ordered newest first; the search term then narrows that set in memory,
// and the page is sliced from the result. No snapshot is taken, so
// concurrent writes between calls may shift page boundaries.
func (s *ArticleService) List(ctx context.Context, filter ListFilter) ([]store.Article, Pagination, Meta, error) {
	var (
		articles []store.Article
		err      error
	)

	if filter.CategorySlug != "" {
		articles, err = s.queries.ListArticlesByCategorySlug(ctx, filter.CategorySlug, filter.PublishedOnly)
	} else {
		articles, err = s.queries.ListArticles(ctx, filter.PublishedOnly)
	}
	if err != nil {
		return nil, Pagination{}, Meta{}, fmt.Errorf("fetching articles: %w", err)
	}

	articles = FilterBySearch(articles, filter.Search)

	// total is counted post-filter, pre-slice
	pagination, meta := Paginate(len(articles), filter.Limit, filter.Offset)
	page := pageSlice(articles, filter.Limit, filter.Offset)

	return page, pagination, meta, nil
}

// TagCount pairs a tag with the number of published articles carrying it.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// TagCounts aggregates tags across all published articles, sorted by
// count descending with the tag name as tiebreak.
func (s *ArticleService) TagCounts(ctx context.Context) ([]TagCount, error) {
	articles, err := s.queries.ListArticles(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("fetching articles: %w", err)
	}

	counts := make(map[string]int)
	for _, a := range articles {
		for _, tag := range a.Tags {
			counts[tag]++
		}
	}

	tags := make([]TagCount, 0, len(counts))
	for tag, count := range counts {
		tags = append(tags, TagCount{Tag: tag, Count: count})
	}

	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Count != tags[j].Count {
			return tags[i].Count > tags[j].Count
		}
		return tags[i].Tag < tags[j].Tag
	})

	return tags, nil
}
