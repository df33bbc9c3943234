// Copyright (c) 2025-2026 Wind Space
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"strings"

	"github.com/windspace/windspace-go/internal/store"
)

// FilterBySearch narrows articles to those matching term, preserving the
// input order. The match is a flat, case-insensitive substring test with
// no tokenization or ranking; it runs as a linear scan over the already
// fetched set, so swapping in an indexed backend later only means
// replacing this function.
func FilterBySearch(articles []store.Article, term string) []store.Article {
	if term == "" {
		return articles
	}

	needle := strings.ToLower(term)
	matched := make([]store.Article, 0, len(articles))
	for _, a := range articles {
		if articleMatches(a, needle) {
			matched = append(matched, a)
		}
	}
	return matched
}

// articleMatches reports whether any of title, excerpt, content, a tag,
// or the joined category name contains the lowercased needle.
func articleMatches(a store.Article, needle string) bool {
	if strings.Contains(strings.ToLower(a.Title), needle) {
		return true
	}
	if a.Excerpt.Valid && strings.Contains(strings.ToLower(a.Excerpt.String), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(a.Content), needle) {
		return true
	}
	for _, tag := range a.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	if a.Category != nil && strings.Contains(strings.ToLower(a.Category.Name), needle) {
		return true
	}
	return false
}
