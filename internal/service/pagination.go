// Copyright (c) 2025-2026 Wind Space
// SPDX-License-Identifier: GPL-3.0-or-later

package service

// DefaultLimit is the page size used when the client supplies none.
const DefaultLimit = 10

// Pagination is the page-oriented half of the list envelope.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Meta is the offset-oriented half of the list envelope. Both shapes are
// served side by side; different client views consume different halves.
type Meta struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"hasMore"`
}

// NormalizeLimitOffset applies the defaults: non-positive limits fall back
// to DefaultLimit, negative offsets clamp to zero.
func NormalizeLimitOffset(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// Paginate computes both envelope shapes for a result set of the given
// total size.
func Paginate(total, limit, offset int) (Pagination, Meta) {
	limit, offset = NormalizeLimitOffset(limit, offset)

	totalPages := (total + limit - 1) / limit

	p := Pagination{
		Page:       offset/limit + 1,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
	m := Meta{
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: offset+limit < total,
	}
	return p, m
}

// pageSlice returns items[offset : offset+limit] with both bounds clamped
// to the slice; out-of-range windows yield an empty slice, never an error.
func pageSlice[T any](items []T, limit, offset int) []T {
	limit, offset = NormalizeLimitOffset(limit, offset)

	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
