// Copyright (c) 2025-2026 Wind Space
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler contains HTTP plumbing shared by the API handlers:
// query parameter parsing and the health endpoints.
package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// DefaultLimit is the page size used when the limit parameter is missing
// or unusable.
const DefaultLimit = 10

// ParseLimitParam parses the "limit" query parameter. Missing, invalid or
// non-positive values fall back to DefaultLimit.
func ParseLimitParam(r *http.Request) int {
	str := r.URL.Query().Get("limit")
	if str == "" {
		return DefaultLimit
	}
	val, err := strconv.Atoi(str)
	if err != nil || val <= 0 {
		return DefaultLimit
	}
	return val
}

// ParseOffsetParam parses the "offset" query parameter. Missing, invalid
// or negative values fall back to 0.
func ParseOffsetParam(r *http.Request) int {
	str := r.URL.Query().Get("offset")
	if str == "" {
		return 0
	}
	val, err := strconv.Atoi(str)
	if err != nil || val < 0 {
		return 0
	}
	return val
}

// ParseIDParam parses the {id} URL parameter as a positive integer.
func ParseIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
