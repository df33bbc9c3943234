// Copyright (c) 2025-2026 Wind Space
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
)

// ListTags handles GET /api/tags. Counts are aggregated over published
// articles only.
func (h *Handler) ListTags(w http.ResponseWriter, r *http.Request) {
	counts, err := h.articles.TagCounts(r.Context())
	if err != nil {
		h.serverError(w, "Failed to fetch tags", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":  counts,
		"total": len(counts),
	})
}
