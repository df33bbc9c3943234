// Copyright (c) 2025-2026 Wind Space
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render converts article body markup into HTML safe to embed in
// the public client.
package render

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

// htmlSanitizer strips script tags, event handlers and other dangerous
// markup from rendered article bodies. Article content is author-authored
// but is still treated as user-generated content.
var htmlSanitizer = bluemonday.UGCPolicy()

// ArticleHTML renders the article's lightweight markup to sanitized HTML.
func ArticleHTML(content string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return htmlSanitizer.Sanitize(buf.String()), nil
}
