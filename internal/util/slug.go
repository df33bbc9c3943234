// Copyright (c) 2025-2026 Wind Space
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides general-purpose utility functions, including
// URL slug generation used as the public identity for articles and categories.
package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// disallowedChars matches everything outside the slug alphabet
	disallowedChars = regexp.MustCompile(`[^a-z0-9-]+`)
	// hyphenRuns matches two or more consecutive hyphens
	hyphenRuns = regexp.MustCompile(`-{2,}`)
)

// Slugify converts a title to a URL-friendly slug: lowercase, accents
// stripped, spaces replaced with hyphens, everything outside [a-z0-9-]
// removed, hyphen runs collapsed, and edge hyphens trimmed.
// The transform is pure and idempotent: a string that is already a valid
// slug passes through unchanged.
func Slugify(title string) string {
	// Decompose accented characters and drop the combining marks
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, _ := transform.String(t, title)

	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "-")
	s = disallowedChars.ReplaceAllString(s, "")
	s = hyphenRuns.ReplaceAllString(s, "-")

	return strings.Trim(s, "-")
}

// IsValidSlug reports whether s is already in canonical slug form.
func IsValidSlug(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return false
		}
	}
	if s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}
	return !strings.Contains(s, "--")
}
