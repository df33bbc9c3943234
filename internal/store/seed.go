// Copyright (c) 2025-2026 Wind Space
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/windspace/windspace-go/internal/util"
)

// defaultCategories are the four sections the public client browses.
var defaultCategories = []struct {
	Name        string
	Description string
}{
	{"Food", "Thai food, street eats and restaurant finds"},
	{"Travel", "Destinations, itineraries and travel notes"},
	{"Lifestyle", "Living, culture and everyday inspiration"},
	{"Technology", "Gadgets, apps and the digital life"},
}

// Seed creates the default category sections when seeding is enabled.
// Existing categories are never touched, so the seed is safe to run on
// every boot.
func Seed(ctx context.Context, db *sql.DB, enabled bool) error {
	if !enabled {
		return nil
	}

	queries := New(db)
	now := time.Now()

	for _, c := range defaultCategories {
		slug := util.Slugify(c.Name)

		_, err := queries.GetCategoryBySlug(ctx, slug)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrNotFound) {
			return fmt.Errorf("checking category %q: %w", slug, err)
		}

		created, err := queries.CreateCategory(ctx, CreateCategoryParams{
			Name:        c.Name,
			Slug:        slug,
			Description: util.NullStringFromValue(c.Description),
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return fmt.Errorf("seeding category %q: %w", slug, err)
		}

		slog.Info("seeded category", "id", created.ID, "slug", created.Slug)
	}

	return nil
}
