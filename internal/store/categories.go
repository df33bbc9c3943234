// Copyright (c) 2025-2026 Wind Space
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Category is a category row.
type Category struct {
	ID          int64
	Name        string
	Slug        string
	Description sql.NullString
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateCategoryParams holds the column values for a new category row.
type CreateCategoryParams struct {
	Name        string
	Slug        string
	Description sql.NullString
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// UpdateCategoryParams holds the full column set for a category update.
type UpdateCategoryParams struct {
	ID          int64
	Name        string
	Slug        string
	Description sql.NullString
	UpdatedAt   time.Time
}

const categoryColumns = "id, name, slug, description, created_at, updated_at"

func scanCategory(row rowScanner) (Category, error) {
	var c Category
	err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// ListCategories returns all categories ordered by name.
func (q *Queries) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := q.db.QueryContext(ctx, "SELECT "+categoryColumns+" FROM categories ORDER BY name")
	if err != nil {
		return nil, classify(err)
	}
	defer func() { _ = rows.Close() }()

	var categories []Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, classify(err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}

	return categories, nil
}

// GetCategoryByID fetches a single category by its numeric id.
func (q *Queries) GetCategoryByID(ctx context.Context, id int64) (Category, error) {
	c, err := scanCategory(q.db.QueryRowContext(ctx,
		"SELECT "+categoryColumns+" FROM categories WHERE id = ?", id))
	if err != nil {
		return Category{}, classify(err)
	}
	return c, nil
}

// GetCategoryBySlug fetches a single category by slug.
func (q *Queries) GetCategoryBySlug(ctx context.Context, slug string) (Category, error) {
	c, err := scanCategory(q.db.QueryRowContext(ctx,
		"SELECT "+categoryColumns+" FROM categories WHERE slug = ?", slug))
	if err != nil {
		return Category{}, classify(err)
	}
	return c, nil
}

// CategorySlugExists returns the number of categories carrying the slug.
func (q *Queries) CategorySlugExists(ctx context.Context, slug string) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM categories WHERE slug = ?", slug).Scan(&count)
	if err != nil {
		return 0, classify(err)
	}
	return count, nil
}

// CreateCategory inserts a new category and returns the stored row.
func (q *Queries) CreateCategory(ctx context.Context, params CreateCategoryParams) (Category, error) {
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO categories (name, slug, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		params.Name, params.Slug, params.Description, params.CreatedAt, params.UpdatedAt,
	)
	if err != nil {
		return Category{}, classify(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return Category{}, fmt.Errorf("reading insert id: %w", err)
	}

	return q.GetCategoryByID(ctx, id)
}

// UpdateCategory writes the full column set for an existing category and
// returns the stored row.
func (q *Queries) UpdateCategory(ctx context.Context, params UpdateCategoryParams) (Category, error) {
	res, err := q.db.ExecContext(ctx, `
		UPDATE categories SET name = ?, slug = ?, description = ?, updated_at = ?
		WHERE id = ?`,
		params.Name, params.Slug, params.Description, params.UpdatedAt, params.ID,
	)
	if err != nil {
		return Category{}, classify(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return Category{}, fmt.Errorf("reading affected rows: %w", err)
	}
	if affected == 0 {
		return Category{}, ErrNotFound
	}

	return q.GetCategoryByID(ctx, params.ID)
}

// DeleteCategory removes a category by id. Articles referencing it keep
// existing with a nulled category_id (ON DELETE SET NULL).
func (q *Queries) DeleteCategory(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", id)
	if err != nil {
		return classify(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}
