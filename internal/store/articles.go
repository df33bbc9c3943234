// Copyright (c) 2025-2026 Wind Space
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Article is an article row with its category resolved through a LEFT
// JOIN. Category is nil when the article has no category or when the
// referenced category was deleted.
type Article struct {
	ID            int64
	Title         string
	Slug          string
	Content       string
	Excerpt       sql.NullString
	FeaturedImage sql.NullString
	Published     bool
	CategoryID    sql.NullInt64
	AuthorName    string
	AuthorAvatar  string
	Tags          []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Category      *Category
}

// CreateArticleParams holds the column values for a new article row.
// Timestamps are set by the caller (server-side), never from client input.
type CreateArticleParams struct {
	Title         string
	Slug          string
	Content       string
	Excerpt       sql.NullString
	FeaturedImage sql.NullString
	Published     bool
	CategoryID    sql.NullInt64
	AuthorName    string
	AuthorAvatar  string
	Tags          []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// UpdateArticleParams holds the full column set for an article update.
// Handlers merge partial request fields into the existing row first.
type UpdateArticleParams struct {
	ID            int64
	Title         string
	Slug          string
	Content       string
	Excerpt       sql.NullString
	FeaturedImage sql.NullString
	Published     bool
	CategoryID    sql.NullInt64
	AuthorName    string
	AuthorAvatar  string
	Tags          []string
	UpdatedAt     time.Time
}

// articleColumns is the projection shared by every article query.
const articleColumns = `
	a.id, a.title, a.slug, a.content, a.excerpt, a.featured_image,
	a.published, a.category_id, a.author_name, a.author_avatar, a.tags,
	a.created_at, a.updated_at,
	c.id, c.name, c.slug, c.description`

const articleFrom = `
	FROM articles a
	LEFT JOIN categories c ON c.id = a.category_id`

// articleOrder makes the listing order total: created_at descending with
// the id as tiebreak, so pagination never skips or duplicates rows for
// articles created in the same instant.
const articleOrder = ` ORDER BY a.created_at DESC, a.id DESC`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (Article, error) {
	var (
		a        Article
		tagsJSON string
		catID    sql.NullInt64
		catName  sql.NullString
		catSlug  sql.NullString
		catDesc  sql.NullString
	)

	err := row.Scan(
		&a.ID, &a.Title, &a.Slug, &a.Content, &a.Excerpt, &a.FeaturedImage,
		&a.Published, &a.CategoryID, &a.AuthorName, &a.AuthorAvatar, &tagsJSON,
		&a.CreatedAt, &a.UpdatedAt,
		&catID, &catName, &catSlug, &catDesc,
	)
	if err != nil {
		return Article{}, err
	}

	a.Tags = decodeTags(tagsJSON)

	if catID.Valid {
		a.Category = &Category{
			ID:          catID.Int64,
			Name:        catName.String,
			Slug:        catSlug.String,
			Description: catDesc,
		}
	}

	return a, nil
}

// decodeTags parses the JSON-encoded tag list stored in the tags column.
// Malformed values decode to an empty list rather than failing the read.
func decodeTags(s string) []string {
	var tags []string
	if s != "" {
		_ = json.Unmarshal([]byte(s), &tags)
	}
	if tags == nil {
		tags = []string{}
	}
	return tags
}

func encodeTags(tags []string) string {
	if tags == nil {
		tags = []string{}
	}
	b, _ := json.Marshal(tags)
	return string(b)
}

func (q *Queries) listArticles(ctx context.Context, where string, args ...any) ([]Article, error) {
	query := "SELECT" + articleColumns + articleFrom + " WHERE " + where + articleOrder

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify(err)
	}
	defer func() { _ = rows.Close() }()

	var articles []Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, classify(err)
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}

	return articles, nil
}

// ListArticles returns all articles, newest first. When publishedOnly is
// true only published articles are included.
func (q *Queries) ListArticles(ctx context.Context, publishedOnly bool) ([]Article, error) {
	if publishedOnly {
		return q.listArticles(ctx, "a.published = 1")
	}
	return q.listArticles(ctx, "1 = 1")
}

// ListArticlesByCategorySlug returns the articles belonging to the
// category with the given slug, newest first.
func (q *Queries) ListArticlesByCategorySlug(ctx context.Context, slug string, publishedOnly bool) ([]Article, error) {
	if publishedOnly {
		return q.listArticles(ctx, "c.slug = ? AND a.published = 1", slug)
	}
	return q.listArticles(ctx, "c.slug = ?", slug)
}

// GetArticleByID fetches a single article by its numeric id.
func (q *Queries) GetArticleByID(ctx context.Context, id int64) (Article, error) {
	query := "SELECT" + articleColumns + articleFrom + " WHERE a.id = ?"
	a, err := scanArticle(q.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return Article{}, classify(err)
	}
	return a, nil
}

// GetArticleBySlug fetches a single article by its slug, the canonical
// external lookup key.
func (q *Queries) GetArticleBySlug(ctx context.Context, slug string) (Article, error) {
	query := "SELECT" + articleColumns + articleFrom + " WHERE a.slug = ?"
	a, err := scanArticle(q.db.QueryRowContext(ctx, query, slug))
	if err != nil {
		return Article{}, classify(err)
	}
	return a, nil
}

// ArticleSlugExists returns the number of articles carrying the slug.
func (q *Queries) ArticleSlugExists(ctx context.Context, slug string) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles WHERE slug = ?", slug).Scan(&count)
	if err != nil {
		return 0, classify(err)
	}
	return count, nil
}

// CreateArticle inserts a new article and returns the stored row with its
// category resolved.
func (q *Queries) CreateArticle(ctx context.Context, params CreateArticleParams) (Article, error) {
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO articles (
			title, slug, content, excerpt, featured_image, published,
			category_id, author_name, author_avatar, tags, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		params.Title, params.Slug, params.Content, params.Excerpt,
		params.FeaturedImage, params.Published, params.CategoryID,
		params.AuthorName, params.AuthorAvatar, encodeTags(params.Tags),
		params.CreatedAt, params.UpdatedAt,
	)
	if err != nil {
		return Article{}, classify(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return Article{}, fmt.Errorf("reading insert id: %w", err)
	}

	return q.GetArticleByID(ctx, id)
}

// UpdateArticle writes the full column set for an existing article and
// returns the stored row.
func (q *Queries) UpdateArticle(ctx context.Context, params UpdateArticleParams) (Article, error) {
	res, err := q.db.ExecContext(ctx, `
		UPDATE articles SET
			title = ?, slug = ?, content = ?, excerpt = ?, featured_image = ?,
			published = ?, category_id = ?, author_name = ?, author_avatar = ?,
			tags = ?, updated_at = ?
		WHERE id = ?`,
		params.Title, params.Slug, params.Content, params.Excerpt,
		params.FeaturedImage, params.Published, params.CategoryID,
		params.AuthorName, params.AuthorAvatar, encodeTags(params.Tags),
		params.UpdatedAt, params.ID,
	)
	if err != nil {
		return Article{}, classify(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return Article{}, fmt.Errorf("reading affected rows: %w", err)
	}
	if affected == 0 {
		return Article{}, ErrNotFound
	}

	return q.GetArticleByID(ctx, params.ID)
}

// DeleteArticle removes an article by id. Deleting a missing article
// returns ErrNotFound.
func (q *Queries) DeleteArticle(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, "DELETE FROM articles WHERE id = ?", id)
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
