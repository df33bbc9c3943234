// Copyright (c) 2025-2026 Wind Space
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

// Event is an application event row, written by the logging handler for
// WARN and ERROR records.
type Event struct {
	ID        int64
	Level     string
	Category  string
	Message   string
	Metadata  sql.NullString
	CreatedAt time.Time
}

// CreateEventParams holds the column values for a new event row.
type CreateEventParams struct {
	Level     string
	Category  string
	Message   string
	Metadata  sql.NullString
	CreatedAt time.Time
}

// CreateEvent inserts a new event row.
func (q *Queries) CreateEvent(ctx context.Context, params CreateEventParams) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO events (level, category, message, metadata, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		params.Level, params.Category, params.Message, params.Metadata, params.CreatedAt,
	)
	return classify(err)
}

// ListRecentEvents returns the newest events, up to limit rows.
func (q *Queries) ListRecentEvents(ctx context.Context, limit int64) ([]Event, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, level, category, message, metadata, created_at
		FROM events ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, classify(err)
	}
	defer func() { _ = rows.Close() }()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Level, &e.Category, &e.Message, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, classify(err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}

	return events, nil
}
