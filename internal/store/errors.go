// Copyright (c) 2025-2026 Wind Space
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"

	sqlite "modernc.org/sqlite"
	sqlitelib "modernc.org/sqlite/lib"
)

// Typed persistence errors. Callers classify failures with errors.Is
// and translate them to transport-level responses.
var (
	// ErrNotFound is returned when a row lookup by id or slug misses.
	ErrNotFound = errors.New("store: not found")

	// ErrConstraintViolation is returned when a write breaks a schema
	// constraint, most commonly the unique slug index.
	ErrConstraintViolation = errors.New("store: constraint violation")

	// ErrConnection is returned when the database itself is unreachable.
	ErrConnection = errors.New("store: connection failed")
)

// classify maps low-level database errors onto the typed store errors,
// keeping the original error in the chain.
func classify(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("%w: %w", ErrConnection, err)
	}

	var se *sqlite.Error
	if errors.As(err, &se) && se.Code()&0xff == sqlitelib.SQLITE_CONSTRAINT {
		return fmt.Errorf("%w: %w", ErrConstraintViolation, err)
	}

	return err
}
