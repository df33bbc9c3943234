// Copyright (c) 2025-2026 Wind Space
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import "database/sql"

// NullStringFromPtr converts a *string into sql.NullString.
// A nil pointer yields an invalid NullString.
func NullStringFromPtr(ptr *string) sql.NullString {
	if ptr != nil {
		return sql.NullString{String: *ptr, Valid: true}
	}
	return sql.NullString{}
}

// NullStringFromValue creates a sql.NullString that is valid only for
// non-empty strings.
func NullStringFromValue(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// NullInt64FromPtr converts a *int64 into sql.NullInt64.
// A nil pointer yields an invalid NullInt64.
func NullInt64FromPtr(ptr *int64) sql.NullInt64 {
	if ptr != nil {
		return sql.NullInt64{Int64: *ptr, Valid: true}
	}
	return sql.NullInt64{}
}

// StringPtrFromNull converts a sql.NullString into a *string for JSON
// serialization, mapping invalid values to nil.
func StringPtrFromNull(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
