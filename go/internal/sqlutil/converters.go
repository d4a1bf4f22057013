package sqlutil

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// Helper functions for converting between Go types and nullable pgx types

// ToNullUUID converts a Go UUID pointer to uuid.NullUUID
func ToNullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{Valid: false}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

// FromNullUUID converts uuid.NullUUID to Go UUID pointer
func FromNullUUID(val uuid.NullUUID) *uuid.UUID {
	if !val.Valid {
		return nil
	}
	id := val.UUID
	return &id
}

// ToTimestamptz converts a Go time pointer to pgtype.Timestamptz
func ToTimestamptz(val *time.Time) pgtype.Timestamptz {
	if val == nil {
		return pgtype.Timestamptz{Valid: false}
	}
	return pgtype.Timestamptz{Time: *val, Valid: true}
}

// FromTimestamptz converts pgtype.Timestamptz to Go time pointer
func FromTimestamptz(val pgtype.Timestamptz) *time.Time {
	if !val.Valid {
		return nil
	}
	t := val.Time
	return &t
}

// ToNullDecimal converts a decimal pointer to decimal.NullDecimal
func ToNullDecimal(val *decimal.Decimal) decimal.NullDecimal {
	if val == nil {
		return decimal.NullDecimal{Valid: false}
	}
	return decimal.NullDecimal{Decimal: *val, Valid: true}
}

// ToContainsPattern converts a free-text filter into a pgtype.Text suitable for
// `ILIKE '%' || $n || '%'`. Blank input becomes NULL so the filter is skipped.
// LIKE wildcards in the input are escaped and match literally.
func ToContainsPattern(val string) pgtype.Text {
	val = strings.TrimSpace(val)
	if val == "" {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: likeEscaper.Replace(val), Valid: true}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
