// Package field normalizes raw CSV cells into typed, nullable values.
//
// Report rows arrive as strings. Every report column is described by a
// [Spec] that maps the column to a normalized field name and a [Rule]
// telling [Normalize] which type to coerce the cell into and whether an
// empty or missing cell is acceptable.
//
// The package is pure: no I/O and no state.
package field

import (
	"encoding/json"
	"time"
)

// Type is the target type of a normalized field.
type Type int

const (
	// String keeps the trimmed cell text.
	String Type = iota
	// Int parses a decimal integer.
	Int
	// Float parses a decimal floating point number.
	Float
	// Bool parses common boolean spellings.
	Bool
	// Datetime parses a timestamp using the rule layouts.
	Datetime
)

// String returns the JSON schema name of the type.
func (t Type) String() string {
	switch t {
	case Int:
		return "integer"
	case Float:
		return "number"
	case Bool:
		return "boolean"
	default:
		return "string"
	}
}

// DefaultLayouts are the datetime layouts used by Adyen CSV reports.
// Layouts are tried in order.
var DefaultLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05-0700",
	"2006-01-02",
}

// Rule describes how a raw cell is coerced.
type Rule struct {
	// Type is the target type.
	Type Type

	// Nullable allows missing or blank cells to become Null.
	Nullable bool

	// Layouts override DefaultLayouts for Datetime fields.
	Layouts []string
}

// Spec binds a report column to a normalized field name.
type Spec struct {
	// Column is the header of the column as delivered by the report.
	Column string

	// Name is the normalized field name in the cleaned record.
	Name string

	// Rule is the normalization rule for the column.
	Rule Rule
}

// Value is a nullable typed value. V holds a string, int64, float64,
// bool or time.Time when Valid is true.
type Value struct {
	V     any
	Valid bool
}

// Null returns an invalid Value.
func Null() Value {
	return Value{}
}

// Of wraps v into a valid Value.
func Of(v any) Value {
	return Value{V: v, Valid: true}
}

// Any returns the underlying value or nil for Null.
func (v Value) Any() any {
	if !v.Valid {
		return nil
	}
	return v.V
}

// MarshalJSON encodes Null as JSON null and timestamps as RFC 3339.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Valid {
		return []byte("null"), nil
	}
	if t, ok := v.V.(time.Time); ok {
		return json.Marshal(t.Format(time.RFC3339))
	}
	return json.Marshal(v.V)
}
