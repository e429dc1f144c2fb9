package domain

import (
	"bytes"
	"encoding/json"
)

// Value is a single table cell that may be missing.
// The zero value is the missing sentinel.
type Value struct {
	String string
	Valid  bool
}

// Null is the missing sentinel
var Null = Value{}

// NewValue wraps a present cell value
func NewValue(s string) Value {
	return Value{String: s, Valid: true}
}

// OrEmpty returns the cell text, or "" when missing
func (v Value) OrEmpty() string {
	if !v.Valid {
		return ""
	}
	return v.String
}

// Or returns the cell text, or fallback when missing
func (v Value) Or(fallback string) string {
	if !v.Valid {
		return fallback
	}
	return v.String
}

// MarshalJSON encodes a missing value as null
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(v.String)
}

// UnmarshalJSON decodes null as missing
func (v *Value) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*v = Null
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*v = NewValue(s)
	return nil
}
