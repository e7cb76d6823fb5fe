package types

import "encoding/json"

// NullableString represents an optional string that serializes as null
// when unset.
type NullableString struct {
	Value string
	Valid bool // Valid is true if Value is not null
}

// String returns the value, or an empty string if null.
func (ns NullableString) String() string {
	if ns.Valid {
		return ns.Value
	}
	return ""
}

// IsNil reports whether the string is null or empty.
func (ns NullableString) IsNil() bool {
	return !ns.Valid || ns.Value == ""
}

// Set assigns a value and marks it valid.
func (ns *NullableString) Set(value string) {
	ns.Value = value
	ns.Valid = true
}

// Ptr returns a pointer to the value, or nil if null.
func (ns NullableString) Ptr() *string {
	if !ns.Valid {
		return nil
	}
	v := ns.Value
	return &v
}

func (ns NullableString) MarshalJSON() ([]byte, error) {
	if ns.Valid {
		return json.Marshal(ns.Value)
	}
	return []byte("null"), nil
}

func (ns *NullableString) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		ns.Value = ""
		ns.Valid = false
		return nil
	}
	ns.Valid = true
	return json.Unmarshal(data, &ns.Value)
}

// NullableStringFrom returns a valid NullableString holding s.
func NullableStringFrom(s string) NullableString {
	return NullableString{Value: s, Valid: true}
}

// NullableStringFromPtr returns a null value for nil and a valid one otherwise.
func NullableStringFromPtr(s *string) NullableString {
	if s == nil {
		return NullableString{}
	}
	return NullableStringFrom(*s)
}

var _ json.Marshaler = NullableString{}
var _ json.Unmarshaler = &NullableString{}
var _ Nullable = NullableString{}
