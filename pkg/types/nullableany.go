package types

import (
	"bytes"
	"encoding/json"
	"errors"
)

// NullableAny holds an optional, arbitrary JSON document.
type NullableAny struct {
	value json.RawMessage
	valid bool
}

func (na NullableAny) IsNil() bool {
	return !na.valid
}

// Set stores value as JSON. json.RawMessage and []byte holding valid JSON are
// stored as is, everything else is marshaled.
func (na *NullableAny) Set(value any) error {
	var raw json.RawMessage
	switch v := value.(type) {
	case json.RawMessage:
		if !json.Valid(v) {
			*na = NullableAny{}
			return errors.New("value is not valid JSON")
		}
		raw = v
	case []byte:
		if json.Valid(v) {
			raw = v
			break
		}
		b, err := json.Marshal(v)
		if err != nil {
			*na = NullableAny{}
			return err
		}
		raw = b
	default:
		b, err := json.Marshal(value)
		if err != nil {
			*na = NullableAny{}
			return err
		}
		raw = b
	}
	na.value = raw
	na.valid = true
	return nil
}

// Raw returns the stored JSON, or nil if null.
func (na NullableAny) Raw() json.RawMessage {
	if !na.valid {
		return nil
	}
	return na.value
}

// GetAs decodes the stored JSON into v.
func (na NullableAny) GetAs(v any) error {
	if !na.valid {
		return errors.New("value is not set")
	}
	return json.Unmarshal(na.value, v)
}

func (na NullableAny) MarshalJSON() ([]byte, error) {
	if na.valid {
		return na.value, nil
	}
	return []byte("null"), nil
}

func (na *NullableAny) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*na = NullableAny{}
		return nil
	}
	if !json.Valid(data) {
		*na = NullableAny{}
		return errors.New("invalid JSON")
	}
	na.value = append(json.RawMessage(nil), data...)
	na.valid = true
	return nil
}

// NullableAnyFrom returns a NullableAny holding value.
func NullableAnyFrom(value any) (NullableAny, error) {
	var na NullableAny
	if err := na.Set(value); err != nil {
		return NullableAny{}, err
	}
	return na, nil
}

var _ json.Marshaler = NullableAny{}
var _ json.Unmarshaler = &NullableAny{}
var _ Nullable = NullableAny{}
