// Package types defines the Trackme resource models exchanged with the API,
// together with nullable helper types that distinguish an absent value from
// a zero value in JSON.
package types

// Nullable is implemented by types that can represent a JSON null.
type Nullable interface {
	// IsNil reports whether the value is null.
	IsNil() bool
}
