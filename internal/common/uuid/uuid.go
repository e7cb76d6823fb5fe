// Package uuid wraps github.com/google/uuid for the request identifiers that
// travel between the Trackme client and the mock backend. Identifiers are
// UUIDv7 so that log lines sort by creation time.
package uuid

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// UUID is an alias of github.com/google/uuid.UUID.
type UUID = uuid.UUID

// New returns a new UUIDv7. Panics if the random source fails.
func New() UUID {
	id, err := uuid.NewV7()
	if err != nil {
		panic(err)
	}
	return id
}

// NewRequestID returns a string identifier suitable for the X-Request-ID header.
// It never fails: if the random source is unavailable it falls back to a
// timestamp based identifier.
func NewRequestID() string {
	id, err := uuid.NewV7()
	if err == nil {
		return id.String()
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}
