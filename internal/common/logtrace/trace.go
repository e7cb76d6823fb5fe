package logtrace

import (
	"context"
)

// RequestIDHeader carries the request identifier between client and server.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// WithRequestID returns a copy of ctx carrying the request ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIdFromContext extracts the request ID from the context.
// Returns an empty string if the context is nil or if no request ID is found.
func RequestIdFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	r, ok := ctx.Value(requestIDKey{}).(string)
	if !ok {
		return ""
	}
	return r
}

// IsTraceEnabled reports whether route tracing is enabled.
func IsTraceEnabled() bool {
	return traceEnabled
}

var traceEnabled = false

// SetTrace toggles route tracing.
func SetTrace(enabled bool) {
	traceEnabled = enabled
}
