package middleware

import (
	"context"
	"net/http"
	"time"
)

// SetTimeout bounds the lifetime of the request context. Handlers observe
// the deadline through r.Context(). A non-positive timeout disables the
// middleware.
func SetTimeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if timeout <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
