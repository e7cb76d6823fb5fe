// Package middleware provides HTTP middleware for request logging, timeout
// handling and panic recovery. It integrates with zerolog and tags every
// request with a request id.
package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/trackme/trackme/internal/common/httpx"
	"github.com/trackme/trackme/internal/common/logtrace"
	"github.com/trackme/trackme/internal/common/uuid"
)

// RequestLogger logs incoming requests and their completion. It reuses the
// request id sent by the client in the X-Request-ID header, or creates one,
// and stores it in the request context, the context logger and the response
// headers. Query strings are not logged since they may carry credentials.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := r.Context()

		requestID := r.Header.Get(logtrace.RequestIDHeader)
		if requestID == "" || len(requestID) > 128 {
			requestID = uuid.NewRequestID()
		}
		ctx = logtrace.WithRequestID(ctx, requestID)
		ctx = log.With().Str("request_id", requestID).Logger().WithContext(ctx)

		w.Header().Set(logtrace.RequestIDHeader, requestID)
		rw := httpx.NewResponseWriter(w)

		log.Ctx(ctx).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote_ip", r.RemoteAddr).
			Str("proto", r.Proto).
			Msg("incoming request")

		defer func() {
			log.Ctx(ctx).Info().
				Int("status", rw.Status()).
				Int("bytes", rw.BytesWritten()).
				Str("duration", fmt.Sprintf("%dms", time.Since(start).Milliseconds())).
				Msg("request completed")
		}()

		next.ServeHTTP(rw, r.WithContext(ctx))
	})
}
