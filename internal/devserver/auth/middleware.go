package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/trackme/trackme/internal/common/httpx"
)

type ctxUserIDKey struct{}

// WithUserID returns a copy of ctx carrying the authenticated user id.
func WithUserID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, ctxUserIDKey{}, id)
}

// UserIDFromContext returns the authenticated user id, if any.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(ctxUserIDKey{}).(int64)
	return id, ok
}

// Middleware rejects requests without a valid bearer token with 401. When
// exists is not nil, tokens of unknown users are rejected as well.
func (i *TokenIssuer) Middleware(exists func(id int64) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			authHeader := r.Header.Get("Authorization")
			scheme, token, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				log.Ctx(ctx).Debug().Msg("missing or invalid authorization header")
				unauthorized(w)
				return
			}

			userID, err := i.ValidateToken(strings.TrimSpace(token))
			if err != nil {
				log.Ctx(ctx).Warn().Err(err).Msg("token validation failed")
				unauthorized(w)
				return
			}
			if exists != nil && !exists(userID) {
				log.Ctx(ctx).Warn().Int64("user_id", userID).Msg("token of unknown user")
				unauthorized(w)
				return
			}

			l := log.Ctx(ctx).With().Int64("user_id", userID).Logger()
			ctx = l.WithContext(WithUserID(ctx, userID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	httpx.ErrUnAuthorized().Send(w)
}
