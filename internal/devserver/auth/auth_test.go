package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndValidateToken(t *testing.T) {
	i := NewTokenIssuer("secret", 7*24*time.Hour)
	token, expiry, err := i.CreateToken(context.Background(), 42)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), expiry, time.Minute)

	id, err := i.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	claims := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)
	assert.Equal(t, "42", claims["sub"])
}

func TestValidateTokenRejects(t *testing.T) {
	i := NewTokenIssuer("secret", time.Hour)
	token, _, err := i.CreateToken(context.Background(), 1)
	require.NoError(t, err)

	_, err = NewTokenIssuer("other-secret", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	later := i.WithClock(func() time.Time { return time.Now().Add(2 * time.Hour) })
	_, err = later.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = i.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "1",
		Issuer:    issuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = i.ValidateToken(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)

	noSub := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    issuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := noSub.SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = i.ValidateToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("trackme")
	require.NoError(t, err)
	assert.NotEqual(t, "trackme", hash)
	assert.NoError(t, CheckPassword(hash, "trackme"))
	err = CheckPassword(hash, "wrong")
	assert.ErrorIs(t, err, ErrIncorrectCredentials)
	assert.Equal(t, "Incorrect email or password", err.Error())
}

func TestMiddleware(t *testing.T) {
	i := NewTokenIssuer("secret", time.Hour)
	token, _, err := i.CreateToken(context.Background(), 7)
	require.NoError(t, err)
	stale, _, err := i.CreateToken(context.Background(), 8)
	require.NoError(t, err)

	exists := func(id int64) bool { return id == 7 }
	h := i.Middleware(exists)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := UserIDFromContext(r.Context())
		require.True(t, ok)
		w.Write([]byte(strconv.FormatInt(id, 10)))
	}))

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"valid", "Bearer " + token, http.StatusOK, "7"},
		{"lowercase scheme", "bearer " + token, http.StatusOK, "7"},
		{"missing", "", http.StatusUnauthorized, `{"detail":"Could not validate credentials"}`},
		{"basic", "Basic dXNlcjpwdw==", http.StatusUnauthorized, `{"detail":"Could not validate credentials"}`},
		{"empty token", "Bearer ", http.StatusUnauthorized, `{"detail":"Could not validate credentials"}`},
		{"garbage", "Bearer abc", http.StatusUnauthorized, `{"detail":"Could not validate credentials"}`},
		{"unknown user", "Bearer " + stale, http.StatusUnauthorized, `{"detail":"Could not validate credentials"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			assert.Equal(t, tt.status, rr.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, tt.body, rr.Body.String())
				return
			}
			assert.JSONEq(t, tt.body, rr.Body.String())
			assert.Equal(t, "Bearer", rr.Header().Get("WWW-Authenticate"))
		})
	}
}

func TestUserIDFromContext(t *testing.T) {
	_, ok := UserIDFromContext(context.Background())
	assert.False(t, ok)
	id, ok := UserIDFromContext(WithUserID(context.Background(), 3))
	assert.True(t, ok)
	assert.Equal(t, int64(3), id)
}
