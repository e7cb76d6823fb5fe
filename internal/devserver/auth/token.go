// Package auth issues and validates the bearer tokens of the development
// server and hashes user passwords.
package auth

import (
	"context"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"github.com/trackme/trackme/internal/common/uuid"
)

// TokenType is reported alongside every access token.
const TokenType = "bearer"

const issuer = "trackme-devserver"

// TokenIssuer signs and validates HS256 access tokens whose subject is the
// user id.
type TokenIssuer struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

// NewTokenIssuer returns an issuer signing with secret. Tokens expire after
// expiry.
func NewTokenIssuer(secret string, expiry time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		expiry: expiry,
		now:    time.Now,
	}
}

// WithClock returns a copy of the issuer using now as its time source.
func (i *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	c := *i
	c.now = now
	return &c
}

// CreateToken returns a signed token for the user and its expiry.
func (i *TokenIssuer) CreateToken(ctx context.Context, userID int64) (string, time.Time, error) {
	now := i.now()
	expiry := now.Add(i.expiry)
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   strconv.FormatInt(userID, 10),
		ExpiresAt: jwt.NewNumericDate(expiry),
		IssuedAt:  jwt.NewNumericDate(now),
		ID:        uuid.New().String(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("unable to sign token")
		return "", time.Time{}, ErrTokenGeneration.MsgErr("unable to sign token", err)
	}
	return signed, expiry, nil
}

// ValidateToken verifies the signature and expiry of token and returns the
// user id it was issued to.
func (i *TokenIssuer) ValidateToken(token string) (int64, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return 0, ErrInvalidToken.Err(err)
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken.Err(err)
	}
	return userID, nil
}
