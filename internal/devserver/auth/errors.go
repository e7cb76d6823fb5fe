package auth

import (
	"net/http"

	"github.com/trackme/trackme/internal/common/apperrors"
)

// Base auth error
var (
	ErrAuth apperrors.Error = apperrors.New("auth error").SetStatusCode(http.StatusInternalServerError)
)

// Token errors
var (
	ErrTokenGeneration apperrors.Error = ErrAuth.New("failed to generate token")
	ErrInvalidToken    apperrors.Error = ErrAuth.New("Could not validate credentials").SetStatusCode(http.StatusUnauthorized)
)

// Login errors
var (
	ErrIncorrectCredentials apperrors.Error = ErrAuth.New("Incorrect email or password").SetStatusCode(http.StatusUnauthorized)
	ErrPasswordHash         apperrors.Error = ErrAuth.New("unable to hash password")
)
