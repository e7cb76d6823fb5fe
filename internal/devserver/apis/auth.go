package apis

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/trackme/trackme/internal/common/httpx"
	"github.com/trackme/trackme/internal/devserver/auth"
	"github.com/trackme/trackme/internal/devserver/store"
	"github.com/trackme/trackme/pkg/types"
)

func (a *API) register(r *http.Request) (*httpx.Response, error) {
	var in types.UserCreate
	if err := bind(r, &in); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user, err := a.store.CreateUser(in.Name, in.Email, hash)
	if err != nil {
		return nil, err
	}
	log.Ctx(r.Context()).Info().Int64("user_id", user.ID).Msg("user registered")
	return rspCreated(user, ""), nil
}

// login reads the credentials from the query string.
func (a *API) login(r *http.Request) (*httpx.Response, error) {
	q := r.URL.Query()
	var issues []httpx.ValidationIssue
	for _, name := range []string{"email", "password"} {
		if !q.Has(name) {
			issues = append(issues, httpx.ValidationIssue{Loc: []string{"query", name}, Msg: "Field required", Type: "missing"})
		}
	}
	if len(issues) > 0 {
		return nil, httpx.ErrValidation(issues)
	}

	user, hash, err := a.store.UserByEmail(q.Get("email"))
	if errors.Is(err, store.ErrUserNotFound) {
		return nil, auth.ErrIncorrectCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := auth.CheckPassword(hash, q.Get("password")); err != nil {
		return nil, err
	}

	token, _, err := a.tokens.CreateToken(r.Context(), user.ID)
	if err != nil {
		return nil, err
	}
	return rspOK(types.Token{AccessToken: token, TokenType: auth.TokenType}), nil
}

func (a *API) getCurrentUser(r *http.Request) (*httpx.Response, error) {
	uid, err := currentUserID(r)
	if err != nil {
		return nil, err
	}
	user, err := a.store.GetUser(uid)
	if err != nil {
		return nil, err
	}
	return rspOK(user), nil
}
