package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
	"github.com/trackme/trackme/pkg/types"
)

// Register creates an account. It does not log in.
func (c *Client) Register(ctx context.Context, name, email, password string) (*types.User, error) {
	var user types.User
	err := c.http.Do(ctx, RequestOptions{
		Method: http.MethodPost,
		Path:   "/api/v1/auth/register",
		Body:   types.UserCreate{Name: name, Email: email, Password: password},
		NoAuth: true,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges credentials for a token. The API reads the credentials
// from the query string. A non-empty access_token in the response becomes
// the session token.
func (c *Client) Login(ctx context.Context, email, password string) (*types.Token, error) {
	body, err := c.http.DoRequest(ctx, RequestOptions{
		Method: http.MethodPost,
		Path:   "/api/v1/auth/login",
		QueryParams: map[string]string{
			"email":    email,
			"password": password,
		},
		NoAuth: true,
	})
	if err != nil {
		return nil, err
	}
	if token := gjson.GetBytes(body, "access_token").String(); token != "" {
		c.session.SetToken(token)
	}

	var token types.Token
	if len(body) > 0 {
		if err := json.Unmarshal(body, &token); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return &token, nil
}

// GetCurrentUser returns the logged in user.
func (c *Client) GetCurrentUser(ctx context.Context) (*types.User, error) {
	var user types.User
	if err := c.get(ctx, "/api/v1/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
