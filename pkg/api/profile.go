package api

import (
	"context"
	"net/http"

	"github.com/trackme/trackme/pkg/types"
)

func (c *Client) GetProfile(ctx context.Context) (*types.User, error) {
	var user types.User
	if err := c.get(ctx, "/api/v1/profile", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile changes the name or email. body is usually a types.UserUpdate.
func (c *Client) UpdateProfile(ctx context.Context, body any) (*types.User, error) {
	var user types.User
	if err := c.send(ctx, http.MethodPatch, "/api/v1/profile", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) GetGoals(ctx context.Context) (*types.Goals, error) {
	var goals types.Goals
	if err := c.get(ctx, "/api/v1/profile/goals", nil, &goals); err != nil {
		return nil, err
	}
	return &goals, nil
}

func (c *Client) UpdateGoals(ctx context.Context, body any) (*types.Goals, error) {
	var goals types.Goals
	if err := c.send(ctx, http.MethodPatch, "/api/v1/profile/goals", body, &goals); err != nil {
		return nil, err
	}
	return &goals, nil
}

func (c *Client) GetConnections(ctx context.Context) (*types.Connections, error) {
	var conns types.Connections
	if err := c.get(ctx, "/api/v1/profile/connections", nil, &conns); err != nil {
		return nil, err
	}
	return &conns, nil
}

func (c *Client) UpdateConnections(ctx context.Context, body any) (*types.Connections, error) {
	var conns types.Connections
	if err := c.send(ctx, http.MethodPatch, "/api/v1/profile/connections", body, &conns); err != nil {
		return nil, err
	}
	return &conns, nil
}
