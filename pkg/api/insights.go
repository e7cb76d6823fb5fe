package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/trackme/trackme/pkg/types"
)

// GetTodayInsights returns the undismissed insights of the user. The server
// refreshes them from recent activity on every call.
func (c *Client) GetTodayInsights(ctx context.Context) ([]types.Insight, error) {
	var insights []types.Insight
	if err := c.get(ctx, "/api/v1/insights/today", nil, &insights); err != nil {
		return nil, err
	}
	return insights, nil
}

// DismissInsight hides an insight.
func (c *Client) DismissInsight(ctx context.Context, id int64) error {
	_, err := c.http.DoRequest(ctx, RequestOptions{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/api/v1/insights/%d/dismiss", id),
	})
	return err
}
