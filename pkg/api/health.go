package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/trackme/trackme/pkg/types"
)

// CreateOrUpdateSteps records the step count of a day, replacing any
// existing count for that day.
func (c *Client) CreateOrUpdateSteps(ctx context.Context, body any) (*types.StepSummary, error) {
	var steps types.StepSummary
	if err := c.send(ctx, http.MethodPost, "/api/v1/health/steps", body, &steps); err != nil {
		return nil, err
	}
	return &steps, nil
}

func (c *Client) GetStepSummary(ctx context.Context, params Params) ([]types.StepSummary, error) {
	var steps []types.StepSummary
	if err := c.get(ctx, "/api/v1/health/steps/summary", params, &steps); err != nil {
		return nil, err
	}
	return steps, nil
}

func (c *Client) CreateVital(ctx context.Context, body any) (*types.Vital, error) {
	var vital types.Vital
	if err := c.send(ctx, http.MethodPost, "/api/v1/health/vitals", body, &vital); err != nil {
		return nil, err
	}
	return &vital, nil
}

// GetVitalsByType lists the vitals of one type, such as "heart_rate".
func (c *Client) GetVitalsByType(ctx context.Context, vitalType string, params Params) ([]types.Vital, error) {
	var vitals []types.Vital
	if err := c.get(ctx, "/api/v1/health/vitals/"+url.PathEscape(vitalType), params, &vitals); err != nil {
		return nil, err
	}
	return vitals, nil
}

func (c *Client) CreateActivity(ctx context.Context, body any) (*types.Activity, error) {
	var activity types.Activity
	if err := c.send(ctx, http.MethodPost, "/api/v1/health/activities", body, &activity); err != nil {
		return nil, err
	}
	return &activity, nil
}

func (c *Client) GetActivities(ctx context.Context, params Params) ([]types.Activity, error) {
	var activities []types.Activity
	if err := c.get(ctx, "/api/v1/health/activities", params, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

func (c *Client) UpdateActivity(ctx context.Context, id int64, body any) (*types.Activity, error) {
	var activity types.Activity
	if err := c.send(ctx, http.MethodPatch, activityPath(id), body, &activity); err != nil {
		return nil, err
	}
	return &activity, nil
}

func (c *Client) DeleteActivity(ctx context.Context, id int64) error {
	return c.delete(ctx, activityPath(id))
}

func activityPath(id int64) string { return fmt.Sprintf("/api/v1/health/activities/%d", id) }
