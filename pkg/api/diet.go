package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/trackme/trackme/pkg/types"
)

// GetMeals lists meals, newest first. See MealFilter for the accepted parameters.
func (c *Client) GetMeals(ctx context.Context, params Params) ([]types.Meal, error) {
	var meals []types.Meal
	if err := c.get(ctx, "/api/v1/diet/meals", params, &meals); err != nil {
		return nil, err
	}
	return meals, nil
}

// GetMeal returns one meal.
func (c *Client) GetMeal(ctx context.Context, id int64) (*types.Meal, error) {
	var meal types.Meal
	if err := c.get(ctx, mealPath(id), nil, &meal); err != nil {
		return nil, err
	}
	return &meal, nil
}

// CreateMeal logs a meal. body is usually a types.MealCreate; when it names
// a food the server looks up the nutrition values.
func (c *Client) CreateMeal(ctx context.Context, body any) (*types.Meal, error) {
	var meal types.Meal
	if err := c.send(ctx, http.MethodPost, "/api/v1/diet/meals", body, &meal); err != nil {
		return nil, err
	}
	return &meal, nil
}

func (c *Client) UpdateMeal(ctx context.Context, id int64, body any) (*types.Meal, error) {
	var meal types.Meal
	if err := c.send(ctx, http.MethodPatch, mealPath(id), body, &meal); err != nil {
		return nil, err
	}
	return &meal, nil
}

func (c *Client) DeleteMeal(ctx context.Context, id int64) error {
	return c.delete(ctx, mealPath(id))
}

// GetDietSummary returns per-day nutrition totals. Without a range the
// server covers the last seven days.
func (c *Client) GetDietSummary(ctx context.Context, params Params) ([]types.DailySummary, error) {
	var summary []types.DailySummary
	if err := c.get(ctx, "/api/v1/diet/summary", params, &summary); err != nil {
		return nil, err
	}
	return summary, nil
}

func mealPath(id int64) string { return fmt.Sprintf("/api/v1/diet/meals/%d", id) }
