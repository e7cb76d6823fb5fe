// Package nutrition estimates the nutrition values of a food description,
// either from a Nutritionix compatible API or from built-in approximations.
package nutrition

import (
	"context"
	"strings"
)

// MockNote is recorded in the raw data of built-in estimates.
const MockNote = "Mock data - configure NUTRITION_API_KEY for real data"

// Info holds the nutrition values of a food. Raw is the source data and is
// stored with the meal.
type Info struct {
	Calories float64
	Carbs    float64
	Protein  float64
	Fat      float64
	Raw      any
}

// Estimator looks up the nutrition values of a food. Quantity may be empty.
type Estimator interface {
	Estimate(ctx context.Context, foodName, quantity string) (Info, error)
}

type profile struct {
	keywords                      []string
	calories, carbs, protein, fat float64
}

// profiles are checked in order; the first match wins.
var profiles = []profile{
	{[]string{"salad", "vegetable", "lettuce"}, 50, 10, 2, 1},
	{[]string{"chicken", "beef", "meat", "fish"}, 250, 0, 40, 10},
	{[]string{"rice", "pasta", "bread", "potato"}, 300, 60, 8, 2},
	{[]string{"burger", "pizza", "fries"}, 500, 50, 20, 25},
	{[]string{"fruit", "apple", "banana", "orange"}, 80, 20, 1, 0},
	{[]string{"yogurt", "milk", "cheese"}, 150, 15, 8, 5},
}

// MockEstimator approximates nutrition values from keywords in the food name.
type MockEstimator struct{}

var _ Estimator = MockEstimator{}

type mockRaw struct {
	Source   string  `json:"source"`
	FoodName string  `json:"food_name"`
	Quantity *string `json:"quantity"`
	Note     string  `json:"note"`
}

func (MockEstimator) Estimate(_ context.Context, foodName, quantity string) (Info, error) {
	return estimate(foodName, quantity), nil
}

func estimate(foodName, quantity string) Info {
	info := Info{Calories: 200, Carbs: 30, Protein: 10, Fat: 5}
	name := strings.ToLower(foodName)
	for _, p := range profiles {
		if containsAny(name, p.keywords) {
			info = Info{Calories: p.calories, Carbs: p.carbs, Protein: p.protein, Fat: p.fat}
			break
		}
	}
	raw := mockRaw{
		Source:   "mock",
		FoodName: foodName,
		Note:     MockNote,
	}
	if quantity != "" {
		raw.Quantity = &quantity
	}
	info.Raw = raw
	return info
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
