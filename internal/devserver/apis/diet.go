package apis

import (
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/trackme/trackme/internal/common/httpx"
	"github.com/trackme/trackme/internal/devserver/store"
	"github.com/trackme/trackme/pkg/types"
)

// summaryDays is the default span of the diet summary before today.
const summaryDays = 7

func (a *API) listMeals(r *http.Request) (*httpx.Response, error) {
	uid, err := currentUserID(r)
	if err != nil {
		return nil, err
	}
	day, err := queryDate(r, "date", "Invalid date format")
	if err != nil {
		return nil, err
	}
	var rng store.TimeRange
	if !day.IsZero() {
		rng = store.DayRange(day)
	}
	return rspOK(a.store.ListMeals(uid, rng)), nil
}

func (a *API) getMeal(r *http.Request) (*httpx.Response, error) {
	uid, err := currentUserID(r)
	if err != nil {
		return nil, err
	}
	id, err := pathID(r, "id")
	if err != nil {
		return nil, err
	}
	meal, err := a.store.GetMeal(uid, id)
	if err != nil {
		return nil, err
	}
	return rspOK(meal), nil
}

// createMeal looks up the nutrition values when a food name is given and
// otherwise stores the values of the request, missing ones as zero.
func (a *API) createMeal(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	uid, err := currentUserID(r)
	if err != nil {
		return nil, err
	}
	var in types.MealCreate
	if err := bind(r, &in); err != nil {
		return nil, err
	}

	meal := types.Meal{
		Name:     in.Name,
		MealType: in.MealType,
		Datetime: in.Datetime,
	}
	if in.FoodName != nil && *in.FoodName != "" {
		info, err := a.nutrition.Estimate(ctx, *in.FoodName, deref(in.Quantity))
		if err != nil {
			return nil, err
		}
		meal.Calories, meal.Carbs, meal.Protein, meal.Fat = info.Calories, info.Carbs, info.Protein, info.Fat
		if info.Raw != nil {
			if err := meal.RawNutritionData.Set(info.Raw); err != nil {
				log.Ctx(ctx).Warn().Err(err).Msg("unable to store raw nutrition data")
			}
		}
	} else {
		meal.Calories = deref(in.Calories)
		meal.Carbs = deref(in.Carbs)
		meal.Protein = deref(in.Protein)
		meal.Fat = deref(in.Fat)
	}

	meal = a.store.CreateMeal(uid, meal)
	return rspCreated(meal, location("/diet/meals", meal.ID)), nil
}

func (a *API) updateMeal(r *http.Request) (*httpx.Response, error) {
	uid, err := currentUserID(r)
	if err != nil {
		return nil, err
	}
	id, err := pathID(r, "id")
	if err != nil {
		return nil, err
	}
	var in types.MealUpdate
	if err := bind(r, &in); err != nil {
		return nil, err
	}
	meal, err := a.store.UpdateMeal(uid, id, in)
	if err != nil {
		return nil, err
	}
	return rspOK(meal), nil
}

func (a *API) deleteMeal(r *http.Request) (*httpx.Response, error) {
	uid, err := currentUserID(r)
	if err != nil {
		return nil, err
	}
	id, err := pathID(r, "id")
	if err != nil {
		return nil, err
	}
	if err := a.store.DeleteMeal(uid, id); err != nil {
		return nil, err
	}
	return rspNoContent(), nil
}

// getDietSummary defaults to the span from seven days ago through today.
func (a *API) getDietSummary(r *http.Request) (*httpx.Response, error) {
	uid, err := currentUserID(r)
	if err != nil {
		return nil, err
	}
	rng, err := queryRange(r, queryDate)
	if err != nil {
		return nil, err
	}
	today := store.DayRange(a.store.Now()).From
	if rng.From.IsZero() {
		rng.From = today.AddDate(0, 0, -summaryDays)
	}
	if rng.To.IsZero() {
		rng.To = today
	}
	return rspOK(a.store.DietSummary(uid, rng.From, rng.To)), nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
