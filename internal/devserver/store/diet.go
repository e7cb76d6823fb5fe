package store

import (
	"sort"
	"time"

	"github.com/trackme/trackme/pkg/types"
)

// ListMeals returns the user's meals within r, most recent first.
func (s *Store) ListMeals(userID int64, r TimeRange) []types.Meal {
	meals := s.mealsIn(userID, r)
	sort.SliceStable(meals, func(i, j int) bool {
		return meals[i].Datetime.After(meals[j].Datetime.Time)
	})
	return meals
}

// mealsIn returns the user's meals within r in chronological order.
func (s *Store) mealsIn(userID int64, r TimeRange) []types.Meal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	meals := []types.Meal{}
	for _, m := range s.meals {
		if m.UserID == userID && r.Contains(m.Datetime.Time) {
			meals = append(meals, m)
		}
	}
	sort.Slice(meals, func(i, j int) bool {
		if !meals[i].Datetime.Equal(meals[j].Datetime.Time) {
			return meals[i].Datetime.Before(meals[j].Datetime.Time)
		}
		return meals[i].ID < meals[j].ID
	})
	return meals
}

// DayRange returns the range covering the calendar day of t, the end being
// the last instant before the next day.
func DayRange(t time.Time) TimeRange {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return TimeRange{From: day, To: day.AddDate(0, 0, 1).Add(-time.Nanosecond)}
}

func (s *Store) GetMeal(userID, id int64) (types.Meal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.meals[id]
	if !ok || m.UserID != userID {
		return types.Meal{}, ErrMealNotFound
	}
	return m, nil
}

// CreateMeal stores m for the user, assigning its id and creation time.
func (s *Store) CreateMeal(userID int64, m types.Meal) types.Meal {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq.meal++
	m.ID = s.seq.meal
	m.UserID = userID
	m.CreatedAt = s.timestamp()
	s.meals[m.ID] = m
	return m
}

func (s *Store) UpdateMeal(userID, id int64, upd types.MealUpdate) (types.Meal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.meals[id]
	if !ok || m.UserID != userID {
		return types.Meal{}, ErrMealNotFound
	}
	if upd.Name != nil {
		m.Name = *upd.Name
	}
	if upd.MealType != nil {
		m.MealType = *upd.MealType
	}
	if upd.Datetime != nil {
		m.Datetime = *upd.Datetime
	}
	if upd.Calories != nil {
		m.Calories = *upd.Calories
	}
	if upd.Carbs != nil {
		m.Carbs = *upd.Carbs
	}
	if upd.Protein != nil {
		m.Protein = *upd.Protein
	}
	if upd.Fat != nil {
		m.Fat = *upd.Fat
	}
	s.meals[id] = m
	return m, nil
}

func (s *Store) DeleteMeal(userID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.meals[id]
	if !ok || m.UserID != userID {
		return ErrMealNotFound
	}
	delete(s.meals, id)
	return nil
}

// DietSummary returns one summary per calendar day from the date of from to
// the date of to, inclusive. Days without meals have zero totals.
func (s *Store) DietSummary(userID int64, from, to time.Time) []types.DailySummary {
	first := DayRange(from).From
	last := DayRange(to)
	meals := s.mealsIn(userID, TimeRange{From: first, To: last.To})

	byDay := make(map[string][]types.Meal)
	for _, m := range meals {
		key := m.Datetime.UTC().Format(types.DateLayout)
		byDay[key] = append(byDay[key], m)
	}

	summaries := []types.DailySummary{}
	for day := first; !day.After(last.From); day = day.AddDate(0, 0, 1) {
		key := day.Format(types.DateLayout)
		sum := types.DailySummary{Date: key, Meals: []types.Meal{}}
		for _, m := range byDay[key] {
			sum.TotalCalories += m.Calories
			sum.TotalCarbs += m.Carbs
			sum.TotalProtein += m.Protein
			sum.TotalFat += m.Fat
			sum.Meals = append(sum.Meals, m)
		}
		summaries = append(summaries, sum)
	}
	return summaries
}
