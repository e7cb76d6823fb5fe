package store

import (
	"github.com/trackme/trackme/pkg/types"
)

// goalsLocked returns the user's goals, creating the defaults on first use.
// The caller must hold the write lock.
func (s *Store) goalsLocked(userID int64) types.Goals {
	if g, ok := s.goals[userID]; ok {
		return g
	}
	s.seq.goals++
	g := types.Goals{
		ID:               s.seq.goals,
		UserID:           userID,
		DailyStepGoal:    types.DefaultDailyStepGoal,
		DailyCalorieGoal: types.DefaultDailyCalorieGoal,
		DailyProteinGoal: types.DefaultDailyProteinGoal,
		DailyCarbsGoal:   types.DefaultDailyCarbsGoal,
		DailyFatGoal:     types.DefaultDailyFatGoal,
		SleepHoursGoal:   types.DefaultSleepHoursGoal,
	}
	s.goals[userID] = g
	return g
}

// GetGoals returns the user's goals, creating the defaults if needed.
func (s *Store) GetGoals(userID int64) types.Goals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.goalsLocked(userID)
}

func (s *Store) UpdateGoals(userID int64, upd types.GoalsUpdate) types.Goals {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.goalsLocked(userID)
	if upd.DailyStepGoal != nil {
		g.DailyStepGoal = *upd.DailyStepGoal
	}
	if upd.DailyCalorieGoal != nil {
		g.DailyCalorieGoal = *upd.DailyCalorieGoal
	}
	if upd.DailyProteinGoal != nil {
		g.DailyProteinGoal = *upd.DailyProteinGoal
	}
	if upd.DailyCarbsGoal != nil {
		g.DailyCarbsGoal = *upd.DailyCarbsGoal
	}
	if upd.DailyFatGoal != nil {
		g.DailyFatGoal = *upd.DailyFatGoal
	}
	if upd.SleepHoursGoal != nil {
		g.SleepHoursGoal = *upd.SleepHoursGoal
	}
	s.goals[userID] = g
	return g
}

func (s *Store) GetConnections(userID int64) types.Connections {
	g := s.GetGoals(userID)
	return types.Connections{
		AppleHealthConnected:  g.AppleHealthConnected,
		NutritionAPIConnected: g.NutritionAPIConnected,
	}
}

func (s *Store) UpdateConnections(userID int64, upd types.ConnectionsUpdate) types.Connections {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.goalsLocked(userID)
	if upd.AppleHealthConnected != nil {
		g.AppleHealthConnected = *upd.AppleHealthConnected
	}
	if upd.NutritionAPIConnected != nil {
		g.NutritionAPIConnected = *upd.NutritionAPIConnected
	}
	s.goals[userID] = g
	return types.Connections{
		AppleHealthConnected:  g.AppleHealthConnected,
		NutritionAPIConnected: g.NutritionAPIConnected,
	}
}
