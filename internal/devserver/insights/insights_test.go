package insights

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/trackme/trackme/pkg/types"
)

var today = time.Date(2024, 12, 3, 15, 0, 0, 0, time.UTC)

func defaultGoals() types.Goals {
	return types.Goals{
		DailyStepGoal:    types.DefaultDailyStepGoal,
		DailyCalorieGoal: types.DefaultDailyCalorieGoal,
		DailyProteinGoal: types.DefaultDailyProteinGoal,
		DailyCarbsGoal:   types.DefaultDailyCarbsGoal,
		DailyFatGoal:     types.DefaultDailyFatGoal,
		SleepHoursGoal:   types.DefaultSleepHoursGoal,
	}
}

func stepsFor(counts ...int) []types.StepSummary {
	var steps []types.StepSummary
	for i, c := range counts {
		d := today.AddDate(0, 0, -(len(counts) - 1 - i))
		steps = append(steps, types.StepSummary{Date: types.NewDate(d), StepCount: c})
	}
	return steps
}

func messages(s []Suggestion) []string {
	var out []string
	for _, x := range s {
		out = append(out, x.Message)
	}
	return out
}

func TestEmptySnapshot(t *testing.T) {
	got := Generate(Snapshot{Goals: defaultGoals(), Today: today})
	assert.Equal(t, []Suggestion{
		{types.InsightCategoryMovement, "Start tracking your daily steps to get personalized movement insights!"},
		{types.InsightCategoryDiet, "Start logging your meals to get personalized nutrition insights!"},
	}, got)
}

func TestStepRules(t *testing.T) {
	tests := []struct {
		name  string
		steps []types.StepSummary
		want  []string
	}{
		{
			name:  "below goal",
			steps: stepsFor(5200, 7800, 6500, 8200, 6342, 7100, 7000),
			want:  []string{"You're averaging 6877 steps/day, 3123 below your goal. Try a 10-minute walk!"},
		},
		{
			name:  "close to goal",
			steps: stepsFor(9500, 10000, 9800),
			want:  []string{"Great job! You're close to your step goal with 9766 steps/day. Keep it up! 🎉"},
		},
		{
			name:  "between thresholds",
			steps: stepsFor(8500, 8500),
			want:  nil,
		},
		{
			name:  "inactive recently",
			steps: stepsFor(12000, 12000, 4000, 3000, 4500, 4999),
			want: []string{
				"You're averaging 6749 steps/day, 3251 below your goal. Try a 10-minute walk!",
				"You've been less active the past 3 days. Consider going outside for a walk!",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := analyzeSteps(Snapshot{Goals: defaultGoals(), Today: today, Steps: tt.steps})
			assert.Equal(t, tt.want, messages(got))
		})
	}

	got := analyzeSteps(Snapshot{Goals: defaultGoals(), Today: today, Steps: stepsFor(1000, 1000, 1000, 1000)})
	assert.Equal(t, types.InsightCategoryOutdoor, got[1].Category)
}

func meal(day int, calories, carbs, protein float64) types.Meal {
	return types.Meal{
		Datetime: types.NewTimestamp(today.AddDate(0, 0, -day)),
		Calories: calories,
		Carbs:    carbs,
		Protein:  protein,
	}
}

func TestDietRules(t *testing.T) {
	meals := []types.Meal{
		meal(0, 1500, 200, 10),
		meal(0, 1200, 150, 10),
		meal(1, 2000, 300, 20),
	}
	got := analyzeDiet(Snapshot{Goals: defaultGoals(), Meals: meals})
	assert.Equal(t, []string{
		"You're averaging 2350 calories/day, above your 2000 goal. Consider lighter meals.",
		"Your carb intake has been high lately. Try adding more protein and vegetables.",
		"You're low on protein (avg 20g/day). Consider adding lean meats, fish, or legumes.",
	}, messages(got))

	balanced := []types.Meal{meal(0, 1800, 200, 60)}
	assert.Empty(t, analyzeDiet(Snapshot{Goals: defaultGoals(), Meals: balanced}))
}

func TestActivityRules(t *testing.T) {
	assert.Empty(t, analyzeActivity(Snapshot{}))
	assert.Equal(t,
		[]string{"Log your workouts to get better activity insights and track your fitness progress!"},
		messages(analyzeActivity(Snapshot{HasSteps: true})))
	assert.Equal(t,
		[]string{"You've only logged a few workouts this week. Aim for at least 3-4 sessions for better health!"},
		messages(analyzeActivity(Snapshot{Activities: make([]types.Activity, 2)})))
	assert.Empty(t, analyzeActivity(Snapshot{Activities: make([]types.Activity, 3)}))
}

func TestVitalRules(t *testing.T) {
	s := Snapshot{
		Goals:     defaultGoals(),
		Sleep:     []types.Vital{{Value: 6}, {Value: 6.6}},
		HeartRate: []types.Vital{{Value: 85}, {Value: 82}},
	}
	got := analyzeVitals(s)
	assert.Equal(t, []Suggestion{
		{types.InsightCategorySleep, "You're averaging 6.3 hours of sleep. Try to get at least 8.0 hours for optimal health."},
		{types.InsightCategoryGeneral, "Your average heart rate is a bit elevated. Consider stress management and regular exercise."},
	}, got)

	s.Sleep = []types.Vital{{Value: 7.53}}
	s.HeartRate = []types.Vital{{Value: 72}}
	assert.Empty(t, analyzeVitals(s))
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "8.0", formatHours(8))
	assert.Equal(t, "7.5", formatHours(7.5))
}
