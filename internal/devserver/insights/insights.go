// Package insights derives suggestions from a user's recent health data.
// The rules are pure functions of a Snapshot; storing and expiring the
// resulting insights is left to the caller.
package insights

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/trackme/trackme/pkg/types"
)

// Lookback is the window of data the rules consider.
const Lookback = 7 * 24 * time.Hour

// Expiry is the age after which undismissed insights are replaced.
const Expiry = 24 * time.Hour

// Snapshot is the data the rules are evaluated on. Steps cover the dates
// from Today-7d to Today; meals, activities and vitals cover Lookback.
type Snapshot struct {
	Goals      types.Goals
	Today      time.Time
	Steps      []types.StepSummary
	HasSteps   bool // any step entry at all, not only within Lookback
	Meals      []types.Meal
	Activities []types.Activity
	Sleep      []types.Vital
	HeartRate  []types.Vital
}

// Suggestion is a generated insight.
type Suggestion struct {
	Category types.InsightCategory
	Message  string
}

// Generate evaluates all rules in order: movement, diet, activity, vitals.
func Generate(s Snapshot) []Suggestion {
	var out []Suggestion
	out = append(out, analyzeSteps(s)...)
	out = append(out, analyzeDiet(s)...)
	out = append(out, analyzeActivity(s)...)
	out = append(out, analyzeVitals(s)...)
	return out
}

func analyzeSteps(s Snapshot) []Suggestion {
	if len(s.Steps) == 0 {
		return []Suggestion{{types.InsightCategoryMovement, "Start tracking your daily steps to get personalized movement insights!"}}
	}

	var out []Suggestion
	total := 0
	for _, st := range s.Steps {
		total += st.StepCount
	}
	avg := float64(total) / float64(len(s.Steps))
	goal := float64(s.Goals.DailyStepGoal)

	switch {
	case avg < goal*0.8:
		shortfall := s.Goals.DailyStepGoal - int(avg)
		out = append(out, Suggestion{types.InsightCategoryMovement,
			fmt.Sprintf("You're averaging %d steps/day, %d below your goal. Try a 10-minute walk!", int(avg), shortfall)})
	case avg >= goal*0.9:
		out = append(out, Suggestion{types.InsightCategoryMovement,
			fmt.Sprintf("Great job! You're close to your step goal with %d steps/day. Keep it up! 🎉", int(avg))})
	}

	today := time.Date(s.Today.Year(), s.Today.Month(), s.Today.Day(), 0, 0, 0, 0, time.UTC)
	since := today.AddDate(0, 0, -3)
	recent, low := 0, 0
	for _, st := range s.Steps {
		if st.Date.Before(since) {
			continue
		}
		recent++
		if st.StepCount < 5000 {
			low++
		}
	}
	if recent > 0 && recent == low {
		out = append(out, Suggestion{types.InsightCategoryOutdoor,
			"You've been less active the past 3 days. Consider going outside for a walk!"})
	}
	return out
}

func analyzeDiet(s Snapshot) []Suggestion {
	if len(s.Meals) == 0 {
		return []Suggestion{{types.InsightCategoryDiet, "Start logging your meals to get personalized nutrition insights!"}}
	}

	days := make(map[string]struct{})
	var calories, carbs, protein float64
	for _, m := range s.Meals {
		days[m.Datetime.UTC().Format(types.DateLayout)] = struct{}{}
		calories += m.Calories
		carbs += m.Carbs
		protein += m.Protein
	}
	n := float64(len(days))
	avgCalories, avgCarbs, avgProtein := calories/n, carbs/n, protein/n

	var out []Suggestion
	if avgCalories > s.Goals.DailyCalorieGoal*1.15 {
		out = append(out, Suggestion{types.InsightCategoryDiet,
			fmt.Sprintf("You're averaging %d calories/day, above your %d goal. Consider lighter meals.", int(avgCalories), int(s.Goals.DailyCalorieGoal))})
	}
	if avgCarbs > s.Goals.DailyCarbsGoal*1.2 {
		out = append(out, Suggestion{types.InsightCategoryDiet,
			"Your carb intake has been high lately. Try adding more protein and vegetables."})
	}
	if avgProtein < s.Goals.DailyProteinGoal*0.7 {
		out = append(out, Suggestion{types.InsightCategoryDiet,
			fmt.Sprintf("You're low on protein (avg %dg/day). Consider adding lean meats, fish, or legumes.", int(avgProtein))})
	}
	return out
}

func analyzeActivity(s Snapshot) []Suggestion {
	if len(s.Activities) == 0 {
		if s.HasSteps {
			return []Suggestion{{types.InsightCategoryMovement,
				"Log your workouts to get better activity insights and track your fitness progress!"}}
		}
		return nil
	}
	if len(s.Activities) < 3 {
		return []Suggestion{{types.InsightCategoryMovement,
			"You've only logged a few workouts this week. Aim for at least 3-4 sessions for better health!"}}
	}
	return nil
}

func analyzeVitals(s Snapshot) []Suggestion {
	var out []Suggestion
	if len(s.Sleep) > 0 {
		avg := average(s.Sleep)
		if avg < s.Goals.SleepHoursGoal*0.85 {
			out = append(out, Suggestion{types.InsightCategorySleep,
				fmt.Sprintf("You're averaging %.1f hours of sleep. Try to get at least %s hours for optimal health.", avg, formatHours(s.Goals.SleepHoursGoal))})
		}
	}
	if len(s.HeartRate) > 0 && average(s.HeartRate) > 80 {
		out = append(out, Suggestion{types.InsightCategoryGeneral,
			"Your average heart rate is a bit elevated. Consider stress management and regular exercise."})
	}
	return out
}

func average(vitals []types.Vital) float64 {
	var sum float64
	for _, v := range vitals {
		sum += v.Value
	}
	return sum / float64(len(vitals))
}

// formatHours prints a goal with at least one decimal, as in "8.0" or "7.5".
func formatHours(h float64) string {
	s := strconv.FormatFloat(h, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
