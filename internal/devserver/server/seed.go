package server

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/trackme/trackme/internal/devserver/auth"
	"github.com/trackme/trackme/internal/devserver/config"
	"github.com/trackme/trackme/internal/devserver/store"
	"github.com/trackme/trackme/pkg/types"
)

// seedStepGoal is the step goal of the demo account.
const seedStepGoal = 8000

// Step counts of the past week, oldest first; the last one is today.
var seedSteps = []int{4800, 7100, 5200, 7800, 6500, 8200, 6342}

var seedInsights = []struct {
	category types.InsightCategory
	message  string
}{
	{types.InsightCategoryMovement, "You're close to your step goal. Take a 10-minute walk to reach 8,000 steps."},
	{types.InsightCategoryDiet, "You've eaten high carbs today. Aim for a lighter, protein-rich dinner."},
	{types.InsightCategoryOutdoor, "You haven't been outside much this week. Try a 15-minute outdoor walk today."},
	{types.InsightCategorySleep, "Your sleep schedule varies by 2+ hours. Try going to bed at the same time."},
}

// Seed creates the demo account described by cfg with a day of sample
// data: tasks, events, meals, a week of steps, vitals, a walk and insights.
func Seed(ctx context.Context, st *store.Store, cfg config.SeedConfig) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	hash, err := auth.HashPassword(cfg.Password)
	if err != nil {
		return err
	}
	user, err := st.CreateUser(cfg.Name, cfg.Email, hash)
	if err != nil {
		return err
	}
	uid := user.ID

	today := store.DayRange(st.Now()).From
	at := func(hour, min int) types.Timestamp {
		return types.NewTimestamp(today.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute))
	}
	str := func(s string) *string { return &s }
	tsPtr := func(t types.Timestamp) *types.Timestamp { return &t }

	goal := seedStepGoal
	st.UpdateGoals(uid, types.GoalsUpdate{DailyStepGoal: &goal})

	st.CreateTask(uid, types.TaskCreate{Title: "Team standup", Status: types.TaskStatusDone, Tag: types.TaskTagWork, DueDatetime: tsPtr(at(9, 0))})
	st.CreateTask(uid, types.TaskCreate{Title: "Review Q4 reports", Tag: types.TaskTagWork, DueDatetime: tsPtr(at(14, 0))})
	st.CreateTask(uid, types.TaskCreate{Title: "Grocery shopping", Tag: types.TaskTagPersonal})
	st.CreateTask(uid, types.TaskCreate{Title: "Call mom", Tag: types.TaskTagPersonal, DueDatetime: tsPtr(at(17, 0))})

	events := []types.EventCreate{
		{Title: "Team standup", StartDatetime: at(9, 0), EndDatetime: at(9, 30), Location: str("Conference Room A")},
		{Title: "Doctor appointment", StartDatetime: at(14, 30), EndDatetime: at(15, 30), Location: str("City Medical Center")},
		{Title: "Yoga class", StartDatetime: at(18, 0), EndDatetime: at(19, 0), Location: str("Wellness Studio")},
	}
	for _, e := range events {
		if _, err := st.CreateEvent(uid, e); err != nil {
			return err
		}
	}

	meals := []types.Meal{
		{Name: "Oatmeal with berries", MealType: types.MealTypeBreakfast, Datetime: at(8, 0), Calories: 280, Carbs: 50, Protein: 8, Fat: 5},
		{Name: "Greek yogurt", MealType: types.MealTypeBreakfast, Datetime: at(8, 5), Calories: 120, Carbs: 8, Protein: 15, Fat: 3},
		{Name: "Grilled chicken salad", MealType: types.MealTypeLunch, Datetime: at(12, 30), Calories: 380, Carbs: 15, Protein: 35, Fat: 18},
		{Name: "Apple", MealType: types.MealTypeLunch, Datetime: at(12, 35), Calories: 95, Carbs: 25, Protein: 0.5, Fat: 0.3},
		{Name: "Salmon with vegetables", MealType: types.MealTypeDinner, Datetime: at(19, 0), Calories: 375, Carbs: 12, Protein: 34, Fat: 20},
	}
	for _, m := range meals {
		st.CreateMeal(uid, m)
	}

	for i, count := range seedSteps {
		day := today.AddDate(0, 0, i-len(seedSteps)+1)
		st.UpsertSteps(uid, types.StepSummaryCreate{Date: types.NewDate(day), StepCount: count, Source: "apple_health"})
	}

	vitals := []types.VitalCreate{
		{Type: types.VitalHeartRate, Value: 72, Unit: "bpm", RecordedAt: at(7, 0)},
		{Type: types.VitalBloodGlucose, Value: 95, Unit: "mg/dL", RecordedAt: at(7, 5)},
		{Type: types.VitalSleepDuration, Value: 7.53, Unit: "hours", RecordedAt: at(6, 30)},
		{Type: types.VitalWeight, Value: 148, Unit: "lbs", RecordedAt: at(7, 10)},
	}
	for _, v := range vitals {
		st.CreateVital(uid, v)
	}

	distance := 2.1
	st.CreateActivity(uid, types.ActivityCreate{Type: types.ActivityTypeWalk, DurationMinutes: 28, DistanceKm: &distance, Datetime: at(7, 30), Notes: str("Morning walk")})

	for _, in := range seedInsights {
		st.AddInsight(uid, in.category, in.message)
	}

	log.Info().Str("email", cfg.Email).Int64("user_id", uid).Msg("seeded demo account")
	return nil
}
