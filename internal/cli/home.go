package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/trackme/trackme/pkg/api"
	"github.com/trackme/trackme/pkg/types"
)

// activeMinutesGoal is the daily target for logged activity.
const activeMinutesGoal = 30

// Home is today's overview.
type Home struct {
	User          *types.User        `json:"user"`
	Date          string             `json:"date"`
	Tasks         []types.Task       `json:"tasks"`
	Nutrition     types.DailySummary `json:"nutrition"`
	Steps         int                `json:"steps"`
	ActiveMinutes float64            `json:"active_minutes"`
	Goals         *types.Goals       `json:"goals"`
	Insights      []types.Insight    `json:"insights"`
}

func newHomeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "home",
		Short: "Show today's dashboard",
		Long: `Show today's dashboard: the tasks due today, calories, steps and active minutes
against your goals, and today's insights.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			home, err := loadHome(cmd.Context(), newClient())
			if err != nil {
				return err
			}
			if jsonOutput {
				return printValue(cmd, home)
			}
			printHome(cmd.OutOrStdout(), home)
			return nil
		},
	}
}

// loadHome collects the dashboard of the current day.
func loadHome(ctx context.Context, c *api.Client) (*Home, error) {
	day := today()
	date := api.Day(day)
	home := &Home{Date: date, Nutrition: types.DailySummary{Date: date, Meals: []types.Meal{}}}

	var err error
	if home.User, err = c.GetCurrentUser(ctx); err != nil {
		return nil, err
	}
	if home.Goals, err = c.GetGoals(ctx); err != nil {
		return nil, err
	}

	tasks, err := c.GetTasks(ctx, nil)
	if err != nil {
		return nil, err
	}
	home.Tasks = []types.Task{}
	for _, t := range tasks {
		if t.DueDatetime.IsZero() || api.Day(t.DueDatetime.UTC()) == date {
			home.Tasks = append(home.Tasks, t)
		}
	}

	dayRange := api.DateRange{From: date, To: date}
	summary, err := c.GetDietSummary(ctx, dayRange.Params())
	if err != nil {
		return nil, err
	}
	if len(summary) > 0 {
		home.Nutrition = summary[0]
	}

	steps, err := c.GetStepSummary(ctx, dayRange.Params())
	if err != nil {
		return nil, err
	}
	for _, s := range steps {
		home.Steps += s.StepCount
	}

	activities, err := c.GetActivities(ctx, api.DateRange{From: date, To: date + "T23:59:59"}.Params())
	if err != nil {
		return nil, err
	}
	for _, a := range activities {
		home.ActiveMinutes += a.DurationMinutes
	}

	if home.Insights, err = c.GetTodayInsights(ctx); err != nil {
		return nil, err
	}
	return home, nil
}

func printHome(out io.Writer, h *Home) {
	headLabel.Fprintf(out, "%s, %s\n", greeting(), h.User.Name)
	dimLabel.Fprintln(out, now().Format("Monday, January 2"))

	done := 0
	for _, t := range h.Tasks {
		if t.Status == types.TaskStatusDone {
			done++
		}
	}
	fmt.Fprintln(out)
	headLabel.Fprintf(out, "Today's tasks (%d/%d done)\n", done, len(h.Tasks))
	if len(h.Tasks) == 0 {
		dimLabel.Fprintln(out, "  Nothing planned")
	}
	for _, t := range h.Tasks {
		check := "[ ]"
		if t.Status == types.TaskStatusDone {
			check = okLabel.Sprint("[x]")
		}
		due := "     "
		if !t.DueDatetime.IsZero() {
			due = clock(t.DueDatetime.Time)
		}
		fmt.Fprintf(out, "  %s %s %s\n", check, due, t.Title)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%-9s %s / %s kcal\n", "Calories", count(h.Nutrition.TotalCalories), count(h.Goals.DailyCalorieGoal))
	stepsLine := fmt.Sprintf("%-9s %s / %s", "Steps", count(float64(h.Steps)), count(float64(h.Goals.DailyStepGoal)))
	if left := h.Goals.DailyStepGoal - h.Steps; left > 0 {
		stepsLine += dim(fmt.Sprintf("  (%s to go)", count(float64(left))))
	} else {
		stepsLine += okLabel.Sprint("  goal reached")
	}
	fmt.Fprintln(out, stepsLine)
	fmt.Fprintf(out, "%-9s %s / %d min\n", "Active", formatValue(h.ActiveMinutes), activeMinutesGoal)

	if len(h.Insights) > 0 {
		fmt.Fprintln(out)
		headLabel.Fprintln(out, "Insights")
		for _, in := range h.Insights {
			fmt.Fprintf(out, "  %s %s\n", headLabel.Sprint(categoryTitle(in.Category)+":"), in.Message)
		}
	}
}

func greeting() string {
	switch h := now().Hour(); {
	case h < 12:
		return "Good morning"
	case h < 17:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}
