package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/trackme/trackme/pkg/types"
)

func newStepsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "steps",
		Short: "Record and review daily step counts",
	}

	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Set the step count of a day",
		Long: `Set the step count of a day, replacing any count recorded for that day.

Example:
  trackme steps set --count 6342
  trackme steps set --date 2025-03-11 --count 8200 --source apple_health`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			date, _ := cmd.Flags().GetString("date")
			if date == "" {
				date = "today"
			}
			day, err := parseDay("date", date)
			if err != nil {
				return err
			}
			t, err := types.ParseDate(day)
			if err != nil {
				return err
			}
			in := types.StepSummaryCreate{Date: types.NewDate(t)}
			in.StepCount, _ = cmd.Flags().GetInt("count")
			in.Source, _ = cmd.Flags().GetString("source")
			if err := validatePayload(in); err != nil {
				return err
			}
			steps, err := newClient().CreateOrUpdateSteps(cmd.Context(), in)
			if err != nil {
				return err
			}
			return printCreated(cmd, fmt.Sprintf("%s steps on %s", count(float64(steps.StepCount)), steps.Date), steps)
		},
	}
	setCmd.Flags().String("date", "", "Day of the count (default today)")
	setCmd.Flags().Int("count", 0, "Number of steps")
	setCmd.Flags().String("source", "", "Source of the count (default manual)")
	_ = setCmd.MarkFlagRequired("count")

	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "List daily step counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			params, err := rangeParams(cmd, parseDay)
			if err != nil {
				return err
			}
			steps, err := newClient().GetStepSummary(cmd.Context(), params)
			if err != nil {
				return err
			}
			return printList(cmd, steps, "No steps recorded", func(s types.StepSummary) string {
				return joinNonEmpty(s.Date.String(), fmt.Sprintf("%7s", count(float64(s.StepCount))), dim(s.Source))
			})
		},
	}
	addRangeFlags(summaryCmd, "YYYY-MM-DD")

	cmd.AddCommand(setCmd, summaryCmd)
	return cmd
}

func newVitalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vitals",
		Short: "Record and review vitals",
	}

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Record a vital",
		Long: `Record a vital such as heart_rate, blood_glucose, weight or sleep_duration.

Example:
  trackme vitals add --type heart_rate --value 72 --unit bpm`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			in := types.VitalCreate{}
			in.Type, _ = cmd.Flags().GetString("type")
			in.Value, _ = cmd.Flags().GetFloat64("value")
			in.Unit, _ = cmd.Flags().GetString("unit")
			at, _ := cmd.Flags().GetString("at")
			if at == "" {
				at = "now"
			}
			var err error
			if in.RecordedAt, err = parseTime("at", at); err != nil {
				return err
			}
			if err := validatePayload(in); err != nil {
				return err
			}
			vital, err := newClient().CreateVital(cmd.Context(), in)
			if err != nil {
				return err
			}
			return printCreated(cmd, fmt.Sprintf("Recorded %s %s %s", vital.Type, formatValue(vital.Value), vital.Unit), vital)
		},
	}
	addCmd.Flags().String("type", "", "Vital type, e.g. heart_rate")
	addCmd.Flags().Float64("value", 0, "Measured value")
	addCmd.Flags().String("unit", "", "Unit of the value, e.g. bpm")
	addCmd.Flags().String("at", "", "When it was measured (default now)")
	_ = addCmd.MarkFlagRequired("value")

	listCmd := &cobra.Command{
		Use:   "list TYPE",
		Short: "List the recorded values of a vital",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			params, err := rangeParams(cmd, parseRangeBound)
			if err != nil {
				return err
			}
			vitals, err := newClient().GetVitalsByType(cmd.Context(), args[0], params)
			if err != nil {
				return err
			}
			return printList(cmd, vitals, "No values recorded", func(v types.Vital) string {
				return joinNonEmpty(stamp(v.RecordedAt.Time), formatValue(v.Value), dim(v.Unit))
			})
		},
	}
	addRangeFlags(listCmd, "date or datetime")

	cmd.AddCommand(addCmd, listCmd)
	return cmd
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var activityFields = []fieldFlag{
	{flag: "type", field: "type", kind: stringFlag},
	{flag: "duration", field: "duration_minutes", kind: floatFlag},
	{flag: "distance", field: "distance_km", kind: floatFlag},
	{flag: "calories", field: "calories_burned", kind: floatFlag},
	{flag: "at", field: "datetime", kind: timeFlag},
	{flag: "notes", field: "notes", kind: stringFlag},
}

var activityUsage = map[string]string{
	"type":     "Activity type (run, walk, cycle, gym, swim, yoga, other)",
	"duration": "Duration in minutes",
	"distance": "Distance in km",
	"calories": "Calories burned",
	"at":       "When it started, e.g. 2025-03-12T07:30 (default now)",
	"notes":    "Notes",
}

func newActivitiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "activities",
		Aliases: []string{"activity"},
		Short:   "Log and manage workouts",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List activities, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			params, err := rangeParams(cmd, parseRangeBound)
			if err != nil {
				return err
			}
			activities, err := newClient().GetActivities(cmd.Context(), params)
			if err != nil {
				return err
			}
			return printList(cmd, activities, "No activities", activityLine)
		},
	}
	addRangeFlags(listCmd, "date or datetime")

	createCmd := &cobra.Command{
		Use:     "create",
		Short:   "Log an activity",
		Example: `  trackme activities create --type walk --duration 28 --distance 2.1`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			in := types.ActivityCreate{
				DistanceKm:     optFloat(cmd, "distance"),
				CaloriesBurned: optFloat(cmd, "calories"),
				Notes:          optString(cmd, "notes"),
			}
			activityType, _ := cmd.Flags().GetString("type")
			in.Type = types.ActivityType(activityType)
			in.DurationMinutes, _ = cmd.Flags().GetFloat64("duration")
			at, _ := cmd.Flags().GetString("at")
			if at == "" {
				at = "now"
			}
			var err error
			if in.Datetime, err = parseTime("at", at); err != nil {
				return err
			}
			if err := validatePayload(in); err != nil {
				return err
			}
			activity, err := newClient().CreateActivity(cmd.Context(), in)
			if err != nil {
				return err
			}
			return printCreated(cmd, fmt.Sprintf("Logged activity %d", activity.ID), activity)
		},
	}
	addFieldFlags(createCmd, activityFields, activityUsage)

	updateCmd := newUpdateCmd("activity", activityFields, activityUsage, func(cmd *cobra.Command, id int64, body json.RawMessage) (any, error) {
		return newClient().UpdateActivity(cmd.Context(), id, body)
	})
	deleteCmd := newDeleteCmd("activity", func(cmd *cobra.Command, id int64) error {
		return newClient().DeleteActivity(cmd.Context(), id)
	})

	cmd.AddCommand(listCmd, createCmd, updateCmd, deleteCmd)
	return cmd
}

func activityLine(a types.Activity) string {
	detail := ""
	if a.DistanceKm != nil {
		detail = formatValue(*a.DistanceKm) + " km"
	}
	if a.CaloriesBurned != nil {
		detail = joinNonEmpty(detail, count(*a.CaloriesBurned)+" kcal")
	}
	return joinNonEmpty(fmt.Sprintf("%4d", a.ID), stamp(a.Datetime.Time), string(a.Type),
		formatValue(a.DurationMinutes)+" min", dim(detail), dim(a.Notes.String()))
}
