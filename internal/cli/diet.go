package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trackme/trackme/pkg/api"
	"github.com/trackme/trackme/pkg/types"
)

var mealFields = []fieldFlag{
	{flag: "name", field: "name", kind: stringFlag},
	{flag: "type", field: "meal_type", kind: stringFlag},
	{flag: "at", field: "datetime", kind: timeFlag},
	{flag: "calories", field: "calories", kind: floatFlag},
	{flag: "carbs", field: "carbs", kind: floatFlag},
	{flag: "protein", field: "protein", kind: floatFlag},
	{flag: "fat", field: "fat", kind: floatFlag},
}

var mealUsage = map[string]string{
	"name":     "Name of the meal",
	"type":     "Meal type (breakfast, lunch, dinner, snack)",
	"at":       "When it was eaten, e.g. 2025-03-12T12:30 (default now)",
	"calories": "Calories (kcal)",
	"carbs":    "Carbohydrates (g)",
	"protein":  "Protein (g)",
	"fat":      "Fat (g)",
}

func newMealsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "meals",
		Aliases: []string{"meal"},
		Short:   "Log and manage meals",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List meals, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			var f api.MealFilter
			var err error
			date, _ := cmd.Flags().GetString("date")
			if f.Date, err = parseDay("date", date); err != nil {
				return err
			}
			meals, err := newClient().GetMeals(cmd.Context(), f.Params())
			if err != nil {
				return err
			}
			return printList(cmd, meals, "No meals", mealLine)
		},
	}
	listCmd.Flags().String("date", "", "Only meals of this day")

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Log a meal",
		Long: `Log a meal. With --food the server looks up the nutrition values of the food;
otherwise the given values are stored.

Examples:
  trackme meals create --name Lunch --type lunch --food "grilled chicken salad" --quantity "1 bowl"
  trackme meals create --name Apple --type snack --calories 95 --carbs 25`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			in := types.MealCreate{
				FoodName: optString(cmd, "food"),
				Quantity: optString(cmd, "quantity"),
				Calories: optFloat(cmd, "calories"),
				Carbs:    optFloat(cmd, "carbs"),
				Protein:  optFloat(cmd, "protein"),
				Fat:      optFloat(cmd, "fat"),
			}
			in.Name, _ = cmd.Flags().GetString("name")
			mealType, _ := cmd.Flags().GetString("type")
			in.MealType = types.MealType(mealType)
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
			meal, err := newClient().CreateMeal(cmd.Context(), in)
			if err != nil {
				return err
			}
			return printCreated(cmd, fmt.Sprintf("Logged meal %d (%s kcal)", meal.ID, count(meal.Calories)), meal)
		},
	}
	addFieldFlags(createCmd, mealFields, mealUsage)
	createCmd.Flags().String("food", "", "Food to look up the nutrition values for")
	createCmd.Flags().String("quantity", "", "Quantity of the food, e.g. \"200g\"")

	getCmd := &cobra.Command{
		Use:   "get ID",
		Short: "Show a meal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			meal, err := newClient().GetMeal(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printValue(cmd, meal)
		},
	}

	updateCmd := newUpdateCmd("meal", mealFields, mealUsage, func(cmd *cobra.Command, id int64, body json.RawMessage) (any, error) {
		return newClient().UpdateMeal(cmd.Context(), id, body)
	})
	deleteCmd := newDeleteCmd("meal", func(cmd *cobra.Command, id int64) error {
		return newClient().DeleteMeal(cmd.Context(), id)
	})

	cmd.AddCommand(listCmd, createCmd, getCmd, updateCmd, deleteCmd)
	return cmd
}

func mealLine(m types.Meal) string {
	macros := fmt.Sprintf("C %.0fg  P %.0fg  F %.0fg", m.Carbs, m.Protein, m.Fat)
	return joinNonEmpty(fmt.Sprintf("%4d", m.ID), stamp(m.Datetime.Time), m.Name, dim(string(m.MealType)),
		count(m.Calories)+" kcal", dim(macros))
}

func newDietCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diet",
		Short: "Nutrition summaries",
	}

	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Show daily nutrition totals",
		Long: `Show the nutrition totals of each day in the range. Without a range the server
reports the last seven days and today.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			params, err := rangeParams(cmd, parseDay)
			if err != nil {
				return err
			}
			summary, err := newClient().GetDietSummary(cmd.Context(), params)
			if err != nil {
				return err
			}
			return printList(cmd, summary, "No data", func(d types.DailySummary) string {
				macros := fmt.Sprintf("C %.0fg  P %.0fg  F %.0fg", d.TotalCarbs, d.TotalProtein, d.TotalFat)
				return joinNonEmpty(d.Date, fmt.Sprintf("%7s kcal", count(d.TotalCalories)), dim(macros),
					dim(fmt.Sprintf("%d meals", len(d.Meals))))
			})
		},
	}
	addRangeFlags(summaryCmd, "YYYY-MM-DD")

	cmd.AddCommand(summaryCmd)
	return cmd
}
