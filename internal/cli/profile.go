package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

var profileFields = []fieldFlag{
	{flag: "name", field: "name", kind: stringFlag},
	{flag: "email", field: "email", kind: stringFlag},
}

var profileUsage = map[string]string{
	"name":  "Your name",
	"email": "Email address",
}

var goalFields = []fieldFlag{
	{flag: "steps", field: "daily_step_goal", kind: intFlag},
	{flag: "calories", field: "daily_calorie_goal", kind: floatFlag},
	{flag: "protein", field: "daily_protein_goal", kind: floatFlag},
	{flag: "carbs", field: "daily_carbs_goal", kind: floatFlag},
	{flag: "fat", field: "daily_fat_goal", kind: floatFlag},
	{flag: "sleep", field: "sleep_hours_goal", kind: floatFlag},
}

var goalUsage = map[string]string{
	"steps":    "Daily step goal",
	"calories": "Daily calorie goal (kcal)",
	"protein":  "Daily protein goal (g)",
	"carbs":    "Daily carbohydrate goal (g)",
	"fat":      "Daily fat goal (g)",
	"sleep":    "Hours of sleep per night",
}

var connectionFields = []fieldFlag{
	{flag: "apple-health", field: "apple_health_connected", kind: boolFlag},
	{flag: "nutrition-api", field: "nutrition_api_connected", kind: boolFlag},
}

var connectionUsage = map[string]string{
	"apple-health":  "Whether Apple Health is connected",
	"nutrition-api": "Whether the nutrition API is connected",
}

// settingsCmd builds a command with get and update subcommands for one
// singleton resource of the profile.
func settingsCmd(use, short string, fields []fieldFlag, usage map[string]string,
	get func(cmd *cobra.Command) (any, error),
	update func(cmd *cobra.Command, body json.RawMessage) (any, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
	}

	getCmd := &cobra.Command{
		Use:   "get",
		Short: "Show the " + use,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			v, err := get(cmd)
			if err != nil {
				return err
			}
			return printValue(cmd, v)
		},
	}

	updateCmd := &cobra.Command{
		Use:   "update",
		Short: "Update the " + use,
		Long: `Update the ` + use + `. Only the given fields are changed. Other fields can be set with
--set key=value.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			p, err := patchFromFlags(cmd, fields)
			if err != nil {
				return err
			}
			v, err := update(cmd, p.payload())
			if err != nil {
				return err
			}
			return printCreated(cmd, "Updated "+use, v)
		},
	}
	addFieldFlags(updateCmd, fields, usage)
	updateCmd.Flags().StringArray("set", nil, "Set a field, as key=value (repeatable)")

	cmd.AddCommand(getCmd, updateCmd)
	return cmd
}

func newProfileCmd() *cobra.Command {
	return settingsCmd("profile", "Show or update your profile", profileFields, profileUsage,
		func(cmd *cobra.Command) (any, error) {
			return newClient().GetProfile(cmd.Context())
		},
		func(cmd *cobra.Command, body json.RawMessage) (any, error) {
			return newClient().UpdateProfile(cmd.Context(), body)
		})
}

func newGoalsCmd() *cobra.Command {
	return settingsCmd("goals", "Show or update your daily goals", goalFields, goalUsage,
		func(cmd *cobra.Command) (any, error) {
			return newClient().GetGoals(cmd.Context())
		},
		func(cmd *cobra.Command, body json.RawMessage) (any, error) {
			return newClient().UpdateGoals(cmd.Context(), body)
		})
}

func newConnectionsCmd() *cobra.Command {
	return settingsCmd("connections", "Show or update connected services", connectionFields, connectionUsage,
		func(cmd *cobra.Command) (any, error) {
			return newClient().GetConnections(cmd.Context())
		},
		func(cmd *cobra.Command, body json.RawMessage) (any, error) {
			return newClient().UpdateConnections(cmd.Context(), body)
		})
}
