package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trackme/trackme/pkg/types"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func newInsightsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "insights",
		Aliases: []string{"insight"},
		Short:   "Suggestions derived from your data",
	}

	todayCmd := &cobra.Command{
		Use:   "today",
		Short: "Show today's insights",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			insights, err := newClient().GetTodayInsights(cmd.Context())
			if err != nil {
				return err
			}
			return printList(cmd, insights, "No insights for today", func(in types.Insight) string {
				return fmt.Sprintf("%4d  %s %s", in.ID, headLabel.Sprint(categoryTitle(in.Category)+":"), in.Message)
			})
		},
	}

	dismissCmd := &cobra.Command{
		Use:   "dismiss ID",
		Short: "Dismiss an insight",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := newClient().DismissInsight(cmd.Context(), id); err != nil {
				return err
			}
			return printDone(cmd, fmt.Sprintf("Dismissed insight %d", id), nil)
		},
	}

	cmd.AddCommand(todayCmd, dismissCmd)
	return cmd
}

func categoryTitle(c types.InsightCategory) string {
	return cases.Title(language.English).String(string(c))
}
