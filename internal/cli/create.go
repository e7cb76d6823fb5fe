package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trackme/trackme/pkg/api"
	"github.com/trackme/trackme/pkg/types"
)

func newCreateCmd() *cobra.Command {
	var (
		filename     string
		ignoreErrors bool
	)
	cmd := &cobra.Command{
		Use:   "create -f FILENAME [flags]",
		Short: "Create records from a YAML file",
		Long: `Create records from a file of YAML documents. Each document names its type in
'kind' and carries the request body in 'spec'. Supported kinds:
  - Task
  - Event
  - Meal
  - Steps
  - Vital
  - Activity

Documents are created kind by kind in the order above. Placeholders such as
{{ .ENV.NAME }}, {{ .TODAY }}, {{ .YESTERDAY }} and {{ .NOW }} are expanded first.

Example file:
  kind: Task
  spec:
    title: Review Q4 reports
    tag: work
    due_datetime: "{{ .TODAY }}T14:00:00Z"
  ---
  kind: Steps
  spec:
    date: "{{ .YESTERDAY }}"
    step_count: 7400

Examples:
  trackme create -f today.yaml
  trackme create -f backlog.yaml --ignore-errors`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			resources, err := LoadResourcesFromFile(filename)
			if err != nil {
				return err
			}
			return createResources(cmd, newClient(), resources, ignoreErrors)
		},
	}
	cmd.Flags().StringVarP(&filename, "filename", "f", "", "Filename to use to create the records")
	cmd.MarkFlagRequired("filename")
	cmd.Flags().BoolVarP(&ignoreErrors, "ignore-errors", "i", false, "Ignore errors and continue with the next document")
	return cmd
}

func createResources(cmd *cobra.Command, c *api.Client, resources map[string]ResourceList, ignoreErrors bool) error {
	var statusValues []map[string]any
	defer func() {
		if len(statusValues) > 0 {
			printCreateStatus(cmd, statusValues, ignoreErrors)
		}
	}()

	for _, kind := range orderedKinds {
		for _, resource := range resources[kind] {
			id, err := createResource(cmd.Context(), c, resource)
			if err != nil {
				statusValues = append(statusValues, map[string]any{
					"kind":    resource.Kind,
					"name":    resource.label(),
					"created": false,
					"error":   err.Error(),
				})
				if !ignoreErrors {
					return ErrAlreadyHandled
				}
				continue
			}
			statusValues = append(statusValues, map[string]any{
				"kind":    resource.Kind,
				"name":    resource.label(),
				"created": true,
				"id":      id,
			})
		}
	}
	return nil
}

func printCreateStatus(cmd *cobra.Command, statusValues []map[string]any, ignoreErrors bool) {
	if jsonOutput {
		printJSON(cmd.OutOrStdout(), statusValues)
		return
	}
	for _, status := range statusValues {
		if created, _ := status["created"].(bool); created {
			okLabel.Fprintf(cmd.OutOrStdout(), "[OK] ")
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s: %s (id %d)\n", status["kind"], status["name"], status["id"])
			continue
		}
		w := cmd.ErrOrStderr()
		if ignoreErrors {
			w = cmd.OutOrStdout()
		}
		errorLabel.Fprintf(w, "[ERROR] ")
		fmt.Fprintf(w, "%s: %s: %s\n", status["kind"], status["name"], status["error"])
	}
}

// createResource decodes the spec of r into the request body of its kind,
// validates it and sends it.
func createResource(ctx context.Context, c *api.Client, r Resource) (int64, error) {
	switch r.Kind {
	case KindTask:
		return createFromSpec[types.TaskCreate](ctx, r.Spec, c.CreateTask, func(t *types.Task) int64 { return t.ID })
	case KindEvent:
		return createFromSpec[types.EventCreate](ctx, r.Spec, c.CreateEvent, func(e *types.Event) int64 { return e.ID })
	case KindMeal:
		return createFromSpec[types.MealCreate](ctx, r.Spec, c.CreateMeal, func(m *types.Meal) int64 { return m.ID })
	case KindSteps:
		return createFromSpec[types.StepSummaryCreate](ctx, r.Spec, c.CreateOrUpdateSteps, func(s *types.StepSummary) int64 { return s.ID })
	case KindVital:
		return createFromSpec[types.VitalCreate](ctx, r.Spec, c.CreateVital, func(v *types.Vital) int64 { return v.ID })
	case KindActivity:
		return createFromSpec[types.ActivityCreate](ctx, r.Spec, c.CreateActivity, func(a *types.Activity) int64 { return a.ID })
	default:
		return 0, fmt.Errorf("invalid resource kind: %s", r.Kind)
	}
}

// createFromSpec decodes spec strictly into the request body P.
func createFromSpec[P any, R any](ctx context.Context, spec json.RawMessage, create func(context.Context, any) (*R, error), id func(*R) int64) (int64, error) {
	var body P
	dec := json.NewDecoder(bytes.NewReader(spec))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		return 0, fmt.Errorf("invalid spec: %w", err)
	}
	if err := validatePayload(body); err != nil {
		return 0, err
	}
	created, err := create(ctx, body)
	if err != nil {
		return 0, err
	}
	return id(created), nil
}
