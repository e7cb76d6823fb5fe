package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trackme/trackme/pkg/api"
	"github.com/trackme/trackme/pkg/types"
)

var taskFields = []fieldFlag{
	{flag: "title", field: "title", kind: stringFlag},
	{flag: "description", field: "description", kind: stringFlag},
	{flag: "status", field: "status", kind: stringFlag},
	{flag: "tag", field: "tag", kind: stringFlag},
	{flag: "due", field: "due_datetime", kind: timeFlag},
}

var taskUsage = map[string]string{
	"title":       "Title of the task",
	"description": "Description",
	"status":      "Status (todo, in_progress, done)",
	"tag":         "Tag (work, personal, health, other)",
	"due":         "Due date and time, e.g. 2025-03-12T14:00",
}

func newTasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task"},
		Short:   "Manage tasks",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List tasks ordered by due date. Tasks without a due date come last.

Examples:
  trackme tasks list
  trackme tasks list --date today --status todo`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			var f api.TaskFilter
			var err error
			date, _ := cmd.Flags().GetString("date")
			if f.Date, err = parseDay("date", date); err != nil {
				return err
			}
			status, _ := cmd.Flags().GetString("status")
			f.Status = types.TaskStatus(status)
			tasks, err := newClient().GetTasks(cmd.Context(), f.Params())
			if err != nil {
				return err
			}
			return printList(cmd, tasks, "No tasks", taskLine)
		},
	}
	listCmd.Flags().String("date", "", "Only tasks due on or after this date")
	listCmd.Flags().String("status", "", "Only tasks with this status")

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a task",
		Example: `  trackme tasks create --title "Call mom" --tag personal --due 2025-03-12T17:00`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			in := types.TaskCreate{Description: optString(cmd, "description")}
			in.Title, _ = cmd.Flags().GetString("title")
			status, _ := cmd.Flags().GetString("status")
			tag, _ := cmd.Flags().GetString("tag")
			in.Status, in.Tag = types.TaskStatus(status), types.TaskTag(tag)
			if due, _ := cmd.Flags().GetString("due"); due != "" {
				t, err := parseTime("due", due)
				if err != nil {
					return err
				}
				in.DueDatetime = &t
			}
			if err := validatePayload(in); err != nil {
				return err
			}
			task, err := newClient().CreateTask(cmd.Context(), in)
			if err != nil {
				return err
			}
			return printCreated(cmd, fmt.Sprintf("Created task %d", task.ID), task)
		},
	}
	addFieldFlags(createCmd, taskFields, taskUsage)

	getCmd := &cobra.Command{
		Use:   "get ID",
		Short: "Show a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			task, err := newClient().GetTask(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printValue(cmd, task)
		},
	}

	updateCmd := newUpdateCmd("task", taskFields, taskUsage, func(cmd *cobra.Command, id int64, body json.RawMessage) (any, error) {
		return newClient().UpdateTask(cmd.Context(), id, body)
	})
	deleteCmd := newDeleteCmd("task", func(cmd *cobra.Command, id int64) error {
		return newClient().DeleteTask(cmd.Context(), id)
	})

	cmd.AddCommand(listCmd, createCmd, getCmd, updateCmd, deleteCmd)
	return cmd
}

func taskLine(t types.Task) string {
	check := "[ ]"
	if t.Status == types.TaskStatusDone {
		check = okLabel.Sprint("[x]")
	} else if t.Status == types.TaskStatusInProgress {
		check = "[~]"
	}
	due := ""
	if !t.DueDatetime.IsZero() {
		due = "due " + stamp(t.DueDatetime.Time)
	}
	return joinNonEmpty(fmt.Sprintf("%4d", t.ID), check, t.Title, dim(due), dim(string(t.Tag)))
}

var eventFields = []fieldFlag{
	{flag: "title", field: "title", kind: stringFlag},
	{flag: "description", field: "description", kind: stringFlag},
	{flag: "start", field: "start_datetime", kind: timeFlag},
	{flag: "end", field: "end_datetime", kind: timeFlag},
	{flag: "location", field: "location", kind: stringFlag},
}

var eventUsage = map[string]string{
	"title":       "Title of the event",
	"description": "Description",
	"start":       "Start, e.g. 2025-03-12T09:00",
	"end":         "End, e.g. 2025-03-12T09:30",
	"location":    "Location",
}

func newEventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "events",
		Aliases: []string{"event"},
		Short:   "Manage calendar events",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List events",
		Long: `List events starting at or after --from and ending at or before --to.

Examples:
  trackme events list --from today
  trackme events list --from 2025-03-12T00:00 --to 2025-03-12T23:59`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			params, err := rangeParams(cmd, parseRangeBound)
			if err != nil {
				return err
			}
			events, err := newClient().GetEvents(cmd.Context(), params)
			if err != nil {
				return err
			}
			return printList(cmd, events, "No events", eventLine)
		},
	}
	addRangeFlags(listCmd, "date or datetime")

	createCmd := &cobra.Command{
		Use:     "create",
		Short:   "Create an event",
		Example: `  trackme events create --title "Yoga class" --start 2025-03-12T18:00 --end 2025-03-12T19:00 --location "Wellness Studio"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			in := types.EventCreate{
				Description: optString(cmd, "description"),
				Location:    optString(cmd, "location"),
			}
			in.Title, _ = cmd.Flags().GetString("title")
			var err error
			start, _ := cmd.Flags().GetString("start")
			end, _ := cmd.Flags().GetString("end")
			if start != "" {
				if in.StartDatetime, err = parseTime("start", start); err != nil {
					return err
				}
			}
			if end != "" {
				if in.EndDatetime, err = parseTime("end", end); err != nil {
					return err
				}
			}
			if err := validatePayload(in); err != nil {
				return err
			}
			event, err := newClient().CreateEvent(cmd.Context(), in)
			if err != nil {
				return err
			}
			return printCreated(cmd, fmt.Sprintf("Created event %d", event.ID), event)
		},
	}
	addFieldFlags(createCmd, eventFields, eventUsage)

	getCmd := &cobra.Command{
		Use:   "get ID",
		Short: "Show an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			event, err := newClient().GetEvent(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printValue(cmd, event)
		},
	}

	updateCmd := newUpdateCmd("event", eventFields, eventUsage, func(cmd *cobra.Command, id int64, body json.RawMessage) (any, error) {
		return newClient().UpdateEvent(cmd.Context(), id, body)
	})
	deleteCmd := newDeleteCmd("event", func(cmd *cobra.Command, id int64) error {
		return newClient().DeleteEvent(cmd.Context(), id)
	})

	cmd.AddCommand(listCmd, createCmd, getCmd, updateCmd, deleteCmd)
	return cmd
}

func eventLine(e types.Event) string {
	span := stamp(e.StartDatetime.Time) + "-" + clock(e.EndDatetime.Time)
	return joinNonEmpty(fmt.Sprintf("%4d", e.ID), span, e.Title, dim(e.Location.String()))
}
