package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"sigs.k8s.io/yaml"
)

var numbers = message.NewPrinter(language.English)

// printJSON writes data as indented JSON.
func printJSON(w io.Writer, data any) {
	jsonData, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		fmt.Fprintf(w, "{\"error\": %q}\n", err.Error())
		return
	}
	fmt.Fprintln(w, string(jsonData))
}

// printValue prints v as {"result":1,"value":v} with --json and as YAML
// otherwise.
func printValue(cmd *cobra.Command, v any) error {
	out := cmd.OutOrStdout()
	if jsonOutput {
		printJSON(out, map[string]any{
			"result": 1,
			"value":  v,
		})
		return nil
	}
	yamlBytes, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to convert to YAML: %v", err)
	}
	fmt.Fprint(out, string(yamlBytes))
	return nil
}

// printDone reports a completed change. With --json the result carries v
// when it is not nil.
func printDone(cmd *cobra.Command, msg string, v any) error {
	out := cmd.OutOrStdout()
	if jsonOutput {
		rsp := map[string]any{"result": 1}
		if v != nil {
			rsp["value"] = v
		}
		printJSON(out, rsp)
		return nil
	}
	okLabel.Fprintf(out, "✓ %s\n", msg)
	return nil
}

// printCreated reports a created or updated resource followed by its YAML.
func printCreated(cmd *cobra.Command, msg string, v any) error {
	if jsonOutput {
		return printDone(cmd, msg, v)
	}
	okLabel.Fprintf(cmd.OutOrStdout(), "✓ %s\n", msg)
	return printValue(cmd, v)
}

// printList prints one line per item, or empty when there are none.
func printList[T any](cmd *cobra.Command, items []T, empty string, line func(T) string) error {
	if jsonOutput {
		if items == nil {
			items = []T{}
		}
		return printValue(cmd, items)
	}
	out := cmd.OutOrStdout()
	if len(items) == 0 {
		dimLabel.Fprintln(out, empty)
		return nil
	}
	for _, item := range items {
		fmt.Fprintln(out, line(item))
	}
	return nil
}

// clock formats the time of day of t in the local zone.
func clock(t time.Time) string {
	return t.Local().Format("15:04")
}

// stamp formats t as a local date and time.
func stamp(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}

// count formats n with thousands separators, as in 6,342.
func count(n float64) string {
	return numbers.Sprintf("%d", int64(n+0.5))
}

func joinNonEmpty(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "  ")
}

// dim renders s faint; empty strings stay empty.
func dim(s string) string {
	if s == "" {
		return ""
	}
	return dimLabel.Sprint(s)
}
