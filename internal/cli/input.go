package cli

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"
	"github.com/trackme/trackme/pkg/api"
	"github.com/trackme/trackme/pkg/types"
)

var (
	inputValidator *validator.Validate
	validatorOnce  sync.Once
)

// V returns the validator for request payloads built from flags.
func V() *validator.Validate {
	validatorOnce.Do(func() {
		inputValidator = validator.New(validator.WithRequiredStructEnabled())
		inputValidator.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return inputValidator
}

// validatePayload checks v before it is sent and describes the first
// failing field.
func validatePayload(v any) error {
	err := V().Struct(v)
	if err == nil {
		return nil
	}
	validatorErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validatorErrors) == 0 {
		return err
	}
	e := validatorErrors[0]
	switch e.Tag() {
	case "required":
		return fmt.Errorf("%s is required", e.Field())
	case "oneof":
		return fmt.Errorf("%s must be one of: %s", e.Field(), strings.ReplaceAll(e.Param(), " ", ", "))
	case "email":
		return fmt.Errorf("%s must be a valid email address", e.Field())
	case "gte":
		return fmt.Errorf("%s must be greater than or equal to %s", e.Field(), e.Param())
	case "min":
		return fmt.Errorf("%s must not be empty", e.Field())
	default:
		return fmt.Errorf("invalid %s", e.Field())
	}
}

// today returns the current date in UTC, the zone the server counts days in.
func today() time.Time {
	t := now().UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// parseTime reads a datetime flag value. "now" is accepted; values without
// a zone are taken as UTC.
func parseTime(flag, value string) (types.Timestamp, error) {
	if strings.EqualFold(value, "now") {
		return types.NewTimestamp(now().UTC().Truncate(time.Second)), nil
	}
	t, err := types.ParseTimestamp(value)
	if err != nil {
		return types.Timestamp{}, fmt.Errorf("invalid --%s %q: use YYYY-MM-DD, YYYY-MM-DDTHH:MM or RFC 3339", flag, value)
	}
	return types.NewTimestamp(t), nil
}

// parseDay reads a date flag value; "today" and "yesterday" are accepted.
func parseDay(flag, value string) (string, error) {
	switch strings.ToLower(value) {
	case "":
		return "", nil
	case "today":
		return api.Day(today()), nil
	case "yesterday":
		return api.Day(today().AddDate(0, 0, -1)), nil
	}
	t, err := types.ParseDate(value)
	if err != nil {
		return "", fmt.Errorf("invalid --%s %q: use YYYY-MM-DD", flag, value)
	}
	return api.Day(t), nil
}

// parseRangeBound reads a --from or --to value for datetime ranges.
func parseRangeBound(flag, value string) (string, error) {
	if value == "" {
		return "", nil
	}
	if !strings.EqualFold(value, "now") && !strings.ContainsAny(value, "T :") {
		return parseDay(flag, value)
	}
	t, err := parseTime(flag, value)
	if err != nil {
		return "", err
	}
	return t.UTC().Format(time.RFC3339), nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

// patch collects the fields of an update request. Fields come from typed
// flags and from --set key=value pairs and are sent as given.
type patch struct {
	body []byte
}

func newPatch() *patch {
	return &patch{body: []byte("{}")}
}

func (p *patch) set(path string, value any) error {
	b, err := sjson.SetBytes(p.body, path, value)
	if err != nil {
		return fmt.Errorf("unable to set %s: %w", path, err)
	}
	p.body = b
	return nil
}

// setRaw sets path from a --set value. JSON numbers, booleans, null, quoted
// strings, objects and arrays are used as is; anything else is a string.
func (p *patch) setRaw(path, value string) error {
	if json.Valid([]byte(value)) {
		b, err := sjson.SetRawBytes(p.body, path, []byte(value))
		if err != nil {
			return fmt.Errorf("unable to set %s: %w", path, err)
		}
		p.body = b
		return nil
	}
	return p.set(path, value)
}

// applySets adds key=value pairs to the patch.
func (p *patch) applySets(pairs []string) error {
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return fmt.Errorf("invalid --set %q: expected key=value", pair)
		}
		if err := p.setRaw(key, value); err != nil {
			return err
		}
	}
	return nil
}

func (p *patch) empty() bool {
	return string(p.body) == "{}"
}

// payload returns the body to send.
func (p *patch) payload() json.RawMessage {
	return json.RawMessage(p.body)
}

// fieldFlag maps a command line flag to a JSON field of a request body.
type fieldFlag struct {
	flag  string
	field string
	kind  flagKind
}

type flagKind int

const (
	stringFlag flagKind = iota
	floatFlag
	intFlag
	boolFlag
	timeFlag
)

// addFieldFlags registers fields as flags of cmd.
func addFieldFlags(cmd *cobra.Command, fields []fieldFlag, usage map[string]string) {
	for _, f := range fields {
		switch f.kind {
		case floatFlag:
			cmd.Flags().Float64(f.flag, 0, usage[f.flag])
		case intFlag:
			cmd.Flags().Int(f.flag, 0, usage[f.flag])
		case boolFlag:
			cmd.Flags().Bool(f.flag, false, usage[f.flag])
		default:
			cmd.Flags().String(f.flag, "", usage[f.flag])
		}
	}
}

// patchFromFlags builds an update body from the flags that were set and the
// --set pairs of cmd.
func patchFromFlags(cmd *cobra.Command, fields []fieldFlag) (*patch, error) {
	p := newPatch()
	flags := cmd.Flags()
	for _, f := range fields {
		if !flags.Changed(f.flag) {
			continue
		}
		var value any
		var err error
		switch f.kind {
		case floatFlag:
			value, err = flags.GetFloat64(f.flag)
		case intFlag:
			value, err = flags.GetInt(f.flag)
		case boolFlag:
			value, err = flags.GetBool(f.flag)
		case timeFlag:
			var s string
			if s, err = flags.GetString(f.flag); err == nil {
				var t types.Timestamp
				if t, err = parseTime(f.flag, s); err == nil {
					value = t.UTC().Format(time.RFC3339)
				}
			}
		default:
			value, err = flags.GetString(f.flag)
		}
		if err != nil {
			return nil, err
		}
		if err := p.set(f.field, value); err != nil {
			return nil, err
		}
	}
	if flags.Lookup("set") != nil {
		pairs, err := flags.GetStringArray("set")
		if err != nil {
			return nil, err
		}
		if err := p.applySets(pairs); err != nil {
			return nil, err
		}
	}
	if p.empty() {
		return nil, fmt.Errorf("nothing to update: pass at least one field flag or --set key=value")
	}
	return p, nil
}

// newUpdateCmd builds "<resource> update ID" from field flags.
func newUpdateCmd(noun string, fields []fieldFlag, usage map[string]string, update func(cmd *cobra.Command, id int64, body json.RawMessage) (any, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a " + noun,
		Long: `Update a ` + noun + `. Only the given fields are changed. Fields without a flag can be
set with --set key=value; values that are valid JSON are sent as JSON, others as strings.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p, err := patchFromFlags(cmd, fields)
			if err != nil {
				return err
			}
			v, err := update(cmd, id, p.payload())
			if err != nil {
				return err
			}
			return printCreated(cmd, fmt.Sprintf("Updated %s %d", noun, id), v)
		},
	}
	addFieldFlags(cmd, fields, usage)
	cmd.Flags().StringArray("set", nil, "Set a field, as key=value (repeatable)")
	return cmd
}

// newDeleteCmd builds "<resource> delete ID".
func newDeleteCmd(noun string, del func(cmd *cobra.Command, id int64) error) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a " + noun,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := del(cmd, id); err != nil {
				return err
			}
			return printDone(cmd, fmt.Sprintf("Deleted %s %d", noun, id), nil)
		},
	}
}

// optString returns a pointer to the flag value, nil when it was not set.
func optString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

func optFloat(cmd *cobra.Command, name string) *float64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetFloat64(name)
	return &v
}

// rangeParams reads --from and --to into filter parameters.
func rangeParams(cmd *cobra.Command, parse func(flag, value string) (string, error)) (api.Params, error) {
	var r api.DateRange
	var err error
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	if r.From, err = parse("from", from); err != nil {
		return nil, err
	}
	if r.To, err = parse("to", to); err != nil {
		return nil, err
	}
	return r.Params(), nil
}

func addRangeFlags(cmd *cobra.Command, what string) {
	cmd.Flags().String("from", "", "Start of the range ("+what+")")
	cmd.Flags().String("to", "", "End of the range ("+what+")")
}
