package api

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/trackme/trackme/pkg/types"
)

// Params are the query parameters of a list request. Empty values are not
// sent.
type Params map[string]string

func (p Params) values() map[string]string {
	if len(p) == 0 {
		return nil
	}
	out := make(map[string]string, len(p))
	for k, v := range p {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

// TaskFilter selects tasks due on or after Date (YYYY-MM-DD) with Status.
type TaskFilter struct {
	Date   string           `mapstructure:"date"`
	Status types.TaskStatus `mapstructure:"status"`
}

func (f TaskFilter) Params() Params { return toParams(f) }

// MealFilter selects the meals of one day (YYYY-MM-DD).
type MealFilter struct {
	Date string `mapstructure:"date"`
}

func (f MealFilter) Params() Params { return toParams(f) }

// DateRange bounds events, activities, vitals, step and diet summaries.
type DateRange struct {
	From string `mapstructure:"from"`
	To   string `mapstructure:"to"`
}

func (r DateRange) Params() Params { return toParams(r) }

// Day formats t as a YYYY-MM-DD filter value.
func Day(t time.Time) string {
	return t.Format(types.DateLayout)
}

// LastDays returns the range covering the n days up to and including today.
func LastDays(n int, now time.Time) DateRange {
	if n < 1 {
		n = 1
	}
	return DateRange{
		From: Day(now.AddDate(0, 0, -(n - 1))),
		To:   Day(now),
	}
}

func toParams(filter any) Params {
	var m map[string]any
	if err := mapstructure.Decode(filter, &m); err != nil {
		return nil
	}
	p := make(Params, len(m))
	for k, v := range m {
		if s := fmt.Sprint(v); s != "" {
			p[k] = s
		}
	}
	return p
}
