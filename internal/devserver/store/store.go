// Package store is the in-memory data store of the development server. All
// records are scoped to the user that owns them; a record of another user is
// reported as not found.
package store

import (
	"strings"
	"sync"
	"time"

	"github.com/trackme/trackme/pkg/types"
)

type userRecord struct {
	user         types.User
	passwordHash string
}

type sequences struct {
	user, task, event, meal, steps, vital, activity, insight, goals int64
}

// Store holds the data of all users. It is safe for concurrent use.
type Store struct {
	mu  sync.RWMutex
	seq sequences
	now func() time.Time

	users      map[int64]*userRecord
	emails     map[string]int64
	tasks      map[int64]types.Task
	events     map[int64]types.Event
	meals      map[int64]types.Meal
	steps      map[int64]types.StepSummary
	vitals     map[int64]types.Vital
	activities map[int64]types.Activity
	insights   map[int64]types.Insight
	goals      map[int64]types.Goals // keyed by user id
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used for creation and update times.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		now:        time.Now,
		users:      make(map[int64]*userRecord),
		emails:     make(map[string]int64),
		tasks:      make(map[int64]types.Task),
		events:     make(map[int64]types.Event),
		meals:      make(map[int64]types.Meal),
		steps:      make(map[int64]types.StepSummary),
		vitals:     make(map[int64]types.Vital),
		activities: make(map[int64]types.Activity),
		insights:   make(map[int64]types.Insight),
		goals:      make(map[int64]types.Goals),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the current time of the store's clock in UTC.
func (s *Store) Now() time.Time {
	return s.now().UTC()
}

func (s *Store) timestamp() types.Timestamp {
	return types.NewTimestamp(s.Now())
}

// TimeRange bounds a query. A zero bound is open.
type TimeRange struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t lies within the closed range.
func (r TimeRange) Contains(t time.Time) bool {
	if !r.From.IsZero() && t.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && t.After(r.To) {
		return false
	}
	return true
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
