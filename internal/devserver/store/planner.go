package store

import (
	"sort"
	"time"

	"github.com/trackme/trackme/pkg/types"
)

// TaskQuery filters ListTasks. DueFrom keeps tasks due at or after it;
// tasks without a due time are then excluded.
type TaskQuery struct {
	DueFrom time.Time
	Status  types.TaskStatus
}

// ListTasks returns the user's tasks ordered by due time, tasks without one
// last.
func (s *Store) ListTasks(userID int64, q TaskQuery) []types.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := []types.Task{}
	for _, t := range s.tasks {
		if t.UserID != userID {
			continue
		}
		if !q.DueFrom.IsZero() && (t.DueDatetime.IsZero() || t.DueDatetime.Before(q.DueFrom)) {
			continue
		}
		if q.Status != "" && t.Status != q.Status {
			continue
		}
		tasks = append(tasks, t)
	}
	sort.Slice(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		switch {
		case a.DueDatetime.IsZero() != b.DueDatetime.IsZero():
			return b.DueDatetime.IsZero()
		case !a.DueDatetime.Equal(b.DueDatetime.Time):
			return a.DueDatetime.Before(b.DueDatetime.Time)
		}
		return a.ID < b.ID
	})
	return tasks
}

func (s *Store) GetTask(userID, id int64) (types.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok || t.UserID != userID {
		return types.Task{}, ErrTaskNotFound
	}
	return t, nil
}

// CreateTask stores a new task. Status defaults to todo and tag to other.
func (s *Store) CreateTask(userID int64, in types.TaskCreate) types.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq.task++
	t := types.Task{
		ID:          s.seq.task,
		UserID:      userID,
		Title:       in.Title,
		Description: types.NullableStringFromPtr(in.Description),
		Status:      in.Status,
		Tag:         in.Tag,
		CreatedAt:   s.timestamp(),
	}
	if t.Status == "" {
		t.Status = types.TaskStatusTodo
	}
	if t.Tag == "" {
		t.Tag = types.TaskTagOther
	}
	if in.DueDatetime != nil {
		t.DueDatetime = *in.DueDatetime
	}
	s.tasks[t.ID] = t
	return t
}

// UpdateTask applies the set fields of upd and stamps the update time.
func (s *Store) UpdateTask(userID, id int64, upd types.TaskUpdate) (types.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok || t.UserID != userID {
		return types.Task{}, ErrTaskNotFound
	}
	if upd.Title != nil {
		t.Title = *upd.Title
	}
	if upd.Description != nil {
		t.Description = types.NullableStringFrom(*upd.Description)
	}
	if upd.Status != nil {
		t.Status = *upd.Status
	}
	if upd.Tag != nil {
		t.Tag = *upd.Tag
	}
	if upd.DueDatetime != nil {
		t.DueDatetime = *upd.DueDatetime
	}
	t.UpdatedAt = s.timestamp()
	s.tasks[id] = t
	return t, nil
}

func (s *Store) DeleteTask(userID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok || t.UserID != userID {
		return ErrTaskNotFound
	}
	delete(s.tasks, id)
	return nil
}

// ListEvents returns the user's events that start at or after r.From and end
// at or before r.To, ordered by start time.
func (s *Store) ListEvents(userID int64, r TimeRange) []types.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := []types.Event{}
	for _, e := range s.events {
		if e.UserID != userID {
			continue
		}
		if !r.From.IsZero() && e.StartDatetime.Before(r.From) {
			continue
		}
		if !r.To.IsZero() && e.EndDatetime.After(r.To) {
			continue
		}
		events = append(events, e)
	}
	sort.Slice(events, func(i, j int) bool {
		if !events[i].StartDatetime.Equal(events[j].StartDatetime.Time) {
			return events[i].StartDatetime.Before(events[j].StartDatetime.Time)
		}
		return events[i].ID < events[j].ID
	})
	return events
}

func (s *Store) GetEvent(userID, id int64) (types.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.events[id]
	if !ok || e.UserID != userID {
		return types.Event{}, ErrEventNotFound
	}
	return e, nil
}

// CreateEvent stores a new event. The start must be before the end.
func (s *Store) CreateEvent(userID int64, in types.EventCreate) (types.Event, error) {
	if !in.StartDatetime.Before(in.EndDatetime.Time) {
		return types.Event{}, ErrEventTimeRange
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq.event++
	e := types.Event{
		ID:            s.seq.event,
		UserID:        userID,
		Title:         in.Title,
		Description:   types.NullableStringFromPtr(in.Description),
		StartDatetime: in.StartDatetime,
		EndDatetime:   in.EndDatetime,
		Location:      types.NullableStringFromPtr(in.Location),
		CreatedAt:     s.timestamp(),
	}
	s.events[e.ID] = e
	return e, nil
}

// UpdateEvent applies the set fields of upd. The resulting event must still
// start before it ends; otherwise it is left unchanged.
func (s *Store) UpdateEvent(userID, id int64, upd types.EventUpdate) (types.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.events[id]
	if !ok || e.UserID != userID {
		return types.Event{}, ErrEventNotFound
	}
	if upd.Title != nil {
		e.Title = *upd.Title
	}
	if upd.Description != nil {
		e.Description = types.NullableStringFrom(*upd.Description)
	}
	if upd.StartDatetime != nil {
		e.StartDatetime = *upd.StartDatetime
	}
	if upd.EndDatetime != nil {
		e.EndDatetime = *upd.EndDatetime
	}
	if upd.Location != nil {
		e.Location = types.NullableStringFrom(*upd.Location)
	}
	if !e.StartDatetime.Before(e.EndDatetime.Time) {
		return types.Event{}, ErrEventTimeRange
	}
	e.UpdatedAt = s.timestamp()
	s.events[id] = e
	return e, nil
}

func (s *Store) DeleteEvent(userID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.events[id]
	if !ok || e.UserID != userID {
		return ErrEventNotFound
	}
	delete(s.events, id)
	return nil
}
