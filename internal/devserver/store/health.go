package store

import (
	"sort"

	"github.com/trackme/trackme/pkg/types"
)

// UpsertSteps records the step count of a day, replacing an existing entry
// for the same date.
func (s *Store) UpsertSteps(userID int64, in types.StepSummaryCreate) types.StepSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	source := in.Source
	if source == "" {
		source = "manual"
	}
	date := types.NewDate(in.Date.Time)
	for id, st := range s.steps {
		if st.UserID == userID && st.Date.Equal(date.Time) {
			st.StepCount = in.StepCount
			st.Source = source
			s.steps[id] = st
			return st
		}
	}
	s.seq.steps++
	st := types.StepSummary{
		ID:        s.seq.steps,
		UserID:    userID,
		Date:      date,
		StepCount: in.StepCount,
		Source:    source,
	}
	s.steps[st.ID] = st
	return st
}

// ListSteps returns the user's step entries whose date lies in r, oldest
// first.
func (s *Store) ListSteps(userID int64, r TimeRange) []types.StepSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	steps := []types.StepSummary{}
	for _, st := range s.steps {
		if st.UserID == userID && r.Contains(st.Date.Time) {
			steps = append(steps, st)
		}
	}
	sort.Slice(steps, func(i, j int) bool {
		return steps[i].Date.Before(steps[j].Date.Time)
	})
	return steps
}

func (s *Store) CreateVital(userID int64, in types.VitalCreate) types.Vital {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq.vital++
	v := types.Vital{
		ID:         s.seq.vital,
		UserID:     userID,
		Type:       in.Type,
		Value:      in.Value,
		Unit:       in.Unit,
		RecordedAt: in.RecordedAt,
		CreatedAt:  s.timestamp(),
	}
	s.vitals[v.ID] = v
	return v
}

// ListVitals returns the user's vitals of one type recorded within r, oldest
// first.
func (s *Store) ListVitals(userID int64, vitalType string, r TimeRange) []types.Vital {
	s.mu.RLock()
	defer s.mu.RUnlock()

	vitals := []types.Vital{}
	for _, v := range s.vitals {
		if v.UserID == userID && v.Type == vitalType && r.Contains(v.RecordedAt.Time) {
			vitals = append(vitals, v)
		}
	}
	sort.Slice(vitals, func(i, j int) bool {
		if !vitals[i].RecordedAt.Equal(vitals[j].RecordedAt.Time) {
			return vitals[i].RecordedAt.Before(vitals[j].RecordedAt.Time)
		}
		return vitals[i].ID < vitals[j].ID
	})
	return vitals
}

func cloneActivity(a types.Activity) types.Activity {
	a.DistanceKm = cloneFloat(a.DistanceKm)
	a.CaloriesBurned = cloneFloat(a.CaloriesBurned)
	return a
}

func (s *Store) CreateActivity(userID int64, in types.ActivityCreate) types.Activity {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq.activity++
	a := types.Activity{
		ID:              s.seq.activity,
		UserID:          userID,
		Type:            in.Type,
		DurationMinutes: in.DurationMinutes,
		DistanceKm:      cloneFloat(in.DistanceKm),
		CaloriesBurned:  cloneFloat(in.CaloriesBurned),
		Datetime:        in.Datetime,
		Notes:           types.NullableStringFromPtr(in.Notes),
		CreatedAt:       s.timestamp(),
	}
	s.activities[a.ID] = a
	return cloneActivity(a)
}

// ListActivities returns the user's activities within r, most recent first.
func (s *Store) ListActivities(userID int64, r TimeRange) []types.Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	activities := []types.Activity{}
	for _, a := range s.activities {
		if a.UserID == userID && r.Contains(a.Datetime.Time) {
			activities = append(activities, cloneActivity(a))
		}
	}
	sort.Slice(activities, func(i, j int) bool {
		if !activities[i].Datetime.Equal(activities[j].Datetime.Time) {
			return activities[i].Datetime.After(activities[j].Datetime.Time)
		}
		return activities[i].ID > activities[j].ID
	})
	return activities
}

func (s *Store) UpdateActivity(userID, id int64, upd types.ActivityUpdate) (types.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.activities[id]
	if !ok || a.UserID != userID {
		return types.Activity{}, ErrActivityNotFound
	}
	if upd.Type != nil {
		a.Type = *upd.Type
	}
	if upd.DurationMinutes != nil {
		a.DurationMinutes = *upd.DurationMinutes
	}
	if upd.DistanceKm != nil {
		a.DistanceKm = cloneFloat(upd.DistanceKm)
	}
	if upd.CaloriesBurned != nil {
		a.CaloriesBurned = cloneFloat(upd.CaloriesBurned)
	}
	if upd.Datetime != nil {
		a.Datetime = *upd.Datetime
	}
	if upd.Notes != nil {
		a.Notes = types.NullableStringFrom(*upd.Notes)
	}
	s.activities[id] = a
	return cloneActivity(a), nil
}

func (s *Store) DeleteActivity(userID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.activities[id]
	if !ok || a.UserID != userID {
		return ErrActivityNotFound
	}
	delete(s.activities, id)
	return nil
}
