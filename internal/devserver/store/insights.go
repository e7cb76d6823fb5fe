package store

import (
	"sort"
	"time"

	"github.com/trackme/trackme/pkg/types"
)

// ListInsights returns the user's undismissed insights, newest first.
func (s *Store) ListInsights(userID int64) []types.Insight {
	s.mu.RLock()
	defer s.mu.RUnlock()

	insights := []types.Insight{}
	for _, in := range s.insights {
		if in.UserID == userID && !in.IsDismissed {
			insights = append(insights, in)
		}
	}
	sort.Slice(insights, func(i, j int) bool {
		if !insights[i].CreatedAt.Equal(insights[j].CreatedAt.Time) {
			return insights[i].CreatedAt.After(insights[j].CreatedAt.Time)
		}
		return insights[i].ID > insights[j].ID
	})
	return insights
}

// AddInsight stores an insight unless an undismissed insight with the same
// message already exists. It reports whether the insight was added.
func (s *Store) AddInsight(userID int64, category types.InsightCategory, message string) (types.Insight, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, in := range s.insights {
		if in.UserID == userID && !in.IsDismissed && in.Message == message {
			return in, false
		}
	}
	s.seq.insight++
	in := types.Insight{
		ID:        s.seq.insight,
		UserID:    userID,
		Category:  category,
		Message:   message,
		CreatedAt: s.timestamp(),
	}
	s.insights[in.ID] = in
	return in, true
}

// PurgeInsights removes the user's undismissed insights created before
// cutoff and returns how many were removed.
func (s *Store) PurgeInsights(userID int64, cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, in := range s.insights {
		if in.UserID == userID && !in.IsDismissed && in.CreatedAt.Before(cutoff) {
			delete(s.insights, id)
			n++
		}
	}
	return n
}

func (s *Store) DismissInsight(userID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	in, ok := s.insights[id]
	if !ok || in.UserID != userID {
		return ErrInsightNotFound
	}
	in.IsDismissed = true
	s.insights[id] = in
	return nil
}
