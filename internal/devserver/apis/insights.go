package apis

import (
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/trackme/trackme/internal/common/httpx"
	"github.com/trackme/trackme/internal/devserver/insights"
	"github.com/trackme/trackme/internal/devserver/store"
	"github.com/trackme/trackme/pkg/types"
)

// getTodayInsights replaces expired insights, adds the suggestions of the
// current data and returns all undismissed insights.
func (a *API) getTodayInsights(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	uid, err := currentUserID(r)
	if err != nil {
		return nil, err
	}

	now := a.store.Now()
	if n := a.store.PurgeInsights(uid, now.Add(-insights.Expiry)); n > 0 {
		log.Ctx(ctx).Debug().Int("count", n).Msg("purged expired insights")
	}

	today := store.DayRange(now).From
	recent := store.TimeRange{From: now.Add(-insights.Lookback)}
	snapshot := insights.Snapshot{
		Goals:      a.store.GetGoals(uid),
		Today:      today,
		Steps:      a.store.ListSteps(uid, store.TimeRange{From: today.AddDate(0, 0, -7), To: today}),
		HasSteps:   len(a.store.ListSteps(uid, store.TimeRange{})) > 0,
		Meals:      a.store.ListMeals(uid, recent),
		Activities: a.store.ListActivities(uid, recent),
		Sleep:      a.store.ListVitals(uid, types.VitalSleepDuration, recent),
		HeartRate:  a.store.ListVitals(uid, types.VitalHeartRate, recent),
	}
	for _, s := range insights.Generate(snapshot) {
		a.store.AddInsight(uid, s.Category, s.Message)
	}
	return rspOK(a.store.ListInsights(uid)), nil
}

func (a *API) dismissInsight(r *http.Request) (*httpx.Response, error) {
	uid, err := currentUserID(r)
	if err != nil {
		return nil, err
	}
	id, err := pathID(r, "id")
	if err != nil {
		return nil, err
	}
	if err := a.store.DismissInsight(uid, id); err != nil {
		return nil, err
	}
	return rspNoContent(), nil
}
