package apis

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/trackme/trackme/internal/common/httpx"
	"github.com/trackme/trackme/pkg/types"
)

// upsertSteps answers 201 whether the day was created or updated.
func (a *API) upsertSteps(r *http.Request) (*httpx.Response, error) {
	uid, err := currentUserID(r)
	if err != nil {
		return nil, err
	}
	var in types.StepSummaryCreate
	if err := bind(r, &in); err != nil {
		return nil, err
	}
	return rspCreated(a.store.UpsertSteps(uid, in), ""), nil
}

func (a *API) getStepSummary(r *http.Request) (*httpx.Response, error) {
	uid, err := currentUserID(r)
	if err != nil {
		return nil, err
	}
	rng, err := queryRange(r, queryDate)
	if err != nil {
		return nil, err
	}
	return rspOK(a.store.ListSteps(uid, rng)), nil
}

func (a *API) createVital(r *http.Request) (*httpx.Response, error) {
	uid, err := currentUserID(r)
	if err != nil {
		return nil, err
	}
	var in types.VitalCreate
	if err := bind(r, &in); err != nil {
		return nil, err
	}
	return rspCreated(a.store.CreateVital(uid, in), ""), nil
}

func (a *API) listVitals(r *http.Request) (*httpx.Response, error) {
	uid, err := currentUserID(r)
	if err != nil {
		return nil, err
	}
	rng, err := queryRange(r, queryTime)
	if err != nil {
		return nil, err
	}
	return rspOK(a.store.ListVitals(uid, pathParam(r, "type"), rng)), nil
}

func (a *API) createActivity(r *http.Request) (*httpx.Response, error) {
	uid, err := currentUserID(r)
	if err != nil {
		return nil, err
	}
	var in types.ActivityCreate
	if err := bind(r, &in); err != nil {
		return nil, err
	}
	activity := a.store.CreateActivity(uid, in)
	return rspCreated(activity, location("/health/activities", activity.ID)), nil
}

func (a *API) listActivities(r *http.Request) (*httpx.Response, error) {
	uid, err := currentUserID(r)
	if err != nil {
		return nil, err
	}
	rng, err := queryRange(r, queryTime)
	if err != nil {
		return nil, err
	}
	return rspOK(a.store.ListActivities(uid, rng)), nil
}

func (a *API) updateActivity(r *http.Request) (*httpx.Response, error) {
	uid, err := currentUserID(r)
	if err != nil {
		return nil, err
	}
	id, err := pathID(r, "id")
	if err != nil {
		return nil, err
	}
	var in types.ActivityUpdate
	if err := bind(r, &in); err != nil {
		return nil, err
	}
	activity, err := a.store.UpdateActivity(uid, id, in)
	if err != nil {
		return nil, err
	}
	return rspOK(activity), nil
}

func (a *API) deleteActivity(r *http.Request) (*httpx.Response, error) {
	uid, err := currentUserID(r)
	if err != nil {
		return nil, err
	}
	id, err := pathID(r, "id")
	if err != nil {
		return nil, err
	}
	if err := a.store.DeleteActivity(uid, id); err != nil {
		return nil, err
	}
	return rspNoContent(), nil
}

// pathParam returns the decoded value of a route parameter. chi matches on
// the raw path when the request carries one, so escapes such as %2F are
// still present in the parameter.
func pathParam(r *http.Request, name string) string {
	v := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return v
	}
	if s, err := url.PathUnescape(v); err == nil {
		return s
	}
	return v
}
