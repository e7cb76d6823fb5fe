package apis

import (
	"net/http"

	"github.com/trackme/trackme/internal/common/httpx"
	"github.com/trackme/trackme/pkg/types"
)

func (a *API) getProfile(r *http.Request) (*httpx.Response, error) {
	return a.getCurrentUser(r)
}

func (a *API) updateProfile(r *http.Request) (*httpx.Response, error) {
	uid, err := currentUserID(r)
	if err != nil {
		return nil, err
	}
	var in types.UserUpdate
	if err := bind(r, &in); err != nil {
		return nil, err
	}
	user, err := a.store.UpdateUser(uid, in)
	if err != nil {
		return nil, err
	}
	return rspOK(user), nil
}

func (a *API) getGoals(r *http.Request) (*httpx.Response, error) {
	uid, err := currentUserID(r)
	if err != nil {
		return nil, err
	}
	return rspOK(a.store.GetGoals(uid)), nil
}

func (a *API) updateGoals(r *http.Request) (*httpx.Response, error) {
	uid, err := currentUserID(r)
	if err != nil {
		return nil, err
	}
	var in types.GoalsUpdate
	if err := bind(r, &in); err != nil {
		return nil, err
	}
	return rspOK(a.store.UpdateGoals(uid, in)), nil
}

func (a *API) getConnections(r *http.Request) (*httpx.Response, error) {
	uid, err := currentUserID(r)
	if err != nil {
		return nil, err
	}
	return rspOK(a.store.GetConnections(uid)), nil
}

func (a *API) updateConnections(r *http.Request) (*httpx.Response, error) {
	uid, err := currentUserID(r)
	if err != nil {
		return nil, err
	}
	var in types.ConnectionsUpdate
	if err := bind(r, &in); err != nil {
		return nil, err
	}
	return rspOK(a.store.UpdateConnections(uid, in)), nil
}
