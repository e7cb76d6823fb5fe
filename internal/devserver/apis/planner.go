package apis

import (
	"net/http"
	"slices"

	"github.com/trackme/trackme/internal/common/httpx"
	"github.com/trackme/trackme/internal/devserver/store"
	"github.com/trackme/trackme/pkg/types"
)

var taskStatuses = []string{string(types.TaskStatusTodo), string(types.TaskStatusInProgress), string(types.TaskStatusDone)}

func (a *API) listTasks(r *http.Request) (*httpx.Response, error) {
	uid, err := currentUserID(r)
	if err != nil {
		return nil, err
	}
	var q store.TaskQuery
	if q.DueFrom, err = queryDate(r, "date", "Invalid date format"); err != nil {
		return nil, err
	}
	if status := r.URL.Query().Get("status"); status != "" {
		if !slices.Contains(taskStatuses, status) {
			return nil, queryIssue("status", enumMessage(taskStatuses), "enum")
		}
		q.Status = types.TaskStatus(status)
	}
	return rspOK(a.store.ListTasks(uid, q)), nil
}

func (a *API) getTask(r *http.Request) (*httpx.Response, error) {
	uid, err := currentUserID(r)
	if err != nil {
		return nil, err
	}
	id, err := pathID(r, "id")
	if err != nil {
		return nil, err
	}
	task, err := a.store.GetTask(uid, id)
	if err != nil {
		return nil, err
	}
	return rspOK(task), nil
}

func (a *API) createTask(r *http.Request) (*httpx.Response, error) {
	uid, err := currentUserID(r)
	if err != nil {
		return nil, err
	}
	var in types.TaskCreate
	if err := bind(r, &in); err != nil {
		return nil, err
	}
	task := a.store.CreateTask(uid, in)
	return rspCreated(task, location("/tasks", task.ID)), nil
}

func (a *API) updateTask(r *http.Request) (*httpx.Response, error) {
	uid, err := currentUserID(r)
	if err != nil {
		return nil, err
	}
	id, err := pathID(r, "id")
	if err != nil {
		return nil, err
	}
	var in types.TaskUpdate
	if err := bind(r, &in); err != nil {
		return nil, err
	}
	task, err := a.store.UpdateTask(uid, id, in)
	if err != nil {
		return nil, err
	}
	return rspOK(task), nil
}

func (a *API) deleteTask(r *http.Request) (*httpx.Response, error) {
	uid, err := currentUserID(r)
	if err != nil {
		return nil, err
	}
	id, err := pathID(r, "id")
	if err != nil {
		return nil, err
	}
	if err := a.store.DeleteTask(uid, id); err != nil {
		return nil, err
	}
	return rspNoContent(), nil
}

func (a *API) listEvents(r *http.Request) (*httpx.Response, error) {
	uid, err := currentUserID(r)
	if err != nil {
		return nil, err
	}
	rng, err := queryRange(r, queryTime)
	if err != nil {
		return nil, err
	}
	return rspOK(a.store.ListEvents(uid, rng)), nil
}

func (a *API) getEvent(r *http.Request) (*httpx.Response, error) {
	uid, err := currentUserID(r)
	if err != nil {
		return nil, err
	}
	id, err := pathID(r, "id")
	if err != nil {
		return nil, err
	}
	event, err := a.store.GetEvent(uid, id)
	if err != nil {
		return nil, err
	}
	return rspOK(event), nil
}

func (a *API) createEvent(r *http.Request) (*httpx.Response, error) {
	uid, err := currentUserID(r)
	if err != nil {
		return nil, err
	}
	var in types.EventCreate
	if err := bind(r, &in); err != nil {
		return nil, err
	}
	event, err := a.store.CreateEvent(uid, in)
	if err != nil {
		return nil, err
	}
	return rspCreated(event, location("/events", event.ID)), nil
}

func (a *API) updateEvent(r *http.Request) (*httpx.Response, error) {
	uid, err := currentUserID(r)
	if err != nil {
		return nil, err
	}
	id, err := pathID(r, "id")
	if err != nil {
		return nil, err
	}
	var in types.EventUpdate
	if err := bind(r, &in); err != nil {
		return nil, err
	}
	event, err := a.store.UpdateEvent(uid, id, in)
	if err != nil {
		return nil, err
	}
	return rspOK(event), nil
}

func (a *API) deleteEvent(r *http.Request) (*httpx.Response, error) {
	uid, err := currentUserID(r)
	if err != nil {
		return nil, err
	}
	id, err := pathID(r, "id")
	if err != nil {
		return nil, err
	}
	if err := a.store.DeleteEvent(uid, id); err != nil {
		return nil, err
	}
	return rspNoContent(), nil
}
