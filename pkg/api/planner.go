package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/trackme/trackme/pkg/types"
)

// GetTasks lists tasks. See TaskFilter for the accepted parameters.
func (c *Client) GetTasks(ctx context.Context, params Params) ([]types.Task, error) {
	var tasks []types.Task
	if err := c.get(ctx, "/api/v1/tasks", params, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask returns one task.
func (c *Client) GetTask(ctx context.Context, id int64) (*types.Task, error) {
	var task types.Task
	if err := c.get(ctx, taskPath(id), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// CreateTask creates a task. body is usually a types.TaskCreate.
func (c *Client) CreateTask(ctx context.Context, body any) (*types.Task, error) {
	var task types.Task
	if err := c.send(ctx, http.MethodPost, "/api/v1/tasks", body, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask patches a task. body is usually a types.TaskUpdate.
func (c *Client) UpdateTask(ctx context.Context, id int64, body any) (*types.Task, error) {
	var task types.Task
	if err := c.send(ctx, http.MethodPatch, taskPath(id), body, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.delete(ctx, taskPath(id))
}

// GetEvents lists events. See DateRange for the accepted parameters.
func (c *Client) GetEvents(ctx context.Context, params Params) ([]types.Event, error) {
	var events []types.Event
	if err := c.get(ctx, "/api/v1/events", params, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// GetEvent returns one event.
func (c *Client) GetEvent(ctx context.Context, id int64) (*types.Event, error) {
	var event types.Event
	if err := c.get(ctx, eventPath(id), nil, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// CreateEvent creates an event. body is usually a types.EventCreate.
func (c *Client) CreateEvent(ctx context.Context, body any) (*types.Event, error) {
	var event types.Event
	if err := c.send(ctx, http.MethodPost, "/api/v1/events", body, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// UpdateEvent patches an event. body is usually a types.EventUpdate.
func (c *Client) UpdateEvent(ctx context.Context, id int64, body any) (*types.Event, error) {
	var event types.Event
	if err := c.send(ctx, http.MethodPatch, eventPath(id), body, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (c *Client) DeleteEvent(ctx context.Context, id int64) error {
	return c.delete(ctx, eventPath(id))
}

func taskPath(id int64) string  { return fmt.Sprintf("/api/v1/tasks/%d", id) }
func eventPath(id int64) string { return fmt.Sprintf("/api/v1/events/%d", id) }
