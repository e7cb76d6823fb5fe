package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trackme/trackme/internal/common/httpclient"
	"github.com/trackme/trackme/pkg/types"
)

type recordedRequest struct {
	Method string
	URI    string
	Auth   string
	Body   string
}

// recorder serves canned responses and remembers the requests it saw.
type recorder struct {
	mu       sync.Mutex
	requests []recordedRequest
	status   int
	body     string
}

func (rec *recorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b, _ := io.ReadAll(r.Body)
	rec.mu.Lock()
	rec.requests = append(rec.requests, recordedRequest{
		Method: r.Method,
		URI:    r.URL.RequestURI(),
		Auth:   r.Header.Get("Authorization"),
		Body:   string(b),
	})
	status, body := rec.status, rec.body
	rec.mu.Unlock()
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	io.WriteString(w, body)
}

func (rec *recorder) last() recordedRequest {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return rec.requests[len(rec.requests)-1]
}

func (rec *recorder) respond(status int, body string) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.status, rec.body = status, body
}

func newTestClient(h http.Handler, opts ...ClientOption) *Client {
	opts = append([]ClientOption{
		WithHTTPClient(&http.Client{Transport: &httpclient.HandlerTransport{Handler: h}}),
		WithLogger(zerolog.Nop()),
	}, opts...)
	return New("http://trackme.test", opts...)
}

func TestNewDefaults(t *testing.T) {
	c := New("")
	assert.Equal(t, DefaultBaseURL, c.BaseURL())
	assert.False(t, c.IsAuthenticated())

	c = New("http://api.example.com/ ")
	assert.Equal(t, "http://api.example.com", c.BaseURL())
}

func TestEndpoints(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	c := newTestClient(rec)

	tests := []struct {
		name   string
		body   string
		call   func() error
		method string
		uri    string
	}{
		{"GetCurrentUser", `{}`, func() error { _, err := c.GetCurrentUser(ctx); return err }, http.MethodGet, "/api/v1/auth/me"},
		{"GetTasks", `[]`, func() error { _, err := c.GetTasks(ctx, Params{"date": "2024-01-01"}); return err }, http.MethodGet, "/api/v1/tasks?date=2024-01-01"},
		{"GetTasksEmptyParam", `[]`, func() error { _, err := c.GetTasks(ctx, Params{"date": "", "status": "done"}); return err }, http.MethodGet, "/api/v1/tasks?status=done"},
		{"GetTask", `{}`, func() error { _, err := c.GetTask(ctx, 4); return err }, http.MethodGet, "/api/v1/tasks/4"},
		{"CreateTask", `{}`, func() error { _, err := c.CreateTask(ctx, types.TaskCreate{Title: "x"}); return err }, http.MethodPost, "/api/v1/tasks"},
		{"UpdateTask", `{}`, func() error { _, err := c.UpdateTask(ctx, 5, types.TaskUpdate{}); return err }, http.MethodPatch, "/api/v1/tasks/5"},
		{"DeleteTask", ``, func() error { return c.DeleteTask(ctx, 5) }, http.MethodDelete, "/api/v1/tasks/5"},
		{"GetEvents", `[]`, func() error { _, err := c.GetEvents(ctx, DateRange{From: "2024-01-01", To: "2024-01-31"}.Params()); return err }, http.MethodGet, "/api/v1/events?from=2024-01-01&to=2024-01-31"},
		{"GetEvent", `{}`, func() error { _, err := c.GetEvent(ctx, 2); return err }, http.MethodGet, "/api/v1/events/2"},
		{"CreateEvent", `{}`, func() error { _, err := c.CreateEvent(ctx, map[string]any{}); return err }, http.MethodPost, "/api/v1/events"},
		{"UpdateEvent", `{}`, func() error { _, err := c.UpdateEvent(ctx, 2, map[string]any{}); return err }, http.MethodPatch, "/api/v1/events/2"},
		{"DeleteEvent", ``, func() error { return c.DeleteEvent(ctx, 2) }, http.MethodDelete, "/api/v1/events/2"},
		{"GetMeals", `[]`, func() error { _, err := c.GetMeals(ctx, MealFilter{Date: "2024-01-02"}.Params()); return err }, http.MethodGet, "/api/v1/diet/meals?date=2024-01-02"},
		{"GetMeal", `{}`, func() error { _, err := c.GetMeal(ctx, 9); return err }, http.MethodGet, "/api/v1/diet/meals/9"},
		{"CreateMeal", `{}`, func() error { _, err := c.CreateMeal(ctx, map[string]any{}); return err }, http.MethodPost, "/api/v1/diet/meals"},
		{"UpdateMeal", `{}`, func() error { _, err := c.UpdateMeal(ctx, 9, map[string]any{}); return err }, http.MethodPatch, "/api/v1/diet/meals/9"},
		{"DeleteMeal", ``, func() error { return c.DeleteMeal(ctx, 9) }, http.MethodDelete, "/api/v1/diet/meals/9"},
		{"GetDietSummary", `[]`, func() error { _, err := c.GetDietSummary(ctx, nil); return err }, http.MethodGet, "/api/v1/diet/summary"},
		{"CreateOrUpdateSteps", `{}`, func() error { _, err := c.CreateOrUpdateSteps(ctx, map[string]any{}); return err }, http.MethodPost, "/api/v1/health/steps"},
		{"GetStepSummary", `[]`, func() error { _, err := c.GetStepSummary(ctx, Params{"from": "2024-01-01"}); return err }, http.MethodGet, "/api/v1/health/steps/summary?from=2024-01-01"},
		{"CreateVital", `{}`, func() error { _, err := c.CreateVital(ctx, map[string]any{}); return err }, http.MethodPost, "/api/v1/health/vitals"},
		{"GetVitalsByType", `[]`, func() error { _, err := c.GetVitalsByType(ctx, "heart_rate", nil); return err }, http.MethodGet, "/api/v1/health/vitals/heart_rate"},
		{"GetVitalsByTypeWithSpace", `[]`, func() error { _, err := c.GetVitalsByType(ctx, "blood pressure", nil); return err }, http.MethodGet, "/api/v1/health/vitals/blood%20pressure"},
		{"GetVitalsByTypeWithSlash", `[]`, func() error { _, err := c.GetVitalsByType(ctx, "systolic/diastolic", nil); return err }, http.MethodGet, "/api/v1/health/vitals/systolic%2Fdiastolic"},
		{"GetVitalsByTypeWithPercent", `[]`, func() error { _, err := c.GetVitalsByType(ctx, "spo2%", nil); return err }, http.MethodGet, "/api/v1/health/vitals/spo2%25"},
		{"CreateActivity", `{}`, func() error { _, err := c.CreateActivity(ctx, map[string]any{}); return err }, http.MethodPost, "/api/v1/health/activities"},
		{"GetActivities", `[]`, func() error { _, err := c.GetActivities(ctx, nil); return err }, http.MethodGet, "/api/v1/health/activities"},
		{"UpdateActivity", `{}`, func() error { _, err := c.UpdateActivity(ctx, 3, map[string]any{}); return err }, http.MethodPatch, "/api/v1/health/activities/3"},
		{"DeleteActivity", ``, func() error { return c.DeleteActivity(ctx, 3) }, http.MethodDelete, "/api/v1/health/activities/3"},
		{"GetTodayInsights", `[]`, func() error { _, err := c.GetTodayInsights(ctx); return err }, http.MethodGet, "/api/v1/insights/today"},
		{"DismissInsight", ``, func() error { return c.DismissInsight(ctx, 8) }, http.MethodPost, "/api/v1/insights/8/dismiss"},
		{"GetProfile", `{}`, func() error { _, err := c.GetProfile(ctx); return err }, http.MethodGet, "/api/v1/profile"},
		{"UpdateProfile", `{}`, func() error { _, err := c.UpdateProfile(ctx, types.UserUpdate{}); return err }, http.MethodPatch, "/api/v1/profile"},
		{"GetGoals", `{}`, func() error { _, err := c.GetGoals(ctx); return err }, http.MethodGet, "/api/v1/profile/goals"},
		{"UpdateGoals", `{}`, func() error { _, err := c.UpdateGoals(ctx, types.GoalsUpdate{}); return err }, http.MethodPatch, "/api/v1/profile/goals"},
		{"GetConnections", `{}`, func() error { _, err := c.GetConnections(ctx); return err }, http.MethodGet, "/api/v1/profile/connections"},
		{"UpdateConnections", `{}`, func() error { _, err := c.UpdateConnections(ctx, types.ConnectionsUpdate{}); return err }, http.MethodPatch, "/api/v1/profile/connections"},
		{"Root", `{}`, func() error { _, err := c.Root(ctx); return err }, http.MethodGet, "/"},
		{"Health", `{}`, func() error { _, err := c.Health(ctx); return err }, http.MethodGet, "/health"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := http.StatusOK
			if tt.body == "" {
				status = http.StatusNoContent
			}
			rec.respond(status, tt.body)
			require.NoError(t, tt.call())
			got := rec.last()
			assert.Equal(t, tt.method, got.Method)
			assert.Equal(t, tt.uri, got.URI)
		})
	}
}

func TestLoginStoresToken(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	c := newTestClient(rec)

	rec.respond(http.StatusOK, `[]`)
	_, err := c.GetTasks(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, rec.last().Auth, "no Authorization before login")

	rec.respond(http.StatusOK, `{"access_token":"T1","token_type":"bearer"}`)
	tok, err := c.Login(ctx, "a@b.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "T1", tok.AccessToken)
	assert.Equal(t, "bearer", tok.TokenType)
	assert.Equal(t, "T1", c.Token())
	assert.True(t, c.IsAuthenticated())

	login := rec.last()
	assert.Equal(t, http.MethodPost, login.Method)
	assert.Equal(t, "/api/v1/auth/login?email=a%40b.com&password=pw", login.URI)
	assert.Empty(t, login.Auth)

	rec.respond(http.StatusOK, `[]`)
	_, err = c.GetTasks(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer T1", rec.last().Auth)

	rec.respond(http.StatusOK, `{"message":"Trackme API","version":"1.0.0","docs":"/docs"}`)
	_, err = c.Root(ctx)
	require.NoError(t, err)
	assert.Empty(t, rec.last().Auth, "unauthenticated endpoints never carry the token")

	c.Logout()
	assert.Empty(t, c.Token())
	rec.respond(http.StatusOK, `[]`)
	_, err = c.GetTasks(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, rec.last().Auth)
}

func TestLoginWithoutTokenKeepsSession(t *testing.T) {
	rec := &recorder{}
	c := newTestClient(rec)
	c.SetToken("old")

	rec.respond(http.StatusOK, `{"token_type":"bearer"}`)
	_, err := c.Login(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "old", c.Token())
}

func TestLoginFailure(t *testing.T) {
	rec := &recorder{}
	c := newTestClient(rec)

	rec.respond(http.StatusUnauthorized, `{"detail":"Incorrect email or password"}`)
	tok, err := c.Login(context.Background(), "a@b.com", "wrong")
	assert.Nil(t, tok)
	require.Error(t, err)
	assert.Equal(t, "Incorrect email or password", err.Error())
	assert.Empty(t, c.Token())
}

func TestRegisterBody(t *testing.T) {
	rec := &recorder{}
	c := newTestClient(rec)

	rec.respond(http.StatusCreated, `{"id":1,"email":"sam@example.com","name":"Sam","created_at":"2024-01-01T00:00:00"}`)
	user, err := c.Register(context.Background(), "Sam", "sam@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "Sam", user.Name)

	got := rec.last()
	assert.Equal(t, "/api/v1/auth/register", got.URI)
	assert.JSONEq(t, `{"name":"Sam","email":"sam@example.com","password":"secret"}`, got.Body)
}

func TestUpdateTaskNotFound(t *testing.T) {
	rec := &recorder{}
	c := newTestClient(rec)

	rec.respond(http.StatusNotFound, `{"detail":"Task not found"}`)
	task, err := c.UpdateTask(context.Background(), 999, map[string]any{})
	assert.Nil(t, task)
	require.Error(t, err)
	assert.Equal(t, "Task not found", err.Error())
	assert.True(t, errors.Is(err, ErrRequestFailed))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.JSONEq(t, `{}`, rec.last().Body)
}

func TestStatusTextFallback(t *testing.T) {
	rec := &recorder{}
	c := newTestClient(rec)

	rec.respond(http.StatusNotFound, `not json`)
	err := c.DeleteTask(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, "Not Found", err.Error())
}

func TestSharedSession(t *testing.T) {
	rec := &recorder{}
	session := NewSession("")
	a := newTestClient(rec, WithSession(session))
	b := newTestClient(rec, WithSession(session))

	rec.respond(http.StatusOK, `{"access_token":"shared"}`)
	_, err := a.Login(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "shared", b.Token())

	b.Logout()
	assert.False(t, a.IsAuthenticated())
}

func TestDoPassThrough(t *testing.T) {
	rec := &recorder{}
	c := newTestClient(rec)
	c.SetToken("T2")

	rec.respond(http.StatusOK, `{"anything":[1,2,3]}`)
	raw, err := c.DoRaw(context.Background(), RequestOptions{Path: "/api/v1/custom", Headers: map[string]string{"X-Extra": "1"}})
	require.NoError(t, err)
	assert.Equal(t, `{"anything":[1,2,3]}`, string(raw))
	assert.Equal(t, "Bearer T2", rec.last().Auth)

	var out struct {
		Anything []int `json:"anything"`
	}
	require.NoError(t, c.Do(context.Background(), RequestOptions{Path: "/api/v1/custom"}, &out))
	assert.Equal(t, []int{1, 2, 3}, out.Anything)

	_, err = c.DoRaw(context.Background(), RequestOptions{Path: "no-slash"})
	assert.ErrorIs(t, err, httpclient.ErrInvalidPath)
}

func TestTypedMethodsDropUnknownFields(t *testing.T) {
	rec := &recorder{}
	c := newTestClient(rec)
	body := `{"id":4,"title":"Call mom","status":"todo","tag":"personal","mood":"happy"}`
	rec.respond(http.StatusOK, body)

	task, err := c.GetTask(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, int64(4), task.ID)
	assert.Equal(t, "Call mom", task.Title)

	raw, err := c.DoRaw(context.Background(), RequestOptions{Path: "/api/v1/tasks/4"})
	require.NoError(t, err)
	assert.Equal(t, body, string(raw))
}

func TestParams(t *testing.T) {
	p := TaskFilter{Date: "2024-01-01", Status: types.TaskStatusDone}.Params()
	assert.Equal(t, Params{"date": "2024-01-01", "status": "done"}, p)

	assert.Equal(t, Params{}, TaskFilter{}.Params())
	assert.Equal(t, Params{"from": "2024-01-01"}, DateRange{From: "2024-01-01"}.Params())
	assert.Nil(t, Params(nil).values())
	assert.Equal(t, map[string]string{"a": "1"}, Params{"a": "1", "b": ""}.values())

	now := time.Date(2024, 1, 7, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, DateRange{From: "2024-01-01", To: "2024-01-07"}, LastDays(7, now))
	assert.Equal(t, DateRange{From: "2024-01-07", To: "2024-01-07"}, LastDays(0, now))
}
