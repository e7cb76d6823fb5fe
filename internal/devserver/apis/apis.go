// Package apis implements the HTTP handlers of the development server.
package apis

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/trackme/trackme/internal/common/httpx"
	"github.com/trackme/trackme/internal/devserver/auth"
	"github.com/trackme/trackme/internal/devserver/nutrition"
	"github.com/trackme/trackme/internal/devserver/store"
	"github.com/trackme/trackme/pkg/types"
)

// Prefix is the path prefix of all resource endpoints.
const Prefix = "/api/v1"

// API serves the Trackme REST endpoints from a Store.
type API struct {
	store     *store.Store
	tokens    *auth.TokenIssuer
	nutrition nutrition.Estimator
	version   string
}

// New returns an API. A nil estimator selects the built-in estimates.
func New(st *store.Store, tokens *auth.TokenIssuer, est nutrition.Estimator, version string) *API {
	if est == nil {
		est = nutrition.MockEstimator{}
	}
	return &API{
		store:     st,
		tokens:    tokens,
		nutrition: est,
		version:   version,
	}
}

type handlerParam struct {
	Method  string
	Path    string
	Handler httpx.RequestHandler
}

func (a *API) publicHandlers() []handlerParam {
	return []handlerParam{
		{Method: http.MethodGet, Path: "/", Handler: a.getRoot},
		{Method: http.MethodGet, Path: "/health", Handler: getHealth},
		{Method: http.MethodPost, Path: Prefix + "/auth/register", Handler: a.register},
		{Method: http.MethodPost, Path: Prefix + "/auth/login", Handler: a.login},
	}
}

func (a *API) userHandlers() []handlerParam {
	return []handlerParam{
		{Method: http.MethodGet, Path: Prefix + "/auth/me", Handler: a.getCurrentUser},

		{Method: http.MethodGet, Path: Prefix + "/tasks", Handler: a.listTasks},
		{Method: http.MethodPost, Path: Prefix + "/tasks", Handler: a.createTask},
		{Method: http.MethodGet, Path: Prefix + "/tasks/{id}", Handler: a.getTask},
		{Method: http.MethodPatch, Path: Prefix + "/tasks/{id}", Handler: a.updateTask},
		{Method: http.MethodDelete, Path: Prefix + "/tasks/{id}", Handler: a.deleteTask},

		{Method: http.MethodGet, Path: Prefix + "/events", Handler: a.listEvents},
		{Method: http.MethodPost, Path: Prefix + "/events", Handler: a.createEvent},
		{Method: http.MethodGet, Path: Prefix + "/events/{id}", Handler: a.getEvent},
		{Method: http.MethodPatch, Path: Prefix + "/events/{id}", Handler: a.updateEvent},
		{Method: http.MethodDelete, Path: Prefix + "/events/{id}", Handler: a.deleteEvent},

		{Method: http.MethodGet, Path: Prefix + "/diet/meals", Handler: a.listMeals},
		{Method: http.MethodPost, Path: Prefix + "/diet/meals", Handler: a.createMeal},
		{Method: http.MethodGet, Path: Prefix + "/diet/meals/{id}", Handler: a.getMeal},
		{Method: http.MethodPatch, Path: Prefix + "/diet/meals/{id}", Handler: a.updateMeal},
		{Method: http.MethodDelete, Path: Prefix + "/diet/meals/{id}", Handler: a.deleteMeal},
		{Method: http.MethodGet, Path: Prefix + "/diet/summary", Handler: a.getDietSummary},

		{Method: http.MethodPost, Path: Prefix + "/health/steps", Handler: a.upsertSteps},
		{Method: http.MethodGet, Path: Prefix + "/health/steps/summary", Handler: a.getStepSummary},
		{Method: http.MethodPost, Path: Prefix + "/health/vitals", Handler: a.createVital},
		{Method: http.MethodGet, Path: Prefix + "/health/vitals/{type}", Handler: a.listVitals},
		{Method: http.MethodPost, Path: Prefix + "/health/activities", Handler: a.createActivity},
		{Method: http.MethodGet, Path: Prefix + "/health/activities", Handler: a.listActivities},
		{Method: http.MethodPatch, Path: Prefix + "/health/activities/{id}", Handler: a.updateActivity},
		{Method: http.MethodDelete, Path: Prefix + "/health/activities/{id}", Handler: a.deleteActivity},

		{Method: http.MethodGet, Path: Prefix + "/insights/today", Handler: a.getTodayInsights},
		{Method: http.MethodPost, Path: Prefix + "/insights/{id}/dismiss", Handler: a.dismissInsight},

		{Method: http.MethodGet, Path: Prefix + "/profile", Handler: a.getProfile},
		{Method: http.MethodPatch, Path: Prefix + "/profile", Handler: a.updateProfile},
		{Method: http.MethodGet, Path: Prefix + "/profile/goals", Handler: a.getGoals},
		{Method: http.MethodPatch, Path: Prefix + "/profile/goals", Handler: a.updateGoals},
		{Method: http.MethodGet, Path: Prefix + "/profile/connections", Handler: a.getConnections},
		{Method: http.MethodPatch, Path: Prefix + "/profile/connections", Handler: a.updateConnections},
	}
}

// Router mounts the endpoints on r. Everything except the root, the health
// check, registration and login requires a bearer token.
func (a *API) Router(r chi.Router) {
	for _, h := range a.publicHandlers() {
		r.Method(h.Method, h.Path, httpx.WrapHttpRsp(h.Handler))
	}
	r.Group(func(r chi.Router) {
		r.Use(a.tokens.Middleware(a.userExists))
		for _, h := range a.userHandlers() {
			r.Method(h.Method, h.Path, httpx.WrapHttpRsp(h.Handler))
		}
	})
}

func (a *API) userExists(id int64) bool {
	_, err := a.store.GetUser(id)
	return err == nil
}

func currentUserID(r *http.Request) (int64, error) {
	id, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		log.Ctx(r.Context()).Error().Msg("no user in authenticated request")
		return 0, httpx.ErrUnAuthorized()
	}
	return id, nil
}

// pathID parses the integer path parameter name.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, httpx.ErrValidation([]httpx.ValidationIssue{{
			Loc:  []string{"path", name},
			Msg:  "Input should be a valid integer, unable to parse string as an integer",
			Type: "int_parsing",
		}})
	}
	return id, nil
}

// queryTime parses the query parameter name as a datetime. A missing value
// yields the zero time.
func queryTime(r *http.Request, name, errMsg string) (time.Time, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return time.Time{}, nil
	}
	t, err := types.ParseTimestamp(v)
	if err != nil {
		return time.Time{}, httpx.ErrInvalidRequest(errMsg)
	}
	return t, nil
}

// queryDate is like queryTime but truncates to the date.
func queryDate(r *http.Request, name, errMsg string) (time.Time, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return time.Time{}, nil
	}
	t, err := types.ParseDate(v)
	if err != nil {
		return time.Time{}, httpx.ErrInvalidRequest(errMsg)
	}
	return t, nil
}

// queryRange reads the from and to query parameters.
func queryRange(r *http.Request, parse func(*http.Request, string, string) (time.Time, error)) (store.TimeRange, error) {
	from, err := parse(r, "from", "Invalid from date format")
	if err != nil {
		return store.TimeRange{}, err
	}
	to, err := parse(r, "to", "Invalid to date format")
	if err != nil {
		return store.TimeRange{}, err
	}
	return store.TimeRange{From: from, To: to}, nil
}

func rspOK(v any) *httpx.Response {
	return &httpx.Response{StatusCode: http.StatusOK, Response: v}
}

func rspCreated(v any, location string) *httpx.Response {
	return &httpx.Response{StatusCode: http.StatusCreated, Response: v, Location: location}
}

func rspNoContent() *httpx.Response {
	return &httpx.Response{StatusCode: http.StatusNoContent}
}

func location(path string, id int64) string {
	return Prefix + path + "/" + strconv.FormatInt(id, 10)
}

func (a *API) getRoot(r *http.Request) (*httpx.Response, error) {
	return rspOK(types.ServerInfo{
		Message: "Trackme API",
		Version: a.version,
		Docs:    "/docs",
	}), nil
}

func getHealth(r *http.Request) (*httpx.Response, error) {
	return rspOK(types.HealthStatus{Status: "healthy"}), nil
}
