package apis

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trackme/trackme/internal/common/httpx"
	"github.com/trackme/trackme/pkg/types"
)

func TestEnumMessage(t *testing.T) {
	assert.Equal(t, "Input should be 'todo', 'in_progress' or 'done'", enumMessage(taskStatuses))
	assert.Equal(t, "Input should be 'a' or 'b'", enumMessage([]string{"a", "b"}))
	assert.Equal(t, "Input should be 'a'", enumMessage([]string{"a"}))
}

func TestBind(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		detail string
	}{
		{"valid", `{"title":"Call mom","tag":"personal"}`, 0, ""},
		{"missing title", `{"tag":"personal"}`, http.StatusUnprocessableEntity,
			`[{"loc":["body","title"],"msg":"Field required","type":"missing"}]`},
		{"bad enum", `{"title":"x","status":"later"}`, http.StatusUnprocessableEntity,
			`[{"loc":["body","status"],"msg":"Input should be 'todo', 'in_progress' or 'done'","type":"enum"}]`},
		{"not json", `title=x`, http.StatusUnprocessableEntity, `"unable to parse request data"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks", strings.NewReader(tt.body))
			var in types.TaskCreate
			err := bind(req, &in)
			if tt.status == 0 {
				require.NoError(t, err)
				assert.Equal(t, "Call mom", in.Title)
				return
			}
			var httpErr *httpx.Error
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, tt.status, httpErr.StatusCode)

			rr := httptest.NewRecorder()
			httpErr.Send(rr)
			var rsp struct {
				Detail json.RawMessage `json:"detail"`
			}
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rsp))
			assert.JSONEq(t, tt.detail, string(rsp.Detail))
		})
	}
}

func TestBindNumbersAndEmail(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(`{"name":"A","email":"nope","password":"p"}`))
	var user types.UserCreate
	err := bind(req, &user)
	require.Error(t, err)
	assert.Equal(t, "value is not a valid email address", err.Error())

	req = httptest.NewRequest(http.MethodPatch, "/api/v1/profile/goals", strings.NewReader(`{"daily_step_goal":-5}`))
	var goals types.GoalsUpdate
	err = bind(req, &goals)
	require.Error(t, err)
	assert.Equal(t, "Input should be greater than or equal to 0", err.Error())
}
