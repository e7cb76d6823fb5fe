package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trackme/trackme/internal/common/logtrace"
	"github.com/trackme/trackme/internal/devserver/config"
	"github.com/trackme/trackme/internal/devserver/nutrition"
)

// testNow is the fixed clock of test servers, 20:00 UTC on a Wednesday.
var testNow = time.Date(2025, 3, 12, 20, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T, seed bool) *DevServer {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Seed.Enabled = seed
	s, err := CreateNewServer(cfg,
		WithClock(func() time.Time { return testNow }),
		WithEstimator(nutrition.MockEstimator{}))
	require.NoError(t, err, "create new server")
	s.MountHandlers()
	return s
}

func executeTestRequest(t *testing.T, s *DevServer, req *http.Request, token string) *httptest.ResponseRecorder {
	t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)
	return rr
}

// doRequest sends body, if not nil, as JSON.
func doRequest(t *testing.T, s *DevServer, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(method, path, nil)
	require.NoError(t, err)
	if body != nil {
		setRequestBodyAndHeader(t, req, body)
	}
	return executeTestRequest(t, s, req, token)
}

func register(t *testing.T, s *DevServer, name, email, password string) {
	t.Helper()
	rsp := doRequest(t, s, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name": name, "email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, rsp.Code, rsp.Body.String())
}

func login(t *testing.T, s *DevServer, email, password string) string {
	t.Helper()
	q := url.Values{"email": {email}, "password": {password}}
	rsp := doRequest(t, s, http.MethodPost, "/api/v1/auth/login?"+q.Encode(), "", nil)
	require.Equal(t, http.StatusOK, rsp.Code, rsp.Body.String())
	var tok struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal(rsp.Body.Bytes(), &tok))
	assert.Equal(t, "bearer", tok.TokenType)
	return tok.AccessToken
}

// newUser registers a fresh account and returns its token.
func newUser(t *testing.T, s *DevServer) string {
	t.Helper()
	register(t, s, "Alex", "alex@example.com", "secret")
	return login(t, s, "alex@example.com", "secret")
}

func checkHeader(t *testing.T, h http.Header) {
	t.Helper()
	assert.Equal(t, "application/json", h.Get("Content-Type"))
	assert.NotEmpty(t, h.Get(logtrace.RequestIDHeader), "No Request Id")
}

func compareJson(t *testing.T, expected any, actual string) {
	t.Helper()
	var j []byte
	switch v := expected.(type) {
	case string:
		j = []byte(v)
	default:
		var err error
		j, err = json.Marshal(expected)
		require.NoError(t, err, "json marshal")
	}
	assert.JSONEq(t, string(j), actual)
}

func decode[T any](t *testing.T, rsp *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rsp.Body.Bytes(), &v), rsp.Body.String())
	return v
}

func setRequestBodyAndHeader(t *testing.T, req *http.Request, data any) {
	t.Helper()
	var jsonData []byte
	if s, ok := data.(string); ok {
		jsonData = []byte(s)
	} else {
		var err error
		jsonData, err = json.Marshal(data)
		require.NoError(t, err, "Failed to marshal data into JSON")
	}
	req.Body = io.NopCloser(bytes.NewReader(jsonData))
	req.ContentLength = int64(len(jsonData))
	req.Header.Set("Content-Type", "application/json")
}
