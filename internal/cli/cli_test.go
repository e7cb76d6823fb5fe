package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"github.com/trackme/trackme/internal/common/httpclient"
	"github.com/trackme/trackme/internal/devserver/config"
	"github.com/trackme/trackme/internal/devserver/nutrition"
	"github.com/trackme/trackme/internal/devserver/server"
)

// cliEnv runs commands against an in-process development server seeded
// with the demo account.
type cliEnv struct {
	t      *testing.T
	config string
	stdin  string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	s, err := server.CreateNewServer(config.DefaultConfig(),
		server.WithClock(fixedClock),
		server.WithEstimator(nutrition.MockEstimator{}))
	require.NoError(t, err)
	s.MountHandlers()

	noColor := color.NoColor
	color.NoColor = true
	httpTransport = &httpclient.HandlerTransport{Handler: s.Router}
	now = fixedClock
	t.Setenv(ServerURLEnv, "")
	t.Cleanup(func() {
		color.NoColor = noColor
		httpTransport = nil
		now = timeNow
	})
	return &cliEnv{t: t, config: filepath.Join(t.TempDir(), "trackme", "config.yaml")}
}

func (e *cliEnv) run(args ...string) (string, string, error) {
	e.t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(e.stdin))
	cmd.SetArgs(append([]string{"--config", e.config}, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// mustRun runs args and returns stdout, failing the test on error.
func (e *cliEnv) mustRun(args ...string) string {
	e.t.Helper()
	stdout, stderr, err := e.run(args...)
	require.NoError(e.t, err, "stdout: %s\nstderr: %s", stdout, stderr)
	return stdout
}

func (e *cliEnv) login() {
	e.t.Helper()
	e.mustRun("login", "--email", "demo@trackme.app", "--password", "trackme")
}

func TestLoginPersistsToken(t *testing.T) {
	env := newCLIEnv(t)

	_, _, err := env.run("me")
	assert.EqualError(t, err, `not logged in. Run "trackme login --email <email>" first`)

	_, _, err = env.run("login", "--email", "demo@trackme.app", "--password", "wrong")
	assert.EqualError(t, err, "login failed: Incorrect email or password")
	_, err = os.Stat(env.config)
	assert.True(t, os.IsNotExist(err), "no config is written on failure")

	env.stdin = "trackme\n"
	out, stderr, err := env.run("login", "--email", "demo@trackme.app")
	require.NoError(t, err)
	assert.Equal(t, "✓ Login successful\n", out)
	assert.Equal(t, "Password: ", stderr)

	info, err := os.Stat(env.config)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	stored, err := LoadConfig(env.config)
	require.NoError(t, err)
	assert.NotEmpty(t, stored.Token)
	assert.Equal(t, "demo@trackme.app", stored.Email)
	assert.Equal(t, ConfigVersion, stored.Version)

	out = env.mustRun("me", "-j")
	assert.Equal(t, int64(1), gjson.Get(out, "result").Int())
	assert.Equal(t, "Sarah", gjson.Get(out, "value.name").String())

	out = env.mustRun("me")
	assert.Contains(t, out, "name: Sarah\n")

	assert.Equal(t, "✓ Logged out\n", env.mustRun("logout"))
	stored, err = LoadConfig(env.config)
	require.NoError(t, err)
	assert.Empty(t, stored.Token)
	_, _, err = env.run("tasks", "list")
	assert.Error(t, err)
}

func TestRegisterCommand(t *testing.T) {
	env := newCLIEnv(t)

	_, _, err := env.run("register", "--email", "not-an-email", "--name", "Alex", "--password", "x")
	assert.EqualError(t, err, "email must be a valid email address")

	out := env.mustRun("register", "--name", "Alex", "--email", "alex@example.com", "--password", "secret", "-j")
	assert.Equal(t, "alex@example.com", gjson.Get(out, "value.email").String())

	_, _, err = env.run("register", "--name", "Alex", "--email", "alex@example.com", "--password", "secret")
	assert.EqualError(t, err, "Email already registered")
}

func TestServerURLPrecedence(t *testing.T) {
	NewRootCmd()
	t.Setenv(ServerURLEnv, "")
	assert.Equal(t, DefaultServerURL, serverURL())

	GetConfig().ServerURL = "http://config.example:8000"
	assert.Equal(t, "http://config.example:8000", serverURL())

	t.Setenv(ServerURLEnv, "env.example:9000/")
	assert.Equal(t, "http://env.example:9000", serverURL())

	serverFlag = "https://flag.example"
	assert.Equal(t, "https://flag.example", serverURL())
	serverFlag = ""
}

func TestMorphServer(t *testing.T) {
	tests := map[string]string{
		"":                        "",
		"localhost:8000":          "http://localhost:8000",
		"http://localhost:8000/":  "http://localhost:8000",
		"https://api.trackme.app": "https://api.trackme.app",
		"  api.trackme.app//  ":   "http://api.trackme.app",
	}
	for in, want := range tests {
		assert.Equal(t, want, MorphServer(in), in)
	}
}

func TestConfigCommands(t *testing.T) {
	env := newCLIEnv(t)
	env.login()

	out := env.mustRun("config", "set-server", "localhost:9000/")
	assert.Contains(t, out, "Server configured: http://localhost:9000\n")

	stored, err := LoadConfig(env.config)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000", stored.ServerURL)
	assert.Empty(t, stored.Token, "changing the server drops the token")

	out = env.mustRun("config", "show", "-j")
	assert.Equal(t, "http://localhost:9000", gjson.Get(out, "value.server_url").String())
	assert.Equal(t, "not set", gjson.Get(out, "value.token").String())

	out = env.mustRun("config", "show", "--server", "other:1")
	assert.Contains(t, out, "server_url: http://other:1\n")
}

func TestTaskCommands(t *testing.T) {
	env := newCLIEnv(t)
	env.login()

	out := env.mustRun("tasks", "list", "-j")
	titles := gjson.Get(out, "value.#.title").Array()
	require.Len(t, titles, 4)
	assert.Equal(t, "Team standup", titles[0].String())
	assert.Equal(t, "Grocery shopping", titles[3].String())

	out = env.mustRun("tasks", "list", "--status", "done")
	assert.Contains(t, out, "[x]")
	assert.Contains(t, out, "Team standup")
	assert.NotContains(t, out, "Call mom")

	_, _, err := env.run("tasks", "create", "--tag", "work")
	assert.EqualError(t, err, "title is required")
	_, _, err = env.run("tasks", "create", "--title", "x", "--status", "bogus")
	assert.EqualError(t, err, "status must be one of: todo, in_progress, done")
	_, _, err = env.run("tasks", "create", "--title", "x", "--due", "tomorrow-ish")
	assert.ErrorContains(t, err, `invalid --due "tomorrow-ish"`)

	out = env.mustRun("tasks", "create", "--title", "Pay rent", "--tag", "personal", "--due", "2025-03-13T10:00", "-j")
	id := gjson.Get(out, "value.id").String()
	require.NotEmpty(t, id)
	assert.Equal(t, "todo", gjson.Get(out, "value.status").String())
	assert.Equal(t, "2025-03-13T10:00:00", gjson.Get(out, "value.due_datetime").String()[:19])

	_, _, err = env.run("tasks", "update", id)
	assert.EqualError(t, err, "nothing to update: pass at least one field flag or --set key=value")

	out = env.mustRun("tasks", "update", id, "--status", "done", "--set", "description=rent paid", "-j")
	assert.Equal(t, "done", gjson.Get(out, "value.status").String())
	assert.Equal(t, "rent paid", gjson.Get(out, "value.description").String())
	assert.Equal(t, "Pay rent", gjson.Get(out, "value.title").String())

	out = env.mustRun("tasks", "get", id)
	assert.Contains(t, out, "title: Pay rent\n")

	assert.Equal(t, "✓ Deleted task "+id+"\n", env.mustRun("tasks", "delete", id))
	_, _, err = env.run("tasks", "get", id)
	assert.EqualError(t, err, "Task not found")

	_, _, err = env.run("tasks", "get", "abc")
	assert.EqualError(t, err, `invalid id "abc"`)
}

func TestEventCommands(t *testing.T) {
	env := newCLIEnv(t)
	env.login()

	_, _, err := env.run("events", "create", "--title", "Late", "--start", "2025-03-12T18:00", "--end", "2025-03-12T17:00")
	assert.EqualError(t, err, "Start datetime must be before end datetime")

	out := env.mustRun("events", "list", "--from", "2025-03-12T12:00", "--to", "2025-03-12T23:00", "-j")
	titles := gjson.Get(out, "value.#.title").Array()
	require.Len(t, titles, 2)
	assert.Equal(t, "Doctor appointment", titles[0].String())
	assert.Equal(t, "Yoga class", titles[1].String())
}

func TestDietAndHealthCommands(t *testing.T) {
	env := newCLIEnv(t)
	env.login()

	out := env.mustRun("meals", "create", "--name", "Snack", "--type", "snack", "--calories", "150", "--protein", "4", "-j")
	assert.Equal(t, 150.0, gjson.Get(out, "value.calories").Float())
	assert.Equal(t, "2025-03-12T20:00:00", gjson.Get(out, "value.datetime").String()[:19])

	out = env.mustRun("diet", "summary", "--from", "today", "--to", "today", "-j")
	assert.Equal(t, 1400.0, gjson.Get(out, "value.0.total_calories").Float())
	assert.Equal(t, int64(6), gjson.Get(out, "value.0.meals.#").Int())

	out = env.mustRun("steps", "set", "--count", "9100")
	assert.Equal(t, "✓ 9,100 steps on 2025-03-12\n", strings.SplitAfter(out, "\n")[0])

	out = env.mustRun("steps", "summary", "-j")
	counts := gjson.Get(out, "value.#.step_count").Array()
	require.NotEmpty(t, counts)
	assert.Equal(t, int64(9100), counts[len(counts)-1].Int())

	out = env.mustRun("vitals", "list", "heart_rate", "-j")
	assert.Equal(t, 72.0, gjson.Get(out, "value.0.value").Float())

	_, _, err := env.run("activities", "create", "--type", "dance", "--duration", "20")
	assert.EqualError(t, err, "type must be one of: run, walk, cycle, gym, swim, yoga, other")
}

func TestVitalTypesNeedingEscapes(t *testing.T) {
	env := newCLIEnv(t)
	env.login()

	for _, vitalType := range []string{"blood pressure", "systolic/diastolic", "spo2%"} {
		env.mustRun("vitals", "add", "--type", vitalType, "--value", "98", "--unit", "x")
		out := env.mustRun("vitals", "list", vitalType, "-j")
		assert.Equal(t, int64(1), gjson.Get(out, "value.#").Int(), vitalType)
		assert.Equal(t, vitalType, gjson.Get(out, "value.0.type").String())
	}
}

func TestGoalsCommand(t *testing.T) {
	env := newCLIEnv(t)
	env.login()

	out := env.mustRun("goals", "get", "-j")
	assert.Equal(t, int64(8000), gjson.Get(out, "value.daily_step_goal").Int())

	out = env.mustRun("goals", "update", "--steps", "10000", "--set", "sleep_hours_goal=7.5", "-j")
	assert.Equal(t, int64(10000), gjson.Get(out, "value.daily_step_goal").Int())
	assert.Equal(t, 7.5, gjson.Get(out, "value.sleep_hours_goal").Float())
}

func TestStatusCommand(t *testing.T) {
	env := newCLIEnv(t)

	out := env.mustRun("status", "-j")
	assert.Equal(t, "1.0.0", gjson.Get(out, "value.api_version").String())
	assert.True(t, gjson.Get(out, "value.compatible").Bool())
	assert.Equal(t, "healthy", gjson.Get(out, "value.health").String())
	assert.False(t, gjson.Get(out, "value.logged_in").Bool())

	env.login()
	out = env.mustRun("status")
	assert.Contains(t, out, "API Version: 1.0.0 (supported)\n")
	assert.Contains(t, out, "Logged in as: demo@trackme.app\n")
}

func TestIsAPICompatible(t *testing.T) {
	assert.True(t, IsAPICompatible("1.0.0"))
	assert.True(t, IsAPICompatible("1.4.2"))
	assert.False(t, IsAPICompatible("2.0.0"))
	assert.False(t, IsAPICompatible("0.9.0"))
	assert.False(t, IsAPICompatible("not-a-version"))
}

func TestHomeDashboard(t *testing.T) {
	env := newCLIEnv(t)
	env.login()

	out := env.mustRun("home")
	assert.Contains(t, out, ", Sarah\n")
	assert.Contains(t, out, "Today's tasks (1/4 done)\n")
	assert.Contains(t, out, "Calories  1,250 / 2,000 kcal\n")
	assert.Contains(t, out, "Steps     6,342 / 8,000  (1,658 to go)\n")
	assert.Contains(t, out, "Active    28 / 30 min\n")
	assert.Contains(t, out, "Insights\n")

	out = env.mustRun("home", "-j")
	assert.Equal(t, "2025-03-12", gjson.Get(out, "value.date").String())
	assert.Equal(t, int64(6342), gjson.Get(out, "value.steps").Int())
	assert.Equal(t, int64(4), gjson.Get(out, "value.tasks.#").Int())
}

func TestInsightCommands(t *testing.T) {
	env := newCLIEnv(t)
	env.login()

	out := env.mustRun("insights", "today", "-j")
	ids := gjson.Get(out, "value.#.id").Array()
	require.NotEmpty(t, ids)

	first := ids[0].String()
	assert.Equal(t, "✓ Dismissed insight "+first+"\n", env.mustRun("insights", "dismiss", first))
	out = env.mustRun("insights", "today", "-j")
	for _, id := range gjson.Get(out, "value.#.id").Array() {
		assert.NotEqual(t, first, id.String())
	}
}

const bulkFile = `kind: Activity
spec:
  type: dance
  duration_minutes: 20
  datetime: "{{ .NOW }}"
---
kind: Meal
spec:
  name: Trail mix
  meal_type: snack
  datetime: "{{ .TODAY }}T16:00:00Z"
  calories: 150
---
kind: Task
spec:
  title: Stretch
  tag: health
`

func TestCreateFromFile(t *testing.T) {
	env := newCLIEnv(t)
	env.login()
	file := filepath.Join(t.TempDir(), "today.yaml")
	require.NoError(t, os.WriteFile(file, []byte(bulkFile), 0600))

	out, stderr, err := env.run("create", "-f", file)
	assert.ErrorIs(t, err, ErrAlreadyHandled)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Regexp(t, `^\[OK\] Created Task: Stretch \(id \d+\)$`, lines[0])
	assert.Regexp(t, `^\[OK\] Created Meal: Trail mix \(id \d+\)$`, lines[1])
	assert.Equal(t, "[ERROR] Activity: dance: type must be one of: run, walk, cycle, gym, swim, yoga, other\n", stderr)

	out = env.mustRun("create", "-f", file, "--ignore-errors", "-j")
	var status []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &status))
	require.Len(t, status, 3)
	assert.Equal(t, "Task", status[0]["kind"])
	assert.Equal(t, true, status[0]["created"])
	assert.Equal(t, "Activity", status[2]["kind"])
	assert.Equal(t, false, status[2]["created"])

	out = env.mustRun("diet", "summary", "--from", "today", "--to", "today", "-j")
	assert.Equal(t, 1550.0, gjson.Get(out, "value.0.total_calories").Float())

	_, _, err = env.run("create")
	assert.Error(t, err)
}

func TestPatch(t *testing.T) {
	p := newPatch()
	assert.True(t, p.empty())
	require.NoError(t, p.set("title", "Call mom"))
	require.NoError(t, p.applySets([]string{
		"step_count=9100",
		"apple_health_connected=true",
		"notes=easy run",
		`location="Room A"`,
		"description=null",
		`meta={"a":1}`,
	}))
	assert.False(t, p.empty())
	assert.JSONEq(t, `{
		"title": "Call mom",
		"step_count": 9100,
		"apple_health_connected": true,
		"notes": "easy run",
		"location": "Room A",
		"description": null,
		"meta": {"a": 1}
	}`, string(p.payload()))

	assert.EqualError(t, p.applySets([]string{"novalue"}), `invalid --set "novalue": expected key=value`)
	assert.EqualError(t, p.applySets([]string{"=1"}), `invalid --set "=1": expected key=value`)
}

func TestParseInputs(t *testing.T) {
	now = fixedClock
	t.Cleanup(func() { now = timeNow })

	day, err := parseDay("date", "today")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-12", day)
	day, err = parseDay("date", "Yesterday")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-11", day)
	day, err = parseDay("date", "2025-03-01T10:00:00")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01", day)
	_, err = parseDay("date", "03/12/2025")
	assert.EqualError(t, err, `invalid --date "03/12/2025": use YYYY-MM-DD`)

	bound, err := parseRangeBound("from", "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", bound)
	bound, err = parseRangeBound("from", "2025-03-10T08:30")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10T08:30:00Z", bound)
	bound, err = parseRangeBound("to", "now")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-12T20:00:00Z", bound)

	ts, err := parseTime("at", "now")
	require.NoError(t, err)
	assert.True(t, ts.Equal(fixedClock()))

	id, err := parseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	_, err = parseID("0")
	assert.EqualError(t, err, `invalid id "0"`)
}
