package tui

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fentz26/lifehack/internal/models"
	"github.com/fentz26/lifehack/internal/planner"
)

type fakeAPI struct {
	tasks      []models.Task
	dashboard  *planner.Dashboard
	err        error
	lastFilter string
	updated    map[int64]models.TaskStatus
}

func (f *fakeAPI) ListTasks(status string) ([]models.Task, error) {
	f.lastFilter = status
	return f.tasks, f.err
}

func (f *fakeAPI) Dashboard() (*planner.Dashboard, error) {
	return f.dashboard, f.err
}

func (f *fakeAPI) UpdateStatus(id int64, status models.TaskStatus) (*models.Task, error) {
	if f.updated == nil {
		f.updated = map[int64]models.TaskStatus{}
	}
	f.updated[id] = status
	return &models.Task{ID: id, Status: status}, f.err
}

func (f *fakeAPI) CompleteTask(id int64) (*models.Task, error) {
	return f.UpdateStatus(id, models.TaskStatusCompleted)
}

func key(s string) tea.KeyMsg {
	if s == "tab" {
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loadedApp(t *testing.T) (*App, *fakeAPI) {
	t.Helper()
	now := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
	api := &fakeAPI{
		tasks: []models.Task{
			{ID: 1, Title: "Plan meals", Status: models.TaskStatusPending, DueAt: now.Add(-time.Hour)},
			{ID: 2, Title: "Make list", Status: models.TaskStatusPending, DueAt: now.Add(time.Hour)},
		},
	}
	d := planner.BuildDashboard(api.tasks, now, planner.DefaultDashboardOptions())
	api.dashboard = &d

	app := NewWithAPI(api)
	app.now = func() time.Time { return now }

	msg := app.refresh()()
	app.Update(msg)
	return app, api
}

func TestApp_RefreshLoadsTasksAndDashboard(t *testing.T) {
	app, _ := loadedApp(t)

	assert.True(t, app.online)
	assert.False(t, app.loading)
	assert.Equal(t, 2, app.list.Len())
	require.NotNil(t, app.dashboard)
	assert.Equal(t, 1, app.dashboard.Summary.Overdue)

	view := app.View()
	assert.Contains(t, view, "Overdue 1")
	assert.Contains(t, view, "Plan meals")
}

func TestApp_TabCyclesFilter(t *testing.T) {
	app, api := loadedApp(t)

	_, cmd := app.Update(key("tab"))
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, "pending", api.lastFilter)

	for i := 0; i < 3; i++ {
		_, cmd = app.Update(key("tab"))
		cmd()
	}
	assert.Equal(t, "", api.lastFilter)
}

func TestApp_StatusKeys(t *testing.T) {
	app, api := loadedApp(t)

	_, cmd := app.Update(key("s"))
	require.NotNil(t, cmd)
	msg := cmd()
	assert.IsType(t, statusChangedMsg{}, msg)
	assert.Equal(t, models.TaskStatusInProgress, api.updated[1])

	_, cmd = app.Update(key("c"))
	require.NotNil(t, cmd)
	msg = cmd()
	assert.Equal(t, models.TaskStatusCompleted, api.updated[1])

	_, cmd = app.Update(msg)
	assert.NotNil(t, cmd)
	assert.Contains(t, app.message, "#1 completed")
}

func TestApp_NoSelection(t *testing.T) {
	app := NewWithAPI(&fakeAPI{})

	_, cmd := app.Update(key("c"))
	assert.Nil(t, cmd)
	assert.Equal(t, "No task selected", app.message)
}

func TestApp_ErrorMarksOffline(t *testing.T) {
	app, api := loadedApp(t)
	api.err = errors.New("connection refused")

	app.Update(app.refresh()())
	assert.False(t, app.online)
	assert.Contains(t, app.View(), "Error: connection refused")
}

func TestApp_Quit(t *testing.T) {
	app, _ := loadedApp(t)

	_, cmd := app.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestClient_ReportsAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/tasks":
			assert.Equal(t, "completed", r.URL.Query().Get("status"))
			w.Write([]byte(`[{"id":3,"plan_id":1,"title":"Done","status":"completed"}]`))
		case "/tasks/9":
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"task not found"}`))
		default:
			w.WriteHeader(http.StatusTeapot)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL)

	tasks, err := c.ListTasks("completed")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, models.TaskStatusCompleted, tasks[0].Status)

	_, err = c.UpdateStatus(9, models.TaskStatusPending)
	require.Error(t, err)
	assert.Equal(t, "API error (404): task not found", err.Error())
}
