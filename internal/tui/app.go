// Package tui provides the interactive terminal dashboard for lifehack.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fentz26/lifehack/internal/models"
	"github.com/fentz26/lifehack/internal/planner"
)

var (
	// Colors
	primaryColor = lipgloss.Color("#7C3AED")
	successColor = lipgloss.Color("#10B981")
	warningColor = lipgloss.Color("#F59E0B")
	errorColor   = lipgloss.Color("#EF4444")
	mutedColor   = lipgloss.Color("#6B7280")
	fgColor      = lipgloss.Color("#F9FAFB")
	cyanColor    = lipgloss.Color("#06B6D4")

	// Styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#374151")).
			Foreground(fgColor).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 1)

	onlineStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	offlineStyle = lipgloss.NewStyle().
			Foreground(errorColor)
)

// API is the subset of the daemon API the dashboard uses.
type API interface {
	ListTasks(status string) ([]models.Task, error)
	Dashboard() (*planner.Dashboard, error)
	UpdateStatus(id int64, status models.TaskStatus) (*models.Task, error)
	CompleteTask(id int64) (*models.Task, error)
}

// App is the main TUI application model.
type App struct {
	api       API
	list      *TaskListModel
	spinner   spinner.Model
	dashboard *planner.Dashboard
	now       func() time.Time
	width     int
	height    int
	loading   bool
	online    bool
	message   string
}

// New creates a new TUI application.
func New(apiAddr string) *App {
	return NewWithAPI(NewClient(apiAddr))
}

// NewWithAPI creates a TUI application backed by api.
func NewWithAPI(api API) *App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(primaryColor)

	return &App{
		api:     api,
		list:    NewTaskListModel(),
		spinner: sp,
		now:     time.Now,
	}
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.refresh())
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return a, tea.Quit

		case "tab":
			a.list.CycleFilter()
			return a, a.refresh()

		case "r":
			a.message = ""
			return a, a.refresh()

		case "c":
			return a, a.changeStatus(models.TaskStatusCompleted)

		case "s":
			return a, a.changeStatus(models.TaskStatusInProgress)
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.list.SetSize(msg.Width/2, max(msg.Height-8, 5))
		return a, nil

	case dataLoadedMsg:
		a.loading = false
		a.online = true
		a.dashboard = msg.dashboard
		a.list.SetTasks(msg.tasks, a.now())
		return a, nil

	case statusChangedMsg:
		a.message = fmt.Sprintf("✓ #%d %s", msg.task.ID, strings.ReplaceAll(string(msg.task.Status), "_", " "))
		return a, a.refresh()

	case errMsg:
		a.loading = false
		a.message = "Error: " + msg.err.Error()
		if msg.offline {
			a.online = false
		}
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	return a, a.list.Update(msg)
}

// View implements tea.Model
func (a *App) View() string {
	var b strings.Builder

	status := onlineStyle.Render("● DAEMON")
	if !a.online {
		status = offlineStyle.Render("○ DAEMON")
	}
	header := titleStyle.Render("lifehack") + "  " + status
	if a.loading {
		header += "  " + a.spinner.View()
	}
	b.WriteString(header + "\n")
	b.WriteString(a.renderSummary() + "\n")
	b.WriteString(strings.Repeat("─", max(a.width, 20)) + "\n")

	side := renderTaskDetail(a.list.SelectedTask(), a.now()) + "\n" + renderRecommendations(a.dashboard)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		a.list.View(),
		panelStyle.Width(max(a.width/2-4, 30)).Render(side),
	))

	b.WriteString("\n")
	if a.message != "" {
		style := lipgloss.NewStyle().Foreground(successColor)
		if strings.HasPrefix(a.message, "Error") {
			style = lipgloss.NewStyle().Foreground(errorColor)
		}
		b.WriteString(style.Render(a.message))
	}
	b.WriteString("\n")

	help := fmt.Sprintf(" Tasks: %d | ↑↓:nav | Tab:filter | s:start | c:complete | r:refresh | q:quit", a.list.Len())
	b.WriteString(statusBarStyle.Width(max(a.width, 20)).Render(help))
	return b.String()
}

func (a *App) renderSummary() string {
	if a.dashboard == nil {
		return lipgloss.NewStyle().Foreground(mutedColor).Render(" Loading dashboard...")
	}
	s := a.dashboard.Summary
	parts := []string{
		fmt.Sprintf("Total %d", s.Total),
		lipgloss.NewStyle().Foreground(warningColor).Render(fmt.Sprintf("Pending %d", s.Pending)),
		lipgloss.NewStyle().Foreground(cyanColor).Render(fmt.Sprintf("In progress %d", s.InProgress)),
		lipgloss.NewStyle().Foreground(successColor).Render(fmt.Sprintf("Completed %d", s.Completed)),
	}
	overdue := fmt.Sprintf("Overdue %d", s.Overdue)
	if s.Overdue > 0 {
		overdue = lipgloss.NewStyle().Foreground(errorColor).Bold(true).Render(overdue)
	}
	parts = append(parts, overdue)
	return " " + strings.Join(parts, "  ")
}

func (a *App) refresh() tea.Cmd {
	a.loading = true
	filter := string(a.list.Filter())
	return func() tea.Msg {
		d, err := a.api.Dashboard()
		if err != nil {
			return errMsg{err: err, offline: true}
		}
		tasks, err := a.api.ListTasks(filter)
		if err != nil {
			return errMsg{err: err, offline: true}
		}
		return dataLoadedMsg{dashboard: d, tasks: tasks}
	}
}

func (a *App) changeStatus(status models.TaskStatus) tea.Cmd {
	task := a.list.SelectedTask()
	if task == nil {
		a.message = "No task selected"
		return nil
	}
	id := task.ID
	return func() tea.Msg {
		var (
			updated *models.Task
			err     error
		)
		if status == models.TaskStatusCompleted {
			updated, err = a.api.CompleteTask(id)
		} else {
			updated, err = a.api.UpdateStatus(id, status)
		}
		if err != nil {
			return errMsg{err: err}
		}
		return statusChangedMsg{task: updated}
	}
}

type dataLoadedMsg struct {
	dashboard *planner.Dashboard
	tasks     []models.Task
}

type statusChangedMsg struct {
	task *models.Task
}

type errMsg struct {
	err     error
	offline bool
}
