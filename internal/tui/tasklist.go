package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fentz26/lifehack/internal/models"
)

var (
	listTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusPending    = lipgloss.NewStyle().Foreground(lipgloss.Color("3")) // Yellow
	statusInProgress = lipgloss.NewStyle().Foreground(lipgloss.Color("6")) // Cyan
	statusCompleted  = lipgloss.NewStyle().Foreground(lipgloss.Color("2")) // Green
	statusOverdue    = lipgloss.NewStyle().Foreground(lipgloss.Color("1")) // Red
)

// TaskItem implements list.Item for the task list
type TaskItem struct {
	Task models.Task
	Now  time.Time
}

func (i TaskItem) FilterValue() string { return i.Task.Title }
func (i TaskItem) Title() string       { return fmt.Sprintf("#%d %s", i.Task.ID, i.Task.Title) }
func (i TaskItem) Description() string {
	desc := formatStatus(i.Task.Status) + " • due " + i.Task.DueAt.Local().Format("Mon Jan 2 15:04")
	if i.Task.IsOverdue(i.Now) {
		desc += " " + statusOverdue.Render("overdue")
	}
	return desc
}

func formatStatus(status models.TaskStatus) string {
	switch status {
	case models.TaskStatusPending:
		return statusPending.Render("● pending")
	case models.TaskStatusInProgress:
		return statusInProgress.Render("● in progress")
	case models.TaskStatusCompleted:
		return statusCompleted.Render("● completed")
	default:
		return string(status)
	}
}

var filters = []models.TaskStatus{"", models.TaskStatusPending, models.TaskStatusInProgress, models.TaskStatusCompleted}
var filterLabels = []string{"all", "pending", "in progress", "completed"}

// TaskListModel manages the task list pane
type TaskListModel struct {
	list        list.Model
	tasks       []models.Task
	filterIndex int
}

// NewTaskListModel creates a new task list model
func NewTaskListModel() *TaskListModel {
	delegate := list.NewDefaultDelegate()
	l := list.New([]list.Item{}, delegate, 80, 20)
	l.Title = "Tasks [all]"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.Styles.Title = listTitleStyle

	return &TaskListModel{list: l}
}

// SetSize sets the list dimensions
func (m *TaskListModel) SetSize(w, h int) {
	m.list.SetSize(w, h)
}

// Filter returns the active status filter; empty means all.
func (m *TaskListModel) Filter() models.TaskStatus {
	return filters[m.filterIndex]
}

// CycleFilter cycles through status filters
func (m *TaskListModel) CycleFilter() {
	m.filterIndex = (m.filterIndex + 1) % len(filters)
	m.list.Title = fmt.Sprintf("Tasks [%s]", filterLabels[m.filterIndex])
}

// SetTasks replaces the list contents.
func (m *TaskListModel) SetTasks(tasks []models.Task, now time.Time) {
	m.tasks = tasks
	items := make([]list.Item, len(tasks))
	for i, t := range tasks {
		items[i] = TaskItem{Task: t, Now: now}
	}
	m.list.SetItems(items)
}

// Len returns the number of tasks shown.
func (m *TaskListModel) Len() int {
	return len(m.tasks)
}

// SelectedTask returns the currently selected task
func (m *TaskListModel) SelectedTask() *models.Task {
	if item, ok := m.list.SelectedItem().(TaskItem); ok {
		task := item.Task
		return &task
	}
	return nil
}

// Update forwards navigation keys to the list
func (m *TaskListModel) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return cmd
}

// View renders the task list
func (m *TaskListModel) View() string {
	if len(m.tasks) == 0 {
		return listTitleStyle.Render(m.list.Title) + "\n\n  No tasks. Generate a plan with: lifehack plan generate <problem-id>\n"
	}
	return m.list.View()
}
