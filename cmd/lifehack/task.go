package main

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/fentz26/lifehack/internal/assistant"
	"github.com/fentz26/lifehack/internal/models"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
}

var taskAddCmd = &cobra.Command{
	Use:   "add [plan-id]",
	Short: "Add a task to a plan",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskAdd,
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	RunE:  runTaskList,
}

var taskShowCmd = &cobra.Command{
	Use:   "show [task-id]",
	Short: "Show task details",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskShow,
}

var taskStatusCmd = &cobra.Command{
	Use:   "status [task-id] [pending|in_progress|completed]",
	Short: "Change a task's status",
	Args:  cobra.ExactArgs(2),
	RunE:  runTaskStatus,
}

var taskDoneCmd = &cobra.Command{
	Use:   "done [task-id]",
	Short: "Mark a task completed",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskDone,
}

var taskRmCmd = &cobra.Command{
	Use:   "rm [task-id]",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskRm,
}

var (
	taskTitle  string
	taskDue    string
	taskStatus string
)

func init() {
	taskCmd.AddCommand(taskAddCmd, taskListCmd, taskShowCmd, taskStatusCmd, taskDoneCmd, taskRmCmd)

	taskAddCmd.Flags().StringVar(&taskTitle, "title", "", "Task title (required)")
	taskAddCmd.Flags().StringVar(&taskDue, "due", "", "Due time, RFC3339 or YYYY-MM-DD HH:MM (default now)")
	taskAddCmd.MarkFlagRequired("title")

	taskListCmd.Flags().StringVar(&taskStatus, "status", "", "Filter by status (pending, in_progress, completed)")
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	in := assistant.TaskInput{Title: taskTitle}
	if taskDue != "" {
		due, err := parseDue(taskDue)
		if err != nil {
			return err
		}
		in.DueAt = &due
	}

	var task models.Task
	if err := apiPostJSON("/plans/"+args[0]+"/tasks", in, &task); err != nil {
		return err
	}

	fmt.Printf("Created task %d: %s (due %s)\n", task.ID, task.Title, formatTime(task.DueAt))
	return nil
}

func runTaskList(cmd *cobra.Command, args []string) error {
	path := "/tasks"
	if taskStatus != "" {
		path += "?status=" + url.QueryEscape(taskStatus)
	}

	var tasks []models.Task
	if err := apiGetJSON(path, &tasks); err != nil {
		return err
	}
	printTasks(tasks)
	return nil
}

func runTaskShow(cmd *cobra.Command, args []string) error {
	var task models.Task
	if err := apiGetJSON("/tasks/"+args[0], &task); err != nil {
		return err
	}

	fmt.Printf("ID:        %d\n", task.ID)
	fmt.Printf("Plan:      %d\n", task.PlanID)
	fmt.Printf("Title:     %s\n", task.Title)
	fmt.Printf("Status:    %s\n", task.Status)
	fmt.Printf("Due:       %s\n", formatTime(task.DueAt))
	if task.IsOverdue(time.Now()) {
		fmt.Println("           (overdue)")
	}
	fmt.Printf("Created:   %s\n", formatTime(task.CreatedAt))
	if task.CompletedAt != nil {
		fmt.Printf("Completed: %s\n", formatTime(*task.CompletedAt))
	}
	return nil
}

func runTaskStatus(cmd *cobra.Command, args []string) error {
	body, err := apiPatch("/tasks/"+args[0], assistant.StatusInput{Status: args[1]})
	if err != nil {
		return err
	}
	return printTaskResult(body)
}

func runTaskDone(cmd *cobra.Command, args []string) error {
	body, err := apiPost("/tasks/"+args[0]+"/complete", nil)
	if err != nil {
		return err
	}
	return printTaskResult(body)
}

func runTaskRm(cmd *cobra.Command, args []string) error {
	if err := apiDelete("/tasks/" + args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted task %s\n", args[0])
	return nil
}

func printTaskResult(body []byte) error {
	var task models.Task
	if err := json.Unmarshal(body, &task); err != nil {
		return err
	}
	fmt.Printf("Task %d is now %s\n", task.ID, task.Status)
	return nil
}

func printTasks(tasks []models.Task) {
	if len(tasks) == 0 {
		fmt.Println("No tasks found")
		return
	}

	now := time.Now()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPLAN\tTITLE\tSTATUS\tDUE")
	for _, t := range tasks {
		due := formatTime(t.DueAt)
		if t.IsOverdue(now) {
			due += " (overdue)"
		}
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\n", t.ID, t.PlanID, truncate(t.Title, 40), t.Status, due)
	}
	w.Flush()
}

// parseDue accepts RFC3339 or a local "YYYY-MM-DD HH:MM" / "YYYY-MM-DD".
func parseDue(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid due time %q", s)
}
