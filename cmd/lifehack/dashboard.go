package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/fentz26/lifehack/internal/models"
	"github.com/fentz26/lifehack/internal/planner"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show task counts, upcoming work and recommendations",
	RunE:  runDashboard,
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Show recent audit entries",
	RunE:  runAudit,
}

var auditLimit int

func init() {
	auditCmd.Flags().IntVar(&auditLimit, "limit", 20, "Number of entries to show")
}

func runDashboard(cmd *cobra.Command, args []string) error {
	var d planner.Dashboard
	if err := apiGetJSON("/dashboard", &d); err != nil {
		return err
	}

	s := d.Summary
	fmt.Printf("Tasks: %d total, %d pending, %d in progress, %d completed, %d overdue\n",
		s.Total, s.Pending, s.InProgress, s.Completed, s.Overdue)

	if len(d.Upcoming) > 0 {
		fmt.Println("\nUpcoming:")
		printTasks(d.Upcoming)
	}

	if len(d.RecentCompletions) > 0 {
		fmt.Println("\nRecently completed:")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, t := range d.RecentCompletions {
			fmt.Fprintf(w, "%d\t%s\t%s\n", t.ID, truncate(t.Title, 40), completedAt(t))
		}
		w.Flush()
	}

	if len(d.Recommendations) > 0 {
		fmt.Println("\nRecommendations:")
		for _, r := range d.Recommendations {
			fmt.Printf("  - %s\n", r)
		}
	}
	return nil
}

func runAudit(cmd *cobra.Command, args []string) error {
	var entries []models.AuditEntry
	if err := apiGetJSON("/audit?limit="+strconv.Itoa(auditLimit), &entries); err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No audit entries")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tACTION\tSUBJECT\tOUTCOME\tDETAILS")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", formatTime(e.Timestamp), e.Action, e.Subject, e.Outcome, truncate(e.Details, 50))
	}
	w.Flush()
	return nil
}

func completedAt(t models.Task) string {
	if t.CompletedAt == nil {
		return ""
	}
	return formatTime(*t.CompletedAt)
}

// --- Helpers ---

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func formatTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}
