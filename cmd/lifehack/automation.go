package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fentz26/lifehack/internal/automation"
)

var automationCmd = &cobra.Command{
	Use:   "automation",
	Short: "Run budgeting and productivity automations",
}

var automationListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available automation scripts",
	RunE:  runAutomationList,
}

var automationBudgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Create a budget snapshot from a monthly income",
	RunE:  runAutomationBudget,
}

var automationAnalyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a budget snapshot against recommended limits",
	RunE:  runAutomationAnalyze,
}

var automationScheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Create a daily schedule of one-hour blocks",
	RunE:  runAutomationSchedule,
}

var automationFocusCmd = &cobra.Command{
	Use:   "focus",
	Short: "Start a focus session",
	RunE:  runAutomationFocus,
}

var (
	income       float64
	saveToFile   bool
	startHour    int
	endHour      int
	focusMinutes int
	focusTask    string
)

func init() {
	automationCmd.AddCommand(automationListCmd, automationBudgetCmd, automationAnalyzeCmd, automationScheduleCmd, automationFocusCmd)

	automationBudgetCmd.Flags().Float64Var(&income, "income", automation.DefaultIncome, "Monthly income")
	automationBudgetCmd.Flags().BoolVar(&saveToFile, "save", false, "Write the snapshot to the data directory")

	automationAnalyzeCmd.Flags().Float64Var(&income, "income", automation.DefaultIncome, "Monthly income")

	automationScheduleCmd.Flags().IntVar(&startHour, "start", automation.DefaultStartHour, "First working hour (0-23)")
	automationScheduleCmd.Flags().IntVar(&endHour, "end", automation.DefaultEndHour, "Hour the working day ends (1-24)")
	automationScheduleCmd.Flags().BoolVar(&saveToFile, "save", false, "Write the schedule to the data directory")

	automationFocusCmd.Flags().IntVar(&focusMinutes, "minutes", automation.DefaultFocusMinutes, "Session length in minutes")
	automationFocusCmd.Flags().StringVar(&focusTask, "task", automation.DefaultFocusTask, "What to focus on")
}

// executionResult mirrors automation.ExecutionResult with the result left raw.
type executionResult struct {
	AutomationType string          `json:"automation_type"`
	ScriptName     string          `json:"script_name"`
	Result         json.RawMessage `json:"result"`
	Error          string          `json:"error"`
	Status         string          `json:"status"`
}

// runScript executes a script and decodes its result into out.
func runScript(automationType, script string, params map[string]interface{}, out interface{}) error {
	var res executionResult
	if err := apiPostJSON("/automations/"+automationType+"/"+script, params, &res); err != nil {
		return err
	}
	if res.Status != automation.StatusSuccess {
		return fmt.Errorf("%s/%s failed: %s", automationType, script, res.Error)
	}
	return json.Unmarshal(res.Result, out)
}

func runAutomationList(cmd *cobra.Command, args []string) error {
	var scripts []automation.Script
	if err := apiGetJSON("/automations", &scripts); err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tSCRIPT\tCOMMAND\tDESCRIPTION")
	for _, s := range scripts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.Type, s.Name, automationCommand(s.Name), s.Description)
	}
	w.Flush()
	return nil
}

func runAutomationBudget(cmd *cobra.Command, args []string) error {
	var snap automation.BudgetSnapshot
	params := map[string]interface{}{"income": income, "save_to_file": saveToFile}
	if err := runScript("budget", "create_snapshot", params, &snap); err != nil {
		return err
	}

	fmt.Printf("Budget snapshot for income %.2f\n\n", snap.Income)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tAMOUNT\tSHARE")
	rows := []struct {
		name    string
		amount  float64
		percent float64
	}{
		{"Housing", snap.Expenses.Housing, snap.Analysis.Housing},
		{"Food", snap.Expenses.Food, snap.Analysis.Food},
		{"Transportation", snap.Expenses.Transportation, snap.Analysis.Transport},
		{"Utilities", snap.Expenses.Utilities, snap.Analysis.Utilities},
		{"Entertainment", snap.Expenses.Entertainment, snap.Analysis.Entertainment},
		{"Other", snap.Expenses.Other, snap.Analysis.Other},
		{"Savings", snap.Savings, snap.Analysis.Savings},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%.2f\t%.1f%%\n", r.name, r.amount, r.percent)
	}
	w.Flush()

	fmt.Printf("\nTotal expenses: %.2f\n", snap.TotalExpenses)
	fmt.Printf("Balance:        %.2f\n", snap.Balance)
	if snap.SavedTo != "" {
		fmt.Printf("Saved to:       %s\n", snap.SavedTo)
	}
	return nil
}

func runAutomationAnalyze(cmd *cobra.Command, args []string) error {
	var analysis automation.BudgetAnalysis
	if err := runScript("budget", "analyze", map[string]interface{}{"income": income}, &analysis); err != nil {
		return err
	}

	fmt.Println(analysis.Summary)
	fmt.Printf("Income: %.2f  Expenses: %.2f  Savings: %.2f  Balance: %.2f\n\n",
		analysis.Income, analysis.TotalExpenses, analysis.Savings, analysis.Balance)
	for _, r := range analysis.Recommendations {
		fmt.Printf("  - %s\n", r)
	}
	return nil
}

func runAutomationSchedule(cmd *cobra.Command, args []string) error {
	var sched automation.DailySchedule
	params := map[string]interface{}{"start_hour": startHour, "end_hour": endHour, "save_to_file": saveToFile}
	if err := runScript("productivity", "create_schedule", params, &sched); err != nil {
		return err
	}

	fmt.Printf("Schedule for %s\n\n", sched.Date)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tBLOCK\tPRIORITY")
	for _, b := range sched.TimeBlocks {
		fmt.Fprintf(w, "%s-%s\t%s\t%s\n", b.StartTime.Format("15:04"), b.EndTime.Format("15:04"), b.TaskType, b.Priority)
	}
	w.Flush()

	fmt.Printf("\n%d work hours, %d deep work blocks, %d breaks\n", sched.TotalWorkHours, sched.DeepWorkBlocks, sched.BreakBlocks)
	if sched.SavedTo != "" {
		fmt.Printf("Saved to: %s\n", sched.SavedTo)
	}
	return nil
}

func runAutomationFocus(cmd *cobra.Command, args []string) error {
	var timer automation.FocusTimer
	params := map[string]interface{}{"minutes": focusMinutes, "task": focusTask}
	if err := runScript("productivity", "focus_timer", params, &timer); err != nil {
		return err
	}

	fmt.Printf("Focus on %q for %d minutes, until %s\n", timer.Task, timer.DurationMinutes, timer.EndTime.Local().Format("15:04"))
	return nil
}

// automationCommand maps a script name to its CLI subcommand.
func automationCommand(script string) string {
	switch script {
	case "create_snapshot":
		return "budget"
	case "create_schedule":
		return "schedule"
	case "focus_timer":
		return "focus"
	default:
		return script
	}
}
