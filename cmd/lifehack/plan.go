package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fentz26/lifehack/internal/models"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate and inspect plans",
}

var planGenerateCmd = &cobra.Command{
	Use:   "generate [problem-id]",
	Short: "Generate a plan for a problem",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlanGenerate,
}

var planShowCmd = &cobra.Command{
	Use:   "show [plan-id]",
	Short: "Show a plan and its steps",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlanShow,
}

var planTasksCmd = &cobra.Command{
	Use:   "tasks [plan-id]",
	Short: "List the tasks of a plan",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlanTasks,
}

var planMaterializeCmd = &cobra.Command{
	Use:   "materialize [plan-id]",
	Short: "Create one task per plan step",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlanMaterialize,
}

func init() {
	planCmd.AddCommand(planGenerateCmd, planShowCmd, planTasksCmd, planMaterializeCmd)
}

func runPlanGenerate(cmd *cobra.Command, args []string) error {
	var plan models.Plan
	if err := apiPostJSON("/problems/"+args[0]+"/plan", nil, &plan); err != nil {
		return err
	}
	printPlan(&plan)
	return nil
}

func runPlanShow(cmd *cobra.Command, args []string) error {
	var plan models.Plan
	if err := apiGetJSON("/plans/"+args[0], &plan); err != nil {
		return err
	}
	printPlan(&plan)
	return nil
}

func runPlanTasks(cmd *cobra.Command, args []string) error {
	var tasks []models.Task
	if err := apiGetJSON("/plans/"+args[0]+"/tasks", &tasks); err != nil {
		return err
	}
	printTasks(tasks)
	return nil
}

func runPlanMaterialize(cmd *cobra.Command, args []string) error {
	var tasks []models.Task
	if err := apiPostJSON("/plans/"+args[0]+"/materialize", nil, &tasks); err != nil {
		return err
	}
	fmt.Printf("Created %d tasks\n", len(tasks))
	printTasks(tasks)
	return nil
}

func printPlan(plan *models.Plan) {
	if plan == nil {
		return
	}
	fmt.Printf("Plan %d for problem %d: %s\n\n", plan.ID, plan.ProblemID, plan.Summary)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tTITLE\tDUE\tDETAILS")
	for _, s := range plan.Steps {
		fmt.Fprintf(w, "%d\t%s\t+%s\t%s\n", s.StepID, s.Title, s.DueOffset, truncate(s.Details, 60))
	}
	w.Flush()
}
