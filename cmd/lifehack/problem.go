package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fentz26/lifehack/internal/assistant"
	"github.com/fentz26/lifehack/internal/models"
)

var problemCmd = &cobra.Command{
	Use:   "problem",
	Short: "Manage problems",
}

var problemAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Describe a new problem",
	RunE:  runProblemAdd,
}

var problemListCmd = &cobra.Command{
	Use:   "list",
	Short: "List problems",
	RunE:  runProblemList,
}

var problemShowCmd = &cobra.Command{
	Use:   "show [problem-id]",
	Short: "Show a problem and its plans",
	Args:  cobra.ExactArgs(1),
	RunE:  runProblemShow,
}

var problemSolveCmd = &cobra.Command{
	Use:   "solve [problem-id]",
	Short: "Generate a plan, create its tasks and suggest automations",
	Args:  cobra.ExactArgs(1),
	RunE:  runProblemSolve,
}

var (
	problemTitle    string
	problemCategory string
	problemDesc     string
	solveNoTasks    bool
)

func init() {
	problemCmd.AddCommand(problemAddCmd, problemListCmd, problemShowCmd, problemSolveCmd)

	problemAddCmd.Flags().StringVar(&problemTitle, "title", "", "Problem title, 5-100 characters (required)")
	problemAddCmd.Flags().StringVar(&problemCategory, "category", "general", "Category (shopping, productivity, finance, general)")
	problemAddCmd.Flags().StringVar(&problemDesc, "desc", "", "Problem description")
	problemAddCmd.MarkFlagRequired("title")

	problemSolveCmd.Flags().BoolVar(&solveNoTasks, "no-tasks", false, "Generate the plan without creating tasks")
}

func runProblemAdd(cmd *cobra.Command, args []string) error {
	in := assistant.ProblemInput{Title: problemTitle, Category: problemCategory}
	if problemDesc != "" {
		in.Description = &problemDesc
	}

	var p models.Problem
	if err := apiPostJSON("/problems", in, &p); err != nil {
		return err
	}

	fmt.Printf("Created problem %d: %s\n", p.ID, p.Title)
	return nil
}

func runProblemList(cmd *cobra.Command, args []string) error {
	var problems []models.Problem
	if err := apiGetJSON("/problems", &problems); err != nil {
		return err
	}

	if len(problems) == 0 {
		fmt.Println("No problems found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tCREATED")
	for _, p := range problems {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", p.ID, truncate(p.Title, 40), p.Category, formatTime(p.CreatedAt))
	}
	w.Flush()
	return nil
}

func runProblemShow(cmd *cobra.Command, args []string) error {
	var p models.Problem
	if err := apiGetJSON("/problems/"+args[0], &p); err != nil {
		return err
	}
	var plans []models.Plan
	if err := apiGetJSON("/problems/"+args[0]+"/plans", &plans); err != nil {
		return err
	}

	fmt.Printf("ID:          %d\n", p.ID)
	fmt.Printf("Title:       %s\n", p.Title)
	fmt.Printf("Category:    %s\n", p.Category)
	if p.Description != nil {
		fmt.Printf("Description: %s\n", *p.Description)
	}
	fmt.Printf("Created:     %s\n", formatTime(p.CreatedAt))

	if len(plans) > 0 {
		fmt.Println("\nPlans:")
		for _, plan := range plans {
			fmt.Printf("  %d  %s (%s)\n", plan.ID, plan.Summary, formatTime(plan.GeneratedAt))
		}
	}
	return nil
}

func runProblemSolve(cmd *cobra.Command, args []string) error {
	path := "/problems/" + args[0] + "/solve"
	if solveNoTasks {
		path += "?tasks=false"
	}

	var sol assistant.Solution
	if err := apiPostJSON(path, nil, &sol); err != nil {
		return err
	}

	printPlan(sol.Plan)

	if len(sol.Tasks) > 0 {
		fmt.Println()
		printTasks(sol.Tasks)
	}

	if len(sol.AutomationSuggestions) > 0 {
		fmt.Println("\nSuggested automations:")
		for _, s := range sol.AutomationSuggestions {
			fmt.Printf("  lifehack automation %s  # %s (saves %s)\n", automationCommand(s.Script), s.Description, s.EstimatedTimeSaved)
		}
	}

	fmt.Println("\nNext steps:")
	for _, step := range sol.NextSteps {
		fmt.Printf("  - %s\n", step)
	}
	return nil
}
