// Package automation implements the offline helper scripts: budget
// snapshots and analysis, daily schedules and focus timers.
package automation

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidParams is returned when a script is given unusable parameters.
var ErrInvalidParams = errors.New("invalid automation parameters")

// DefaultIncome is the monthly income used when none is supplied.
const DefaultIncome = 3000.0

// Fixed share of income per budget line.
const (
	housingShare       = 0.30
	foodShare          = 0.15
	transportShare     = 0.10
	utilitiesShare     = 0.05
	entertainmentShare = 0.10
	savingsShare       = 0.20
	otherShare         = 0.10
)

// Tolerance for percentage threshold checks.
const percentEpsilon = 1e-9

// Expenses is the monthly spend per budget line.
type Expenses struct {
	Housing        float64 `json:"housing"`
	Food           float64 `json:"food"`
	Transportation float64 `json:"transportation"`
	Utilities      float64 `json:"utilities"`
	Entertainment  float64 `json:"entertainment"`
	Other          float64 `json:"other"`
}

// Total sums every expense line.
func (e Expenses) Total() float64 {
	return e.Housing + e.Food + e.Transportation + e.Utilities + e.Entertainment + e.Other
}

// BudgetPercentages expresses each budget line as a percentage of income.
type BudgetPercentages struct {
	Housing       float64 `json:"housing_percent"`
	Food          float64 `json:"food_percent"`
	Transport     float64 `json:"transport_percent"`
	Utilities     float64 `json:"utilities_percent"`
	Entertainment float64 `json:"entertainment_percent"`
	Savings       float64 `json:"savings_percent"`
	Other         float64 `json:"other_percent"`
}

// Sum adds up all seven percentages.
func (p BudgetPercentages) Sum() float64 {
	return p.Housing + p.Food + p.Transport + p.Utilities + p.Entertainment + p.Savings + p.Other
}

// BudgetSnapshot is a point-in-time split of a monthly income.
type BudgetSnapshot struct {
	Date          time.Time         `json:"date"`
	Income        float64           `json:"income"`
	Expenses      Expenses          `json:"expenses"`
	Savings       float64           `json:"savings"`
	TotalExpenses float64           `json:"total_expenses"`
	Balance       float64           `json:"balance"`
	Analysis      BudgetPercentages `json:"analysis"`
	SavedTo       string            `json:"saved_to,omitempty"`
}

// CreateBudgetSnapshot splits income across the fixed budget lines.
func CreateBudgetSnapshot(income float64, now time.Time) (*BudgetSnapshot, error) {
	if !(income > 0) {
		return nil, fmt.Errorf("%w: income must be positive, got %v", ErrInvalidParams, income)
	}

	// Conversions keep each product rounded before it is summed.
	expenses := Expenses{
		Housing:        float64(income * housingShare),
		Food:           float64(income * foodShare),
		Transportation: float64(income * transportShare),
		Utilities:      float64(income * utilitiesShare),
		Entertainment:  float64(income * entertainmentShare),
		Other:          float64(income * otherShare),
	}
	savings := float64(income * savingsShare)
	total := expenses.Total()

	return &BudgetSnapshot{
		Date:          now,
		Income:        income,
		Expenses:      expenses,
		Savings:       savings,
		TotalExpenses: total,
		Balance:       income - total - savings,
		Analysis: BudgetPercentages{
			Housing:       percentOf(expenses.Housing, income),
			Food:          percentOf(expenses.Food, income),
			Transport:     percentOf(expenses.Transportation, income),
			Utilities:     percentOf(expenses.Utilities, income),
			Entertainment: percentOf(expenses.Entertainment, income),
			Savings:       percentOf(savings, income),
			Other:         percentOf(expenses.Other, income),
		},
	}, nil
}

func percentOf(part, whole float64) float64 {
	return part / whole * 100
}

// BudgetAnalysis is the human-readable review of a snapshot.
type BudgetAnalysis struct {
	Summary         string    `json:"summary"`
	Date            time.Time `json:"date"`
	Income          float64   `json:"income"`
	TotalExpenses   float64   `json:"total_expenses"`
	Savings         float64   `json:"savings"`
	Balance         float64   `json:"balance"`
	Recommendations []string  `json:"recommendations"`
}

var generalBudgetAdvice = []string{
	"Track your expenses daily to stay within budget.",
	"Set up automatic transfers to your savings account on payday.",
	"Review your budget monthly and adjust as needed.",
}

// AnalyzeBudget compares a snapshot against the recommended limits:
// housing at most 30%, savings at least 20%, entertainment at most 10%.
func AnalyzeBudget(s BudgetSnapshot, now time.Time) BudgetAnalysis {
	a := BudgetAnalysis{
		Summary:       "Budget Analysis",
		Date:          now,
		Income:        s.Income,
		TotalExpenses: s.TotalExpenses,
		Savings:       s.Savings,
		Balance:       s.Balance,
	}

	p := s.Analysis
	if p.Housing > 30+percentEpsilon {
		a.Recommendations = append(a.Recommendations, fmt.Sprintf(
			"Housing costs are %.1f%% of income, which is above the recommended 30%%. Consider finding ways to reduce housing costs.",
			p.Housing))
	}
	if p.Savings < 20-percentEpsilon {
		a.Recommendations = append(a.Recommendations, fmt.Sprintf(
			"Savings are only %.1f%% of income, which is below the recommended 20%%. Try to increase savings.",
			p.Savings))
	}
	if p.Entertainment > 10+percentEpsilon {
		a.Recommendations = append(a.Recommendations, fmt.Sprintf(
			"Entertainment expenses are %.1f%% of income, which is above the recommended 10%%. Consider reducing entertainment costs.",
			p.Entertainment))
	}
	a.Recommendations = append(a.Recommendations, generalBudgetAdvice...)
	return a
}
