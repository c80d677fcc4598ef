package core

import "time"

// GoalPlan pairs a stored savings goal with its recommended monthly
// contribution. The recommendation is a projection computed per render,
// never persisted alongside the goal.
type GoalPlan struct {
	Goal        SavingsGoal
	Recommended Money
}

// Dashboard is the aggregated summary handed to the view layer.
type Dashboard struct {
	Incomes      []Income
	Expenses     []Expense
	Goals        []GoalPlan
	TotalIncome  Money
	TotalExpense Money
	Balance      Money
	Advice       string
}

const (
	AdviceNoGoals   = "No savings goals set."
	AdviceRebalance = "Consider increasing your income, extending your goal date, or decreasing your expenses."
)

// BuildDashboard aggregates the user's records into a Dashboard.
// Balance is total income minus total expense; each goal gets its
// recommended monthly savings from the shared totals. The advisory
// message is emitted when there are no goals, or when the balance falls
// short of the largest recommended contribution.
func BuildDashboard(now time.Time, incomes []Income, expenses []Expense, goals []SavingsGoal) Dashboard {
	d := Dashboard{Incomes: incomes, Expenses: expenses}
	for _, in := range incomes {
		d.TotalIncome.Cents += in.Amount.Cents
	}
	for _, ex := range expenses {
		d.TotalExpense.Cents += ex.Amount.Cents
	}
	d.Balance = Money{Cents: d.TotalIncome.Cents - d.TotalExpense.Cents}

	var maxRecommended int64
	for _, g := range goals {
		rec := RecommendMonthlySavings(g.Target, g.DueDate, now, d.TotalIncome, d.TotalExpense)
		if rec.Cents > maxRecommended {
			maxRecommended = rec.Cents
		}
		d.Goals = append(d.Goals, GoalPlan{Goal: g, Recommended: rec})
	}

	if len(goals) == 0 {
		d.Advice = AdviceNoGoals
	} else if d.Balance.Cents < maxRecommended {
		d.Advice = AdviceRebalance
	}
	return d
}
