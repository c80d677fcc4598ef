package core

import (
	"testing"
	"time"
)

var summaryNow = time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)

func TestBuildDashboardEmpty(t *testing.T) {
	d := BuildDashboard(summaryNow, nil, nil, nil)
	if d.TotalIncome.Cents != 0 || d.TotalExpense.Cents != 0 || d.Balance.Cents != 0 {
		t.Fatalf("expected zero totals, got %+v", d)
	}
	if d.Advice != AdviceNoGoals {
		t.Fatalf("expected %q, got %q", AdviceNoGoals, d.Advice)
	}
}

func TestBuildDashboardTotals(t *testing.T) {
	incomes := []Income{
		{Amount: Money{Cents: 100000}, Description: "salary", Date: NewDate(2024, 3, 15)},
		{Amount: Money{Cents: 25000}, Description: "side gig", Date: NewDate(2024, 3, 20)},
	}
	expenses := []Expense{
		{Amount: Money{Cents: 40000}, Description: "rent", Date: NewDate(2024, 3, 20)},
	}
	d := BuildDashboard(summaryNow, incomes, expenses, nil)
	if d.TotalIncome.Cents != 125000 {
		t.Fatalf("total income: expected 125000, got %d", d.TotalIncome.Cents)
	}
	if d.TotalExpense.Cents != 40000 {
		t.Fatalf("total expense: expected 40000, got %d", d.TotalExpense.Cents)
	}
	if d.Balance.Cents != d.TotalIncome.Cents-d.TotalExpense.Cents {
		t.Fatalf("balance mismatch: %d", d.Balance.Cents)
	}
}

func TestBuildDashboardAdvisory(t *testing.T) {
	// Spec scenario: income 1000, expense 400, goal 6000 due in 6 months.
	// Recommended is 900, balance 600 < 900, so the advisory fires.
	incomes := []Income{{Amount: Money{Cents: 100000}}}
	expenses := []Expense{{Amount: Money{Cents: 40000}}}
	goals := []SavingsGoal{{
		Target:    Money{Cents: 600000},
		StartDate: NewDate(2024, 3, 1),
		DueDate:   NewDate(2024, 9, 1),
	}}

	d := BuildDashboard(summaryNow, incomes, expenses, goals)
	if len(d.Goals) != 1 {
		t.Fatalf("expected 1 goal plan, got %d", len(d.Goals))
	}
	if d.Goals[0].Recommended.Cents != 90000 {
		t.Fatalf("expected recommended 90000, got %d", d.Goals[0].Recommended.Cents)
	}
	if d.Advice != AdviceRebalance {
		t.Fatalf("expected advisory message, got %q", d.Advice)
	}
}

func TestBuildDashboardNoAdvisoryWhenCovered(t *testing.T) {
	// Balance comfortably exceeds every recommendation: no message.
	incomes := []Income{{Amount: Money{Cents: 1000000}}}
	goals := []SavingsGoal{{
		Target:    Money{Cents: 600000},
		StartDate: NewDate(2024, 3, 1),
		DueDate:   NewDate(2025, 3, 1),
	}}

	d := BuildDashboard(summaryNow, incomes, nil, goals)
	if d.Goals[0].Recommended.Cents != 0 {
		t.Fatalf("expected recommended 0, got %d", d.Goals[0].Recommended.Cents)
	}
	if d.Advice != "" {
		t.Fatalf("expected no advice, got %q", d.Advice)
	}
}
