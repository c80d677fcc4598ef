package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"tally/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "tally.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestIncomeCRUD(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	date, _ := core.ParseDate("2024-03-15")
	id, err := repo.CreateIncome(ctx, core.Income{
		UserID:      1,
		Amount:      core.Money{Cents: 100000},
		Description: "salary",
		Date:        date,
		Month:       date.MonthName(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == 0 {
		t.Fatalf("expected assigned id")
	}

	got, err := repo.GetIncome(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Month != "March" || got.Amount.Cents != 100000 || got.Date.String() != "2024-03-15" {
		t.Fatalf("unexpected record: %+v", got)
	}

	// Full replace: every field overwritten, month recomputed from new date
	newDate, _ := core.ParseDate("2024-04-02")
	err = repo.UpdateIncome(ctx, core.Income{
		ID:          id,
		UserID:      1,
		Amount:      core.Money{Cents: 50000},
		Description: "bonus",
		Date:        newDate,
		Month:       newDate.MonthName(),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err = repo.GetIncome(ctx, id)
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if got.Month != "April" || got.Amount.Cents != 50000 || got.Description != "bonus" {
		t.Fatalf("update was not a full replace: %+v", got)
	}

	if err := repo.DeleteIncome(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetIncome(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestNotFoundOnMissingID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.GetIncome(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get: expected ErrNotFound, got %v", err)
	}
	date, _ := core.ParseDate("2024-03-15")
	err := repo.UpdateExpense(ctx, core.Expense{
		ID: 999, UserID: 1, Amount: core.Money{Cents: 100},
		Description: "x", Date: date, Month: date.MonthName(),
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("update: expected ErrNotFound, got %v", err)
	}
	if err := repo.DeleteSavingsGoal(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("delete: expected ErrNotFound, got %v", err)
	}
}

func TestSavingsGoalRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	start, _ := core.ParseDate("2024-03-01")
	due, _ := core.ParseDate("2024-09-01")
	id, err := repo.CreateSavingsGoal(ctx, core.SavingsGoal{
		UserID:      1,
		Target:      core.Money{Cents: 600000},
		Description: "vacation",
		StartDate:   start,
		DueDate:     due,
		Month:       start.MonthName(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	goals, err := repo.ListSavingsGoals(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(goals) != 1 {
		t.Fatalf("expected 1 goal, got %d", len(goals))
	}
	g := goals[0]
	if g.ID != id || g.Month != "March" || g.DueDate.String() != "2024-09-01" {
		t.Fatalf("unexpected goal: %+v", g)
	}
}

func TestListScopedByUser(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	date, _ := core.ParseDate("2024-03-15")
	if _, err := repo.CreateExpense(ctx, core.Expense{
		UserID: 1, Amount: core.Money{Cents: 40000},
		Description: "rent", Date: date, Month: date.MonthName(),
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	mine, err := repo.ListExpenses(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(mine) != 1 {
		t.Fatalf("expected 1 expense for user 1, got %d", len(mine))
	}

	others, err := repo.ListExpenses(ctx, 2)
	if err != nil {
		t.Fatalf("list other user: %v", err)
	}
	if len(others) != 0 {
		t.Fatalf("expected no expenses for user 2, got %d", len(others))
	}
}

func TestReset(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "tally.db")
	repo, err := NewSQLiteRepository(dbPath)
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	ctx := context.Background()

	date, _ := core.ParseDate("2024-03-15")
	if _, err := repo.CreateIncome(ctx, core.Income{
		UserID: 1, Amount: core.Money{Cents: 100},
		Description: "x", Date: date, Month: date.MonthName(),
	}); err != nil {
		t.Fatalf("create: %v", err)
	}
	repo.Close()

	if err := Reset(dbPath); err != nil {
		t.Fatalf("reset: %v", err)
	}

	repo, err = NewSQLiteRepository(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer repo.Close()

	incomes, err := repo.ListIncomes(ctx, 1)
	if err != nil {
		t.Fatalf("list after reset: %v", err)
	}
	if len(incomes) != 0 {
		t.Fatalf("expected empty table after reset, got %d rows", len(incomes))
	}
}
