package http

import (
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"tally/internal/core"
)

// entryRow is one income or expense line on the dashboard.
type entryRow struct {
	ID          int64
	Date        string
	Month       string
	Description string
	Amount      string
	UpdatePath  string
	DeletePath  string
}

// goalRow is one savings goal line with its recommended contribution.
type goalRow struct {
	ID          int64
	Description string
	Target      string
	Start       string
	Due         string
	Recommended string
	UpdatePath  string
	DeletePath  string
}

type dashboardData struct {
	Flash        *Flash
	Incomes      []entryRow
	Expenses     []entryRow
	Goals        []goalRow
	TotalIncome  string
	TotalExpense string
	Balance      string
	Advice       string
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		incomes  []core.Income
		expenses []core.Expense
		goals    []core.SavingsGoal
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		incomes, err = s.ledger.Incomes(gctx, s.userID)
		return err
	})
	g.Go(func() (err error) {
		expenses, err = s.ledger.Expenses(gctx, s.userID)
		return err
	})
	g.Go(func() (err error) {
		goals, err = s.ledger.SavingsGoals(gctx, s.userID)
		return err
	})
	if err := g.Wait(); err != nil {
		s.serverError(w, r, "Failed to load dashboard", err)
		return
	}

	d := core.BuildDashboard(time.Now(), incomes, expenses, goals)

	data := dashboardData{
		Flash:        s.popFlash(w, r),
		TotalIncome:  formatAmount(d.TotalIncome),
		TotalExpense: formatAmount(d.TotalExpense),
		Balance:      formatAmount(d.Balance),
		Advice:       d.Advice,
	}
	for _, in := range d.Incomes {
		data.Incomes = append(data.Incomes, newEntryRow(in.ID, in.Date, in.Month, in.Description, in.Amount, "income"))
	}
	for _, ex := range d.Expenses {
		data.Expenses = append(data.Expenses, newEntryRow(ex.ID, ex.Date, ex.Month, ex.Description, ex.Amount, "expense"))
	}
	for _, gp := range d.Goals {
		data.Goals = append(data.Goals, goalRow{
			ID:          gp.Goal.ID,
			Description: gp.Goal.Description,
			Target:      formatAmount(gp.Goal.Target),
			Start:       gp.Goal.StartDate.String(),
			Due:         gp.Goal.DueDate.String(),
			Recommended: formatAmount(gp.Recommended),
			UpdatePath:  "/update_savings_goal/" + formatID(gp.Goal.ID),
			DeletePath:  "/delete_savings_goal/" + formatID(gp.Goal.ID),
		})
	}

	s.render(w, r, http.StatusOK, "dashboard.html", data)
}

func newEntryRow(id int64, date core.Date, month, description string, amount core.Money, kind string) entryRow {
	return entryRow{
		ID:          id,
		Date:        date.String(),
		Month:       month,
		Description: description,
		Amount:      formatAmount(amount),
		UpdatePath:  "/update_" + kind + "/" + formatID(id),
		DeletePath:  "/delete_" + kind + "/" + formatID(id),
	}
}
