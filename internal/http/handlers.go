package http

import (
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"tally/internal/core"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

type loginData struct {
	Flash *Flash
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "login.html", loginData{Flash: s.popFlash(w, r)})
}

// handleLoginSubmit is a placeholder until real authentication lands.
// Every visitor operates on the default ledger owner.
func (s *Server) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.setFlash(w, flashDanger, "Invalid form submission.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	name := sanitizeInput(r.Form.Get("username"))
	if name == "" {
		s.setFlash(w, flashDanger, "Missing form field: username")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	s.setFlash(w, flashSuccess, "Welcome back, "+name+"!")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// monthRow is one line of the per-month breakdown on the analysis page.
type monthRow struct {
	Month   string
	Income  string
	Expense string
	Net     string
}

type analysisData struct {
	Flash  *Flash
	Month  string // selected filter, empty for all
	Months []string
	Rows   []monthRow
}

func (s *Server) handleAnalysisPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		incomes  []core.Income
		expenses []core.Expense
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
	if err := g.Wait(); err != nil {
		s.logger.ErrorContext(ctx, "Failed to load analysis data", "error", err)
		http.Error(w, "failed to load analysis", http.StatusInternalServerError)
		return
	}

	selected := sanitizeInput(r.URL.Query().Get("month"))
	data := analysisData{
		Flash: s.popFlash(w, r),
		Month: selected,
	}

	type totals struct{ income, expense int64 }
	byMonth := make(map[string]*totals)
	for _, in := range incomes {
		t := byMonth[in.Month]
		if t == nil {
			t = &totals{}
			byMonth[in.Month] = t
		}
		t.income += in.Amount.Cents
	}
	for _, ex := range expenses {
		t := byMonth[ex.Month]
		if t == nil {
			t = &totals{}
			byMonth[ex.Month] = t
		}
		t.expense += ex.Amount.Cents
	}

	// Calendar order keeps the table stable regardless of insertion order.
	for m := time.January; m <= time.December; m++ {
		name := m.String()
		t, ok := byMonth[name]
		if !ok {
			continue
		}
		data.Months = append(data.Months, name)
		if selected != "" && selected != name {
			continue
		}
		data.Rows = append(data.Rows, monthRow{
			Month:   name,
			Income:  formatAmount(core.Money{Cents: t.income}),
			Expense: formatAmount(core.Money{Cents: t.expense}),
			Net:     formatAmount(core.Money{Cents: t.income - t.expense}),
		})
	}

	s.render(w, r, http.StatusOK, "analysis.html", data)
}

func (s *Server) handleAnalysisSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/analysis", http.StatusSeeOther)
		return
	}
	month := sanitizeInput(r.Form.Get("month"))
	target := "/analysis"
	if month != "" {
		target += "?month=" + month
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
