package http

import (
	"errors"
	"net/http"

	"tally/internal/core"
	"tally/internal/storage"
)

func (s *Server) handleAddExpenseForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "entry_form.html", entryFormData{
		Flash:  s.popFlash(w, r),
		Title:  "Add Expense",
		Action: "/add_expense",
		Submit: "Add Expense",
	})
}

func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.parseEntry(w, r, "/add_expense")
	if !ok {
		return
	}
	if _, err := s.ledger.AddExpense(r.Context(), core.Expense(rec)); err != nil {
		s.serverError(w, r, "Failed to add expense", err)
		return
	}
	s.setFlash(w, flashSuccess, "Expense added.")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Server) handleUpdateExpenseForm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.renderNotFound(w, r, "expense")
		return
	}
	rec, err := s.ledger.GetExpense(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		s.renderNotFound(w, r, "expense")
		return
	}
	if err != nil {
		s.serverError(w, r, "Failed to load expense", err)
		return
	}
	s.render(w, r, http.StatusOK, "entry_form.html", entryFormData{
		Flash:       s.popFlash(w, r),
		Title:       "Update Expense",
		Action:      "/update_expense/" + r.PathValue("id"),
		Amount:      rec.Amount.String(),
		Description: rec.Description,
		Date:        rec.Date.String(),
		Submit:      "Save Changes",
	})
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.renderNotFound(w, r, "expense")
		return
	}
	rec, ok := s.parseEntry(w, r, "/update_expense/"+r.PathValue("id"))
	if !ok {
		return
	}
	ex := core.Expense(rec)
	ex.ID = id
	if err := s.ledger.UpdateExpense(r.Context(), ex); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.renderNotFound(w, r, "expense")
			return
		}
		s.serverError(w, r, "Failed to update expense", err)
		return
	}
	s.setFlash(w, flashSuccess, "Expense updated.")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Server) handleDeleteExpenseConfirm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.renderNotFound(w, r, "expense")
		return
	}
	rec, err := s.ledger.GetExpense(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		s.renderNotFound(w, r, "expense")
		return
	}
	if err != nil {
		s.serverError(w, r, "Failed to load expense", err)
		return
	}
	s.render(w, r, http.StatusOK, "confirm_delete.html", confirmDeleteData{
		Title:       "Delete Expense",
		Description: rec.Description,
		Amount:      formatAmount(rec.Amount),
		Date:        rec.Date.String(),
		Action:      "/delete_expense/" + r.PathValue("id"),
		CancelPath:  "/dashboard",
	})
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.renderNotFound(w, r, "expense")
		return
	}
	if err := s.ledger.DeleteExpense(r.Context(), id, s.userID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.renderNotFound(w, r, "expense")
			return
		}
		s.serverError(w, r, "Failed to delete expense", err)
		return
	}
	s.setFlash(w, flashSuccess, "Expense deleted.")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}
