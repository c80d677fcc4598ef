package http

import (
	"errors"
	"net/http"

	"tally/internal/core"
	"tally/internal/log"
	"tally/internal/storage"
)

// entryFormData backs entry_form.html, shared by incomes and expenses.
type entryFormData struct {
	Flash       *Flash
	Title       string
	Action      string
	Amount      string
	Description string
	Date        string
	Submit      string
}

// confirmDeleteData backs confirm_delete.html.
type confirmDeleteData struct {
	Title       string
	Description string
	Amount      string
	Date        string
	Action      string
	CancelPath  string
}

// parseEntry parses and validates the shared income/expense form. On
// failure it flashes the problem and redirects back to the form, and the
// caller must return immediately.
func (s *Server) parseEntry(w http.ResponseWriter, r *http.Request, backPath string) (core.Income, bool) {
	if err := r.ParseForm(); err != nil {
		s.setFlash(w, flashDanger, "Invalid form submission.")
		http.Redirect(w, r, backPath, http.StatusSeeOther)
		return core.Income{}, false
	}
	rec, err := parseEntryForm(r.Form, s.userID)
	if err == nil {
		err = rec.Validate()
	}
	if err != nil {
		s.setFlash(w, flashDanger, formErrorMessage(err))
		http.Redirect(w, r, backPath, http.StatusSeeOther)
		return core.Income{}, false
	}
	return rec, true
}

// formErrorMessage maps parse and validation failures to user-facing text.
func formErrorMessage(err error) string {
	var missing *MissingFieldError
	switch {
	case errors.As(err, &missing):
		return "Missing form field: " + missing.Field
	case errors.Is(err, core.ErrInvalidAmount):
		return "Please enter a positive amount, e.g. 12.50."
	case errors.Is(err, core.ErrInvalidDate):
		return "Please enter dates as YYYY-MM-DD."
	case errors.Is(err, core.ErrEmptyDescription):
		return "Please enter a description of 200 characters or fewer."
	default:
		return "Please check the submitted values."
	}
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	s.logger.ErrorContext(r.Context(), msg, log.FieldError, err)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func (s *Server) handleAddIncomeForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "entry_form.html", entryFormData{
		Flash:  s.popFlash(w, r),
		Title:  "Add Income",
		Action: "/add_income",
		Submit: "Add Income",
	})
}

func (s *Server) handleAddIncome(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.parseEntry(w, r, "/add_income")
	if !ok {
		return
	}
	if _, err := s.ledger.AddIncome(r.Context(), rec); err != nil {
		s.serverError(w, r, "Failed to add income", err)
		return
	}
	s.setFlash(w, flashSuccess, "Income added.")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Server) handleUpdateIncomeForm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.renderNotFound(w, r, "income")
		return
	}
	rec, err := s.ledger.GetIncome(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		s.renderNotFound(w, r, "income")
		return
	}
	if err != nil {
		s.serverError(w, r, "Failed to load income", err)
		return
	}
	s.render(w, r, http.StatusOK, "entry_form.html", entryFormData{
		Flash:       s.popFlash(w, r),
		Title:       "Update Income",
		Action:      "/update_income/" + r.PathValue("id"),
		Amount:      rec.Amount.String(),
		Description: rec.Description,
		Date:        rec.Date.String(),
		Submit:      "Save Changes",
	})
}

func (s *Server) handleUpdateIncome(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.renderNotFound(w, r, "income")
		return
	}
	rec, ok := s.parseEntry(w, r, "/update_income/"+r.PathValue("id"))
	if !ok {
		return
	}
	rec.ID = id
	if err := s.ledger.UpdateIncome(r.Context(), rec); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.renderNotFound(w, r, "income")
			return
		}
		s.serverError(w, r, "Failed to update income", err)
		return
	}
	s.setFlash(w, flashSuccess, "Income updated.")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Server) handleDeleteIncomeConfirm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.renderNotFound(w, r, "income")
		return
	}
	rec, err := s.ledger.GetIncome(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		s.renderNotFound(w, r, "income")
		return
	}
	if err != nil {
		s.serverError(w, r, "Failed to load income", err)
		return
	}
	s.render(w, r, http.StatusOK, "confirm_delete.html", confirmDeleteData{
		Title:       "Delete Income",
		Description: rec.Description,
		Amount:      formatAmount(rec.Amount),
		Date:        rec.Date.String(),
		Action:      "/delete_income/" + r.PathValue("id"),
		CancelPath:  "/dashboard",
	})
}

func (s *Server) handleDeleteIncome(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.renderNotFound(w, r, "income")
		return
	}
	if err := s.ledger.DeleteIncome(r.Context(), id, s.userID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.renderNotFound(w, r, "income")
			return
		}
		s.serverError(w, r, "Failed to delete income", err)
		return
	}
	s.setFlash(w, flashSuccess, "Income deleted.")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}
