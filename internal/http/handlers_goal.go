package http

import (
	"errors"
	"net/http"

	"tally/internal/core"
	"tally/internal/storage"
)

// goalFormData backs goal_form.html.
type goalFormData struct {
	Flash       *Flash
	Title       string
	Action      string
	Target      string
	Description string
	StartDate   string
	DueDate     string
	Submit      string
}

// parseGoal is the savings goal counterpart of parseEntry.
func (s *Server) parseGoal(w http.ResponseWriter, r *http.Request, backPath string) (core.SavingsGoal, bool) {
	if err := r.ParseForm(); err != nil {
		s.setFlash(w, flashDanger, "Invalid form submission.")
		http.Redirect(w, r, backPath, http.StatusSeeOther)
		return core.SavingsGoal{}, false
	}
	g, err := parseGoalForm(r.Form, s.userID)
	if err == nil {
		err = g.Validate()
	}
	if err != nil {
		s.setFlash(w, flashDanger, formErrorMessage(err))
		http.Redirect(w, r, backPath, http.StatusSeeOther)
		return core.SavingsGoal{}, false
	}
	return g, true
}

func (s *Server) handleAddGoalForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "goal_form.html", goalFormData{
		Flash:  s.popFlash(w, r),
		Title:  "Add Savings Goal",
		Action: "/add_savings_goal",
		Submit: "Add Goal",
	})
}

func (s *Server) handleAddGoal(w http.ResponseWriter, r *http.Request) {
	g, ok := s.parseGoal(w, r, "/add_savings_goal")
	if !ok {
		return
	}
	if _, err := s.ledger.AddSavingsGoal(r.Context(), g); err != nil {
		s.serverError(w, r, "Failed to add savings goal", err)
		return
	}
	s.setFlash(w, flashSuccess, "Savings goal added.")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Server) handleUpdateGoalForm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.renderNotFound(w, r, "savings goal")
		return
	}
	g, err := s.ledger.GetSavingsGoal(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		s.renderNotFound(w, r, "savings goal")
		return
	}
	if err != nil {
		s.serverError(w, r, "Failed to load savings goal", err)
		return
	}
	s.render(w, r, http.StatusOK, "goal_form.html", goalFormData{
		Flash:       s.popFlash(w, r),
		Title:       "Update Savings Goal",
		Action:      "/update_savings_goal/" + r.PathValue("id"),
		Target:      g.Target.String(),
		Description: g.Description,
		StartDate:   g.StartDate.String(),
		DueDate:     g.DueDate.String(),
		Submit:      "Save Changes",
	})
}

func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.renderNotFound(w, r, "savings goal")
		return
	}
	g, ok := s.parseGoal(w, r, "/update_savings_goal/"+r.PathValue("id"))
	if !ok {
		return
	}
	g.ID = id
	if err := s.ledger.UpdateSavingsGoal(r.Context(), g); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.renderNotFound(w, r, "savings goal")
			return
		}
		s.serverError(w, r, "Failed to update savings goal", err)
		return
	}
	s.setFlash(w, flashSuccess, "Savings goal updated.")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Server) handleDeleteGoalConfirm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.renderNotFound(w, r, "savings goal")
		return
	}
	g, err := s.ledger.GetSavingsGoal(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		s.renderNotFound(w, r, "savings goal")
		return
	}
	if err != nil {
		s.serverError(w, r, "Failed to load savings goal", err)
		return
	}
	s.render(w, r, http.StatusOK, "confirm_delete.html", confirmDeleteData{
		Title:       "Delete Savings Goal",
		Description: g.Description,
		Amount:      formatAmount(g.Target),
		Date:        g.DueDate.String(),
		Action:      "/delete_savings_goal/" + r.PathValue("id"),
		CancelPath:  "/dashboard",
	})
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.renderNotFound(w, r, "savings goal")
		return
	}
	if err := s.ledger.DeleteSavingsGoal(r.Context(), id, s.userID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.renderNotFound(w, r, "savings goal")
			return
		}
		s.serverError(w, r, "Failed to delete savings goal", err)
		return
	}
	s.setFlash(w, flashSuccess, "Savings goal deleted.")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}
