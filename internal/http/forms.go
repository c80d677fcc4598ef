// Form parsing helpers shared by the add and update handlers. Each entity
// is parsed as a whole; the first invalid field aborts the submission and
// nothing partial is persisted.
package http

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"tally/internal/core"
)

// MissingFieldError names the required form field that was absent or blank.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return "missing form field: " + e.Field
}

// sanitizeInput trims whitespace and removes control characters except
// tab, newline, carriage return.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

func requiredField(form url.Values, key string) (string, error) {
	v := sanitizeInput(form.Get(key))
	if v == "" {
		return "", &MissingFieldError{Field: key}
	}
	return v, nil
}

func parseAmountField(form url.Values, key string) (core.Money, error) {
	v, err := requiredField(form, key)
	if err != nil {
		return core.Money{}, err
	}
	return core.ParseAmount(v)
}

func parseDateField(form url.Values, key string) (core.Date, error) {
	v, err := requiredField(form, key)
	if err != nil {
		return core.Date{}, err
	}
	return core.ParseDate(v)
}

// parseEntryForm parses the shared income/expense form: amount,
// description, date. The derived month is recomputed from the parsed date.
func parseEntryForm(form url.Values, userID int64) (core.Income, error) {
	amount, err := parseAmountField(form, "amount")
	if err != nil {
		return core.Income{}, err
	}
	description, err := requiredField(form, "description")
	if err != nil {
		return core.Income{}, err
	}
	date, err := parseDateField(form, "date")
	if err != nil {
		return core.Income{}, err
	}

	return core.Income{
		UserID:      userID,
		Amount:      amount,
		Description: description,
		Date:        date,
		Month:       date.MonthName(),
	}, nil
}

// parseGoalForm parses the savings goal form: target_amount, description,
// start_date, due_date. The derived month comes from the start date.
func parseGoalForm(form url.Values, userID int64) (core.SavingsGoal, error) {
	target, err := parseAmountField(form, "target_amount")
	if err != nil {
		return core.SavingsGoal{}, err
	}
	description, err := requiredField(form, "description")
	if err != nil {
		return core.SavingsGoal{}, err
	}
	startDate, err := parseDateField(form, "start_date")
	if err != nil {
		return core.SavingsGoal{}, err
	}
	dueDate, err := parseDateField(form, "due_date")
	if err != nil {
		return core.SavingsGoal{}, err
	}

	return core.SavingsGoal{
		UserID:      userID,
		Target:      target,
		Description: description,
		StartDate:   startDate,
		DueDate:     dueDate,
		Month:       startDate.MonthName(),
	}, nil
}

// pathID extracts the {id} path segment as an int64.
func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}
