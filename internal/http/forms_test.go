package http

import (
	"errors"
	"net/url"
	"testing"

	"tally/internal/core"
)

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trims whitespace", "  salary  ", "salary"},
		{"strips control characters", "sal\x00ary\x07", "salary"},
		{"keeps tabs and newlines", "a\tb\nc", "a\tb\nc"},
		{"empty", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeInput(tt.in); got != tt.want {
				t.Errorf("sanitizeInput(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseEntryForm(t *testing.T) {
	form := url.Values{
		"amount":      {"1000"},
		"description": {" salary "},
		"date":        {"2024-03-15"},
	}
	rec, err := parseEntryForm(form, 1)
	if err != nil {
		t.Fatalf("parseEntryForm: %v", err)
	}
	if rec.Amount.Cents != 100000 {
		t.Errorf("Amount = %d cents, want 100000", rec.Amount.Cents)
	}
	if rec.Description != "salary" {
		t.Errorf("Description = %q, want trimmed", rec.Description)
	}
	if rec.Month != "March" {
		t.Errorf("Month = %q, want March", rec.Month)
	}
	if rec.UserID != 1 {
		t.Errorf("UserID = %d, want 1", rec.UserID)
	}
}

func TestParseEntryFormMissingFields(t *testing.T) {
	tests := []struct {
		name  string
		form  url.Values
		field string
	}{
		{"no amount", url.Values{"description": {"x"}, "date": {"2024-03-15"}}, "amount"},
		{"no description", url.Values{"amount": {"10"}, "date": {"2024-03-15"}}, "description"},
		{"no date", url.Values{"amount": {"10"}, "description": {"x"}}, "date"},
		{"blank amount", url.Values{"amount": {"  "}, "description": {"x"}, "date": {"2024-03-15"}}, "amount"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseEntryForm(tt.form, 1)
			var missing *MissingFieldError
			if !errors.As(err, &missing) {
				t.Fatalf("expected MissingFieldError, got %v", err)
			}
			if missing.Field != tt.field {
				t.Errorf("Field = %q, want %q", missing.Field, tt.field)
			}
		})
	}
}

func TestParseEntryFormInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		form url.Values
		want error
	}{
		{
			"negative amount",
			url.Values{"amount": {"-5"}, "description": {"x"}, "date": {"2024-03-15"}},
			core.ErrInvalidAmount,
		},
		{
			"garbage amount",
			url.Values{"amount": {"ten"}, "description": {"x"}, "date": {"2024-03-15"}},
			core.ErrInvalidAmount,
		},
		{
			"bad date",
			url.Values{"amount": {"10"}, "description": {"x"}, "date": {"15/03/2024"}},
			core.ErrInvalidDate,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseEntryForm(tt.form, 1)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestParseGoalForm(t *testing.T) {
	form := url.Values{
		"target_amount": {"6000"},
		"description":   {"new car"},
		"start_date":    {"2024-03-15"},
		"due_date":      {"2024-09-15"},
	}
	g, err := parseGoalForm(form, 1)
	if err != nil {
		t.Fatalf("parseGoalForm: %v", err)
	}
	if g.Target.Cents != 600000 {
		t.Errorf("Target = %d cents, want 600000", g.Target.Cents)
	}
	if g.Month != "March" {
		t.Errorf("Month = %q, want start date's month", g.Month)
	}
}

func TestFormErrorMessage(t *testing.T) {
	if got := formErrorMessage(&MissingFieldError{Field: "amount"}); got != "Missing form field: amount" {
		t.Errorf("missing field message = %q", got)
	}
	if got := formErrorMessage(core.ErrInvalidAmount); got == "" {
		t.Errorf("expected message for invalid amount")
	}
}
