package core

import (
	"errors"
	"strings"
	"time"
)

type (
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Income is a single income entry owned by a user.
	Income struct {
		ID          int64
		UserID      int64
		Amount      Money
		Description string
		Date        Date
		Month       string // English month name derived from Date
	}

	// Expense has the same shape as Income but is subtracted from the balance.
	Expense struct {
		ID          int64
		UserID      int64
		Amount      Money
		Description string
		Date        Date
		Month       string
	}

	// SavingsGoal is a target amount to be saved by a due date.
	SavingsGoal struct {
		ID          int64
		UserID      int64
		Target      Money
		Description string
		StartDate   Date
		DueDate     Date
		Month       string // English month name derived from StartDate
	}
)

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
	ErrInvalidUser      = errors.New("invalid user")
)

const dateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD form value into a Date at UTC midnight.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// String renders the date back in the YYYY-MM-DD form format.
func (d Date) String() string {
	return d.Format(dateLayout)
}

// MonthName returns the English month name ("January" .. "December").
// Stored records cache this value in their Month field; it must be
// recomputed whenever the date changes.
func (d Date) MonthName() string {
	return d.Time.Month().String()
}

// Year returns the calendar year.
func (d Date) Year() int {
	return d.Time.Year()
}

// Month returns the calendar month as 1-12.
func (d Date) Month() int {
	return int(d.Time.Month())
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (in Income) Validate() error {
	if in.UserID <= 0 {
		return ErrInvalidUser
	}
	if err := in.Amount.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(in.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(in.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	return in.Date.Validate()
}

func (ex Expense) Validate() error {
	if ex.UserID <= 0 {
		return ErrInvalidUser
	}
	if err := ex.Amount.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(ex.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(ex.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	return ex.Date.Validate()
}

func (g SavingsGoal) Validate() error {
	if g.UserID <= 0 {
		return ErrInvalidUser
	}
	if err := g.Target.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(g.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(g.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if err := g.StartDate.Validate(); err != nil {
		return err
	}
	return g.DueDate.Validate()
}
