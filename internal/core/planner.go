package core

import "time"

// MonthsUntil counts whole calendar months from now to the due date,
// ignoring the day of month: (dueYear-nowYear)*12 + dueMonth-nowMonth.
// The result is clamped to a minimum of 1. The clamp covers both a due
// date in the current month (which would otherwise divide by zero) and a
// due date in the past: an overdue goal amortizes its remaining gap over
// a single month instead of flipping the sign of the division.
func MonthsUntil(now time.Time, due Date) int {
	months := (due.Year()-now.Year())*12 + due.Month() - int(now.Month())
	if months < 1 {
		months = 1
	}
	return months
}

// RecommendMonthlySavings computes the suggested monthly contribution for
// a goal: the gap between the target and the currently available savings
// (total income minus total expense), spread over the months remaining
// until the due date. The result is rounded half-up to the cent and is
// never negative.
func RecommendMonthlySavings(target Money, due Date, now time.Time, totalIncome, totalExpense Money) Money {
	months := int64(MonthsUntil(now, due))
	available := totalIncome.Cents - totalExpense.Cents
	gap := target.Cents - available
	if gap <= 0 {
		return Money{}
	}
	return Money{Cents: (gap + months/2) / months}
}
