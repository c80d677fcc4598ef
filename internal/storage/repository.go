package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"tally/internal/core"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a record id does not exist.
var ErrNotFound = errors.New("record not found")

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// --- incomes ---

func (r *SQLiteRepository) CreateIncome(ctx context.Context, in core.Income) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO incomes (user_id, amount_cents, description, date, month) VALUES (?, ?, ?, ?, ?)`,
		in.UserID, in.Amount.Cents, in.Description, in.Date.String(), in.Month)
	if err != nil {
		return 0, fmt.Errorf("insert income: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("income insert id: %w", err)
	}

	slog.InfoContext(ctx, "Income saved",
		"id", id,
		"user_id", in.UserID,
		"amount_cents", in.Amount.Cents,
		"month", in.Month)
	return id, nil
}

func (r *SQLiteRepository) GetIncome(ctx context.Context, id int64) (core.Income, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, amount_cents, description, date, month FROM incomes WHERE id = ?`, id)
	return scanIncome(row)
}

func (r *SQLiteRepository) ListIncomes(ctx context.Context, userID int64) ([]core.Income, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, amount_cents, description, date, month FROM incomes WHERE user_id = ? ORDER BY date, id`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list incomes: %w", err)
	}
	defer rows.Close()

	var incomes []core.Income
	for rows.Next() {
		in, err := scanIncome(rows)
		if err != nil {
			return nil, err
		}
		incomes = append(incomes, in)
	}
	return incomes, rows.Err()
}

// UpdateIncome overwrites every field of the record (full replace, not merge).
func (r *SQLiteRepository) UpdateIncome(ctx context.Context, in core.Income) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE incomes SET amount_cents = ?, description = ?, date = ?, month = ? WHERE id = ?`,
		in.Amount.Cents, in.Description, in.Date.String(), in.Month, in.ID)
	if err != nil {
		return fmt.Errorf("update income: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) DeleteIncome(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM incomes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete income: %w", err)
	}
	return requireRow(res)
}

// --- expenses ---

func (r *SQLiteRepository) CreateExpense(ctx context.Context, ex core.Expense) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (user_id, amount_cents, description, date, month) VALUES (?, ?, ?, ?, ?)`,
		ex.UserID, ex.Amount.Cents, ex.Description, ex.Date.String(), ex.Month)
	if err != nil {
		return 0, fmt.Errorf("insert expense: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("expense insert id: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"id", id,
		"user_id", ex.UserID,
		"amount_cents", ex.Amount.Cents,
		"month", ex.Month)
	return id, nil
}

func (r *SQLiteRepository) GetExpense(ctx context.Context, id int64) (core.Expense, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, amount_cents, description, date, month FROM expenses WHERE id = ?`, id)
	in, err := scanIncome(row)
	if err != nil {
		return core.Expense{}, err
	}
	return core.Expense(in), nil
}

func (r *SQLiteRepository) ListExpenses(ctx context.Context, userID int64) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, amount_cents, description, date, month FROM expenses WHERE user_id = ? ORDER BY date, id`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []core.Expense
	for rows.Next() {
		in, err := scanIncome(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, core.Expense(in))
	}
	return expenses, rows.Err()
}

func (r *SQLiteRepository) UpdateExpense(ctx context.Context, ex core.Expense) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE expenses SET amount_cents = ?, description = ?, date = ?, month = ? WHERE id = ?`,
		ex.Amount.Cents, ex.Description, ex.Date.String(), ex.Month, ex.ID)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) DeleteExpense(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return requireRow(res)
}

// --- savings goals ---

func (r *SQLiteRepository) CreateSavingsGoal(ctx context.Context, g core.SavingsGoal) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO savings_goals (user_id, target_cents, description, start_date, due_date, month) VALUES (?, ?, ?, ?, ?, ?)`,
		g.UserID, g.Target.Cents, g.Description, g.StartDate.String(), g.DueDate.String(), g.Month)
	if err != nil {
		return 0, fmt.Errorf("insert savings goal: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("savings goal insert id: %w", err)
	}

	slog.InfoContext(ctx, "Savings goal saved",
		"id", id,
		"user_id", g.UserID,
		"target_cents", g.Target.Cents,
		"due_date", g.DueDate.String())
	return id, nil
}

func (r *SQLiteRepository) GetSavingsGoal(ctx context.Context, id int64) (core.SavingsGoal, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, target_cents, description, start_date, due_date, month FROM savings_goals WHERE id = ?`, id)
	return scanGoal(row)
}

func (r *SQLiteRepository) ListSavingsGoals(ctx context.Context, userID int64) ([]core.SavingsGoal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, target_cents, description, start_date, due_date, month FROM savings_goals WHERE user_id = ? ORDER BY due_date, id`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list savings goals: %w", err)
	}
	defer rows.Close()

	var goals []core.SavingsGoal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (r *SQLiteRepository) UpdateSavingsGoal(ctx context.Context, g core.SavingsGoal) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE savings_goals SET target_cents = ?, description = ?, start_date = ?, due_date = ?, month = ? WHERE id = ?`,
		g.Target.Cents, g.Description, g.StartDate.String(), g.DueDate.String(), g.Month, g.ID)
	if err != nil {
		return fmt.Errorf("update savings goal: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) DeleteSavingsGoal(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM savings_goals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete savings goal: %w", err)
	}
	return requireRow(res)
}

// --- audit log ---

// AuditEntry is one row of the change history written by the worker.
type AuditEntry struct {
	Entity     string
	Action     string
	RecordID   int64
	UserID     int64
	OccurredAt time.Time
}

func (r *SQLiteRepository) InsertAuditEntry(ctx context.Context, e AuditEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_log (entity, action, record_id, user_id, occurred_at) VALUES (?, ?, ?, ?, ?)`,
		e.Entity, e.Action, e.RecordID, e.UserID, e.OccurredAt.UTC())
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// --- helpers ---

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIncome(row rowScanner) (core.Income, error) {
	var (
		in      core.Income
		dateStr string
	)
	err := row.Scan(&in.ID, &in.UserID, &in.Amount.Cents, &in.Description, &dateStr, &in.Month)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Income{}, ErrNotFound
	}
	if err != nil {
		return core.Income{}, fmt.Errorf("scan record: %w", err)
	}
	in.Date, err = core.ParseDate(dateStr)
	if err != nil {
		return core.Income{}, fmt.Errorf("parse stored date %q: %w", dateStr, err)
	}
	return in, nil
}

func scanGoal(row rowScanner) (core.SavingsGoal, error) {
	var (
		g        core.SavingsGoal
		startStr string
		dueStr   string
	)
	err := row.Scan(&g.ID, &g.UserID, &g.Target.Cents, &g.Description, &startStr, &dueStr, &g.Month)
	if errors.Is(err, sql.ErrNoRows) {
		return core.SavingsGoal{}, ErrNotFound
	}
	if err != nil {
		return core.SavingsGoal{}, fmt.Errorf("scan savings goal: %w", err)
	}
	if g.StartDate, err = core.ParseDate(startStr); err != nil {
		return core.SavingsGoal{}, fmt.Errorf("parse stored start date %q: %w", startStr, err)
	}
	if g.DueDate, err = core.ParseDate(dueStr); err != nil {
		return core.SavingsGoal{}, fmt.Errorf("parse stored due date %q: %w", dueStr, err)
	}
	return g, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
