// Package services orchestrates writes across storage and the event bus.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"tally/internal/amqp"
	"tally/internal/core"
	"tally/internal/storage"
)

// LedgerService persists records and publishes a change event after each
// successful write. Event publishing is best-effort: the write already
// committed, so publish failures are logged and never fail the request.
// A nil events client disables publishing entirely.
type LedgerService struct {
	store  *storage.SQLiteRepository
	events *amqp.Client
}

func NewLedgerService(store *storage.SQLiteRepository, events *amqp.Client) *LedgerService {
	return &LedgerService{
		store:  store,
		events: events,
	}
}

// --- incomes ---

func (s *LedgerService) AddIncome(ctx context.Context, in core.Income) (int64, error) {
	id, err := s.store.CreateIncome(ctx, in)
	if err != nil {
		return 0, fmt.Errorf("save income: %w", err)
	}
	s.publish(ctx, amqp.EntityIncome, amqp.ActionCreate, id, in.UserID)
	return id, nil
}

func (s *LedgerService) GetIncome(ctx context.Context, id int64) (core.Income, error) {
	return s.store.GetIncome(ctx, id)
}

func (s *LedgerService) Incomes(ctx context.Context, userID int64) ([]core.Income, error) {
	return s.store.ListIncomes(ctx, userID)
}

func (s *LedgerService) UpdateIncome(ctx context.Context, in core.Income) error {
	if err := s.store.UpdateIncome(ctx, in); err != nil {
		return err
	}
	s.publish(ctx, amqp.EntityIncome, amqp.ActionUpdate, in.ID, in.UserID)
	return nil
}

func (s *LedgerService) DeleteIncome(ctx context.Context, id, userID int64) error {
	if err := s.store.DeleteIncome(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, amqp.EntityIncome, amqp.ActionDelete, id, userID)
	return nil
}

// --- expenses ---

func (s *LedgerService) AddExpense(ctx context.Context, ex core.Expense) (int64, error) {
	id, err := s.store.CreateExpense(ctx, ex)
	if err != nil {
		return 0, fmt.Errorf("save expense: %w", err)
	}
	s.publish(ctx, amqp.EntityExpense, amqp.ActionCreate, id, ex.UserID)
	return id, nil
}

func (s *LedgerService) GetExpense(ctx context.Context, id int64) (core.Expense, error) {
	return s.store.GetExpense(ctx, id)
}

func (s *LedgerService) Expenses(ctx context.Context, userID int64) ([]core.Expense, error) {
	return s.store.ListExpenses(ctx, userID)
}

func (s *LedgerService) UpdateExpense(ctx context.Context, ex core.Expense) error {
	if err := s.store.UpdateExpense(ctx, ex); err != nil {
		return err
	}
	s.publish(ctx, amqp.EntityExpense, amqp.ActionUpdate, ex.ID, ex.UserID)
	return nil
}

func (s *LedgerService) DeleteExpense(ctx context.Context, id, userID int64) error {
	if err := s.store.DeleteExpense(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, amqp.EntityExpense, amqp.ActionDelete, id, userID)
	return nil
}

// --- savings goals ---

func (s *LedgerService) AddSavingsGoal(ctx context.Context, g core.SavingsGoal) (int64, error) {
	id, err := s.store.CreateSavingsGoal(ctx, g)
	if err != nil {
		return 0, fmt.Errorf("save savings goal: %w", err)
	}
	s.publish(ctx, amqp.EntitySavingsGoal, amqp.ActionCreate, id, g.UserID)
	return id, nil
}

func (s *LedgerService) GetSavingsGoal(ctx context.Context, id int64) (core.SavingsGoal, error) {
	return s.store.GetSavingsGoal(ctx, id)
}

func (s *LedgerService) SavingsGoals(ctx context.Context, userID int64) ([]core.SavingsGoal, error) {
	return s.store.ListSavingsGoals(ctx, userID)
}

func (s *LedgerService) UpdateSavingsGoal(ctx context.Context, g core.SavingsGoal) error {
	if err := s.store.UpdateSavingsGoal(ctx, g); err != nil {
		return err
	}
	s.publish(ctx, amqp.EntitySavingsGoal, amqp.ActionUpdate, g.ID, g.UserID)
	return nil
}

func (s *LedgerService) DeleteSavingsGoal(ctx context.Context, id, userID int64) error {
	if err := s.store.DeleteSavingsGoal(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, amqp.EntitySavingsGoal, amqp.ActionDelete, id, userID)
	return nil
}

func (s *LedgerService) publish(ctx context.Context, entity, action string, recordID, userID int64) {
	if s.events == nil {
		return
	}
	ev := amqp.NewRecordEvent(entity, action, recordID, userID)
	if err := s.events.PublishRecordEvent(ctx, ev); err != nil {
		slog.ErrorContext(ctx, "Failed to publish record event",
			"error", err,
			"entity", entity,
			"action", action,
			"record_id", recordID)
	}
}

// Close closes both storage and AMQP connections.
func (s *LedgerService) Close() error {
	var errs []error

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}
	if s.events != nil {
		if err := s.events.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close ledger service: %v", errs)
	}
	return nil
}
