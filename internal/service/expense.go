package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/findash/findash/internal/metrics"
	"github.com/findash/findash/internal/model"
	"github.com/findash/findash/internal/repository"
)

// ErrExpenseNotFound is returned when an expense does not exist.
var ErrExpenseNotFound = errors.New("expense not found")

// ExpenseService handles expense resource logic.
type ExpenseService struct {
	store   ExpenseStore
	metrics metrics.Recorder
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(store ExpenseStore, recorder metrics.Recorder) *ExpenseService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &ExpenseService{
		store:   store,
		metrics: recorder,
	}
}

// CreateExpenseInput defines input for one expense in a batch create.
type CreateExpenseInput struct {
	UserID      int64
	Category    string
	Amount      decimal.Decimal
	Date        model.Date
	Description string
}

// ExpensePatch holds the mutable expense fields for a merge-update.
// Nil fields are left untouched. The owner is not patchable.
type ExpensePatch struct {
	Category    *string
	Amount      *decimal.Decimal
	Date        *model.Date
	Description *string
}

// List returns every expense regardless of owner. Administrative.
func (s *ExpenseService) List(ctx context.Context) ([]*model.Expense, error) {
	expenses, err := s.store.ListExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}

// ListByUser returns all expenses owned by the given user.
func (s *ExpenseService) ListByUser(ctx context.Context, userID int64) ([]*model.Expense, error) {
	expenses, err := s.store.ListExpensesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses by user: %w", err)
	}
	return expenses, nil
}

// CreateBatch validates and inserts a batch of expenses in one store
// call. The returned slice keeps submission order, ids populated.
// A store-level batch failure propagates; no partial reconciliation.
func (s *ExpenseService) CreateBatch(ctx context.Context, inputs []CreateExpenseInput) ([]*model.Expense, error) {
	expenses := make([]*model.Expense, 0, len(inputs))
	for _, input := range inputs {
		if err := validateRecord(input.Category, input.Amount, input.Date); err != nil {
			return nil, err
		}
		expenses = append(expenses, &model.Expense{
			UserID:      input.UserID,
			Category:    input.Category,
			Amount:      input.Amount,
			Date:        input.Date,
			Description: input.Description,
		})
	}

	if err := s.store.CreateExpenses(ctx, expenses); err != nil {
		if errors.Is(err, repository.ErrOwnerMissing) {
			return nil, ErrOwnerMissing
		}
		return nil, fmt.Errorf("failed to create expenses: %w", err)
	}

	s.metrics.AddCreated(metrics.KindExpense, len(expenses))

	return expenses, nil
}

// Update merge-updates the expense with the given id. Only the fields
// present in the patch are overwritten; id and owner never change.
// Absent ids are a normal not-found outcome.
func (s *ExpenseService) Update(ctx context.Context, id int64, patch ExpensePatch) (*model.Expense, error) {
	existing, err := s.store.GetExpenseByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrExpenseNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, fmt.Errorf("failed to load expense for update: %w", err)
	}

	override(&existing.Category, patch.Category)
	override(&existing.Amount, patch.Amount)
	override(&existing.Date, patch.Date)
	override(&existing.Description, patch.Description)

	if err := validateRecord(existing.Category, existing.Amount, existing.Date); err != nil {
		return nil, err
	}

	if err := s.store.UpdateExpense(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrExpenseNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	s.metrics.IncUpdated(metrics.KindExpense)

	return existing, nil
}

// Delete removes the expense with the given id. Deleting an absent id
// is a silent no-op, not an error.
func (s *ExpenseService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteExpense(ctx, id); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	s.metrics.IncDeleted(metrics.KindExpense)

	return nil
}

// DeleteBatch removes every expense whose id is in ids in one store
// call. Ids with no matching row are silently ignored.
func (s *ExpenseService) DeleteBatch(ctx context.Context, ids []int64) error {
	if err := s.store.DeleteExpenses(ctx, ids); err != nil {
		return fmt.Errorf("failed to delete expenses: %w", err)
	}

	s.metrics.AddDeleted(metrics.KindExpense, len(ids))

	return nil
}

// validateRecord checks the fields shared by expenses and incomes.
func validateRecord(category string, amount decimal.Decimal, date model.Date) error {
	if category == "" {
		return ErrEmptyCategory
	}
	if amount.IsNegative() {
		return ErrNegativeAmount
	}
	if date.IsZero() {
		return ErrMissingDate
	}
	return nil
}
