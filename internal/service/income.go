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

// ErrIncomeNotFound is returned when an income does not exist.
var ErrIncomeNotFound = errors.New("income not found")

// IncomeService handles income resource logic. The contract mirrors
// ExpenseService; the two stay separate because the entities are stored
// and exposed independently.
type IncomeService struct {
	store   IncomeStore
	metrics metrics.Recorder
}

// NewIncomeService creates a new IncomeService.
func NewIncomeService(store IncomeStore, recorder metrics.Recorder) *IncomeService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &IncomeService{
		store:   store,
		metrics: recorder,
	}
}

// CreateIncomeInput defines input for one income in a batch create.
type CreateIncomeInput struct {
	UserID      int64
	Category    string
	Amount      decimal.Decimal
	Date        model.Date
	Description string
}

// IncomePatch holds the mutable income fields for a merge-update.
// Nil fields are left untouched. The owner is not patchable.
type IncomePatch struct {
	Category    *string
	Amount      *decimal.Decimal
	Date        *model.Date
	Description *string
}

// List returns every income regardless of owner. Administrative.
func (s *IncomeService) List(ctx context.Context) ([]*model.Income, error) {
	incomes, err := s.store.ListIncomes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list incomes: %w", err)
	}
	return incomes, nil
}

// ListByUser returns all incomes owned by the given user.
func (s *IncomeService) ListByUser(ctx context.Context, userID int64) ([]*model.Income, error) {
	incomes, err := s.store.ListIncomesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list incomes by user: %w", err)
	}
	return incomes, nil
}

// CreateBatch validates and inserts a batch of incomes in one store
// call. The returned slice keeps submission order, ids populated.
func (s *IncomeService) CreateBatch(ctx context.Context, inputs []CreateIncomeInput) ([]*model.Income, error) {
	incomes := make([]*model.Income, 0, len(inputs))
	for _, input := range inputs {
		if err := validateRecord(input.Category, input.Amount, input.Date); err != nil {
			return nil, err
		}
		incomes = append(incomes, &model.Income{
			UserID:      input.UserID,
			Category:    input.Category,
			Amount:      input.Amount,
			Date:        input.Date,
			Description: input.Description,
		})
	}

	if err := s.store.CreateIncomes(ctx, incomes); err != nil {
		if errors.Is(err, repository.ErrOwnerMissing) {
			return nil, ErrOwnerMissing
		}
		return nil, fmt.Errorf("failed to create incomes: %w", err)
	}

	s.metrics.AddCreated(metrics.KindIncome, len(incomes))

	return incomes, nil
}

// Update merge-updates the income with the given id. Only the fields
// present in the patch are overwritten; id and owner never change.
func (s *IncomeService) Update(ctx context.Context, id int64, patch IncomePatch) (*model.Income, error) {
	existing, err := s.store.GetIncomeByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrIncomeNotFound) {
			return nil, ErrIncomeNotFound
		}
		return nil, fmt.Errorf("failed to load income for update: %w", err)
	}

	override(&existing.Category, patch.Category)
	override(&existing.Amount, patch.Amount)
	override(&existing.Date, patch.Date)
	override(&existing.Description, patch.Description)

	if err := validateRecord(existing.Category, existing.Amount, existing.Date); err != nil {
		return nil, err
	}

	if err := s.store.UpdateIncome(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrIncomeNotFound) {
			return nil, ErrIncomeNotFound
		}
		return nil, fmt.Errorf("failed to update income: %w", err)
	}

	s.metrics.IncUpdated(metrics.KindIncome)

	return existing, nil
}

// Delete removes the income with the given id. Deleting an absent id is
// a silent no-op, not an error.
func (s *IncomeService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteIncome(ctx, id); err != nil {
		return fmt.Errorf("failed to delete income: %w", err)
	}

	s.metrics.IncDeleted(metrics.KindIncome)

	return nil
}

// DeleteBatch removes every income whose id is in ids in one store
// call. Ids with no matching row are silently ignored.
func (s *IncomeService) DeleteBatch(ctx context.Context, ids []int64) error {
	if err := s.store.DeleteIncomes(ctx, ids); err != nil {
		return fmt.Errorf("failed to delete incomes: %w", err)
	}

	s.metrics.AddDeleted(metrics.KindIncome, len(ids))

	return nil
}
