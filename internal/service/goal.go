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

// ErrGoalNotFound is returned when a goal does not exist.
var ErrGoalNotFound = errors.New("goal not found")

// GoalService handles savings-goal resource logic. Creation is
// single-item rather than batched.
type GoalService struct {
	store   GoalStore
	metrics metrics.Recorder
}

// NewGoalService creates a new GoalService.
func NewGoalService(store GoalStore, recorder metrics.Recorder) *GoalService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &GoalService{
		store:   store,
		metrics: recorder,
	}
}

// CreateGoalInput defines input for creating a goal.
type CreateGoalInput struct {
	UserID      int64
	Category    string
	Amount      decimal.Decimal
	StartDate   model.Date
	EndDate     model.Date
	Description string
	Type        model.GoalType
}

// GoalPatch holds the mutable goal fields for a merge-update.
// Nil fields are left untouched. The owner is not patchable.
type GoalPatch struct {
	Category    *string
	Amount      *decimal.Decimal
	StartDate   *model.Date
	EndDate     *model.Date
	Description *string
	Type        *model.GoalType
}

// List returns every goal regardless of owner. Administrative.
func (s *GoalService) List(ctx context.Context) ([]*model.Goal, error) {
	goals, err := s.store.ListGoals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	return goals, nil
}

// ListByUser returns all goals owned by the given user.
func (s *GoalService) ListByUser(ctx context.Context, userID int64) ([]*model.Goal, error) {
	goals, err := s.store.ListGoalsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals by user: %w", err)
	}
	return goals, nil
}

// Create validates and inserts a single goal, returning it with its id
// populated by the store.
func (s *GoalService) Create(ctx context.Context, input CreateGoalInput) (*model.Goal, error) {
	if err := validateGoal(input.Category, input.Amount, input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	goal := &model.Goal{
		UserID:      input.UserID,
		Category:    input.Category,
		Amount:      input.Amount,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Description: input.Description,
		Type:        input.Type,
	}

	if err := s.store.CreateGoal(ctx, goal); err != nil {
		if errors.Is(err, repository.ErrOwnerMissing) {
			return nil, ErrOwnerMissing
		}
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	s.metrics.IncCreated(metrics.KindGoal)

	return goal, nil
}

// Update merge-updates the goal with the given id. Every mutable field,
// including the goal type, participates in the merge; id and owner
// never change. The merged date range is re-validated.
func (s *GoalService) Update(ctx context.Context, id int64, patch GoalPatch) (*model.Goal, error) {
	existing, err := s.store.GetGoalByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrGoalNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, fmt.Errorf("failed to load goal for update: %w", err)
	}

	override(&existing.Category, patch.Category)
	override(&existing.Amount, patch.Amount)
	override(&existing.StartDate, patch.StartDate)
	override(&existing.EndDate, patch.EndDate)
	override(&existing.Description, patch.Description)
	override(&existing.Type, patch.Type)

	if err := validateGoal(existing.Category, existing.Amount, existing.StartDate, existing.EndDate); err != nil {
		return nil, err
	}

	if err := s.store.UpdateGoal(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrGoalNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	s.metrics.IncUpdated(metrics.KindGoal)

	return existing, nil
}

// Delete removes the goal with the given id. Deleting an absent id is a
// silent no-op, not an error.
func (s *GoalService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteGoal(ctx, id); err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}

	s.metrics.IncDeleted(metrics.KindGoal)

	return nil
}

// validateGoal checks goal fields, including the date-range ordering.
func validateGoal(category string, amount decimal.Decimal, start, end model.Date) error {
	if category == "" {
		return ErrEmptyCategory
	}
	if amount.IsNegative() {
		return ErrNegativeAmount
	}
	if start.IsZero() || end.IsZero() {
		return ErrMissingDate
	}
	if end.Before(start.Time) {
		return ErrInvalidDateRange
	}
	return nil
}
