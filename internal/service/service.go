// Package service provides business logic for the application.
//
// Each entity kind has its own resource service orchestrating calls to a
// store gateway. Services are stateless; all consistency is delegated to
// the database. Concurrent updates to the same row race and the last
// write wins; there is no version token.
package service

import (
	"context"
	"errors"

	"github.com/findash/findash/internal/model"
)

// Validation errors shared across resource services.
var (
	ErrNegativeAmount   = errors.New("amount must not be negative")
	ErrEmptyCategory    = errors.New("category must not be empty")
	ErrMissingDate      = errors.New("date is required")
	ErrInvalidDateRange = errors.New("end date must not precede start date")
	ErrOwnerMissing     = errors.New("owner user does not exist")
)

// UserStore is the persistence gateway for users.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
	UpdateUser(ctx context.Context, user *model.User) error
	DeleteUser(ctx context.Context, id int64) error
}

// ExpenseStore is the persistence gateway for expenses.
type ExpenseStore interface {
	CreateExpenses(ctx context.Context, expenses []*model.Expense) error
	GetExpenseByID(ctx context.Context, id int64) (*model.Expense, error)
	ListExpenses(ctx context.Context) ([]*model.Expense, error)
	ListExpensesByUser(ctx context.Context, userID int64) ([]*model.Expense, error)
	UpdateExpense(ctx context.Context, expense *model.Expense) error
	DeleteExpense(ctx context.Context, id int64) error
	DeleteExpenses(ctx context.Context, ids []int64) error
}

// IncomeStore is the persistence gateway for incomes.
type IncomeStore interface {
	CreateIncomes(ctx context.Context, incomes []*model.Income) error
	GetIncomeByID(ctx context.Context, id int64) (*model.Income, error)
	ListIncomes(ctx context.Context) ([]*model.Income, error)
	ListIncomesByUser(ctx context.Context, userID int64) ([]*model.Income, error)
	UpdateIncome(ctx context.Context, income *model.Income) error
	DeleteIncome(ctx context.Context, id int64) error
	DeleteIncomes(ctx context.Context, ids []int64) error
}

// GoalStore is the persistence gateway for goals.
type GoalStore interface {
	CreateGoal(ctx context.Context, goal *model.Goal) error
	GetGoalByID(ctx context.Context, id int64) (*model.Goal, error)
	ListGoals(ctx context.Context) ([]*model.Goal, error)
	ListGoalsByUser(ctx context.Context, userID int64) ([]*model.Goal, error)
	UpdateGoal(ctx context.Context, goal *model.Goal) error
	DeleteGoal(ctx context.Context, id int64) error
}

// override applies a single patch field: a nil patch value leaves the
// current value alone, a non-nil one overwrites it. Every resource
// service merges through this one rule so the merge field sets cannot
// drift between entity kinds.
func override[T any](dst *T, patch *T) {
	if patch != nil {
		*dst = *patch
	}
}
