package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/findash/findash/internal/model"
)

// Common errors for expense repository operations.
var (
	ErrExpenseNotFound = errors.New("expense not found")
	// ErrOwnerMissing indicates a write referenced a user id with no
	// matching users row.
	ErrOwnerMissing = errors.New("owner user does not exist")
)

// CreateExpenses inserts a batch of expenses in one round trip and
// populates their ids in submission order.
func (r *Repository) CreateExpenses(ctx context.Context, expenses []*model.Expense) error {
	if len(expenses) == 0 {
		return nil
	}

	query := `
		INSERT INTO expenses (user_id, category, amount, date, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	batch := &pgx.Batch{}
	for _, e := range expenses {
		batch.Queue(query, e.UserID, e.Category, e.Amount, e.Date, e.Description)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for _, e := range expenses {
		if err := results.QueryRow().Scan(&e.ID); err != nil {
			if isForeignKeyViolation(err) {
				return ErrOwnerMissing
			}
			return fmt.Errorf("failed to create expenses: %w", err)
		}
	}

	return nil
}

// GetExpenseByID retrieves an expense by its ID.
func (r *Repository) GetExpenseByID(ctx context.Context, id int64) (*model.Expense, error) {
	query := `
		SELECT id, user_id, category, amount, date, description
		FROM expenses
		WHERE id = $1
	`

	expense, err := scanExpense(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrExpenseNotFound
		}
		return nil, fmt.Errorf("failed to get expense by ID: %w", err)
	}

	return expense, nil
}

// ListExpenses retrieves all expenses regardless of owner.
func (r *Repository) ListExpenses(ctx context.Context) ([]*model.Expense, error) {
	query := `
		SELECT id, user_id, category, amount, date, description
		FROM expenses
		ORDER BY date, id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	return collectExpenses(rows)
}

// ListExpensesByUser retrieves all expenses owned by the given user.
func (r *Repository) ListExpensesByUser(ctx context.Context, userID int64) ([]*model.Expense, error) {
	query := `
		SELECT id, user_id, category, amount, date, description
		FROM expenses
		WHERE user_id = $1
		ORDER BY date, id
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses by user: %w", err)
	}
	defer rows.Close()

	return collectExpenses(rows)
}

// UpdateExpense updates an expense's mutable fields. The owner column is
// deliberately absent from the SET list; ownership never changes here.
func (r *Repository) UpdateExpense(ctx context.Context, expense *model.Expense) error {
	query := `
		UPDATE expenses
		SET category = $2, amount = $3, date = $4, description = $5
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		expense.ID,
		expense.Category,
		expense.Amount,
		expense.Date,
		expense.Description,
	)

	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrExpenseNotFound
	}

	return nil
}

// DeleteExpense removes an expense by id. Absent ids are a silent no-op.
func (r *Repository) DeleteExpense(ctx context.Context, id int64) error {
	query := `DELETE FROM expenses WHERE id = $1`

	if _, err := r.pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	return nil
}

// DeleteExpenses removes every expense whose id is in ids.
// Ids with no matching row are ignored.
func (r *Repository) DeleteExpenses(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	query := `DELETE FROM expenses WHERE id = ANY($1)`

	if _, err := r.pool.Exec(ctx, query, ids); err != nil {
		return fmt.Errorf("failed to delete expenses: %w", err)
	}

	return nil
}

// scanExpense scans a single row into an Expense model.
func scanExpense(row pgx.Row) (*model.Expense, error) {
	var expense model.Expense
	err := row.Scan(
		&expense.ID,
		&expense.UserID,
		&expense.Category,
		&expense.Amount,
		&expense.Date,
		&expense.Description,
	)
	return &expense, err
}

// collectExpenses drains rows into a slice of Expense models.
func collectExpenses(rows pgx.Rows) ([]*model.Expense, error) {
	var expenses []*model.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses: %w", err)
	}

	return expenses, nil
}
