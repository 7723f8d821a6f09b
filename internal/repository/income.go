package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/findash/findash/internal/model"
)

// ErrIncomeNotFound is returned when an income row does not exist.
var ErrIncomeNotFound = errors.New("income not found")

// CreateIncomes inserts a batch of incomes in one round trip and
// populates their ids in submission order.
func (r *Repository) CreateIncomes(ctx context.Context, incomes []*model.Income) error {
	if len(incomes) == 0 {
		return nil
	}

	query := `
		INSERT INTO incomes (user_id, category, amount, date, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	batch := &pgx.Batch{}
	for _, in := range incomes {
		batch.Queue(query, in.UserID, in.Category, in.Amount, in.Date, in.Description)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for _, in := range incomes {
		if err := results.QueryRow().Scan(&in.ID); err != nil {
			if isForeignKeyViolation(err) {
				return ErrOwnerMissing
			}
			return fmt.Errorf("failed to create incomes: %w", err)
		}
	}

	return nil
}

// GetIncomeByID retrieves an income by its ID.
func (r *Repository) GetIncomeByID(ctx context.Context, id int64) (*model.Income, error) {
	query := `
		SELECT id, user_id, category, amount, date, description
		FROM incomes
		WHERE id = $1
	`

	income, err := scanIncome(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrIncomeNotFound
		}
		return nil, fmt.Errorf("failed to get income by ID: %w", err)
	}

	return income, nil
}

// ListIncomes retrieves all incomes regardless of owner.
func (r *Repository) ListIncomes(ctx context.Context) ([]*model.Income, error) {
	query := `
		SELECT id, user_id, category, amount, date, description
		FROM incomes
		ORDER BY date, id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list incomes: %w", err)
	}
	defer rows.Close()

	return collectIncomes(rows)
}

// ListIncomesByUser retrieves all incomes owned by the given user.
func (r *Repository) ListIncomesByUser(ctx context.Context, userID int64) ([]*model.Income, error) {
	query := `
		SELECT id, user_id, category, amount, date, description
		FROM incomes
		WHERE user_id = $1
		ORDER BY date, id
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list incomes by user: %w", err)
	}
	defer rows.Close()

	return collectIncomes(rows)
}

// UpdateIncome updates an income's mutable fields, never the owner.
func (r *Repository) UpdateIncome(ctx context.Context, income *model.Income) error {
	query := `
		UPDATE incomes
		SET category = $2, amount = $3, date = $4, description = $5
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		income.ID,
		income.Category,
		income.Amount,
		income.Date,
		income.Description,
	)

	if err != nil {
		return fmt.Errorf("failed to update income: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrIncomeNotFound
	}

	return nil
}

// DeleteIncome removes an income by id. Absent ids are a silent no-op.
func (r *Repository) DeleteIncome(ctx context.Context, id int64) error {
	query := `DELETE FROM incomes WHERE id = $1`

	if _, err := r.pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete income: %w", err)
	}

	return nil
}

// DeleteIncomes removes every income whose id is in ids.
// Ids with no matching row are ignored.
func (r *Repository) DeleteIncomes(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	query := `DELETE FROM incomes WHERE id = ANY($1)`

	if _, err := r.pool.Exec(ctx, query, ids); err != nil {
		return fmt.Errorf("failed to delete incomes: %w", err)
	}

	return nil
}

// scanIncome scans a single row into an Income model.
func scanIncome(row pgx.Row) (*model.Income, error) {
	var income model.Income
	err := row.Scan(
		&income.ID,
		&income.UserID,
		&income.Category,
		&income.Amount,
		&income.Date,
		&income.Description,
	)
	return &income, err
}

// collectIncomes drains rows into a slice of Income models.
func collectIncomes(rows pgx.Rows) ([]*model.Income, error) {
	var incomes []*model.Income
	for rows.Next() {
		income, err := scanIncome(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan income: %w", err)
		}
		incomes = append(incomes, income)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating incomes: %w", err)
	}

	return incomes, nil
}
