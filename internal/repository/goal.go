package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/findash/findash/internal/model"
)

// ErrGoalNotFound is returned when a goal row does not exist.
var ErrGoalNotFound = errors.New("goal not found")

// CreateGoal inserts a new goal and populates its id from the database.
func (r *Repository) CreateGoal(ctx context.Context, goal *model.Goal) error {
	query := `
		INSERT INTO goals (user_id, category, amount, start_date, end_date, description, type)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		goal.UserID,
		goal.Category,
		goal.Amount,
		goal.StartDate,
		goal.EndDate,
		goal.Description,
		goal.Type,
	).Scan(&goal.ID)

	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrOwnerMissing
		}
		return fmt.Errorf("failed to create goal: %w", err)
	}

	return nil
}

// GetGoalByID retrieves a goal by its ID.
func (r *Repository) GetGoalByID(ctx context.Context, id int64) (*model.Goal, error) {
	query := `
		SELECT id, user_id, category, amount, start_date, end_date, description, type
		FROM goals
		WHERE id = $1
	`

	goal, err := scanGoal(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGoalNotFound
		}
		return nil, fmt.Errorf("failed to get goal by ID: %w", err)
	}

	return goal, nil
}

// ListGoals retrieves all goals regardless of owner.
func (r *Repository) ListGoals(ctx context.Context) ([]*model.Goal, error) {
	query := `
		SELECT id, user_id, category, amount, start_date, end_date, description, type
		FROM goals
		ORDER BY start_date, id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	return collectGoals(rows)
}

// ListGoalsByUser retrieves all goals owned by the given user.
func (r *Repository) ListGoalsByUser(ctx context.Context, userID int64) ([]*model.Goal, error) {
	query := `
		SELECT id, user_id, category, amount, start_date, end_date, description, type
		FROM goals
		WHERE user_id = $1
		ORDER BY start_date, id
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals by user: %w", err)
	}
	defer rows.Close()

	return collectGoals(rows)
}

// UpdateGoal updates a goal's mutable fields, never the owner.
func (r *Repository) UpdateGoal(ctx context.Context, goal *model.Goal) error {
	query := `
		UPDATE goals
		SET category = $2, amount = $3, start_date = $4, end_date = $5, description = $6, type = $7
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		goal.ID,
		goal.Category,
		goal.Amount,
		goal.StartDate,
		goal.EndDate,
		goal.Description,
		goal.Type,
	)

	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrGoalNotFound
	}

	return nil
}

// DeleteGoal removes a goal by id. Absent ids are a silent no-op.
func (r *Repository) DeleteGoal(ctx context.Context, id int64) error {
	query := `DELETE FROM goals WHERE id = $1`

	if _, err := r.pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}

	return nil
}

// scanGoal scans a single row into a Goal model.
func scanGoal(row pgx.Row) (*model.Goal, error) {
	var goal model.Goal
	err := row.Scan(
		&goal.ID,
		&goal.UserID,
		&goal.Category,
		&goal.Amount,
		&goal.StartDate,
		&goal.EndDate,
		&goal.Description,
		&goal.Type,
	)
	return &goal, err
}

// collectGoals drains rows into a slice of Goal models.
func collectGoals(rows pgx.Rows) ([]*model.Goal, error) {
	var goals []*model.Goal
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, goal)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating goals: %w", err)
	}

	return goals, nil
}
