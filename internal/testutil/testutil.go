// Package testutil provides helpers for integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/findash/findash/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 730730

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// ResetSchema drops and recreates the full schema for tests by applying
// the down and up migrations in order.
func ResetSchema(ctx context.Context, pool *pgxpool.Pool) error {
	root, err := ProjectRoot()
	if err != nil {
		return err
	}

	migrationsDir := filepath.Join(root, "internal", "repository", "migrations")

	steps := []string{
		"000002_records.down.sql",
		"000001_users.down.sql",
		"000001_users.up.sql",
		"000002_records.up.sql",
	}

	for _, name := range steps {
		sql, err := os.ReadFile(filepath.Join(migrationsDir, name))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}

	return nil
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// ProjectRoot returns the project root directory.
func ProjectRoot() (string, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("failed to resolve testutil path")
	}
	root := filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
	return root, nil
}

// ============================================================================
// Test Data Factories
// ============================================================================

// NewTestUser creates a test user with sensible defaults. The id stays
// zero until the store assigns one.
func NewTestUser(t testing.TB) *model.User {
	t.Helper()
	now := time.Now().UTC()
	return &model.User{
		Name:         "Test User",
		Email:        UniqueEmail("user"),
		PasswordHash: fmt.Sprintf("hash-%d", now.UnixNano()),
		CreatedAt:    now,
	}
}

// NewTestExpense creates a test expense owned by userID.
func NewTestExpense(t testing.TB, userID int64, category string) *model.Expense {
	t.Helper()
	return &model.Expense{
		UserID:      userID,
		Category:    category,
		Amount:      decimal.NewFromFloat(42.50),
		Date:        model.NewDate(2024, time.January, 15),
		Description: "test " + category,
	}
}

// NewTestIncome creates a test income owned by userID.
func NewTestIncome(t testing.TB, userID int64, category string) *model.Income {
	t.Helper()
	return &model.Income{
		UserID:      userID,
		Category:    category,
		Amount:      decimal.NewFromFloat(1500),
		Date:        model.NewDate(2024, time.January, 1),
		Description: "test " + category,
	}
}

// NewTestGoal creates a test goal owned by userID.
func NewTestGoal(t testing.TB, userID int64, category string) *model.Goal {
	t.Helper()
	return &model.Goal{
		UserID:      userID,
		Category:    category,
		Amount:      decimal.NewFromFloat(5000),
		StartDate:   model.NewDate(2024, time.January, 1),
		EndDate:     model.NewDate(2024, time.December, 31),
		Description: "test " + category,
		Type:        model.GoalTypeSavings,
	}
}

// UniqueEmail generates a unique email address for tests.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.com", prefix, time.Now().UnixNano())
}
