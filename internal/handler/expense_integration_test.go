package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/findash/findash/internal/model"
	"github.com/findash/findash/internal/repository"
	"github.com/findash/findash/internal/service"
	"github.com/findash/findash/internal/testutil"
)

func TestExpense_BatchCreateListUpdateDelete(t *testing.T) {
	ctx, repo, router := newExpenseTestEnv(t)

	user := testutil.NewTestUser(t)
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	body := fmt.Sprintf(`[
		{"user_id": %d, "category": "rent", "amount": "900.00", "date": "2024-03-01"},
		{"user_id": %d, "category": "groceries", "amount": "55.30", "date": "2024-03-05", "description": "weekly shop"}
	]`, user.ID, user.ID)

	req := httptest.NewRequest(http.MethodPost, "/api/expense", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created []model.Expense
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("expected 2 expenses, got %d", len(created))
	}
	if created[0].Category != "rent" || created[1].Category != "groceries" {
		t.Fatalf("submission order not preserved: %q, %q", created[0].Category, created[1].Category)
	}
	if created[0].ID == 0 || created[1].ID == 0 || created[0].ID == created[1].ID {
		t.Fatalf("expected distinct generated ids, got %d and %d", created[0].ID, created[1].ID)
	}

	// Owner-scoped listing returns only this user's rows.
	req = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/expense/%d", user.ID), nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var listed []model.Expense
	if err := json.NewDecoder(rec.Body).Decode(&listed); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 expenses for owner, got %d", len(listed))
	}

	// Merge-update touches only the amount.
	update := `{"amount": "61.75"}`
	req = httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/expense/%d", created[1].ID), bytes.NewBufferString(update))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var updated model.Expense
	if err := json.NewDecoder(rec.Body).Decode(&updated); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if updated.Amount.String() != "61.75" {
		t.Errorf("expected amount 61.75, got %s", updated.Amount)
	}
	if updated.Category != "groceries" || updated.Description != "weekly shop" {
		t.Errorf("untouched fields changed: %q %q", updated.Category, updated.Description)
	}
	if updated.UserID != user.ID {
		t.Errorf("owner changed: %d", updated.UserID)
	}

	// Single delete, then again: both must be 204.
	for i := 0; i < 2; i++ {
		req = httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/expense/%d", created[0].ID), nil)
		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("delete attempt %d: expected status 204, got %d", i+1, rec.Code)
		}
	}

	// Batch delete with one absent id still succeeds.
	deleteBody := fmt.Sprintf(`{"ids": [%d, 999999]}`, created[1].ID)
	req = httptest.NewRequest(http.MethodDelete, "/api/expense", bytes.NewBufferString(deleteBody))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/expense", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	var remaining []model.Expense
	if err := json.NewDecoder(rec.Body).Decode(&remaining); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("expected no expenses left, got %d", len(remaining))
	}
}

func TestExpense_ErrorResponses(t *testing.T) {
	ctx, repo, router := newExpenseTestEnv(t)

	user := testutil.NewTestUser(t)
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	tests := []struct {
		name       string
		method     string
		target     string
		body       string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "unknown_owner",
			method:     http.MethodPost,
			target:     "/api/expense",
			body:       `[{"user_id": 999999, "category": "rent", "amount": "10", "date": "2024-03-01"}]`,
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "OWNER_MISSING",
		},
		{
			name:       "negative_amount",
			method:     http.MethodPost,
			target:     "/api/expense",
			body:       fmt.Sprintf(`[{"user_id": %d, "category": "rent", "amount": "-10", "date": "2024-03-01"}]`, user.ID),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "NEGATIVE_AMOUNT",
		},
		{
			name:       "update_absent_id",
			method:     http.MethodPut,
			target:     "/api/expense/999999",
			body:       `{"category": "rent"}`,
			wantStatus: http.StatusNotFound,
			wantCode:   "EXPENSE_NOT_FOUND",
		},
		{
			name:       "malformed_body",
			method:     http.MethodPost,
			target:     "/api/expense",
			body:       `{not json`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_JSON",
		},
		{
			name:       "non_numeric_id",
			method:     http.MethodPut,
			target:     "/api/expense/abc",
			body:       `{"category": "rent"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_ID",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest(test.method, test.target, bytes.NewBufferString(test.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != test.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", test.wantStatus, rec.Code, rec.Body.String())
			}

			var response map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if response["code"] != test.wantCode {
				t.Errorf("expected code %s, got %s", test.wantCode, response["code"])
			}
		})
	}
}

func newExpenseTestEnv(t *testing.T) (context.Context, *repository.Repository, *chi.Mux) {
	t.Helper()

	ctx := context.Background()
	dbURL := testutil.RequireEnv(t, "DATABASE_URL")

	repo, err := repository.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(repo.Close)

	unlock, err := testutil.AcquireDBLock(ctx, repo.Pool())
	if err != nil {
		t.Fatalf("acquire db lock: %v", err)
	}
	t.Cleanup(func() {
		_ = unlock()
	})

	if err := testutil.ResetSchema(ctx, repo.Pool()); err != nil {
		t.Fatalf("reset schema: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewExpenseService(repo, nil)
	expenseHandler := NewExpenseHandler(svc, logger)

	router := chi.NewRouter()
	router.Route("/api/expense", func(r chi.Router) {
		r.Get("/", expenseHandler.List)
		r.Get("/{userID}", expenseHandler.ListByUser)
		r.Post("/", expenseHandler.CreateBatch)
		r.Put("/{id}", expenseHandler.Update)
		r.Delete("/", expenseHandler.DeleteBatch)
		r.Delete("/{id}", expenseHandler.Delete)
	})

	return ctx, repo, router
}
