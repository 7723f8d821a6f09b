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

	"github.com/findash/findash/internal/handler/dto"
	"github.com/findash/findash/internal/repository"
	"github.com/findash/findash/internal/service"
	"github.com/findash/findash/internal/testutil"
)

func TestUser_CreateGetUpdateDelete(t *testing.T) {
	_, _, router := newUserTestEnv(t)

	email := testutil.UniqueEmail("alice")
	body := fmt.Sprintf(`{"name": "Alice", "email": %q, "password": "s3cret"}`, email)

	req := httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created dto.UserResponse
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected generated id")
	}
	if created.Email != email {
		t.Fatalf("expected email %q, got %q", email, created.Email)
	}

	// The password hash must never appear on the wire.
	if bytes.Contains(rec.Body.Bytes(), []byte("password")) {
		t.Fatal("response leaks password material")
	}

	req = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/users/%d", created.ID), nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/users/email/"+email, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("lookup by email: expected status 200, got %d", rec.Code)
	}

	// Merge-update the name only; the email stays.
	req = httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/users/%d", created.ID), bytes.NewBufferString(`{"name": "Alice B."}`))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var updated dto.UserResponse
	if err := json.NewDecoder(rec.Body).Decode(&updated); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if updated.Name != "Alice B." {
		t.Errorf("expected name Alice B., got %q", updated.Name)
	}
	if updated.Email != email {
		t.Errorf("unpatched email changed: %q", updated.Email)
	}

	// Delete twice: both 204.
	for i := 0; i < 2; i++ {
		req = httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/users/%d", created.ID), nil)
		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("delete attempt %d: expected status 204, got %d", i+1, rec.Code)
		}
	}

	req = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/users/%d", created.ID), nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 after delete, got %d", rec.Code)
	}
}

func TestUser_DuplicateEmailConflict(t *testing.T) {
	_, _, router := newUserTestEnv(t)

	email := testutil.UniqueEmail("taken")
	body := fmt.Sprintf(`{"name": "Alice", "email": %q, "password": "s3cret"}`, email)

	req := httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewBufferString(body))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d: %s", rec.Code, rec.Body.String())
	}

	var response map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if response["code"] != "EMAIL_TAKEN" {
		t.Errorf("expected code EMAIL_TAKEN, got %s", response["code"])
	}
}

func newUserTestEnv(t *testing.T) (context.Context, *repository.Repository, *chi.Mux) {
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
	svc := service.NewUserService(repo, nil, nil)
	userHandler := NewUserHandler(svc, logger)

	router := chi.NewRouter()
	router.Route("/api/users", func(r chi.Router) {
		r.Get("/", userHandler.List)
		r.Get("/{id}", userHandler.Get)
		r.Get("/email/{email}", userHandler.GetByEmail)
		r.Post("/", userHandler.Create)
		r.Put("/{id}", userHandler.Update)
		r.Delete("/{id}", userHandler.Delete)
	})

	return ctx, repo, router
}
