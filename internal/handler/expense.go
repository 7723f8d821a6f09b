package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/findash/findash/internal/handler/dto"
	"github.com/findash/findash/internal/service"
)

// ExpenseHandler handles HTTP requests for expense operations.
type ExpenseHandler struct {
	svc    *service.ExpenseService
	logger *slog.Logger
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(svc *service.ExpenseService, logger *slog.Logger) *ExpenseHandler {
	return &ExpenseHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /api/expense.
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.svc.List(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, emptyAsList(expenses))
}

// ListByUser handles GET /api/expense/{userID}.
func (h *ExpenseHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseID(w, r, "userID")
	if !ok {
		return
	}

	expenses, err := h.svc.ListByUser(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, emptyAsList(expenses))
}

// CreateBatch handles POST /api/expense. The body is a JSON array; all
// rows are inserted in one batch and returned in submission order with
// their generated ids.
func (h *ExpenseHandler) CreateBatch(w http.ResponseWriter, r *http.Request) {
	var reqs []dto.CreateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	inputs := make([]service.CreateExpenseInput, 0, len(reqs))
	for _, req := range reqs {
		inputs = append(inputs, service.CreateExpenseInput{
			UserID:      req.UserID,
			Category:    req.Category,
			Amount:      req.Amount,
			Date:        req.Date,
			Description: req.Description,
		})
	}

	expenses, err := h.svc.CreateBatch(r.Context(), inputs)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("expense_batch_saved", "count", len(expenses))

	writeJSON(w, http.StatusCreated, emptyAsList(expenses))
}

// Update handles PUT /api/expense/{id}.
func (h *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	expense, err := h.svc.Update(r.Context(), id, service.ExpensePatch{
		Category:    req.Category,
		Amount:      req.Amount,
		Date:        req.Date,
		Description: req.Description,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("expense_updated", "expense_id", expense.ID)

	writeJSON(w, http.StatusOK, expense)
}

// Delete handles DELETE /api/expense/{id}.
func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("expense_deleted", "expense_id", id)

	w.WriteHeader(http.StatusNoContent)
}

// DeleteBatch handles DELETE /api/expense with an ids body.
// Ids with no matching row are silently ignored.
func (h *ExpenseHandler) DeleteBatch(w http.ResponseWriter, r *http.Request) {
	var req dto.DeleteBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := h.svc.DeleteBatch(r.Context(), req.IDs); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("expense_batch_deleted", "count", len(req.IDs))

	w.WriteHeader(http.StatusNoContent)
}

// handleServiceError maps expense service errors to HTTP responses.
func (h *ExpenseHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrExpenseNotFound):
		writeError(w, http.StatusNotFound, "EXPENSE_NOT_FOUND", "Expense not found")
	case errors.Is(err, service.ErrOwnerMissing):
		writeError(w, http.StatusUnprocessableEntity, "OWNER_MISSING", "Owner user does not exist")
	case errors.Is(err, service.ErrNegativeAmount):
		writeError(w, http.StatusUnprocessableEntity, "NEGATIVE_AMOUNT", "Amount must not be negative")
	case errors.Is(err, service.ErrEmptyCategory):
		writeError(w, http.StatusUnprocessableEntity, "EMPTY_CATEGORY", "Category must not be empty")
	case errors.Is(err, service.ErrMissingDate):
		writeError(w, http.StatusUnprocessableEntity, "MISSING_DATE", "Date is required")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
