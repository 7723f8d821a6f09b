package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/findash/findash/internal/handler/dto"
	"github.com/findash/findash/internal/service"
)

// IncomeHandler handles HTTP requests for income operations.
type IncomeHandler struct {
	svc    *service.IncomeService
	logger *slog.Logger
}

// NewIncomeHandler creates a new IncomeHandler.
func NewIncomeHandler(svc *service.IncomeService, logger *slog.Logger) *IncomeHandler {
	return &IncomeHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /api/income.
func (h *IncomeHandler) List(w http.ResponseWriter, r *http.Request) {
	incomes, err := h.svc.List(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, emptyAsList(incomes))
}

// ListByUser handles GET /api/income/{userID}.
func (h *IncomeHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseID(w, r, "userID")
	if !ok {
		return
	}

	incomes, err := h.svc.ListByUser(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, emptyAsList(incomes))
}

// CreateBatch handles POST /api/income with a JSON array body.
func (h *IncomeHandler) CreateBatch(w http.ResponseWriter, r *http.Request) {
	var reqs []dto.CreateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	inputs := make([]service.CreateIncomeInput, 0, len(reqs))
	for _, req := range reqs {
		inputs = append(inputs, service.CreateIncomeInput{
			UserID:      req.UserID,
			Category:    req.Category,
			Amount:      req.Amount,
			Date:        req.Date,
			Description: req.Description,
		})
	}

	incomes, err := h.svc.CreateBatch(r.Context(), inputs)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("income_batch_saved", "count", len(incomes))

	writeJSON(w, http.StatusCreated, emptyAsList(incomes))
}

// Update handles PUT /api/income/{id}.
func (h *IncomeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	income, err := h.svc.Update(r.Context(), id, service.IncomePatch{
		Category:    req.Category,
		Amount:      req.Amount,
		Date:        req.Date,
		Description: req.Description,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("income_updated", "income_id", income.ID)

	writeJSON(w, http.StatusOK, income)
}

// Delete handles DELETE /api/income/{id}.
func (h *IncomeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("income_deleted", "income_id", id)

	w.WriteHeader(http.StatusNoContent)
}

// DeleteBatch handles DELETE /api/income with an ids body.
func (h *IncomeHandler) DeleteBatch(w http.ResponseWriter, r *http.Request) {
	var req dto.DeleteBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := h.svc.DeleteBatch(r.Context(), req.IDs); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("income_batch_deleted", "count", len(req.IDs))

	w.WriteHeader(http.StatusNoContent)
}

// handleServiceError maps income service errors to HTTP responses.
func (h *IncomeHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrIncomeNotFound):
		writeError(w, http.StatusNotFound, "INCOME_NOT_FOUND", "Income not found")
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
