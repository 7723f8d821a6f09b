package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/findash/findash/internal/handler/dto"
	"github.com/findash/findash/internal/service"
)

// GoalHandler handles HTTP requests for savings-goal operations.
type GoalHandler struct {
	svc    *service.GoalService
	logger *slog.Logger
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(svc *service.GoalService, logger *slog.Logger) *GoalHandler {
	return &GoalHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /api/goal.
func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	goals, err := h.svc.List(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, emptyAsList(goals))
}

// ListByUser handles GET /api/goal/{userID}.
func (h *GoalHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseID(w, r, "userID")
	if !ok {
		return
	}

	goals, err := h.svc.ListByUser(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, emptyAsList(goals))
}

// Create handles POST /api/goal. Unlike expenses and incomes, goals are
// created one at a time.
func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	goal, err := h.svc.Create(r.Context(), service.CreateGoalInput{
		UserID:      req.UserID,
		Category:    req.Category,
		Amount:      req.Amount,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Description: req.Description,
		Type:        req.Type,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("goal_created", "goal_id", goal.ID)

	writeJSON(w, http.StatusCreated, goal)
}

// Update handles PUT /api/goal/{id}.
func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	goal, err := h.svc.Update(r.Context(), id, service.GoalPatch{
		Category:    req.Category,
		Amount:      req.Amount,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Description: req.Description,
		Type:        req.Type,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("goal_updated", "goal_id", goal.ID)

	writeJSON(w, http.StatusOK, goal)
}

// Delete handles DELETE /api/goal/{id}.
func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("goal_deleted", "goal_id", id)

	w.WriteHeader(http.StatusNoContent)
}

// handleServiceError maps goal service errors to HTTP responses.
func (h *GoalHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrGoalNotFound):
		writeError(w, http.StatusNotFound, "GOAL_NOT_FOUND", "Goal not found")
	case errors.Is(err, service.ErrOwnerMissing):
		writeError(w, http.StatusUnprocessableEntity, "OWNER_MISSING", "Owner user does not exist")
	case errors.Is(err, service.ErrNegativeAmount):
		writeError(w, http.StatusUnprocessableEntity, "NEGATIVE_AMOUNT", "Amount must not be negative")
	case errors.Is(err, service.ErrEmptyCategory):
		writeError(w, http.StatusUnprocessableEntity, "EMPTY_CATEGORY", "Category must not be empty")
	case errors.Is(err, service.ErrMissingDate):
		writeError(w, http.StatusUnprocessableEntity, "MISSING_DATE", "Start and end dates are required")
	case errors.Is(err, service.ErrInvalidDateRange):
		writeError(w, http.StatusUnprocessableEntity, "INVALID_DATE_RANGE", "End date must not precede start date")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
