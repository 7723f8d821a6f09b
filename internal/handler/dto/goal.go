package dto

import (
	"github.com/shopspring/decimal"

	"github.com/findash/findash/internal/model"
)

// CreateGoalRequest represents the request body for creating a goal.
type CreateGoalRequest struct {
	UserID      int64           `json:"user_id"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	StartDate   model.Date      `json:"start_date"`
	EndDate     model.Date      `json:"end_date"`
	Description string          `json:"description,omitempty"`
	Type        model.GoalType  `json:"type"`
}

// UpdateGoalRequest represents the request body for a goal merge-update.
// Omitted fields are left untouched.
type UpdateGoalRequest struct {
	Category    *string          `json:"category,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	StartDate   *model.Date      `json:"start_date,omitempty"`
	EndDate     *model.Date      `json:"end_date,omitempty"`
	Description *string          `json:"description,omitempty"`
	Type        *model.GoalType  `json:"type,omitempty"`
}
