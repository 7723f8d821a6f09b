package dto

import (
	"github.com/shopspring/decimal"

	"github.com/findash/findash/internal/model"
)

// CreateRecordRequest represents one expense or income in a batch
// create. The two entity kinds share a wire shape.
type CreateRecordRequest struct {
	UserID      int64           `json:"user_id"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Date        model.Date      `json:"date"`
	Description string          `json:"description,omitempty"`
}

// UpdateRecordRequest represents the request body for an expense or
// income merge-update. Omitted fields are left untouched; the owner
// cannot be expressed here at all.
type UpdateRecordRequest struct {
	Category    *string          `json:"category,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Date        *model.Date      `json:"date,omitempty"`
	Description *string          `json:"description,omitempty"`
}
