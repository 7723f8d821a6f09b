package model

import "github.com/shopspring/decimal"

// Expense is a single spending record owned by one user.
// UserID is a plain value reference; the schema enforces the relation.
type Expense struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Date        Date            `json:"date"`
	Description string          `json:"description"`
}
