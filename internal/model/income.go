package model

import "github.com/shopspring/decimal"

// Income is a single earning record owned by one user.
// Same shape as Expense; kept as a distinct type because the two are
// stored and exposed independently.
type Income struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Date        Date            `json:"date"`
	Description string          `json:"description"`
}
