package model

import "github.com/shopspring/decimal"

// GoalType distinguishes savings targets from budget caps.
type GoalType string

const (
	GoalTypeSavings GoalType = "savings"
	GoalTypeBudget  GoalType = "budget"
)

// Goal is a savings or budget target over a date range, owned by one user.
type Goal struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	StartDate   Date            `json:"start_date"`
	EndDate     Date            `json:"end_date"`
	Description string          `json:"description"`
	Type        GoalType        `json:"type"`
}
