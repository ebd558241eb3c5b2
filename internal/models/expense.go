package models

import (
	"time"

	"github.com/google/uuid"
)

type Expense struct {
	ID          uuid.UUID       `db:"id"`
	TripID      uuid.UUID       `db:"trip_id"`
	Category    ExpenseCategory `db:"category"`
	Description string          `db:"description"`
	Amount      float64         `db:"amount"`
	Currency    string          `db:"currency"`
	Date        string          `db:"date"`
	Notes       string          `db:"notes"`
	CreatedAt   time.Time       `db:"created_at"`
}
