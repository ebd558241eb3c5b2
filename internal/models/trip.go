package models

import (
	"time"

	"github.com/google/uuid"
)

type Trip struct {
	ID          uuid.UUID `db:"id"`
	Title       string    `db:"title"`
	Destination string    `db:"destination"`
	StartDate   string    `db:"start_date"`
	EndDate     string    `db:"end_date"`
	Description string    `db:"description"`
	Lat         *float64  `db:"lat"`
	Lon         *float64  `db:"lon"`

	// Budget fields. BudgetTotal is nil until the user sets a budget or the
	// first AI estimate bootstraps one. BudgetEstimates holds the last AI
	// estimation result and is overwritten wholesale on each estimation call.
	BudgetTotal     *float64        `db:"budget_total"`
	BudgetCurrency  string          `db:"budget_currency"`
	BudgetEstimates *BudgetEstimate `db:"budget_estimates"`

	CreatedAt time.Time `db:"created_at"`
}
