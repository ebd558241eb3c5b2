package dto

import "wanderplan/internal/models"

// BudgetSettingsRequest carries partial budget updates; nil fields are left
// untouched.
type BudgetSettingsRequest struct {
	BudgetTotal    *float64 `json:"budget_total"`
	BudgetCurrency *string  `json:"budget_currency"`
}

type CreateExpenseRequest struct {
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Date        string  `json:"date"`
	Notes       string  `json:"notes"`
}

// UpdateExpenseRequest carries partial expense updates; nil fields are left
// untouched.
type UpdateExpenseRequest struct {
	Category    *string  `json:"category"`
	Description *string  `json:"description"`
	Amount      *float64 `json:"amount"`
	Currency    *string  `json:"currency"`
	Date        *string  `json:"date"`
	Notes       *string  `json:"notes"`
}

// EstimateRequest asks the AI estimator for per-category trip costs.
// TravelStyle is one of budget | mid-range | luxury.
type EstimateRequest struct {
	Model        string `json:"model"`
	Travelers    int    `json:"travelers"`
	DurationDays *int   `json:"duration_days"`
	TravelStyle  string `json:"travel_style"`
}

// CategoryBreakdown is the per-category slice of a budget summary. Ratio
// fields are nil whenever their denominator is zero or unset.
type CategoryBreakdown struct {
	Category      models.ExpenseCategory `json:"category"`
	Icon          string                 `json:"icon"`
	Spent         float64                `json:"spent"`
	Estimated     float64                `json:"estimated"`
	PctOfBudget   *float64               `json:"pct_of_budget"`
	PctOfEstimate *float64               `json:"pct_of_estimate"`
}

// BudgetSummary is the derived read-only view combining budget settings,
// actual spend and the last AI estimate. It is recomputed on every read.
type BudgetSummary struct {
	BudgetTotal    *float64              `json:"budget_total"`
	BudgetCurrency string                `json:"budget_currency"`
	TotalSpent     float64               `json:"total_spent"`
	Remaining      *float64              `json:"remaining"`
	PctUsed        *float64              `json:"pct_used"`
	Categories     []CategoryBreakdown   `json:"categories"`
	Estimates      models.BudgetEstimate `json:"estimates"`
}

type ExpenseResponse struct {
	ID          string  `json:"id"`
	TripID      string  `json:"trip_id"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Date        string  `json:"date"`
	Notes       string  `json:"notes"`
	CreatedAt   string  `json:"created_at"`
	Icon        string  `json:"icon"`
}

type BudgetResponse struct {
	Summary  BudgetSummary     `json:"summary"`
	Expenses []ExpenseResponse `json:"expenses"`
}

type ExpenseMutationResponse struct {
	Expense ExpenseResponse `json:"expense"`
	Summary BudgetSummary   `json:"summary"`
}

type DeleteExpenseResponse struct {
	Success bool          `json:"success"`
	Summary BudgetSummary `json:"summary"`
}

type EstimateResponse struct {
	Estimates models.BudgetEstimate `json:"estimates"`
	Summary   BudgetSummary         `json:"summary"`
}
