package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"wanderplan/internal/dto"
	"wanderplan/internal/models"
	"wanderplan/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TripStore is the slice of the trip repository the budget service needs.
type TripStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Trip, error)
	UpdateBudget(ctx context.Context, trip *models.Trip) error
}

// ExpenseStore persists individual spend items tied to a trip.
type ExpenseStore interface {
	Create(ctx context.Context, expense *models.Expense) error
	GetByID(ctx context.Context, id, tripID uuid.UUID) (*models.Expense, error)
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]*models.Expense, error)
	Update(ctx context.Context, expense *models.Expense) error
	Delete(ctx context.Context, id, tripID uuid.UUID) error
}

// StructuredGenerator is the slice of the Ollama gateway the estimator needs.
type StructuredGenerator interface {
	GenerateStructured(ctx context.Context, prompt, model string, schema map[string]any) (*GenerateResult, error)
}

type BudgetService struct {
	trips    TripStore
	expenses ExpenseStore
	ollama   StructuredGenerator
	logger   *zap.Logger
}

func NewBudgetService(trips TripStore, expenses ExpenseStore, ollama StructuredGenerator, logger *zap.Logger) *BudgetService {
	return &BudgetService{
		trips:    trips,
		expenses: expenses,
		ollama:   ollama,
		logger:   logger,
	}
}

// ComputeSummary derives the display-ready budget aggregate from the trip's
// budget configuration and its complete expense list. It is pure and total:
// missing budget, missing estimates and an empty expense list all yield a
// well-formed summary, and every ratio with a zero or absent denominator is
// nil rather than an error or infinity.
func ComputeSummary(trip *models.Trip, expenses []*models.Expense) dto.BudgetSummary {
	currency := trip.BudgetCurrency
	if currency == "" {
		currency = "USD"
	}

	spentByCategory := make(map[models.ExpenseCategory]float64)
	var totalSpent float64
	for _, e := range expenses {
		spentByCategory[e.Category] += e.Amount
		totalSpent += e.Amount
	}

	var budgetTotal float64
	if trip.BudgetTotal != nil {
		budgetTotal = *trip.BudgetTotal
	}

	estimates := trip.BudgetEstimates
	categories := make([]dto.CategoryBreakdown, 0, len(models.ExpenseCategories))
	for _, cat := range models.ExpenseCategories {
		spent := spentByCategory[cat]
		estimated := estimates.CategoryAmount(cat)
		categories = append(categories, dto.CategoryBreakdown{
			Category:      cat,
			Icon:          cat.Icon(),
			Spent:         spent,
			Estimated:     estimated,
			PctOfBudget:   percentage(spent, budgetTotal),
			PctOfEstimate: percentage(spent, estimated),
		})
	}

	summary := dto.BudgetSummary{
		BudgetTotal:    trip.BudgetTotal,
		BudgetCurrency: currency,
		TotalSpent:     round2(totalSpent),
		PctUsed:        percentage(totalSpent, budgetTotal),
		Categories:     categories,
	}
	if budgetTotal != 0 {
		remaining := round2(budgetTotal - totalSpent)
		summary.Remaining = &remaining
	}
	if estimates != nil {
		summary.Estimates = *estimates
	}
	return summary
}

// percentage returns spent/total as a percent rounded to one decimal, or nil
// when the denominator is zero or absent.
func percentage(spent, total float64) *float64 {
	if total == 0 {
		return nil
	}
	pct := round1(spent / total * 100)
	return &pct
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round1(v float64) float64 { return math.Round(v*10) / 10 }

// GetBudget returns the recomputed summary plus the trip's expenses, newest
// first.
func (s *BudgetService) GetBudget(ctx context.Context, tripID uuid.UUID) (*dto.BudgetResponse, error) {
	trip, err := s.getTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenses.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		items = append(items, expenseToResponse(e))
	}
	return &dto.BudgetResponse{
		Summary:  ComputeSummary(trip, expenses),
		Expenses: items,
	}, nil
}

// UpdateSettings applies a partial update to the trip's budget total and
// currency. Absent fields are untouched; currency is stored uppercased.
func (s *BudgetService) UpdateSettings(ctx context.Context, tripID uuid.UUID, req dto.BudgetSettingsRequest) (*dto.BudgetSummary, error) {
	trip, err := s.getTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	if req.BudgetTotal != nil {
		trip.BudgetTotal = req.BudgetTotal
	}
	if req.BudgetCurrency != nil {
		trip.BudgetCurrency = strings.ToUpper(*req.BudgetCurrency)
	}
	if err := s.trips.UpdateBudget(ctx, trip); err != nil {
		return nil, err
	}

	return s.summaryFor(ctx, trip)
}

// AddExpense validates the category against the fixed set, defaults the
// currency (request value, else trip currency, else USD) and returns the
// created expense plus the recomputed summary.
func (s *BudgetService) AddExpense(ctx context.Context, tripID uuid.UUID, req dto.CreateExpenseRequest) (*dto.ExpenseMutationResponse, error) {
	trip, err := s.getTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	category := models.ExpenseCategory(req.Category)
	if !category.Valid() {
		return nil, fmt.Errorf("%w: category must be one of %v", ErrInvalidCategory, models.ExpenseCategories)
	}

	currency := req.Currency
	if currency == "" {
		currency = trip.BudgetCurrency
	}
	if currency == "" {
		currency = "USD"
	}

	expense := &models.Expense{
		ID:          uuid.New(),
		TripID:      tripID,
		Category:    category,
		Description: req.Description,
		Amount:      req.Amount,
		Currency:    currency,
		Date:        req.Date,
		Notes:       req.Notes,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.expenses.Create(ctx, expense); err != nil {
		return nil, err
	}

	return s.mutationResponse(ctx, trip, expense)
}

// UpdateExpense applies a partial update: only fields supplied in the request
// overwrite the stored expense.
func (s *BudgetService) UpdateExpense(ctx context.Context, tripID, expenseID uuid.UUID, req dto.UpdateExpenseRequest) (*dto.ExpenseMutationResponse, error) {
	expense, err := s.expenses.GetByID(ctx, expenseID, tripID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, err
	}

	if req.Category != nil {
		category := models.ExpenseCategory(*req.Category)
		if !category.Valid() {
			return nil, fmt.Errorf("%w: category must be one of %v", ErrInvalidCategory, models.ExpenseCategories)
		}
		expense.Category = category
	}
	if req.Description != nil {
		expense.Description = *req.Description
	}
	if req.Amount != nil {
		expense.Amount = *req.Amount
	}
	if req.Currency != nil {
		expense.Currency = *req.Currency
	}
	if req.Date != nil {
		expense.Date = *req.Date
	}
	if req.Notes != nil {
		expense.Notes = *req.Notes
	}

	if err := s.expenses.Update(ctx, expense); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, err
	}

	trip, err := s.getTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	return s.mutationResponse(ctx, trip, expense)
}

// DeleteExpense removes the expense (scoped to the claimed trip) and returns
// the recomputed summary.
func (s *BudgetService) DeleteExpense(ctx context.Context, tripID, expenseID uuid.UUID) (*dto.DeleteExpenseResponse, error) {
	trip, err := s.getTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	if err := s.expenses.Delete(ctx, expenseID, tripID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, err
	}

	summary, err := s.summaryFor(ctx, trip)
	if err != nil {
		return nil, err
	}
	return &dto.DeleteExpenseResponse{Success: true, Summary: *summary}, nil
}

// EstimateCosts asks Ollama for realistic per-category trip costs, persists
// the result on the trip and returns it with a fresh summary. Nothing is
// persisted unless a schema-conforming response was obtained.
func (s *BudgetService) EstimateCosts(ctx context.Context, tripID uuid.UUID, req dto.EstimateRequest) (*dto.EstimateResponse, error) {
	trip, err := s.getTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	travelers := req.Travelers
	if travelers <= 0 {
		travelers = 1
	}
	style := req.TravelStyle
	if style == "" {
		style = "mid-range"
	}
	duration := resolveDuration(trip, req.DurationDays)

	prompt := buildEstimatePrompt(trip.Destination, duration, travelers, style)
	result, err := s.ollama.GenerateStructured(ctx, prompt, req.Model, estimateSchema())
	if err != nil {
		return nil, err
	}

	var estimate models.BudgetEstimate
	if err := json.Unmarshal(result.Raw, &estimate); err != nil {
		s.logger.Warn("Estimate response did not match schema",
			zap.String("trip_id", tripID.String()),
			zap.Error(err),
		)
		return nil, ErrEstimateUnparsable
	}

	trip.BudgetEstimates = &estimate
	if trip.BudgetCurrency == "" && estimate.Currency != "" {
		trip.BudgetCurrency = estimate.Currency
	}
	// One-time bootstrap: adopt the estimated total as the budget, never
	// overwriting a user-set value.
	if (trip.BudgetTotal == nil || *trip.BudgetTotal == 0) && estimate.Total != 0 {
		total := estimate.Total
		trip.BudgetTotal = &total
	}
	if err := s.trips.UpdateBudget(ctx, trip); err != nil {
		return nil, err
	}

	s.logger.Info("Cost estimate stored",
		zap.String("trip_id", tripID.String()),
		zap.Int("duration_days", duration),
		zap.Int("travelers", travelers),
		zap.Float64("total", estimate.Total),
	)

	summary, err := s.summaryFor(ctx, trip)
	if err != nil {
		return nil, err
	}
	return &dto.EstimateResponse{Estimates: estimate, Summary: *summary}, nil
}

// resolveDuration picks the trip duration in days: the caller-supplied value
// when positive, else the stored date range clamped to at least one day, else
// a 7-day default. Unparseable dates fall through silently.
func resolveDuration(trip *models.Trip, explicit *int) int {
	if explicit != nil && *explicit > 0 {
		return *explicit
	}
	if trip.StartDate != "" && trip.EndDate != "" {
		start, errS := time.Parse("2006-01-02", trip.StartDate)
		end, errE := time.Parse("2006-01-02", trip.EndDate)
		if errS == nil && errE == nil {
			days := int(end.Sub(start).Hours() / 24)
			if days < 1 {
				days = 1
			}
			return days
		}
	}
	return 7
}

func buildEstimatePrompt(destination string, duration, travelers int, style string) string {
	return fmt.Sprintf(`You are an expert travel budget estimator.

Estimate realistic travel costs for this trip in USD:
- Destination: %s
- Duration: %d days
- Travelers: %d
- Travel style: %s

Provide per-person total costs for the entire trip duration for each category.
Base your estimates on current real-world prices for %s.
Be specific and realistic — not overly conservative or inflated.

Return a JSON object with cost estimates and brief notes for each category.`,
		destination, duration, travelers, style, destination)
}

// estimateSchema is the JSON schema Ollama enforces on estimation output:
// per-category {amount, notes} objects plus total, currency and summary.
// Shopping and other are requested but optional.
func estimateSchema() map[string]any {
	categoryShape := func() map[string]any {
		return map[string]any{
			"type": "object",
			"properties": map[string]any{
				"amount": map[string]any{"type": "number"},
				"notes":  map[string]any{"type": "string"},
			},
			"required": []string{"amount", "notes"},
		}
	}

	properties := map[string]any{
		"total":    map[string]any{"type": "number"},
		"currency": map[string]any{"type": "string"},
		"summary":  map[string]any{"type": "string"},
	}
	for _, cat := range models.ExpenseCategories {
		properties[string(cat)] = categoryShape()
	}

	return map[string]any{
		"type":       "object",
		"properties": properties,
		"required": []string{
			string(models.CategoryAccommodation),
			string(models.CategoryFood),
			string(models.CategoryTransport),
			string(models.CategoryActivities),
			"total", "currency", "summary",
		},
	}
}

func (s *BudgetService) getTrip(ctx context.Context, tripID uuid.UUID) (*models.Trip, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}
	return trip, nil
}

func (s *BudgetService) summaryFor(ctx context.Context, trip *models.Trip) (*dto.BudgetSummary, error) {
	expenses, err := s.expenses.ListByTrip(ctx, trip.ID)
	if err != nil {
		return nil, err
	}
	summary := ComputeSummary(trip, expenses)
	return &summary, nil
}

func (s *BudgetService) mutationResponse(ctx context.Context, trip *models.Trip, expense *models.Expense) (*dto.ExpenseMutationResponse, error) {
	summary, err := s.summaryFor(ctx, trip)
	if err != nil {
		return nil, err
	}
	return &dto.ExpenseMutationResponse{
		Expense: expenseToResponse(expense),
		Summary: *summary,
	}, nil
}

func expenseToResponse(e *models.Expense) dto.ExpenseResponse {
	return dto.ExpenseResponse{
		ID:          e.ID.String(),
		TripID:      e.TripID.String(),
		Category:    string(e.Category),
		Description: e.Description,
		Amount:      e.Amount,
		Currency:    e.Currency,
		Date:        e.Date,
		Notes:       e.Notes,
		CreatedAt:   e.CreatedAt.Format(time.RFC3339),
		Icon:        e.Category.Icon(),
	}
}
