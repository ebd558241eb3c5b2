package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"wanderplan/internal/dto"
	"wanderplan/internal/models"
	"wanderplan/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeTripStore keeps trips in memory and counts budget writes.
type fakeTripStore struct {
	trips         map[uuid.UUID]*models.Trip
	budgetUpdates int
}

func newFakeTripStore(trips ...*models.Trip) *fakeTripStore {
	s := &fakeTripStore{trips: make(map[uuid.UUID]*models.Trip)}
	for _, t := range trips {
		s.trips[t.ID] = t
	}
	return s
}

func (s *fakeTripStore) GetByID(_ context.Context, id uuid.UUID) (*models.Trip, error) {
	trip, ok := s.trips[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *trip
	return &copied, nil
}

func (s *fakeTripStore) UpdateBudget(_ context.Context, trip *models.Trip) error {
	if _, ok := s.trips[trip.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := *trip
	s.trips[trip.ID] = &copied
	s.budgetUpdates++
	return nil
}

type fakeExpenseStore struct {
	expenses map[uuid.UUID]*models.Expense
}

func newFakeExpenseStore(expenses ...*models.Expense) *fakeExpenseStore {
	s := &fakeExpenseStore{expenses: make(map[uuid.UUID]*models.Expense)}
	for _, e := range expenses {
		s.expenses[e.ID] = e
	}
	return s
}

func (s *fakeExpenseStore) Create(_ context.Context, expense *models.Expense) error {
	copied := *expense
	s.expenses[expense.ID] = &copied
	return nil
}

func (s *fakeExpenseStore) GetByID(_ context.Context, id, tripID uuid.UUID) (*models.Expense, error) {
	e, ok := s.expenses[id]
	if !ok || e.TripID != tripID {
		return nil, repository.ErrNotFound
	}
	copied := *e
	return &copied, nil
}

func (s *fakeExpenseStore) ListByTrip(_ context.Context, tripID uuid.UUID) ([]*models.Expense, error) {
	var out []*models.Expense
	for _, e := range s.expenses {
		if e.TripID == tripID {
			copied := *e
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *fakeExpenseStore) Update(_ context.Context, expense *models.Expense) error {
	existing, ok := s.expenses[expense.ID]
	if !ok || existing.TripID != expense.TripID {
		return repository.ErrNotFound
	}
	copied := *expense
	s.expenses[expense.ID] = &copied
	return nil
}

func (s *fakeExpenseStore) Delete(_ context.Context, id, tripID uuid.UUID) error {
	e, ok := s.expenses[id]
	if !ok || e.TripID != tripID {
		return repository.ErrNotFound
	}
	delete(s.expenses, id)
	return nil
}

// fakeGenerator returns a canned raw payload or an error.
type fakeGenerator struct {
	raw    string
	err    error
	prompt string
}

func (g *fakeGenerator) GenerateStructured(_ context.Context, prompt, _ string, _ map[string]any) (*GenerateResult, error) {
	g.prompt = prompt
	if g.err != nil {
		return nil, g.err
	}
	return &GenerateResult{Raw: json.RawMessage(g.raw)}, nil
}

func newTestBudgetService(trips *fakeTripStore, expenses *fakeExpenseStore, gen *fakeGenerator) *BudgetService {
	if gen == nil {
		gen = &fakeGenerator{raw: `{}`}
	}
	return NewBudgetService(trips, expenses, gen, zap.NewNop())
}

func makeTrip(budget *float64) *models.Trip {
	return &models.Trip{
		ID:             uuid.New(),
		Title:          "Test Trip",
		Destination:    "Lisbon, Portugal",
		BudgetTotal:    budget,
		BudgetCurrency: "USD",
		CreatedAt:      time.Now().UTC(),
	}
}

func makeExpense(tripID uuid.UUID, category models.ExpenseCategory, amount float64) *models.Expense {
	return &models.Expense{
		ID:        uuid.New(),
		TripID:    tripID,
		Category:  category,
		Amount:    amount,
		Currency:  "USD",
		CreatedAt: time.Now().UTC(),
	}
}

func floatPtr(v float64) *float64 { return &v }

func categoryRow(t *testing.T, summary dto.BudgetSummary, cat models.ExpenseCategory) dto.CategoryBreakdown {
	t.Helper()
	for _, row := range summary.Categories {
		if row.Category == cat {
			return row
		}
	}
	t.Fatalf("category %s missing from summary", cat)
	return dto.CategoryBreakdown{}
}

func TestComputeSummaryWithBudget(t *testing.T) {
	trip := makeTrip(floatPtr(1000))
	expenses := []*models.Expense{
		makeExpense(trip.ID, models.CategoryFood, 150),
	}

	summary := ComputeSummary(trip, expenses)

	assert.Equal(t, 150.0, summary.TotalSpent)
	require.NotNil(t, summary.Remaining)
	assert.Equal(t, 850.0, *summary.Remaining)
	require.NotNil(t, summary.PctUsed)
	assert.Equal(t, 15.0, *summary.PctUsed)

	food := categoryRow(t, summary, models.CategoryFood)
	assert.Equal(t, 150.0, food.Spent)
	require.NotNil(t, food.PctOfBudget)
	assert.Equal(t, 15.0, *food.PctOfBudget)

	for _, cat := range models.ExpenseCategories {
		if cat == models.CategoryFood {
			continue
		}
		row := categoryRow(t, summary, cat)
		assert.Zero(t, row.Spent)
	}
}

func TestComputeSummaryAlwaysListsAllCategories(t *testing.T) {
	trip := makeTrip(nil)

	summary := ComputeSummary(trip, nil)

	require.Len(t, summary.Categories, len(models.ExpenseCategories))
	for i, cat := range models.ExpenseCategories {
		assert.Equal(t, cat, summary.Categories[i].Category)
		assert.NotEmpty(t, summary.Categories[i].Icon)
	}
}

func TestComputeSummaryNilRatiosWithoutBudget(t *testing.T) {
	for name, budget := range map[string]*float64{
		"nil budget":  nil,
		"zero budget": floatPtr(0),
	} {
		t.Run(name, func(t *testing.T) {
			trip := makeTrip(budget)
			expenses := []*models.Expense{
				makeExpense(trip.ID, models.CategoryTransport, 80),
			}

			summary := ComputeSummary(trip, expenses)

			assert.Nil(t, summary.PctUsed)
			assert.Nil(t, summary.Remaining)
			transport := categoryRow(t, summary, models.CategoryTransport)
			assert.Nil(t, transport.PctOfBudget)
			assert.Equal(t, 80.0, summary.TotalSpent)
		})
	}
}

func TestComputeSummaryNilPctOfEstimateWhenEstimateZero(t *testing.T) {
	trip := makeTrip(floatPtr(500))
	trip.BudgetEstimates = &models.BudgetEstimate{
		Food: &models.CategoryEstimate{Amount: 0},
	}
	expenses := []*models.Expense{
		makeExpense(trip.ID, models.CategoryFood, 40),
	}

	summary := ComputeSummary(trip, expenses)

	food := categoryRow(t, summary, models.CategoryFood)
	assert.Nil(t, food.PctOfEstimate)
}

func TestComputeSummaryPctOfEstimate(t *testing.T) {
	trip := makeTrip(floatPtr(500))
	trip.BudgetEstimates = &models.BudgetEstimate{
		Food: &models.CategoryEstimate{Amount: 200},
	}
	expenses := []*models.Expense{
		makeExpense(trip.ID, models.CategoryFood, 50),
	}

	summary := ComputeSummary(trip, expenses)

	food := categoryRow(t, summary, models.CategoryFood)
	assert.Equal(t, 200.0, food.Estimated)
	require.NotNil(t, food.PctOfEstimate)
	assert.Equal(t, 25.0, *food.PctOfEstimate)
}

func TestComputeSummaryIsIdempotent(t *testing.T) {
	trip := makeTrip(floatPtr(1200))
	expenses := []*models.Expense{
		makeExpense(trip.ID, models.CategoryFood, 33.33),
		makeExpense(trip.ID, models.CategoryShopping, 120.5),
	}

	first := ComputeSummary(trip, expenses)
	second := ComputeSummary(trip, expenses)

	assert.Equal(t, first, second)
}

func TestComputeSummaryCategorySpendSumsToTotal(t *testing.T) {
	trip := makeTrip(floatPtr(1000))
	expenses := []*models.Expense{
		makeExpense(trip.ID, models.CategoryFood, 10.10),
		makeExpense(trip.ID, models.CategoryFood, 20.20),
		makeExpense(trip.ID, models.CategoryTransport, 30.05),
		makeExpense(trip.ID, models.CategoryOther, 5.55),
	}

	summary := ComputeSummary(trip, expenses)

	var sum float64
	for _, row := range summary.Categories {
		sum += row.Spent
	}
	assert.InDelta(t, summary.TotalSpent, sum, 0.001)
}

func TestAddExpenseRejectsUnknownCategory(t *testing.T) {
	trip := makeTrip(floatPtr(1000))
	trips := newFakeTripStore(trip)
	expenses := newFakeExpenseStore()
	svc := newTestBudgetService(trips, expenses, nil)

	_, err := svc.AddExpense(context.Background(), trip.ID, dto.CreateExpenseRequest{
		Category: "flights",
		Amount:   200,
	})

	require.ErrorIs(t, err, ErrInvalidCategory)
	assert.Empty(t, expenses.expenses)
}

func TestAddExpenseDefaultsCurrencyFromTrip(t *testing.T) {
	trip := makeTrip(floatPtr(1000))
	trip.BudgetCurrency = "EUR"
	trips := newFakeTripStore(trip)
	expenses := newFakeExpenseStore()
	svc := newTestBudgetService(trips, expenses, nil)

	resp, err := svc.AddExpense(context.Background(), trip.ID, dto.CreateExpenseRequest{
		Category: "food",
		Amount:   25,
		Date:     "2026-05-01",
	})

	require.NoError(t, err)
	assert.Equal(t, "EUR", resp.Expense.Currency)
	assert.Equal(t, 25.0, resp.Summary.TotalSpent)
}

func TestAddExpenseUnknownTrip(t *testing.T) {
	svc := newTestBudgetService(newFakeTripStore(), newFakeExpenseStore(), nil)

	_, err := svc.AddExpense(context.Background(), uuid.New(), dto.CreateExpenseRequest{
		Category: "food",
		Amount:   10,
	})

	require.ErrorIs(t, err, ErrTripNotFound)
}

func TestUpdateExpensePartial(t *testing.T) {
	trip := makeTrip(floatPtr(1000))
	expense := makeExpense(trip.ID, models.CategoryFood, 40)
	expense.Description = "Dinner"
	trips := newFakeTripStore(trip)
	expenses := newFakeExpenseStore(expense)
	svc := newTestBudgetService(trips, expenses, nil)

	resp, err := svc.UpdateExpense(context.Background(), trip.ID, expense.ID, dto.UpdateExpenseRequest{
		Amount: floatPtr(55),
	})

	require.NoError(t, err)
	assert.Equal(t, 55.0, resp.Expense.Amount)
	assert.Equal(t, "Dinner", resp.Expense.Description)
	assert.Equal(t, "food", resp.Expense.Category)
}

func TestUpdateExpenseScopedToTrip(t *testing.T) {
	trip := makeTrip(floatPtr(1000))
	otherTrip := makeTrip(nil)
	expense := makeExpense(otherTrip.ID, models.CategoryFood, 40)
	trips := newFakeTripStore(trip, otherTrip)
	expenses := newFakeExpenseStore(expense)
	svc := newTestBudgetService(trips, expenses, nil)

	_, err := svc.UpdateExpense(context.Background(), trip.ID, expense.ID, dto.UpdateExpenseRequest{
		Amount: floatPtr(55),
	})

	require.ErrorIs(t, err, ErrExpenseNotFound)
}

func TestDeleteExpenseReturnsFreshSummary(t *testing.T) {
	trip := makeTrip(floatPtr(1000))
	expense := makeExpense(trip.ID, models.CategoryFood, 150)
	trips := newFakeTripStore(trip)
	expenses := newFakeExpenseStore(expense)
	svc := newTestBudgetService(trips, expenses, nil)

	resp, err := svc.DeleteExpense(context.Background(), trip.ID, expense.ID)

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Zero(t, resp.Summary.TotalSpent)
}

func TestUpdateSettingsCurrencyOnly(t *testing.T) {
	trip := makeTrip(floatPtr(1000))
	trips := newFakeTripStore(trip)
	svc := newTestBudgetService(trips, newFakeExpenseStore(), nil)

	currency := "eur"
	summary, err := svc.UpdateSettings(context.Background(), trip.ID, dto.BudgetSettingsRequest{
		BudgetCurrency: &currency,
	})

	require.NoError(t, err)
	assert.Equal(t, "EUR", summary.BudgetCurrency)
	require.NotNil(t, summary.BudgetTotal)
	assert.Equal(t, 1000.0, *summary.BudgetTotal)
}

func TestEstimateCostsStoresResult(t *testing.T) {
	trip := makeTrip(nil)
	trip.BudgetCurrency = ""
	trips := newFakeTripStore(trip)
	gen := &fakeGenerator{raw: `{
		"accommodation": {"amount": 700, "notes": "guesthouse"},
		"food": {"amount": 350, "notes": "local restaurants"},
		"transport": {"amount": 200, "notes": "metro and trains"},
		"activities": {"amount": 150, "notes": "museums"},
		"total": 1400,
		"currency": "USD",
		"summary": "A comfortable week."
	}`}
	svc := newTestBudgetService(trips, newFakeExpenseStore(), gen)

	resp, err := svc.EstimateCosts(context.Background(), trip.ID, dto.EstimateRequest{})

	require.NoError(t, err)
	assert.Equal(t, 1400.0, resp.Estimates.Total)

	stored := trips.trips[trip.ID]
	require.NotNil(t, stored.BudgetEstimates)
	assert.Equal(t, 700.0, stored.BudgetEstimates.CategoryAmount(models.CategoryAccommodation))
	// Currency and total were unset, so both are adopted from the estimate.
	assert.Equal(t, "USD", stored.BudgetCurrency)
	require.NotNil(t, stored.BudgetTotal)
	assert.Equal(t, 1400.0, *stored.BudgetTotal)
}

func TestEstimateCostsKeepsUserBudget(t *testing.T) {
	trip := makeTrip(floatPtr(2500))
	trips := newFakeTripStore(trip)
	gen := &fakeGenerator{raw: `{
		"accommodation": {"amount": 700, "notes": ""},
		"food": {"amount": 350, "notes": ""},
		"transport": {"amount": 200, "notes": ""},
		"activities": {"amount": 150, "notes": ""},
		"total": 1400,
		"currency": "EUR",
		"summary": ""
	}`}
	svc := newTestBudgetService(trips, newFakeExpenseStore(), gen)

	_, err := svc.EstimateCosts(context.Background(), trip.ID, dto.EstimateRequest{})

	require.NoError(t, err)
	stored := trips.trips[trip.ID]
	require.NotNil(t, stored.BudgetTotal)
	assert.Equal(t, 2500.0, *stored.BudgetTotal)
	assert.Equal(t, "USD", stored.BudgetCurrency)
}

func TestEstimateCostsUnparsableResponse(t *testing.T) {
	for name, raw := range map[string]string{
		"plain text":  `I think it will cost around $2000.`,
		"json string": `"just a string"`,
		"json array":  `[1, 2, 3]`,
	} {
		t.Run(name, func(t *testing.T) {
			trip := makeTrip(nil)
			trips := newFakeTripStore(trip)
			svc := newTestBudgetService(trips, newFakeExpenseStore(), &fakeGenerator{raw: raw})

			_, err := svc.EstimateCosts(context.Background(), trip.ID, dto.EstimateRequest{})

			require.ErrorIs(t, err, ErrEstimateUnparsable)
			assert.Zero(t, trips.budgetUpdates)
			assert.Nil(t, trips.trips[trip.ID].BudgetEstimates)
		})
	}
}

func TestEstimateCostsGatewayError(t *testing.T) {
	trip := makeTrip(nil)
	trips := newFakeTripStore(trip)
	svc := newTestBudgetService(trips, newFakeExpenseStore(), &fakeGenerator{err: ErrOllamaUnavailable})

	_, err := svc.EstimateCosts(context.Background(), trip.ID, dto.EstimateRequest{})

	require.ErrorIs(t, err, ErrOllamaUnavailable)
	assert.Zero(t, trips.budgetUpdates)
}

func TestEstimateCostsPromptDefaults(t *testing.T) {
	trip := makeTrip(nil)
	trips := newFakeTripStore(trip)
	gen := &fakeGenerator{raw: `{"total": 100, "currency": "USD", "summary": ""}`}
	svc := newTestBudgetService(trips, newFakeExpenseStore(), gen)

	_, err := svc.EstimateCosts(context.Background(), trip.ID, dto.EstimateRequest{})

	require.NoError(t, err)
	assert.Contains(t, gen.prompt, "Duration: 7 days")
	assert.Contains(t, gen.prompt, "Travelers: 1")
	assert.Contains(t, gen.prompt, "Travel style: mid-range")
	assert.Contains(t, gen.prompt, trip.Destination)
}

func TestResolveDuration(t *testing.T) {
	explicit := 10

	cases := []struct {
		name     string
		start    string
		end      string
		explicit *int
		want     int
	}{
		{"explicit wins", "2026-05-01", "2026-05-04", &explicit, 10},
		{"date range", "2026-05-01", "2026-05-08", nil, 7},
		{"same day clamped", "2026-05-01", "2026-05-01", nil, 1},
		{"inverted clamped", "2026-05-08", "2026-05-01", nil, 1},
		{"no dates", "", "", nil, 7},
		{"unparseable dates", "next monday", "friday", nil, 7},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			trip := makeTrip(nil)
			trip.StartDate = tc.start
			trip.EndDate = tc.end
			assert.Equal(t, tc.want, resolveDuration(trip, tc.explicit))
		})
	}
}

func TestGetBudgetUnknownTrip(t *testing.T) {
	svc := newTestBudgetService(newFakeTripStore(), newFakeExpenseStore(), nil)

	_, err := svc.GetBudget(context.Background(), uuid.New())

	require.ErrorIs(t, err, ErrTripNotFound)
}

func TestEstimateSchemaShape(t *testing.T) {
	schema := estimateSchema()

	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	for _, cat := range models.ExpenseCategories {
		assert.Contains(t, props, string(cat))
	}
	assert.Contains(t, props, "total")

	required, ok := schema["required"].([]string)
	require.True(t, ok)
	assert.Contains(t, required, "accommodation")
	assert.NotContains(t, required, "shopping")
	assert.NotContains(t, required, "other")
}
