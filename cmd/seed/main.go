package main

import (
	"context"
	"log"
	"time"

	"wanderplan/internal/models"
	"wanderplan/internal/repository"
	"wanderplan/pkg/config"
	"wanderplan/pkg/logger"
	"wanderplan/pkg/postgres"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	// Connect to database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db, appLogger); err != nil {
		appLogger.Fatal("Failed to run schema migration", zap.Error(err))
	}

	tripRepo := repository.NewTripRepository(db, appLogger)
	expenseRepo := repository.NewExpenseRepository(db, appLogger)
	itineraryRepo := repository.NewItineraryRepository(db, appLogger)

	appLogger.Info("Starting database seeding...")

	trip, err := seedTrip(ctx, tripRepo)
	if err != nil {
		appLogger.Fatal("Failed to seed trip", zap.Error(err))
	}

	if err := seedExpenses(ctx, expenseRepo, trip); err != nil {
		appLogger.Fatal("Failed to seed expenses", zap.Error(err))
	}

	if err := seedItinerary(ctx, itineraryRepo, trip); err != nil {
		appLogger.Fatal("Failed to seed itinerary", zap.Error(err))
	}

	appLogger.Info("Database seeding completed successfully!",
		zap.String("trip_id", trip.ID.String()))
}

func seedTrip(ctx context.Context, trips *repository.TripRepository) (*models.Trip, error) {
	lat, lon := 35.0116, 135.7681
	budget := 3000.0
	trip := &models.Trip{
		ID:             uuid.New(),
		Title:          "Autumn in Kyoto",
		Destination:    "Kyoto, Japan",
		StartDate:      "2026-10-12",
		EndDate:        "2026-10-19",
		Description:    "A week of temples, gardens, and kaiseki dinners.",
		Lat:            &lat,
		Lon:            &lon,
		BudgetTotal:    &budget,
		BudgetCurrency: "USD",
		CreatedAt:      time.Now().UTC(),
	}
	if err := trips.Create(ctx, trip); err != nil {
		return nil, err
	}
	return trip, nil
}

func seedExpenses(ctx context.Context, expenses *repository.ExpenseRepository, trip *models.Trip) error {
	samples := []struct {
		category    models.ExpenseCategory
		description string
		amount      float64
		date        string
	}{
		{models.CategoryAccommodation, "Ryokan near Gion, 3 nights", 540, "2026-10-12"},
		{models.CategoryTransport, "JR pass and airport express", 310, "2026-10-12"},
		{models.CategoryFood, "Nishiki market food crawl", 62.5, "2026-10-13"},
		{models.CategoryActivities, "Fushimi Inari guided walk", 45, "2026-10-14"},
		{models.CategoryShopping, "Tea and ceramics", 88, "2026-10-15"},
	}

	for _, s := range samples {
		expense := &models.Expense{
			ID:          uuid.New(),
			TripID:      trip.ID,
			Category:    s.category,
			Description: s.description,
			Amount:      s.amount,
			Currency:    trip.BudgetCurrency,
			Date:        s.date,
			CreatedAt:   time.Now().UTC(),
		}
		if err := expenses.Create(ctx, expense); err != nil {
			return err
		}
	}
	return nil
}

func seedItinerary(ctx context.Context, days *repository.ItineraryRepository, trip *models.Trip) error {
	day := &models.ItineraryDay{
		ID:        uuid.New(),
		TripID:    trip.ID,
		DayNumber: 1,
		Date:      trip.StartDate,
		Activities: []models.Activity{
			{
				Time:        "09:00",
				Title:       "Kinkaku-ji",
				Description: "Golden Pavilion and surrounding gardens",
				Location:    "1 Kinkakujicho, Kita Ward",
				Type:        "activity",
			},
			{
				Time:        "13:00",
				Title:       "Lunch at Nishiki Market",
				Description: "Street food stalls and local snacks",
				Location:    "Nishiki Market",
				Type:        "food",
			},
		},
	}
	return days.Create(ctx, day)
}
