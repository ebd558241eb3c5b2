package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"wanderplan/internal/api"
	"wanderplan/internal/api/handlers"
	"wanderplan/internal/repository"
	"wanderplan/internal/service"
	"wanderplan/pkg/config"
	"wanderplan/pkg/logger"
	"wanderplan/pkg/postgres"

	"go.uber.org/zap"
)

// @title WanderPlan API
// @version 1.0
// @description Travel planning backend: trips, itineraries, budgets, AI cost estimates, and places lookup.

// @contact.name API Support

// @host localhost:8080
// @BasePath /

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting WanderPlan service")

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db, appLogger); err != nil {
		appLogger.Fatal("Failed to run schema migration", zap.Error(err))
	}

	// Initialize repositories
	tripRepo := repository.NewTripRepository(db, appLogger)
	expenseRepo := repository.NewExpenseRepository(db, appLogger)
	itineraryRepo := repository.NewItineraryRepository(db, appLogger)
	chatRepo := repository.NewChatRepository(db, appLogger)

	// Initialize services
	ollamaService := service.NewOllamaService(&cfg.Ollama, appLogger)
	placesService := service.NewPlacesService(&cfg.Places, appLogger)
	tripService := service.NewTripService(tripRepo, placesService, appLogger)
	itineraryService := service.NewItineraryService(tripRepo, itineraryRepo, appLogger)
	chatService := service.NewChatService(chatRepo, ollamaService, appLogger)
	budgetService := service.NewBudgetService(tripRepo, expenseRepo, ollamaService, appLogger)

	// Initialize handlers
	tripHandler := handlers.NewTripHandler(tripService, appLogger)
	budgetHandler := handlers.NewBudgetHandler(budgetService, appLogger)
	itineraryHandler := handlers.NewItineraryHandler(itineraryService, appLogger)
	chatHandler := handlers.NewChatHandler(chatService, appLogger)
	placesHandler := handlers.NewPlacesHandler(placesService, appLogger)

	// Setup router
	app := api.SetupRouter(tripHandler, budgetHandler, itineraryHandler, chatHandler, placesHandler, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
