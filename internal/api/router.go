package api

import (
	"wanderplan/docs"
	"wanderplan/internal/api/handlers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func SetupRouter(
	tripHandler *handlers.TripHandler,
	budgetHandler *handlers.BudgetHandler,
	itineraryHandler *handlers.ItineraryHandler,
	chatHandler *handlers.ChatHandler,
	placesHandler *handlers.PlacesHandler,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))
	app.Use(logger.New())

	// Swagger docs are registered through the docs package init()
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "message": "WanderPlan API is running"})
	})

	trips := api.Group("/trips")
	trips.Post("", tripHandler.CreateTrip)
	trips.Get("", tripHandler.ListTrips)
	trips.Get("/:tripID", tripHandler.GetTrip)
	trips.Put("/:tripID", tripHandler.UpdateTrip)
	trips.Delete("/:tripID", tripHandler.DeleteTrip)

	budget := api.Group("/budget/:tripID")
	budget.Get("", budgetHandler.GetBudget)
	budget.Patch("/settings", budgetHandler.UpdateSettings)
	budget.Post("/estimate", budgetHandler.EstimateCosts)
	budget.Post("/expenses", budgetHandler.AddExpense)
	budget.Put("/expenses/:expenseID", budgetHandler.UpdateExpense)
	budget.Delete("/expenses/:expenseID", budgetHandler.DeleteExpense)

	itinerary := api.Group("/itinerary/:tripID")
	itinerary.Get("", itineraryHandler.ListDays)
	itinerary.Post("/days", itineraryHandler.AddDay)
	itinerary.Put("/days/:dayID", itineraryHandler.UpdateDay)
	itinerary.Delete("/days/:dayID", itineraryHandler.DeleteDay)

	chat := api.Group("/chat")
	chat.Post("/stream", chatHandler.StreamChat)
	chat.Post("/generate", chatHandler.Generate)
	chat.Get("/history/:tripID", chatHandler.History)
	chat.Get("/status", chatHandler.Status)

	places := api.Group("/places")
	places.Get("/search", placesHandler.Search)
	places.Get("/geocode", placesHandler.Geocode)
	places.Get("/nearby", placesHandler.Nearby)

	return app
}
