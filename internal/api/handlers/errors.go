package handlers

import (
	"errors"

	"wanderplan/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// statusFor maps the service error taxonomy onto HTTP statuses:
// 404 not found, 400 invalid input, 422 unparseable AI estimate,
// 502 gateway failure.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrTripNotFound),
		errors.Is(err, service.ErrExpenseNotFound),
		errors.Is(err, service.ErrDayNotFound),
		errors.Is(err, service.ErrDestinationNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrInvalidCategory):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrEstimateUnparsable):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, service.ErrOllamaUnavailable):
		return fiber.StatusBadGateway
	}
	return fiber.StatusInternalServerError
}

func respondError(c *fiber.Ctx, logger *zap.Logger, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		logger.Error("Request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.Status(status).JSON(fiber.Map{"error": "Internal server error"})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}
