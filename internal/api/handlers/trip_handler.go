package handlers

import (
	"wanderplan/internal/dto"
	"wanderplan/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TripHandler struct {
	tripService *service.TripService
	logger      *zap.Logger
}

func NewTripHandler(tripService *service.TripService, logger *zap.Logger) *TripHandler {
	return &TripHandler{
		tripService: tripService,
		logger:      logger,
	}
}

// CreateTrip godoc
// @Summary Create a trip
// @Description Creates a trip and geocodes its destination when possible
// @Tags trips
// @Accept json
// @Produce json
// @Param request body dto.CreateTripRequest true "Trip"
// @Success 201 {object} dto.TripResponse
// @Failure 400 {object} map[string]string
// @Router /api/trips [post]
func (h *TripHandler) CreateTrip(c *fiber.Ctx) error {
	var req dto.CreateTripRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Title == "" || req.Destination == "" {
		return badRequest(c, "Title and destination are required")
	}

	resp, err := h.tripService.Create(c.Context(), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListTrips godoc
// @Summary List all trips
// @Tags trips
// @Produce json
// @Success 200 {array} dto.TripResponse
// @Router /api/trips [get]
func (h *TripHandler) ListTrips(c *fiber.Ctx) error {
	resp, err := h.tripService.List(c.Context())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(resp)
}

// GetTrip godoc
// @Summary Get a trip by ID
// @Tags trips
// @Produce json
// @Param tripID path string true "Trip ID"
// @Success 200 {object} dto.TripResponse
// @Failure 404 {object} map[string]string
// @Router /api/trips/{tripID} [get]
func (h *TripHandler) GetTrip(c *fiber.Ctx) error {
	tripID, err := uuid.Parse(c.Params("tripID"))
	if err != nil {
		return badRequest(c, "Invalid trip ID")
	}

	resp, err := h.tripService.Get(c.Context(), tripID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(resp)
}

// UpdateTrip godoc
// @Summary Update a trip
// @Description Partially updates the trip's descriptive fields
// @Tags trips
// @Accept json
// @Produce json
// @Param tripID path string true "Trip ID"
// @Param request body dto.UpdateTripRequest true "Fields to update"
// @Success 200 {object} dto.TripResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/trips/{tripID} [put]
func (h *TripHandler) UpdateTrip(c *fiber.Ctx) error {
	tripID, err := uuid.Parse(c.Params("tripID"))
	if err != nil {
		return badRequest(c, "Invalid trip ID")
	}

	var req dto.UpdateTripRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.tripService.Update(c.Context(), tripID, req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(resp)
}

// DeleteTrip godoc
// @Summary Delete a trip
// @Description Deletes a trip along with its expenses, itinerary days, and chat history
// @Tags trips
// @Produce json
// @Param tripID path string true "Trip ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} map[string]string
// @Router /api/trips/{tripID} [delete]
func (h *TripHandler) DeleteTrip(c *fiber.Ctx) error {
	tripID, err := uuid.Parse(c.Params("tripID"))
	if err != nil {
		return badRequest(c, "Invalid trip ID")
	}

	if err := h.tripService.Delete(c.Context(), tripID); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}
