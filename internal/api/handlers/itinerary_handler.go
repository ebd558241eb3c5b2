package handlers

import (
	"wanderplan/internal/dto"
	"wanderplan/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ItineraryHandler struct {
	itineraryService *service.ItineraryService
	logger           *zap.Logger
}

func NewItineraryHandler(itineraryService *service.ItineraryService, logger *zap.Logger) *ItineraryHandler {
	return &ItineraryHandler{
		itineraryService: itineraryService,
		logger:           logger,
	}
}

// ListDays godoc
// @Summary List itinerary days for a trip
// @Tags itinerary
// @Produce json
// @Param tripID path string true "Trip ID"
// @Success 200 {array} dto.DayResponse
// @Failure 404 {object} map[string]string
// @Router /api/itinerary/{tripID} [get]
func (h *ItineraryHandler) ListDays(c *fiber.Ctx) error {
	tripID, err := uuid.Parse(c.Params("tripID"))
	if err != nil {
		return badRequest(c, "Invalid trip ID")
	}

	resp, err := h.itineraryService.List(c.Context(), tripID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(resp)
}

// AddDay godoc
// @Summary Add an itinerary day
// @Tags itinerary
// @Accept json
// @Produce json
// @Param tripID path string true "Trip ID"
// @Param request body dto.DayRequest true "Day"
// @Success 201 {object} dto.DayResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/itinerary/{tripID}/days [post]
func (h *ItineraryHandler) AddDay(c *fiber.Ctx) error {
	tripID, err := uuid.Parse(c.Params("tripID"))
	if err != nil {
		return badRequest(c, "Invalid trip ID")
	}

	var req dto.DayRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.itineraryService.AddDay(c.Context(), tripID, req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// UpdateDay godoc
// @Summary Update an itinerary day
// @Tags itinerary
// @Accept json
// @Produce json
// @Param tripID path string true "Trip ID"
// @Param dayID path string true "Day ID"
// @Param request body dto.DayRequest true "Day"
// @Success 200 {object} dto.DayResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/itinerary/{tripID}/days/{dayID} [put]
func (h *ItineraryHandler) UpdateDay(c *fiber.Ctx) error {
	tripID, err := uuid.Parse(c.Params("tripID"))
	if err != nil {
		return badRequest(c, "Invalid trip ID")
	}
	dayID, err := uuid.Parse(c.Params("dayID"))
	if err != nil {
		return badRequest(c, "Invalid day ID")
	}

	var req dto.DayRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.itineraryService.UpdateDay(c.Context(), tripID, dayID, req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(resp)
}

// DeleteDay godoc
// @Summary Delete an itinerary day
// @Tags itinerary
// @Produce json
// @Param tripID path string true "Trip ID"
// @Param dayID path string true "Day ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} map[string]string
// @Router /api/itinerary/{tripID}/days/{dayID} [delete]
func (h *ItineraryHandler) DeleteDay(c *fiber.Ctx) error {
	tripID, err := uuid.Parse(c.Params("tripID"))
	if err != nil {
		return badRequest(c, "Invalid trip ID")
	}
	dayID, err := uuid.Parse(c.Params("dayID"))
	if err != nil {
		return badRequest(c, "Invalid day ID")
	}

	if err := h.itineraryService.DeleteDay(c.Context(), tripID, dayID); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}
