package handlers

import (
	"strconv"

	"wanderplan/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type PlacesHandler struct {
	placesService *service.PlacesService
	logger        *zap.Logger
}

func NewPlacesHandler(placesService *service.PlacesService, logger *zap.Logger) *PlacesHandler {
	return &PlacesHandler{
		placesService: placesService,
		logger:        logger,
	}
}

// Geocode godoc
// @Summary Geocode a place name
// @Description Resolves a free-form place name to coordinates via OpenStreetMap
// @Tags places
// @Produce json
// @Param q query string true "Place name"
// @Success 200 {object} dto.GeocodeResponse
// @Failure 404 {object} map[string]string
// @Router /api/places/geocode [get]
func (h *PlacesHandler) Geocode(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return badRequest(c, "Query parameter q is required")
	}

	resp, err := h.placesService.Geocode(c.Context(), query)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if resp == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Location not found",
		})
	}
	return c.JSON(resp)
}

// Nearby godoc
// @Summary Find nearby points of interest
// @Description Queries OpenStreetMap for named places around a coordinate
// @Tags places
// @Produce json
// @Param lat query number true "Latitude"
// @Param lon query number true "Longitude"
// @Param category query string false "Category: tourism, food, hotel, nature, or shopping"
// @Param radius query int false "Search radius in meters (default 3000)"
// @Success 200 {array} dto.PlaceResponse
// @Failure 400 {object} map[string]string
// @Router /api/places/nearby [get]
func (h *PlacesHandler) Nearby(c *fiber.Ctx) error {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		return badRequest(c, "Invalid lat")
	}
	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil {
		return badRequest(c, "Invalid lon")
	}
	category := c.Query("category", "tourism")
	radius := c.QueryInt("radius", 3000)

	resp, err := h.placesService.Nearby(c.Context(), lat, lon, category, radius)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(resp)
}

// Search godoc
// @Summary Get a destination overview
// @Description Geocodes a destination and gathers its attractions, restaurants, and hotels
// @Tags places
// @Produce json
// @Param destination query string true "Destination name"
// @Success 200 {object} dto.DestinationInfoResponse
// @Failure 404 {object} map[string]string
// @Router /api/places/search [get]
func (h *PlacesHandler) Search(c *fiber.Ctx) error {
	destination := c.Query("destination")
	if destination == "" {
		return badRequest(c, "Query parameter destination is required")
	}

	resp, err := h.placesService.DestinationInfo(c.Context(), destination)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(resp)
}
