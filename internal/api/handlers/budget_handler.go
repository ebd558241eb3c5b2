package handlers

import (
	"wanderplan/internal/dto"
	"wanderplan/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BudgetHandler struct {
	budgetService *service.BudgetService
	logger        *zap.Logger
}

func NewBudgetHandler(budgetService *service.BudgetService, logger *zap.Logger) *BudgetHandler {
	return &BudgetHandler{
		budgetService: budgetService,
		logger:        logger,
	}
}

// GetBudget godoc
// @Summary Get the budget overview for a trip
// @Description Returns the aggregated budget summary and the full expense list
// @Tags budget
// @Produce json
// @Param tripID path string true "Trip ID"
// @Success 200 {object} dto.BudgetResponse
// @Failure 404 {object} map[string]string
// @Router /api/budget/{tripID} [get]
func (h *BudgetHandler) GetBudget(c *fiber.Ctx) error {
	tripID, err := uuid.Parse(c.Params("tripID"))
	if err != nil {
		return badRequest(c, "Invalid trip ID")
	}

	resp, err := h.budgetService.GetBudget(c.Context(), tripID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(resp)
}

// UpdateSettings godoc
// @Summary Update budget settings
// @Description Partially updates the trip's total budget and currency
// @Tags budget
// @Accept json
// @Produce json
// @Param tripID path string true "Trip ID"
// @Param request body dto.BudgetSettingsRequest true "Budget settings"
// @Success 200 {object} dto.BudgetSummary
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/budget/{tripID}/settings [patch]
func (h *BudgetHandler) UpdateSettings(c *fiber.Ctx) error {
	tripID, err := uuid.Parse(c.Params("tripID"))
	if err != nil {
		return badRequest(c, "Invalid trip ID")
	}

	var req dto.BudgetSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	summary, err := h.budgetService.UpdateSettings(c.Context(), tripID, req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(summary)
}

// EstimateCosts godoc
// @Summary Generate an AI cost estimate
// @Description Asks the local LLM for per-category cost estimates and stores them on the trip
// @Tags budget
// @Accept json
// @Produce json
// @Param tripID path string true "Trip ID"
// @Param request body dto.EstimateRequest true "Estimate parameters"
// @Success 200 {object} dto.EstimateResponse
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/budget/{tripID}/estimate [post]
func (h *BudgetHandler) EstimateCosts(c *fiber.Ctx) error {
	tripID, err := uuid.Parse(c.Params("tripID"))
	if err != nil {
		return badRequest(c, "Invalid trip ID")
	}

	var req dto.EstimateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.budgetService.EstimateCosts(c.Context(), tripID, req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(resp)
}

// AddExpense godoc
// @Summary Add an expense to a trip
// @Tags budget
// @Accept json
// @Produce json
// @Param tripID path string true "Trip ID"
// @Param request body dto.CreateExpenseRequest true "Expense"
// @Success 201 {object} dto.ExpenseMutationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/budget/{tripID}/expenses [post]
func (h *BudgetHandler) AddExpense(c *fiber.Ctx) error {
	tripID, err := uuid.Parse(c.Params("tripID"))
	if err != nil {
		return badRequest(c, "Invalid trip ID")
	}

	var req dto.CreateExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.budgetService.AddExpense(c.Context(), tripID, req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// UpdateExpense godoc
// @Summary Update an expense
// @Tags budget
// @Accept json
// @Produce json
// @Param tripID path string true "Trip ID"
// @Param expenseID path string true "Expense ID"
// @Param request body dto.UpdateExpenseRequest true "Fields to update"
// @Success 200 {object} dto.ExpenseMutationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/budget/{tripID}/expenses/{expenseID} [put]
func (h *BudgetHandler) UpdateExpense(c *fiber.Ctx) error {
	tripID, err := uuid.Parse(c.Params("tripID"))
	if err != nil {
		return badRequest(c, "Invalid trip ID")
	}
	expenseID, err := uuid.Parse(c.Params("expenseID"))
	if err != nil {
		return badRequest(c, "Invalid expense ID")
	}

	var req dto.UpdateExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.budgetService.UpdateExpense(c.Context(), tripID, expenseID, req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(resp)
}

// DeleteExpense godoc
// @Summary Delete an expense
// @Tags budget
// @Produce json
// @Param tripID path string true "Trip ID"
// @Param expenseID path string true "Expense ID"
// @Success 200 {object} dto.DeleteExpenseResponse
// @Failure 404 {object} map[string]string
// @Router /api/budget/{tripID}/expenses/{expenseID} [delete]
func (h *BudgetHandler) DeleteExpense(c *fiber.Ctx) error {
	tripID, err := uuid.Parse(c.Params("tripID"))
	if err != nil {
		return badRequest(c, "Invalid trip ID")
	}
	expenseID, err := uuid.Parse(c.Params("expenseID"))
	if err != nil {
		return badRequest(c, "Invalid expense ID")
	}

	resp, err := h.budgetService.DeleteExpense(c.Context(), tripID, expenseID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(resp)
}
