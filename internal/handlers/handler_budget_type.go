package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/Aquaier/Savoo/internal/core/ports/services"
	"github.com/Aquaier/Savoo/internal/dto"
	"github.com/Aquaier/Savoo/internal/middleware"
	"github.com/gin-gonic/gin"
)

// budgetTypeHandler handles HTTP requests for the budget type catalogue.
type budgetTypeHandler struct {
	budgetTypeService portssvc.BudgetTypeSvcFacade
}

func newBudgetTypeHandler(bts portssvc.BudgetTypeSvcFacade) *budgetTypeHandler {
	return &budgetTypeHandler{budgetTypeService: bts}
}

// registerBudgetTypeRoutes registers routes related to budget types.
func registerBudgetTypeRoutes(rg *gin.RouterGroup, budgetTypeService portssvc.BudgetTypeSvcFacade) {
	h := newBudgetTypeHandler(budgetTypeService)

	budgetTypes := rg.Group("/budget-types")
	{
		budgetTypes.GET("", h.listBudgetTypes)
		budgetTypes.POST("", h.createBudgetType)
		budgetTypes.DELETE("/:id", h.deleteBudgetType)
	}
}

// listBudgetTypes godoc
// @Summary List budget types
// @Description Returns the user's budget types, newest first
// @Tags budget-types
// @Produce json
// @Success 200 {array} dto.BudgetTypeResponse
// @Security BearerAuth
// @Router /budget-types [get]
func (h *budgetTypeHandler) listBudgetTypes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	types, err := h.budgetTypeService.ListBudgetTypes(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list budget types")
		return
	}
	c.JSON(http.StatusOK, dto.ToListBudgetTypeResponse(types))
}

// createBudgetType godoc
// @Summary Create a budget type
// @Description Names are stored lower-cased and must be unique per user
// @Tags budget-types
// @Accept json
// @Produce json
// @Param budgetType body dto.CreateBudgetTypeRequest true "Budget type"
// @Success 201 {object} dto.BudgetTypeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Budget type already exists"
// @Security BearerAuth
// @Router /budget-types [post]
func (h *budgetTypeHandler) createBudgetType(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.CreateBudgetTypeRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	budgetType, err := h.budgetTypeService.CreateBudgetType(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create budget type")
		return
	}
	logger.Info("Budget type created", slog.String("budget_type_id", budgetType.BudgetTypeID))
	c.JSON(http.StatusCreated, dto.ToBudgetTypeResponse(budgetType))
}

// deleteBudgetType godoc
// @Summary Delete a budget type
// @Tags budget-types
// @Param id path string true "Budget type ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /budget-types/{id} [delete]
func (h *budgetTypeHandler) deleteBudgetType(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.budgetTypeService.DeleteBudgetType(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondServiceError(c, logger, err, "Failed to delete budget type")
		return
	}
	logger.Info("Budget type deleted", slog.String("budget_type_id", c.Param("id")))
	c.Status(http.StatusNoContent)
}
