package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/Aquaier/Savoo/internal/core/ports/services"
	"github.com/Aquaier/Savoo/internal/dto"
	"github.com/Aquaier/Savoo/internal/middleware"
	"github.com/gin-gonic/gin"
)

// recurringHandler handles HTTP requests related to recurring transactions.
type recurringHandler struct {
	recurringService portssvc.RecurringSvcFacade
}

func newRecurringHandler(rs portssvc.RecurringSvcFacade) *recurringHandler {
	return &recurringHandler{recurringService: rs}
}

// registerRecurringRoutes registers routes related to recurring transactions.
func registerRecurringRoutes(rg *gin.RouterGroup, recurringService portssvc.RecurringSvcFacade) {
	h := newRecurringHandler(recurringService)

	recurring := rg.Group("/recurring-transactions")
	{
		recurring.POST("", h.createRecurring)
		recurring.GET("", h.listRecurring)
		recurring.POST("/materialize", h.materialize)
		recurring.GET("/:id", h.getRecurring)
		recurring.PATCH("/:id", h.updateRecurring)
		recurring.DELETE("/:id", h.deleteRecurring)
	}
}

// createRecurring godoc
// @Summary Schedule a recurring transaction
// @Tags recurring
// @Accept json
// @Produce json
// @Param recurring body dto.CreateRecurringRequest true "Schedule"
// @Success 201 {object} dto.RecurringResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /recurring-transactions [post]
func (h *recurringHandler) createRecurring(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.CreateRecurringRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	rec, err := h.recurringService.CreateRecurring(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create recurring transaction")
		return
	}
	logger.Info("Recurring transaction created", slog.String("recurring_id", rec.RecurringID))
	c.JSON(http.StatusCreated, dto.ToRecurringResponse(rec))
}

// listRecurring godoc
// @Summary List recurring transactions
// @Tags recurring
// @Produce json
// @Success 200 {array} dto.RecurringResponse
// @Security BearerAuth
// @Router /recurring-transactions [get]
func (h *recurringHandler) listRecurring(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	recs, err := h.recurringService.ListRecurring(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list recurring transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ToListRecurringResponse(recs))
}

// materialize godoc
// @Summary Generate due recurring transactions
// @Description Inserts every occurrence that is due today or earlier
// @Tags recurring
// @Produce json
// @Success 200 {object} map[string]int
// @Security BearerAuth
// @Router /recurring-transactions/materialize [post]
func (h *recurringHandler) materialize(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	created, err := h.recurringService.Materialize(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to generate recurring transactions")
		return
	}
	c.JSON(http.StatusOK, gin.H{"created": created})
}

// getRecurring godoc
// @Summary Get a recurring transaction
// @Tags recurring
// @Produce json
// @Param id path string true "Recurring transaction ID"
// @Success 200 {object} dto.RecurringResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /recurring-transactions/{id} [get]
func (h *recurringHandler) getRecurring(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	rec, err := h.recurringService.GetRecurring(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve recurring transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToRecurringResponse(rec))
}

// updateRecurring godoc
// @Summary Update a recurring transaction
// @Tags recurring
// @Accept json
// @Produce json
// @Param id path string true "Recurring transaction ID"
// @Param recurring body dto.UpdateRecurringRequest true "Fields to change"
// @Success 200 {object} dto.RecurringResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /recurring-transactions/{id} [patch]
func (h *recurringHandler) updateRecurring(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.UpdateRecurringRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	rec, err := h.recurringService.UpdateRecurring(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update recurring transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToRecurringResponse(rec))
}

// deleteRecurring godoc
// @Summary Delete a recurring transaction
// @Tags recurring
// @Param id path string true "Recurring transaction ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /recurring-transactions/{id} [delete]
func (h *recurringHandler) deleteRecurring(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.recurringService.DeleteRecurring(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondServiceError(c, logger, err, "Failed to delete recurring transaction")
		return
	}
	c.Status(http.StatusNoContent)
}
