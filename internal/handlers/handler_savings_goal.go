package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/Aquaier/Savoo/internal/core/ports/services"
	"github.com/Aquaier/Savoo/internal/dto"
	"github.com/Aquaier/Savoo/internal/middleware"
	"github.com/gin-gonic/gin"
)

// savingsGoalHandler handles HTTP requests related to savings goals and their contributions.
type savingsGoalHandler struct {
	goalService portssvc.SavingsGoalSvcFacade
}

func newSavingsGoalHandler(gs portssvc.SavingsGoalSvcFacade) *savingsGoalHandler {
	return &savingsGoalHandler{goalService: gs}
}

// registerSavingsGoalRoutes registers routes related to savings goals.
func registerSavingsGoalRoutes(rg *gin.RouterGroup, goalService portssvc.SavingsGoalSvcFacade) {
	h := newSavingsGoalHandler(goalService)

	goals := rg.Group("/savings-goals")
	{
		goals.POST("", h.createGoal)
		goals.GET("", h.listGoals)
		goals.GET("/:id", h.getGoal)
		goals.PATCH("/:id", h.updateGoal)
		goals.DELETE("/:id", h.deleteGoal)

		goals.GET("/:id/contributions", h.listContributions)
		goals.POST("/:id/contributions", h.addContribution)
		goals.PUT("/:id/contributions/:contributionID", h.updateContribution)
		goals.DELETE("/:id/contributions/:contributionID", h.deleteContribution)
	}
}

func (h *savingsGoalHandler) respondWithProgress(c *gin.Context, status int, userID, goalID, currency string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	progress, err := h.goalService.GetGoal(c.Request.Context(), userID, goalID, currency)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve savings goal")
		return
	}
	c.JSON(status, dto.ToSavingsGoalResponse(progress))
}

// createGoal godoc
// @Summary Create a savings goal
// @Description An opening amount is recorded as the first contribution
// @Tags savings-goals
// @Accept json
// @Produce json
// @Param goal body dto.CreateSavingsGoalRequest true "Goal details"
// @Success 201 {object} dto.SavingsGoalResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /savings-goals [post]
func (h *savingsGoalHandler) createGoal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.CreateSavingsGoalRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	goal, err := h.goalService.CreateGoal(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create savings goal")
		return
	}
	logger.Info("Savings goal created", slog.String("goal_id", goal.GoalID))
	h.respondWithProgress(c, http.StatusCreated, userID, goal.GoalID, req.Currency)
}

// listGoals godoc
// @Summary List savings goals with progress
// @Tags savings-goals
// @Produce json
// @Param currency query string false "Display currency"
// @Success 200 {array} dto.SavingsGoalResponse
// @Security BearerAuth
// @Router /savings-goals [get]
func (h *savingsGoalHandler) listGoals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var params dto.DisplayParams
	if !bindQuery(c, logger, &params) {
		return
	}

	progress, err := h.goalService.ListGoals(c.Request.Context(), userID, params.Currency)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list savings goals")
		return
	}
	c.JSON(http.StatusOK, dto.ToListSavingsGoalResponse(progress))
}

// getGoal godoc
// @Summary Get a savings goal with progress
// @Tags savings-goals
// @Produce json
// @Param id path string true "Goal ID"
// @Param currency query string false "Display currency"
// @Success 200 {object} dto.SavingsGoalResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /savings-goals/{id} [get]
func (h *savingsGoalHandler) getGoal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var params dto.DisplayParams
	if !bindQuery(c, logger, &params) {
		return
	}
	h.respondWithProgress(c, http.StatusOK, userID, c.Param("id"), params.Currency)
}

// updateGoal godoc
// @Summary Update a savings goal
// @Tags savings-goals
// @Accept json
// @Produce json
// @Param id path string true "Goal ID"
// @Param goal body dto.UpdateSavingsGoalRequest true "Fields to change"
// @Success 200 {object} dto.SavingsGoalResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /savings-goals/{id} [patch]
func (h *savingsGoalHandler) updateGoal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.UpdateSavingsGoalRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	goal, err := h.goalService.UpdateGoal(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update savings goal")
		return
	}
	h.respondWithProgress(c, http.StatusOK, userID, goal.GoalID, req.Currency)
}

// deleteGoal godoc
// @Summary Delete a savings goal
// @Tags savings-goals
// @Param id path string true "Goal ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /savings-goals/{id} [delete]
func (h *savingsGoalHandler) deleteGoal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.goalService.DeleteGoal(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondServiceError(c, logger, err, "Failed to delete savings goal")
		return
	}
	c.Status(http.StatusNoContent)
}

// listContributions godoc
// @Summary List contributions to a goal
// @Tags savings-goals
// @Produce json
// @Param id path string true "Goal ID"
// @Success 200 {array} dto.ContributionResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /savings-goals/{id}/contributions [get]
func (h *savingsGoalHandler) listContributions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	contributions, err := h.goalService.ListContributions(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list contributions")
		return
	}
	c.JSON(http.StatusOK, dto.ToListContributionResponse(contributions))
}

// addContribution godoc
// @Summary Contribute to a goal
// @Tags savings-goals
// @Accept json
// @Produce json
// @Param id path string true "Goal ID"
// @Param contribution body dto.ContributionRequest true "Contribution"
// @Success 201 {object} dto.ContributionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /savings-goals/{id}/contributions [post]
func (h *savingsGoalHandler) addContribution(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.ContributionRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	contribution, err := h.goalService.AddContribution(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to add contribution")
		return
	}
	c.JSON(http.StatusCreated, dto.ToContributionResponse(contribution))
}

// updateContribution godoc
// @Summary Change a contribution
// @Description The goal total moves by the difference and never drops below zero
// @Tags savings-goals
// @Accept json
// @Produce json
// @Param id path string true "Goal ID"
// @Param contributionID path string true "Contribution ID"
// @Param contribution body dto.ContributionRequest true "Contribution"
// @Success 200 {object} dto.ContributionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /savings-goals/{id}/contributions/{contributionID} [put]
func (h *savingsGoalHandler) updateContribution(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.ContributionRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	contribution, err := h.goalService.UpdateContribution(c.Request.Context(), userID, c.Param("id"), c.Param("contributionID"), req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update contribution")
		return
	}
	c.JSON(http.StatusOK, dto.ToContributionResponse(contribution))
}

// deleteContribution godoc
// @Summary Remove a contribution
// @Tags savings-goals
// @Param id path string true "Goal ID"
// @Param contributionID path string true "Contribution ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /savings-goals/{id}/contributions/{contributionID} [delete]
func (h *savingsGoalHandler) deleteContribution(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.goalService.DeleteContribution(c.Request.Context(), userID, c.Param("id"), c.Param("contributionID")); err != nil {
		respondServiceError(c, logger, err, "Failed to delete contribution")
		return
	}
	c.Status(http.StatusNoContent)
}
