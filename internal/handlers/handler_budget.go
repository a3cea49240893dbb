package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dongle-dev/dongle_backend/internal/apperrors"
	portssvc "github.com/dongle-dev/dongle_backend/internal/core/ports/services"
	"github.com/dongle-dev/dongle_backend/internal/dto"
	"github.com/dongle-dev/dongle_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// budgetHandler handles HTTP requests for the dispatch and living budgets.
type budgetHandler struct {
	budgetService portssvc.BudgetSvcFacade
}

// newBudgetHandler creates a new budgetHandler.
func newBudgetHandler(bs portssvc.BudgetSvcFacade) *budgetHandler {
	return &budgetHandler{
		budgetService: bs,
	}
}

// registerBudgetRoutes registers routes related to budgets.
func registerBudgetRoutes(rg *gin.RouterGroup, budgetService portssvc.BudgetSvcFacade) {
	h := newBudgetHandler(budgetService)

	budget := rg.Group("/budget")
	{
		budget.PUT("/dispatch", h.saveDispatchBudget)
		budget.GET("/dispatch", h.getDispatchBudget)
		budget.PUT("/living", h.saveLivingBudget)
		budget.GET("/living", h.getLivingBudget)
		budget.GET("/projection", h.projection)
	}
}

// saveDispatchBudget godoc
// @Summary Save the dispatch budget
// @Description Replaces the one-time dispatch budget; exactly the four required item types must be present and KRW conversions are recomputed from today's rates
// @Tags budget
// @Accept  json
// @Produce  json
// @Param   budget body dto.SaveDispatchBudgetRequest true "Dispatch budget items"
// @Success 200 {object} dto.DispatchBudgetResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to save budget"
// @Security BearerAuth
// @Router /budget/dispatch [put]
func (h *budgetHandler) saveDispatchBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.SaveDispatchBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SaveDispatchBudget", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	budget, err := h.budgetService.SaveDispatchBudget(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error saving dispatch budget", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to save dispatch budget", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save budget"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToDispatchBudgetResponse(budget))
}

// getDispatchBudget godoc
// @Summary Get the dispatch budget
// @Tags budget
// @Produce  json
// @Success 200 {object} dto.DispatchBudgetResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "No dispatch budget saved"
// @Failure 500 {object} map[string]string "Failed to load budget"
// @Security BearerAuth
// @Router /budget/dispatch [get]
func (h *budgetHandler) getDispatchBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	budget, err := h.budgetService.GetDispatchBudget(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No dispatch budget saved"})
		} else {
			logger.Error("Failed to load dispatch budget", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load budget"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToDispatchBudgetResponse(budget))
}

// saveLivingBudget godoc
// @Summary Save the living budget
// @Description Replaces the monthly living budget; all amounts are KRW and items with a custom name land in the OTHER bucket
// @Tags budget
// @Accept  json
// @Produce  json
// @Param   budget body dto.SaveLivingBudgetRequest true "Living budget"
// @Success 200 {object} dto.LivingBudgetResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to save budget"
// @Security BearerAuth
// @Router /budget/living [put]
func (h *budgetHandler) saveLivingBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.SaveLivingBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SaveLivingBudget", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	budget, err := h.budgetService.SaveLivingBudget(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error saving living budget", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to save living budget", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save budget"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToLivingBudgetResponse(budget))
}

// getLivingBudget godoc
// @Summary Get the living budget
// @Tags budget
// @Produce  json
// @Success 200 {object} dto.LivingBudgetResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "No living budget saved"
// @Failure 500 {object} map[string]string "Failed to load budget"
// @Security BearerAuth
// @Router /budget/living [get]
func (h *budgetHandler) getLivingBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	budget, err := h.budgetService.GetLivingBudget(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No living budget saved"})
		} else {
			logger.Error("Failed to load living budget", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load budget"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToLivingBudgetResponse(budget))
}

// projection godoc
// @Summary Projected total exchange cost
// @Description Dispatch total plus monthly living budget times the exchange period's month count
// @Tags budget
// @Produce  json
// @Success 200 {object} dto.BudgetProjectionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to project"
// @Security BearerAuth
// @Router /budget/projection [get]
func (h *budgetHandler) projection(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	projection, err := h.budgetService.Projection(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to project budget", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to project"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBudgetProjectionResponse(projection))
}
