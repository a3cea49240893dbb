package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dongle-dev/dongle_backend/internal/apperrors"
	portssvc "github.com/dongle-dev/dongle_backend/internal/core/ports/services"
	"github.com/dongle-dev/dongle_backend/internal/dto"
	"github.com/dongle-dev/dongle_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ledgerHandler handles HTTP requests for ledger entries and their views.
// The summary endpoints also read the budget service for the dispatch total
// and the living-budget diff.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
	budgetService portssvc.BudgetSvcFacade
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(ls portssvc.LedgerSvcFacade, bs portssvc.BudgetSvcFacade) *ledgerHandler {
	return &ledgerHandler{
		ledgerService: ls,
		budgetService: bs,
	}
}

// RegisterLedgerRoutes registers routes related to the ledger. Exported so
// handler tests can mount the group on a bare router.
func RegisterLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, budgetService portssvc.BudgetSvcFacade) {
	h := newLedgerHandler(ledgerService, budgetService)

	ledger := rg.Group("/ledger")
	{
		ledger.POST("", h.createEntry)
		ledger.GET("/by-date", h.listByDate)
		ledger.GET("/by-category", h.listByCategory)
		ledger.GET("/this-month", h.thisMonthSummary)
		ledger.GET("/summary", h.livingExpenseSummary)
		ledger.GET("/dashboard", h.monthlyDashboard)
		ledger.PUT("/:entryID", h.updateEntry)
		ledger.DELETE("/:entryID", h.deleteEntry)
	}
}

// createEntry godoc
// @Summary Record a ledger entry
// @Description Records an income or expense entry and freezes its cross-currency conversion at today's rate
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateLedgerEntryRequest true "Entry details"
// @Success 201 {object} dto.LedgerEntryResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create entry"
// @Security BearerAuth
// @Router /ledger [post]
func (h *ledgerHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.CreateLedgerEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.ledgerService.CreateEntry(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating ledger entry", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create ledger entry", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create entry"})
		}
		return
	}

	logger.Info("Ledger entry created", slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusCreated, dto.ToLedgerEntryResponse(entry))
}

// updateEntry godoc
// @Summary Update a ledger entry
// @Description Partially updates an entry; changing the amount or currency refreezes the conversion
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Param   entry body dto.UpdateLedgerEntryRequest true "Fields to update"
// @Success 200 {object} dto.LedgerEntryResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Entry belongs to another user"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to update entry"
// @Security BearerAuth
// @Router /ledger/{entryID} [put]
func (h *ledgerHandler) updateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	entryID := c.Param("entryID")

	var req dto.UpdateLedgerEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.ledgerService.UpdateEntry(c.Request.Context(), userID, entryID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Entry belongs to another user"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		default:
			logger.Error("Failed to update ledger entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update entry"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToLedgerEntryResponse(entry))
}

// deleteEntry godoc
// @Summary Delete a ledger entry
// @Tags ledger
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Success 204 "Deleted"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Entry belongs to another user"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to delete entry"
// @Security BearerAuth
// @Router /ledger/{entryID} [delete]
func (h *ledgerHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	entryID := c.Param("entryID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.ledgerService.DeleteEntry(c.Request.Context(), userID, entryID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Entry belongs to another user"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		default:
			logger.Error("Failed to delete ledger entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete entry"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// listByDate godoc
// @Summary List entries grouped by month and day
// @Tags ledger
// @Produce  json
// @Success 200 {array} dto.MonthBlockResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list entries"
// @Security BearerAuth
// @Router /ledger/by-date [get]
func (h *ledgerHandler) listByDate(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	months, err := h.ledgerService.ListByDate(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list ledger entries by date", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list entries"})
		return
	}

	c.JSON(http.StatusOK, dto.ToMonthBlockResponses(months))
}

// listByCategory godoc
// @Summary List entries grouped by month and category
// @Tags ledger
// @Produce  json
// @Success 200 {array} dto.MonthCategoryBlockResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list entries"
// @Security BearerAuth
// @Router /ledger/by-category [get]
func (h *ledgerHandler) listByCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	months, err := h.ledgerService.ListByCategory(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list ledger entries by category", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list entries"})
		return
	}

	c.JSON(http.StatusOK, dto.ToMonthCategoryBlockResponses(months))
}

// thisMonthSummary godoc
// @Summary Current month income and expense totals
// @Description Totals this month's income and expenses in KRW and the exchange-country currency
// @Tags ledger
// @Produce  json
// @Success 200 {object} dto.ThisMonthSummaryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to summarize"
// @Security BearerAuth
// @Router /ledger/this-month [get]
func (h *ledgerHandler) thisMonthSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	totals, err := h.ledgerService.ThisMonthSummary(c.Request.Context(), userID, time.Now())
	if err != nil {
		logger.Error("Failed to summarize this month", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to summarize"})
		return
	}

	c.JSON(http.StatusOK, dto.ToThisMonthSummaryResponse(totals))
}

// livingExpenseSummary godoc
// @Summary Living expense summary
// @Description Aggregates all living-category expenses per category with monthly averages and the dispatch total
// @Tags ledger
// @Produce  json
// @Success 200 {object} dto.LedgerSummaryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to summarize"
// @Security BearerAuth
// @Router /ledger/summary [get]
func (h *ledgerHandler) livingExpenseSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	summary, err := h.ledgerService.LivingExpenseSummary(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to build living expense summary", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to summarize"})
		return
	}

	c.JSON(http.StatusOK, dto.ToLedgerSummaryResponse(summary, h.dispatchTotal(c, userID)))
}

// monthlyDashboard godoc
// @Summary Current month dashboard
// @Description This month's living expenses per category, the gap against the living budget, and the dispatch total
// @Tags ledger
// @Produce  json
// @Success 200 {object} dto.MonthlyDashboardResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to build dashboard"
// @Security BearerAuth
// @Router /ledger/dashboard [get]
func (h *ledgerHandler) monthlyDashboard(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	dashboard, err := h.ledgerService.MonthDashboard(c.Request.Context(), userID, time.Now())
	if err != nil {
		logger.Error("Failed to build monthly dashboard", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dashboard"})
		return
	}

	livingBudget := decimal.Zero
	if budget, err := h.budgetService.GetLivingBudget(c.Request.Context(), userID); err == nil {
		livingBudget = budget.TotalAmount
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to load living budget for dashboard", slog.String("error", err.Error()))
	}

	c.JSON(http.StatusOK, dto.ToMonthlyDashboardResponse(dashboard, livingBudget, h.dispatchTotal(c, userID)))
}

// dispatchTotal reads the user's dispatch budget total in KRW, zero when no
// budget was saved yet.
func (h *ledgerHandler) dispatchTotal(c *gin.Context, userID string) decimal.Decimal {
	budget, err := h.budgetService.GetDispatchBudget(c.Request.Context(), userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromContext(c).Error("Failed to load dispatch budget", slog.String("error", err.Error()))
		}
		return decimal.Zero
	}
	return budget.TotalKRW()
}
