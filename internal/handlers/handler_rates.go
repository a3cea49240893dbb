package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dongle-dev/dongle_backend/internal/apperrors"
	"github.com/dongle-dev/dongle_backend/internal/core/domain"
	portssvc "github.com/dongle-dev/dongle_backend/internal/core/ports/services"
	"github.com/dongle-dev/dongle_backend/internal/dto"
	"github.com/dongle-dev/dongle_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// rateHandler handles HTTP requests related to exchange rates.
type rateHandler struct {
	rateService portssvc.RateSvcFacade
	converter   portssvc.ConverterSvc
}

// newRateHandler creates a new rateHandler.
func newRateHandler(rs portssvc.RateSvcFacade, converter portssvc.ConverterSvc) *rateHandler {
	return &rateHandler{
		rateService: rs,
		converter:   converter,
	}
}

// registerRateRoutes registers routes related to exchange rates.
func registerRateRoutes(rg *gin.RouterGroup, rateService portssvc.RateSvcFacade, converter portssvc.ConverterSvc) {
	h := newRateHandler(rateService, converter)

	rates := rg.Group("/rates")
	{
		rates.GET("", h.listRates)
		rates.GET("/convert", h.convert)
		rates.GET("/:currency", h.getRate)
	}
}

// listRates godoc
// @Summary List exchange rates
// @Description Returns every stored KRW-anchored exchange rate
// @Tags rates
// @Produce  json
// @Success 200 {array} dto.ExchangeRateResponse
// @Failure 500 {object} map[string]string "Failed to list exchange rates"
// @Security BearerAuth
// @Router /rates [get]
func (h *rateHandler) listRates(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	rates, err := h.rateService.ListRates(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list exchange rates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list exchange rates"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListExchangeRateResponse(rates))
}

// getRate godoc
// @Summary Get one exchange rate
// @Description Returns the stored rate for a single target currency
// @Tags rates
// @Produce  json
// @Param   currency path string true "Target currency code (3 letters)" MinLength(3) MaxLength(3)
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Unsupported currency code"
// @Failure 404 {object} map[string]string "No rate on record"
// @Failure 500 {object} map[string]string "Failed to retrieve exchange rate"
// @Security BearerAuth
// @Router /rates/{currency} [get]
func (h *rateHandler) getRate(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	currency := c.Param("currency")

	rate, err := h.rateService.GetRate(c.Request.Context(), currency)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No rate on record for " + currency})
		} else {
			logger.Error("Failed to get exchange rate", slog.String("currency", currency), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve exchange rate"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// convert godoc
// @Summary Convert an amount between currencies
// @Description Converts an amount between KRW and a supported foreign currency, chaining through KRW for foreign pairs
// @Tags rates
// @Produce  json
// @Param   from   query string true "Source currency code"
// @Param   to     query string true "Target currency code"
// @Param   amount query string true "Decimal amount to convert"
// @Success 200 {object} dto.ConvertResultResponse
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Failure 404 {object} map[string]string "No rate on record"
// @Failure 500 {object} map[string]string "Failed to convert"
// @Security BearerAuth
// @Router /rates/convert [get]
func (h *rateHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	from := domain.NormalizeCurrencyCode(c.Query("from"))
	to := domain.NormalizeCurrencyCode(c.Query("to"))
	amount, err := decimal.NewFromString(c.Query("amount"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount: " + c.Query("amount")})
		return
	}
	if !from.IsSupported() || !to.IsSupported() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported currency code"})
		return
	}

	converted, err := h.converter.Convert(c.Request.Context(), amount, from, to)
	if err != nil {
		if errors.Is(err, apperrors.ErrRateUnavailable) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to convert amount", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to convert"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ConvertResultResponse{
		FromCurrency: from.String(),
		ToCurrency:   to.String(),
		Amount:       amount.StringFixed(2),
		Converted:    converted.StringFixed(2),
	})
}
