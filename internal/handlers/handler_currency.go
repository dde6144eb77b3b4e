package handlers

import (
	"net/http"

	"github.com/Aquaier/Savoo/internal/core/domain"
	portssvc "github.com/Aquaier/Savoo/internal/core/ports/services"
	"github.com/Aquaier/Savoo/internal/dto"
	"github.com/Aquaier/Savoo/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// currencyHandler exposes the rate table and one-off conversions.
type currencyHandler struct {
	currencyService portssvc.CurrencySvcFacade
}

func newCurrencyHandler(cs portssvc.CurrencySvcFacade) *currencyHandler {
	return &currencyHandler{currencyService: cs}
}

// registerCurrencyRoutes registers routes related to currencies.
func registerCurrencyRoutes(rg *gin.RouterGroup, currencyService portssvc.CurrencySvcFacade) {
	h := newCurrencyHandler(currencyService)

	currencies := rg.Group("/currencies")
	{
		currencies.GET("/rates", h.listRates)
		currencies.POST("/rates/refresh", h.refreshRates)
		currencies.GET("/convert", h.convert)
	}
}

// listRates godoc
// @Summary List exchange rates
// @Description Returns base units per one unit of each currency. refresh=true forces a fetch from the rate source.
// @Tags currencies
// @Produce json
// @Param refresh query bool false "Force a refresh first"
// @Success 200 {object} dto.ListRatesResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /currencies/rates [get]
func (h *currencyHandler) listRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListRatesParams
	if !bindQuery(c, logger, &params) {
		return
	}

	rates, err := h.currencyService.ListRates(c.Request.Context(), params.Refresh)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list exchange rates")
		return
	}
	c.JSON(http.StatusOK, dto.ToListRatesResponse(h.currencyService.BaseCurrency(), rates))
}

// refreshRates godoc
// @Summary Refresh exchange rates
// @Description Fetches the rate table from the source, falling back to the local cache
// @Tags currencies
// @Produce json
// @Success 200 {object} dto.ListRatesResponse
// @Security BearerAuth
// @Router /currencies/rates/refresh [post]
func (h *currencyHandler) refreshRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rates, err := h.currencyService.ListRates(c.Request.Context(), true)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list exchange rates")
		return
	}
	c.JSON(http.StatusOK, dto.ToListRatesResponse(h.currencyService.BaseCurrency(), rates))
}

// convert godoc
// @Summary Convert an amount
// @Description Converts through the base currency using the latest known rates
// @Tags currencies
// @Produce json
// @Param amount query string true "Amount"
// @Param from query string true "Source currency"
// @Param to query string true "Target currency"
// @Success 200 {object} dto.ConvertResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /currencies/convert [get]
func (h *currencyHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ConvertParams
	if !bindQuery(c, logger, &params) {
		return
	}

	amount, err := decimal.NewFromString(params.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "amount must be a number"})
		return
	}
	from := domain.NormalizeCurrencyCode(params.From, "")
	to := domain.NormalizeCurrencyCode(params.To, "")

	converted, err := h.currencyService.Convert(c.Request.Context(), amount, from, to)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to convert amount")
		return
	}
	c.JSON(http.StatusOK, dto.ConvertResponse{Amount: amount, From: from, To: to, ConvertedAmount: converted})
}
