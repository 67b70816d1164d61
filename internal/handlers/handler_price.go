package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/treeledger/treeledger/internal/apperrors"
	portssvc "github.com/treeledger/treeledger/internal/core/ports/services"
	"github.com/treeledger/treeledger/internal/dto"
	"github.com/treeledger/treeledger/internal/middleware"
)

// priceHandler handles HTTP requests related to currency prices.
type priceHandler struct {
	priceService portssvc.PriceSvcFacade
}

// newPriceHandler creates a new priceHandler.
func newPriceHandler(ps portssvc.PriceSvcFacade) *priceHandler {
	return &priceHandler{
		priceService: ps,
	}
}

// registerPriceRoutes registers routes related to currency prices.
func registerPriceRoutes(rg *gin.RouterGroup, priceService portssvc.PriceSvcFacade) {
	h := newPriceHandler(priceService)

	prices := rg.Group("/prices")
	{
		prices.POST("", h.createPrice)
		prices.GET("/:code", h.listPrices)
	}
}

// createPrice records the unit value of a currency in the base currency on a date.
func (h *priceHandler) createPrice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createPrice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("currency_code", req.CurrencyCode))
	logger.Info("Received request to create price", slog.String("date", req.Date.Format("2006-01-02")))

	price, err := h.priceService.CreatePrice(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Currency not found for price")
			c.JSON(http.StatusNotFound, gin.H{"error": "Currency not found"})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Price already recorded for currency and date")
			c.JSON(http.StatusConflict, gin.H{"error": "Price already exists for this currency and date"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating price", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create price in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create price"})
		}
		return
	}

	logger.Info("Price created successfully", slog.String("price_id", price.PriceID))
	c.JSON(http.StatusCreated, dto.ToPriceResponse(price))
}

// listPrices retrieves the price history of a currency ordered by date.
func (h *priceHandler) listPrices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	currencyCode := c.Param("code")

	logger = logger.With(slog.String("currency_code", currencyCode))
	logger.Info("Received request to list prices")

	prices, err := h.priceService.ListPrices(c.Request.Context(), currencyCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list prices from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list prices"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPriceResponses(prices))
}
