package handler

import (
	"errors"
	"net/http"

	"github.com/yourorg/stock-tracker/internal/middleware"
	"github.com/yourorg/stock-tracker/internal/service"
	"github.com/yourorg/stock-tracker/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StockHandler handles stock details requests
type StockHandler struct {
	stockService *service.StockService
	logger       *zap.Logger
}

// NewStockHandler creates a new stock handler
func NewStockHandler(stockService *service.StockService, logger *zap.Logger) *StockHandler {
	return &StockHandler{
		stockService: stockService,
		logger:       logger,
	}
}

// Details returns profile, quote and watchlist status for a symbol
// GET /api/v1/stocks/:symbol
func (h *StockHandler) Details(c *gin.Context) {
	userID := middleware.UserID(c)
	symbol := c.Param("symbol")

	details, err := h.stockService.GetDetails(c.Request.Context(), userID, symbol)
	if err != nil {
		if errors.Is(err, service.ErrUnknownSymbol) {
			utils.SendErrorResponse(c, http.StatusNotFound, "Stock not found")
			return
		}
		h.logger.Error("failed to get stock details", zap.String("symbol", symbol), zap.Error(err))
		utils.SendErrorResponse(c, http.StatusBadGateway, "Failed to load stock details")
		return
	}

	c.JSON(http.StatusOK, details)
}
