package handler

import (
	"errors"
	"net/http"

	"github.com/yourorg/stock-tracker/internal/middleware"
	"github.com/yourorg/stock-tracker/internal/model"
	"github.com/yourorg/stock-tracker/internal/service"
	"github.com/yourorg/stock-tracker/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WatchlistHandler handles watchlist requests. Mutations answer with
// WatchlistActionResult so the UI can toast the outcome; anonymous callers
// get soft failures, never auth errors.
type WatchlistHandler struct {
	watchlistService *service.WatchlistService
	logger           *zap.Logger
}

// NewWatchlistHandler creates a new watchlist handler
func NewWatchlistHandler(watchlistService *service.WatchlistService, logger *zap.Logger) *WatchlistHandler {
	return &WatchlistHandler{
		watchlistService: watchlistService,
		logger:           logger,
	}
}

// List returns the caller's watchlist enriched with live quotes
// GET /api/v1/watchlist
func (h *WatchlistHandler) List(c *gin.Context) {
	userID := middleware.UserID(c)

	entries, err := h.watchlistService.GetWatchlist(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNoSession) {
			c.JSON(http.StatusOK, []model.EnrichedWatchlistEntry{})
			return
		}
		h.logger.Error("failed to get watchlist", zap.Int("userID", userID), zap.Error(err))
		utils.SendErrorResponse(c, http.StatusInternalServerError, "Failed to load watchlist")
		return
	}

	c.JSON(http.StatusOK, entries)
}

// Status reports whether a symbol is in the caller's watchlist
// GET /api/v1/watchlist/status/:symbol
func (h *WatchlistHandler) Status(c *gin.Context) {
	userID := middleware.UserID(c)
	symbol := c.Param("symbol")

	inWatchlist := h.watchlistService.IsInWatchlist(c.Request.Context(), userID, symbol)
	c.JSON(http.StatusOK, gin.H{"isInWatchlist": inWatchlist})
}

// Add puts a symbol on the caller's watchlist
// POST /api/v1/watchlist
func (h *WatchlistHandler) Add(c *gin.Context) {
	var request model.WatchlistAddRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	userID := middleware.UserID(c)
	err := h.watchlistService.Add(c.Request.Context(), userID, request.Symbol, request.Company)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, model.WatchlistActionResult{Success: true})
	case errors.Is(err, service.ErrNoSession):
		c.JSON(http.StatusOK, model.WatchlistActionResult{Success: false, Error: "Please sign in to manage your watchlist"})
	case errors.Is(err, service.ErrAlreadyInWatchlist):
		c.JSON(http.StatusOK, model.WatchlistActionResult{Success: false, Error: "Stock is already in your watchlist"})
	default:
		h.logger.Error("failed to add watchlist entry",
			zap.Int("userID", userID),
			zap.String("symbol", request.Symbol),
			zap.Error(err))
		c.JSON(http.StatusOK, model.WatchlistActionResult{Success: false, Error: "Failed to add stock to watchlist"})
	}
}

// Remove deletes a symbol from the caller's watchlist
// DELETE /api/v1/watchlist/:symbol
func (h *WatchlistHandler) Remove(c *gin.Context) {
	userID := middleware.UserID(c)
	symbol := c.Param("symbol")

	err := h.watchlistService.Remove(c.Request.Context(), userID, symbol)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, model.WatchlistActionResult{Success: true})
	case errors.Is(err, service.ErrNoSession):
		c.JSON(http.StatusOK, model.WatchlistActionResult{Success: false, Error: "Please sign in to manage your watchlist"})
	default:
		h.logger.Error("failed to remove watchlist entry",
			zap.Int("userID", userID),
			zap.String("symbol", symbol),
			zap.Error(err))
		c.JSON(http.StatusOK, model.WatchlistActionResult{Success: false, Error: "Failed to remove stock from watchlist"})
	}
}
