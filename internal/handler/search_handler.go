package handler

import (
	"net/http"

	"github.com/yourorg/stock-tracker/internal/middleware"
	"github.com/yourorg/stock-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SearchHandler handles stock search requests
type SearchHandler struct {
	searchService *service.SearchService
	logger        *zap.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searchService *service.SearchService, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		logger:        logger,
	}
}

// Search returns stocks matching the query with watchlist annotations. The
// service degrades failures to an empty list, so this always answers 200.
// GET /api/v1/search?q=apple
func (h *SearchHandler) Search(c *gin.Context) {
	userID := middleware.UserID(c)
	query := c.Query("q")

	stocks := h.searchService.Search(c.Request.Context(), userID, query)
	c.JSON(http.StatusOK, stocks)
}
