package handler

import (
	"net/http"
	"strings"

	"github.com/yourorg/stock-tracker/internal/service"
	"github.com/yourorg/stock-tracker/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewsHandler handles market news requests
type NewsHandler struct {
	newsService *service.NewsService
	logger      *zap.Logger
}

// NewNewsHandler creates a new news handler
func NewNewsHandler(newsService *service.NewsService, logger *zap.Logger) *NewsHandler {
	return &NewsHandler{
		newsService: newsService,
		logger:      logger,
	}
}

// GetNews returns deduplicated news. With a symbols query parameter it
// round-robins company news; without one it serves general market news.
// GET /api/v1/news?symbols=AAPL,TSLA
func (h *NewsHandler) GetNews(c *gin.Context) {
	var symbols []string
	if raw := c.Query("symbols"); raw != "" {
		symbols = strings.Split(raw, ",")
	}

	articles, err := h.newsService.GetNews(c.Request.Context(), symbols)
	if err != nil {
		h.logger.Error("failed to get news", zap.Strings("symbols", symbols), zap.Error(err))
		utils.SendErrorResponse(c, http.StatusBadGateway, "Failed to fetch news")
		return
	}

	c.JSON(http.StatusOK, articles)
}
