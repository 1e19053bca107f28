package handler

import (
	"net/http"

	"github.com/yourorg/stock-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DigestHandler exposes the digest run for service-to-service triggering.
// The scheduler covers the daily case; this endpoint exists for operational
// reruns and testing.
type DigestHandler struct {
	digestService *service.DigestService
	logger        *zap.Logger
}

// NewDigestHandler creates a new digest handler
func NewDigestHandler(digestService *service.DigestService, logger *zap.Logger) *DigestHandler {
	return &DigestHandler{
		digestService: digestService,
		logger:        logger,
	}
}

// Run triggers one digest cycle synchronously
// POST /api/v1/service/digest/run
func (h *DigestHandler) Run(c *gin.Context) {
	result := h.digestService.Run(c.Request.Context())

	h.logger.Info("digest run triggered via API",
		zap.Bool("success", result.Success),
		zap.String("message", result.Message))

	c.JSON(http.StatusOK, result)
}
