package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// tokenValidator validates a bearer token and returns the user ID
type tokenValidator interface {
	ValidateToken(tokenString string) (int, error)
}

// AuthMiddleware creates middleware for JWT authentication
func AuthMiddleware(auth tokenValidator, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		userID, err := auth.ValidateToken(tokenString)
		if err != nil {
			logger.Debug("token validation failed", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves the user ID when a valid token is present
// and proceeds anonymously otherwise. Routes behind it answer anonymous
// callers with empty results instead of 401s.
func OptionalAuthMiddleware(auth tokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString, ok := bearerToken(c); ok {
			if userID, err := auth.ValidateToken(tokenString); err == nil {
				c.Set("userID", userID)
			}
		}
		c.Next()
	}
}

// ServiceAuthMiddleware guards internal endpoints with a shared service key
func ServiceAuthMiddleware(serviceKey string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("X-Service-Key")
		if serviceKey == "" || key != serviceKey {
			logger.Warn("service key rejected", zap.String("client_ip", c.ClientIP()))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid service key"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// UserID extracts the authenticated user ID from the request context,
// returning 0 for anonymous callers
func UserID(c *gin.Context) int {
	if v, exists := c.Get("userID"); exists {
		if id, ok := v.(int); ok {
			return id
		}
	}
	return 0
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	headerParts := strings.Split(authHeader, " ")
	if len(headerParts) != 2 || headerParts[0] != "Bearer" {
		return "", false
	}

	return headerParts[1], true
}
