package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/liu-tentor/exam-archive-api/internal/middleware"
	"github.com/liu-tentor/exam-archive-api/internal/models"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// clientIDFrom resolves the caller identity for the per-client stores.
func clientIDFrom(c *gin.Context) string {
	if id := middleware.ClientIDValue(c); id != "" {
		return id
	}
	return c.GetHeader(middleware.ClientIDHeader)
}
