package middlewares

import (
	"strings"

	"bitbucket.org/mmdatafocus/daily_report_backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const CorrelationIdHeader = "x-correlation-id"

// CorrelationMiddleware reuses the caller's correlation id or mints one, and echoes it back.
func CorrelationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		correlationId := strings.TrimSpace(c.GetHeader(CorrelationIdHeader))
		if correlationId == "" || len(correlationId) > 128 {
			correlationId = uuid.NewString()
		}
		c.Header(CorrelationIdHeader, correlationId)
		c.Request = c.Request.WithContext(utils.SetCorrelationIdInContext(c.Request.Context(), correlationId))
		c.Next()
	}
}
