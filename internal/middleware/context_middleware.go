package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-dailyreport/internal/shared/contextutil"
)

// ContextLogger attaches a request-scoped logger carrying the request
// id and the acting employee on the standard context so services and
// repositories stay gin-free. Services read it back through
// contextutil.GetLogger.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetString("request_id")
		if rid == "" {
			rid = uuid.New().String()
		}

		actor := c.GetString(ContextEmployeeCode)

		reqLogger := logger.With(
			zap.String("request_id", rid),
			zap.String("actor", actor),
		)

		ctx := c.Request.Context()
		ctx = contextutil.WithRequestID(ctx, rid)
		ctx = contextutil.WithLogger(ctx, reqLogger)

		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
