package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	sharedError "github.com/samcomo/dbz-api-server/internal/shared/error"
	"github.com/samcomo/dbz-api-server/internal/shared/logger"
)

// Timeout attaches a deadline to the request context. Database calls and
// object storage uploads observe it through ctx; when the chain returns after
// the deadline without writing a response, a 504 is sent.
func Timeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return
		}

		logger.FromContext(ctx).Warn("요청 처리 시간 초과",
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"timeout", timeout.String(),
			"written", c.Writer.Written(),
		)

		if !c.Writer.Written() {
			c.AbortWithStatusJSON(sharedError.RequestTimeout.Status, sharedError.RequestTimeout)
		}
	}
}
