package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	sharedContext "github.com/samcomo/dbz-api-server/internal/shared/context"
	"github.com/samcomo/dbz-api-server/internal/shared/logger"
)

const healthPath = "/health"

// RequestLogger binds a request-scoped slog logger into the request context and
// writes one access log line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		// handlers/services/repositories pick it up with logger.FromContext
		reqLogger := slog.Default().With("request_id", GetRequestID(c))
		c.Request = c.Request.WithContext(logger.WithLogger(c.Request.Context(), reqLogger))

		c.Next()

		status := c.Writer.Status()
		fields := []any{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"latency", time.Since(start).String(),
			"ip", c.ClientIP(),
			"userAgent", c.Request.UserAgent(),
		}

		if raw != "" {
			fields = append(fields, "query", raw)
		}
		if memberID, ok := sharedContext.GetMemberID(c); ok {
			fields = append(fields, "member_id", memberID)
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "error", c.Errors.String())
		}

		const msg = "Request processed"
		switch {
		case status >= 500:
			reqLogger.Error(msg, fields...)
		case status >= 400:
			reqLogger.Warn(msg, fields...)
		case path == healthPath:
			// 헬스체크는 로드밸런서가 수 초마다 호출
			reqLogger.Debug(msg, fields...)
		default:
			reqLogger.Info(msg, fields...)
		}
	}
}
