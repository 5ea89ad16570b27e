package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GinMiddleware attaches a request-scoped logger to the gin context and
// logs each request after it completes.
func GinMiddleware(baseLogger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		requestLogger := baseLogger.With(
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("client_ip", c.ClientIP()),
		)

		if requestID := c.GetString("request_id"); requestID != "" {
			requestLogger = requestLogger.With(zap.String("request_id", requestID))
		}

		requestLogger = WithTraceContext(c.Request.Context(), requestLogger)

		ctx := WithContext(c.Request.Context(), requestLogger)
		c.Request = c.Request.WithContext(ctx)
		c.Set("logger", requestLogger)

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		fields := []zap.Field{
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.Int("body_size", c.Writer.Size()),
		}
		if query != "" {
			fields = append(fields, zap.String("query", query))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case status >= 500:
			requestLogger.Error("request completed", fields...)
		case status >= 400:
			requestLogger.Warn("request completed", fields...)
		default:
			requestLogger.Info("request completed", fields...)
		}
	}
}

// Recovery returns a gin middleware that recovers from panics and logs them
func Recovery(baseLogger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				requestLogger := GetGinLogger(c, baseLogger)
				requestLogger.Error("panic recovered",
					zap.Any("panic", err),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.Stack("stacktrace"),
				)
				c.AbortWithStatusJSON(500, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "ERR_INTERNAL",
						"message": "Internal server error",
					},
				})
			}
		}()
		c.Next()
	}
}

// GetGinLogger returns the request-scoped logger from the gin context,
// falling back to the provided base logger.
func GetGinLogger(c *gin.Context, fallback *zap.Logger) *zap.Logger {
	if value, exists := c.Get("logger"); exists {
		if requestLogger, ok := value.(*zap.Logger); ok {
			return requestLogger
		}
	}
	return fallback
}
