package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracingConfig holds configuration for the tracing middleware
type TracingConfig struct {
	ServiceName string
	Enabled     bool
}

// Tracing returns OpenTelemetry tracing middleware. The span name follows
// the "METHOD route_pattern" format produced by otelgin; spans are
// enriched with request_id, store_id and user_id once known.
func Tracing(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	baseMiddleware := otelgin.Middleware(cfg.ServiceName)

	return func(c *gin.Context) {
		baseMiddleware(c)

		span := trace.SpanFromContext(c.Request.Context())
		if span.IsRecording() {
			enrichSpan(c, span)
		}
	}
}

func enrichSpan(c *gin.Context, span trace.Span) {
	if requestID := c.GetString("request_id"); requestID != "" {
		span.SetAttributes(attribute.String("request_id", requestID))
	}
	if storeID, ok := GetJWTStoreID(c); ok {
		span.SetAttributes(attribute.String("store_id", storeID.String()))
	}
	if userID, ok := GetJWTUserID(c); ok {
		span.SetAttributes(attribute.String("user_id", userID.String()))
	}
}

// SpanErrorMarker marks spans with error status for 4xx/5xx responses.
// Place it after Tracing and JWT middleware so identity attributes are
// available when the request completes.
func SpanErrorMarker() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}

		enrichSpan(c, span)

		statusCode := c.Writer.Status()
		if statusCode >= http.StatusBadRequest {
			span.SetStatus(codes.Error, http.StatusText(statusCode))
			span.SetAttributes(attribute.Int("http.status_code", statusCode))
		}
	}
}
