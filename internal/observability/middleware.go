package observability

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	contextutils "verbtrainer/internal/utils"
)

// GinMiddleware creates OpenTelemetry middleware for Gin HTTP requests
func GinMiddleware(serviceName string) gin.HandlerFunc {
	return otelgin.Middleware(serviceName)
}

// GinMiddlewareWithErrorHandling returns otelgin followed by a handler that,
// for responses with a status of 400 or above, marks the request span as
// failed with the AppError details recorded on the gin context. Register it
// with router.Use(GinMiddlewareWithErrorHandling(name)...).
func GinMiddlewareWithErrorHandling(serviceName string) gin.HandlersChain {
	return gin.HandlersChain{otelgin.Middleware(serviceName), annotateSpanErrors}
}

// annotateSpanErrors runs inside the otelgin span so its attributes land
// before the span ends.
func annotateSpanErrors(c *gin.Context) {
	c.Next()

	statusCode := c.Writer.Status()
	if statusCode < 400 {
		return
	}

	span := trace.SpanFromContext(c.Request.Context())
	if !span.SpanContext().IsValid() {
		return
	}

	severity := determineErrorSeverity(statusCode, c.Errors)
	errorMsg := "client error"
	if statusCode >= 500 {
		errorMsg = "server error"
	}

	var appErr *contextutils.AppError
	for _, ginErr := range c.Errors {
		if errors.As(ginErr.Err, &appErr) {
			errorMsg = appErr.Message
			break
		}
		errorMsg = ginErr.Error()
	}

	span.SetStatus(codes.Error, errorMsg)
	span.SetAttributes(
		attribute.Int("http.status_code", statusCode),
		attribute.String("http.method", c.Request.Method),
		attribute.String("http.path", c.Request.URL.Path),
		attribute.String("error.handler", c.HandlerName()),
		attribute.String("error.severity", severity),
		attribute.Bool("error.server_error", statusCode >= 500),
	)
	if appErr != nil {
		span.SetAttributes(
			attribute.String("error.code", string(appErr.Code)),
			attribute.Bool("error.retryable", contextutils.IsRetryable(appErr)),
		)
	}
	if id := contextutils.GetRequestIDFromContext(c.Request.Context()); id != "" {
		span.SetAttributes(attribute.String("request.id", id))
	}
}

// determineErrorSeverity prefers the severity of the first AppError and
// otherwise derives one from the status code.
func determineErrorSeverity(statusCode int, ginErrors []*gin.Error) string {
	for _, ginErr := range ginErrors {
		var appErr *contextutils.AppError
		if errors.As(ginErr.Err, &appErr) {
			return string(appErr.Severity)
		}
	}

	switch {
	case statusCode >= 500:
		return string(contextutils.SeverityError)
	case statusCode >= 400:
		return string(contextutils.SeverityWarn)
	default:
		return string(contextutils.SeverityInfo)
	}
}
