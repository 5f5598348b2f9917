package middleware

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"verbtrainer/internal/observability"
	contextutils "verbtrainer/internal/utils"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// RequestValidationMiddleware validates JSON request bodies against the
// schema registered for the matched route and rejects mismatches with 400.
// The body is restored so handlers can bind it again.
func RequestValidationMiddleware(loader *SchemaLoader, logger *observability.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		method := c.Request.Method
		route := c.FullPath()
		if !loader.HasSchema(method, route) {
			c.Next()
			return
		}

		ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "request_validation",
			attribute.String("http.route", route),
		)
		defer span.End()

		body, err := c.GetRawData()
		if err != nil {
			logger.Warn(ctx, "Failed to read request body", map[string]interface{}{"path": route, "error": err.Error()})
			body = nil
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

		if err := loader.ValidateBody(method, route, body); err != nil {
			logger.Warn(ctx, "Request validation failed", map[string]interface{}{
				"method": method,
				"path":   route,
				"error":  err.Error(),
			})
			span.SetAttributes(attribute.Bool("request.valid", false))

			var appErr *contextutils.AppError
			if !errors.As(err, &appErr) {
				appErr = contextutils.NewAppErrorWithCause(contextutils.ErrorCodeValidationFailed,
					contextutils.SeverityWarn, "Invalid request data", err.Error(), err)
			}
			_ = c.Error(appErr)
			c.AbortWithStatusJSON(http.StatusBadRequest, appErr.ToJSON())
			return
		}

		span.SetAttributes(attribute.Bool("request.valid", true))
		c.Next()
	}
}
