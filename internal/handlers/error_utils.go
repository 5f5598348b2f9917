package handlers

import (
	"errors"
	"fmt"
	"net/http"

	contextutils "verbtrainer/internal/utils"

	"github.com/gin-gonic/gin"
)

// StandardizeHTTPError creates consistent HTTP error responses with structured error information
func StandardizeHTTPError(c *gin.Context, statusCode int, message, details string) {
	var errorCode contextutils.ErrorCode
	switch statusCode {
	case http.StatusBadRequest:
		errorCode = contextutils.ErrorCodeInvalidInput
	case http.StatusNotFound:
		errorCode = contextutils.ErrorCodeRecordNotFound
	case http.StatusConflict:
		errorCode = contextutils.ErrorCodeConflict
	case http.StatusRequestTimeout:
		errorCode = contextutils.ErrorCodeTimeout
	case http.StatusBadGateway:
		errorCode = contextutils.ErrorCodeTranslationProvider
	case http.StatusServiceUnavailable:
		errorCode = contextutils.ErrorCodeServiceUnavailable
	default:
		errorCode = contextutils.ErrorCodeInternalError
	}

	appErr := contextutils.NewAppError(errorCode, contextutils.SeverityError, message, details)
	_ = c.Error(appErr)
	c.JSON(statusCode, appErr.ToJSON())
}

// StandardizeAppError sends a structured error response using AppError. The
// message is localized for non-English request locales.
func StandardizeAppError(c *gin.Context, err *contextutils.AppError) {
	statusCode := mapErrorCodeToHTTPStatus(err.Code)

	locale := contextutils.GetLocaleFromContext(c.Request.Context())
	var body map[string]interface{}
	if locale == contextutils.LocaleEnglish {
		body = err.ToJSON()
	} else {
		body = err.ToJSONWithLocale(string(locale))
	}

	_ = c.Error(err)
	c.JSON(statusCode, body)
}

// HandleValidationError sends a 400 for a single invalid field
func HandleValidationError(c *gin.Context, field string, value interface{}, reason string) {
	appErr := contextutils.NewAppError(
		contextutils.ErrorCodeInvalidInput,
		contextutils.SeverityWarn,
		fmt.Sprintf("Invalid %s", field),
		fmt.Sprintf("%v: %s", value, reason),
	)
	StandardizeAppError(c, appErr)
}

// HandleAppError handles any error and sends the matching HTTP response.
// Errors outside the AppError taxonomy become 500s.
func HandleAppError(c *gin.Context, err error) {
	var appErr *contextutils.AppError
	if errors.As(err, &appErr) {
		StandardizeAppError(c, appErr)
		return
	}
	StandardizeAppError(c, contextutils.NewAppErrorWithCause(
		contextutils.ErrorCodeInternalError,
		contextutils.SeverityError,
		"Internal server error",
		err.Error(),
		err,
	))
}

// mapErrorCodeToHTTPStatus maps AppError codes to appropriate HTTP status codes
func mapErrorCodeToHTTPStatus(code contextutils.ErrorCode) int {
	switch code {
	// 4xx Client Errors
	case contextutils.ErrorCodeInvalidInput, contextutils.ErrorCodeMissingRequired,
		contextutils.ErrorCodeInvalidFormat, contextutils.ErrorCodeValidationFailed:
		return http.StatusBadRequest

	case contextutils.ErrorCodeRecordNotFound, contextutils.ErrorCodeVerbNotFound:
		return http.StatusNotFound

	case contextutils.ErrorCodeNoActiveQuiz, contextutils.ErrorCodeConflict:
		return http.StatusConflict

	case contextutils.ErrorCodeTimeout:
		return http.StatusRequestTimeout

	// 5xx Server Errors
	case contextutils.ErrorCodeTranslationProvider:
		return http.StatusBadGateway

	case contextutils.ErrorCodeServiceUnavailable:
		return http.StatusServiceUnavailable

	case contextutils.ErrorCodeCatalogInvalid, contextutils.ErrorCodeInternalError:
		return http.StatusInternalServerError

	default:
		return http.StatusInternalServerError
	}
}
