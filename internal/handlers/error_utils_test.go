package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	contextutils "verbtrainer/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveError(t *testing.T, handler gin.HandlerFunc, locale contextutils.Locale) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/test", func(c *gin.Context) {
		if locale != "" {
			c.Request = c.Request.WithContext(contextutils.WithLocale(c.Request.Context(), locale))
		}
		handler(c)
	})

	req, _ := http.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return w, response
}

func TestStandardizeHTTPError(t *testing.T) {
	tests := []struct {
		status int
		code   string
	}{
		{http.StatusBadRequest, "INVALID_INPUT"},
		{http.StatusNotFound, "RECORD_NOT_FOUND"},
		{http.StatusConflict, "CONFLICT"},
		{http.StatusBadGateway, "TRANSLATION_PROVIDER_ERROR"},
		{http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
		{http.StatusTeapot, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			w, response := serveError(t, func(c *gin.Context) {
				StandardizeHTTPError(c, tt.status, "Something failed", "details here")
			}, "")

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, response["code"])
			assert.Equal(t, "Something failed", response["message"])
			assert.Equal(t, "details here", response["details"])
		})
	}
}

func TestHandleAppError_StatusMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{contextutils.ErrInvalidInput, http.StatusBadRequest},
		{contextutils.ErrMissingRequired, http.StatusBadRequest},
		{contextutils.ErrValidationFailed, http.StatusBadRequest},
		{contextutils.ErrVerbNotFound, http.StatusNotFound},
		{contextutils.ErrRecordNotFound, http.StatusNotFound},
		{contextutils.ErrNoActiveQuiz, http.StatusConflict},
		{contextutils.ErrConflict, http.StatusConflict},
		{contextutils.ErrTimeout, http.StatusRequestTimeout},
		{contextutils.ErrTranslationProvider, http.StatusBadGateway},
		{contextutils.ErrServiceUnavailable, http.StatusServiceUnavailable},
		{contextutils.ErrCatalogInvalid, http.StatusInternalServerError},
		{contextutils.ErrInternalError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(contextutils.GetErrorCode(tt.err)), func(t *testing.T) {
			w, response := serveError(t, func(c *gin.Context) { HandleAppError(c, tt.err) }, "")
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, string(contextutils.GetErrorCode(tt.err)), response["code"])
		})
	}
}

func TestHandleAppError_WrappedAndPlainErrors(t *testing.T) {
	wrapped := fmt.Errorf("lookup: %w", contextutils.WrapErrorf(contextutils.ErrVerbNotFound, "verb %q is not in the catalog", "cantar"))
	w, response := serveError(t, func(c *gin.Context) { HandleAppError(c, wrapped) }, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, `verb "cantar" is not in the catalog`, response["message"])

	w, response = serveError(t, func(c *gin.Context) { HandleAppError(c, errors.New("boom")) }, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", response["code"])
	assert.Equal(t, "boom", response["details"])
}

func TestHandleAppError_RetryableFlag(t *testing.T) {
	_, response := serveError(t, func(c *gin.Context) { HandleAppError(c, contextutils.ErrTranslationProvider) }, "")
	assert.Equal(t, true, response["retryable"])

	_, response = serveError(t, func(c *gin.Context) { HandleAppError(c, contextutils.ErrInvalidInput) }, "")
	assert.Equal(t, false, response["retryable"])
}

func TestHandleAppError_Localized(t *testing.T) {
	_, response := serveError(t, func(c *gin.Context) { HandleAppError(c, contextutils.ErrNoActiveQuiz) }, contextutils.LocaleSpanish)
	assert.Equal(t, "No hay ninguna pregunta activa", response["message"])
	assert.Equal(t, "No hay ninguna pregunta activa", response["error"])
}

func TestHandleValidationError(t *testing.T) {
	w, response := serveError(t, func(c *gin.Context) {
		HandleValidationError(c, "pronoun", 9, "must be between 0 and 5")
	}, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid pronoun", response["message"])
	assert.Equal(t, "9: must be between 0 and 5", response["details"])
}
