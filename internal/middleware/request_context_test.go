package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	contextutils "verbtrainer/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.GET("/id", func(c *gin.Context) {
		c.String(http.StatusOK, contextutils.GetRequestIDFromContext(c.Request.Context()))
	})

	t.Run("propagates inbound id", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/id", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "abc-123", w.Body.String())
		assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	})

	t.Run("assigns a uuid", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/id", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		_, err := uuid.Parse(w.Body.String())
		require.NoError(t, err)
		assert.Equal(t, w.Body.String(), w.Header().Get(RequestIDHeader))
	})
}

func TestLocaleMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		defaultLocale  string
		query          string
		acceptLanguage string
		expected       contextutils.Locale
	}{
		{name: "default", defaultLocale: "en", expected: contextutils.LocaleEnglish},
		{name: "configured default", defaultLocale: "es", expected: contextutils.LocaleSpanish},
		{name: "unsupported default", defaultLocale: "fr", expected: contextutils.LocaleEnglish},
		{name: "accept language", defaultLocale: "en", acceptLanguage: "es-MX,es;q=0.9", expected: contextutils.LocaleSpanish},
		{name: "first supported entry", defaultLocale: "es", acceptLanguage: "fr-FR, en;q=0.8", expected: contextutils.LocaleEnglish},
		{name: "query wins", defaultLocale: "en", query: "es", acceptLanguage: "en-US", expected: contextutils.LocaleSpanish},
		{name: "unsupported query ignored", defaultLocale: "en", query: "de", acceptLanguage: "es", expected: contextutils.LocaleSpanish},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(LocaleMiddleware(tt.defaultLocale))
			router.GET("/locale", func(c *gin.Context) {
				c.String(http.StatusOK, string(contextutils.GetLocaleFromContext(c.Request.Context())))
			})

			target := "/locale"
			if tt.query != "" {
				target += "?lang=" + tt.query
			}
			req, _ := http.NewRequest("GET", target, nil)
			if tt.acceptLanguage != "" {
				req.Header.Set("Accept-Language", tt.acceptLanguage)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, string(tt.expected), w.Body.String())
		})
	}
}
