// Package middleware provides request-scoped gin middleware: panic recovery,
// request ids, UI locale negotiation and request body validation.
package middleware

import (
	"strings"

	contextutils "verbtrainer/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader carries the request id in and out of the server
	RequestIDHeader = "X-Request-ID"
	// LocaleQueryParam overrides the Accept-Language header
	LocaleQueryParam = "lang"
)

var supportedLocales = map[contextutils.Locale]bool{
	contextutils.LocaleEnglish: true,
	contextutils.LocaleSpanish: true,
}

// RequestIDMiddleware propagates an inbound X-Request-ID or assigns a new one
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(RequestIDHeader, id)
		c.Request = c.Request.WithContext(contextutils.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

// LocaleMiddleware stores the UI locale on the request context. The lang
// query parameter wins over Accept-Language; unsupported locales fall back
// to defaultLocale.
func LocaleMiddleware(defaultLocale string) gin.HandlerFunc {
	fallback := contextutils.ParseLocale(defaultLocale)
	if !supportedLocales[fallback] {
		fallback = contextutils.LocaleEnglish
	}

	return func(c *gin.Context) {
		locale := fallback
		if candidate, ok := negotiateLocale(c.Query(LocaleQueryParam), c.GetHeader("Accept-Language")); ok {
			locale = candidate
		}
		c.Request = c.Request.WithContext(contextutils.WithLocale(c.Request.Context(), locale))
		c.Next()
	}
}

// negotiateLocale picks the first supported locale from the query value and
// then the Accept-Language entries in order
func negotiateLocale(query, acceptLanguage string) (contextutils.Locale, bool) {
	candidates := []string{query}
	for _, part := range strings.Split(acceptLanguage, ",") {
		tag, _, _ := strings.Cut(part, ";")
		candidates = append(candidates, tag)
	}
	for _, candidate := range candidates {
		if strings.TrimSpace(candidate) == "" {
			continue
		}
		if locale := contextutils.ParseLocale(candidate); supportedLocales[locale] {
			return locale, true
		}
	}
	return "", false
}
