package contextutils

import (
	"regexp"
	"strings"
)

var urlKeyParam = regexp.MustCompile(`([?&]key=)[^&]*`)

// MaskAPIKey masks an API key for logging, keeping the first and last four characters
func MaskAPIKey(apiKey string) string {
	if apiKey == "" {
		return "[EMPTY]"
	}
	if len(apiKey) <= 8 {
		return strings.Repeat("*", len(apiKey))
	}
	return apiKey[:4] + strings.Repeat("*", len(apiKey)-8) + apiKey[len(apiKey)-4:]
}

// RedactURLKey replaces the value of a "key" query parameter in a URL string
func RedactURLKey(rawURL string) string {
	return urlKeyParam.ReplaceAllString(rawURL, "${1}[REDACTED]")
}
