package config

import "time"

// Timeout constants
const (
	DefaultHTTPTimeout      = 30 * time.Second
	ServerShutdownTimeout   = 10 * time.Second
	ServerReadHeaderTimeout = 10 * time.Second

	// Session timeouts
	SessionMaxAge = 7 * 24 * time.Hour // 7 days
)

// Translation limits
const (
	DefaultMaxTranslationLength = 5000
)

// Session configuration constants
const (
	SessionPath     = "/"
	SessionHTTPOnly = true
	SessionSecure   = false // Set to true in production with HTTPS

	SessionName = "verbtrainer-session"
)

// Security configuration constants
const (
	// Content Security Policy
	DefaultCSP = "default-src 'self'; style-src 'self' 'unsafe-inline'; script-src 'self' 'unsafe-inline'; img-src 'self' data:; media-src 'self' blob: data:;"
)
