package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"verbtrainer/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestDefaultErrorRecoveryConfig(t *testing.T) {
	config := DefaultErrorRecoveryConfig()

	assert.False(t, config.EnableCircuitBreaker)
	assert.Equal(t, 5, config.CircuitBreakerThreshold)
	assert.Equal(t, 30*time.Second, config.CircuitBreakerTimeout)
}

func TestErrorRecoveryMiddleware_PanicRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, logs := observer.New(zapcore.ErrorLevel)
	logger := &observability.Logger{Logger: zap.New(core)}

	router := gin.New()
	router.Use(ErrorRecoveryMiddleware(logger, nil))
	router.GET("/panic", func(_ *gin.Context) {
		panic("test panic")
	})

	req, _ := http.NewRequest("GET", "/panic", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "INTERNAL_SERVER_ERROR", response["code"])
	assert.Equal(t, "fatal", response["severity"])
	assert.Equal(t, "INTERNAL_SERVER_ERROR: panic: test panic", response["cause"])

	require.Equal(t, 1, logs.FilterMessage("Panic recovered").Len())
}

func TestErrorRecoveryMiddleware_NormalRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(ErrorRecoveryMiddleware(nil, nil))
	router.GET("/normal", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	req, _ := http.NewRequest("GET", "/normal", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestErrorRecoveryMiddleware_CircuitOpensAfterServerErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(ErrorRecoveryMiddleware(nil, &ErrorRecoveryConfig{
		EnableCircuitBreaker:    true,
		CircuitBreakerThreshold: 2,
		CircuitBreakerTimeout:   time.Hour,
	}))
	calls := 0
	router.GET("/upstream", func(c *gin.Context) {
		calls++
		c.Status(http.StatusBadGateway)
	})

	codes := make([]int, 0, 3)
	for range 3 {
		req, _ := http.NewRequest("GET", "/upstream", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusBadGateway, http.StatusBadGateway, http.StatusServiceUnavailable}, codes)
	assert.Equal(t, 2, calls)
}

func TestCircuitBreaker_CanExecute(t *testing.T) {
	config := &ErrorRecoveryConfig{
		EnableCircuitBreaker:    true,
		CircuitBreakerThreshold: 2,
		CircuitBreakerTimeout:   time.Minute,
	}

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	cb := newCircuitBreaker(config)
	cb.now = func() time.Time { return now }

	assert.True(t, cb.canExecute())
	assert.Equal(t, circuitClosed, cb.state)

	cb.recordFailure()
	cb.recordFailure()

	assert.False(t, cb.canExecute())
	assert.Equal(t, circuitOpen, cb.state)

	now = now.Add(2 * time.Minute)

	assert.True(t, cb.canExecute())
	assert.Equal(t, circuitHalfOpen, cb.state)

	cb.recordSuccess()

	assert.True(t, cb.canExecute())
	assert.Equal(t, circuitClosed, cb.state)
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	cb := newCircuitBreaker(&ErrorRecoveryConfig{CircuitBreakerThreshold: 3, CircuitBreakerTimeout: time.Minute})
	cb.now = func() time.Time { return now }

	cb.recordFailure()
	cb.recordFailure()
	cb.recordFailure()
	now = now.Add(2 * time.Minute)
	require.True(t, cb.canExecute())

	cb.recordFailure()
	assert.Equal(t, circuitOpen, cb.state)
	assert.False(t, cb.canExecute())
}
