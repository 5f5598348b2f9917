package handlers

import (
	"context"
	"crypto/rand"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/secure"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"verbtrainer/internal/config"
	"verbtrainer/internal/middleware"
	"verbtrainer/internal/observability"
	"verbtrainer/internal/services"
	"verbtrainer/internal/version"
)

// ServiceName identifies this server in traces, logs and the route index
const ServiceName = "verbtrainer"

// NewRouter builds the gin engine with middleware and every API route
func NewRouter(
	cfg *config.Config,
	practiceService services.PracticeServiceInterface,
	quizService services.QuizServiceInterface,
	translationProxy services.TranslationProxyInterface,
	logger *observability.Logger,
) *gin.Engine {
	if !cfg.IsTest {
		gin.SetMode(gin.ReleaseMode)
		if cfg.Server.Debug {
			gin.SetMode(gin.DebugMode)
		}
	}

	router := gin.New()
	router.Use(middleware.ErrorRecoveryMiddleware(logger, nil))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(requestLoggingMiddleware(logger))

	// Health check endpoint (defined before tracing and sessions)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": ServiceName})
	})

	router.Use(observability.GinMiddlewareWithErrorHandling(ServiceName)...)

	// Disable automatic redirection for trailing slashes, which is better for APIs
	router.RedirectTrailingSlash = false

	corsConfig := cors.DefaultConfig()
	if len(cfg.Server.CORSOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.Server.CORSOrigins
		corsConfig.AllowCredentials = true
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Accept-Language", middleware.RequestIDHeader}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	store := cookie.NewStore(sessionSecret(cfg, logger))
	sessionOpts := sessions.Options{
		Path:     config.SessionPath,
		MaxAge:   int(config.SessionMaxAge.Seconds()),
		HttpOnly: config.SessionHTTPOnly,
		Secure:   config.SessionSecure,
	}
	if cfg.Server.Debug || cfg.IsTest {
		sessionOpts.SameSite = http.SameSiteDefaultMode
	} else {
		sessionOpts.SameSite = http.SameSiteLaxMode
		sessionOpts.Secure = true
	}
	store.Options(sessionOpts)
	router.Use(sessions.Sessions(config.SessionName, store))

	secureConfig := secure.DefaultConfig()
	secureConfig.SSLRedirect = false
	secureConfig.ContentSecurityPolicy = config.DefaultCSP
	router.Use(secure.New(secureConfig))

	router.Use(middleware.LocaleMiddleware(cfg.Server.DefaultLocale))
	router.Use(middleware.RequestValidationMiddleware(middleware.MustLoadEmbeddedSchemas(), logger))

	practiceHandler := NewPracticeHandler(practiceService, cfg, logger)
	quizHandler := NewQuizHandler(quizService, cfg, logger)
	translationHandler := NewTranslationHandler(translationProxy, cfg, logger)

	v1 := router.Group("/v1")
	{
		v1.GET("/version", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"service":   ServiceName,
				"version":   version.Version,
				"commit":    version.Commit,
				"buildTime": version.BuildTime,
			})
		})

		practice := v1.Group("/practice")
		{
			practice.POST("/spanish", practiceHandler.PracticeSpanish)
			practice.POST("/english", practiceHandler.PracticeEnglish)
		}
		v1.POST("/generate", practiceHandler.Generate)

		verbs := v1.Group("/verbs")
		{
			verbs.GET("", practiceHandler.ListVerbs)
			verbs.GET("/:infinitive", practiceHandler.GetVerb)
		}
		v1.GET("/tenses", practiceHandler.GetTenses)
		v1.GET("/prompts/random", practiceHandler.RandomPrompt)

		quiz := v1.Group("/quiz")
		{
			quiz.GET("", quizHandler.GetState)
			quiz.POST("/start", quizHandler.Start)
			quiz.POST("/answer", quizHandler.SubmitAnswer)
			quiz.POST("/reveal", quizHandler.Reveal)
		}

		// The provider circuit opens after repeated upstream failures
		translate := v1.Group("")
		translate.Use(middleware.ErrorRecoveryMiddleware(logger, &middleware.ErrorRecoveryConfig{
			EnableCircuitBreaker:    true,
			CircuitBreakerThreshold: 5,
			CircuitBreakerTimeout:   30 * time.Second,
		}))
		{
			translate.POST("/translate", translationHandler.TranslateText)
		}
		v1.GET("/translate/languages", translationHandler.GetLanguages)
	}

	router.NoRoute(func(c *gin.Context) {
		StandardizeHTTPError(c, http.StatusNotFound, "Not found", c.Request.URL.Path)
	})

	// Automatic route listing at root path
	routeListing := NewRouteListingHandler(ServiceName)
	routeListing.CollectRoutes(router)
	router.GET("/", routeListing.ServeIndex)

	return router
}

// requestLoggingMiddleware logs every request at a level derived from its status
func requestLoggingMiddleware(logger *observability.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()

		fields := map[string]interface{}{
			"http.method":      c.Request.Method,
			"http.path":        c.Request.URL.Path,
			"http.status_code": statusCode,
			"http.latency_ms":  latency.Milliseconds(),
			"http.client_ip":   c.ClientIP(),
			"http.user_agent":  c.Request.UserAgent(),
		}
		if len(c.Errors) > 0 {
			fields["http.error"] = c.Errors.String()
		}

		switch {
		case statusCode >= 500:
			fields["http.error_type"] = "server_error"
			logger.Error(c.Request.Context(), "HTTP request failed", nil, fields)
		case statusCode >= 400:
			fields["http.error_type"] = "client_error"
			logger.Warn(c.Request.Context(), "HTTP request warning", fields)
		case strings.HasPrefix(c.Request.URL.Path, "/health"):
			logger.Debug(c.Request.Context(), "HTTP request", fields)
		default:
			logger.Info(c.Request.Context(), "HTTP request", fields)
		}
	}
}

// sessionSecret returns the configured cookie key, or a random one that
// only lives as long as the process
func sessionSecret(cfg *config.Config, logger *observability.Logger) []byte {
	if cfg.Server.SessionSecret != "" {
		return []byte(cfg.Server.SessionSecret)
	}
	key := make([]byte, 32)
	_, _ = rand.Read(key)
	logger.Warn(context.Background(), "No session secret configured; quiz sessions will not survive a restart")
	return key
}
