package handlers

import (
	"net/http"

	"verbtrainer/internal/config"
	"verbtrainer/internal/observability"
	"verbtrainer/internal/serviceinterfaces"
	"verbtrainer/internal/services"
	contextutils "verbtrainer/internal/utils"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// TranslationHandler handles free-text translation requests
type TranslationHandler struct {
	proxy  services.TranslationProxyInterface
	cfg    *config.Config
	logger *observability.Logger
}

// NewTranslationHandler creates a new TranslationHandler instance
func NewTranslationHandler(proxy services.TranslationProxyInterface, cfg *config.Config, logger *observability.Logger) *TranslationHandler {
	return &TranslationHandler{
		proxy:  proxy,
		cfg:    cfg,
		logger: logger,
	}
}

// TranslateText translates text or answers "how do I say X in Y" questions.
// Success carries "result"; failures carry "error".
func (h *TranslationHandler) TranslateText(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "translate_text")
	var err error
	defer observability.FinishSpan(span, &err)

	var req serviceinterfaces.ProxyRequest
	if err = c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn(ctx, "Invalid translation request format", map[string]interface{}{"error": err.Error()})
		HandleAppError(c, contextutils.NewAppErrorWithCause(contextutils.ErrorCodeMissingRequired,
			contextutils.SeverityWarn, "Text to translate is required", err.Error(), err))
		return
	}

	span.SetAttributes(
		attribute.String("translation.target_language", req.Target),
		attribute.String("translation.source_language", req.Source),
		observability.AttributeInputLength(len(req.Text)),
	)

	response, err := h.proxy.Handle(ctx, req)
	if err != nil {
		h.logger.Error(ctx, "Translation failed", err, map[string]interface{}{"target": req.Target})
		HandleAppError(c, err)
		return
	}

	span.SetAttributes(
		attribute.Bool("translation.intent", response.Intent),
		observability.AttributeLanguage(response.TargetLanguage),
	)
	c.JSON(http.StatusOK, response)
}

// GetLanguages lists the language names the proxy understands
func (h *TranslationHandler) GetLanguages(c *gin.Context) {
	_, span := observability.TraceHandlerFunction(c.Request.Context(), "get_translation_languages")
	defer observability.FinishSpan(span, nil)

	c.JSON(http.StatusOK, gin.H{
		"enabled":        h.cfg.Translation.Enabled,
		"default_target": h.cfg.Translation.DefaultTarget,
		"languages":      h.cfg.Translation.CanonicalLanguages(),
	})
}
