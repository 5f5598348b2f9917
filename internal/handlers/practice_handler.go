package handlers

import (
	"net/http"
	"unicode/utf8"

	"verbtrainer/internal/config"
	"verbtrainer/internal/models"
	"verbtrainer/internal/observability"
	"verbtrainer/internal/serviceinterfaces"
	"verbtrainer/internal/services"
	contextutils "verbtrainer/internal/utils"

	"github.com/gin-gonic/gin"
)

// maxInfinitiveLength bounds the :infinitive path parameter
const maxInfinitiveLength = 40

// PracticeRequest is the body of both practice endpoints. Sense selects the
// meaning tab to display.
type PracticeRequest struct {
	Text  string `json:"text"`
	Sense int    `json:"sense" binding:"gte=0"`
}

// GenerateResponse carries a generated English phrase
type GenerateResponse struct {
	Phrase string `json:"phrase"`
}

// PracticeHandler serves conjugation lookups, phrase generation and the catalog
type PracticeHandler struct {
	practiceService services.PracticeServiceInterface
	cfg             *config.Config
	logger          *observability.Logger
}

// NewPracticeHandler creates a new PracticeHandler instance
func NewPracticeHandler(practiceService services.PracticeServiceInterface, cfg *config.Config, logger *observability.Logger) *PracticeHandler {
	return &PracticeHandler{
		practiceService: practiceService,
		cfg:             cfg,
		logger:          logger,
	}
}

// PracticeSpanish resolves a conjugated Spanish form or infinitive
func (h *PracticeHandler) PracticeSpanish(c *gin.Context) {
	h.practice(c, models.DirectionSpanish)
}

// PracticeEnglish resolves an English phrase such as "I have eaten"
func (h *PracticeHandler) PracticeEnglish(c *gin.Context) {
	h.practice(c, models.DirectionEnglish)
}

func (h *PracticeHandler) practice(c *gin.Context, direction models.Direction) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "practice_"+string(direction),
		observability.AttributeDirection(string(direction)),
	)
	var err error
	defer observability.FinishSpan(span, &err)

	var req PracticeRequest
	if err = c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn(ctx, "Invalid practice request format", map[string]interface{}{"error": err.Error()})
		HandleAppError(c, contextutils.NewAppErrorWithCause(contextutils.ErrorCodeInvalidFormat,
			contextutils.SeverityWarn, "Invalid request format", err.Error(), err))
		return
	}

	var view *models.ResultView
	if direction == models.DirectionSpanish {
		view, err = h.practiceService.ResolveSpanish(ctx, req.Text, req.Sense)
	} else {
		view, err = h.practiceService.ResolveEnglish(ctx, req.Text, req.Sense)
	}
	if err != nil {
		h.logger.Error(ctx, "Practice lookup failed", err, map[string]interface{}{"direction": string(direction)})
		HandleAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// Generate returns the English phrase for one (verb, tense, pronoun, sense) slot
func (h *PracticeHandler) Generate(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "generate_phrase")
	var err error
	defer observability.FinishSpan(span, &err)

	var req serviceinterfaces.GenerateRequest
	if err = c.ShouldBindJSON(&req); err != nil {
		HandleAppError(c, contextutils.NewAppErrorWithCause(contextutils.ErrorCodeInvalidFormat,
			contextutils.SeverityWarn, "Invalid request format", err.Error(), err))
		return
	}

	phrase, err := h.practiceService.Generate(ctx, req)
	if err != nil {
		h.logger.Warn(ctx, "Phrase generation rejected", map[string]interface{}{
			"infinitive": req.Infinitive,
			"error":      err.Error(),
		})
		HandleAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, GenerateResponse{Phrase: phrase})
}

// ListVerbs returns the catalog summary
func (h *PracticeHandler) ListVerbs(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "list_verbs")
	defer observability.FinishSpan(span, nil)

	c.JSON(http.StatusOK, h.practiceService.ListVerbs(ctx))
}

// GetVerb returns one verb with its conjugation table per sense
func (h *PracticeHandler) GetVerb(c *gin.Context) {
	infinitive := c.Param("infinitive")
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "get_verb",
		observability.AttributeVerb(infinitive),
	)
	var err error
	defer observability.FinishSpan(span, &err)

	if utf8.RuneCountInString(infinitive) > maxInfinitiveLength {
		HandleValidationError(c, "infinitive", string([]rune(infinitive)[:maxInfinitiveLength]), "is too long")
		return
	}

	detail, err := h.practiceService.GetVerb(ctx, infinitive)
	if err != nil {
		HandleAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// GetTenses returns the learner-facing tense descriptions
func (h *PracticeHandler) GetTenses(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "get_tenses")
	defer observability.FinishSpan(span, nil)

	c.JSON(http.StatusOK, h.practiceService.Tenses(ctx))
}

// RandomPrompt draws a free-translation practice prompt
func (h *PracticeHandler) RandomPrompt(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "random_prompt")
	var err error
	defer observability.FinishSpan(span, &err)

	prompt, err := h.practiceService.RandomPrompt(ctx)
	if err != nil {
		HandleAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, prompt)
}
