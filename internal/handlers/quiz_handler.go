package handlers

import (
	"net/http"

	"verbtrainer/internal/config"
	"verbtrainer/internal/models"
	"verbtrainer/internal/observability"
	"verbtrainer/internal/services"
	contextutils "verbtrainer/internal/utils"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// QuizAnswerRequest is the body of POST /v1/quiz/answer
type QuizAnswerRequest struct {
	Answer string `json:"answer"`
}

// QuizResponse is the learner's quiz state plus feedback for the last action
type QuizResponse struct {
	State    models.QuizState     `json:"state"`
	Feedback *models.QuizFeedback `json:"feedback,omitempty"`
}

// QuizHandler drives the quiz state machine. The state of each learner lives
// in their cookie session and is replaced on every transition.
type QuizHandler struct {
	quizService services.QuizServiceInterface
	cfg         *config.Config
	logger      *observability.Logger
}

// NewQuizHandler creates a new QuizHandler
func NewQuizHandler(quizService services.QuizServiceInterface, cfg *config.Config, logger *observability.Logger) *QuizHandler {
	return &QuizHandler{
		quizService: quizService,
		cfg:         cfg,
		logger:      logger,
	}
}

// GetState returns the current quiz state without changing it
func (h *QuizHandler) GetState(c *gin.Context) {
	_, span := observability.TraceHandlerFunction(c.Request.Context(), "get_quiz_state")
	defer observability.FinishSpan(span, nil)

	state, _ := GetQuizStateFromSession(c)
	c.JSON(http.StatusOK, QuizResponse{State: state})
}

// Start samples a new question, replacing any current one
func (h *QuizHandler) Start(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "start_quiz")
	var err error
	defer observability.FinishSpan(span, &err)

	state, err := h.quizService.Start(ctx)
	if err != nil {
		h.logger.Error(ctx, "Failed to start quiz", err)
		HandleAppError(c, err)
		return
	}
	if err = h.save(c, state); err != nil {
		return
	}

	if state.Question != nil {
		span.SetAttributes(attribute.String("quiz.question_id", state.Question.ID))
	}
	c.JSON(http.StatusOK, QuizResponse{State: state})
}

// SubmitAnswer checks an answer against the current question
func (h *QuizHandler) SubmitAnswer(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "submit_quiz_answer")
	var err error
	defer observability.FinishSpan(span, &err)

	var req QuizAnswerRequest
	if err = c.ShouldBindJSON(&req); err != nil {
		HandleAppError(c, contextutils.NewAppErrorWithCause(contextutils.ErrorCodeInvalidFormat,
			contextutils.SeverityWarn, "Invalid request format", err.Error(), err))
		return
	}

	state, _ := GetQuizStateFromSession(c)
	next, feedback, err := h.quizService.Submit(ctx, state, req.Answer)
	if err != nil {
		h.logger.Warn(ctx, "Quiz answer rejected", map[string]interface{}{
			"phase": string(state.Phase),
			"error": err.Error(),
		})
		HandleAppError(c, err)
		return
	}
	if err = h.save(c, next); err != nil {
		return
	}

	span.SetAttributes(attribute.String("quiz.result", string(feedback.Result)))
	c.JSON(http.StatusOK, QuizResponse{State: next, Feedback: &feedback})
}

// Reveal shows the answer and the full table of the current question
func (h *QuizHandler) Reveal(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "reveal_quiz_answer")
	var err error
	defer observability.FinishSpan(span, &err)

	state, _ := GetQuizStateFromSession(c)
	next, feedback, err := h.quizService.Reveal(ctx, state)
	if err != nil {
		HandleAppError(c, err)
		return
	}
	if err = h.save(c, next); err != nil {
		return
	}

	c.JSON(http.StatusOK, QuizResponse{State: next, Feedback: &feedback})
}

// save persists the state and writes the error response on failure
func (h *QuizHandler) save(c *gin.Context, state models.QuizState) error {
	if err := SaveQuizStateToSession(c, state); err != nil {
		h.logger.Error(c.Request.Context(), "Failed to save quiz state", err)
		HandleAppError(c, contextutils.WrapError(err, "failed to save quiz state"))
		return err
	}
	return nil
}
