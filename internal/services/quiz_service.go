package services

import (
	"context"

	"verbtrainer/internal/models"
	"verbtrainer/internal/observability"
	"verbtrainer/internal/serviceinterfaces"
	contextutils "verbtrainer/internal/utils"
)

// QuizServiceInterface defines the interface for the quiz service
type QuizServiceInterface = serviceinterfaces.QuizService

// QuizService adds tracing, logging, metrics and localized feedback text to
// the QuizEngine
type QuizService struct {
	engine  *QuizEngine
	metrics *observability.TrainerMetrics
	logger  *observability.Logger
}

// NewQuizService creates a new QuizService instance
func NewQuizService(engine *QuizEngine, metrics *observability.TrainerMetrics, logger *observability.Logger) *QuizService {
	return &QuizService{engine: engine, metrics: metrics, logger: logger}
}

// Start samples a new question
func (s *QuizService) Start(ctx context.Context) (result models.QuizState, err error) {
	ctx, span := observability.TraceQuizFunction(ctx, "start")
	defer observability.FinishSpan(span, &err)

	result, err = s.engine.Start()
	if err != nil {
		return result, err
	}
	q := result.Question
	span.SetAttributes(
		observability.AttributeVerb(q.Infinitive),
		observability.AttributeTense(q.Tense.String()),
		observability.AttributePronoun(int(q.Pronoun)),
	)
	s.logger.Debug(ctx, "Quiz question started", map[string]interface{}{
		"question_id": q.ID,
		"verb":        q.Infinitive,
		"tense":       q.Tense.String(),
		"pronoun":     int(q.Pronoun),
	})
	return result, nil
}

// Submit checks an answer
func (s *QuizService) Submit(ctx context.Context, state models.QuizState, answer string) (next models.QuizState, feedback models.QuizFeedback, err error) {
	ctx, span := observability.TraceQuizFunction(ctx, "submit", observability.AttributeInputLength(len(answer)))
	defer observability.FinishSpan(span, &err)

	next, feedback, err = s.engine.Submit(state, answer)
	if err != nil {
		return next, feedback, err
	}
	s.localize(ctx, &feedback)
	if feedback.Result != models.QuizResultIgnored {
		s.metrics.RecordQuizAnswer(ctx, string(feedback.Result))
	}
	return next, feedback, nil
}

// Reveal shows the answer
func (s *QuizService) Reveal(ctx context.Context, state models.QuizState) (next models.QuizState, feedback models.QuizFeedback, err error) {
	ctx, span := observability.TraceQuizFunction(ctx, "reveal")
	defer observability.FinishSpan(span, &err)

	next, feedback, err = s.engine.Reveal(state)
	if err != nil {
		return next, feedback, err
	}
	s.localize(ctx, &feedback)
	s.metrics.RecordQuizAnswer(ctx, string(feedback.Result))
	return next, feedback, nil
}

func (s *QuizService) localize(ctx context.Context, feedback *models.QuizFeedback) {
	locale := contextutils.GetLocaleFromContext(ctx)
	switch feedback.Result {
	case models.QuizResultCorrect:
		feedback.Message = contextutils.GetLocalizedUIMessage(contextutils.MessageQuizCorrect, locale)
	case models.QuizResultIncorrect:
		feedback.Message = contextutils.GetLocalizedUIMessage(contextutils.MessageQuizIncorrect, locale)
	case models.QuizResultRevealed:
		feedback.Message = contextutils.GetLocalizedUIMessage(contextutils.MessageQuizAnswer, locale) + ": " + feedback.Answer
	}
}
