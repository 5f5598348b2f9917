package serviceinterfaces

import (
	"context"

	"verbtrainer/internal/models"
)

// QuizService drives the quiz state machine for one learner's state
type QuizService interface {
	// Start samples a new question, replacing any current one
	Start(ctx context.Context) (models.QuizState, error)

	// Submit checks an answer against the current question
	Submit(ctx context.Context, state models.QuizState, answer string) (models.QuizState, models.QuizFeedback, error)

	// Reveal shows the answer of the current question
	Reveal(ctx context.Context, state models.QuizState) (models.QuizState, models.QuizFeedback, error)
}
