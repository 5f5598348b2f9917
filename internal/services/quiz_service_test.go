package services

import (
	"context"
	"testing"

	"verbtrainer/internal/models"
	"verbtrainer/internal/observability"
	contextutils "verbtrainer/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQuizService(t *testing.T) *QuizService {
	t.Helper()
	engine, _ := newTestQuizEngine(t, &scriptedRandom{values: []int{0, 0, 1}})
	return NewQuizService(engine, nil, observability.NewNopLogger())
}

func TestQuizService_Feedback(t *testing.T) {
	svc := newTestQuizService(t)
	ctx := context.Background()

	state, err := svc.Start(ctx)
	require.NoError(t, err)

	state, feedback, err := svc.Submit(ctx, state, "you talk")
	require.NoError(t, err)
	assert.Equal(t, "Incorrect. Try again!", feedback.Message)

	_, feedback, err = svc.Submit(ctx, state, "")
	require.NoError(t, err)
	assert.Equal(t, models.QuizResultIgnored, feedback.Result)
	assert.Empty(t, feedback.Message)

	_, feedback, err = svc.Reveal(ctx, state)
	require.NoError(t, err)
	assert.Equal(t, "Answer: You speak", feedback.Message)
}

func TestQuizService_LocalizedFeedback(t *testing.T) {
	svc := newTestQuizService(t)
	ctx := contextutils.WithLocale(context.Background(), contextutils.LocaleSpanish)

	state, err := svc.Start(ctx)
	require.NoError(t, err)

	_, feedback, err := svc.Submit(ctx, state, "You speak")
	require.NoError(t, err)
	assert.Equal(t, "¡Correcto!", feedback.Message)

	_, feedback, err = svc.Reveal(ctx, state)
	require.NoError(t, err)
	assert.Equal(t, "Respuesta: You speak", feedback.Message)
}

func TestQuizService_PropagatesErrors(t *testing.T) {
	svc := newTestQuizService(t)

	_, _, err := svc.Submit(context.Background(), models.NewQuizState(), "I speak")
	assert.ErrorIs(t, err, contextutils.ErrNoActiveQuiz)
}
