// Package serviceinterfaces defines service interfaces for dependency injection and testing.
package serviceinterfaces

import (
	"context"

	"verbtrainer/internal/models"
)

// GenerateRequest asks for the English phrase of one conjugation slot
type GenerateRequest struct {
	Infinitive string       `json:"infinitive" validate:"required"`
	Tense      models.Tense `json:"tense"`
	Pronoun    int          `json:"pronoun" validate:"gte=0,lte=5"`
	Sense      int          `json:"sense" validate:"gte=0"`
}

// PracticeService resolves learner input and renders the result
type PracticeService interface {
	// ResolveSpanish resolves a conjugated form or infinitive. A miss is a
	// view with Found false, not an error.
	ResolveSpanish(ctx context.Context, text string, sense int) (*models.ResultView, error)

	// ResolveEnglish resolves an English phrase; sense picks the meaning tab
	ResolveEnglish(ctx context.Context, text string, sense int) (*models.ResultView, error)

	// Generate returns the English phrase for a slot
	Generate(ctx context.Context, req GenerateRequest) (string, error)

	// ListVerbs summarizes the catalog
	ListVerbs(ctx context.Context) []models.VerbSummary

	// GetVerb returns one verb with a table per sense
	GetVerb(ctx context.Context, infinitive string) (*models.VerbDetail, error)

	// Tenses returns the tense descriptions in display order
	Tenses(ctx context.Context) []models.TenseInfo

	// RandomPrompt draws a free-translation prompt
	RandomPrompt(ctx context.Context) (*models.Prompt, error)
}
