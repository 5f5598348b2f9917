package services

import (
	"context"

	"verbtrainer/internal/models"
	"verbtrainer/internal/observability"
	"verbtrainer/internal/serviceinterfaces"
	contextutils "verbtrainer/internal/utils"
)

// PracticeServiceInterface defines the interface for the practice service
type PracticeServiceInterface = serviceinterfaces.PracticeService

// PracticeService wraps the resolver, generator and presenter with tracing,
// logging and metrics. The wrapped components are pure and shared.
type PracticeService struct {
	bundle    *CatalogBundle
	generator *PhraseGenerator
	resolver  *PhraseResolver
	rng       RandomSource
	metrics   *observability.TrainerMetrics
	logger    *observability.Logger
}

// NewPracticeService creates a new PracticeService instance
func NewPracticeService(bundle *CatalogBundle, generator *PhraseGenerator, resolver *PhraseResolver, rng RandomSource, metrics *observability.TrainerMetrics, logger *observability.Logger) *PracticeService {
	return &PracticeService{
		bundle:    bundle,
		generator: generator,
		resolver:  resolver,
		rng:       rng,
		metrics:   metrics,
		logger:    logger,
	}
}

// ResolveSpanish resolves a conjugated Spanish form or infinitive
func (s *PracticeService) ResolveSpanish(ctx context.Context, text string, sense int) (result *models.ResultView, err error) {
	ctx, span := observability.TracePracticeFunction(ctx, "resolve_spanish",
		observability.AttributeDirection(string(models.DirectionSpanish)),
		observability.AttributeInputLength(len(text)),
		observability.AttributeSense(sense),
	)
	defer observability.FinishSpan(span, &err)

	match := s.resolver.ResolveSpanish(text)
	s.metrics.RecordResolution(ctx, string(models.DirectionSpanish), match.Len())
	if match == nil {
		s.logger.Debug(ctx, "No Spanish match", map[string]interface{}{"query": text})
		return s.notFound(ctx, models.DirectionSpanish, text, contextutils.MessageNoMatchSpanish), nil
	}

	view := NewDisambiguationPresenter(match, sense, s.resolver, s.generator).Render()
	span.SetAttributes(observability.AttributeVerb(view.Infinitive), observability.AttributeCandidates(match.Len()))
	return &view, nil
}

// ResolveEnglish resolves an English phrase; sense picks the displayed tab
func (s *PracticeService) ResolveEnglish(ctx context.Context, text string, sense int) (result *models.ResultView, err error) {
	ctx, span := observability.TracePracticeFunction(ctx, "resolve_english",
		observability.AttributeDirection(string(models.DirectionEnglish)),
		observability.AttributeInputLength(len(text)),
		observability.AttributeSense(sense),
	)
	defer observability.FinishSpan(span, &err)

	match := s.resolver.ResolveEnglish(text, sense)
	s.metrics.RecordResolution(ctx, string(models.DirectionEnglish), match.Len())
	if match == nil {
		s.logger.Debug(ctx, "No English match", map[string]interface{}{"query": text})
		return s.notFound(ctx, models.DirectionEnglish, text, contextutils.MessageNoMatchEnglish), nil
	}

	view := NewDisambiguationPresenter(match, match.Selected, s.resolver, s.generator).Render()
	span.SetAttributes(observability.AttributeVerb(view.Infinitive), observability.AttributeCandidates(match.Len()))
	return &view, nil
}

func (s *PracticeService) notFound(ctx context.Context, direction models.Direction, text string, key contextutils.MessageKey) *models.ResultView {
	return &models.ResultView{
		Direction: direction,
		Query:     text,
		Found:     false,
		Message:   contextutils.GetLocalizedUIMessage(key, contextutils.GetLocaleFromContext(ctx)),
	}
}

// Generate returns the English phrase for one slot after validating indexes
func (s *PracticeService) Generate(ctx context.Context, req serviceinterfaces.GenerateRequest) (result string, err error) {
	_, span := observability.TracePracticeFunction(ctx, "generate",
		observability.AttributeVerb(req.Infinitive),
		observability.AttributeTense(req.Tense.String()),
		observability.AttributePronoun(req.Pronoun),
		observability.AttributeSense(req.Sense),
	)
	defer observability.FinishSpan(span, &err)

	if err := contextutils.ValidateStruct(req); err != nil {
		return "", err
	}
	if !req.Tense.Valid() {
		return "", contextutils.NewAppError(contextutils.ErrorCodeInvalidInput, contextutils.SeverityWarn, "unknown tense", "")
	}
	verb, ok := s.bundle.Verbs.Lookup(req.Infinitive)
	if !ok {
		return "", contextutils.WrapErrorf(contextutils.ErrVerbNotFound, "verb %q is not in the catalog", req.Infinitive)
	}
	if req.Sense >= len(verb.Senses) {
		return "", contextutils.NewAppError(contextutils.ErrorCodeInvalidInput, contextutils.SeverityWarn,
			"sense index out of range", verb.Spanish)
	}
	pronoun, err := models.ParsePronoun(req.Pronoun)
	if err != nil {
		return "", contextutils.NewAppErrorWithCause(contextutils.ErrorCodeInvalidInput, contextutils.SeverityWarn,
			"pronoun index out of range", "", err)
	}
	return s.generator.Generate(verb, req.Tense, pronoun, req.Sense), nil
}

// ListVerbs summarizes the catalog
func (s *PracticeService) ListVerbs(ctx context.Context) []models.VerbSummary {
	_, span := observability.TraceCatalogFunction(ctx, "list_verbs")
	defer observability.FinishSpan(span, nil)
	return s.bundle.Verbs.Summaries()
}

// GetVerb returns one verb with the all-pronoun table for every sense
func (s *PracticeService) GetVerb(ctx context.Context, infinitive string) (result *models.VerbDetail, err error) {
	_, span := observability.TraceCatalogFunction(ctx, "get_verb", observability.AttributeVerb(infinitive))
	defer observability.FinishSpan(span, &err)

	verb, ok := s.bundle.Verbs.Lookup(infinitive)
	if !ok {
		return nil, contextutils.WrapErrorf(contextutils.ErrVerbNotFound, "verb %q is not in the catalog", infinitive)
	}

	tables := tableRenderer{generator: s.generator}
	detail := &models.VerbDetail{
		Spanish: verb.Spanish,
		Senses:  senseLabels(verb),
		Tenses:  tenseLabels(verb.AvailableTenses()),
	}
	for i, sense := range verb.Senses {
		detail.Tables = append(detail.Tables, models.SenseTable{
			Sense: sense.Display(),
			Rows:  tables.allPronouns(verb, i),
		})
	}
	return detail, nil
}

// Tenses returns the tense descriptions
func (s *PracticeService) Tenses(_ context.Context) []models.TenseInfo {
	out := make([]models.TenseInfo, len(s.bundle.Tenses))
	copy(out, s.bundle.Tenses)
	return out
}

// RandomPrompt draws a prompt from the deck
func (s *PracticeService) RandomPrompt(ctx context.Context) (result *models.Prompt, err error) {
	_, span := observability.TracePracticeFunction(ctx, "random_prompt")
	defer observability.FinishSpan(span, &err)

	prompt, ok := s.bundle.Prompts.Draw(s.rng)
	if !ok {
		return nil, contextutils.WrapError(contextutils.ErrRecordNotFound, "prompt deck is empty")
	}
	return &prompt, nil
}
