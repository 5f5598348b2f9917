package services

import (
	"math/rand/v2"
	"sync"

	"verbtrainer/internal/models"
	contextutils "verbtrainer/internal/utils"

	"github.com/google/uuid"
)

// RandomSource supplies uniform integers in [0, n)
type RandomSource interface {
	IntN(n int) int
}

type lockedRandom struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomSource returns a goroutine-safe source. A zero seed draws a random one.
func NewRandomSource(seed uint64) RandomSource {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &lockedRandom{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (r *lockedRandom) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.IntN(n)
}

// QuizEngine runs the translate-this-phrase quiz. It holds no per-learner
// state: every transition takes the current QuizState and returns a new one.
type QuizEngine struct {
	catalog   *VerbCatalog
	generator *PhraseGenerator
	tables    tableRenderer
	rng       RandomSource
	newID     func() string
}

// NewQuizEngine creates a new QuizEngine instance
func NewQuizEngine(catalog *VerbCatalog, generator *PhraseGenerator, rng RandomSource) *QuizEngine {
	return &QuizEngine{
		catalog:   catalog,
		generator: generator,
		tables:    tableRenderer{generator: generator},
		rng:       rng,
		newID:     uuid.NewString,
	}
}

// Start samples a verb, one of its available tenses and a pronoun with a
// form in that tense, each uniformly, and moves to AwaitingAnswer from any state.
func (e *QuizEngine) Start() (models.QuizState, error) {
	if e.catalog.Len() == 0 {
		return models.QuizState{}, contextutils.NewAppError(contextutils.ErrorCodeServiceUnavailable,
			contextutils.SeverityError, "verb catalog is empty", "")
	}
	verb := e.catalog.At(e.rng.IntN(e.catalog.Len()))
	tenses := verb.AvailableTenses()
	tense := tenses[e.rng.IntN(len(tenses))]
	var pronouns []models.PronounIndex
	for _, p := range models.AllPronouns() {
		if _, ok := verb.Form(tense, p); ok {
			pronouns = append(pronouns, p)
		}
	}
	pronoun := pronouns[e.rng.IntN(len(pronouns))]

	form, _ := verb.Form(tense, pronoun)
	q := &models.QuizQuestion{
		ID:         e.newID(),
		Infinitive: verb.Spanish,
		Tense:      tense,
		Pronoun:    pronoun,
		Prompt:     pronoun.Spanish() + " " + form,
		Expected:   e.generator.Generate(verb, tense, pronoun, 0),
	}
	return models.QuizState{Phase: models.QuizPhaseAwaitingAnswer, Question: q}, nil
}

// Submit checks an answer. Empty answers are ignored without a transition.
// A correct answer reveals; a wrong one stays in AwaitingAnswer and offers
// the answer.
func (e *QuizEngine) Submit(state models.QuizState, answer string) (models.QuizState, models.QuizFeedback, error) {
	verb, err := e.awaiting(state)
	if err != nil {
		return state, models.QuizFeedback{}, err
	}

	given := NormalizeEnglish(answer)
	if given == "" {
		return state, models.QuizFeedback{Result: models.QuizResultIgnored, CanShowAnswer: state.Attempts > 0}, nil
	}

	q := *state.Question
	q.Expected = e.generator.Generate(verb, q.Tense, q.Pronoun, 0)
	next := models.QuizState{Phase: state.Phase, Question: &q, Attempts: state.Attempts + 1}

	if given == NormalizeEnglish(q.Expected) {
		next.Phase = models.QuizPhaseRevealed
		return next, e.revealFeedback(verb, &q, models.QuizResultCorrect), nil
	}
	return next, models.QuizFeedback{Result: models.QuizResultIncorrect, CanShowAnswer: true}, nil
}

// Reveal shows the expected answer and the table, moving to Revealed
func (e *QuizEngine) Reveal(state models.QuizState) (models.QuizState, models.QuizFeedback, error) {
	verb, err := e.awaiting(state)
	if err != nil {
		return state, models.QuizFeedback{}, err
	}
	q := *state.Question
	q.Expected = e.generator.Generate(verb, q.Tense, q.Pronoun, 0)
	next := models.QuizState{Phase: models.QuizPhaseRevealed, Question: &q, Attempts: state.Attempts}
	return next, e.revealFeedback(verb, &q, models.QuizResultRevealed), nil
}

// awaiting checks that state holds an open question and returns its verb
func (e *QuizEngine) awaiting(state models.QuizState) (*models.VerbRecord, error) {
	switch {
	case state.Phase == models.QuizPhaseRevealed:
		return nil, contextutils.NewAppError(contextutils.ErrorCodeConflict, contextutils.SeverityWarn,
			"question already answered, start a new one", "")
	case state.Phase != models.QuizPhaseAwaitingAnswer || state.Question == nil:
		return nil, contextutils.ErrNoActiveQuiz
	}
	q := state.Question
	verb, ok := e.catalog.Lookup(q.Infinitive)
	if !ok || !q.Tense.Valid() || !q.Pronoun.Valid() {
		return nil, contextutils.ErrNoActiveQuiz
	}
	return verb, nil
}

func (e *QuizEngine) revealFeedback(verb *models.VerbRecord, q *models.QuizQuestion, result models.QuizResult) models.QuizFeedback {
	return models.QuizFeedback{
		Result:  result,
		Answer:  q.Expected,
		Heading: "All tenses for " + verb.Sense(0).Display() + " (" + q.Pronoun.English() + ")",
		Rows:    e.tables.forPronoun(verb, 0, q.Pronoun, identitySlots(verb), &q.Tense),
	}
}
