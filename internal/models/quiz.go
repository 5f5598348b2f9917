package models

// QuizPhase is the state of the quiz state machine
type QuizPhase string

const (
	QuizPhaseIdle           QuizPhase = "idle"
	QuizPhaseAwaitingAnswer QuizPhase = "awaiting_answer"
	QuizPhaseRevealed       QuizPhase = "revealed"
)

// QuizResult classifies feedback for a submitted or revealed answer
type QuizResult string

const (
	QuizResultCorrect   QuizResult = "correct"
	QuizResultIncorrect QuizResult = "incorrect"
	QuizResultRevealed  QuizResult = "revealed"
	QuizResultIgnored   QuizResult = "ignored"
)

// QuizQuestion is one sampled (verb, tense, pronoun) triple.
// Expected is never serialized; it is recomputed from the catalog.
type QuizQuestion struct {
	ID         string       `json:"id"`
	Infinitive string       `json:"infinitive"`
	Tense      Tense        `json:"tense"`
	Pronoun    PronounIndex `json:"pronoun"`
	Prompt     string       `json:"prompt"`
	Expected   string       `json:"-"`
}

// QuizState is the single current-question slot. It is replaced wholesale on
// every transition.
type QuizState struct {
	Phase    QuizPhase     `json:"phase"`
	Question *QuizQuestion `json:"question,omitempty"`
	Attempts int           `json:"attempts"`
}

// NewQuizState returns the idle state
func NewQuizState() QuizState {
	return QuizState{Phase: QuizPhaseIdle}
}

// QuizFeedback is what the learner sees after an answer or a reveal
type QuizFeedback struct {
	Result        QuizResult `json:"result"`
	Message       string     `json:"message,omitempty"`
	Answer        string     `json:"answer,omitempty"`
	CanShowAnswer bool       `json:"can_show_answer"`
	Heading       string     `json:"heading,omitempty"`
	Rows          []TableRow `json:"rows,omitempty"`
}
