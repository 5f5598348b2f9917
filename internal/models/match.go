package models

// Direction names which language a query was written in
type Direction string

const (
	DirectionSpanish Direction = "spanish"
	DirectionEnglish Direction = "english"
)

// Candidate binds a query to a verb and sense, and optionally to a tense and
// pronoun. InfinitiveOnly candidates never carry a tense or pronoun.
type Candidate struct {
	Verb           *VerbRecord
	Tense          *Tense
	Pronoun        *PronounIndex
	SenseIndex     int
	InfinitiveOnly bool
}

// Sense returns the candidate's sense
func (c Candidate) Sense() Sense {
	return c.Verb.Sense(c.SenseIndex)
}

// IsBound reports whether both tense and pronoun are set
func (c Candidate) IsBound() bool {
	return c.Tense != nil && c.Pronoun != nil
}

// ResolvedMatch is the result of a resolution: every candidate found in order
// plus the index the caller should display first.
type ResolvedMatch struct {
	Direction  Direction
	Query      string
	Candidates []Candidate
	Selected   int
}

// First returns the first candidate
func (m *ResolvedMatch) First() Candidate {
	return m.Candidates[0]
}

// Len returns the number of candidates
func (m *ResolvedMatch) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Candidates)
}

// TensePtr returns a pointer to a copy of t
func TensePtr(t Tense) *Tense {
	return &t
}

// PronounPtr returns a pointer to a copy of p
func PronounPtr(p PronounIndex) *PronounIndex {
	return &p
}
