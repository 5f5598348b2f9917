package models

import (
	"fmt"
)

// PronounCount is the number of grammatical persons every per-pronoun row has
const PronounCount = 6

// PronounIndex is the only legal index into a per-pronoun sequence. The
// English and Spanish label tables are aligned on it.
type PronounIndex int

const (
	PronounI PronounIndex = iota
	PronounYou
	PronounHe
	PronounWe
	PronounYouAll
	PronounThey
)

var (
	englishPronouns   = [PronounCount]string{"I", "You", "He", "We", "You all", "They"}
	spanishPronouns   = [PronounCount]string{"Yo", "Tú", "Él/Ella/Usted", "Nosotros", "Vosotros", "Ellos/Ellas/Ustedes"}
	reflexivePronouns = [PronounCount]string{"myself", "yourself", "himself", "ourselves", "yourselves", "themselves"}
)

// AllPronouns returns the six pronoun indexes in order
func AllPronouns() []PronounIndex {
	return []PronounIndex{PronounI, PronounYou, PronounHe, PronounWe, PronounYouAll, PronounThey}
}

// EnglishPronouns returns a copy of the English pronoun labels
func EnglishPronouns() []string {
	out := englishPronouns
	return out[:]
}

// SpanishPronouns returns a copy of the Spanish pronoun labels
func SpanishPronouns() []string {
	out := spanishPronouns
	return out[:]
}

// ParsePronoun converts an int into a PronounIndex, rejecting out-of-range values
func ParsePronoun(i int) (PronounIndex, error) {
	p := PronounIndex(i)
	if !p.Valid() {
		return 0, fmt.Errorf("pronoun index %d out of range [0,%d)", i, PronounCount)
	}
	return p, nil
}

// Valid reports whether p is within 0..5
func (p PronounIndex) Valid() bool {
	return p >= 0 && p < PronounCount
}

func (p PronounIndex) mustBeValid() {
	if !p.Valid() {
		panic(fmt.Sprintf("models: pronoun index %d out of range", int(p)))
	}
}

// English returns the English label
func (p PronounIndex) English() string {
	p.mustBeValid()
	return englishPronouns[p]
}

// Spanish returns the Spanish label
func (p PronounIndex) Spanish() string {
	p.mustBeValid()
	return spanishPronouns[p]
}

// Reflexive returns the English reflexive pronoun (myself, yourself, ...)
func (p PronounIndex) Reflexive() string {
	p.mustBeValid()
	return reflexivePronouns[p]
}

// IsThirdSingular reports whether p is the He/She/It row
func (p PronounIndex) IsThirdSingular() bool {
	return p == PronounHe
}
