package models

import (
	"fmt"
	"strings"
)

// Tense is one of the nine canonical tenses. The numeric order is display order.
type Tense int

const (
	TensePresent Tense = iota
	TensePreterite
	TenseImperfect
	TenseFuture
	TenseConditional
	TensePresentPerfect
	TensePastPerfect
	TenseFuturePerfect
	TenseConditionalPerfect

	tenseCount
)

var tenseLabels = [tenseCount]string{
	"Present",
	"Preterite",
	"Imperfect",
	"Future",
	"Conditional",
	"Present Perfect",
	"Past Perfect",
	"Future Perfect",
	"Conditional Perfect",
}

// AllTenses returns every tense in display order
func AllTenses() []Tense {
	out := make([]Tense, tenseCount)
	for i := range out {
		out[i] = Tense(i)
	}
	return out
}

// SimpleTenses returns the five non-compound tenses
func SimpleTenses() []Tense {
	return []Tense{TensePresent, TensePreterite, TenseImperfect, TenseFuture, TenseConditional}
}

// PerfectTenses returns the four compound tenses
func PerfectTenses() []Tense {
	return []Tense{TensePresentPerfect, TensePastPerfect, TenseFuturePerfect, TenseConditionalPerfect}
}

// Valid reports whether t is one of the nine canonical tenses
func (t Tense) Valid() bool {
	return t >= 0 && t < tenseCount
}

// String returns the display label
func (t Tense) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Tense(%d)", int(t))
	}
	return tenseLabels[t]
}

// IsPerfect reports whether t is a compound tense
func (t Tense) IsPerfect() bool {
	return t >= TensePresentPerfect && t < tenseCount
}

// AuxiliarySource maps a perfect tense to the simple tense the auxiliary is
// conjugated in (Present Perfect uses the Present of haber, and so on).
func (t Tense) AuxiliarySource() (Tense, bool) {
	switch t {
	case TensePresentPerfect:
		return TensePresent, true
	case TensePastPerfect:
		return TenseImperfect, true
	case TenseFuturePerfect:
		return TenseFuture, true
	case TenseConditionalPerfect:
		return TenseConditional, true
	default:
		return t, false
	}
}

// ParseTense maps a label to a Tense, ignoring case and surrounding space
func ParseTense(label string) (Tense, bool) {
	label = strings.TrimSpace(label)
	for i, l := range tenseLabels {
		if strings.EqualFold(l, label) {
			return Tense(i), true
		}
	}
	return 0, false
}

// MarshalText encodes the tense as its label, which also makes it usable as a map key
func (t Tense) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid tense %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText decodes a tense label
func (t *Tense) UnmarshalText(text []byte) error {
	parsed, ok := ParseTense(string(text))
	if !ok {
		return fmt.Errorf("unknown tense %q", string(text))
	}
	*t = parsed
	return nil
}
