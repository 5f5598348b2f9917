// Package models defines the data structures shared by the verb trainer:
// the catalog records, the resolution results and the API views built from them.
package models

import (
	"strings"
)

// NotAvailable is the legacy sentinel some catalog sources use for a missing
// conjugation. It is normalized to absence at load time.
const NotAvailable = "(not available)"

// Forms holds one surface form per pronoun, indexed by PronounIndex
type Forms [PronounCount]string

// At returns the form for pronoun p
func (f Forms) At(p PronounIndex) string {
	p.mustBeValid()
	return f[p]
}

// VerbRecord is one catalog entry. Records are immutable after load.
type VerbRecord struct {
	Spanish      string          `json:"spanish" yaml:"spanish"`
	Senses       []Sense         `json:"english" yaml:"english"`
	Conjugations map[Tense]Forms `json:"conjugations" yaml:"conjugations"`
}

// Sense returns the sense at index i. An out-of-range index is a programmer
// error and panics.
func (v *VerbRecord) Sense(i int) Sense {
	if i < 0 || i >= len(v.Senses) {
		panic("models: sense index out of range for " + v.Spanish)
	}
	return v.Senses[i]
}

// HasTense reports whether the verb has a conjugation row for t
func (v *VerbRecord) HasTense(t Tense) bool {
	_, ok := v.Conjugations[t]
	return ok
}

// Form returns the surface form for (t, p); ok is false when the tense is absent
func (v *VerbRecord) Form(t Tense, p PronounIndex) (string, bool) {
	forms, ok := v.Conjugations[t]
	if !ok {
		return "", false
	}
	form := forms.At(p)
	return form, form != ""
}

// AvailableTenses lists the tenses present for the verb in display order
func (v *VerbRecord) AvailableTenses() []Tense {
	out := make([]Tense, 0, len(v.Conjugations))
	for _, t := range AllTenses() {
		if v.HasTense(t) {
			out = append(out, t)
		}
	}
	return out
}

// IsReflexive reports whether the infinitive carries the reflexive "se" ending
func (v *VerbRecord) IsReflexive() bool {
	return strings.HasSuffix(strings.ToLower(v.Spanish), "se")
}

// IrregularEntry overrides the regular English past forms for one sense key.
// PreteriteForms and PresentForms, when set, override per pronoun.
type IrregularEntry struct {
	Preterite      string `json:"preterite" yaml:"preterite"`
	PastParticiple string `json:"past_participle" yaml:"past_participle"`
	PreteriteForms *Forms `json:"preterite_forms,omitempty" yaml:"preterite_forms,omitempty"`
	PresentForms   *Forms `json:"present_forms,omitempty" yaml:"present_forms,omitempty"`
}

// PreteriteFor returns the preterite for pronoun p
func (e IrregularEntry) PreteriteFor(p PronounIndex) string {
	if e.PreteriteForms != nil {
		return e.PreteriteForms.At(p)
	}
	return e.Preterite
}
