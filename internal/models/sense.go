package models

import (
	"regexp"
	"strings"
)

var parentheticalPattern = regexp.MustCompile(`\s*\(([^)]*)\)\s*`)

// Notes with a fixed meaning in the generator and resolver
const (
	NoteAuxiliary       = "auxiliary"
	NoteShowsPossession = "shows possession"

	legacyNotePossession = "possession"
)

// Sense is one English meaning of a verb. Text is the bare sense ("to have"),
// Note the optional disambiguator ("auxiliary").
type Sense struct {
	Text string `json:"text" yaml:"text"`
	Note string `json:"note,omitempty" yaml:"note,omitempty"`
}

// ParseSense splits a raw sense such as "to have (auxiliary)" into text and note.
// Only the first parenthetical is kept as the note; every parenthetical is
// removed from the text.
func ParseSense(raw string) Sense {
	raw = strings.TrimSpace(raw)
	var note string
	if m := parentheticalPattern.FindStringSubmatch(raw); m != nil {
		note = strings.TrimSpace(m[1])
	}
	text := strings.TrimSpace(parentheticalPattern.ReplaceAllString(raw, " "))
	return Sense{Text: collapseSpaces(text), Note: note}
}

// Display renders the sense the way the catalog writes it
func (s Sense) Display() string {
	if s.Note == "" {
		return s.Text
	}
	return s.Text + " (" + s.Note + ")"
}

// Base is the sense text without the leading "to " and without any
// comma-separated alternatives ("to speak, to talk" -> "speak").
func (s Sense) Base() string {
	base := strings.TrimSpace(s.Text)
	if idx := strings.Index(base, ","); idx >= 0 {
		base = base[:idx]
	}
	base = strings.TrimSpace(base)
	if strings.HasPrefix(strings.ToLower(base), "to ") {
		base = strings.TrimSpace(base[3:])
	}
	return base
}

// Bare is the sense text without its leading "to "
func (s Sense) Bare() string {
	text := strings.TrimSpace(s.Text)
	if strings.HasPrefix(strings.ToLower(text), "to ") {
		return strings.TrimSpace(text[3:])
	}
	return text
}

// LookupKey is the normalized sense used as the irregular table key:
// parentheticals stripped, lowercased.
func (s Sense) LookupKey() string {
	return strings.ToLower(collapseSpaces(s.Text))
}

// FullKey is the lowercased sense including its note
func (s Sense) FullKey() string {
	return strings.ToLower(collapseSpaces(s.Display()))
}

// IsAuxiliaryHave reports whether the sense is the perfect-tense auxiliary
func (s Sense) IsAuxiliaryHave() bool {
	return s.LookupKey() == "to have" && strings.EqualFold(s.Note, NoteAuxiliary)
}

// IsPossessionHave reports whether the sense is possession "have"
func (s Sense) IsPossessionHave() bool {
	return s.LookupKey() == "to have" && strings.EqualFold(s.Note, NoteShowsPossession)
}

// LegacyDisplay renders the sense with the note spelling older catalogs used,
// or "" when the note has no legacy spelling
func (s Sense) LegacyDisplay() string {
	if strings.EqualFold(s.Note, NoteShowsPossession) {
		return s.Text + " (" + legacyNotePossession + ")"
	}
	return ""
}

// NormalizeNote maps legacy note spellings onto their canonical form
func NormalizeNote(note string) string {
	note = strings.TrimSpace(note)
	if strings.EqualFold(note, legacyNotePossession) {
		return NoteShowsPossession
	}
	return note
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
