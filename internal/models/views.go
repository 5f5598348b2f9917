package models

// Speech language tags handed to the text-to-speech boundary
const (
	SpeechLangSpanish = "es-ES"
	SpeechLangEnglish = "en-US"
)

// SpeechCue is a literal text plus the language it should be spoken in
type SpeechCue struct {
	Text string `json:"text"`
	Lang string `json:"lang"`
}

// TableRow is one line of a rendered conjugation table
type TableRow struct {
	Tense       string    `json:"tense"`
	Pronoun     string    `json:"pronoun"`
	Form        string    `json:"form"`
	Spanish     SpeechCue `json:"spanish"`
	English     SpeechCue `json:"english"`
	Highlighted bool      `json:"highlighted,omitempty"`
}

// Tab is one meaning tab shown when a query has several candidates
type Tab struct {
	Index  int    `json:"index"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// ResultView is the rendered state of a resolution
type ResultView struct {
	Direction   Direction  `json:"direction"`
	Query       string     `json:"query"`
	Found       bool       `json:"found"`
	Message     string     `json:"message,omitempty"`
	Tabs        []Tab      `json:"tabs,omitempty"`
	ActiveIndex int        `json:"active_index"`
	Heading     string     `json:"heading,omitempty"`
	Infinitive  string     `json:"infinitive,omitempty"`
	Sense       string     `json:"sense,omitempty"`
	Tense       string     `json:"tense,omitempty"`
	Pronoun     string     `json:"pronoun,omitempty"`
	Primary     *SpeechCue `json:"primary,omitempty"`
	Rows        []TableRow `json:"rows,omitempty"`
}

// VerbSummary is the catalog listing entry
type VerbSummary struct {
	Spanish string   `json:"spanish"`
	Senses  []string `json:"senses"`
	Tenses  []string `json:"tenses"`
}

// SenseTable is the full conjugation table of a verb rendered for one sense
type SenseTable struct {
	Sense string     `json:"sense"`
	Rows  []TableRow `json:"rows"`
}

// VerbDetail is a single catalog record with a table per sense
type VerbDetail struct {
	Spanish string       `json:"spanish"`
	Senses  []string     `json:"senses"`
	Tenses  []string     `json:"tenses"`
	Tables  []SenseTable `json:"tables"`
}

// TenseInfo describes a tense for learners
type TenseInfo struct {
	Name       string `json:"name"`
	Definition string `json:"definition"`
	Example    string `json:"example"`
}

// Prompt is a free-translation practice prompt with a suggested answer
type Prompt struct {
	Text      string `json:"text" yaml:"text"`
	Suggested string `json:"suggested,omitempty" yaml:"suggested,omitempty"`
}
