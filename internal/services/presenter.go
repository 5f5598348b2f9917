package services

import (
	"fmt"

	"verbtrainer/internal/models"
)

// DisambiguationPresenter holds the currently displayed candidate of a
// resolution. Selecting is idempotent and only moves the displayed index.
// A presenter is not safe for concurrent use; build one per request.
type DisambiguationPresenter struct {
	match    *models.ResolvedMatch
	resolver *PhraseResolver
	tables   tableRenderer
	selected int
}

// NewDisambiguationPresenter starts on the initial index, clamped to the
// candidate range. match must hold at least one candidate.
func NewDisambiguationPresenter(match *models.ResolvedMatch, initial int, resolver *PhraseResolver, generator *PhraseGenerator) *DisambiguationPresenter {
	p := &DisambiguationPresenter{
		match:    match,
		resolver: resolver,
		tables:   tableRenderer{generator: generator},
	}
	p.Select(initial)
	return p
}

// Len returns the number of candidates
func (p *DisambiguationPresenter) Len() int {
	return len(p.match.Candidates)
}

// Select clamps i to [0, N-1], makes it current and returns the index used
func (p *DisambiguationPresenter) Select(i int) int {
	p.selected = clamp(i, p.Len())
	p.match.Selected = p.selected
	return p.selected
}

// Selected returns the current index
func (p *DisambiguationPresenter) Selected() int {
	return p.selected
}

// Current returns the current candidate
func (p *DisambiguationPresenter) Current() models.Candidate {
	return p.match.Candidates[p.selected]
}

// RenderAt selects i and renders it
func (p *DisambiguationPresenter) RenderAt(i int) models.ResultView {
	p.Select(i)
	return p.Render()
}

// Render builds the view of the current candidate
func (p *DisambiguationPresenter) Render() models.ResultView {
	c := p.Current()
	sense := c.Sense()
	view := models.ResultView{
		Direction:   p.match.Direction,
		Query:       p.match.Query,
		Found:       true,
		ActiveIndex: p.selected,
		Infinitive:  c.Verb.Spanish,
		Sense:       sense.Display(),
		Tabs:        p.tabs(),
	}

	if p.match.Direction == models.DirectionEnglish {
		p.renderEnglish(&view, c)
	} else {
		p.renderSpanish(&view, c)
	}
	return view
}

func (p *DisambiguationPresenter) renderSpanish(view *models.ResultView, c models.Candidate) {
	sense := c.Sense()
	if c.InfinitiveOnly || !c.IsBound() {
		view.Heading = fmt.Sprintf("English equivalents for %s (all pronouns)", c.Verb.Spanish)
		view.Primary = &models.SpeechCue{Text: sense.Display(), Lang: models.SpeechLangEnglish}
		view.Rows = p.tables.allPronouns(c.Verb, c.SenseIndex)
		return
	}

	pronoun := *c.Pronoun
	tense := *c.Tense
	view.Heading = fmt.Sprintf("English equivalents for %s (%s)", c.Verb.Spanish, pronoun.Spanish())
	view.Tense = tense.String()
	view.Pronoun = pronoun.Spanish()
	view.Primary = &models.SpeechCue{
		Text: p.tables.generator.Generate(c.Verb, tense, pronoun, c.SenseIndex),
		Lang: models.SpeechLangEnglish,
	}
	view.Rows = p.tables.forPronoun(c.Verb, c.SenseIndex, pronoun, identitySlots(c.Verb), &tense)
}

func (p *DisambiguationPresenter) renderEnglish(view *models.ResultView, c models.Candidate) {
	pronoun := models.PronounI
	if c.Pronoun != nil {
		pronoun = *c.Pronoun
	}
	shown := models.TensePresent
	heading := fmt.Sprintf("Spanish conjugations for %s (%s)", c.Sense().Display(), pronoun.English())
	if c.Tense != nil {
		shown = *c.Tense
		heading += fmt.Sprintf(" [%s]", shown)
	}

	view.Heading = heading
	view.Tense = shown.String()
	view.Pronoun = pronoun.English()
	if form, ok := c.Verb.Form(shown, pronoun); ok {
		view.Primary = &models.SpeechCue{Text: pronoun.Spanish() + " " + form, Lang: models.SpeechLangSpanish}
	}
	view.Rows = p.tables.forPronoun(c.Verb, c.SenseIndex, pronoun, p.resolver.OfferedTenses(c), &shown)
}

func (p *DisambiguationPresenter) tabs() []models.Tab {
	first := p.match.Candidates[0]
	if p.Len() < 2 && !(p.match.Direction == models.DirectionSpanish && first.InfinitiveOnly) {
		return nil
	}
	tabs := make([]models.Tab, 0, p.Len())
	for i, c := range p.match.Candidates {
		tabs = append(tabs, models.Tab{Index: i, Label: tabLabel(p.match.Direction, c), Active: i == p.selected})
	}
	return tabs
}

// tabLabel names a meaning tab. English tabs pair the Spanish verb with the
// sense; the two "have" senses name their Spanish verb explicitly.
func tabLabel(direction models.Direction, c models.Candidate) string {
	sense := c.Sense()
	if direction == models.DirectionSpanish {
		return sense.Display()
	}
	switch {
	case sense.IsAuxiliaryHave():
		return "haber (auxiliary) / to have (auxiliary)"
	case sense.IsPossessionHave():
		return "tener (shows possession) / to have (shows possession)"
	default:
		return fmt.Sprintf("%s / %s", c.Verb.Spanish, models.Sense{Text: sense.Bare(), Note: sense.Note}.Display())
	}
}

func identitySlots(verb *models.VerbRecord) []TenseSlot {
	tenses := verb.AvailableTenses()
	slots := make([]TenseSlot, len(tenses))
	for i, t := range tenses {
		slots[i] = TenseSlot{Tense: t, Source: t}
	}
	return slots
}

// tableRenderer builds conjugation table rows. Slots whose Spanish form is
// absent are skipped.
type tableRenderer struct {
	generator *PhraseGenerator
}

func (t tableRenderer) row(verb *models.VerbRecord, senseIndex int, pronoun models.PronounIndex, slot TenseSlot) (models.TableRow, bool) {
	form, ok := verb.Form(slot.Source, pronoun)
	if !ok {
		return models.TableRow{}, false
	}
	return models.TableRow{
		Tense:   slot.Tense.String(),
		Pronoun: pronoun.Spanish(),
		Form:    form,
		Spanish: models.SpeechCue{Text: pronoun.Spanish() + " " + form, Lang: models.SpeechLangSpanish},
		English: models.SpeechCue{
			Text: t.generator.Generate(verb, slot.Tense, pronoun, senseIndex),
			Lang: models.SpeechLangEnglish,
		},
	}, true
}

func (t tableRenderer) forPronoun(verb *models.VerbRecord, senseIndex int, pronoun models.PronounIndex, slots []TenseSlot, highlight *models.Tense) []models.TableRow {
	rows := make([]models.TableRow, 0, len(slots))
	for _, slot := range slots {
		r, ok := t.row(verb, senseIndex, pronoun, slot)
		if !ok {
			continue
		}
		r.Highlighted = highlight != nil && *highlight == slot.Tense
		rows = append(rows, r)
	}
	return rows
}

func (t tableRenderer) allPronouns(verb *models.VerbRecord, senseIndex int) []models.TableRow {
	slots := identitySlots(verb)
	rows := make([]models.TableRow, 0, len(slots)*models.PronounCount)
	for _, p := range models.AllPronouns() {
		for _, slot := range slots {
			if r, ok := t.row(verb, senseIndex, p, slot); ok {
				rows = append(rows, r)
			}
		}
	}
	return rows
}
