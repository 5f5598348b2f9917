package services

import (
	"strings"

	"verbtrainer/internal/models"
)

// TenseSlot is a tense offered for a candidate together with the tense whose
// conjugation row supplies the Spanish form. They differ only for the
// auxiliary "have", where perfect tenses read the simple rows of haber.
type TenseSlot struct {
	Tense  models.Tense
	Source models.Tense
}

type spanishEntry struct {
	form        string
	withPronoun string
	verb        *models.VerbRecord
	tense       models.Tense
	pronoun     models.PronounIndex
}

// PhraseResolver maps raw Spanish or English input to catalog candidates.
// The lookup tables are built once and never mutated.
type PhraseResolver struct {
	catalog   *VerbCatalog
	generator *PhraseGenerator

	spanish []spanishEntry
	english map[string]models.Candidate
}

// NewPhraseResolver precomputes the folded Spanish forms and the generated
// English phrases in catalog × tense × pronoun order.
func NewPhraseResolver(catalog *VerbCatalog, generator *PhraseGenerator) *PhraseResolver {
	r := &PhraseResolver{
		catalog:   catalog,
		generator: generator,
		english:   make(map[string]models.Candidate),
	}
	for _, verb := range catalog.Verbs() {
		for _, tense := range verb.AvailableTenses() {
			for _, p := range models.AllPronouns() {
				form, ok := verb.Form(tense, p)
				if !ok {
					continue
				}
				r.spanish = append(r.spanish, spanishEntry{
					form:        FoldSpanish(form),
					withPronoun: FoldSpanish(p.Spanish() + " " + form),
					verb:        verb,
					tense:       tense,
					pronoun:     p,
				})
			}
		}
	}
	for _, verb := range catalog.Verbs() {
		for senseIndex := range verb.Senses {
			for _, tense := range verb.AvailableTenses() {
				for _, p := range models.AllPronouns() {
					key := NormalizeEnglish(generator.Generate(verb, tense, p, senseIndex))
					if _, seen := r.english[key]; seen {
						continue
					}
					r.english[key] = models.Candidate{
						Verb:       verb,
						Tense:      models.TensePtr(tense),
						Pronoun:    models.PronounPtr(p),
						SenseIndex: senseIndex,
					}
				}
			}
		}
	}
	return r
}

// ResolveSpanish matches a conjugated form ("hablo", "yo hablo") or an
// infinitive. The result has one candidate per sense of the matched verb.
// It returns nil when nothing matches.
func (r *PhraseResolver) ResolveSpanish(raw string) *models.ResolvedMatch {
	query := FoldSpanish(raw)
	if query == "" {
		return nil
	}

	for _, e := range r.spanish {
		if e.form == query || e.withPronoun == query {
			return perSenseMatch(raw, e.verb, func(senseIndex int) models.Candidate {
				return models.Candidate{
					Verb:       e.verb,
					Tense:      models.TensePtr(e.tense),
					Pronoun:    models.PronounPtr(e.pronoun),
					SenseIndex: senseIndex,
				}
			})
		}
	}

	for _, verb := range r.catalog.Verbs() {
		if FoldSpanish(verb.Spanish) == query {
			return perSenseMatch(raw, verb, func(senseIndex int) models.Candidate {
				return models.Candidate{Verb: verb, SenseIndex: senseIndex, InfinitiveOnly: true}
			})
		}
	}
	return nil
}

func perSenseMatch(raw string, verb *models.VerbRecord, build func(int) models.Candidate) *models.ResolvedMatch {
	m := &models.ResolvedMatch{Direction: models.DirectionSpanish, Query: raw}
	for i := range verb.Senses {
		m.Candidates = append(m.Candidates, build(i))
	}
	return m
}

// ResolveEnglish matches an English phrase. An exact generated phrase wins
// outright; otherwise every sense matching the input is collected so the
// caller can offer meaning tabs; otherwise a loose substring match is tried.
// preferredSense selects the initially displayed candidate and is clamped.
func (r *PhraseResolver) ResolveEnglish(raw string, preferredSense int) *models.ResolvedMatch {
	phrase := NormalizeEnglish(raw)
	if phrase == "" {
		return nil
	}
	m := &models.ResolvedMatch{Direction: models.DirectionEnglish, Query: raw}

	if c, ok := r.english[phrase]; ok {
		m.Candidates = []models.Candidate{c}
		return m
	}

	for _, verb := range r.catalog.Verbs() {
		for i, sense := range verb.Senses {
			if senseMatches(phrase, sense) {
				m.Candidates = append(m.Candidates, models.Candidate{Verb: verb, SenseIndex: i})
			}
		}
	}
	if len(m.Candidates) > 0 {
		m.Selected = clamp(preferredSense, len(m.Candidates))
		return m
	}

	for _, verb := range r.catalog.Verbs() {
		for i, sense := range verb.Senses {
			base := NormalizeEnglish(sense.Base())
			if base == "" || !strings.Contains(phrase, base) {
				continue
			}
			m.Candidates = []models.Candidate{{
				Verb:       verb,
				Pronoun:    models.PronounPtr(findPronoun(phrase)),
				SenseIndex: i,
			}}
			return m
		}
	}
	return nil
}

func senseMatches(phrase string, sense models.Sense) bool {
	full := NormalizeEnglish(sense.Display())
	noParen := NormalizeEnglish(sense.Text)
	base := NormalizeEnglish(sense.Base())
	if legacy := NormalizeEnglish(sense.LegacyDisplay()); legacy != "" &&
		(phrase == legacy || strings.HasPrefix(legacy, phrase)) {
		return true
	}
	return phrase == full ||
		phrase == noParen ||
		phrase == base ||
		strings.HasPrefix(full, phrase) ||
		strings.HasPrefix(noParen, phrase)
}

// findPronoun binds the longest English pronoun present as whole words,
// defaulting to "I".
func findPronoun(phrase string) models.PronounIndex {
	best := models.PronounI
	bestLen := 0
	for _, p := range models.AllPronouns() {
		label := NormalizeEnglish(p.English())
		if len(label) > bestLen && containsWord(phrase, label) {
			best, bestLen = p, len(label)
		}
	}
	return best
}

// OfferedTenses lists the tenses shown for a candidate in display order.
// The auxiliary "have" offers only perfect tenses sourced from the simple
// rows; possession "have" offers only simple tenses.
func (r *PhraseResolver) OfferedTenses(c models.Candidate) []TenseSlot {
	sense := c.Sense()
	var out []TenseSlot
	switch {
	case sense.IsAuxiliaryHave():
		for _, t := range models.PerfectTenses() {
			src, _ := t.AuxiliarySource()
			if c.Verb.HasTense(src) {
				out = append(out, TenseSlot{Tense: t, Source: src})
			}
		}
	case sense.IsPossessionHave():
		for _, t := range models.SimpleTenses() {
			if c.Verb.HasTense(t) {
				out = append(out, TenseSlot{Tense: t, Source: t})
			}
		}
	default:
		for _, t := range c.Verb.AvailableTenses() {
			out = append(out, TenseSlot{Tense: t, Source: t})
		}
	}
	return out
}

func clamp(i, n int) int {
	if i < 0 || n == 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
