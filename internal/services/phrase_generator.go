package services

import (
	"regexp"
	"strings"

	"verbtrainer/internal/models"
)

var (
	shortVowelFinalConsonant = regexp.MustCompile(`[aeiou][^aeiouwxy]$`)
	consonantY               = regexp.MustCompile(`[^aeiou]y$`)
	sibilantEnding           = regexp.MustCompile(`(o|ch|s|sh|x|z)$`)
)

// reflexiveMarker is the base meaning that takes a reflexive object pronoun
const reflexiveMarker = "risk oneself"

// PhraseGenerator builds English phrases for a (verb, tense, pronoun, sense)
// tuple. It is deterministic and safe for concurrent use.
type PhraseGenerator struct {
	irregulars *IrregularTable
}

// NewPhraseGenerator creates a generator backed by the irregular table
func NewPhraseGenerator(irregulars *IrregularTable) *PhraseGenerator {
	return &PhraseGenerator{irregulars: irregulars}
}

// verbForms are the inflected verb phrases for one sense and pronoun,
// without the subject.
type verbForms struct {
	bare       string
	present    string
	preterite  string
	participle string
}

// Generate returns the English phrase, e.g. "He speaks" or "We would have eaten".
// It panics on an out-of-range pronoun or sense index.
func (g *PhraseGenerator) Generate(verb *models.VerbRecord, tense models.Tense, pronoun models.PronounIndex, senseIndex int) string {
	sense := verb.Sense(senseIndex)
	subject := pronoun.English()

	if sense.IsPossessionHave() && tense == models.TensePresent {
		if pronoun.IsThirdSingular() {
			return subject + " has"
		}
		return subject + " have"
	}

	f := g.inflect(verb, sense, pronoun)

	switch tense {
	case models.TensePresent:
		return subject + " " + f.present
	case models.TensePreterite:
		return subject + " " + f.preterite
	case models.TenseImperfect:
		return subject + " used to " + f.bare
	case models.TenseFuture:
		return subject + " will " + f.bare
	case models.TenseConditional:
		return subject + " would " + f.bare
	case models.TensePresentPerfect:
		if pronoun.IsThirdSingular() {
			return subject + " has " + f.participle
		}
		return subject + " have " + f.participle
	case models.TensePastPerfect:
		return subject + " had " + f.participle
	case models.TenseFuturePerfect:
		return subject + " will have " + f.participle
	case models.TenseConditionalPerfect:
		return subject + " would have " + f.participle
	default:
		return subject + " " + f.bare
	}
}

// PastForms returns the preterite and past participle used for a sense
func (g *PhraseGenerator) PastForms(verb *models.VerbRecord, senseIndex int, pronoun models.PronounIndex) (preterite, participle string) {
	f := g.inflect(verb, verb.Sense(senseIndex), pronoun)
	return f.preterite, f.participle
}

// inflect applies the suffix rules to the whole base, then lets an irregular
// entry for the sense override them. Reflexive "risk oneself" verbs are the
// exception: the head word is inflected and the reflexive pronoun follows it.
func (g *PhraseGenerator) inflect(verb *models.VerbRecord, sense models.Sense, pronoun models.PronounIndex) verbForms {
	base := sense.Base()
	if verb.IsReflexive() && strings.Contains(base, reflexiveMarker) {
		return g.inflectReflexive(base, pronoun)
	}

	f := verbForms{bare: base, present: base}
	if pronoun.IsThirdSingular() {
		f.present = ThirdPersonSingular(base)
	}
	f.preterite = RegularPast(base)
	f.participle = f.preterite

	if entry, ok := g.irregulars.Find(sense.LookupKey(), sense.FullKey(), "to "+base); ok {
		f.preterite = entry.PreteriteFor(pronoun)
		f.participle = entry.PastParticiple
		if entry.PresentForms != nil {
			f.present = entry.PresentForms.At(pronoun)
		}
	}
	return f
}

// inflectReflexive inflects the word before "oneself" and puts the subject's
// reflexive pronoun after it
func (g *PhraseGenerator) inflectReflexive(base string, pronoun models.PronounIndex) verbForms {
	head, _ := splitHead(base)
	object := pronoun.Reflexive()
	join := func(h string) string { return h + " " + object }

	f := verbForms{bare: join(head), present: join(head)}
	if pronoun.IsThirdSingular() {
		f.present = join(ThirdPersonSingular(head))
	}
	f.preterite = join(RegularPast(head))
	f.participle = f.preterite

	if entry, ok := g.irregulars.Find("to " + head); ok {
		f.preterite = join(entry.PreteriteFor(pronoun))
		f.participle = join(entry.PastParticiple)
		if entry.PresentForms != nil {
			f.present = join(entry.PresentForms.At(pronoun))
		}
	}
	return f
}

// RegularPast applies the suffix rule: double a final consonant after a
// vowel (except w, x, y), add "d" after a final "e", otherwise add "ed".
func RegularPast(base string) string {
	if shortVowelFinalConsonant.MatchString(base) {
		return base + base[len(base)-1:] + "ed"
	}
	if strings.HasSuffix(base, "e") {
		return base + "d"
	}
	return base + "ed"
}

// ThirdPersonSingular applies the present-tense "he" suffix rule
func ThirdPersonSingular(base string) string {
	switch {
	case consonantY.MatchString(base):
		return base[:len(base)-1] + "ies"
	case sibilantEnding.MatchString(base):
		return base + "es"
	default:
		return base + "s"
	}
}

func splitHead(base string) (head, tail string) {
	parts := strings.SplitN(base, " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}
