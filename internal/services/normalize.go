package services

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var wordPattern = regexp.MustCompile(`[\p{L}']+`)

// FoldSpanish lowercases, trims and strips diacritics so that "Él sé" and
// "el se" compare equal. ñ folds to n through canonical decomposition.
func FoldSpanish(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return NormalizeEnglish(folded)
}

// NormalizeEnglish lowercases and trims. Inner whitespace is kept, so
// "I  speak" does not equal "I speak".
func NormalizeEnglish(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// containsWord reports whether phrase contains word as a whole word sequence
func containsWord(phrase, word string) bool {
	if word == "" {
		return false
	}
	words := wordPattern.FindAllString(phrase, -1)
	target := wordPattern.FindAllString(word, -1)
	if len(target) == 0 {
		return false
	}
	for i := 0; i+len(target) <= len(words); i++ {
		match := true
		for j := range target {
			if words[i+j] != target[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
