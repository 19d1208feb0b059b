package puzzle

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MinWordLength is the shortest word kept by NormalizeVocabulary.
const MinWordLength = 3

// NormalizeWord reduces a raw keyword to a single upper-case token without
// diacritics: "  café au lait" becomes "CAFE", "well-being" becomes "WELL".
func NormalizeWord(raw string) string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-'
	})
	if len(fields) == 0 {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	word, _, err := transform.String(t, fields[0])
	if err != nil {
		word = fields[0]
	}
	return strings.ToUpper(word)
}

// NormalizeVocabulary normalises every word, then drops words shorter than
// MinWordLength and repeated words. The first occurrence of a word wins.
func NormalizeVocabulary(items []VocabularyItem) []VocabularyItem {
	seen := make(map[string]bool, len(items))
	out := make([]VocabularyItem, 0, len(items))
	for _, it := range items {
		it.Word = NormalizeWord(it.Word)
		if len([]rune(it.Word)) < MinWordLength || seen[it.Word] {
			continue
		}
		seen[it.Word] = true
		it.ClueText = strings.TrimSpace(it.ClueText)
		if ct, err := ParseClueType(string(it.ClueType)); err == nil {
			it.ClueType = ct
		} else {
			it.ClueType = Definition
		}
		out = append(out, it)
	}
	return out
}
