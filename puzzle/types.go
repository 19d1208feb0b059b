package puzzle

import (
	"cmp"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"time"
)

// ClueType tells how a clue relates to its answer.
type ClueType string

const (
	Definition ClueType = "Definition"
	Synonym    ClueType = "Synonym"
	Antonym    ClueType = "Antonym"
)

// ParseClueType accepts a clue type in any letter case.
func ParseClueType(s string) (ClueType, error) {
	for _, ct := range []ClueType{Definition, Synonym, Antonym} {
		if strings.EqualFold(strings.TrimSpace(s), string(ct)) {
			return ct, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownClueType, s)
}

// VocabularyItem is a word together with its clue.
type VocabularyItem struct {
	Word     string   `json:"word" yaml:"word"`
	ClueType ClueType `json:"clue_type" yaml:"clue_type"`
	ClueText string   `json:"clue_text" yaml:"clue_text"`
}

// GradeLevel is the difficulty tier of a word search. Higher grades hide
// words along more directions.
type GradeLevel string

const (
	Grade3  GradeLevel = "3"
	Grade6  GradeLevel = "6"
	Grade9  GradeLevel = "9"
	Grade12 GradeLevel = "12"
)

// GradeLevels lists the supported tiers from easiest to hardest.
var GradeLevels = []GradeLevel{Grade3, Grade6, Grade9, Grade12}

// ParseGradeLevel validates a user supplied grade. "6th" and " 6 " are accepted.
func ParseGradeLevel(s string) (GradeLevel, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	for _, suffix := range []string{"st", "nd", "rd", "th"} {
		s = strings.TrimSuffix(s, suffix)
	}
	for _, g := range GradeLevels {
		if string(g) == s {
			return g, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownGradeLevel, s)
}

// NewRand returns a PCG-backed source. A zero seed picks one from the clock.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func orNewRand(rng *rand.Rand) *rand.Rand {
	if rng == nil {
		return NewRand(0)
	}
	return rng
}

// gridLetters returns the upper-cased letters of word, or false when the word
// holds anything a grid cell cannot show.
func gridLetters(word string) ([]rune, bool) {
	letters := []rune(strings.ToUpper(word))
	if len(letters) == 0 {
		return nil, false
	}
	for _, r := range letters {
		if r < 'A' || r > 'Z' {
			return nil, false
		}
	}
	return letters, true
}

// byLengthDesc returns the indexes of words, longest first. Ties keep input order.
func byLengthDesc(words []VocabularyItem) []int {
	order := make([]int, len(words))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(len([]rune(words[b].Word)), len([]rune(words[a].Word)))
	})
	return order
}

// dropped collects the items whose placed flag is unset, in input order.
func dropped(words []VocabularyItem, placed []bool) []VocabularyItem {
	out := make([]VocabularyItem, 0)
	for i, w := range words {
		if !placed[i] {
			out = append(out, w)
		}
	}
	return out
}
