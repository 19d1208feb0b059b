package puzzle

import (
	"math/rand/v2"
	"slices"

	"github.com/cespare/xxhash/v2"
)

// maxShuffles bounds the reshuffles of a word that came out unchanged.
const maxShuffles = 32

// ScrambleItem is a vocabulary item with its letters shuffled.
type ScrambleItem struct {
	VocabularyItem
	ScrambledWord string `json:"scrambled_word"`
}

// ScrambleSet is a numbered list of scrambled words and a clue bank.
// ClueOrder[i] is the index in Items of the answer to the i-th listed clue.
type ScrambleSet struct {
	Items     []ScrambleItem `json:"word_list"`
	ClueOrder []int          `json:"clue_order"`
}

// AnswerNumber returns the 1-based number of the word answering the clue
// listed at clueIndex, or 0 when clueIndex is out of range.
func (s ScrambleSet) AnswerNumber(clueIndex int) int {
	if clueIndex < 0 || clueIndex >= len(s.ClueOrder) {
		return 0
	}
	return s.ClueOrder[clueIndex] + 1
}

// BuildScrambleSet scrambles every word and computes the clue order.
// A nil rng uses a clock seed.
func BuildScrambleSet(words []VocabularyItem, rng *rand.Rand) ScrambleSet {
	rng = orNewRand(rng)
	items := make([]ScrambleItem, len(words))
	for i, w := range words {
		items[i] = ScrambleItem{VocabularyItem: w, ScrambledWord: Scramble(w.Word, rng)}
	}
	return ScrambleSet{Items: items, ClueOrder: ClueOrder(words)}
}

// Scramble returns a permutation of word's letters that differs from word.
// Words made of a single repeated letter come back unchanged.
func Scramble(word string, rng *rand.Rand) string {
	letters := []rune(word)
	if !hasTwoDistinct(letters) {
		return word
	}
	shuffled := slices.Clone(letters)
	for range maxShuffles {
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		if string(shuffled) != word {
			return string(shuffled)
		}
	}
	// Rotating by one letter always changes a word with two distinct letters.
	return string(append(letters[1:], letters[0]))
}

func hasTwoDistinct(letters []rune) bool {
	for _, r := range letters[min(1, len(letters)):] {
		if r != letters[0] {
			return true
		}
	}
	return false
}

// ClueOrder returns a permutation of 0..len(words)-1. The permutation is
// seeded from the words themselves, so the same list always yields the same
// order.
func ClueOrder(words []VocabularyItem) []int {
	d := xxhash.New()
	for _, w := range words {
		d.WriteString(w.Word)
		d.Write([]byte{0})
		d.WriteString(w.ClueText)
		d.Write([]byte{0})
	}
	seed := d.Sum64()
	rng := rand.New(rand.NewPCG(seed, ^seed))
	return rng.Perm(len(words))
}
