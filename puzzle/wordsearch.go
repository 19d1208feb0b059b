package puzzle

import (
	"math/rand/v2"
	"strings"
)

const (
	// WordSearchSize is the side of the square word search grid.
	WordSearchSize = 20
	// wordSearchAttempts bounds the random placement tries per word.
	wordSearchAttempts = 150
)

// SearchDirection is a named unit vector a hidden word can follow.
type SearchDirection struct {
	Name string
	DRow int
	DCol int
}

// The eight directions, forward ones first.
var (
	Horizontal          = SearchDirection{"horizontal", 0, 1}
	Vertical            = SearchDirection{"vertical", 1, 0}
	DiagonalDown        = SearchDirection{"diagonal-down", 1, 1}
	DiagonalUp          = SearchDirection{"diagonal-up", -1, 1}
	HorizontalReverse   = SearchDirection{"horizontal-reverse", 0, -1}
	VerticalReverse     = SearchDirection{"vertical-reverse", -1, 0}
	DiagonalDownReverse = SearchDirection{"diagonal-down-reverse", -1, -1}
	DiagonalUpReverse   = SearchDirection{"diagonal-up-reverse", 1, -1}
)

var allSearchDirections = []SearchDirection{
	Horizontal, Vertical, DiagonalDown, DiagonalUp,
	HorizontalReverse, VerticalReverse, DiagonalDownReverse, DiagonalUpReverse,
}

// DirectionsFor returns the directions allowed at a grade level. Unknown
// levels get all eight.
func DirectionsFor(level GradeLevel) []SearchDirection {
	switch level {
	case Grade3:
		return allSearchDirections[:2:2]
	case Grade6:
		return allSearchDirections[:4:4]
	case Grade9:
		return allSearchDirections[:6:6]
	default:
		return allSearchDirections[:8:8]
	}
}

// LookupSearchDirection finds a direction by name.
func LookupSearchDirection(name string) (SearchDirection, bool) {
	for _, d := range allSearchDirections {
		if d.Name == name {
			return d, true
		}
	}
	return SearchDirection{}, false
}

// PlacedSearchWord is a hidden word. Word keeps the caller's casing.
type PlacedSearchWord struct {
	Word      string `json:"word"`
	Row       int    `json:"row"`
	Col       int    `json:"col"`
	Direction string `json:"direction"`
}

// Path lists the cells covered by the word, first letter first. It returns
// nil when Direction is not a known name.
func (w PlacedSearchWord) Path() []Position {
	d, ok := LookupSearchDirection(w.Direction)
	if !ok {
		return nil
	}
	n := len([]rune(w.Word))
	path := make([]Position, n)
	for k := range n {
		path[k] = Position{Row: w.Row + d.DRow*k, Col: w.Col + d.DCol*k}
	}
	return path
}

// WordSearchGrid is a filled word search. WordList holds the input items that
// were hidden, in input order; the others are in Dropped.
type WordSearchGrid struct {
	Cells       [][]string         `json:"cells"`
	PlacedWords []PlacedSearchWord `json:"placed_words"`
	WordList    []VocabularyItem   `json:"word_list"`
	Dropped     []VocabularyItem   `json:"dropped_words"`
}

// GenerateWordSearch hides words in a WordSearchSize square grid.
//
// Words are taken longest first. Each word gets up to 150 random tries of a
// direction allowed by level and a start cell; the first try that stays in
// bounds and agrees with every letter already on its path is kept. Empty
// cells are then filled with random letters. A nil rng uses a clock seed.
func GenerateWordSearch(words []VocabularyItem, level GradeLevel, rng *rand.Rand) WordSearchGrid {
	rng = orNewRand(rng)
	directions := DirectionsFor(level)

	grid := make([][]rune, WordSearchSize)
	for r := range grid {
		grid[r] = make([]rune, WordSearchSize)
	}

	placed := make([]bool, len(words))
	placedWords := make([]PlacedSearchWord, 0, len(words))
	for _, idx := range byLengthDesc(words) {
		letters, ok := gridLetters(words[idx].Word)
		if !ok {
			continue
		}
		for range wordSearchAttempts {
			d := directions[rng.IntN(len(directions))]
			row, col := rng.IntN(WordSearchSize), rng.IntN(WordSearchSize)
			if !canHide(grid, letters, row, col, d) {
				continue
			}
			for k, ch := range letters {
				grid[row+d.DRow*k][col+d.DCol*k] = ch
			}
			placedWords = append(placedWords, PlacedSearchWord{
				Word:      words[idx].Word,
				Row:       row,
				Col:       col,
				Direction: d.Name,
			})
			placed[idx] = true
			break
		}
	}

	cells := make([][]string, WordSearchSize)
	for r := range cells {
		cells[r] = make([]string, WordSearchSize)
		for c := range cells[r] {
			ch := grid[r][c]
			if ch == 0 {
				ch = 'A' + rune(rng.IntN(26))
			}
			cells[r][c] = string(ch)
		}
	}

	wordList := make([]VocabularyItem, 0, len(placedWords))
	for i, w := range words {
		if placed[i] {
			wordList = append(wordList, w)
		}
	}

	return WordSearchGrid{
		Cells:       cells,
		PlacedWords: placedWords,
		WordList:    wordList,
		Dropped:     dropped(words, placed),
	}
}

func canHide(grid [][]rune, letters []rune, row, col int, d SearchDirection) bool {
	for k, ch := range letters {
		r, c := row+d.DRow*k, col+d.DCol*k
		if r < 0 || r >= len(grid) || c < 0 || c >= len(grid[r]) {
			return false
		}
		if grid[r][c] != 0 && grid[r][c] != ch {
			return false
		}
	}
	return true
}

// Find reports where word is hidden, matching case-insensitively.
func (g WordSearchGrid) Find(word string) (PlacedSearchWord, bool) {
	for _, w := range g.PlacedWords {
		if strings.EqualFold(w.Word, word) {
			return w, true
		}
	}
	return PlacedSearchWord{}, false
}
