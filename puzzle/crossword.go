package puzzle

import (
	"cmp"
	"slices"
)

// CrosswordWorkingSize is the side of the square buffer words are packed
// into before the result is trimmed to its bounding box.
const CrosswordWorkingSize = 25

// Direction is the orientation of a crossword entry.
type Direction string

const (
	Across Direction = "across"
	Down   Direction = "down"
)

// step returns the (row, col) increment between consecutive letters.
func (d Direction) step() (int, int) {
	if d == Down {
		return 1, 0
	}
	return 0, 1
}

func (d Direction) perpendicular() Direction {
	if d == Across {
		return Down
	}
	return Across
}

// Position addresses a grid cell.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// PlacedWord is a crossword entry. Row and Col locate its first letter in the
// trimmed grid.
type PlacedWord struct {
	VocabularyItem
	Row       int       `json:"row"`
	Col       int       `json:"col"`
	Direction Direction `json:"direction"`
	Number    int       `json:"number"`
}

// Path lists the cells covered by the entry, first letter first.
func (w PlacedWord) Path() []Position {
	dr, dc := w.Direction.step()
	n := len([]rune(w.Word))
	path := make([]Position, n)
	for k := range n {
		path[k] = Position{Row: w.Row + dr*k, Col: w.Col + dc*k}
	}
	return path
}

// CrosswordGrid is a packed and numbered crossword. Cells holds one upper-case
// letter per used cell and "" elsewhere.
type CrosswordGrid struct {
	Cells       [][]string       `json:"cells"`
	PlacedWords []PlacedWord     `json:"placed_words"`
	Rows        int              `json:"rows"`
	Cols        int              `json:"cols"`
	Dropped     []VocabularyItem `json:"dropped_words"`
}

// Clues returns the entries running in d, ordered by clue number.
func (g CrosswordGrid) Clues(d Direction) []PlacedWord {
	var out []PlacedWord
	for _, w := range g.PlacedWords {
		if w.Direction == d {
			out = append(out, w)
		}
	}
	slices.SortStableFunc(out, func(a, b PlacedWord) int { return cmp.Compare(a.Number, b.Number) })
	return out
}

// IsLetterCell reports whether (row, col) belongs to an entry.
func (g CrosswordGrid) IsLetterCell(row, col int) bool {
	if row < 0 || row >= g.Rows || col < 0 || col >= g.Cols {
		return false
	}
	return g.Cells[row][col] != ""
}

// GenerateCrossword packs words into an interlocking grid.
//
// Words are taken longest first. The first one is laid across the middle of
// the working grid; every other word must cross an already placed word at a
// shared letter, perpendicular to it. Among all legal crossings the one that
// fills the most empty cells wins, the earliest found on ties. Words without
// a legal crossing are reported in Dropped. The result is deterministic.
func GenerateCrossword(words []VocabularyItem) CrosswordGrid {
	p := newCrosswordPacker(CrosswordWorkingSize)
	placed := make([]bool, len(words))

	for _, idx := range byLengthDesc(words) {
		letters, ok := gridLetters(words[idx].Word)
		if !ok || len(letters) > p.size {
			continue
		}
		item := words[idx]
		item.Word = string(letters)

		if len(p.entries) == 0 {
			mid := p.size / 2
			p.place(item, letters, placement{row: mid, col: (p.size - len(letters)) / 2, dir: Across})
			placed[idx] = true
			continue
		}
		if fit, ok := p.bestFit(letters); ok {
			p.place(item, letters, fit)
			placed[idx] = true
		}
	}

	return p.trimAndNumber(dropped(words, placed))
}

type placement struct {
	row, col int
	dir      Direction
}

type crosswordEntry struct {
	item    VocabularyItem
	letters []rune
	placement
}

// crosswordPacker owns the working grid of a single GenerateCrossword call.
type crosswordPacker struct {
	size    int
	cells   [][]rune // 0 means empty
	entries []crosswordEntry
}

func newCrosswordPacker(size int) *crosswordPacker {
	cells := make([][]rune, size)
	for r := range cells {
		cells[r] = make([]rune, size)
	}
	return &crosswordPacker{size: size, cells: cells}
}

func (p *crosswordPacker) inBounds(row, col int) bool {
	return row >= 0 && row < p.size && col >= 0 && col < p.size
}

func (p *crosswordPacker) occupied(row, col int) bool {
	return p.inBounds(row, col) && p.cells[row][col] != 0
}

func (p *crosswordPacker) place(item VocabularyItem, letters []rune, at placement) {
	dr, dc := at.dir.step()
	for k, ch := range letters {
		p.cells[at.row+dr*k][at.col+dc*k] = ch
	}
	p.entries = append(p.entries, crosswordEntry{item: item, letters: letters, placement: at})
}

// bestFit scans every shared letter between letters and the placed entries.
func (p *crosswordPacker) bestFit(letters []rune) (placement, bool) {
	best := -1
	var fit placement
	for _, e := range p.entries {
		for i, ch := range letters {
			for j, other := range e.letters {
				if ch != other {
					continue
				}
				cand := placement{dir: e.dir.perpendicular()}
				if cand.dir == Down {
					cand.row, cand.col = e.row-i, e.col+j
				} else {
					cand.row, cand.col = e.row+j, e.col-i
				}
				if score, ok := p.score(letters, cand, e); ok && score > best {
					best, fit = score, cand
				}
			}
		}
	}
	return fit, best >= 0
}

// score counts the empty cells a candidate would fill, or returns false when
// the candidate leaves the grid, contradicts a letter, or touches a
// neighbouring word anywhere but at its crossing with e.
func (p *crosswordPacker) score(letters []rune, at placement, e crosswordEntry) (int, bool) {
	dr, dc := at.dir.step()
	n := len(letters)
	endRow, endCol := at.row+dr*(n-1), at.col+dc*(n-1)
	if !p.inBounds(at.row, at.col) || !p.inBounds(endRow, endCol) {
		return 0, false
	}

	score := 0
	for k, ch := range letters {
		r, c := at.row+dr*k, at.col+dc*k
		cell := p.cells[r][c]
		if cell != 0 && cell != ch {
			return 0, false
		}
		if cell == 0 {
			score++
		}
		crossing := (at.dir == Down && r == e.row) || (at.dir == Across && c == e.col)
		if !crossing && (p.occupied(r+dc, c+dr) || p.occupied(r-dc, c-dr)) {
			return 0, false
		}
	}

	if p.occupied(at.row-dr, at.col-dc) || p.occupied(endRow+dr, endCol+dc) {
		return 0, false
	}
	return score, true
}

// trimAndNumber cuts the working grid down to the bounding box of the placed
// entries plus one cell of margin, and numbers the entries by start cell.
func (p *crosswordPacker) trimAndNumber(dropped []VocabularyItem) CrosswordGrid {
	if len(p.entries) == 0 {
		return CrosswordGrid{
			Cells:       [][]string{},
			PlacedWords: []PlacedWord{},
			Dropped:     dropped,
		}
	}

	minRow, minCol := p.size, p.size
	maxRow, maxCol := -1, -1
	for _, e := range p.entries {
		dr, dc := e.dir.step()
		minRow = min(minRow, e.row)
		minCol = min(minCol, e.col)
		maxRow = max(maxRow, e.row+dr*(len(e.letters)-1))
		maxCol = max(maxCol, e.col+dc*(len(e.letters)-1))
	}
	rowStart, rowEnd := max(0, minRow-1), min(p.size, maxRow+2)
	colStart, colEnd := max(0, minCol-1), min(p.size, maxCol+2)

	cells := make([][]string, rowEnd-rowStart)
	for r := range cells {
		cells[r] = make([]string, colEnd-colStart)
		for c := range cells[r] {
			if ch := p.cells[rowStart+r][colStart+c]; ch != 0 {
				cells[r][c] = string(ch)
			}
		}
	}

	ordered := slices.Clone(p.entries)
	slices.SortStableFunc(ordered, func(a, b crosswordEntry) int {
		return cmp.Or(cmp.Compare(a.row, b.row), cmp.Compare(a.col, b.col))
	})

	numbers := make(map[Position]int)
	words := make([]PlacedWord, 0, len(ordered))
	for _, e := range ordered {
		start := Position{Row: e.row, Col: e.col}
		n, ok := numbers[start]
		if !ok {
			n = len(numbers) + 1
			numbers[start] = n
		}
		words = append(words, PlacedWord{
			VocabularyItem: e.item,
			Row:            e.row - rowStart,
			Col:            e.col - colStart,
			Direction:      e.dir,
			Number:         n,
		})
	}

	return CrosswordGrid{
		Cells:       cells,
		PlacedWords: words,
		Rows:        len(cells),
		Cols:        colEnd - colStart,
		Dropped:     dropped,
	}
}
