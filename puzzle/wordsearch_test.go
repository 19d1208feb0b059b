package puzzle_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bodul/puzzlepack/puzzle"
)

var searchWords = vocab(
	"Volcano", "LAVA", "magma", "ERUPTION", "CRATER", "ASH", "TECTONIC",
	"PLATE", "MANTLE", "CRUST", "GEYSER", "BASALT",
)

// requireConsistentWordSearch checks the invariants every word search must hold.
func requireConsistentWordSearch(t *testing.T, input []puzzle.VocabularyItem, g puzzle.WordSearchGrid) {
	t.Helper()
	require.Len(t, g.Cells, puzzle.WordSearchSize)
	for _, row := range g.Cells {
		require.Len(t, row, puzzle.WordSearchSize)
		for _, cell := range row {
			require.Len(t, cell, 1)
			require.True(t, cell[0] >= 'A' && cell[0] <= 'Z', "cell %q is not an upper-case letter", cell)
		}
	}

	for _, w := range g.PlacedWords {
		path := w.Path()
		require.NotNil(t, path, "unknown direction %q", w.Direction)
		upper := strings.ToUpper(w.Word)
		for k, pos := range path {
			require.True(t, pos.Row >= 0 && pos.Row < puzzle.WordSearchSize && pos.Col >= 0 && pos.Col < puzzle.WordSearchSize,
				"%s leaves the grid at %v", w.Word, pos)
			assert.Equal(t, string(upper[k]), g.Cells[pos.Row][pos.Col], "%s letter %d", w.Word, k)
		}
	}

	for _, item := range g.WordList {
		assert.Contains(t, input, item)
		_, ok := g.Find(item.Word)
		assert.True(t, ok, "%s listed but not placed", item.Word)
	}
	assert.Equal(t, len(input), len(g.WordList)+len(g.Dropped))
}

func TestGenerateWordSearch_Invariants(t *testing.T) {
	for _, level := range puzzle.GradeLevels {
		t.Run("grade"+string(level), func(t *testing.T) {
			for seed := uint64(1); seed <= 20; seed++ {
				g := puzzle.GenerateWordSearch(searchWords, level, puzzle.NewRand(seed))
				requireConsistentWordSearch(t, searchWords, g)
			}
		})
	}
}

func TestGenerateWordSearch_GradeRestrictsDirections(t *testing.T) {
	allowed := map[string]bool{puzzle.Horizontal.Name: true, puzzle.Vertical.Name: true}
	for seed := uint64(1); seed <= 30; seed++ {
		g := puzzle.GenerateWordSearch(searchWords, puzzle.Grade3, puzzle.NewRand(seed))
		for _, w := range g.PlacedWords {
			assert.True(t, allowed[w.Direction], "grade 3 used %s", w.Direction)
		}
	}
}

func TestGenerateWordSearch_Grade12UsesHarderDirections(t *testing.T) {
	straight := map[string]bool{puzzle.Horizontal.Name: true, puzzle.Vertical.Name: true}
	reverse := map[string]bool{
		puzzle.HorizontalReverse.Name: true, puzzle.VerticalReverse.Name: true,
		puzzle.DiagonalDownReverse.Name: true, puzzle.DiagonalUpReverse.Name: true,
	}

	used := make(map[string]int)
	for seed := uint64(1); seed <= 30; seed++ {
		g := puzzle.GenerateWordSearch(searchWords, puzzle.Grade12, puzzle.NewRand(seed))
		for _, w := range g.PlacedWords {
			used[w.Direction]++
		}
	}

	var harder, backwards int
	for name, n := range used {
		if !straight[name] {
			harder += n
		}
		if reverse[name] {
			backwards += n
		}
	}
	assert.Positive(t, harder, "grade 12 only used %v", used)
	assert.Positive(t, backwards, "grade 12 never reversed a word: %v", used)
}

func TestDirectionsFor(t *testing.T) {
	cases := []struct {
		level puzzle.GradeLevel
		want  int
	}{
		{puzzle.Grade3, 2},
		{puzzle.Grade6, 4},
		{puzzle.Grade9, 6},
		{puzzle.Grade12, 8},
		{"kindergarten", 8},
	}
	for _, tc := range cases {
		assert.Len(t, puzzle.DirectionsFor(tc.level), tc.want, "level %q", tc.level)
	}

	grade9 := puzzle.DirectionsFor(puzzle.Grade9)
	assert.Contains(t, grade9, puzzle.HorizontalReverse)
	assert.Contains(t, grade9, puzzle.VerticalReverse)
	assert.NotContains(t, grade9, puzzle.DiagonalUpReverse)
}

func TestGenerateWordSearch_SeedIsReproducible(t *testing.T) {
	a := puzzle.GenerateWordSearch(searchWords, puzzle.Grade12, puzzle.NewRand(42))
	b := puzzle.GenerateWordSearch(searchWords, puzzle.Grade12, puzzle.NewRand(42))
	assert.Equal(t, a, b)
}

func TestGenerateWordSearch_KeepsOriginalCasing(t *testing.T) {
	g := puzzle.GenerateWordSearch(vocab("Volcano"), puzzle.Grade6, puzzle.NewRand(7))

	require.Len(t, g.PlacedWords, 1)
	assert.Equal(t, "Volcano", g.PlacedWords[0].Word)
	assert.Equal(t, "Volcano", g.WordList[0].Word)
}

func TestGenerateWordSearch_DropsUnplaceable(t *testing.T) {
	words := vocab("OCEAN", "SEA FLOOR", strings.Repeat("A", puzzle.WordSearchSize+1), "")
	g := puzzle.GenerateWordSearch(words, puzzle.Grade12, puzzle.NewRand(3))

	require.Len(t, g.WordList, 1)
	assert.Equal(t, "OCEAN", g.WordList[0].Word)
	require.Len(t, g.Dropped, 3)
	assert.Equal(t, "SEA FLOOR", g.Dropped[0].Word)
	requireConsistentWordSearch(t, words, g)
}

func TestGenerateWordSearch_EmptyInput(t *testing.T) {
	g := puzzle.GenerateWordSearch(nil, puzzle.Grade6, puzzle.NewRand(1))

	assert.Empty(t, g.PlacedWords)
	assert.Empty(t, g.WordList)
	requireConsistentWordSearch(t, nil, g)
}

func TestGenerateWordSearch_NilRand(t *testing.T) {
	g := puzzle.GenerateWordSearch(vocab("RIVER"), puzzle.Grade3, nil)
	requireConsistentWordSearch(t, vocab("RIVER"), g)
}
