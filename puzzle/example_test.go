package puzzle_test

import (
	"fmt"
	"strings"

	"github.com/bodul/puzzlepack/puzzle"
)

// ExampleGenerateCrossword hangs TOP from the first letter of TRAIN.
func ExampleGenerateCrossword() {
	g := puzzle.GenerateCrossword([]puzzle.VocabularyItem{
		{Word: "TRAIN", ClueType: puzzle.Definition, ClueText: "Runs on rails"},
		{Word: "TOP", ClueType: puzzle.Antonym, ClueText: "Bottom"},
	})

	fmt.Printf("%dx%d\n", g.Rows, g.Cols)
	for _, row := range g.Cells {
		var b strings.Builder
		for _, cell := range row {
			if cell == "" {
				cell = "."
			}
			b.WriteString(cell)
		}
		fmt.Println(b.String())
	}
	for _, w := range g.PlacedWords {
		fmt.Printf("%d %s %s at (%d,%d)\n", w.Number, w.Direction, w.Word, w.Row, w.Col)
	}
	// Output:
	// 5x7
	// .......
	// .TRAIN.
	// .O.....
	// .P.....
	// .......
	// 1 across TRAIN at (1,1)
	// 1 down TOP at (1,1)
}

// ExampleScrambleSet_AnswerNumber shows how a clue bank maps back to the
// numbered word list.
func ExampleScrambleSet_AnswerNumber() {
	set := puzzle.ScrambleSet{
		Items: []puzzle.ScrambleItem{
			{VocabularyItem: puzzle.VocabularyItem{Word: "RAIN", ClueText: "Falls from clouds"}, ScrambledWord: "NIAR"},
			{VocabularyItem: puzzle.VocabularyItem{Word: "SNOW", ClueText: "Frozen flakes"}, ScrambledWord: "OWSN"},
		},
		ClueOrder: []int{1, 0},
	}
	for i, idx := range set.ClueOrder {
		fmt.Printf("%s -> %d\n", set.Items[idx].ClueText, set.AnswerNumber(i))
	}
	// Output:
	// Frozen flakes -> 2
	// Falls from clouds -> 1
}
