package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/bodul/puzzlepack/puzzle"
)

// printer keeps the first write error so rendering code can stay linear.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) heading(title string) {
	p.printf("\n%s\n%s\n\n", title, strings.Repeat("-", len([]rune(title))))
}

// RenderText writes a printable version of the activity. Crossword cells are
// blank (_) unless solutions is set; blocks are #.
func RenderText(w io.Writer, a *Activity, solutions bool) error {
	p := &printer{w: w}

	p.printf("%s\n%s\n", a.Title, strings.Repeat("=", len([]rune(a.Title))))
	if a.GradeLevel != "" {
		p.printf("Niveau : %se\n", a.GradeLevel)
	}
	if a.Summary != "" {
		p.printf("\n%s\n", a.Summary)
	}

	if a.Crossword != nil {
		renderCrossword(p, *a.Crossword, solutions)
	}
	if a.WordSearch != nil {
		renderWordSearch(p, *a.WordSearch, solutions)
	}
	if a.Scramble != nil {
		renderScramble(p, *a.Scramble, solutions)
	}
	return p.err
}

func renderCrossword(p *printer, g puzzle.CrosswordGrid, solutions bool) {
	p.heading("Mots croisés")
	if len(g.PlacedWords) == 0 {
		p.printf("Aucun mot n'a pu être placé.\n")
		return
	}

	for r, row := range g.Cells {
		cells := make([]string, len(row))
		for c, letter := range row {
			switch {
			case !g.IsLetterCell(r, c):
				cells[c] = "#"
			case solutions:
				cells[c] = letter
			default:
				cells[c] = "_"
			}
		}
		p.printf("%s\n", strings.Join(cells, " "))
	}

	for _, section := range []struct {
		name string
		dir  puzzle.Direction
	}{
		{"Horizontalement", puzzle.Across},
		{"Verticalement", puzzle.Down},
	} {
		clues := g.Clues(section.dir)
		if len(clues) == 0 {
			continue
		}
		p.printf("\n%s\n", section.name)
		for _, w := range clues {
			p.printf("%d. %s (%d)", w.Number, w.ClueText, len([]rune(w.Word)))
			if solutions {
				p.printf(" : %s", w.Word)
			}
			p.printf("\n")
		}
	}
}

func renderWordSearch(p *printer, g puzzle.WordSearchGrid, solutions bool) {
	p.heading("Mots mêlés")
	for _, row := range g.Cells {
		p.printf("%s\n", strings.Join(row, " "))
	}

	p.printf("\nMots à trouver :\n")
	for _, item := range g.WordList {
		p.printf("- %s", strings.ToUpper(item.Word))
		if solutions {
			if w, ok := g.Find(item.Word); ok {
				p.printf(" : ligne %d, colonne %d, %s", w.Row+1, w.Col+1, w.Direction)
			}
		}
		p.printf("\n")
	}
}

func renderScramble(p *printer, s puzzle.ScrambleSet, solutions bool) {
	p.heading("Mots mélangés")
	for i, item := range s.Items {
		p.printf("%d. %s", i+1, item.ScrambledWord)
		if solutions {
			p.printf(" : %s", item.Word)
		}
		p.printf("\n")
	}

	p.printf("\nIndices :\n")
	for i, idx := range s.ClueOrder {
		p.printf("%c. %s", clueLabel(i), s.Items[idx].ClueText)
		if solutions {
			p.printf(" : %d", s.AnswerNumber(i))
		}
		p.printf("\n")
	}
}

// clueLabel letters clues a, b, ... z, then continues with A, B, ...
func clueLabel(i int) rune {
	if i < 26 {
		return rune('a' + i)
	}
	return rune('A' + (i-26)%26)
}
