package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bodul/puzzlepack/puzzle"
)

func renderString(t *testing.T, a *Activity, solutions bool) string {
	t.Helper()
	var sb strings.Builder
	if err := RenderText(&sb, a, solutions); err != nil {
		t.Fatalf("render: %v", err)
	}
	return sb.String()
}

func TestRenderCrossword(t *testing.T) {
	srv := newTestServer(t, nil)
	a := seedActivity(t, srv)

	blank := renderString(t, a, false)
	for _, want := range []string{
		"Transports\n==========\n",
		"Niveau : 6e\n",
		"# # # # # # #\n# _ _ _ _ _ #\n# _ # # # # #\n",
		"Horizontalement\n1. Il roule sur des rails (5)\n",
		"Verticalement\n1. Sommet (3)\n",
	} {
		if !strings.Contains(blank, want) {
			t.Errorf("blank output missing %q:\n%s", want, blank)
		}
	}
	if strings.Contains(blank, "TRAIN") {
		t.Error("blank output should not contain the answers")
	}

	solved := renderString(t, a, true)
	for _, want := range []string{"# T R A I N #\n", "1. Il roule sur des rails (5) : TRAIN\n", "1. Sommet (3) : TOP\n"} {
		if !strings.Contains(solved, want) {
			t.Errorf("solution output missing %q:\n%s", want, solved)
		}
	}
}

func TestRenderWordSearchAndScramble(t *testing.T) {
	a, err := BuildActivity(context.Background(), ActivityRequest{
		Title:      "Espace",
		Vocabulary: []puzzle.VocabularyItem{{Word: "LUNE", ClueText: "Satellite de la Terre"}, {Word: "SOLEIL", ClueText: "Notre étoile"}},
		Kinds:      []PuzzleKind{KindWordSearch, KindScramble},
		Seed:       3,
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	out := renderString(t, a, true)
	for _, want := range []string{"Mots mêlés", "- LUNE : ligne ", "Mots mélangés", "Indices :", "a. ", "b. "} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Mots croisés") {
		t.Error("no crossword was built")
	}

	// The clue bank points back at the right scrambled word.
	set := a.Scramble
	for i, idx := range set.ClueOrder {
		line := string(clueLabel(i)) + ". " + set.Items[idx].ClueText + " : "
		if !strings.Contains(out, line) {
			t.Errorf("output missing clue line %q", line)
		}
	}
}

func TestRenderEmptyCrossword(t *testing.T) {
	grid := puzzle.GenerateCrossword(nil)
	out := renderString(t, &Activity{Title: "Vide", Crossword: &grid}, false)
	if !strings.Contains(out, "Aucun mot n'a pu être placé.") {
		t.Fatalf("expected empty crossword notice:\n%s", out)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRenderWriteError(t *testing.T) {
	if err := RenderText(failingWriter{}, &Activity{Title: "X"}, false); err == nil {
		t.Fatal("expected the write error")
	}
}

func TestClueLabel(t *testing.T) {
	if clueLabel(0) != 'a' || clueLabel(25) != 'z' || clueLabel(26) != 'A' {
		t.Fatal("unexpected clue labels")
	}
}
