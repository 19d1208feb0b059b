package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bodul/puzzlepack/puzzle"
)

func TestParseVocabularyFile(t *testing.T) {
	want := []puzzle.VocabularyItem{
		{Word: "volcan", ClueType: puzzle.Definition, ClueText: "Montagne"},
		{Word: "magma", ClueType: puzzle.Synonym, ClueText: "Roche en fusion"},
	}

	tests := []struct {
		name  string
		input string
		title string
	}{
		{"yaml list", `
- word: volcan
  clue_type: Definition
  clue_text: Montagne
- word: magma
  clue_type: Synonym
  clue_text: Roche en fusion
`, ""},
		{"json list", `[
  {"word": "volcan", "clue_type": "Definition", "clue_text": "Montagne"},
  {"word": "magma", "clue_type": "Synonym", "clue_text": "Roche en fusion"}
]`, ""},
		{"yaml object", `
title: Volcans
grade_level: "9"
vocabulary:
  - {word: volcan, clue_type: Definition, clue_text: Montagne}
  - {word: magma, clue_type: Synonym, clue_text: Roche en fusion}
`, "Volcans"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vf, err := parseVocabularyFile([]byte(tt.input))
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if diff := cmp.Diff(want, vf.Vocabulary); diff != "" {
				t.Fatalf("vocabulary mismatch (-want +got):\n%s", diff)
			}
			if vf.Title != tt.title {
				t.Fatalf("expected title %q, got %q", tt.title, vf.Title)
			}
		})
	}

	for _, bad := range []string{"", "word: [", "42"} {
		if _, err := parseVocabularyFile([]byte(bad)); err == nil {
			t.Errorf("expected an error for %q", bad)
		}
	}
}

func TestGenerateCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "words.yaml")
	output := filepath.Join(dir, "activity.json")
	data := `
title: Volcans
vocabulary:
  - {word: volcan, clue_text: Montagne qui crache de la lave}
  - {word: lave, clue_text: Roche fondue}
  - {word: cratère, clue_text: Ouverture au sommet}
`
	if err := os.WriteFile(input, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	var stderr bytes.Buffer
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{"generate", "-i", input, "-o", output, "--kind", "crossword,scramble", "--grade", "3", "--seed", "11"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("generate: %v", err)
	}

	raw, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var a Activity
	if err := json.Unmarshal(raw, &a); err != nil {
		t.Fatalf("decode output: %v", err)
	}

	if a.Title != "Volcans" || a.GradeLevel != puzzle.Grade3 || a.Seed != 11 {
		t.Fatalf("unexpected activity header: %q %q %d", a.Title, a.GradeLevel, a.Seed)
	}
	if a.Crossword == nil || a.Scramble == nil || a.WordSearch != nil {
		t.Fatal("expected crossword and scramble only")
	}
	if a.Vocabulary[2].Word != "CRATERE" {
		t.Fatalf("expected normalized CRATERE, got %q", a.Vocabulary[2].Word)
	}
	// Three words cannot make a good crossword.
	if !strings.Contains(stderr.String(), "attention") {
		t.Fatalf("expected a warning on stderr, got %q", stderr.String())
	}
}
