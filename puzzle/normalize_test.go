package puzzle_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bodul/puzzlepack/puzzle"
)

func TestNormalizeWord(t *testing.T) {
	cases := map[string]string{
		"photosynthesis":  "PHOTOSYNTHESIS",
		"  café au lait ": "CAFE",
		"well-being":      "WELL",
		"Señor":           "SENOR",
		"":                "",
		"   ":             "",
	}
	for in, want := range cases {
		assert.Equal(t, want, puzzle.NormalizeWord(in), "NormalizeWord(%q)", in)
	}
}

func TestNormalizeVocabulary(t *testing.T) {
	in := []puzzle.VocabularyItem{
		{Word: "energy", ClueType: "synonym", ClueText: " power "},
		{Word: "ox", ClueType: puzzle.Definition, ClueText: "too short"},
		{Word: "Energy", ClueType: puzzle.Antonym, ClueText: "duplicate"},
		{Word: "solar panel", ClueType: "riddle", ClueText: "collects light"},
	}
	got := puzzle.NormalizeVocabulary(in)

	want := []puzzle.VocabularyItem{
		{Word: "ENERGY", ClueType: puzzle.Synonym, ClueText: "power"},
		{Word: "SOLAR", ClueType: puzzle.Definition, ClueText: "collects light"},
	}
	assert.Equal(t, want, got)
}

func TestParseGradeLevel(t *testing.T) {
	for in, want := range map[string]puzzle.GradeLevel{"3": puzzle.Grade3, "6th": puzzle.Grade6, " 9 ": puzzle.Grade9, "12TH": puzzle.Grade12} {
		got, err := puzzle.ParseGradeLevel(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := puzzle.ParseGradeLevel("college")
	assert.True(t, errors.Is(err, puzzle.ErrUnknownGradeLevel))
}

func TestParseClueType(t *testing.T) {
	ct, err := puzzle.ParseClueType("ANTONYM")
	assert.NoError(t, err)
	assert.Equal(t, puzzle.Antonym, ct)

	_, err = puzzle.ParseClueType("anagram")
	assert.ErrorIs(t, err, puzzle.ErrUnknownClueType)
}
