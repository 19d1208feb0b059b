package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bodul/puzzlepack/puzzle"
)

// minCrosswordWords is the number of placed words under which a crossword is
// flagged as poor.
const minCrosswordWords = 5

// PuzzleKind names one of the puzzle engines.
type PuzzleKind string

const (
	KindCrossword  PuzzleKind = "crossword"
	KindWordSearch PuzzleKind = "wordsearch"
	KindScramble   PuzzleKind = "scramble"
)

var allKinds = []PuzzleKind{KindCrossword, KindWordSearch, KindScramble}

func parsePuzzleKind(s string) (PuzzleKind, error) {
	for _, k := range allKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown puzzle kind %q", s)
}

// Activity is a printable packet built from one article. It is stored as is
// and re-rendered from storage, so it only holds plain data.
type Activity struct {
	ID          string                  `json:"id"`
	Title       string                  `json:"title"`
	Summary     string                  `json:"summary,omitempty"`
	SearchQuery string                  `json:"search_query,omitempty"`
	GradeLevel  puzzle.GradeLevel       `json:"grade_level"`
	Vocabulary  []puzzle.VocabularyItem `json:"vocabulary"`
	Seed        uint64                  `json:"seed"`
	Crossword   *puzzle.CrosswordGrid   `json:"crossword,omitempty"`
	WordSearch  *puzzle.WordSearchGrid  `json:"word_search,omitempty"`
	Scramble    *puzzle.ScrambleSet     `json:"scramble,omitempty"`
	Warnings    []string                `json:"warnings,omitempty"`
	CreatedAt   time.Time               `json:"created_at"`
}

// ActivityRequest is the input of BuildActivity. An empty Kinds builds every
// puzzle, a zero Seed picks a random one.
type ActivityRequest struct {
	Title       string
	Summary     string
	SearchQuery string
	GradeLevel  puzzle.GradeLevel
	Vocabulary  []puzzle.VocabularyItem
	Kinds       []PuzzleKind
	Seed        uint64
}

// BuildActivity runs the requested engines concurrently on the vocabulary.
// The engines never fail; poor results are reported as warnings.
func BuildActivity(ctx context.Context, req ActivityRequest) (*Activity, error) {
	kinds, err := uniqueKinds(req.Kinds)
	if err != nil {
		return nil, err
	}
	seed := req.Seed
	for seed == 0 {
		seed = rand.Uint64()
	}

	a := &Activity{
		Title:       req.Title,
		Summary:     req.Summary,
		SearchQuery: req.SearchQuery,
		GradeLevel:  req.GradeLevel,
		Vocabulary:  req.Vocabulary,
		Seed:        seed,
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, kind := range kinds {
		rng := puzzle.NewRand(kindSeed(seed, kind))
		switch kind {
		case KindCrossword:
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				grid := puzzle.GenerateCrossword(req.Vocabulary)
				a.Crossword = &grid
				return nil
			})
		case KindWordSearch:
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				grid := puzzle.GenerateWordSearch(req.Vocabulary, req.GradeLevel, rng)
				a.WordSearch = &grid
				return nil
			})
		case KindScramble:
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				set := puzzle.BuildScrambleSet(req.Vocabulary, rng)
				a.Scramble = &set
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("build activity: %w", err)
	}

	a.Warnings = activityWarnings(a)
	return a, nil
}

// uniqueKinds validates kinds and removes repeats. Each engine writes its own
// field of the activity, so it must run at most once.
func uniqueKinds(kinds []PuzzleKind) ([]PuzzleKind, error) {
	if len(kinds) == 0 {
		return allKinds, nil
	}
	seen := make(map[PuzzleKind]bool, len(kinds))
	out := make([]PuzzleKind, 0, len(kinds))
	for _, k := range kinds {
		if _, err := parsePuzzleKind(string(k)); err != nil {
			return nil, err
		}
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out, nil
}

// kindSeed derives the seed of one engine from the activity seed. It depends
// on the kind only, so a single-engine build reproduces the same puzzle.
func kindSeed(seed uint64, kind PuzzleKind) uint64 {
	return seed + uint64(slices.Index(allKinds, kind)) + 1
}

func activityWarnings(a *Activity) []string {
	var warnings []string
	if a.Crossword != nil && len(a.Crossword.PlacedWords) < minCrosswordWords {
		warnings = append(warnings, "Impossible de construire une bonne grille de mots croisés à partir de ce texte.")
	}
	if a.WordSearch != nil && len(a.WordSearch.Dropped) > 0 {
		warnings = append(warnings, fmt.Sprintf("%d mot(s) n'ont pas pu être cachés dans la grille de mots mêlés.", len(a.WordSearch.Dropped)))
	}
	return warnings
}
