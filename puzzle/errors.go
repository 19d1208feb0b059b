package puzzle

import "errors"

var (
	// ErrUnknownGradeLevel indicates a grade level outside the supported tiers.
	ErrUnknownGradeLevel = errors.New("puzzle: unknown grade level")
	// ErrUnknownClueType indicates a clue type other than Definition, Synonym or Antonym.
	ErrUnknownClueType = errors.New("puzzle: unknown clue type")
)
