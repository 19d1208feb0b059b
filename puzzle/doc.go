// Package puzzle lays out vocabulary words into printable puzzle grids.
//
// Three independent engines are provided:
//
//   - GenerateCrossword packs words into an interlocking crossword, trims the
//     working grid to the used area and numbers the clue starts.
//   - GenerateWordSearch hides words along a grade-dependent set of directions
//     and fills the remaining cells with noise letters.
//   - BuildScrambleSet shuffles the letters of each word and derives a stable
//     clue order for a "match the clue" exercise.
//
// Every engine is a pure function over its arguments: there is no shared
// state, so independent word lists can be processed concurrently. Randomness
// is injected as a *rand.Rand so layouts are reproducible under a fixed seed.
//
// Words that cannot be placed are never an error. They are reported in the
// Dropped field of the result and callers decide how to react.
package puzzle
