package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bodul/puzzlepack/puzzle"
)

var (
	genKinds     []string
	genGrade     string
	genSeed      uint64
	genTitle     string
	genInput     string
	genFormat    string
	genOutput    string
	genSolutions bool
)

func init() {
	genCmd := &cobra.Command{
		Use:   "generate",
		Short: "Build puzzles from a vocabulary file",
		Long: `Build an activity from a vocabulary file, without the web server.

The input is YAML or JSON: either a list of {word, clue_type, clue_text}
items, or an object with title, grade_level and vocabulary keys.

Examples:
  puzzlepack generate -i words.yaml
  puzzlepack generate -i words.json --kind crossword --format text --solutions
  cat words.yaml | puzzlepack generate -i - --seed 42 -o activity.json`,
		RunE: runGenerate,
	}

	genCmd.Flags().StringSliceVarP(&genKinds, "kind", "k", nil, "Puzzles to build: crossword, wordsearch, scramble (default all)")
	genCmd.Flags().StringVarP(&genGrade, "grade", "g", "", "Grade level 3, 6, 9 or 12 (default from config)")
	genCmd.Flags().Uint64Var(&genSeed, "seed", 0, "Random seed, 0 for a random one")
	genCmd.Flags().StringVarP(&genTitle, "title", "t", "", "Activity title")
	genCmd.Flags().StringVarP(&genInput, "input", "i", "-", "Vocabulary file, - for stdin")
	genCmd.Flags().StringVarP(&genFormat, "format", "f", "json", "Output format: json or text")
	genCmd.Flags().StringVarP(&genOutput, "output", "o", "", "Output file (default stdout)")
	genCmd.Flags().BoolVar(&genSolutions, "solutions", false, "Include answers in text output")

	rootCmd.AddCommand(genCmd)
}

// vocabularyFile is the object form of a generate input.
type vocabularyFile struct {
	Title      string                  `yaml:"title"`
	GradeLevel string                  `yaml:"grade_level"`
	Vocabulary []puzzle.VocabularyItem `yaml:"vocabulary"`
}

// parseVocabularyFile accepts a bare item list or a vocabularyFile, in YAML
// or JSON.
func parseVocabularyFile(data []byte) (vocabularyFile, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return vocabularyFile{}, fmt.Errorf("parse vocabulary: %w", err)
	}
	if len(doc.Content) == 0 {
		return vocabularyFile{}, fmt.Errorf("parse vocabulary: empty document")
	}

	var vf vocabularyFile
	root := doc.Content[0]
	if root.Kind == yaml.SequenceNode {
		if err := root.Decode(&vf.Vocabulary); err != nil {
			return vf, fmt.Errorf("parse vocabulary list: %w", err)
		}
		return vf, nil
	}
	if err := root.Decode(&vf); err != nil {
		return vf, fmt.Errorf("parse vocabulary file: %w", err)
	}
	return vf, nil
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(filepath.Clean(path))
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	if genFormat != "json" && genFormat != "text" {
		return fmt.Errorf("invalid format %q (use json or text)", genFormat)
	}
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return err
	}

	data, err := readInput(genInput)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	vf, err := parseVocabularyFile(data)
	if err != nil {
		return err
	}

	grade := cfg.DefaultGrade()
	if raw := firstNonEmpty(genGrade, vf.GradeLevel); raw != "" {
		if grade, err = puzzle.ParseGradeLevel(raw); err != nil {
			return err
		}
	}

	kinds := make([]PuzzleKind, len(genKinds))
	for i, k := range genKinds {
		if kinds[i], err = parsePuzzleKind(k); err != nil {
			return err
		}
	}

	vocab := puzzle.NormalizeVocabulary(vf.Vocabulary)
	if len(vocab) == 0 {
		return fmt.Errorf("no usable word in %s", genInput)
	}

	activity, err := BuildActivity(cmd.Context(), ActivityRequest{
		Title:      firstNonEmpty(genTitle, vf.Title, "Activité"),
		GradeLevel: grade,
		Vocabulary: vocab,
		Kinds:      kinds,
		Seed:       genSeed,
	})
	if err != nil {
		return err
	}
	for _, w := range activity.Warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), "attention :", w)
	}

	out := cmd.OutOrStdout()
	if genOutput != "" {
		f, err := os.Create(filepath.Clean(genOutput))
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	if genFormat == "text" {
		return RenderText(out, activity, genSolutions)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(activity)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
