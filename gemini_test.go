package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bodul/puzzlepack/puzzle"
)

const testArticle = `Les abeilles vivent en colonies organisées autour d'une reine. Les ouvrières
récoltent le nectar des fleurs et le transforment en miel dans la ruche. En
butinant, elles transportent le pollen d'une fleur à l'autre et permettent la
pollinisation de nombreuses plantes cultivées.`

func TestAnalyzeArticle(t *testing.T) {
	cfg := GeminiConfig{ProjectID: os.Getenv("GCP_PROJECT_ID"), APIKey: os.Getenv("GEMINI_API_KEY")}
	if cfg.ProjectID == "" && cfg.APIKey == "" {
		t.Skip("GCP_PROJECT_ID not set, skipping integration test")
	}

	ctx := context.Background()
	client, err := NewGeminiClient(ctx, cfg)
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	defer client.Close()

	analysis, err := client.AnalyzeArticle(ctx, testArticle, AnalysisOptions{GradeLevel: puzzle.Grade6, WordCount: 8})
	if err != nil {
		t.Fatalf("analyze article: %v", err)
	}

	if analysis.Title == "" || analysis.Summary == "" {
		t.Fatal("expected a title and a summary")
	}
	if len(analysis.Vocabulary) == 0 {
		t.Fatal("expected vocabulary")
	}

	// Print a sample for manual inspection.
	out, _ := json.MarshalIndent(analysis, "", "  ")
	t.Logf("Extracted analysis:\n%s", string(out))
}

func TestNewGeminiClientNotConfigured(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), GeminiConfig{})
	if !errors.Is(err, errGeminiNotConfigured) {
		t.Fatalf("expected errGeminiNotConfigured, got %v", err)
	}
}

func TestParseAnalysis(t *testing.T) {
	raw := `{
		"title": "Les abeilles",
		"summary": "Les abeilles fabriquent du miel.",
		"search_query": "abeille ruche",
		"vocabulary": [
			{"word": "Pollinisation", "clue_type": "Definition", "clue_text": " Transport du pollen "},
			{"word": "reine-mère", "clue_type": "Synonym", "clue_text": "Souveraine"},
			{"word": "miel", "clue_type": "Metaphor", "clue_text": "Produit sucré"},
			{"word": "MIEL", "clue_type": "Definition", "clue_text": "Doublon"},
			{"word": "il", "clue_type": "Definition", "clue_text": "Trop court"}
		]
	}`

	got, err := parseAnalysis(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := &Analysis{
		Title:       "Les abeilles",
		Summary:     "Les abeilles fabriquent du miel.",
		SearchQuery: "abeille ruche",
		Vocabulary: []puzzle.VocabularyItem{
			{Word: "POLLINISATION", ClueType: puzzle.Definition, ClueText: "Transport du pollen"},
			{Word: "REINE", ClueType: puzzle.Synonym, ClueText: "Souveraine"},
			{Word: "MIEL", ClueType: puzzle.Definition, ClueText: "Produit sucré"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("analysis mismatch (-want +got):\n%s", diff)
	}
}

func TestParseAnalysisErrors(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		unsuitable bool
	}{
		{"empty", "  ", false},
		{"not json", "Désolé, je ne peux pas.", false},
		{"missing summary", `{"title":"T","summary":"","vocabulary":[]}`, false},
		{"unsuitable", `{"error":"The provided text is not a valid article.","reason":"It is source code.","title":"N/A","summary":"N/A","search_query":"N/A","vocabulary":[]}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseAnalysis(tt.raw)
			if err == nil {
				t.Fatal("expected an error")
			}
			if got := errors.Is(err, errUnsuitableContent); got != tt.unsuitable {
				t.Fatalf("errors.Is(errUnsuitableContent) = %v, want %v (%v)", got, tt.unsuitable, err)
			}
		})
	}
}
