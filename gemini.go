package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/bodul/puzzlepack/puzzle"
)

// errUnsuitableContent is returned when the model judges the text is not prose.
var errUnsuitableContent = errors.New("text is not a suitable article")

const analyzePrompt = `You are an expert educational content creator. Analyze the article below and produce materials for grade %s students.

First decide whether the text is prose (an article, a story, a report). If it is source code, a list, a recipe or any other non-prose content, set "error" to "The provided text is not a valid article." and "reason" to a short explanation, use "N/A" for the other string fields and an empty "vocabulary" array.

Otherwise:
1. "summary": rewrite the article for a grade %s student, at least 250 words, in paragraphs separated by newlines, third person, without referring to the article itself.
2. "vocabulary": %d key terms, names or concepts. Each "word" is a single word without spaces or hyphens. Pick "clue_type" among Definition, Synonym and Antonym, varying them, and write the matching short "clue_text".
3. "search_query": 2 to 4 keywords for a stock photo search capturing the article's visual theme.
4. "title": a short, engaging title.

ARTICLE:
---
%s
---`

var vocabularySchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"word":      {Type: genai.TypeString},
		"clue_type": {Type: genai.TypeString, Enum: []string{string(puzzle.Definition), string(puzzle.Synonym), string(puzzle.Antonym)}},
		"clue_text": {Type: genai.TypeString},
	},
	Required: []string{"word", "clue_type", "clue_text"},
}

var analysisSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"title":        {Type: genai.TypeString},
		"summary":      {Type: genai.TypeString},
		"search_query": {Type: genai.TypeString},
		"vocabulary":   {Type: genai.TypeArray, Items: vocabularySchema},
		"error":        {Type: genai.TypeString, Nullable: genai.Ptr(true)},
		"reason":       {Type: genai.TypeString, Nullable: genai.Ptr(true)},
	},
	Required: []string{"title", "summary", "search_query", "vocabulary"},
}

// AnalysisOptions tunes the generated materials.
type AnalysisOptions struct {
	GradeLevel puzzle.GradeLevel
	WordCount  int
}

// Analysis is the material extracted from an article.
type Analysis struct {
	Title       string                  `json:"title"`
	Summary     string                  `json:"summary"`
	SearchQuery string                  `json:"search_query"`
	Vocabulary  []puzzle.VocabularyItem `json:"vocabulary"`
}

// Analyzer turns article text into puzzle vocabulary.
type Analyzer interface {
	AnalyzeArticle(ctx context.Context, text string, opts AnalysisOptions) (*Analysis, error)
}

// AnalyzeArticle asks Gemini for a title, a summary and a vocabulary list.
func (g *GeminiClient) AnalyzeArticle(ctx context.Context, text string, opts AnalysisOptions) (*Analysis, error) {
	prompt := fmt.Sprintf(analyzePrompt, opts.GradeLevel, opts.GradeLevel, opts.WordCount, text)

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName,
		[]*genai.Content{{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		}},
		&genai.GenerateContentConfig{
			Temperature:      genai.Ptr(float32(0.4)),
			ResponseMIMEType: "application/json",
			ResponseSchema:   analysisSchema,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}

	return parseAnalysis(resp.Text())
}

// parseAnalysis decodes and cleans a model response.
func parseAnalysis(text string) (*Analysis, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("empty gemini response")
	}

	var raw struct {
		Analysis
		Error  *string `json:"error"`
		Reason *string `json:"reason"`
	}
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("parse analysis JSON: %w\nraw response: %s", err, text)
	}

	if raw.Error != nil && *raw.Error != "" {
		msg := *raw.Error
		if raw.Reason != nil && *raw.Reason != "" {
			msg += " Reason: " + *raw.Reason
		}
		return nil, fmt.Errorf("%w: %s", errUnsuitableContent, msg)
	}

	a := raw.Analysis
	if a.Title == "" || a.Summary == "" {
		return nil, fmt.Errorf("incomplete analysis: title or summary missing")
	}
	a.Vocabulary = puzzle.NormalizeVocabulary(a.Vocabulary)
	return &a, nil
}
