package main

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

const (
	defaultRegion = "europe-west1"
	defaultModel  = "gemini-2.5-flash"
)

var errGeminiNotConfigured = errors.New("gemini: neither GCP project nor API key configured")

// GeminiClient wraps the Google GenAI client used for article analysis.
type GeminiClient struct {
	client    *genai.Client
	modelName string
}

// NewGeminiClient creates a client for Vertex AI when cfg names a GCP project,
// using Application Default Credentials (GOOGLE_APPLICATION_CREDENTIALS), or
// for the Gemini API when cfg holds an API key.
func NewGeminiClient(ctx context.Context, cfg GeminiConfig) (*GeminiClient, error) {
	cc := &genai.ClientConfig{}
	switch {
	case cfg.ProjectID != "":
		cc.Backend = genai.BackendVertexAI
		cc.Project = cfg.ProjectID
		cc.Location = cfg.Region
		if cc.Location == "" {
			cc.Location = defaultRegion
		}
	case cfg.APIKey != "":
		cc.Backend = genai.BackendGeminiAPI
		cc.APIKey = cfg.APIKey
	default:
		return nil, errGeminiNotConfigured
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	return &GeminiClient{client: client, modelName: model}, nil
}

// Close releases resources held by the client.
func (g *GeminiClient) Close() error {
	return nil
}
