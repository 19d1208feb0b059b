package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/bodul/puzzlepack/puzzle"
)

const (
	defaultPort      = "8080"
	defaultWordCount = 15
	minWordCount     = 5
	maxWordCount     = 40
)

// Config is the application configuration. Values come from an optional YAML
// file, then from the environment.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Gemini  GeminiConfig  `yaml:"gemini"`
	Store   StoreConfig   `yaml:"store"`
	Puzzles PuzzlesConfig `yaml:"puzzles"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
	// Activity generations allowed per minute and per client IP.
	GenerateRate int `yaml:"generate_rate"`
	// Moves allowed per second and per client IP.
	MoveRate int `yaml:"move_rate"`
}

// GeminiConfig selects the analysis backend: Vertex AI when ProjectID is set,
// the Gemini API when APIKey is set. Neither disables article analysis.
type GeminiConfig struct {
	ProjectID string `yaml:"project_id"`
	Region    string `yaml:"region"`
	Model     string `yaml:"model"`
	APIKey    string `yaml:"api_key"`
}

type StoreConfig struct {
	// Dir keeps one JSON file per activity. Empty means memory only.
	Dir string `yaml:"dir"`
}

type PuzzlesConfig struct {
	GradeLevel string `yaml:"grade_level"`
	WordCount  int    `yaml:"word_count"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{Port: defaultPort, GenerateRate: 5, MoveRate: 60},
		Gemini: GeminiConfig{Region: defaultRegion, Model: defaultModel},
		Puzzles: PuzzlesConfig{
			GradeLevel: string(puzzle.Grade6),
			WordCount:  defaultWordCount,
		},
	}
}

// LoadConfig reads path (if not empty), applies the environment and validates
// the result.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := cfg.applyEnv(os.Getenv); err != nil {
		return cfg, err
	}
	err := cfg.Validate()
	return cfg, err
}

func (c *Config) applyEnv(getenv func(string) string) error {
	for env, dst := range map[string]*string{
		"PORT":           &c.Server.Port,
		"GCP_PROJECT_ID": &c.Gemini.ProjectID,
		"GCP_REGION":     &c.Gemini.Region,
		"GEMINI_MODEL":   &c.Gemini.Model,
		"GEMINI_API_KEY": &c.Gemini.APIKey,
		"DATA_DIR":       &c.Store.Dir,
		"GRADE_LEVEL":    &c.Puzzles.GradeLevel,
	} {
		if v := getenv(env); v != "" {
			*dst = v
		}
	}
	if v := getenv("WORD_COUNT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("WORD_COUNT: %w", err)
		}
		c.Puzzles.WordCount = n
	}
	return nil
}

// Validate checks ranges and fills zero values with defaults.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		c.Server.Port = defaultPort
	}
	if c.Server.GenerateRate <= 0 || c.Server.MoveRate <= 0 {
		return fmt.Errorf("rate limits must be positive (generate=%d, move=%d)", c.Server.GenerateRate, c.Server.MoveRate)
	}
	if c.Gemini.Region == "" {
		c.Gemini.Region = defaultRegion
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = defaultModel
	}
	if _, err := puzzle.ParseGradeLevel(c.Puzzles.GradeLevel); err != nil {
		return fmt.Errorf("puzzles.grade_level: %w", err)
	}
	if c.Puzzles.WordCount < minWordCount || c.Puzzles.WordCount > maxWordCount {
		return fmt.Errorf("puzzles.word_count must be between %d and %d, got %d", minWordCount, maxWordCount, c.Puzzles.WordCount)
	}
	return nil
}

// DefaultGrade is the validated grade level used when a request names none.
func (c Config) DefaultGrade() puzzle.GradeLevel {
	g, err := puzzle.ParseGradeLevel(c.Puzzles.GradeLevel)
	if err != nil {
		return puzzle.Grade6
	}
	return g
}
