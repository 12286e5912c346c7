// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional in the file; required values can also arrive via
// flags or environment variables before Validate runs.
type Config struct {
	// Identity
	UserID string `json:"user_id,omitempty" validate:"required"`

	// Connections
	DatabaseURL string `json:"database_url,omitempty" validate:"required"`
	APIKey      string `json:"api_key,omitempty" validate:"required"`
	SerpAPIKey  string `json:"serpapi_key,omitempty"`

	// Search
	Sources  []string `json:"sources,omitempty" validate:"omitempty,dive,oneof=google_jobs greenhouse lever yc linkedin wellfound"`
	Keywords []string `json:"keywords,omitempty"`
	Location string   `json:"location,omitempty"`

	// Boards for the ATS adapters
	GreenhouseBoards []string `json:"greenhouse_boards,omitempty"`
	LeverBoards      []string `json:"lever_boards,omitempty"`

	// Tuning
	MatchThreshold    float64 `json:"match_threshold,omitempty" validate:"omitempty,gt=0,lte=1"`
	RetryAttempts     int     `json:"retry_attempts,omitempty" validate:"omitempty,gte=1,lte=10"`
	RequestsPerSecond float64 `json:"requests_per_second,omitempty" validate:"omitempty,gt=0"`
	RequestBurst      int     `json:"request_burst,omitempty" validate:"omitempty,gte=1"`

	// Logging
	JSONLogs bool `json:"json_logs,omitempty"`
	Debug    bool `json:"debug,omitempty"`
}

// Load loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// ApplyEnv fills connection values from the environment when the file and
// flags left them empty.
func (c *Config) ApplyEnv() {
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if c.APIKey == "" {
		c.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.SerpAPIKey == "" {
		c.SerpAPIKey = os.Getenv("SERPAPI_KEY")
	}
	if c.UserID == "" {
		c.UserID = os.Getenv("JOBSCOUT_USER_ID")
	}
}

// Validate checks the configuration after all sources have been merged.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			first := errs[0]
			return fmt.Errorf("config error: field %q failed %q validation", first.Field(), first.Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}
