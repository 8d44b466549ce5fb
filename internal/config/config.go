package config

import (
	"os"
	"path/filepath"

	"liwclens/internal/errors"
)

// Config represents the complete pipeline configuration
type Config struct {
	// InputFile is the raw LIWC results table (CSV or XLSX).
	InputFile string
	// OutputDir receives every artifact (CSVs, PNGs, text reports).
	OutputDir string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		InputFile: getEnvOrDefault("LIWC_INPUT_FILE", "liwc_results.csv"),
		OutputDir: getEnvOrDefault("LIWC_OUTPUT_DIR", "output"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

// Validate checks required fields
func (c *Config) Validate() error {
	if c.InputFile == "" {
		return errors.ConfigInvalid("input file path is required")
	}
	if c.OutputDir == "" {
		return errors.ConfigInvalid("output directory is required")
	}
	return nil
}

// EnsureOutputDir creates the output directory if it does not exist
func (c *Config) EnsureOutputDir() error {
	if err := os.MkdirAll(c.OutputDir, 0o755); err != nil {
		return errors.WriteError(c.OutputDir, err)
	}
	return nil
}

// OutputPath joins an artifact name onto the output directory
func (c *Config) OutputPath(name string) string {
	return filepath.Join(c.OutputDir, name)
}

// DerivedScoresPath is where the Score Deriver writes (and the downstream
// components read) the table carrying the new formula columns.
func (c *Config) DerivedScoresPath() string {
	return c.OutputPath("empathy_scores_with_new_formula.csv")
}

// Helper for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
