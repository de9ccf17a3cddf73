// Package config loads experiment configuration from YAML.
package config

// #region imports
import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// #endregion

// #region types

// OracleConfig selects the scoring model and transport tuning.
type OracleConfig struct {
	Model      string `yaml:"model"`
	BaseURL    string `yaml:"base_url"`
	MaxRetries int    `yaml:"max_retries"`
}

// Config describes one experiment end to end.
type Config struct {
	ReviewsCSV   string       `yaml:"reviews_csv"`
	ArmColumn    string       `yaml:"arm_column"`
	Arms         []string     `yaml:"arms"` // empty = infer from the corpus
	Steps        int          `yaml:"steps"`
	Epsilon      float64      `yaml:"epsilon"`
	Seed         int64        `yaml:"seed"` // 0 = time-seeded
	Synchronized bool         `yaml:"synchronized"`
	ResultsDB    string       `yaml:"results_db"`
	Oracle       OracleConfig `yaml:"oracle"`
}

// #endregion

// #region defaults

// Default returns the baseline configuration before file overrides.
func Default() Config {
	return Config{
		Steps:        100,
		Epsilon:      0.1,
		Synchronized: true,
		ResultsDB:    "results.db",
	}
}

// #endregion

// #region load

// Load reads and validates a config file.
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// #endregion

// #region validate

// Validate checks the fields a run cannot proceed without.
func (c Config) Validate() error {
	if c.ReviewsCSV == "" {
		return fmt.Errorf("reviews_csv is required")
	}
	if c.Steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", c.Steps)
	}
	if c.Epsilon < 0.0 || c.Epsilon > 1.0 {
		return fmt.Errorf("epsilon must be between 0.0 and 1.0, got %g", c.Epsilon)
	}
	if c.ResultsDB == "" {
		return fmt.Errorf("results_db is required")
	}
	return nil
}

// #endregion
