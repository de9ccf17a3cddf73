package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "experiment.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeTempConfig(t, `
reviews_csv: reviews.csv
arms: [A, B]
steps: 250
epsilon: 0.2
seed: 42
synchronized: false
results_db: out.db
oracle:
  model: openai/gpt-4o
  max_retries: 2
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ReviewsCSV != "reviews.csv" || cfg.Steps != 250 || cfg.Epsilon != 0.2 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Synchronized {
		t.Error("synchronized should be overridden to false")
	}
	if len(cfg.Arms) != 2 || cfg.Arms[0] != "A" {
		t.Errorf("arms = %v, want [A B]", cfg.Arms)
	}
	if cfg.Oracle.Model != "openai/gpt-4o" || cfg.Oracle.MaxRetries != 2 {
		t.Errorf("oracle = %+v", cfg.Oracle)
	}
}

func TestLoad_DefaultsFillUnsetFields(t *testing.T) {
	path := writeTempConfig(t, "reviews_csv: reviews.csv\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := Default()
	if cfg.Steps != want.Steps || cfg.Epsilon != want.Epsilon || cfg.ResultsDB != want.ResultsDB {
		t.Errorf("cfg = %+v, want defaults %+v", cfg, want)
	}
	if !cfg.Synchronized {
		t.Error("synchronized should default to true")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("want error for missing file")
	}
}

func TestValidate(t *testing.T) {
	base := Default()
	base.ReviewsCSV = "reviews.csv"

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantSub string
	}{
		{"valid", func(*Config) {}, ""},
		{"no-csv", func(c *Config) { c.ReviewsCSV = "" }, "reviews_csv"},
		{"zero-steps", func(c *Config) { c.Steps = 0 }, "steps"},
		{"negative-epsilon", func(c *Config) { c.Epsilon = -0.5 }, "epsilon"},
		{"epsilon-above-one", func(c *Config) { c.Epsilon = 1.5 }, "epsilon"},
		{"no-db", func(c *Config) { c.ResultsDB = "" }, "results_db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantSub == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("got err %v, want substring %q", err, tt.wantSub)
			}
		})
	}
}
