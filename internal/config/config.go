package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level tally.yaml configuration.
type Config struct {
	Ledger      LedgerConfig      `yaml:"ledger"`
	Rules       RulesConfig       `yaml:"rules"`
	Import      ImportConfig      `yaml:"import"`
	Spreadsheet SpreadsheetConfig `yaml:"spreadsheet"`
}

// LedgerConfig locates the cumulative transaction store.
type LedgerConfig struct {
	Path string `yaml:"path"`
}

// RulesConfig locates the vendor classification rule table.
type RulesConfig struct {
	Path string `yaml:"path"`
}

// ImportConfig controls where statement exports are picked up.
type ImportConfig struct {
	Dir string `yaml:"dir"`
}

// SpreadsheetConfig describes the fixed layout of spreadsheet exports.
type SpreadsheetConfig struct {
	// HeaderRow is the 0-based row index of the data table header.
	HeaderRow int `yaml:"header_row"`
	// StatementCell holds the statement label, read without any offset.
	StatementCell string `yaml:"statement_cell"`
}

// Load reads a tally.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config matching the conventional project layout.
func Default() *Config {
	return &Config{
		Ledger: LedgerConfig{Path: "master_transactions.csv"},
		Rules:  RulesConfig{Path: "vendor_rules.csv"},
		Import: ImportConfig{Dir: "import"},
		Spreadsheet: SpreadsheetConfig{
			HeaderRow:     6,
			StatementCell: "B1",
		},
	}
}
