// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"sewerswarm/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Pricing contains pricing-related settings
	Pricing PricingConfig `json:"pricing"`

	// Survey contains survey-ingestion settings
	Survey SurveyConfig `json:"survey"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Storage contains report persistence settings
	Storage StorageConfig `json:"storage"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// PricingConfig contains pricing-related settings
type PricingConfig struct {
	// ConfigDir is the directory of per-sector pricing files
	ConfigDir string `json:"config_dir"`

	// DefaultSector is used when an upload carries no sector
	DefaultSector string `json:"default_sector"`

	// Currency is the report currency code
	Currency string `json:"currency"`
}

// SurveyConfig contains survey-ingestion settings
type SurveyConfig struct {
	// SectionTable is the survey database section table name
	SectionTable string `json:"section_table"`

	// ObservationTable is the survey database observation table name
	ObservationTable string `json:"observation_table"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format (table, json)
	DefaultFormat string `json:"default_format"`

	// ShowCosts includes the cost column in table output
	ShowCosts bool `json:"show_costs"`

	// ShowSummary appends the adoptability summary footer
	ShowSummary bool `json:"show_summary"`
}

// StorageConfig contains report persistence settings
type StorageConfig struct {
	// DatabasePath is the path to the report database
	DatabasePath string `json:"database_path"`
}

// Default returns a default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	base := filepath.Join(homeDir, ".sewerswarm")

	return &Config{
		Version: "1.0",
		Pricing: PricingConfig{
			ConfigDir:     filepath.Join(base, "pricing"),
			DefaultSector: "utilities",
			Currency:      "GBP",
		},
		Survey: SurveyConfig{
			SectionTable:     "SECTION",
			ObservationTable: "SECOBS",
		},
		Output: OutputConfig{
			DefaultFormat: "table",
			ShowCosts:     true,
			ShowSummary:   true,
		},
		Storage: StorageConfig{
			DatabasePath: filepath.Join(base, "reports.db"),
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
