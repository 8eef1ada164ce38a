package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Output format names accepted by the CLI and the config file.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// Config represents the complete configuration for jsoncompare
type Config struct {
	Labels  LabelsConfig  `yaml:"labels"`
	Display DisplayConfig `yaml:"display"`
	Summary SummaryConfig `yaml:"summary"`
}

// LabelsConfig names the two sides of the comparison. The labels
// appear in parse diagnostics and in the report's column headers.
type LabelsConfig struct {
	Request  string `yaml:"request"`
	Response string `yaml:"response"`
}

// DisplayConfig controls report rendering
type DisplayConfig struct {
	// MaxValueLength is the truncation limit for rendered values.
	MaxValueLength int `yaml:"max_value_length"`
	// Color toggles ANSI coloring of the table output.
	Color bool `yaml:"color"`
	// Format selects the renderer: "table" or "json".
	Format string `yaml:"format"`
}

// SummaryConfig controls the trailing report sections
type SummaryConfig struct {
	ShowMatching  bool `yaml:"show_matching"`
	ShowDifferent bool `yaml:"show_different"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Labels: LabelsConfig{
			Request:  "REQUEST",
			Response: "RESPONSE",
		},
		Display: DisplayConfig{
			MaxValueLength: 50,
			Color:          true,
			Format:         FormatTable,
		},
		Summary: SummaryConfig{
			ShowMatching:  true,
			ShowDifferent: true,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults so a partial file only overrides what it
	// names.
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".jsoncompare.yml", ".jsoncompare.yaml", "jsoncompare.yml", "jsoncompare.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Search up the directory tree
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate rejects values the renderers cannot honor
func (c *Config) Validate() error {
	if c.Display.Format != FormatTable && c.Display.Format != FormatJSON {
		return fmt.Errorf("invalid display format '%s': must be '%s' or '%s'", c.Display.Format, FormatTable, FormatJSON)
	}
	if c.Display.MaxValueLength <= 0 {
		return fmt.Errorf("invalid max_value_length %d: must be positive", c.Display.MaxValueLength)
	}
	if c.Labels.Request == "" || c.Labels.Response == "" {
		return fmt.Errorf("labels must not be empty")
	}
	return nil
}
