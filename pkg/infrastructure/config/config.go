// Package config provides configuration loading for bomforge.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/vsinha/bomforge/pkg/infrastructure/logging"
	"github.com/vsinha/bomforge/pkg/infrastructure/repositories/csv"
)

// Config represents the complete bomforge configuration
type Config struct {
	BOM       BOMConfig       `yaml:"bom"`
	Placement PlacementConfig `yaml:"placement"`
	Resolve   ResolveConfig   `yaml:"resolve"`
	Discovery DiscoveryConfig `yaml:"discovery"`
	Log       logging.Config  `yaml:"log"`
}

// BOMConfig names the BOM file columns
type BOMConfig struct {
	NameColumn        string `yaml:"name_column"`
	DescriptionColumn string `yaml:"description_column"`
	PartNumberColumn  string `yaml:"part_number_column"`
	DesignatorColumn  string `yaml:"designator_column"`
	// Delimiter is the field separator shared by BOM and placement files
	Delimiter string `yaml:"delimiter"`
}

// PlacementConfig names the placement file columns
type PlacementConfig struct {
	DesignatorColumn string   `yaml:"designator_column"`
	ValueColumns     []string `yaml:"value_columns"`
	FootprintColumns []string `yaml:"footprint_columns"`
	MaxPreambleLines int      `yaml:"max_preamble_lines"`
}

// ResolveConfig controls the ambiguity resolution pass
type ResolveConfig struct {
	// NormalizeValues joins BOM names and placement values by decoded magnitude
	NormalizeValues bool `yaml:"normalize_values"`
	// PropagateParentFields copies description and part number to split entries
	PropagateParentFields bool `yaml:"propagate_parent_fields"`
	// CanonicalizeValues decodes resistor entry names after resolution
	CanonicalizeValues bool `yaml:"canonicalize_values"`
}

// DiscoveryConfig holds glob patterns used to find input files in a project directory
type DiscoveryConfig struct {
	BOMPatterns       []string `yaml:"bom_patterns"`
	PlacementPatterns []string `yaml:"placement_patterns"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	bomColumns := csv.DefaultBOMColumns()
	placementColumns := csv.DefaultPlacementColumns()

	return &Config{
		BOM: BOMConfig{
			NameColumn:        bomColumns.Name,
			DescriptionColumn: bomColumns.Description,
			PartNumberColumn:  bomColumns.PartNumber,
			DesignatorColumn:  bomColumns.Designator,
			Delimiter:         ",",
		},
		Placement: PlacementConfig{
			DesignatorColumn: placementColumns.Designator,
			ValueColumns:     placementColumns.Value,
			FootprintColumns: placementColumns.Footprint,
			MaxPreambleLines: placementColumns.MaxPreambleLines,
		},
		Discovery: DiscoveryConfig{
			BOMPatterns:       []string{"**/*BOM*.csv", "**/*bom*.csv"},
			PlacementPatterns: []string{"**/*[Pp]ick*[Pp]lace*.csv", "**/*[Pp]n[Pp]*.csv", "**/*CPL*.csv"},
		},
		Log: logging.DefaultConfig(),
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.BOM.NameColumn == "" {
		return fmt.Errorf("bom.name_column is required")
	}
	if c.BOM.DesignatorColumn == "" {
		return fmt.Errorf("bom.designator_column is required")
	}
	if utf8.RuneCountInString(c.BOM.Delimiter) != 1 {
		return fmt.Errorf("bom.delimiter must be a single character, got %q", c.BOM.Delimiter)
	}
	if c.Placement.DesignatorColumn == "" {
		return fmt.Errorf("placement.designator_column is required")
	}
	if len(c.Placement.ValueColumns) == 0 {
		return fmt.Errorf("placement.value_columns must list at least one column")
	}
	if c.Placement.MaxPreambleLines <= 0 {
		return fmt.Errorf("placement.max_preamble_lines must be positive, got %d", c.Placement.MaxPreambleLines)
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file on top of the defaults
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LoaderOptions converts the column settings into CSV loader options
func (c *Config) LoaderOptions() []csv.LoaderOption {
	delimiter, _ := utf8.DecodeRuneInString(c.BOM.Delimiter)
	return []csv.LoaderOption{
		csv.WithDelimiter(delimiter),
		csv.WithBOMColumns(csv.BOMColumns{
			Name:        c.BOM.NameColumn,
			Description: c.BOM.DescriptionColumn,
			PartNumber:  c.BOM.PartNumberColumn,
			Designator:  c.BOM.DesignatorColumn,
		}),
		csv.WithPlacementColumns(csv.PlacementColumns{
			Designator:       c.Placement.DesignatorColumn,
			Value:            c.Placement.ValueColumns,
			Footprint:        c.Placement.FootprintColumns,
			MaxPreambleLines: c.Placement.MaxPreambleLines,
		}),
	}
}
