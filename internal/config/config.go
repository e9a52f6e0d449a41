package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/mcncl/parson/internal/csv"
	"github.com/mcncl/parson/internal/json"
	"github.com/mcncl/parson/internal/models"
	"github.com/mcncl/parson/internal/parser"
	"github.com/mcncl/parson/internal/textenc"
)

// Config represents the complete configuration for parson
type Config struct {
	Format   string         `yaml:"format"`
	Encoding string         `yaml:"encoding"`
	JSON     JSONConfig     `yaml:"json"`
	CSV      CSVConfig      `yaml:"csv"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Dev      DevConfig      `yaml:"dev"`
}

// JSONConfig controls the JSON value builder
type JSONConfig struct {
	MaxDepth int `yaml:"max_depth"`
}

// CSVConfig controls CSV tokenizing and header handling
type CSVConfig struct {
	HeaderCase     string `yaml:"header_case"`
	SkipBlankLines bool   `yaml:"skip_blank_lines"`
}

// AnalysisConfig controls the column hints of the report
type AnalysisConfig struct {
	DetectUUIDs  bool          `yaml:"detect_uuids"`
	DetectTimes  bool          `yaml:"detect_times"`
	HintMappings []HintMapping `yaml:"hint_mappings"`
}

// HintMapping forces the hint of every column whose name matches Pattern
type HintMapping struct {
	Pattern string `yaml:"pattern"`
	Hint    string `yaml:"hint"`

	// compiled regex (not serialized)
	regex *regexp.Regexp
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug   bool `yaml:"debug"`
	Verbose bool `yaml:"verbose"`
}

// Overrides holds values given on the command line. Zero values are unset.
type Overrides struct {
	Format     string
	Encoding   string
	MaxDepth   int
	HeaderCase string
	Debug      bool
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Format:   "",
		Encoding: textenc.DefaultEncoding,
		JSON: JSONConfig{
			MaxDepth: json.DefaultMaxDepth,
		},
		CSV: CSVConfig{
			HeaderCase:     "",
			SkipBlankLines: true,
		},
		Analysis: AnalysisConfig{
			DetectUUIDs:  true,
			DetectTimes:  true,
			HintMappings: []HintMapping{},
		},
		Dev: DevConfig{
			Debug:   false,
			Verbose: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.compilePatterns(); err != nil {
		return nil, fmt.Errorf("failed to compile patterns: %w", err)
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".parson.yml", ".parson.yaml", "parson.yml", "parson.yaml"}

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

// compilePatterns compiles all regex patterns in the config
func (c *Config) compilePatterns() error {
	for i := range c.Analysis.HintMappings {
		mapping := &c.Analysis.HintMappings[i]
		regex, err := regexp.Compile(mapping.Pattern)
		if err != nil {
			return fmt.Errorf("invalid hint mapping pattern '%s': %w", mapping.Pattern, err)
		}
		mapping.regex = regex
	}
	return nil
}

// MatchesColumn checks if this hint mapping matches the given column name.
// It never modifies the mapping; patterns not compiled by LoadConfig or
// Validate are compiled for this call only.
func (hm HintMapping) MatchesColumn(column string) bool {
	regex := hm.regex
	if regex == nil {
		var err error
		if regex, err = regexp.Compile(hm.Pattern); err != nil {
			return false
		}
	}
	return regex.MatchString(column)
}

// FindHintMapping finds the first hint mapping that matches the column name
func (c *Config) FindHintMapping(column string) (HintMapping, bool) {
	for _, mapping := range c.Analysis.HintMappings {
		if mapping.MatchesColumn(column) {
			return mapping, true
		}
	}
	return HintMapping{}, false
}

var validHints = map[string]struct{}{
	models.HintUUID:    {},
	models.HintTime:    {},
	models.HintInteger: {},
	models.HintFloat:   {},
	models.HintBoolean: {},
	models.HintString:  {},
}

// Validate reports the first setting that cannot be used and compiles the
// hint mapping patterns. Call it before sharing the config.
func (c *Config) Validate() error {
	if c.Format != "" {
		if _, err := parser.ParseFormat(c.Format); err != nil {
			return fmt.Errorf("invalid format '%s': must be json, csv or parquet", c.Format)
		}
	}
	if _, err := textenc.Lookup(c.Encoding); err != nil {
		return fmt.Errorf("invalid encoding '%s': %w", c.Encoding, err)
	}
	if c.JSON.MaxDepth <= 0 {
		return fmt.Errorf("invalid json.max_depth %d: must be positive", c.JSON.MaxDepth)
	}
	if !csv.HeaderCase(c.CSV.HeaderCase).Valid() {
		return fmt.Errorf("invalid csv.header_case '%s': must be snake, camel, lower_camel or kebab", c.CSV.HeaderCase)
	}
	for _, mapping := range c.Analysis.HintMappings {
		if _, ok := validHints[mapping.Hint]; !ok {
			return fmt.Errorf("invalid hint '%s' for pattern '%s'", mapping.Hint, mapping.Pattern)
		}
	}
	return c.compilePatterns()
}

// ParserOptions converts the config into options for the parser package
func (c *Config) ParserOptions() parser.Options {
	opts := parser.DefaultOptions()
	opts.Encoding = c.Encoding
	opts.JSON.MaxDepth = c.JSON.MaxDepth
	opts.CSV.HeaderCase = csv.HeaderCase(c.CSV.HeaderCase)
	opts.CSV.SkipBlankLines = c.CSV.SkipBlankLines
	return opts
}

// LoadConfigWithCLI loads config with CLI argument precedence:
// CLI > config file > defaults
func LoadConfigWithCLI(configPath string, cli Overrides) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if cli.Format != "" {
		cfg.Format = cli.Format
	}
	if cli.Encoding != "" {
		cfg.Encoding = cli.Encoding
	}
	if cli.MaxDepth != 0 {
		cfg.JSON.MaxDepth = cli.MaxDepth
	}
	if cli.HeaderCase != "" {
		cfg.CSV.HeaderCase = cli.HeaderCase
	}
	// A debug flag can only turn debugging on
	if cli.Debug {
		cfg.Dev.Debug = true
	}

	return cfg, nil
}
