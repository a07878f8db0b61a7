package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/geoqa/geoqa/schema"
)

// Default values for configuration.
const (
	DefaultMinScore    = 60.0
	DefaultResultLimit = 25
	MaxResultLimit     = 1000
	DefaultPrecision   = 1
	DefaultTopValues   = 5
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// Config holds the runtime configuration for an assessment.
// This struct remains the "final, validated" config.
type Config struct {
	DatasetPath string
	DatasetName string
	Column      string
	ResultLimit int
	Workers     int
	TopValues   int
	MinScore    float64
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)

	BasePath  string // Baseline dataset for comparisons
	FixOutput string // Destination for repaired datasets, derived when empty

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// These are set manually from positional args, so no tag
	DatasetPathStr string
	BasePathStr    string
	DatasetNameStr string // History filter, never resolved against the filesystem

	// --- Fields from rootCmd.PersistentFlags() ---
	OutputFile     string `mapstructure:"output-file"`
	Limit          int    `mapstructure:"limit"`
	Workers        int    `mapstructure:"workers"`
	Precision      int    `mapstructure:"precision"`
	Output         string `mapstructure:"output"`
	Width          int    `mapstructure:"width"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`
	Emoji          string `mapstructure:"emoji"`
	Color          string `mapstructure:"color"`

	// --- Fields from statsCmd.Flags() ---
	Column    string `mapstructure:"column"`
	TopValues int    `mapstructure:"top-values"`

	// --- Fields from checkCmd.Flags() ---
	MinScore float64 `mapstructure:"min-score"`

	// --- Fields from fixCmd.Flags() ---
	FixOutput string `mapstructure:"fix-output"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// CloneForDataset creates a copy of the Config pointed at a different dataset path.
func (c *Config) CloneForDataset(path string) (*Config, error) {
	clone := c.Clone()
	if err := assignDatasetPath(clone, path); err != nil {
		return nil, err
	}
	return clone, nil
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// All validation functions read from 'input' and populate 'cfg'.
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateStoreBackend(cfg, input); err != nil {
		return err
	}
	if err := resolveDatasetPaths(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Column = input.Column
	cfg.Width = input.Width
	cfg.FixOutput = input.FixOutput

	// Parse emoji flag
	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 3. TopValues Validation ---
	if input.TopValues <= 0 {
		return fmt.Errorf("top-values must be greater than 0 (received %d)", input.TopValues)
	}
	cfg.TopValues = input.TopValues

	// --- 4. MinScore Validation ---
	if input.MinScore < 0.0 || input.MinScore > 100.0 {
		return fmt.Errorf("min-score must be between 0.0 and 100.0 (received %.1f)", input.MinScore)
	}
	cfg.MinScore = input.MinScore

	// --- 5. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", cfg.Output)
	}

	return nil
}

// validateStoreBackend validates the run store backend configuration.
func validateStoreBackend(cfg *Config, input *ConfigRawInput) error {
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidStoreBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	if err := ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect); err != nil {
		return err
	}
	return nil
}

// resolveDatasetPaths resolves the positional dataset arguments to absolute
// paths. Commands that operate without a dataset leave DatasetPathStr empty.
func resolveDatasetPaths(cfg *Config, input *ConfigRawInput) error {
	if input.DatasetPathStr != "" {
		if err := assignDatasetPath(cfg, input.DatasetPathStr); err != nil {
			return err
		}
	}
	if input.BasePathStr != "" {
		absPath, err := resolveExistingFile(input.BasePathStr)
		if err != nil {
			return err
		}
		cfg.BasePath = absPath
	}
	if input.DatasetNameStr != "" {
		cfg.DatasetName = DatasetNameFromPath(input.DatasetNameStr)
	}
	return nil
}

// assignDatasetPath resolves a dataset path and derives the display name.
func assignDatasetPath(cfg *Config, path string) error {
	absPath, err := resolveExistingFile(path)
	if err != nil {
		return err
	}
	cfg.DatasetPath = absPath
	cfg.DatasetName = DatasetNameFromPath(absPath)
	return nil
}

// resolveExistingFile resolves a path to an absolute, cleaned file path and
// verifies that a regular file exists there.
func resolveExistingFile(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	absPath = filepath.Clean(absPath)

	info, err := os.Stat(absPath)
	if err != nil {
		return "", fmt.Errorf("dataset not found: %s", path)
	}
	if info.IsDir() {
		return "", fmt.Errorf("dataset path is a directory: %s", path)
	}
	return absPath, nil
}
