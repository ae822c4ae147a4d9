// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration. The core
// pipeline receives this object explicitly; no package in internal/ reads
// process-wide mutable state.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Data struct {
		RawDir       string `mapstructure:"raw_dir" yaml:"raw_dir"`
		ProcessedDir string `mapstructure:"processed_dir" yaml:"processed_dir"`
		MappingFile  string `mapstructure:"mapping_file" yaml:"mapping_file"`
		CombinedFile string `mapstructure:"combined_file" yaml:"combined_file"`
	} `mapstructure:"data" yaml:"data"`

	Matching struct {
		Cutoff float64 `mapstructure:"cutoff" yaml:"cutoff"`
	} `mapstructure:"matching" yaml:"matching"`
}

// MappingPath resolves the mapping store location, defaulting into the
// processed-data directory.
func (c *Config) MappingPath() string {
	if c.Data.MappingFile != "" {
		return c.Data.MappingFile
	}
	return filepath.Join(c.Data.ProcessedDir, "transaction_mappings.yaml")
}

// CombinedPath resolves the combined artifact location, defaulting into
// the processed-data directory.
func (c *Config) CombinedPath() string {
	if c.Data.CombinedFile != "" {
		return c.Data.CombinedFile
	}
	return filepath.Join(c.Data.ProcessedDir, "transactions_combined.csv")
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.ingest")
	v.AddConfigPath(".ingest")
	v.AddConfigPath(".")

	// 3. Environment variables
	v.SetEnvPrefix("INGEST")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Log the error but don't fail - continue with defaults and env vars
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("data.raw_dir", filepath.Join("data", "raw"))
	v.SetDefault("data.processed_dir", filepath.Join("data", "processed"))
	v.SetDefault("data.mapping_file", "")
	v.SetDefault("data.combined_file", "")

	// 0.6 mirrors the similarity cutoff the mapping workflow was tuned
	// against; below it false classifications become common.
	v.SetDefault("matching.cutoff", 0.6)
}

// validateConfig checks configuration invariants after loading.
func validateConfig(config *Config) error {
	validLevels := map[string]bool{
		"trace": true, "debug": true, "info": true,
		"warn": true, "warning": true, "error": true, "fatal": true, "panic": true,
	}
	if !validLevels[strings.ToLower(config.Log.Level)] {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("csv delimiter must be a single character, got %q", config.CSV.Delimiter)
	}

	if config.Matching.Cutoff < 0 || config.Matching.Cutoff > 1 {
		return fmt.Errorf("matching cutoff must be between 0 and 1, got %v", config.Matching.Cutoff)
	}

	if config.Data.RawDir == "" {
		return fmt.Errorf("data.raw_dir must not be empty")
	}
	if config.Data.ProcessedDir == "" {
		return fmt.Errorf("data.processed_dir must not be empty")
	}

	return nil
}
