package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfig_Defaults(t *testing.T) {
	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, ",", config.CSV.Delimiter)
	assert.Equal(t, filepath.Join("data", "raw"), config.Data.RawDir)
	assert.Equal(t, filepath.Join("data", "processed"), config.Data.ProcessedDir)
	assert.Equal(t, 0.6, config.Matching.Cutoff)
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	t.Setenv("INGEST_LOG_LEVEL", "debug")
	t.Setenv("INGEST_CSV_DELIMITER", ";")
	t.Setenv("INGEST_DATA_RAW_DIR", "/tmp/exports")
	t.Setenv("INGEST_MATCHING_CUTOFF", "0.8")

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, ";", config.CSV.Delimiter)
	assert.Equal(t, "/tmp/exports", config.Data.RawDir)
	assert.Equal(t, 0.8, config.Matching.Cutoff)
}

func TestInitializeConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad log level", "INGEST_LOG_LEVEL", "verbose"},
		{"multi-char delimiter", "INGEST_CSV_DELIMITER", ",,"},
		{"cutoff above one", "INGEST_MATCHING_CUTOFF", "1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := InitializeConfig()
			assert.Error(t, err)
		})
	}
}

func TestPathResolution(t *testing.T) {
	cfg := &Config{}
	cfg.Data.ProcessedDir = filepath.Join("data", "processed")

	assert.Equal(t, filepath.Join("data", "processed", "transaction_mappings.yaml"), cfg.MappingPath())
	assert.Equal(t, filepath.Join("data", "processed", "transactions_combined.csv"), cfg.CombinedPath())

	cfg.Data.MappingFile = "/custom/mappings.yaml"
	cfg.Data.CombinedFile = "/custom/combined.csv"
	assert.Equal(t, "/custom/mappings.yaml", cfg.MappingPath())
	assert.Equal(t, "/custom/combined.csv", cfg.CombinedPath())
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	cfg := &Config{}
	cfg.Log.Level = "debug"
	cfg.Log.Format = "json"

	logger := ConfigureLoggingFromConfig(cfg)
	assert.Equal(t, "debug", logger.GetLevel().String())
}
