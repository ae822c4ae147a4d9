// Package root contains the root command for the application
package root

import (
	"moneydash/ingest/internal/common"
	"moneydash/ingest/internal/config"
	"moneydash/ingest/internal/fileparser"
	"moneydash/ingest/internal/fileutils"
	"moneydash/ingest/internal/mappingstore"
	"moneydash/ingest/internal/matcher"
	"moneydash/ingest/internal/pipeline"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cfg is the loaded configuration, available after PersistentPreRun
	Cfg *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "ingest",
		Short: "Normalize bank and card exports into one classified transaction dataset.",
		Long: `ingest reads raw bank and credit-card export files from a source
directory, normalizes them into a single transaction schema, classifies each
row via the persisted mapping store, flags duplicates and writes one combined
CSV dataset for downstream reporting.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv(Log)

			cfg, err := config.InitializeConfig()
			if err != nil {
				return err
			}
			Cfg = cfg
			Log = config.ConfigureLoggingFromConfig(cfg)

			// Propagate the configured logger into the pipeline packages
			fileparser.SetLogger(Log)
			fileutils.SetLogger(Log)
			mappingstore.SetLogger(Log)
			common.SetLogger(Log)

			common.SetDelimiter([]rune(cfg.CSV.Delimiter)[0])
			return nil
		},
	}
)

// OpenStore loads the mapping store configured for this invocation.
func OpenStore() (*mappingstore.Store, error) {
	return mappingstore.New(Cfg.MappingPath(), matcher.NewLevenshteinMatcher(), Cfg.Matching.Cutoff)
}

// NewPipeline builds a pipeline around an opened mapping store.
func NewPipeline(store *mappingstore.Store) *pipeline.Pipeline {
	return pipeline.New(Cfg, store, Log)
}
