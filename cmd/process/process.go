// Package process runs the ingestion pipeline over the raw data directory.
package process

import (
	"moneydash/ingest/cmd/root"

	"github.com/spf13/cobra"
)

var (
	inputDir   string
	outputFile string
)

// Cmd represents the process command
var Cmd = &cobra.Command{
	Use:   "process",
	Short: "Run the ingestion pipeline and rebuild the combined dataset",
	Long: `Process every raw export file under the source directory, classify the
rows via the mapping store, flag duplicates and overwrite the combined CSV.

Example:
  ingest process -i data/raw -o data/processed/transactions_combined.csv`,
	RunE: processFunc,
}

func init() {
	Cmd.Flags().StringVarP(&inputDir, "input", "i", "", "Source directory of raw export files (overrides config)")
	Cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Combined output CSV (overrides config)")
}

func processFunc(cmd *cobra.Command, args []string) error {
	if inputDir != "" {
		root.Cfg.Data.RawDir = inputDir
	}
	if outputFile != "" {
		root.Cfg.Data.CombinedFile = outputFile
	}

	store, err := root.OpenStore()
	if err != nil {
		return err
	}

	_, summary, err := root.NewPipeline(store).Run()
	if err != nil {
		return err
	}

	root.Log.Infof("Processed %d transactions (%d mapped, %d duplicates)",
		summary.Total, summary.Mapped, summary.Duplicates)
	for _, file := range summary.SkippedFiles {
		root.Log.Warnf("Skipped unreadable file: %s", file)
	}
	return nil
}
