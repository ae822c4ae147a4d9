// Package unmapped reports descriptions that no mapping covers yet.
package unmapped

import (
	"fmt"

	"moneydash/ingest/cmd/root"

	"github.com/spf13/cobra"
)

var limit int

// Cmd represents the unmapped command
var Cmd = &cobra.Command{
	Use:   "unmapped",
	Short: "Summarize transactions the mapping store does not cover",
	Long: `Re-run the pipeline and group unclassified transactions by
description, most frequent first, so the biggest offenders get mapped first.`,
	RunE: unmappedFunc,
}

func init() {
	Cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of descriptions to print (0 = all)")
}

func unmappedFunc(cmd *cobra.Command, args []string) error {
	store, err := root.OpenStore()
	if err != nil {
		return err
	}

	entries, err := root.NewPipeline(store).UnmappedSummary()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		root.Log.Info("Every transaction is mapped")
		return nil
	}

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	for _, entry := range entries {
		fmt.Printf("%4dx  %-40s  total %s  (%s .. %s)  %s\n",
			entry.Count, entry.Description, entry.TotalAmount.StringFixed(2),
			entry.FirstDate, entry.LastDate, entry.BankAccount)
	}
	return nil
}
