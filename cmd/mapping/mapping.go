// Package mapping manages description-to-classification mappings.
package mapping

import (
	"fmt"

	"moneydash/ingest/cmd/root"
	"moneydash/ingest/internal/models"

	"github.com/spf13/cobra"
)

var (
	description string
	accountType string
	category1   string
	category2   string
	category3   string
	tags        []string
	payer       string
	payee       string
	noReprocess bool
)

// Cmd represents the map command
var Cmd = &cobra.Command{
	Use:   "map",
	Short: "Create or update the classification for a description",
	Long: `Insert or overwrite the mapping store entry for a transaction
description, then re-run the pipeline so the combined dataset reflects it.

Example:
  ingest map -d "COFFEE SHOP" --category1 "Food & Dining" --tags essential,monthly`,
	RunE: mapFunc,
}

func init() {
	Cmd.Flags().StringVarP(&description, "description", "d", "", "Transaction description to map (required)")
	Cmd.Flags().StringVar(&accountType, "account-type", "", "Account type classification (income, expense, transfer)")
	Cmd.Flags().StringVar(&category1, "category1", "", "Top-level category")
	Cmd.Flags().StringVar(&category2, "category2", "", "Second-level category")
	Cmd.Flags().StringVar(&category3, "category3", "", "Third-level category")
	Cmd.Flags().StringSliceVar(&tags, "tags", nil, "Tags to attach (comma separated)")
	Cmd.Flags().StringVar(&payer, "payer", "", "Payer")
	Cmd.Flags().StringVar(&payee, "payee", "", "Payee")
	Cmd.Flags().BoolVar(&noReprocess, "no-reprocess", false, "Skip re-running the pipeline after saving")
	if err := Cmd.MarkFlagRequired("description"); err != nil {
		panic(fmt.Sprintf("failed to mark description flag required: %v", err))
	}
}

func mapFunc(cmd *cobra.Command, args []string) error {
	store, err := root.OpenStore()
	if err != nil {
		return err
	}

	classification := models.Classification{
		AccountType: accountType,
		Category1:   category1,
		Category2:   category2,
		Category3:   category3,
		Tags:        tags,
		Payer:       payer,
		Payee:       payee,
	}
	if err := store.Upsert(description, classification); err != nil {
		return err
	}
	root.Log.WithField("description", description).Info("Mapping saved")

	if noReprocess {
		return nil
	}

	_, summary, err := root.NewPipeline(store).Run()
	if err != nil {
		return err
	}
	root.Log.Infof("Reprocessed %d transactions (%d mapped)", summary.Total, summary.Mapped)
	return nil
}
