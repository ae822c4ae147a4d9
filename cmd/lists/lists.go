// Package lists manages the pick-lists backing classification dropdowns.
package lists

import (
	"fmt"
	"strings"

	"moneydash/ingest/cmd/root"

	"github.com/spf13/cobra"
)

var setItems []string

// Cmd represents the lists command
var Cmd = &cobra.Command{
	Use:   "lists [name]",
	Short: "Show or replace the classification pick-lists",
	Long: `Without arguments, print every pick-list. With a name, print that
list. Use the set subcommand to replace a list; input is deduplicated.

Examples:
  ingest lists
  ingest lists tags
  ingest lists set tags --items essential,luxury,monthly`,
	Args: cobra.MaximumNArgs(1),
	RunE: showFunc,
}

var setCmd = &cobra.Command{
	Use:   "set <name>",
	Short: "Replace a pick-list with the given items",
	Args:  cobra.ExactArgs(1),
	RunE:  setFunc,
}

func init() {
	setCmd.Flags().StringSliceVar(&setItems, "items", nil, "Replacement items (comma separated, required)")
	if err := setCmd.MarkFlagRequired("items"); err != nil {
		panic(fmt.Sprintf("failed to mark items flag required: %v", err))
	}
	Cmd.AddCommand(setCmd)
}

func showFunc(cmd *cobra.Command, args []string) error {
	store, err := root.OpenStore()
	if err != nil {
		return err
	}

	names := store.PicklistNames()
	if len(args) == 1 {
		names = []string{args[0]}
	}

	for _, name := range names {
		fmt.Printf("%s: %s\n", name, strings.Join(store.Picklist(name), ", "))
	}
	return nil
}

func setFunc(cmd *cobra.Command, args []string) error {
	store, err := root.OpenStore()
	if err != nil {
		return err
	}

	name := args[0]
	if err := store.UpdatePicklist(name, setItems); err != nil {
		return err
	}
	root.Log.WithField("list", name).Infof("Pick-list updated with %d items", len(store.Picklist(name)))
	return nil
}
