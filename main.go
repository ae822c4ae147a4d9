// Package main provides the entry point for the ingest CLI application.
package main

import (
	"os"

	"moneydash/ingest/cmd/lists"
	"moneydash/ingest/cmd/mapping"
	"moneydash/ingest/cmd/process"
	"moneydash/ingest/cmd/root"
	"moneydash/ingest/cmd/unmapped"
)

func init() {
	root.Cmd.AddCommand(process.Cmd)
	root.Cmd.AddCommand(mapping.Cmd)
	root.Cmd.AddCommand(lists.Cmd)
	root.Cmd.AddCommand(unmapped.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		root.Log.Error(err)
		os.Exit(1)
	}
}
