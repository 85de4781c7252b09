package cmd

import (
	"github.com/spf13/cobra"

	"github.com/grovetools/bpschema/cli"
	"github.com/grovetools/bpschema/version"
)

// NewRootCmd assembles the bpschema command tree.
func NewRootCmd() *cobra.Command {
	root := cli.NewStandardCommand(
		"bpschema",
		"Generate JSON Schemas from serializer descriptors",
	)
	root.SilenceUsage = true
	root.SilenceErrors = true
	cli.SetVersionTemplate(root, version.GetInfo())

	root.AddCommand(NewGenerateCmd())
	root.AddCommand(NewCheckCmd())
	root.AddCommand(NewWatchCmd())
	root.AddCommand(NewCatalogSchemaCmd())
	root.AddCommand(NewConfigCmd())
	root.AddCommand(cli.NewVersionCommand("bpschema"))

	cli.ApplyStyledHelpRecursive(root)
	return root
}
