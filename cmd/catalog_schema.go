package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/grovetools/bpschema/catalog"
)

// NewCatalogSchemaCmd creates the catalog-schema command.
func NewCatalogSchemaCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "catalog-schema",
		Short: "Print the JSON Schema of the catalog file format",
		Long: `Prints the JSON Schema that catalog files are validated against. Point an
editor's YAML language server at it for completion in catalog files.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := catalog.GenerateSchema()
			if err != nil {
				return err
			}
			data = append(data, '\n')

			if outPath != "" {
				return os.WriteFile(outPath, data, 0644)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), string(data))
			return err
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write the schema to this file instead of stdout")
	return cmd
}
