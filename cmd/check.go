package cmd

import (
	"github.com/spf13/cobra"

	"github.com/grovetools/bpschema/cli"
	"github.com/grovetools/bpschema/logging"
)

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	opts := &generateOptions{check: true}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Generate every serializer and validate the results",
		Long: `Loads the catalog, generates a schema for each serializer with its bound
model and meta-validates the output. Nothing is written. Exits non-zero when
any serializer fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}

			pretty := logging.NewPrettyLogger().WithWriter(cmd.ErrOrStderr())
			pretty.Source("Catalog", s.catalogPath)

			progress := cli.NewProgressReporter(cmd.ErrOrStderr())
			var firstErr error
			for _, name := range s.catalog.Names() {
				if _, err := s.generate(name); err != nil {
					progress.Update(name, cli.StatusFailed)
					if firstErr == nil {
						firstErr = err
					}
					continue
				}
				progress.Update(name, cli.StatusValid)
			}
			progress.Done()

			pretty.Verdict(s.catalog.Len(), firstErr)
			return firstErr
		},
	}

	opts.addCatalogFlags(cmd.Flags())
	return cmd
}
