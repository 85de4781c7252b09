package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/grovetools/bpschema/cli"
)

// NewConfigCmd creates the config command.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Display the effective configuration",
		Long: `Shows the configuration generate would use: the global config
($XDG_CONFIG_HOME/bpschema/bpschema.yml) merged under the project bpschema.yml,
with defaults applied. Useful for debugging configuration issues.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.LoadConfig(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if cfg.Path() != "" {
				fmt.Fprintf(out, "# Source: %s\n", cfg.Path())
			} else {
				fmt.Fprintln(out, "# No bpschema.yml found, showing defaults")
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to encode configuration: %w", err)
			}
			fmt.Fprint(out, string(data))

			if len(cfg.Extensions) > 0 {
				ext, err := yaml.Marshal(cfg.Extensions)
				if err != nil {
					return fmt.Errorf("failed to encode extensions: %w", err)
				}
				fmt.Fprint(out, string(ext))
			}
			return nil
		},
	}
	return cmd
}
