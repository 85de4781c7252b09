package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/grovetools/bpschema/cli"
	"github.com/grovetools/bpschema/schema"
)

// NewGenerateCmd creates the generate command.
func NewGenerateCmd() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate [serializer...]",
		Short: "Generate JSON Schemas for serializers in a catalog",
		Long: `Generates a draft-07 JSON Schema for each named serializer. With no names
and no --select patterns every serializer in the catalog is generated.

A single schema is printed as-is. Several schemas are printed as one JSON
object keyed by serializer name, unless --out names a directory.`,
		Example: `# One serializer to stdout
bpschema generate UserBlueprint --catalog catalog.yml

# Every *Blueprint except admin ones into a directory
bpschema generate --select '*Blueprint' --select '!Admin*' --out schemas/

# Another view, omitting conditional fields
bpschema generate UserBlueprint --view extended --skip-conditional`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts, args)
		},
	}

	opts.addCatalogFlags(cmd.Flags())
	opts.addModelFlags(cmd.Flags())
	opts.addOutputFlags(cmd.Flags())

	return cmd
}

func runGenerate(cmd *cobra.Command, opts *generateOptions, args []string) error {
	s, err := newSession(cmd, opts)
	if err != nil {
		return err
	}

	names, err := s.selectNames(args)
	if err != nil {
		return err
	}

	if dir := opts.resolveOutDir(s.cfg); dir != "" {
		progress := cli.NewProgressReporter(cmd.ErrOrStderr())
		err := s.writeAll(names, dir, progress)
		progress.Done()
		return err
	}

	var payload interface{}
	if len(names) == 1 {
		out, err := s.generate(names[0])
		if err != nil {
			return err
		}
		payload = out
	} else {
		all := orderedmap.New[string, *schema.Schema]()
		for _, name := range names {
			out, err := s.generate(name)
			if err != nil {
				return err
			}
			all.Set(name, out)
		}
		payload = all
	}

	data, err := s.encode(payload)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), string(data))
	return err
}
