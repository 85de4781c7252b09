package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/grovetools/bpschema/config"
	"github.com/grovetools/bpschema/errors"
)

// generateOptions are the flags shared by generate, check and watch.
type generateOptions struct {
	catalogPath     string
	view            string
	model           string
	noModel         bool
	skipConditional bool
	fallback        string
	selectors       []string
	outDir          string
	check           bool
}

func (o *generateOptions) addCatalogFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.catalogPath, "catalog", "", "Path to the descriptor catalog (default: catalog from bpschema.yml)")
	fs.StringVar(&o.view, "view", "", "Serializer view to generate (default: generation.view or default)")
	fs.BoolVar(&o.skipConditional, "skip-conditional", false, "Omit fields declaring an if or unless predicate")
	fs.StringVar(&o.fallback, "fallback", "", "JSON Schema fragment for fields with no inferable type, as JSON")
}

func (o *generateOptions) addOutputFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&o.outDir, "out", "o", "", "Write one <serializer>.schema.json per serializer into this directory")
	fs.StringArrayVar(&o.selectors, "select", nil, "Select serializers by pattern, e.g. 'User*' or '!Admin*' (repeatable)")
	fs.BoolVar(&o.check, "check", false, "Meta-validate each generated schema against draft-07")
}

func (o *generateOptions) addModelFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.model, "model", "", "Use this catalog model instead of the serializer's own binding")
	fs.BoolVar(&o.noModel, "no-model", false, "Generate without any backing model")
}

// generation applies flag overrides to the configured generation settings.
// Only flags the user set take effect.
func (o *generateOptions) generation(fs *pflag.FlagSet, base config.Generation) (config.Generation, error) {
	if fs.Changed("view") {
		base.View = o.view
	}
	if fs.Changed("skip-conditional") {
		base.SkipConditionalFields = o.skipConditional
	}
	if o.fallback != "" {
		var fragment map[string]interface{}
		if err := json.Unmarshal([]byte(o.fallback), &fragment); err != nil {
			return base, errors.Wrap(err, errors.ErrCodeInvalidInput, "--fallback must be a JSON object")
		}
		base.FallbackDefinition = fragment
	}
	return base, nil
}

// resolveCatalogPath picks the catalog from the flag or the config file.
// Relative paths in the config file are relative to that file.
func (o *generateOptions) resolveCatalogPath(cfg *config.Config) (string, error) {
	if o.catalogPath != "" {
		return o.catalogPath, nil
	}
	if cfg.Catalog == "" {
		return "", errors.New(errors.ErrCodeInvalidInput,
			"no catalog given: pass --catalog or set catalog in bpschema.yml")
	}
	if filepath.IsAbs(cfg.Catalog) || cfg.Path() == "" {
		return cfg.Catalog, nil
	}
	return filepath.Join(filepath.Dir(cfg.Path()), cfg.Catalog), nil
}

// resolveOutDir picks the output directory from the flag or the config file.
func (o *generateOptions) resolveOutDir(cfg *config.Config) string {
	if o.outDir != "" {
		return o.outDir
	}
	if cfg.Output.Dir == "" || filepath.IsAbs(cfg.Output.Dir) || cfg.Path() == "" {
		return cfg.Output.Dir
	}
	return filepath.Join(filepath.Dir(cfg.Path()), cfg.Output.Dir)
}

func (o *generateOptions) validate() error {
	if o.noModel && o.model != "" {
		return errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("--model %s conflicts with --no-model", o.model))
	}
	return nil
}
