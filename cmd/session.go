package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/moby/patternmatcher"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/grovetools/bpschema/catalog"
	"github.com/grovetools/bpschema/cli"
	"github.com/grovetools/bpschema/config"
	"github.com/grovetools/bpschema/descriptor"
	"github.com/grovetools/bpschema/errors"
	"github.com/grovetools/bpschema/generator"
	"github.com/grovetools/bpschema/schema"
)

// session is one loaded config, catalog and generator.
type session struct {
	cfg         *config.Config
	catalogPath string
	catalog     *catalog.Catalog
	gen         *generator.Generator
	logger      *logrus.Logger
	opts        *generateOptions
}

func newSession(cmd *cobra.Command, opts *generateOptions) (*session, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	logger := cli.GetLogger(cmd)

	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return nil, err
	}

	catalogPath, err := opts.resolveCatalogPath(cfg)
	if err != nil {
		return nil, err
	}

	logger.WithField("path", catalogPath).Debug("Loading catalog")
	c, err := catalog.Load(catalogPath)
	if err != nil {
		return nil, err
	}

	generation, err := opts.generation(cmd.Flags(), cfg.Generation)
	if err != nil {
		return nil, err
	}

	gen, err := generator.New(generation, generator.WithLogger(logger.WithField("component", "generator")))
	if err != nil {
		return nil, err
	}

	return &session{
		cfg:         cfg,
		catalogPath: catalogPath,
		catalog:     c,
		gen:         gen,
		logger:      logger,
		opts:        opts,
	}, nil
}

// selectNames returns args followed by every catalog serializer matching the
// --select patterns, without duplicates. No args and no patterns selects all.
func (s *session) selectNames(args []string) ([]string, error) {
	if len(args) == 0 && len(s.opts.selectors) == 0 {
		return s.catalog.Names(), nil
	}

	seen := make(map[string]bool)
	var names []string
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	for _, name := range args {
		add(name)
	}

	if len(s.opts.selectors) > 0 {
		pm, err := patternmatcher.New(s.opts.selectors)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid --select pattern")
		}
		for _, name := range s.catalog.Names() {
			matched, err := pm.MatchesOrParentMatches(name)
			if err != nil {
				return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid --select pattern")
			}
			if matched {
				add(name)
			}
		}
	}

	if len(names) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no serializers matched the selection")
	}
	return names, nil
}

func (s *session) modelFor(name string) (descriptor.Model, error) {
	switch {
	case s.opts.noModel:
		return nil, nil
	case s.opts.model != "":
		m, ok := s.catalog.Model(s.opts.model)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				fmt.Sprintf("model '%s' not found in the catalog", s.opts.model)).
				WithDetail("model", s.opts.model)
		}
		return m, nil
	default:
		return s.catalog.SerializerModel(name), nil
	}
}

// generate builds and optionally meta-validates the schema for one serializer.
func (s *session) generate(name string) (*schema.Schema, error) {
	serializer, err := s.catalog.Serializer(name)
	if err != nil {
		return nil, err
	}
	model, err := s.modelFor(name)
	if err != nil {
		return nil, err
	}

	out, err := s.gen.Generate(serializer, model)
	if err != nil {
		return nil, err
	}

	if s.opts.check {
		if err := schema.MetaValidate(out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *session) encode(v interface{}) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", s.cfg.Output.Indent)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to encode schema")
	}
	return append(data, '\n'), nil
}

// writeAll generates names into dir, reporting each outcome. It returns the
// first failure after attempting every serializer.
func (s *session) writeAll(names []string, dir string, progress *cli.ProgressReporter) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to create output directory").
			WithDetail("path", dir)
	}

	var firstErr error
	for _, name := range names {
		status, err := s.writeOne(name, dir)
		if err != nil {
			s.logger.WithError(err).WithField("serializer", name).Debug("Generation failed")
			if firstErr == nil {
				firstErr = err
			}
		}
		progress.Update(name, status)
	}
	return firstErr
}

func (s *session) writeOne(name, dir string) (cli.Status, error) {
	out, err := s.generate(name)
	if err != nil {
		return cli.StatusFailed, err
	}
	data, err := s.encode(out)
	if err != nil {
		return cli.StatusFailed, err
	}

	path := filepath.Join(dir, name+".schema.json")
	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, data) {
		return cli.StatusUnchanged, nil
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return cli.StatusFailed, errors.Wrap(err, errors.ErrCodeInternal, "failed to write schema").
			WithDetail("path", path)
	}
	return cli.StatusWritten, nil
}
