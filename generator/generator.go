package generator

import (
	"github.com/sirupsen/logrus"

	"github.com/grovetools/bpschema/config"
	"github.com/grovetools/bpschema/descriptor"
	"github.com/grovetools/bpschema/errors"
	"github.com/grovetools/bpschema/logging"
	"github.com/grovetools/bpschema/schema"
)

// Generator produces JSON Schemas for serializers. It holds only immutable
// configuration and is safe for concurrent use.
type Generator struct {
	cfg       config.Generation
	fallback  *schema.Schema
	resolvers []FieldResolver
	logger    *logrus.Entry
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger routes debug output about resolution decisions to logger.
func WithLogger(logger *logrus.Entry) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithResolvers adds inference sources tried after the model column and
// before the fallback definition.
func WithResolvers(resolvers ...FieldResolver) Option {
	return func(g *Generator) {
		g.resolvers = append(g.resolvers, resolvers...)
	}
}

// New validates cfg, applying defaults to unset fields, and returns a Generator.
func New(cfg config.Generation, opts ...Option) (*Generator, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	fallback, err := cfg.Fallback()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfig, "invalid fallback definition")
	}

	g := &Generator{
		cfg:      cfg,
		fallback: fallback,
		logger:   logging.Discard("generator"),
	}

	for _, opt := range opts {
		opt(g)
	}

	// Custom resolvers sit between column inference and the fallback
	extra := g.resolvers
	g.resolvers = []FieldResolver{explicitTypeResolver{}, columnResolver{}}
	g.resolvers = append(g.resolvers, extra...)
	g.resolvers = append(g.resolvers, fallbackResolver{fallback: g.fallback})

	return g, nil
}

// Config returns the effective generation configuration.
func (g *Generator) Config() config.Generation {
	return g.cfg
}

// Generate is a convenience for New(cfg) followed by Generate.
func Generate(s *descriptor.Serializer, m descriptor.Model, cfg config.Generation) (*schema.Schema, error) {
	g, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return g.Generate(s, m)
}

// Generate builds the object schema for the configured view of s. m may be
// nil when no backing model is known. Any error aborts the whole call and no
// partial schema is returned.
func (g *Generator) Generate(s *descriptor.Serializer, m descriptor.Model) (*schema.Schema, error) {
	if s == nil {
		return nil, errors.New(errors.ErrCodeConfig, "serializer is nil")
	}
	return g.generate(s, m, nil)
}

// frame is one (serializer, view) pair on the current expansion chain.
type frame struct {
	serializer *descriptor.Serializer
	view       string
}

func (g *Generator) generate(s *descriptor.Serializer, m descriptor.Model, chain []frame) (*schema.Schema, error) {
	view, ok := s.View(g.cfg.View)
	if !ok {
		return nil, errors.ViewNotFound(s.Name, g.cfg.View)
	}

	current := frame{serializer: s, view: g.cfg.View}
	for _, f := range chain {
		if f == current {
			return nil, errors.CyclicAssociation(chainNames(append(chain, current)))
		}
	}
	if g.cfg.MaxDepth > 0 && len(chain) > g.cfg.MaxDepth {
		return nil, errors.DepthExceeded(g.cfg.MaxDepth, chainNames(append(chain, current)))
	}

	out := schema.NewObject()

	for _, field := range view.Fields {
		if Excluded(field, g.cfg) {
			g.logger.WithFields(logrus.Fields{
				"serializer": s.Name,
				"field":      field.Name,
			}).Debug("skipping conditional field")
			continue
		}

		fragment, err := g.resolveField(field, m)
		if err != nil {
			return nil, err
		}
		out.SetProperty(field.Key(), fragment)

		if Required(field, g.cfg) {
			out.Required = append(out.Required, field.Key())
		}
	}

	nextChain := append(append(make([]frame, 0, len(chain)+1), chain...), current)
	for _, assoc := range view.Associations {
		fragment, err := g.expandAssociation(assoc, m, nextChain)
		if err != nil {
			return nil, err
		}
		out.SetProperty(assoc.Key(), fragment)
	}

	if m != nil {
		out.Title = m.Name()
	}

	return out, nil
}

func chainNames(chain []frame) []string {
	names := make([]string, len(chain))
	for i, f := range chain {
		names[i] = f.serializer.Name
	}
	return names
}
