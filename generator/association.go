package generator

import (
	"github.com/sirupsen/logrus"

	"github.com/grovetools/bpschema/descriptor"
	"github.com/grovetools/bpschema/schema"
)

// expandAssociation produces the fragment for one association. Collection-ness
// and the related model come from the model's reflection when it has an entry
// for the association, and from the association's own options otherwise.
func (g *Generator) expandAssociation(assoc *descriptor.Association, model descriptor.Model, chain []frame) (*schema.Schema, error) {
	blueprint := assoc.Options.Blueprint
	if blueprint == nil {
		return &schema.Schema{Type: schema.Single(schema.TypeObject)}, nil
	}

	collection := assoc.Options.Collection
	var related descriptor.Model
	if model != nil {
		if info, ok := model.Association(assoc.Name); ok {
			collection = info.Collection
			related = info.Related
		}
	}

	g.logger.WithFields(logrus.Fields{
		"association": assoc.Name,
		"blueprint":   blueprint.Name,
		"collection":  collection,
		"depth":       len(chain),
	}).Debug("expanding association")

	nested, err := g.generate(blueprint, related, chain)
	if err != nil {
		return nil, err
	}

	if collection {
		return schema.ArrayOf(nested), nil
	}
	return nested, nil
}
