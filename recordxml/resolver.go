package recordxml

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/andaru/collectxml/survey"
)

// schemaResolver maps names in the record survey to definitions in the
// current survey, going through the definition id.
type schemaResolver struct {
	record  *survey.Survey
	current *survey.Survey
}

// Version returns the current survey's model version for the record
// survey's version called name. A blank name yields a nil version.
func (r schemaResolver) Version(name string) (*survey.ModelVersion, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	rv := r.record.Version(name)
	if rv == nil {
		return nil, errors.Errorf("version %q is not defined in survey %s", name, r.record.Name)
	}
	v := r.current.VersionByID(rv.ID)
	if v == nil {
		return nil, errors.Errorf("version %q (id %d) is not defined in survey %s", name, rv.ID, r.current.Name)
	}
	return v, nil
}

// Root returns the current root entity definition for the record survey's
// root entity called name.
func (r schemaResolver) Root(name string) (*survey.EntityDefinition, error) {
	rd := r.record.Schema().RootEntity(name)
	if rd == nil {
		return nil, errors.Errorf("root entity %q is not defined in survey %s", name, r.record.Name)
	}
	def, ok := r.current.Schema().DefinitionByID(rd.ID()).(*survey.EntityDefinition)
	if !ok || def.Parent() != nil {
		return nil, errors.Errorf("root entity %q (id %d) is not defined in survey %s", name, rd.ID(), r.current.Name)
	}
	return def, nil
}

// Child returns the current definition of the child called name of the
// current entity definition parent, or nil if either survey lacks it or
// the current survey has moved it under another parent.
func (r schemaResolver) Child(parent *survey.EntityDefinition, name string) survey.NodeDefinition {
	rp, ok := r.record.Schema().DefinitionByID(parent.ID()).(*survey.EntityDefinition)
	if !ok {
		return nil
	}
	rd := rp.Child(name)
	if rd == nil {
		return nil
	}
	def := r.current.Schema().DefinitionByID(rd.ID())
	if def == nil || def.Parent() == nil || def.Parent().ID() != parent.ID() {
		return nil
	}
	return def
}
