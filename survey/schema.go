package survey

import (
	"github.com/pkg/errors"
)

// NodeDefinition is implemented by *EntityDefinition and
// *AttributeDefinition.
type NodeDefinition interface {
	ID() int
	Name() string
	// Parent returns the enclosing entity definition, nil for roots
	Parent() *EntityDefinition
	Since() *ModelVersion
	Deprecated() *ModelVersion
	Multiple() bool
	// Path returns the slash separated definition path, e.g. /plot/tree
	Path() string

	nodeDefinition()
}

// Schema is a survey's node definition tree, indexed by id.
type Schema struct {
	roots []*EntityDefinition
	byID  map[int]NodeDefinition
}

func newSchema() *Schema { return &Schema{byID: map[int]NodeDefinition{}} }

// RootEntities returns the root entity definitions.
func (s *Schema) RootEntities() []*EntityDefinition { return s.roots }

// RootEntity returns the root entity definition called name, or nil.
func (s *Schema) RootEntity(name string) *EntityDefinition {
	for _, r := range s.roots {
		if r.name == name {
			return r
		}
	}
	return nil
}

// DefinitionByID returns the definition with the given id, or nil.
func (s *Schema) DefinitionByID(id int) NodeDefinition {
	if def, ok := s.byID[id]; ok {
		return def
	}
	return nil
}

// AddRootEntity adds a root entity definition.
func (s *Schema) AddRootEntity(id int, name string, opts ...DefinitionOption) (*EntityDefinition, error) {
	if s.RootEntity(name) != nil {
		return nil, errors.Errorf("duplicate root entity %q", name)
	}
	e := &EntityDefinition{byName: map[string]NodeDefinition{}}
	if err := s.register(&e.definition, e, id, name, nil, opts); err != nil {
		return nil, err
	}
	s.roots = append(s.roots, e)
	return e, nil
}

func (s *Schema) register(d *definition, def NodeDefinition, id int, name string, parent *EntityDefinition, opts []DefinitionOption) error {
	if name == "" {
		return errors.Errorf("definition %d has no name", id)
	}
	if _, dup := s.byID[id]; dup {
		return errors.Errorf("duplicate definition id %d (%s)", id, name)
	}
	cfg := definitionConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	*d = definition{
		schema:     s,
		id:         id,
		name:       name,
		parent:     parent,
		since:      cfg.since,
		deprecated: cfg.deprecated,
		multiple:   cfg.multiple,
	}
	s.byID[id] = def
	return nil
}

// DefinitionOption is a definition constructor option function.
type DefinitionOption func(*definitionConfig)

type definitionConfig struct {
	since, deprecated *ModelVersion
	multiple          bool
	key               bool
	decimal           bool
}

// Since marks the definition as introduced in version v.
func Since(v *ModelVersion) DefinitionOption { return func(c *definitionConfig) { c.since = v } }

// Deprecated marks the definition as removed from version v onwards.
func Deprecated(v *ModelVersion) DefinitionOption {
	return func(c *definitionConfig) { c.deprecated = v }
}

// Multiple allows more than one instance per parent entity.
func Multiple() DefinitionOption { return func(c *definitionConfig) { c.multiple = true } }

// Key marks an attribute as part of its entity's key.
func Key() DefinitionOption { return func(c *definitionConfig) { c.key = true } }

// Decimal gives number and range attributes floating point values.
func Decimal() DefinitionOption { return func(c *definitionConfig) { c.decimal = true } }

type definition struct {
	schema     *Schema
	id         int
	name       string
	parent     *EntityDefinition
	since      *ModelVersion
	deprecated *ModelVersion
	multiple   bool
}

func (d *definition) ID() int                   { return d.id }
func (d *definition) Name() string              { return d.name }
func (d *definition) Parent() *EntityDefinition { return d.parent }
func (d *definition) Since() *ModelVersion      { return d.since }
func (d *definition) Deprecated() *ModelVersion { return d.deprecated }
func (d *definition) Multiple() bool            { return d.multiple }
func (d *definition) nodeDefinition()           {}

func (d *definition) Path() string {
	if d.parent == nil {
		return "/" + d.name
	}
	return d.parent.Path() + "/" + d.name
}

// EntityDefinition describes a container node.
type EntityDefinition struct {
	definition
	children []NodeDefinition
	byName   map[string]NodeDefinition
}

// Children returns the child definitions in declaration order.
func (e *EntityDefinition) Children() []NodeDefinition { return e.children }

// Child returns the child definition called name, or nil.
func (e *EntityDefinition) Child(name string) NodeDefinition {
	if def, ok := e.byName[name]; ok {
		return def
	}
	return nil
}

// AddEntity adds a child entity definition.
func (e *EntityDefinition) AddEntity(id int, name string, opts ...DefinitionOption) (*EntityDefinition, error) {
	child := &EntityDefinition{byName: map[string]NodeDefinition{}}
	if err := e.add(&child.definition, child, id, name, opts); err != nil {
		return nil, err
	}
	return child, nil
}

// AddAttribute adds a child attribute definition of type t.
func (e *EntityDefinition) AddAttribute(id int, name string, t AttributeType, opts ...DefinitionOption) (*AttributeDefinition, error) {
	cfg := definitionConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	child := &AttributeDefinition{typ: t, key: cfg.key, fields: fieldLayout(t, cfg.decimal)}
	if err := e.add(&child.definition, child, id, name, opts); err != nil {
		return nil, err
	}
	return child, nil
}

func (e *EntityDefinition) add(d *definition, def NodeDefinition, id int, name string, opts []DefinitionOption) error {
	if _, dup := e.byName[name]; dup {
		return errors.Errorf("duplicate child %q in %s", name, e.Path())
	}
	if err := e.schema.register(d, def, id, name, e, opts); err != nil {
		return err
	}
	e.children = append(e.children, def)
	e.byName[name] = def
	return nil
}

// AttributeDefinition describes a leaf node with typed fields.
type AttributeDefinition struct {
	definition
	typ    AttributeType
	key    bool
	fields []FieldDefinition
}

// Type returns the attribute type.
func (a *AttributeDefinition) Type() AttributeType { return a.typ }

// Key returns true for key attributes.
func (a *AttributeDefinition) Key() bool { return a.key }

// Fields returns the field layout in declaration order. The first field
// is the attribute's main field.
func (a *AttributeDefinition) Fields() []FieldDefinition { return a.fields }

// Field returns the field definition called name.
func (a *AttributeDefinition) Field(name string) (FieldDefinition, bool) {
	for _, f := range a.fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDefinition{}, false
}
