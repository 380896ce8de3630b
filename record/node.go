package record

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/andaru/collectxml/survey"
)

// Node is a record tree node, either an *Entity or an *Attribute.
type Node interface {
	Definition() survey.NodeDefinition
	Name() string
	// Parent returns the enclosing entity, nil for the root
	Parent() *Entity
	// Index is the node's position among the parent's children sharing
	// its definition
	Index() int
	// Path is /root for the root entity, parentPath/name[Index+1] below it
	Path() string
	// HasData is true if any field below the node holds a value, remarks
	// or a symbol
	HasData() bool
	// State returns the node's structural state flags, if set
	State() (int, bool)
	SetState(flags int)

	attach(parent *Entity, index int)
}

type nodeBase struct {
	parent   *Entity
	index    int
	state    int
	hasState bool
}

func (n *nodeBase) Parent() *Entity           { return n.parent }
func (n *nodeBase) Index() int                { return n.index }
func (n *nodeBase) State() (int, bool)        { return n.state, n.hasState }
func (n *nodeBase) SetState(flags int)        { n.state, n.hasState = flags, true }
func (n *nodeBase) attach(p *Entity, idx int) { n.parent, n.index = p, idx }

func nodePath(n Node) string {
	if n.Parent() == nil {
		return "/" + n.Name()
	}
	return n.Parent().Path() + "/" + n.Name() + "[" + strconv.Itoa(n.Index()+1) + "]"
}

// Entity is a container node.
type Entity struct {
	nodeBase
	def      *survey.EntityDefinition
	children []Node
}

// NewEntity returns a detached entity.
func NewEntity(def *survey.EntityDefinition) *Entity { return &Entity{def: def} }

func (e *Entity) Definition() survey.NodeDefinition { return e.def }

// EntityDefinition returns the entity's definition.
func (e *Entity) EntityDefinition() *survey.EntityDefinition { return e.def }

func (e *Entity) Name() string { return e.def.Name() }
func (e *Entity) Path() string { return nodePath(e) }

// Children returns the child nodes in insertion order.
func (e *Entity) Children() []Node { return e.children }

// ChildrenNamed returns the children whose definition is called name.
func (e *Entity) ChildrenNamed(name string) []Node {
	var out []Node
	for _, c := range e.children {
		if c.Name() == name {
			out = append(out, c)
		}
	}
	return out
}

// Child returns the index'th child called name, or nil.
func (e *Entity) Child(name string, index int) Node {
	if named := e.ChildrenNamed(name); index >= 0 && index < len(named) {
		return named[index]
	}
	return nil
}

// Count returns the number of children called name.
func (e *Entity) Count(name string) int { return len(e.ChildrenNamed(name)) }

// Add appends n as the last child. n must be detached and its definition
// must be a child of e's definition.
func (e *Entity) Add(n Node) error {
	if n.Parent() != nil {
		return errors.Errorf("cannot add %s to %s: node already attached", n.Path(), e.Path())
	}
	def := n.Definition()
	if def.Parent() == nil || def.Parent().ID() != e.def.ID() {
		return errors.Errorf("cannot add %s to %s: not a child definition", def.Path(), e.Path())
	}
	n.attach(e, e.Count(n.Name()))
	e.children = append(e.children, n)
	return nil
}

// Remove detaches n, renumbering its later siblings. It returns false if
// n is not a child of e.
func (e *Entity) Remove(n Node) bool {
	for i, c := range e.children {
		if c != n {
			continue
		}
		e.children = append(e.children[:i:i], e.children[i+1:]...)
		n.attach(nil, 0)
		for _, later := range e.children[i:] {
			if later.Name() == n.Name() {
				later.attach(e, later.Index()-1)
			}
		}
		return true
	}
	return false
}

func (e *Entity) HasData() bool {
	for _, c := range e.children {
		if c.HasData() {
			return true
		}
	}
	return false
}

// Attribute is a leaf node holding typed fields.
type Attribute struct {
	nodeBase
	def    *survey.AttributeDefinition
	fields []*Field
}

// NewAttribute returns a detached attribute with empty fields.
func NewAttribute(def *survey.AttributeDefinition) *Attribute {
	a := &Attribute{def: def}
	for _, fd := range def.Fields() {
		a.fields = append(a.fields, &Field{def: fd})
	}
	return a
}

func (a *Attribute) Definition() survey.NodeDefinition { return a.def }

// AttributeDefinition returns the attribute's definition.
func (a *Attribute) AttributeDefinition() *survey.AttributeDefinition { return a.def }

func (a *Attribute) Name() string { return a.def.Name() }
func (a *Attribute) Path() string { return nodePath(a) }

// Fields returns the fields in definition order.
func (a *Attribute) Fields() []*Field { return a.fields }

// Field returns the field called name, or nil.
func (a *Attribute) Field(name string) *Field {
	for _, f := range a.fields {
		if f.def.Name == name {
			return f
		}
	}
	return nil
}

// MainField returns the first field.
func (a *Attribute) MainField() *Field {
	if len(a.fields) == 0 {
		return nil
	}
	return a.fields[0]
}

func (a *Attribute) HasData() bool {
	for _, f := range a.fields {
		if f.HasData() {
			return true
		}
	}
	return false
}

// NewNode returns a detached node for def.
func NewNode(def survey.NodeDefinition) (Node, error) {
	switch def := def.(type) {
	case *survey.EntityDefinition:
		return NewEntity(def), nil
	case *survey.AttributeDefinition:
		return NewAttribute(def), nil
	default:
		return nil, errors.Errorf("unsupported definition type %T", def)
	}
}
