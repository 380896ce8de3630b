package record

import (
	"time"

	"github.com/andaru/collectxml/survey"
	"github.com/andaru/collectxml/users"
)

// Record is a survey response: audit data plus the root entity.
type Record struct {
	Survey *survey.Survey
	// Version is nil when the record declares no model version
	Version *survey.ModelVersion
	Step    Step
	State   State

	Created    *time.Time
	Modified   *time.Time
	CreatedBy  *users.User
	ModifiedBy *users.User

	Root    *Entity
	Summary Summary
}

// New returns a record with an empty root entity in the entry step.
func New(s *survey.Survey, version *survey.ModelVersion, root *survey.EntityDefinition) *Record {
	return &Record{
		Survey:  s,
		Version: version,
		Step:    StepEntry,
		Root:    NewEntity(root),
	}
}

// Summary holds values derived from the record tree.
type Summary struct {
	// RootKeyValues are the main field values of the root's key
	// attributes, in definition order
	RootKeyValues []string
	// EntityCounts counts the root's child entities by name
	EntityCounts map[string]int
	// FilledAttributes counts attributes holding data
	FilledAttributes int
}

// UpdateSummary recomputes Summary from the tree.
func (r *Record) UpdateSummary() {
	s := Summary{EntityCounts: map[string]int{}}
	for _, def := range r.Root.EntityDefinition().Children() {
		switch def := def.(type) {
		case *survey.AttributeDefinition:
			if !def.Key() {
				continue
			}
			var key string
			if a, ok := r.Root.Child(def.Name(), 0).(*Attribute); ok {
				key = a.MainField().String()
			}
			s.RootKeyValues = append(s.RootKeyValues, key)
		case *survey.EntityDefinition:
			s.EntityCounts[def.Name()] = r.Root.Count(def.Name())
		}
	}
	Walk(r.Root, func(n Node) {
		if a, ok := n.(*Attribute); ok && a.HasData() {
			s.FilledAttributes++
		}
	})
	r.Summary = s
}

// Walk calls fn for n and every node below it, depth first in document
// order.
func Walk(n Node, fn func(Node)) {
	fn(n)
	if e, ok := n.(*Entity); ok {
		for _, c := range e.children {
			Walk(c, fn)
		}
	}
}
