package survey

import (
	"time"

	"github.com/pkg/errors"
)

// Survey is a questionnaire definition: a schema plus its model versions.
type Survey struct {
	Name string
	URI  string

	schema   *Schema
	versions []*ModelVersion
}

// New returns an empty Survey named name.
func New(name string) *Survey {
	return &Survey{Name: name, schema: newSchema()}
}

// Schema returns the survey's node definition tree.
func (s *Survey) Schema() *Schema { return s.schema }

// Versions returns the model versions in declaration order.
func (s *Survey) Versions() []*ModelVersion { return s.versions }

// AddVersion appends a model version. Versions must be added oldest
// first; declaration order defines version ordering.
func (s *Survey) AddVersion(id int, name string, date time.Time) (*ModelVersion, error) {
	if name == "" {
		return nil, errors.Errorf("version %d has no name", id)
	}
	for _, v := range s.versions {
		if v.ID == id {
			return nil, errors.Errorf("duplicate version id %d", id)
		}
		if v.Name == name {
			return nil, errors.Errorf("duplicate version name %q", name)
		}
	}
	v := &ModelVersion{ID: id, Name: name, Date: date, seq: len(s.versions)}
	s.versions = append(s.versions, v)
	return v, nil
}

// Version returns the model version called name, or nil.
func (s *Survey) Version(name string) *ModelVersion {
	for _, v := range s.versions {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// VersionByID returns the model version with the given id, or nil.
func (s *Survey) VersionByID(id int) *ModelVersion {
	for _, v := range s.versions {
		if v.ID == id {
			return v
		}
	}
	return nil
}

// ModelVersion is a named schema revision.
type ModelVersion struct {
	ID   int
	Name string
	Date time.Time

	seq int
}

// IsApplicable returns true if def was part of the schema while v was
// current: def was introduced at or before v and not deprecated at or
// before v. A nil version applies every definition.
func (v *ModelVersion) IsApplicable(def NodeDefinition) bool {
	if def == nil {
		return false
	}
	if v == nil {
		return true
	}
	if since := def.Since(); since != nil && since.seq > v.seq {
		return false
	}
	if deprecated := def.Deprecated(); deprecated != nil && deprecated.seq <= v.seq {
		return false
	}
	return true
}

func (v *ModelVersion) String() string {
	if v == nil {
		return "<default>"
	}
	return v.Name
}
