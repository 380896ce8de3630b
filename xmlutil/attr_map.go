package xmlutil

import (
	"encoding/xml"
	"sort"
	"strings"
)

// AttrMap is an attribute local name to value map.
//
// Namespace declarations are not data and are never stored. Record
// documents carry no namespaced data attributes, so names are keyed by
// their local part alone.
type AttrMap map[string]string

// NewAttrMap returns an AttrMap containing the passed XML attributes
func NewAttrMap(attrs ...xml.Attr) AttrMap {
	m := AttrMap{}
	for _, attr := range attrs {
		if IsNamespaceDecl(attr.Name) {
			continue
		}
		m[attr.Name.Local] = attr.Value
	}
	return m
}

// Get returns the value of the named attribute and whether it was present.
func (m AttrMap) Get(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// Value returns the named attribute's value, or the empty string.
func (m AttrMap) Value(name string) string { return m[name] }

// NonBlank returns the named attribute's value trimmed of surrounding
// space, and false if the attribute is absent or blank.
func (m AttrMap) NonBlank(name string) (string, bool) {
	v := strings.TrimSpace(m[name])
	return v, v != ""
}

// Names returns the attribute names sorted lexically.
func (m AttrMap) Names() []string {
	var names []string
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
