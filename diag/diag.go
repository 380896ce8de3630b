// Package diag provides the diagnostics recorded while reading a record:
// recoverable warnings and fatal failures, each tagged with the record's
// workflow step and the structural path at which it occurred.
package diag

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"

	"github.com/andaru/collectxml/record"
)

// Severity represents the diagnostic severity
type Severity int

const (
	// SeverityWarning is recoverable; the offending content was skipped
	SeverityWarning Severity = iota
	// SeverityFailure halted further structural processing
	SeverityFailure
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityFailure:
		return "failure"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

func (s Severity) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Severity) UnmarshalText(b []byte) error {
	b = bytes.TrimSpace(b)
	switch string(b) {
	case "warning":
		*s = SeverityWarning
	case "failure":
		*s = SeverityFailure
	default:
		return errors.New("unknown value")
	}
	return nil
}

// Kind classifies a diagnostic
type Kind int

const (
	// KindUndefinedNode is an element naming no definition
	KindUndefinedNode Kind = iota
	// KindNotApplicable is an element whose definition does not apply to
	// the record version
	KindNotApplicable
	// KindUnexpectedElement is markup nested inside an attribute field
	KindUnexpectedElement
	// KindUnknownField is a field name the attribute does not define
	KindUnknownField
	// KindInvalidValue is field text that does not parse as the field type
	KindInvalidValue
	// KindFatal is an error raised while building the record tree
	KindFatal
	// KindMalformed is a document that is not well-formed XML
	KindMalformed
)

var kindNames = [...]string{
	KindUndefinedNode:     "undefined-node",
	KindNotApplicable:     "not-applicable",
	KindUnexpectedElement: "unexpected-element",
	KindUnknownField:      "unknown-field",
	KindInvalidValue:      "invalid-value",
	KindFatal:             "fatal",
	KindMalformed:         "malformed",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *Kind) UnmarshalText(b []byte) error {
	b = bytes.TrimSpace(b)
	for i, name := range kindNames {
		if name == string(b) {
			*k = Kind(i)
			return nil
		}
	}
	return errors.New("unknown value")
}

// IsField returns true for field level kinds.
func (k Kind) IsField() bool { return k == KindUnknownField || k == KindInvalidValue }

// Diagnostic is a recorded anomaly.
//
// Diagnostics marshal to XML as <diagnostic> elements and to JSON objects.
type Diagnostic struct {
	XMLName  xml.Name    `xml:"diagnostic" json:"-"`
	Severity Severity    `xml:"severity" json:"severity"`
	Kind     Kind        `xml:"kind" json:"kind"`
	Step     record.Step `xml:"step,omitempty" json:"step,omitempty"`
	Path     string      `xml:"path,omitempty" json:"path,omitempty"`
	Message  string      `xml:"message,omitempty" json:"message,omitempty"`
}

func (d Diagnostic) Error() string {
	s := fmt.Sprintf("%s %s", d.Severity, d.Kind)
	if d.Step != 0 {
		s += " step:" + d.Step.String()
	}
	if d.Path != "" {
		s += " path:" + d.Path
	}
	if d.Message != "" {
		s += " " + d.Message
	}
	return s
}

func newDiagnostic(sev Severity, kind Kind, path, msg string, opts []Option) Diagnostic {
	d := Diagnostic{Severity: sev, Kind: kind, Path: path, Message: msg}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func UndefinedNode(path string, opts ...Option) Diagnostic {
	return newDiagnostic(SeverityWarning, KindUndefinedNode, path, "Undefined node", opts)
}

func NotApplicable(path string, opts ...Option) Diagnostic {
	return newDiagnostic(SeverityWarning, KindNotApplicable, path,
		"Node definition is not applicable to the record version", opts)
}

func UnexpectedElement(path string, opts ...Option) Diagnostic {
	return newDiagnostic(SeverityWarning, KindUnexpectedElement, path, "Unexpected element", opts)
}

func UnknownField(path string, opts ...Option) Diagnostic {
	return newDiagnostic(SeverityWarning, KindUnknownField, path, "Unknown field", opts)
}

func InvalidValue(path string, opts ...Option) Diagnostic {
	return newDiagnostic(SeverityWarning, KindInvalidValue, path, "Invalid value", opts)
}

func Fatal(path string, opts ...Option) Diagnostic {
	return newDiagnostic(SeverityFailure, KindFatal, path, "", opts)
}

func Malformed(path string, opts ...Option) Diagnostic {
	return newDiagnostic(SeverityFailure, KindMalformed, path, "", opts)
}
