package survey

import (
	"bytes"
	"errors"
	"fmt"
)

// FieldType is the value type of an attribute field.
type FieldType int

const (
	// FieldText holds free text
	FieldText FieldType = iota
	// FieldInteger holds a whole number
	FieldInteger
	// FieldReal holds a floating point number
	FieldReal
	// FieldBoolean holds true or false
	FieldBoolean
)

func (t FieldType) String() string {
	switch t {
	case FieldText:
		return "text"
	case FieldInteger:
		return "integer"
	case FieldReal:
		return "real"
	case FieldBoolean:
		return "boolean"
	default:
		return fmt.Sprintf("FieldType(%d)", int(t))
	}
}

// FieldDefinition names one typed cell of an attribute.
type FieldDefinition struct {
	Name string
	Type FieldType
}

// AttributeType is the kind of an attribute definition. It determines the
// attribute's field layout.
type AttributeType int

const (
	AttributeText AttributeType = iota
	AttributeNumber
	AttributeRange
	AttributeBoolean
	AttributeCode
	AttributeCoordinate
	AttributeDate
	AttributeTime
	AttributeFile
	AttributeTaxon
)

var attributeTypeNames = [...]string{
	AttributeText:       "text",
	AttributeNumber:     "number",
	AttributeRange:      "range",
	AttributeBoolean:    "boolean",
	AttributeCode:       "code",
	AttributeCoordinate: "coordinate",
	AttributeDate:       "date",
	AttributeTime:       "time",
	AttributeFile:       "file",
	AttributeTaxon:      "taxon",
}

func (t AttributeType) String() string {
	if t >= 0 && int(t) < len(attributeTypeNames) {
		return attributeTypeNames[t]
	}
	return fmt.Sprintf("AttributeType(%d)", int(t))
}

func (t AttributeType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *AttributeType) UnmarshalText(b []byte) error {
	b = bytes.TrimSpace(b)
	for i, name := range attributeTypeNames {
		if name == string(b) {
			*t = AttributeType(i)
			return nil
		}
	}
	return errors.New("unknown attribute type")
}

// Names of the fields of file attributes.
const (
	FileNameField = "file_name"
	FileSizeField = "file_size"
)

// fieldLayout returns the field definitions for an attribute of type t.
// decimal selects floating point values for number and range attributes.
func fieldLayout(t AttributeType, decimal bool) []FieldDefinition {
	numeric := FieldInteger
	if decimal {
		numeric = FieldReal
	}
	switch t {
	case AttributeNumber:
		return []FieldDefinition{{"value", numeric}, {"unit_id", FieldInteger}}
	case AttributeRange:
		return []FieldDefinition{{"from", numeric}, {"to", numeric}, {"unit_id", FieldInteger}}
	case AttributeBoolean:
		return []FieldDefinition{{"value", FieldBoolean}}
	case AttributeCode:
		return []FieldDefinition{{"code", FieldText}, {"qualifier", FieldText}}
	case AttributeCoordinate:
		return []FieldDefinition{{"x", FieldReal}, {"y", FieldReal}, {"srs", FieldText}}
	case AttributeDate:
		return []FieldDefinition{{"year", FieldInteger}, {"month", FieldInteger}, {"day", FieldInteger}}
	case AttributeTime:
		return []FieldDefinition{{"hour", FieldInteger}, {"minute", FieldInteger}}
	case AttributeFile:
		return []FieldDefinition{{FileNameField, FieldText}, {FileSizeField, FieldInteger}}
	case AttributeTaxon:
		return []FieldDefinition{
			{"code", FieldText},
			{"scientific_name", FieldText},
			{"vernacular_name", FieldText},
			{"language_code", FieldText},
			{"language_variety", FieldText},
		}
	default:
		return []FieldDefinition{{"value", FieldText}}
	}
}
