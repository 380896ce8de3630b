package record

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/andaru/collectxml/survey"
)

// Field is a typed value cell of an attribute, with remarks, an optional
// symbol and state flags.
type Field struct {
	def     survey.FieldDefinition
	value   any
	Remarks string
	Symbol  *Symbol
	state   int
}

func (f *Field) Name() string           { return f.def.Name }
func (f *Field) Type() survey.FieldType { return f.def.Type }

// Value returns the field value (string, int64, float64 or bool), or nil
// if unset.
func (f *Field) Value() any { return f.value }

// IsSet returns true if the field holds a value.
func (f *Field) IsSet() bool { return f.value != nil }

// Clear unsets the value.
func (f *Field) Clear() { f.value = nil }

// SetValueFromString parses s per the field type. Blank text unsets the
// value. On a parse error the value is left unset and the error returned.
func (f *Field) SetValueFromString(s string) error {
	f.value = nil
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	switch f.def.Type {
	case survey.FieldInteger:
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return errors.Errorf("invalid integer value %q for field %s", s, f.def.Name)
		}
		f.value = v
	case survey.FieldReal:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return errors.Errorf("invalid real value %q for field %s", s, f.def.Name)
		}
		f.value = v
	case survey.FieldBoolean:
		v, err := strconv.ParseBool(s)
		if err != nil {
			return errors.Errorf("invalid boolean value %q for field %s", s, f.def.Name)
		}
		f.value = v
	default:
		f.value = s
	}
	return nil
}

// Int returns an integer value.
func (f *Field) Int() (int64, bool) {
	v, ok := f.value.(int64)
	return v, ok
}

// Float returns a numeric value as float64.
func (f *Field) Float() (float64, bool) {
	switch v := f.value.(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// Bool returns a boolean value.
func (f *Field) Bool() (bool, bool) {
	v, ok := f.value.(bool)
	return v, ok
}

// String returns the value formatted as text, empty when unset.
func (f *Field) String() string {
	switch v := f.value.(type) {
	case nil:
		return ""
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	}
	return ""
}

// State returns the field state flags.
func (f *Field) State() int { return f.state }

// SetState sets the field state flags.
func (f *Field) SetState(flags int) { f.state = flags }

// HasData is true if the field has a value, non-blank remarks or a symbol.
func (f *Field) HasData() bool {
	return f.value != nil || strings.TrimSpace(f.Remarks) != "" || f.Symbol != nil
}
