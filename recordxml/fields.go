package recordxml

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/andaru/collectxml/diag"
	"github.com/andaru/collectxml/record"
	"github.com/andaru/collectxml/survey"
)

// legacyFileFields maps field names written by older clients for file
// attributes.
var legacyFileFields = map[string]string{
	"fileName": survey.FileNameField,
	"fileSize": survey.FileSizeField,
}

// fieldName returns the field name to look up for name on def.
func fieldName(def *survey.AttributeDefinition, name string) string {
	if def.Type() == survey.AttributeFile {
		if alias, ok := legacyFileFields[name]; ok {
			return alias
		}
	}
	return name
}

// assign commits the pending field's text and attributes to a.
func (d *Driver) assign(a *record.Attribute, pf *pendingField) {
	path := a.Path() + "/" + pf.name
	def := a.AttributeDefinition()
	f := a.Field(fieldName(def, pf.name))
	if f == nil {
		d.diags.add(diag.UnknownField(path, d.withStep(),
			diag.WithMessage(fmt.Sprintf("Unknown field %s for %s attribute", pf.name, def.Type()))))
		return
	}
	if err := f.SetValueFromString(strings.TrimSpace(pf.text.String())); err != nil {
		d.diags.add(diag.InvalidValue(path, d.withStep(), diag.WithError(err)))
	}
	if remarks, ok := pf.attrs.Get(attrRemarks); ok {
		f.Remarks = remarks
	}
	if code, ok := pf.attrs.NonBlank(attrSymbol); ok {
		c, _ := utf8.DecodeRuneInString(code)
		if sym, ok := record.SymbolFromCode(c); ok {
			f.Symbol = &sym
		}
	}
	if s, ok := pf.attrs.NonBlank(attrState); ok {
		state, err := parseState(s)
		switch {
		case err != nil:
			d.diags.add(diag.InvalidValue(path, d.withStep(),
				diag.WithMessage(fmt.Sprintf("invalid state %q for field %s", s, f.Name()))))
		case state > 0:
			f.SetState(state)
		}
	}
}
