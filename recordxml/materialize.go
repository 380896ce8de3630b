package recordxml

import (
	"github.com/golang/glog"

	"github.com/andaru/collectxml/diag"
	"github.com/andaru/collectxml/record"
	"github.com/andaru/collectxml/survey"
	"github.com/andaru/collectxml/xmlutil"
)

// materialize creates the node for def below parent and applies its
// element attributes.
func (d *Driver) materialize(parent *record.Entity, def survey.NodeDefinition, attrs xmlutil.AttrMap) (record.Node, error) {
	n, err := record.NewNode(def)
	if err != nil {
		return nil, err
	}
	if err := parent.Add(n); err != nil {
		return nil, err
	}
	if s, ok := attrs.Get(attrState); ok {
		state, err := parseState(s)
		if err != nil {
			return nil, err
		}
		n.SetState(state)
	}
	if e, ok := n.(*record.Entity); ok {
		if err := d.expandCompact(e, attrs); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// expandCompact materializes attributes written in compact form, as XML
// attributes of their entity element holding the main field value:
//
//	<tree dbh="12.5"/>
//
// Names that do not resolve to a child attribute definition are ignored.
func (d *Driver) expandCompact(e *record.Entity, attrs xmlutil.AttrMap) error {
	for _, name := range attrs.Names() {
		switch name {
		case attrState, attrSymbol, attrRemarks:
			continue
		}
		def, ok := d.schema.Child(e.EntityDefinition(), name).(*survey.AttributeDefinition)
		if !ok {
			glog.V(2).Infof("%s: ignoring xml attribute %q", e.Path(), name)
			continue
		}
		if !d.record.Version.IsApplicable(def) {
			d.diags.add(diag.NotApplicable(e.Path()+"/"+name, d.withStep()))
			continue
		}
		a := record.NewAttribute(def)
		if err := e.Add(a); err != nil {
			return err
		}
		if f := a.MainField(); f != nil {
			if err := f.SetValueFromString(attrs.Value(name)); err != nil {
				d.diags.add(diag.InvalidValue(a.Path()+"/"+f.Name(), d.withStep(), diag.WithError(err)))
			}
		}
		if !a.HasData() {
			e.Remove(a)
		}
	}
	return nil
}
