package recordxml

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/andaru/collectxml/dates"
	"github.com/andaru/collectxml/diag"
	"github.com/andaru/collectxml/record"
	"github.com/andaru/collectxml/stream"
	"github.com/andaru/collectxml/users"
	"github.com/andaru/collectxml/xmlutil"
)

// Document attribute names.
const (
	attrVersion    = "version"
	attrState      = "state"
	attrCreated    = "created"
	attrModified   = "modified"
	attrCreatedBy  = "created_by"
	attrModifiedBy = "modified_by"
	attrSymbol     = "symbol"
	attrRemarks    = "remarks"
)

// pathRootElement is the diagnostic path used before a record exists.
const pathRootElement = "root element"

// Status is a Driver's (present) state.
type Status int

const (
	// StatusAwaitingRoot is the initial status, before the root element
	StatusAwaitingRoot Status = iota
	// StatusActive is set while the record tree is being built
	StatusActive
	// StatusIgnoring is set while a skipped subtree is consumed
	StatusIgnoring
	// StatusFailed indicates the driver has recorded a failure. All
	// further events are ignored.
	StatusFailed
	// StatusDone indicates the root element closed normally.
	StatusDone
)

func (s Status) String() string {
	switch s {
	case StatusAwaitingRoot:
		return "awaiting-root"
	case StatusActive:
		return "active"
	case StatusIgnoring:
		return "ignoring"
	case StatusFailed:
		return "failed"
	case StatusDone:
		return "done"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// pendingField is an open field element of the current attribute.
type pendingField struct {
	name  string
	attrs xmlutil.AttrMap
	text  strings.Builder
}

// Driver builds one record from a sequence of stream events.
type Driver struct {
	schema    schemaResolver
	users     *users.Resolver
	userCache *users.Cache
	parseDate dates.Parser
	step      record.Step

	status Status
	record *record.Record
	cursor record.Node
	// ignore is the element depth remaining in a skipped subtree
	ignore int
	field  *pendingField
	diags  collector
}

// Status returns the driver's status.
func (d *Driver) Status() Status { return d.status }

// Result returns the record and diagnostics collected so far.
func (d *Driver) Result() *Result {
	return &Result{Record: d.record, Warnings: d.diags.warnings, Failures: d.diags.failures}
}

// Handle advances the driver by one event.
func (d *Driver) Handle(ctx context.Context, ev stream.Event) {
	switch d.status {
	case StatusAwaitingRoot:
		switch ev.Kind {
		case stream.StartElement:
			d.startRecord(ctx, ev)
		case stream.EndElement:
			d.fail(pathRootElement, errors.Errorf("unexpected end element %q before the root element", ev.Name))
		}

	case StatusActive:
		switch ev.Kind {
		case stream.StartElement:
			d.startElement(ev)
		case stream.Text:
			if d.field != nil {
				d.field.text.WriteString(ev.Text)
			}
		case stream.EndElement:
			d.endElement()
		}

	case StatusIgnoring:
		switch ev.Kind {
		case stream.StartElement:
			d.ignore++
		case stream.EndElement:
			if d.ignore--; d.ignore == 0 {
				d.status = StatusActive
			}
		}

	case StatusDone:
		switch ev.Kind {
		case stream.StartElement:
			d.fail(d.record.Root.Path(), errors.Errorf("unexpected element %q after end of record", ev.Name))
		case stream.EndElement:
			d.fail(d.record.Root.Path(), errors.New("Reached root node before end of document"))
		}

	case StatusFailed:
	}
}

// Finish reports a document that ended before the record was complete.
func (d *Driver) Finish() {
	switch d.status {
	case StatusAwaitingRoot:
		d.diags.add(diag.Malformed(pathRootElement, diag.WithMessage("document has no root element")))
		d.status = StatusFailed
	case StatusActive, StatusIgnoring:
		d.diags.add(diag.Malformed(d.path(), d.withStep(), diag.WithMessage("unexpected end of document")))
		d.status = StatusFailed
	}
}

// malformed records a document syntax error.
func (d *Driver) malformed(err error) {
	if d.status == StatusFailed {
		return
	}
	path := pathRootElement
	if d.record != nil {
		path = d.path()
	}
	d.diags.add(diag.Malformed(path, d.withStep(), diag.WithError(err)))
	d.status = StatusFailed
}

func (d *Driver) startRecord(ctx context.Context, ev stream.Event) {
	version, err := d.schema.Version(ev.Attrs.Value(attrVersion))
	if err != nil {
		d.fail(pathRootElement, err)
		return
	}
	rootDef, err := d.schema.Root(ev.Name)
	if err != nil {
		d.fail(pathRootElement, err)
		return
	}
	rec := record.New(d.schema.current, version, rootDef)
	rec.Step = d.step
	rec.State = record.StateFromCode(strings.TrimSpace(ev.Attrs.Value(attrState)))
	rec.Created = d.date(ev.Attrs, attrCreated)
	rec.Modified = d.date(ev.Attrs, attrModified)
	d.record, d.cursor, d.status = rec, rec.Root, StatusActive
	glog.V(1).Infof("reading record %s version %s step %s", rootDef.Name(), version, rec.Step)

	if rec.CreatedBy, err = d.users.Resolve(ctx, d.userCache, ev.Attrs.Value(attrCreatedBy)); err != nil {
		d.fail(d.path(), err)
		return
	}
	if rec.ModifiedBy, err = d.users.Resolve(ctx, d.userCache, ev.Attrs.Value(attrModifiedBy)); err != nil {
		d.fail(d.path(), err)
	}
}

func (d *Driver) date(attrs xmlutil.AttrMap, name string) *time.Time {
	s, ok := attrs.NonBlank(name)
	if !ok {
		return nil
	}
	t, ok := d.parseDate(s)
	if !ok {
		glog.V(2).Infof("ignoring unparseable %s date %q", name, s)
		return nil
	}
	return &t
}

func (d *Driver) startElement(ev stream.Event) {
	if d.field != nil {
		path := d.cursor.Path() + "/" + d.field.name
		d.skip(diag.UnexpectedElement(path, d.withStep(),
			diag.WithMessage(fmt.Sprintf("Unexpected element %q in field", ev.Name))))
		return
	}
	switch cursor := d.cursor.(type) {
	case *record.Attribute:
		d.field = &pendingField{name: ev.Name, attrs: ev.Attrs}
	case *record.Entity:
		path := cursor.Path() + "/" + ev.Name
		def := d.schema.Child(cursor.EntityDefinition(), ev.Name)
		if def == nil {
			d.skip(diag.UndefinedNode(path, d.withStep()))
			return
		}
		if !d.record.Version.IsApplicable(def) {
			d.skip(diag.NotApplicable(path, d.withStep()))
			return
		}
		n, err := d.materialize(cursor, def, ev.Attrs)
		if err != nil {
			d.fail(path, err)
			return
		}
		d.cursor = n
	}
}

func (d *Driver) endElement() {
	if d.field != nil {
		if a, ok := d.cursor.(*record.Attribute); ok {
			d.assign(a, d.field)
		}
		d.field = nil
		return
	}
	n := d.cursor
	parent := n.Parent()
	if parent == nil {
		d.record.UpdateSummary()
		d.status = StatusDone
		glog.V(1).Infof("read record %s: %d filled attributes", n.Name(), d.record.Summary.FilledAttributes)
		return
	}
	if !n.HasData() {
		glog.V(2).Infof("pruning empty node %s", n.Path())
		parent.Remove(n)
	}
	d.cursor = parent
}

// skip records a warning and ignores the element just started.
func (d *Driver) skip(w diag.Diagnostic) {
	glog.V(2).Infof("skipping %s: %s", w.Path, w.Message)
	d.diags.add(w)
	d.ignore, d.status = 1, StatusIgnoring
}

func (d *Driver) fail(path string, err error) {
	glog.V(1).Infof("record failed at %s: %v", path, err)
	d.diags.add(diag.Fatal(path, d.withStep(), diag.WithError(err)))
	d.status = StatusFailed
}

func (d *Driver) path() string {
	if d.cursor == nil {
		return pathRootElement
	}
	return d.cursor.Path()
}

func (d *Driver) withStep() diag.Option {
	if d.record == nil {
		return diag.WithStep(0)
	}
	return diag.WithStep(d.record.Step)
}

// parseState parses a structural state value.
func parseState(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return 0, errors.Errorf("invalid state %q", s)
	}
	return v, nil
}
