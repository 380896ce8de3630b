package recordxml

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andaru/collectxml/diag"
	"github.com/andaru/collectxml/record"
	"github.com/andaru/collectxml/stream"
)

func TestDriverStatus(t *testing.T) {
	start, text, end := stream.Start, stream.CharData, stream.End
	for _, tc := range []struct {
		name     string
		events   []stream.Event
		status   []Status
		failures []string
	}{
		{
			name:   "record",
			events: []stream.Event{start("plot"), start("note"), start("value"), text("x"), end("value"), end("note"), end("plot")},
			status: []Status{StatusActive, StatusActive, StatusActive, StatusActive, StatusActive, StatusActive, StatusDone},
		},

		{
			name:   "ignored subtree",
			events: []stream.Event{start("plot"), start("site"), start("tree"), text("x"), end("tree"), end("site"), end("plot")},
			status: []Status{StatusActive, StatusIgnoring, StatusIgnoring, StatusIgnoring, StatusIgnoring, StatusActive, StatusDone},
		},

		{
			name:     "end before root",
			events:   []stream.Event{text(" "), end("plot"), start("plot")},
			status:   []Status{StatusAwaitingRoot, StatusFailed, StatusFailed},
			failures: []string{`unexpected end element "plot" before the root element`},
		},

		{
			name:     "end after record",
			events:   []stream.Event{start("plot"), end("plot"), text("\n"), end("plot")},
			status:   []Status{StatusActive, StatusDone, StatusDone, StatusFailed},
			failures: []string{"Reached root node before end of document"},
		},

		{
			name:     "failed drains",
			events:   []stream.Event{start("site"), start("plot"), end("plot"), end("site")},
			status:   []Status{StatusFailed, StatusFailed, StatusFailed, StatusFailed},
			failures: []string{`root entity "site" is not defined in survey plots`},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			check := assert.New(t)
			d := New(newPlotSurvey(t, currentNames)).NewDriver()
			check.Equal(StatusAwaitingRoot, d.Status())
			var got []Status
			for _, ev := range tc.events {
				d.Handle(context.Background(), ev)
				got = append(got, d.Status())
			}
			check.Equal(tc.status, got)

			var failures []string
			for _, f := range d.Result().Failures {
				check.Equal(diag.KindFatal, f.Kind)
				failures = append(failures, f.Message)
			}
			check.Equal(tc.failures, failures)
		})
	}
}

func TestParseTruncated(t *testing.T) {
	check := assert.New(t)
	src := &stream.Events{stream.Start("plot"), stream.Start("tree"), stream.Start("dbh")}
	res, err := New(newPlotSurvey(t, currentNames)).Parse(context.Background(), src)
	check.NoError(err)
	check.Equal([]diag.Diagnostic{
		diag.Malformed("/plot/tree[1]/dbh[1]",
			diag.WithStep(record.StepEntry), diag.WithMessage("unexpected end of document")),
	}, res.Failures)
	check.NotNil(res.Record)
}

func TestStatusString(t *testing.T) {
	check := assert.New(t)
	check.Equal("awaiting-root", StatusAwaitingRoot.String())
	check.Equal("ignoring", StatusIgnoring.String())
	check.Equal("done", StatusDone.String())
	check.Equal("Status(9)", Status(9).String())
}
