package recordxml

import (
	"github.com/andaru/collectxml/diag"
	"github.com/andaru/collectxml/record"
)

// Result is the outcome of reading one document.
type Result struct {
	// Record is nil if the root element could not be resolved
	Record   *record.Record
	Warnings []diag.Diagnostic
	Failures []diag.Diagnostic
}

// Failed returns true if any failure was recorded.
func (r *Result) Failed() bool { return len(r.Failures) > 0 }

// Err returns the first failure, or nil.
func (r *Result) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	return r.Failures[0]
}

// collector accumulates diagnostics in document order.
type collector struct {
	warnings []diag.Diagnostic
	failures []diag.Diagnostic
}

func (c *collector) add(d diag.Diagnostic) {
	if d.Severity == diag.SeverityFailure {
		c.failures = append(c.failures, d)
	} else {
		c.warnings = append(c.warnings, d)
	}
}
