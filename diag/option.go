package diag

import "github.com/andaru/collectxml/record"

// Option is a Diagnostic option function
type Option func(*Diagnostic)

func WithMessage(msg string) Option     { return func(d *Diagnostic) { d.Message = msg } }
func WithStep(step record.Step) Option { return func(d *Diagnostic) { d.Step = step } }

// WithError sets the message from err, if err is not nil.
func WithError(err error) Option {
	return func(d *Diagnostic) {
		if err != nil {
			d.Message = err.Error()
		}
	}
}
