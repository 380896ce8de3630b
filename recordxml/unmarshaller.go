package recordxml

import (
	"context"
	"io"

	"github.com/andaru/collectxml/dates"
	"github.com/andaru/collectxml/record"
	"github.com/andaru/collectxml/stream"
	"github.com/andaru/collectxml/survey"
	"github.com/andaru/collectxml/users"
)

// Unmarshaller reads records of a survey. It is immutable once created and
// safe for concurrent use.
type Unmarshaller struct {
	current   *survey.Survey
	record    *survey.Survey
	users     *users.Resolver
	step      record.Step
	parseDate dates.Parser
}

// Option is an Unmarshaller option function
type Option func(*Unmarshaller)

// WithRecordSurvey sets the survey documents were written against, when it
// differs from the current survey.
func WithRecordSurvey(s *survey.Survey) Option {
	return func(u *Unmarshaller) {
		if s != nil {
			u.record = s
		}
	}
}

// WithUserResolver sets the resolver for created_by and modified_by. Without
// one, record users are left nil.
func WithUserResolver(r *users.Resolver) Option { return func(u *Unmarshaller) { u.users = r } }

// WithStep sets the workflow step assigned to records (default entry).
func WithStep(step record.Step) Option { return func(u *Unmarshaller) { u.step = step } }

// WithDateParser replaces dates.ParseDateTime for created and modified.
func WithDateParser(p dates.Parser) Option {
	return func(u *Unmarshaller) {
		if p != nil {
			u.parseDate = p
		}
	}
}

// New returns an Unmarshaller for records of the current survey.
func New(current *survey.Survey, opts ...Option) *Unmarshaller {
	u := &Unmarshaller{
		current:   current,
		record:    current,
		step:      record.StepEntry,
		parseDate: dates.ParseDateTime,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// NewDriver returns a Driver for one document.
func (u *Unmarshaller) NewDriver() *Driver {
	return &Driver{
		schema:    schemaResolver{record: u.record, current: u.current},
		users:     u.users,
		userCache: users.NewCache(),
		parseDate: u.parseDate,
		step:      u.step,
	}
}

// Unmarshal reads one record document from r.
//
// Problems with the document are reported in the Result; the error is
// non-nil only when ctx is done, in which case the partial Result is
// returned with it.
func (u *Unmarshaller) Unmarshal(ctx context.Context, r io.Reader) (*Result, error) {
	return u.Parse(ctx, stream.NewDecoder(r))
}

// Parse reads one record from src, draining it to io.EOF. See Unmarshal.
func (u *Unmarshaller) Parse(ctx context.Context, src stream.Source) (*Result, error) {
	d := u.NewDriver()
	for {
		// check for context cancellation before src.Next() blocks.
		if err := ctx.Err(); err != nil {
			return d.Result(), err
		}
		ev, err := src.Next()
		if err == io.EOF {
			d.Finish()
			break
		} else if err != nil {
			d.malformed(err)
			break
		}
		d.Handle(ctx, ev)
	}
	return d.Result(), nil
}
