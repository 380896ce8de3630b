// Package stream provides a pull-based source of XML element events.
//
// A Source yields StartElement, Text and EndElement events in document
// order and io.EOF once the document is exhausted. Processing
// instructions, comments and directives are not reported.
package stream

import (
	"encoding/xml"
	"fmt"
	"io"

	"golang.org/x/net/html/charset"

	"github.com/andaru/collectxml/xmlutil"
)

// Kind is the event kind
type Kind int

const (
	StartElement Kind = iota + 1
	Text
	EndElement
)

func (k Kind) String() string {
	switch k {
	case StartElement:
		return "start"
	case Text:
		return "text"
	case EndElement:
		return "end"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Event is a single document event. Name is the element local name for
// StartElement and EndElement; Attrs is set for StartElement only and Text
// for Text only.
type Event struct {
	Kind  Kind
	Name  string
	Attrs xmlutil.AttrMap
	Text  string
}

func (e Event) String() string {
	switch e.Kind {
	case StartElement:
		return "<" + e.Name + ">"
	case EndElement:
		return "</" + e.Name + ">"
	case Text:
		return fmt.Sprintf("%q", e.Text)
	}
	return e.Kind.String()
}

// Source is a pull-based event source.
type Source interface {
	// Next returns the next event, or io.EOF at the end of the document.
	Next() (Event, error)
}

// Decoder is a Source reading an XML document.
type Decoder struct {
	d *xml.Decoder
}

// NewDecoder returns a Decoder reading from r. Documents declaring a
// non UTF-8 encoding are transcoded.
func NewDecoder(r io.Reader) *Decoder {
	d := xml.NewDecoder(r)
	d.CharsetReader = charset.NewReaderLabel
	return &Decoder{d: d}
}

// InputOffset returns the input stream byte offset of the decoder.
func (s *Decoder) InputOffset() int64 { return s.d.InputOffset() }

// Next implements Source. Syntax errors are returned as-is and the
// decoder must not be used afterwards.
func (s *Decoder) Next() (Event, error) {
	for {
		token, err := s.d.Token()
		if err != nil {
			return Event{}, err
		}
		switch token := token.(type) {
		case xml.StartElement:
			return Event{
				Kind:  StartElement,
				Name:  token.Name.Local,
				Attrs: xmlutil.NewAttrMap(token.Attr...),
			}, nil
		case xml.EndElement:
			return Event{Kind: EndElement, Name: token.Name.Local}, nil
		case xml.CharData:
			return Event{Kind: Text, Text: string(token)}, nil
		case xml.ProcInst, xml.Comment, xml.Directive:
			// not reported
		}
	}
}

// Events is a Source over a literal event sequence.
type Events []Event

// Next implements Source, consuming the receiver.
func (s *Events) Next() (Event, error) {
	if len(*s) == 0 {
		return Event{}, io.EOF
	}
	ev := (*s)[0]
	*s = (*s)[1:]
	return ev, nil
}

// Start returns a StartElement event. attrs are name, value pairs.
func Start(name string, attrs ...string) Event {
	ev := Event{Kind: StartElement, Name: name, Attrs: xmlutil.AttrMap{}}
	for i := 0; i+1 < len(attrs); i += 2 {
		ev.Attrs[attrs[i]] = attrs[i+1]
	}
	return ev
}

// CharData returns a Text event.
func CharData(text string) Event { return Event{Kind: Text, Text: text} }

// End returns an EndElement event.
func End(name string) Event { return Event{Kind: EndElement, Name: name} }
