// Package dates parses the audit timestamps written on record documents.
package dates

import (
	"strings"
	"time"
)

// Layouts are the accepted date-time layouts, tried in order. Timestamps
// without a zone are read in UTC.
var Layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000Z0700",
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Parser parses date-time text. ok is false if text is blank or in no
// known layout.
type Parser func(text string) (t time.Time, ok bool)

// ParseDateTime parses text using Layouts.
func ParseDateTime(text string) (time.Time, bool) {
	return ParseWith(Layouts)(text)
}

// ParseWith returns a Parser trying layouts in order.
func ParseWith(layouts []string) Parser {
	return func(text string) (time.Time, bool) {
		text = strings.TrimSpace(text)
		if text == "" {
			return time.Time{}, false
		}
		for _, layout := range layouts {
			if t, err := time.Parse(layout, text); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	}
}
