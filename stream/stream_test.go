package stream

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, s Source) ([]Event, error) {
	t.Helper()
	var events []Event
	for {
		ev, err := s.Next()
		if err == io.EOF {
			return events, nil
		} else if err != nil {
			return events, err
		}
		events = append(events, ev)
	}
}

func TestDecoder(t *testing.T) {
	for _, tc := range []struct {
		name    string
		input   string
		want    []Event
		wantErr bool
	}{
		{
			name:  "elements and text",
			input: `<?xml version="1.0"?><!-- c --><plot version="2.1"><id>1</id></plot>`,
			want: []Event{
				Start("plot", "version", "2.1"),
				Start("id"),
				CharData("1"),
				End("id"),
				End("plot"),
			},
		},

		{
			name:  "namespace declarations dropped",
			input: `<plot xmlns="http://example.com/r" xmlns:x="urn:x" state="1"/>`,
			want: []Event{
				Start("plot", "state", "1"),
				End("plot"),
			},
		},

		{
			name:  "latin1",
			input: "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><name>S\xe3o</name>",
			want: []Event{
				Start("name"),
				CharData("São"),
				End("name"),
			},
		},

		{
			name:    "malformed",
			input:   `<plot><id>1</plot>`,
			want:    []Event{Start("plot"), Start("id"), CharData("1")},
			wantErr: true,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			check := assert.New(t)
			got, err := drain(t, NewDecoder(strings.NewReader(tc.input)))
			if tc.wantErr {
				check.Error(err)
			} else {
				check.NoError(err)
			}
			check.Equal(tc.want, got)
		})
	}
}

func TestEvents(t *testing.T) {
	s := &Events{Start("a", "k", "v", "dangling"), CharData("x"), End("a")}
	got, err := drain(t, s)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "v", got[0].Attrs.Value("k"))
	assert.Len(t, got[0].Attrs, 1)
	assert.Equal(t, "<a>", got[0].String())
	assert.Equal(t, `"x"`, got[1].String())
	assert.Equal(t, "</a>", got[2].String())
	_, err = s.Next()
	assert.Equal(t, io.EOF, err)
}
