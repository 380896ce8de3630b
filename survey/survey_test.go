package survey

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const plotSurveyXML = `<?xml version="1.0" encoding="UTF-8"?>
<survey xmlns="http://www.openforis.org/idml/3.0">
  <project>plots</project>
  <uri>http://example.org/plots</uri>
  <versioning>
    <version id="1" name="1.0" date="2019-01-01"/>
    <version id="2" name="2.0"><date>2020-06-01</date></version>
    <version id="3" name="2.1"/>
  </versioning>
  <schema>
    <entity id="1" name="plot">
      <label>Plot</label>
      <number id="2" name="plot_no" key="true"/>
      <entity id="3" name="tree" multiple="true">
        <number id="4" name="dbh" type="real"/>
        <code id="5" name="species"/>
        <text id="6" name="notes" since="2.0"/>
        <boolean id="7" name="dead" deprecated="2.1"/>
      </entity>
      <file id="8" name="photo"/>
    </entity>
  </schema>
</survey>`

func TestLoadXML(t *testing.T) {
	check := assert.New(t)
	s, err := LoadXML(strings.NewReader(plotSurveyXML))
	require.NoError(t, err)

	check.Equal("plots", s.Name)
	check.Equal("http://example.org/plots", s.URI)
	if check.Len(s.Versions(), 3) {
		check.Equal(time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC), s.Versions()[0].Date)
		check.Equal(time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC), s.Versions()[1].Date)
		check.True(s.Versions()[2].Date.IsZero())
	}

	plot := s.Schema().RootEntity("plot")
	require.NotNil(t, plot)
	check.Len(plot.Children(), 3, "label must not become a definition")

	tree, ok := plot.Child("tree").(*EntityDefinition)
	require.True(t, ok)
	check.True(tree.Multiple())
	check.Equal("/plot/tree", tree.Path())

	dbh, ok := tree.Child("dbh").(*AttributeDefinition)
	require.True(t, ok)
	check.Equal(AttributeNumber, dbh.Type())
	f, ok := dbh.Field("value")
	check.True(ok)
	check.Equal(FieldReal, f.Type)

	plotNo := plot.Child("plot_no").(*AttributeDefinition)
	check.True(plotNo.Key())
	f, _ = plotNo.Field("value")
	check.Equal(FieldInteger, f.Type)

	check.Equal(s.Version("2.0"), tree.Child("notes").Since())
	check.Equal(s.Version("2.1"), tree.Child("dead").Deprecated())
	check.Equal(tree.Child("species"), s.Schema().DefinitionByID(5))
	check.Nil(s.Schema().DefinitionByID(99))
}

func TestLoadXMLErrors(t *testing.T) {
	for _, tc := range []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:    "not a survey",
			input:   `<foo/>`,
			wantErr: "survey: missing <survey> element",
		},
		{
			name:    "bad id",
			input:   `<survey><schema><entity id="x" name="plot"/></schema></survey>`,
			wantErr: `survey: <entity name="plot"> id`,
		},
		{
			name:    "undeclared version",
			input:   `<survey><schema><entity id="1" name="plot"><text id="2" name="a" since="9"/></entity></schema></survey>`,
			wantErr: `survey: a: since version "9" is not declared`,
		},
		{
			name:    "duplicate id",
			input:   `<survey><schema><entity id="1" name="plot"><text id="1" name="a"/></entity></schema></survey>`,
			wantErr: "duplicate definition id 1",
		},
		{
			name:    "duplicate child",
			input:   `<survey><schema><entity id="1" name="plot"><text id="2" name="a"/><text id="3" name="a"/></entity></schema></survey>`,
			wantErr: `duplicate child "a" in /plot`,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadXML(strings.NewReader(tc.input))
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tc.wantErr)
			}
		})
	}
}

func TestIsApplicable(t *testing.T) {
	s := New("test")
	v1, _ := s.AddVersion(1, "1.0", time.Time{})
	v2, _ := s.AddVersion(2, "2.0", time.Time{})
	v3, _ := s.AddVersion(3, "3.0", time.Time{})
	root, err := s.Schema().AddRootEntity(1, "root")
	require.NoError(t, err)
	always, _ := root.AddAttribute(2, "always", AttributeText)
	fromV2, _ := root.AddAttribute(3, "from_v2", AttributeText, Since(v2))
	untilV3, _ := root.AddAttribute(4, "until_v3", AttributeText, Deprecated(v3))

	for _, tc := range []struct {
		version *ModelVersion
		def     NodeDefinition
		want    bool
	}{
		{nil, always, true},
		{nil, fromV2, true},
		{v1, always, true},
		{v1, fromV2, false},
		{v2, fromV2, true},
		{v3, fromV2, true},
		{v2, untilV3, true},
		{v3, untilV3, false},
		{v1, nil, false},
	} {
		t.Run(tc.version.String(), func(t *testing.T) {
			assert.Equal(t, tc.want, tc.version.IsApplicable(tc.def))
		})
	}
}

func TestAddVersionErrors(t *testing.T) {
	check := assert.New(t)
	s := New("test")
	_, err := s.AddVersion(1, "1.0", time.Time{})
	check.NoError(err)
	_, err = s.AddVersion(1, "1.1", time.Time{})
	check.EqualError(err, "duplicate version id 1")
	_, err = s.AddVersion(2, "1.0", time.Time{})
	check.EqualError(err, `duplicate version name "1.0"`)
	_, err = s.AddVersion(3, "", time.Time{})
	check.EqualError(err, "version 3 has no name")
	check.Equal(s.Version("1.0"), s.VersionByID(1))
	check.Nil(s.VersionByID(2))
}

func TestFieldLayout(t *testing.T) {
	for _, tc := range []struct {
		typ     AttributeType
		decimal bool
		want    []string
	}{
		{AttributeText, false, []string{"value"}},
		{AttributeNumber, true, []string{"value", "unit_id"}},
		{AttributeRange, false, []string{"from", "to", "unit_id"}},
		{AttributeFile, false, []string{FileNameField, FileSizeField}},
		{AttributeDate, false, []string{"year", "month", "day"}},
		{AttributeTaxon, false, []string{"code", "scientific_name", "vernacular_name", "language_code", "language_variety"}},
	} {
		t.Run(tc.typ.String(), func(t *testing.T) {
			var got []string
			for _, f := range fieldLayout(tc.typ, tc.decimal) {
				got = append(got, f.Name)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}
