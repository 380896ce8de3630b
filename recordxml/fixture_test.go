package recordxml

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/andaru/collectxml/record"
	"github.com/andaru/collectxml/survey"
	"github.com/andaru/collectxml/users"
)

// plotNames names the plot survey's definitions and versions by id.
type plotNames struct {
	survey   string
	versions [3]string
	defs     map[int]string
}

var currentNames = plotNames{
	survey:   "plots",
	versions: [3]string{"1.0", "2.0", "2.1"},
	defs: map[int]string{
		1: "plot", 2: "plot_no", 3: "tree", 4: "dbh", 5: "species",
		6: "alive", 7: "height", 8: "crown", 9: "photo", 10: "note",
	},
}

// publishedNames is an earlier copy of the plot survey, in French.
var publishedNames = plotNames{
	survey:   "placettes",
	versions: [3]string{"r1", "r2", "r3"},
	defs: map[int]string{
		1: "placette", 2: "numero", 3: "arbre", 4: "diametre", 5: "espece",
		6: "vivant", 7: "hauteur", 8: "houppier", 9: "photo", 10: "note",
	},
}

// newPlotSurvey builds the plot survey. height is deprecated in the third
// version, which introduces crown.
func newPlotSurvey(t *testing.T, names plotNames) *survey.Survey {
	t.Helper()
	s := survey.New(names.survey)
	var versions []*survey.ModelVersion
	for i, name := range names.versions {
		v, err := s.AddVersion(i+1, name, time.Date(2019+i, 1, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		versions = append(versions, v)
	}
	n := names.defs

	plot, err := s.Schema().AddRootEntity(1, n[1])
	require.NoError(t, err)
	_, err = plot.AddAttribute(2, n[2], survey.AttributeNumber, survey.Key())
	require.NoError(t, err)
	tree, err := plot.AddEntity(3, n[3], survey.Multiple())
	require.NoError(t, err)
	for _, add := range []struct {
		id   int
		t    survey.AttributeType
		opts []survey.DefinitionOption
	}{
		{4, survey.AttributeNumber, []survey.DefinitionOption{survey.Decimal()}},
		{5, survey.AttributeCode, nil},
		{6, survey.AttributeBoolean, nil},
		{7, survey.AttributeNumber, []survey.DefinitionOption{survey.Decimal(), survey.Deprecated(versions[2])}},
		{8, survey.AttributeText, []survey.DefinitionOption{survey.Since(versions[2])}},
	} {
		_, err = tree.AddAttribute(add.id, n[add.id], add.t, add.opts...)
		require.NoError(t, err)
	}
	_, err = plot.AddAttribute(9, n[9], survey.AttributeFile)
	require.NoError(t, err)
	_, err = plot.AddAttribute(10, n[10], survey.AttributeText)
	require.NoError(t, err)
	return s
}

// attribute returns the attribute at the path of names, taking the first
// child at each step.
func attribute(t *testing.T, rec *record.Record, names ...string) *record.Attribute {
	t.Helper()
	e := rec.Root
	for i, name := range names {
		n := e.Child(name, 0)
		require.NotNil(t, n, "no %s below %s", name, e.Path())
		if i == len(names)-1 {
			a, ok := n.(*record.Attribute)
			require.True(t, ok, "%s is not an attribute", n.Path())
			return a
		}
		e, _ = n.(*record.Entity)
		require.NotNil(t, e, "%s is not an entity", n.Path())
	}
	return nil
}

type failingDirectory struct{ users.Directory }

func (failingDirectory) LoadByUserName(context.Context, string) (*users.User, error) {
	return nil, nil
}

func (failingDirectory) InsertUser(context.Context, string, string, users.Role) (*users.User, error) {
	return nil, errors.New("disk full")
}
