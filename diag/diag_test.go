package diag

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andaru/collectxml/record"
)

func TestDiagnostic(t *testing.T) {
	for _, tc := range []struct {
		diag Diagnostic

		error string
		xml   string
		json  string
	}{
		{
			diag:  UndefinedNode("/plot/unknown_tag", WithStep(record.StepEntry)),
			error: "warning undefined-node step:entry path:/plot/unknown_tag Undefined node",
			xml:   "<diagnostic><severity>warning</severity><kind>undefined-node</kind><step>entry</step><path>/plot/unknown_tag</path><message>Undefined node</message></diagnostic>",
			json:  `{"severity":"warning","kind":"undefined-node","step":"entry","path":"/plot/unknown_tag","message":"Undefined node"}`,
		},

		{
			diag:  InvalidValue("/plot/tree[1]/dbh[1]/value", WithMessage(`invalid real value "abc" for field value`)),
			error: `warning invalid-value path:/plot/tree[1]/dbh[1]/value invalid real value "abc" for field value`,
			xml:   "<diagnostic><severity>warning</severity><kind>invalid-value</kind><path>/plot/tree[1]/dbh[1]/value</path><message>invalid real value &#34;abc&#34; for field value</message></diagnostic>",
			json:  `{"severity":"warning","kind":"invalid-value","path":"/plot/tree[1]/dbh[1]/value","message":"invalid real value \"abc\" for field value"}`,
		},

		{
			diag:  Fatal("root element", WithError(errors.New("unknown version"))),
			error: "failure fatal path:root element unknown version",
			xml:   "<diagnostic><severity>failure</severity><kind>fatal</kind><path>root element</path><message>unknown version</message></diagnostic>",
			json:  `{"severity":"failure","kind":"fatal","path":"root element","message":"unknown version"}`,
		},

		{
			diag:  Malformed(""),
			error: "failure malformed",
			xml:   "<diagnostic><severity>failure</severity><kind>malformed</kind></diagnostic>",
			json:  `{"severity":"failure","kind":"malformed"}`,
		},
	} {
		t.Run(tc.error, func(t *testing.T) {
			// confirm basic marshaling works for XML and JSON
			check := assert.New(t)
			bXML, _ := xml.Marshal(tc.diag)
			bJSON, _ := json.Marshal(tc.diag)
			check.Equal(tc.error, tc.diag.Error())
			check.Equal(tc.json, string(bJSON))
			check.Equal(tc.xml, string(bXML))

			// confirm unmarshaling restores the original value
			dv := Diagnostic{}
			if check.NoError(xml.Unmarshal(bXML, &dv)) {
				dv.XMLName = xml.Name{}
				check.Equal(tc.diag, dv)
			}
			dv = Diagnostic{}
			if check.NoError(json.Unmarshal(bJSON, &dv)) {
				check.Equal(tc.diag, dv)
			}
		})
	}
}

func TestKindIsField(t *testing.T) {
	assert.True(t, KindInvalidValue.IsField())
	assert.True(t, KindUnknownField.IsField())
	assert.False(t, KindUndefinedNode.IsField())
	assert.Equal(t, "Kind(42)", Kind(42).String())
}
