package survey

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"github.com/pkg/errors"
)

var (
	xpSurvey   = xpath.MustCompile(`/survey`)
	xpProject  = xpath.MustCompile(`/survey/project`)
	xpURI      = xpath.MustCompile(`/survey/uri`)
	xpVersions = xpath.MustCompile(`/survey/versioning/version`)
	xpRoots    = xpath.MustCompile(`/survey/schema/entity`)
)

const versionDateLayout = "2006-01-02"

// LoadXML reads an IDML-style survey document:
//
//	<survey>
//	  <project>plots</project>
//	  <versioning>
//	    <version id="1" name="1.0" date="2019-01-01"/>
//	  </versioning>
//	  <schema>
//	    <entity id="1" name="plot">
//	      <number id="2" name="plot_no" key="true"/>
//	      <entity id="3" name="tree" multiple="true" since="1.0">
//	        <number id="4" name="dbh" type="real"/>
//	      </entity>
//	    </entity>
//	  </schema>
//	</survey>
//
// Elements other than entity and the attribute type names (text, number,
// range, boolean, code, coordinate, date, time, file, taxon) are ignored
// inside the schema, so labels and other presentation data may remain in
// the document.
func LoadXML(r io.Reader) (*Survey, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, errors.Wrap(err, "survey: parse")
	}
	if xmlquery.QuerySelector(doc, xpSurvey) == nil {
		return nil, errors.New("survey: missing <survey> element")
	}

	s := New("")
	if project := xmlquery.QuerySelector(doc, xpProject); project != nil {
		s.Name = strings.TrimSpace(project.InnerText())
	}
	if uri := xmlquery.QuerySelector(doc, xpURI); uri != nil {
		s.URI = strings.TrimSpace(uri.InnerText())
	}

	for _, v := range xmlquery.QuerySelectorAll(doc, xpVersions) {
		if err := loadVersion(s, v); err != nil {
			return nil, err
		}
	}

	for _, root := range xmlquery.QuerySelectorAll(doc, xpRoots) {
		id, name, opts, err := definitionAttrs(s, root)
		if err != nil {
			return nil, err
		}
		e, err := s.schema.AddRootEntity(id, name, opts...)
		if err != nil {
			return nil, errors.Wrap(err, "survey")
		}
		if err := loadChildren(s, e, root); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func loadVersion(s *Survey, n *xmlquery.Node) error {
	id, err := strconv.Atoi(strings.TrimSpace(n.SelectAttr("id")))
	if err != nil {
		return errors.Wrapf(err, "survey: version %q id", n.SelectAttr("name"))
	}
	dateText := n.SelectAttr("date")
	if dateText == "" {
		if d := n.SelectElement("date"); d != nil {
			dateText = d.InnerText()
		}
	}
	var date time.Time
	if dateText = strings.TrimSpace(dateText); dateText != "" {
		if date, err = time.Parse(versionDateLayout, dateText); err != nil {
			return errors.Wrapf(err, "survey: version %q date", n.SelectAttr("name"))
		}
	}
	_, err = s.AddVersion(id, strings.TrimSpace(n.SelectAttr("name")), date)
	return errors.Wrap(err, "survey")
}

func loadChildren(s *Survey, parent *EntityDefinition, n *xmlquery.Node) error {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != xmlquery.ElementNode {
			continue
		}
		var t AttributeType
		isEntity := c.Data == "entity"
		if !isEntity && t.UnmarshalText([]byte(c.Data)) != nil {
			continue
		}
		id, name, opts, err := definitionAttrs(s, c)
		if err != nil {
			return err
		}
		if isEntity {
			e, err := parent.AddEntity(id, name, opts...)
			if err != nil {
				return errors.Wrap(err, "survey")
			}
			if err := loadChildren(s, e, c); err != nil {
				return err
			}
			continue
		}
		if _, err := parent.AddAttribute(id, name, t, opts...); err != nil {
			return errors.Wrap(err, "survey")
		}
	}
	return nil
}

func definitionAttrs(s *Survey, n *xmlquery.Node) (id int, name string, opts []DefinitionOption, err error) {
	name = strings.TrimSpace(n.SelectAttr("name"))
	if id, err = strconv.Atoi(strings.TrimSpace(n.SelectAttr("id"))); err != nil {
		return 0, "", nil, errors.Wrapf(err, "survey: <%s name=%q> id", n.Data, name)
	}
	for _, va := range []struct {
		attr string
		opt  func(*ModelVersion) DefinitionOption
	}{
		{"since", Since},
		{"deprecated", Deprecated},
	} {
		vname := strings.TrimSpace(n.SelectAttr(va.attr))
		if vname == "" {
			continue
		}
		v := s.Version(vname)
		if v == nil {
			return 0, "", nil, errors.Errorf("survey: %s: %s version %q is not declared", name, va.attr, vname)
		}
		opts = append(opts, va.opt(v))
	}
	if boolAttr(n, "multiple") {
		opts = append(opts, Multiple())
	}
	if boolAttr(n, "key") {
		opts = append(opts, Key())
	}
	if strings.TrimSpace(n.SelectAttr("type")) == "real" {
		opts = append(opts, Decimal())
	}
	return id, name, opts, nil
}

func boolAttr(n *xmlquery.Node, name string) bool {
	v, _ := strconv.ParseBool(strings.TrimSpace(n.SelectAttr(name)))
	return v
}
