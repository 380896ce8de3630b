package xmlutil

import "encoding/xml"

// IsNamespaceDecl returns true if n names an xmlns or xmlns:<prefix>
// declaration rather than a data attribute.
func IsNamespaceDecl(n xml.Name) bool {
	return n.Space == "xmlns" || (n.Space == "" && n.Local == "xmlns")
}
