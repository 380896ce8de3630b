// Package survey provides the survey metamodel a record is read against:
// the node definition tree (schema), its attribute field layouts, and the
// ordered list of model versions used to decide whether a definition
// applies to a given record.
//
// Definitions carry stable numeric ids. Two surveys describing different
// revisions of the same questionnaire share ids for the nodes they have
// in common, which lets a reader translate names found in an old document
// to definitions of the survey loaded today.
//
// Surveys are usually read from IDML-style XML with LoadXML, or built in
// code with New, AddVersion, AddRootEntity, AddEntity and AddAttribute.
package survey
