/*
Package collectxml is a set of libraries for reading survey records from
XML documents.

Records are trees of entities and typed attributes described by a
survey. Documents may have been written against an older copy of the
survey than the one loaded, so readers reconcile the two by definition
id, skip structure that no longer applies with a warning and keep
reading.

See the recordxml sub-directory for the reader, survey for schema
definitions and record for the record model. The recordcheck command
(cmd/recordcheck) reads documents from the command line.
*/
package collectxml
