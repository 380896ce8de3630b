// Package recordxml reads survey records from XML documents.
//
// An Unmarshaller holds the current survey and reads documents that may
// have been written against an older copy of it (the record survey).
// Definitions are matched across the two surveys by numeric id, so renamed
// nodes are still found. Structure the current survey does not define, or
// that does not apply to the record's model version, is skipped and
// reported as a warning rather than rejected:
//
//	u := recordxml.New(current,
//		recordxml.WithRecordSurvey(published),
//		recordxml.WithUserResolver(users.NewResolver(dir)))
//	res, err := u.Unmarshal(ctx, f)
//	if err != nil {
//		return err // context cancelled
//	}
//	for _, w := range res.Warnings {
//		log.Println(w)
//	}
//
// Each document is processed by a Driver, a state machine advanced one
// stream.Event at a time. Drivers are created per document and are not
// safe for concurrent use; an Unmarshaller is.
package recordxml
