package schema

import "fmt"

// MalformedDocumentError reports a document whose overall shape cannot be
// compiled: unparseable text, a top level that is not a mapping, or a missing
// or misshapen declarations section. It aborts the document it occurs in.
type MalformedDocumentError struct {
	// Location identifies the document origin when known.
	Location string
	// Reason describes the defect.
	Reason string
	// Err holds the underlying decode error when one exists.
	Err error
}

func (e *MalformedDocumentError) Error() string {
	if e.Location != "" {
		return fmt.Sprintf("schema: malformed document %s: %s", e.Location, e.Reason)
	}
	return fmt.Sprintf("schema: malformed document: %s", e.Reason)
}

func (e *MalformedDocumentError) Unwrap() error {
	return e.Err
}
