package ingest

import "fmt"

// MalformedError reports CSV input that is structurally unreadable: no header
// row, or a header that does not match the property column schema.
type MalformedError struct {
	Reason string
}

func (e *MalformedError) Error() string {
	return "malformed csv: " + e.Reason
}

// RowError reports a data row that failed to parse. Row is the 1-based index
// of the data row (the header does not count), matching the ids the row would
// have received.
type RowError struct {
	Row    int
	Reason string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
}
