package errors

import "fmt"

// CursorErrorData contains structured data for cursor decoding failures
type CursorErrorData struct {
	Cursor string `json:"cursor,omitempty"`
	Reason string `json:"reason"`
}

// InvalidCursor creates an error for a cursor that failed decoding or validation.
// The reason distinguishes the failure mode (malformed encoding, malformed
// structure, missing offset field, invalid offset value); callers must discard
// the cursor and restart pagination from the beginning.
func InvalidCursor(cursor, reason string) MCPError {
	return NewError(
		CodeInvalidCursor,
		fmt.Sprintf("Invalid cursor: %s", reason),
		CategoryPagination,
		SeverityError,
	).WithData(&CursorErrorData{
		Cursor: cursor,
		Reason: reason,
	})
}

// IsInvalidCursor reports whether an error is a cursor decoding failure
func IsInvalidCursor(err error) bool {
	return IsCode(err, CodeInvalidCursor)
}
