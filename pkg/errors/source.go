package errors

import "fmt"

// SourceErrorData contains structured data for upstream source failures
type SourceErrorData struct {
	Database  string `json:"database,omitempty"`
	Operation string `json:"operation,omitempty"`
	Status    int    `json:"status,omitempty"`
}

// SourceUnavailable creates an error for an upstream data source that failed
// during a search or fetch. The failure is reported synchronously to the
// caller; no retry is attempted here.
func SourceUnavailable(database, operation string, cause error) MCPError {
	return WrapError(
		cause,
		CodeSourceUnavailable,
		fmt.Sprintf("UniProt %s %s failed", database, operation),
		CategorySource,
		SeverityError,
	).WithData(&SourceErrorData{
		Database:  database,
		Operation: operation,
	})
}

// SourceUnavailableStatus creates a SourceUnavailable error from an unexpected
// upstream HTTP status code
func SourceUnavailableStatus(database, operation string, status int) MCPError {
	return NewError(
		CodeSourceUnavailable,
		fmt.Sprintf("UniProt %s %s failed with status %d", database, operation, status),
		CategorySource,
		SeverityError,
	).WithData(&SourceErrorData{
		Database:  database,
		Operation: operation,
		Status:    status,
	})
}

// EntryNotFound creates an error for a fetch of an identifier that does not exist
func EntryNotFound(database, id string) MCPError {
	return NewError(
		CodeEntryNotFound,
		fmt.Sprintf("Entry '%s' not found in %s", id, database),
		CategoryNotFound,
		SeverityWarning,
	)
}

// IsSourceUnavailable reports whether an error is an upstream source failure
func IsSourceUnavailable(err error) bool {
	return IsCode(err, CodeSourceUnavailable)
}

// IsEntryNotFound reports whether an error is a missing-entry failure
func IsEntryNotFound(err error) bool {
	return IsCode(err, CodeEntryNotFound)
}
