package errors

import (
	"fmt"
	"strings"
)

// ParameterErrorData contains structured data for parameter-related errors
type ParameterErrorData struct {
	Parameter string      `json:"parameter"`
	Value     interface{} `json:"value,omitempty"`
	Required  bool        `json:"required,omitempty"`
	Reason    string      `json:"reason,omitempty"`
}

// ValidationError creates a generic validation error
func ValidationError(message string) MCPError {
	return NewError(CodeValidationError, message, CategoryValidation, SeverityError)
}

// ValidationErrorf creates a generic validation error with formatting
func ValidationErrorf(format string, args ...interface{}) MCPError {
	return NewErrorf(CodeValidationError, CategoryValidation, SeverityError, format, args...)
}

// InvalidParameter creates an error for invalid parameter values
func InvalidParameter(param string, value interface{}, expected string) MCPError {
	return NewError(
		CodeInvalidParameter,
		fmt.Sprintf("Invalid parameter '%s': expected %s", param, expected),
		CategoryValidation,
		SeverityError,
	).WithData(&ParameterErrorData{
		Parameter: param,
		Value:     value,
		Reason:    fmt.Sprintf("expected %s", expected),
	})
}

// MissingParameter creates an error for missing required parameters
func MissingParameter(param string) MCPError {
	return NewError(
		CodeMissingParameter,
		fmt.Sprintf("Missing required parameter: %s", param),
		CategoryValidation,
		SeverityError,
	).WithData(&ParameterErrorData{
		Parameter: param,
		Required:  true,
	})
}

// InvalidLimit creates an error for a page size outside the allowed range
func InvalidLimit(limit, min, max int) MCPError {
	return NewError(
		CodeInvalidLimit,
		fmt.Sprintf("Limit must be between %d and %d, got %d", min, max, limit),
		CategoryValidation,
		SeverityError,
	).WithData(&ParameterErrorData{
		Parameter: "limit",
		Value:     limit,
		Reason:    fmt.Sprintf("out of range [%d, %d]", min, max),
	})
}

// UnknownDatabase creates an error for a database name outside the supported set
func UnknownDatabase(name string, valid []string) MCPError {
	return NewError(
		CodeUnknownDatabase,
		fmt.Sprintf("Invalid database '%s'. Must be one of: %s", name, strings.Join(valid, ", ")),
		CategoryValidation,
		SeverityError,
	).WithData(&ParameterErrorData{
		Parameter: "database",
		Value:     name,
		Reason:    "not a supported database",
	})
}

// UnknownFormat creates an error for a response format outside the supported set
func UnknownFormat(name string, valid []string) MCPError {
	return NewError(
		CodeUnknownFormat,
		fmt.Sprintf("Format must be one of: %s, got '%s'", strings.Join(valid, ", "), name),
		CategoryValidation,
		SeverityError,
	).WithData(&ParameterErrorData{
		Parameter: "format",
		Value:     name,
		Reason:    "not a supported format",
	})
}
