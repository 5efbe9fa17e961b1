package errors

// JSON-RPC 2.0 Standard Error Codes
const (
	// CodeParseError indicates invalid JSON was received by the server
	CodeParseError int = -32700

	// CodeInvalidRequest indicates the JSON sent is not a valid Request object
	CodeInvalidRequest int = -32600

	// CodeMethodNotFound indicates the method does not exist / is not available
	CodeMethodNotFound int = -32601

	// CodeInvalidParams indicates invalid method parameter(s)
	CodeInvalidParams int = -32602

	// CodeInternalError indicates internal JSON-RPC error
	CodeInternalError int = -32603
)

// Server-Specific Error Codes
const (
	// Server Initialization Errors (-32000 to -32099)
	CodeServerInitError int = -32000 // Error during server initialization
	CodeServerNotReady  int = -32001 // Server not ready to handle requests

	// Entry Errors (-32200 to -32299)
	CodeEntryNotFound int = -32200 // Requested entry not found

	// Source Errors (-32650 to -32699)
	CodeSourceUnavailable int = -32651 // Upstream data source unavailable or failed mid-iteration

	// Validation Errors (-32750 to -32799)
	CodeValidationError  int = -32750 // Generic validation error
	CodeMissingParameter int = -32751 // Required parameter missing
	CodeInvalidParameter int = -32752 // Parameter has invalid value
	CodeUnknownDatabase  int = -32756 // Database name not in the supported set
	CodeUnknownFormat    int = -32757 // Response format not in the supported set

	// Pagination Errors (-32800 to -32899)
	CodeInvalidCursor int = -32801 // Invalid pagination cursor
	CodeInvalidLimit  int = -32802 // Invalid pagination limit

	// Transport Errors (-32500 to -32599)
	CodeTransportError int = -32500 // Generic transport error
)

// ErrorCodeInfo provides human-readable information about error codes
type ErrorCodeInfo struct {
	Code        int
	Name        string
	Description string
	Category    Category
	Severity    Severity
}

// errorCodeRegistry maps error codes to their information
var errorCodeRegistry = map[int]ErrorCodeInfo{
	CodeParseError:     {CodeParseError, "ParseError", "Invalid JSON was received", CategoryProtocol, SeverityError},
	CodeInvalidRequest: {CodeInvalidRequest, "InvalidRequest", "Invalid Request object", CategoryProtocol, SeverityError},
	CodeMethodNotFound: {CodeMethodNotFound, "MethodNotFound", "Method does not exist", CategoryProtocol, SeverityError},
	CodeInvalidParams:  {CodeInvalidParams, "InvalidParams", "Invalid method parameters", CategoryValidation, SeverityError},
	CodeInternalError:  {CodeInternalError, "InternalError", "Internal JSON-RPC error", CategoryInternal, SeverityError},

	CodeServerInitError: {CodeServerInitError, "ServerInitError", "Server initialization failed", CategoryInternal, SeverityCritical},
	CodeServerNotReady:  {CodeServerNotReady, "ServerNotReady", "Server not ready", CategoryInternal, SeverityError},

	CodeEntryNotFound: {CodeEntryNotFound, "EntryNotFound", "Entry not found", CategoryNotFound, SeverityWarning},

	CodeSourceUnavailable: {CodeSourceUnavailable, "SourceUnavailable", "Upstream data source failed", CategorySource, SeverityError},

	CodeValidationError:  {CodeValidationError, "ValidationError", "Validation failed", CategoryValidation, SeverityError},
	CodeMissingParameter: {CodeMissingParameter, "MissingParameter", "Required parameter missing", CategoryValidation, SeverityError},
	CodeInvalidParameter: {CodeInvalidParameter, "InvalidParameter", "Invalid parameter value", CategoryValidation, SeverityError},
	CodeUnknownDatabase:  {CodeUnknownDatabase, "UnknownDatabase", "Unsupported database", CategoryValidation, SeverityError},
	CodeUnknownFormat:    {CodeUnknownFormat, "UnknownFormat", "Unsupported response format", CategoryValidation, SeverityError},

	CodeInvalidCursor: {CodeInvalidCursor, "InvalidCursor", "Invalid pagination cursor", CategoryPagination, SeverityError},
	CodeInvalidLimit:  {CodeInvalidLimit, "InvalidLimit", "Invalid pagination limit", CategoryPagination, SeverityError},

	CodeTransportError: {CodeTransportError, "TransportError", "Transport failure", CategoryTransport, SeverityError},
}

// GetErrorCodeInfo returns information about an error code
func GetErrorCodeInfo(code int) (ErrorCodeInfo, bool) {
	info, ok := errorCodeRegistry[code]
	return info, ok
}
