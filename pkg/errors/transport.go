package errors

import "fmt"

// TransportErrorData contains structured data for transport errors
type TransportErrorData struct {
	TransportType string `json:"transport_type"`
	Operation     string `json:"operation,omitempty"`
}

// StdioTransportError creates an error for a stdio transport failure
func StdioTransportError(operation string, cause error) MCPError {
	return WrapError(
		cause,
		CodeTransportError,
		fmt.Sprintf("Stdio transport %s failed", operation),
		CategoryTransport,
		SeverityError,
	).WithData(&TransportErrorData{
		TransportType: "stdio",
		Operation:     operation,
	})
}

// TransportNotInitialized creates an error for use of a transport before setup
func TransportNotInitialized(transportType string) MCPError {
	return NewError(
		CodeTransportError,
		fmt.Sprintf("Transport %s not initialized", transportType),
		CategoryTransport,
		SeverityError,
	).WithData(&TransportErrorData{
		TransportType: transportType,
	})
}
