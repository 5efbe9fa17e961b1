package protocol

const (
	// ProtocolRevision is the protocol revision implemented by this server
	ProtocolRevision = "2025-03-26"

	// Methods for lifecycle management
	MethodInitialize  = "initialize"
	MethodInitialized = "initialized"

	// Methods for server features
	MethodListTools = "listTools"
	MethodCallTool  = "callTool"

	// Methods for utilities
	MethodPing   = "ping"
	MethodCancel = "cancel"
)

// CapabilityType defines the types of capabilities in MCP
type CapabilityType string

const (
	// CapabilityTools indicates the server supports tools
	CapabilityTools CapabilityType = "tools"

	// CapabilityLogging indicates the server supports logging
	CapabilityLogging CapabilityType = "logging"

	// CapabilityPagination indicates the server supports pagination
	CapabilityPagination CapabilityType = "pagination"
)

// InitializeParams defines the parameters for the initialize request
type InitializeParams struct {
	ProtocolVersion string          `json:"protocolVersion"`
	Name            string          `json:"name"`
	Version         string          `json:"version"`
	Capabilities    map[string]bool `json:"capabilities"`
	ClientInfo      *ClientInfo     `json:"clientInfo,omitempty"`
}

// ClientInfo provides additional information about the client
type ClientInfo struct {
	Name     string `json:"name"`
	Version  string `json:"version"`
	Platform string `json:"platform,omitempty"`
}

// InitializeResult defines the response for the initialize request
type InitializeResult struct {
	ProtocolVersion string          `json:"protocolVersion"`
	Name            string          `json:"name"`
	Version         string          `json:"version"`
	Capabilities    map[string]bool `json:"capabilities"`
	ServerInfo      *ServerInfo     `json:"serverInfo,omitempty"`
	Instructions    string          `json:"instructions,omitempty"`
}

// ServerInfo provides additional information about the server
type ServerInfo struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
	Homepage    string `json:"homepage,omitempty"`
}

// InitializedParams is sent as a notification once the client is ready
type InitializedParams struct {
	// The notification carries no parameters.
}

// PingParams defines parameters for the ping request
type PingParams struct {
	// Optional timestamp from sender
	Timestamp int64 `json:"timestamp,omitempty"`
}

// PingResult is the response for ping
type PingResult struct {
	// The original timestamp if provided, otherwise the server's current timestamp
	Timestamp int64 `json:"timestamp"`
}

// CancelParams identifies an in-flight request to cancel
type CancelParams struct {
	ID interface{} `json:"id"`
}

// CancelResult reports whether the request was found and cancelled
type CancelResult struct {
	Cancelled bool `json:"cancelled"`
}

// PaginationParams for requests that support pagination
type PaginationParams struct {
	Limit  int    `json:"limit,omitempty"`
	Cursor string `json:"cursor,omitempty"`
}
