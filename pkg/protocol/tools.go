package protocol

import (
	"encoding/json"
)

// Tool represents a tool in the MCP protocol
type Tool struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	InputSchema json.RawMessage `json:"inputSchema,omitempty"`
	Categories  []string        `json:"categories,omitempty"`
}

// ListToolsParams defines parameters for listing tools
type ListToolsParams struct {
	Category string `json:"category,omitempty"`
	PaginationParams
}

// ListToolsResult defines the response for listing tools
type ListToolsResult struct {
	Tools      []Tool `json:"tools"`
	TotalCount int    `json:"totalCount,omitempty"`
	NextCursor string `json:"nextCursor,omitempty"`
	HasMore    bool   `json:"hasMore"`
}

// CallToolParams defines parameters for calling a tool
type CallToolParams struct {
	Name  string          `json:"name"`
	Input json.RawMessage `json:"input,omitempty"`
}

// CallToolResult defines the response for tool calls
type CallToolResult struct {
	Result      json.RawMessage `json:"result,omitempty"`
	Error       string          `json:"error,omitempty"`
	OperationID string          `json:"operationId,omitempty"`
}
