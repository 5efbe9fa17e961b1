package server

import (
	"context"
	"encoding/json"

	"github.com/ajitpratap0/uniprot-mcp-go/pkg/protocol"
)

// ToolsProvider supplies the tool declarations and executes tool calls
type ToolsProvider interface {
	// ListTools returns the available tools, optionally filtered by
	// category, along with total count, next cursor and has-more flag
	ListTools(ctx context.Context, category string, pagination *protocol.PaginationParams) ([]protocol.Tool, int, string, bool, error)

	// CallTool executes a tool by name
	CallTool(ctx context.Context, name string, input json.RawMessage) (*protocol.CallToolResult, error)
}
