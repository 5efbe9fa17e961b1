// Package protocol defines the JSON-RPC 2.0 and MCP message types used by the
// UniProt MCP server.
//
// The server implements the subset of the Model Context Protocol needed for a
// tools-only server: lifecycle (initialize/initialized), tool discovery
// (listTools), tool invocation (callTool) and the ping utility. Messages are
// exchanged as newline-delimited JSON-RPC 2.0 over the transport layer.
package protocol
