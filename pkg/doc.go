// Package pkg contains the building blocks of the UniProt MCP server.
//
// The server speaks the Model Context Protocol over stdio and exposes two
// tools: uniprot_search for paginated queries against the UniProt REST API,
// and uniprot_fetch for resolving batches of entry identifiers.
//
// # Sub-packages
//
//   - protocol: JSON-RPC and MCP message types
//   - transport: newline-delimited JSON transport over stdio
//   - server: request dispatch, initialization handshake, tool routing
//   - tools: the uniprot_search and uniprot_fetch tool implementations
//   - uniprot: REST client, database registry, batch resolution
//   - pagination: opaque cursor codec and record stream collection
//   - format: TOON and JSON result encoding
//   - errors: the error taxonomy shared across layers
//   - config: file and environment configuration
//   - observability: Prometheus metrics and OpenTelemetry tracing
//   - logging: structured logging and operation middleware
package pkg
