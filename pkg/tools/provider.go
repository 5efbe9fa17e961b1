// Package tools implements the UniProt tool surface: uniprot_search for
// paginated queries and uniprot_fetch for direct entry retrieval.
package tools

import (
	"context"
	"encoding/json"

	mcperrors "github.com/ajitpratap0/uniprot-mcp-go/pkg/errors"
	"github.com/ajitpratap0/uniprot-mcp-go/pkg/format"
	"github.com/ajitpratap0/uniprot-mcp-go/pkg/logging"
	"github.com/ajitpratap0/uniprot-mcp-go/pkg/protocol"
	"github.com/ajitpratap0/uniprot-mcp-go/pkg/uniprot"
)

const (
	// SearchToolName identifies the paginated search tool
	SearchToolName = "uniprot_search"

	// FetchToolName identifies the batch entry retrieval tool
	FetchToolName = "uniprot_fetch"
)

// Provider exposes the UniProt tools over the server's ToolsProvider
// contract.
type Provider struct {
	registry         *uniprot.Registry
	logger           logging.Logger
	fetchConcurrency int
}

// ProviderOption configures a Provider
type ProviderOption func(*Provider)

// WithLogger sets the logger for tool execution
func WithLogger(logger logging.Logger) ProviderOption {
	return func(p *Provider) {
		p.logger = logger
	}
}

// WithFetchConcurrency bounds parallel upstream fetches during batch
// resolution. Zero or negative selects the default.
func WithFetchConcurrency(n int) ProviderOption {
	return func(p *Provider) {
		p.fetchConcurrency = n
	}
}

// NewProvider creates a Provider backed by the given client registry
func NewProvider(registry *uniprot.Registry, opts ...ProviderOption) *Provider {
	p := &Provider{
		registry: registry,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ListTools returns the tool declarations. The tool set is small and fixed,
// so pagination always reports a single complete page.
func (p *Provider) ListTools(ctx context.Context, category string, pagination *protocol.PaginationParams) ([]protocol.Tool, int, string, bool, error) {
	declared := []protocol.Tool{searchToolDecl, fetchToolDecl}

	tools := make([]protocol.Tool, 0, len(declared))
	for _, tool := range declared {
		if category != "" && !hasCategory(tool, category) {
			continue
		}
		tools = append(tools, tool)
	}

	return tools, len(tools), "", false, nil
}

// CallTool dispatches a tool invocation by name
func (p *Provider) CallTool(ctx context.Context, name string, input json.RawMessage) (*protocol.CallToolResult, error) {
	if len(input) == 0 {
		input = json.RawMessage("{}")
	}

	var (
		envelope interface{}
		outFmt   format.Format
		err      error
	)

	switch name {
	case SearchToolName:
		envelope, outFmt, err = p.search(ctx, input)
	case FetchToolName:
		envelope, outFmt, err = p.fetch(ctx, input)
	default:
		return nil, mcperrors.NewErrorf(
			mcperrors.CodeMethodNotFound,
			mcperrors.CategoryValidation,
			mcperrors.SeverityError,
			"unknown tool: %s", name,
		)
	}
	if err != nil {
		p.logger.Warn("tool call failed",
			logging.String("tool", name),
			logging.ErrorField(err))
		return nil, err
	}

	result, err := format.Encode(envelope, outFmt)
	if err != nil {
		return nil, err
	}

	return &protocol.CallToolResult{Result: result}, nil
}

func hasCategory(tool protocol.Tool, category string) bool {
	for _, c := range tool.Categories {
		if c == category {
			return true
		}
	}
	return false
}
