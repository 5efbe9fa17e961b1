package tools

import (
	"context"
	"encoding/json"
	"strings"

	mcperrors "github.com/ajitpratap0/uniprot-mcp-go/pkg/errors"
	"github.com/ajitpratap0/uniprot-mcp-go/pkg/format"
	"github.com/ajitpratap0/uniprot-mcp-go/pkg/logging"
	"github.com/ajitpratap0/uniprot-mcp-go/pkg/pagination"
	"github.com/ajitpratap0/uniprot-mcp-go/pkg/uniprot"
)

// SearchParams are the inputs of the uniprot_search tool
type SearchParams struct {
	Query    string   `json:"query"`
	Database string   `json:"database,omitempty"`
	Limit    *int     `json:"limit,omitempty"`
	Fields   []string `json:"fields,omitempty"`
	Cursor   string   `json:"cursor,omitempty"`
	Format   string   `json:"format,omitempty"`
}

func (p *Provider) search(ctx context.Context, input json.RawMessage) (interface{}, format.Format, error) {
	var params SearchParams
	if err := json.Unmarshal(input, &params); err != nil {
		return nil, "", mcperrors.ValidationErrorf("invalid search input: %v", err)
	}

	db, err := uniprot.ParseDatabase(params.Database)
	if err != nil {
		return nil, "", err
	}

	if strings.TrimSpace(params.Query) == "" {
		return nil, "", mcperrors.MissingParameter("query")
	}

	limit := pagination.DefaultLimit
	if params.Limit != nil {
		limit = *params.Limit
		if err := pagination.ValidateLimit(limit); err != nil {
			return nil, "", err
		}
	}

	outFmt, err := format.ParseFormat(params.Format)
	if err != nil {
		return nil, "", err
	}

	offset := 0
	if params.Cursor != "" {
		offset, err = pagination.DecodeCursor(params.Cursor)
		if err != nil {
			return nil, "", err
		}
	}

	client, err := p.registry.Client(db)
	if err != nil {
		return nil, "", err
	}

	stream, err := client.Search(ctx, params.Query, params.Fields)
	if err != nil {
		return nil, "", err
	}

	records, err := pagination.CollectPage(ctx, stream, offset, limit)
	if err != nil {
		return nil, "", err
	}

	page := pagination.AssemblePage(records, offset, limit, stream.Total())

	p.logger.Debug("search completed",
		logging.String("database", string(db)),
		logging.Int("offset", offset),
		logging.Int("limit", limit),
		logging.Int("returned", len(page.Results)),
		logging.Bool("has_more", page.NextCursor != ""))

	return page, outFmt, nil
}
