package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	mcperrors "github.com/ajitpratap0/uniprot-mcp-go/pkg/errors"
	"github.com/ajitpratap0/uniprot-mcp-go/pkg/format"
	"github.com/ajitpratap0/uniprot-mcp-go/pkg/logging"
	"github.com/ajitpratap0/uniprot-mcp-go/pkg/pagination"
	"github.com/ajitpratap0/uniprot-mcp-go/pkg/uniprot"
)

// FetchParams are the inputs of the uniprot_fetch tool
type FetchParams struct {
	IDs      []string `json:"ids"`
	Database string   `json:"database,omitempty"`
	Fields   []string `json:"fields,omitempty"`
	Format   string   `json:"format,omitempty"`
}

// FetchFailure reports an identifier that could not be resolved
type FetchFailure struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// FetchResult is the uniprot_fetch response envelope
type FetchResult struct {
	Results   []pagination.Record `json:"results"`
	Found     int                 `json:"found"`
	Requested int                 `json:"requested"`
	Failures  []FetchFailure      `json:"failures,omitempty"`
}

func (p *Provider) fetch(ctx context.Context, input json.RawMessage) (interface{}, format.Format, error) {
	var params FetchParams
	if err := json.Unmarshal(input, &params); err != nil {
		return nil, "", mcperrors.ValidationErrorf("invalid fetch input: %v", err)
	}

	db, err := uniprot.ParseDatabase(params.Database)
	if err != nil {
		return nil, "", err
	}

	outFmt, err := format.ParseFormat(params.Format)
	if err != nil {
		return nil, "", err
	}

	if len(params.IDs) == 0 {
		return nil, "", mcperrors.MissingParameter("ids")
	}

	ids := cleanIDs(params.IDs)
	if len(ids) == 0 {
		return nil, "", mcperrors.InvalidParameter("ids", params.IDs, "at least one non-blank identifier")
	}

	client, err := p.registry.Client(db)
	if err != nil {
		return nil, "", err
	}

	var envelope FetchResult
	if len(params.Fields) > 0 {
		envelope, err = p.fetchViaSearch(ctx, client, ids, params.Fields)
	} else {
		envelope, err = p.fetchDirect(ctx, client, ids)
	}
	if err != nil {
		return nil, "", err
	}

	p.logger.Debug("fetch completed",
		logging.String("database", string(db)),
		logging.Int("requested", envelope.Requested),
		logging.Int("found", envelope.Found))

	return envelope, outFmt, nil
}

// fetchDirect resolves each identifier through the entry endpoint. Failures
// are reported per identifier and never abort the batch.
func (p *Provider) fetchDirect(ctx context.Context, client uniprot.Client, ids []string) (FetchResult, error) {
	outcomes := uniprot.ResolveAll(ctx, client, ids, p.fetchConcurrency)

	envelope := FetchResult{
		Results:   make([]pagination.Record, 0, len(ids)),
		Requested: len(ids),
	}
	for _, outcome := range outcomes {
		switch outcome.Kind {
		case uniprot.OutcomeFound:
			envelope.Results = append(envelope.Results, outcome.Record)
		case uniprot.OutcomeNotFound:
			envelope.Failures = append(envelope.Failures, FetchFailure{
				ID:     outcome.ID,
				Status: string(uniprot.OutcomeNotFound),
			})
		case uniprot.OutcomeSourceError:
			envelope.Failures = append(envelope.Failures, FetchFailure{
				ID:     outcome.ID,
				Status: string(uniprot.OutcomeSourceError),
				Error:  outcome.Err.Error(),
			})
		}
	}
	envelope.Found = len(envelope.Results)
	return envelope, nil
}

// fetchViaSearch retrieves entries through the search endpoint, which is the
// only path that supports field selection. Identifiers absent from the
// results are reflected in the found count.
func (p *Provider) fetchViaSearch(ctx context.Context, client uniprot.Client, ids []string, fields []string) (FetchResult, error) {
	stream, err := client.Search(ctx, accessionQuery(ids), fields)
	if err != nil {
		return FetchResult{}, err
	}

	records, err := pagination.CollectPage(ctx, stream, 0, len(ids))
	if err != nil {
		return FetchResult{}, err
	}

	return FetchResult{
		Results:   records,
		Found:     len(records),
		Requested: len(ids),
	}, nil
}

// accessionQuery builds the search query matching a set of identifiers,
// e.g. accession:P12345 or accession:(P12345 OR P67890)
func accessionQuery(ids []string) string {
	if len(ids) == 1 {
		return fmt.Sprintf("accession:%s", ids[0])
	}
	return fmt.Sprintf("accession:(%s)", strings.Join(ids, " OR "))
}

func cleanIDs(ids []string) []string {
	clean := make([]string, 0, len(ids))
	for _, id := range ids {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			clean = append(clean, trimmed)
		}
	}
	return clean
}
