package uniprot

import (
	"context"

	"golang.org/x/sync/errgroup"

	mcperrors "github.com/ajitpratap0/uniprot-mcp-go/pkg/errors"
	"github.com/ajitpratap0/uniprot-mcp-go/pkg/pagination"
)

// OutcomeKind classifies the result of resolving one identifier
type OutcomeKind string

const (
	// OutcomeFound means the entry was retrieved
	OutcomeFound OutcomeKind = "found"

	// OutcomeNotFound means the identifier does not exist in the database
	OutcomeNotFound OutcomeKind = "not_found"

	// OutcomeSourceError means the upstream failed while resolving this
	// identifier
	OutcomeSourceError OutcomeKind = "source_error"
)

// Outcome is the per-identifier result of a batch resolution
type Outcome struct {
	ID     string
	Kind   OutcomeKind
	Record pagination.Record
	Err    error
}

// defaultFetchConcurrency bounds parallel upstream fetches in a batch
const defaultFetchConcurrency = 4

// ResolveAll resolves a batch of identifiers best-effort: every identifier
// gets an outcome (Found, NotFound, or SourceError) and no single failure
// aborts the batch. Outcomes are returned in input order. Partial success is
// the expected common case; callers aggregate the outcomes into found and
// requested counts.
func ResolveAll(ctx context.Context, client Client, ids []string, concurrency int) []Outcome {
	if concurrency <= 0 {
		concurrency = defaultFetchConcurrency
	}

	outcomes := make([]Outcome, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			record, err := client.Fetch(gctx, id)
			switch {
			case err == nil:
				outcomes[i] = Outcome{ID: id, Kind: OutcomeFound, Record: record}
			case mcperrors.IsEntryNotFound(err):
				outcomes[i] = Outcome{ID: id, Kind: OutcomeNotFound, Err: err}
			default:
				outcomes[i] = Outcome{ID: id, Kind: OutcomeSourceError, Err: err}
			}
			// Always nil: item failures are outcomes, not batch failures
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

// FoundRecords extracts the retrieved records from a batch of outcomes,
// preserving order
func FoundRecords(outcomes []Outcome) []pagination.Record {
	records := make([]pagination.Record, 0, len(outcomes))
	for _, outcome := range outcomes {
		if outcome.Kind == OutcomeFound {
			records = append(records, outcome.Record)
		}
	}
	return records
}
