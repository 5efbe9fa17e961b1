package uniprot

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mcperrors "github.com/ajitpratap0/uniprot-mcp-go/pkg/errors"
	"github.com/ajitpratap0/uniprot-mcp-go/pkg/pagination"
)

// fakeClient resolves fetches from a fixed map; absent entries are NotFound
// unless listed in failing
type fakeClient struct {
	db      Database
	entries map[string]pagination.Record
	failing map[string]bool
}

func (c *fakeClient) Database() Database { return c.db }

func (c *fakeClient) Search(ctx context.Context, query string, fields []string) (Stream, error) {
	return nil, mcperrors.SourceUnavailable(string(c.db), "search", io.ErrUnexpectedEOF)
}

func (c *fakeClient) Fetch(ctx context.Context, id string) (pagination.Record, error) {
	if c.failing[id] {
		return nil, mcperrors.SourceUnavailable(string(c.db), "fetch", io.ErrUnexpectedEOF)
	}
	record, ok := c.entries[id]
	if !ok {
		return nil, mcperrors.EntryNotFound(string(c.db), id)
	}
	return record, nil
}

func TestResolveAllMixedOutcomes(t *testing.T) {
	client := &fakeClient{
		db: DatabaseUniProtKB,
		entries: map[string]pagination.Record{
			"P00001": {"primaryAccession": "P00001"},
			"P00003": {"primaryAccession": "P00003"},
		},
		failing: map[string]bool{"P00002": true},
	}

	outcomes := ResolveAll(context.Background(), client, []string{"P00001", "P00002", "MISSING", "P00003"}, 2)
	require.Len(t, outcomes, 4)

	// Outcomes keep input order regardless of fetch concurrency
	assert.Equal(t, OutcomeFound, outcomes[0].Kind)
	assert.Equal(t, "P00001", outcomes[0].ID)

	assert.Equal(t, OutcomeSourceError, outcomes[1].Kind)
	assert.True(t, mcperrors.IsSourceUnavailable(outcomes[1].Err))

	assert.Equal(t, OutcomeNotFound, outcomes[2].Kind)
	assert.True(t, mcperrors.IsEntryNotFound(outcomes[2].Err))

	assert.Equal(t, OutcomeFound, outcomes[3].Kind)
}

func TestResolveAllFailuresDoNotAbortBatch(t *testing.T) {
	client := &fakeClient{
		db:      DatabaseUniParc,
		entries: map[string]pagination.Record{"UPI0000000001": {"uniParcId": "UPI0000000001"}},
		failing: map[string]bool{"UPI0000000002": true, "UPI0000000003": true},
	}

	outcomes := ResolveAll(context.Background(), client, []string{"UPI0000000002", "UPI0000000003", "UPI0000000001"}, 1)
	found := FoundRecords(outcomes)
	require.Len(t, found, 1)
	assert.Equal(t, "UPI0000000001", found[0]["uniParcId"])
}

func TestResolveAllEmpty(t *testing.T) {
	client := &fakeClient{db: DatabaseUniProtKB}
	outcomes := ResolveAll(context.Background(), client, nil, 0)
	assert.Empty(t, outcomes)
}

func TestFoundRecordsPreservesOrder(t *testing.T) {
	outcomes := []Outcome{
		{ID: "a", Kind: OutcomeFound, Record: pagination.Record{"id": "a"}},
		{ID: "b", Kind: OutcomeNotFound},
		{ID: "c", Kind: OutcomeFound, Record: pagination.Record{"id": "c"}},
	}
	found := FoundRecords(outcomes)
	require.Len(t, found, 2)
	assert.Equal(t, "a", found[0]["id"])
	assert.Equal(t, "c", found[1]["id"])
}
