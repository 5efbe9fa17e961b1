package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mcperrors "github.com/ajitpratap0/uniprot-mcp-go/pkg/errors"
	"github.com/ajitpratap0/uniprot-mcp-go/pkg/pagination"
	"github.com/ajitpratap0/uniprot-mcp-go/pkg/uniprot"
)

func newTestProvider(t *testing.T, handler http.Handler) *Provider {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	registry := uniprot.NewRegistry(uniprot.Config{BaseURL: ts.URL})
	return NewProvider(registry)
}

func callJSON(t *testing.T, p *Provider, tool string, input string) map[string]interface{} {
	t.Helper()
	result, err := p.CallTool(context.Background(), tool, json.RawMessage(input))
	require.NoError(t, err)
	require.NotNil(t, result)

	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(result.Result, &envelope))
	return envelope
}

func errorCode(t *testing.T, err error) int {
	t.Helper()
	mcpErr, ok := mcperrors.AsMCPError(err)
	require.True(t, ok, "expected MCPError, got %v", err)
	return mcpErr.Code()
}

func TestListTools(t *testing.T) {
	p := newTestProvider(t, http.NotFoundHandler())

	tools, total, cursor, hasMore, err := p.ListTools(context.Background(), "", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Empty(t, cursor)
	assert.False(t, hasMore)

	names := []string{tools[0].Name, tools[1].Name}
	assert.Contains(t, names, SearchToolName)
	assert.Contains(t, names, FetchToolName)

	for _, tool := range tools {
		assert.NotEmpty(t, tool.Description)
		assert.True(t, json.Valid(tool.InputSchema))
	}
}

func TestListToolsCategoryFilter(t *testing.T) {
	p := newTestProvider(t, http.NotFoundHandler())

	tools, total, _, _, err := p.ListTools(context.Background(), "uniprot", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, tools, 2)

	tools, total, _, _, err = p.ListTools(context.Background(), "genomics", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.Empty(t, tools)
}

func TestCallToolUnknownName(t *testing.T) {
	p := newTestProvider(t, http.NotFoundHandler())

	_, err := p.CallTool(context.Background(), "uniprot_align", nil)
	require.Error(t, err)
	assert.Equal(t, mcperrors.CodeMethodNotFound, errorCode(t, err))
}

func TestSearchValidation(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("validation failures must not reach the upstream")
	})
	p := newTestProvider(t, handler)

	tests := []struct {
		name     string
		input    string
		wantCode int
	}{
		{"unknown database", `{"query": "insulin", "database": "pdb"}`, mcperrors.CodeUnknownDatabase},
		{"missing query", `{}`, mcperrors.CodeMissingParameter},
		{"blank query", `{"query": "   "}`, mcperrors.CodeMissingParameter},
		{"limit too low", `{"query": "insulin", "limit": 0}`, mcperrors.CodeInvalidLimit},
		{"limit too high", `{"query": "insulin", "limit": 101}`, mcperrors.CodeInvalidLimit},
		{"unknown format", `{"query": "insulin", "format": "xml"}`, mcperrors.CodeUnknownFormat},
		{"bad cursor", `{"query": "insulin", "cursor": "not-a-cursor"}`, mcperrors.CodeInvalidCursor},
		{"malformed input", `{"query": 7}`, mcperrors.CodeValidationError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.CallTool(context.Background(), SearchToolName, json.RawMessage(tt.input))
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errorCode(t, err))
		})
	}
}

func searchUpstream(t *testing.T, total int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/uniprotkb/search", r.URL.Path)

		results := make([]map[string]interface{}, total)
		for i := range results {
			results[i] = map[string]interface{}{
				"primaryAccession": fmt.Sprintf("P%05d", i),
			}
		}
		w.Header().Set("x-total-results", strconv.Itoa(total))
		require.NoError(t, json.NewEncoder(w).Encode(map[string]interface{}{
			"results": results,
		}))
	})
}

func TestSearchReturnsPage(t *testing.T) {
	p := newTestProvider(t, searchUpstream(t, 25))

	envelope := callJSON(t, p, SearchToolName,
		`{"query": "insulin", "limit": 10, "format": "json"}`)

	results := envelope["results"].([]interface{})
	assert.Len(t, results, 10)
	assert.Equal(t, float64(25), envelope["total"])

	cursor, ok := envelope["nextCursor"].(string)
	require.True(t, ok, "full page below total must carry a cursor")
	offset, err := pagination.DecodeCursor(cursor)
	require.NoError(t, err)
	assert.Equal(t, 10, offset)
}

func TestSearchCursorSkipsPriorPages(t *testing.T) {
	p := newTestProvider(t, searchUpstream(t, 25))

	input := fmt.Sprintf(`{"query": "insulin", "limit": 10, "cursor": %q, "format": "json"}`,
		pagination.EncodeCursor(20))
	envelope := callJSON(t, p, SearchToolName, input)

	results := envelope["results"].([]interface{})
	require.Len(t, results, 5)
	first := results[0].(map[string]interface{})
	assert.Equal(t, "P00020", first["primaryAccession"])
	assert.NotContains(t, envelope, "nextCursor")
}

func TestSearchDefaultFormatIsTOON(t *testing.T) {
	p := newTestProvider(t, searchUpstream(t, 2))

	result, err := p.CallTool(context.Background(), SearchToolName,
		json.RawMessage(`{"query": "insulin"}`))
	require.NoError(t, err)

	var text string
	require.NoError(t, json.Unmarshal(result.Result, &text))
	assert.Contains(t, text, "results[2]{primaryAccession}:")
	assert.Contains(t, text, "total: 2")
}

func TestSearchUpstreamFailureSurfaces(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	p := newTestProvider(t, handler)

	_, err := p.CallTool(context.Background(), SearchToolName,
		json.RawMessage(`{"query": "insulin"}`))
	require.Error(t, err)
	assert.Equal(t, mcperrors.CodeSourceUnavailable, errorCode(t, err))
}

func TestFetchValidation(t *testing.T) {
	p := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("validation failures must not reach the upstream")
	}))

	tests := []struct {
		name     string
		input    string
		wantCode int
	}{
		{"missing ids", `{}`, mcperrors.CodeMissingParameter},
		{"empty ids", `{"ids": []}`, mcperrors.CodeMissingParameter},
		{"blank ids", `{"ids": ["", "  "]}`, mcperrors.CodeInvalidParameter},
		{"unknown database", `{"ids": ["P01308"], "database": "pdb"}`, mcperrors.CodeUnknownDatabase},
		{"unknown format", `{"ids": ["P01308"], "format": "xml"}`, mcperrors.CodeUnknownFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.CallTool(context.Background(), FetchToolName, json.RawMessage(tt.input))
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errorCode(t, err))
		})
	}
}

func TestFetchDirectMixedOutcomes(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/uniprotkb/P01308":
			fmt.Fprint(w, `{"primaryAccession": "P01308"}`)
		case "/uniprotkb/MISSING":
			w.WriteHeader(http.StatusNotFound)
		case "/uniprotkb/BROKEN":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})
	p := newTestProvider(t, handler)

	envelope := callJSON(t, p, FetchToolName,
		`{"ids": ["P01308", "MISSING", "BROKEN"], "format": "json"}`)

	assert.Equal(t, float64(1), envelope["found"])
	assert.Equal(t, float64(3), envelope["requested"])

	results := envelope["results"].([]interface{})
	require.Len(t, results, 1)
	assert.Equal(t, "P01308", results[0].(map[string]interface{})["primaryAccession"])

	failures := envelope["failures"].([]interface{})
	require.Len(t, failures, 2)
	byID := map[string]string{}
	for _, f := range failures {
		failure := f.(map[string]interface{})
		byID[failure["id"].(string)] = failure["status"].(string)
	}
	assert.Equal(t, "not_found", byID["MISSING"])
	assert.Equal(t, "source_error", byID["BROKEN"])
}

func TestFetchTrimsIdentifiers(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/uniprotkb/P01308", r.URL.Path)
		fmt.Fprint(w, `{"primaryAccession": "P01308"}`)
	})
	p := newTestProvider(t, handler)

	envelope := callJSON(t, p, FetchToolName,
		`{"ids": [" P01308 ", ""], "format": "json"}`)
	assert.Equal(t, float64(1), envelope["requested"])
	assert.Equal(t, float64(1), envelope["found"])
}

func TestFetchWithFieldsUsesSearch(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/uniprotkb/search", r.URL.Path)
		assert.Equal(t, "accession:(P01308 OR P01315)", r.URL.Query().Get("query"))
		assert.Equal(t, "accession,gene_names", r.URL.Query().Get("fields"))

		fmt.Fprint(w, `{"results": [
			{"primaryAccession": "P01308"},
			{"primaryAccession": "P01315"}
		]}`)
	})
	p := newTestProvider(t, handler)

	envelope := callJSON(t, p, FetchToolName,
		`{"ids": ["P01308", "P01315"], "fields": ["accession", "gene_names"], "format": "json"}`)

	assert.Equal(t, float64(2), envelope["found"])
	assert.Equal(t, float64(2), envelope["requested"])
	assert.NotContains(t, envelope, "failures")
}

func TestFetchWithFieldsSingleID(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "accession:P01308", r.URL.Query().Get("query"))
		fmt.Fprint(w, `{"results": [{"primaryAccession": "P01308"}]}`)
	})
	p := newTestProvider(t, handler)

	envelope := callJSON(t, p, FetchToolName,
		`{"ids": ["P01308"], "fields": ["accession"], "format": "json"}`)
	assert.Equal(t, float64(1), envelope["found"])
}

func TestAccessionQuery(t *testing.T) {
	assert.Equal(t, "accession:P01308", accessionQuery([]string{"P01308"}))
	assert.Equal(t, "accession:(A OR B OR C)", accessionQuery([]string{"A", "B", "C"}))
}
