package pagination

import mcperrors "github.com/ajitpratap0/uniprot-mcp-go/pkg/errors"

const (
	// DefaultLimit is the default page size for search results
	DefaultLimit = 10

	// MinLimit is the smallest allowed page size
	MinLimit = 1

	// MaxLimit is the largest allowed page size
	MaxLimit = 100
)

// ValidateLimit checks that a page size is within the allowed range
func ValidateLimit(limit int) error {
	if limit < MinLimit || limit > MaxLimit {
		return mcperrors.InvalidLimit(limit, MinLimit, MaxLimit)
	}
	return nil
}

// Page is the response envelope for one page of search results
type Page struct {
	Results    []Record `json:"results"`
	Total      *int64   `json:"total,omitempty"`
	NextCursor string   `json:"nextCursor,omitempty"`
}

// AssemblePage builds the response envelope for a collected page.
//
// A next page is considered possibly available iff a full page was returned.
// This is a heuristic: when the true result count is an exact multiple of
// limit and no total is known, the final page is full and a cursor is still
// emitted, so the next call legitimately returns an empty page. An empty page
// with no nextCursor is the authoritative termination signal. When total is
// known, the cursor is suppressed once offset+limit reaches it.
func AssemblePage(records []Record, offset, limit int, total *int64) Page {
	page := Page{Results: records}
	if page.Results == nil {
		page.Results = []Record{}
	}

	if total != nil {
		page.Total = total
	}

	if len(records) == limit {
		nextOffset := offset + limit
		if total == nil || int64(nextOffset) < *total {
			page.NextCursor = EncodeCursor(nextOffset)
		}
	}

	return page
}
