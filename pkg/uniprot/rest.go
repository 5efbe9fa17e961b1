package uniprot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	mcperrors "github.com/ajitpratap0/uniprot-mcp-go/pkg/errors"
	"github.com/ajitpratap0/uniprot-mcp-go/pkg/logging"
	"github.com/ajitpratap0/uniprot-mcp-go/pkg/pagination"
)

// restClient queries one UniProt database over its REST API
type restClient struct {
	db     Database
	cfg    Config
	logger logging.Logger
}

func newRESTClient(db Database, cfg Config) *restClient {
	return &restClient{
		db:  db,
		cfg: cfg,
		logger: cfg.Logger.WithFields(
			logging.String("component", "uniprot"),
			logging.String("database", string(db)),
		),
	}
}

// Database returns the database this client queries
func (c *restClient) Database() Database {
	return c.db
}

// Search runs a query and returns a lazy record stream. No upstream request
// happens until the first Next call.
func (c *restClient) Search(ctx context.Context, query string, fields []string) (Stream, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("format", "json")
	params.Set("size", strconv.Itoa(c.cfg.BatchSize))
	if len(fields) > 0 {
		params.Set("fields", strings.Join(fields, ","))
	}

	first := fmt.Sprintf("%s/%s/search?%s", strings.TrimRight(c.cfg.BaseURL, "/"), c.db, params.Encode())
	return &searchStream{client: c, nextURL: first}, nil
}

// Fetch retrieves a single entry by identifier
func (c *restClient) Fetch(ctx context.Context, id string) (pagination.Record, error) {
	endpoint := fmt.Sprintf("%s/%s/%s?format=json", strings.TrimRight(c.cfg.BaseURL, "/"), c.db, url.PathEscape(id))

	body, _, err := c.get(ctx, endpoint, "fetch", id)
	if err != nil {
		return nil, err
	}

	var record pagination.Record
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, mcperrors.SourceUnavailable(string(c.db), "fetch", err).WithDetail("invalid response body")
	}
	return record, nil
}

// get performs one upstream request and returns the body and headers.
// When id is non-empty a 404 maps to EntryNotFound; any other non-2xx status
// and all transport failures map to SourceUnavailable.
func (c *restClient) get(ctx context.Context, endpoint, operation, id string) ([]byte, http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, nil, mcperrors.SourceUnavailable(string(c.db), operation, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	start := time.Now()
	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		c.logger.WithError(err).Warn("Upstream request failed", logging.String("operation", operation))
		c.observe(operation, "error", time.Since(start))
		return nil, nil, mcperrors.SourceUnavailable(string(c.db), operation, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("Upstream request completed",
		logging.String("operation", operation),
		logging.Int("status", resp.StatusCode),
		logging.Duration("duration", time.Since(start)),
	)
	c.observe(operation, strconv.Itoa(resp.StatusCode), time.Since(start))

	if resp.StatusCode == http.StatusNotFound && id != "" {
		return nil, nil, mcperrors.EntryNotFound(string(c.db), id)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, nil, mcperrors.SourceUnavailableStatus(string(c.db), operation, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, mcperrors.SourceUnavailable(string(c.db), operation, err)
	}
	return body, resp.Header, nil
}

func (c *restClient) observe(operation, status string, duration time.Duration) {
	if c.cfg.Metrics != nil {
		c.cfg.Metrics.ObserveUpstreamRequest(string(c.db), operation, status, duration)
	}
}

// searchResponse is the wire shape of a search result batch
type searchResponse struct {
	Results []pagination.Record `json:"results"`
}

// totalHeader carries the count of all matching records
const totalHeader = "x-total-results"

// searchStream pages through upstream result batches on demand. It is
// single-pass: once a batch is consumed it is gone, and exhaustion is
// terminal.
type searchStream struct {
	client  *restClient
	nextURL string
	buffer  []pagination.Record
	pos     int
	total   *int64
	done    bool
}

// Next returns the next record, fetching the next upstream batch when the
// buffered one is consumed. Returns io.EOF at exhaustion.
func (s *searchStream) Next(ctx context.Context) (pagination.Record, error) {
	for s.pos >= len(s.buffer) {
		if s.done || s.nextURL == "" {
			s.done = true
			return nil, io.EOF
		}
		if err := s.fetchBatch(ctx); err != nil {
			s.done = true
			return nil, err
		}
	}

	record := s.buffer[s.pos]
	s.pos++
	return record, nil
}

// Total returns the upstream-reported total, known after the first batch
func (s *searchStream) Total() *int64 {
	return s.total
}

func (s *searchStream) fetchBatch(ctx context.Context) error {
	body, headers, err := s.client.get(ctx, s.nextURL, "search", "")
	if err != nil {
		return err
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return mcperrors.SourceUnavailable(string(s.client.db), "search", err).WithDetail("invalid response body")
	}

	if s.total == nil {
		if raw := headers.Get(totalHeader); raw != "" {
			if total, err := strconv.ParseInt(raw, 10, 64); err == nil {
				s.total = &total
			}
		}
	}

	s.buffer = parsed.Results
	s.pos = 0
	s.nextURL = parseNextLink(headers.Get("Link"))
	if len(s.buffer) == 0 {
		s.done = true
	}
	return nil
}

// parseNextLink extracts the rel="next" target from a Link header, e.g.
// <https://rest.uniprot.org/uniprotkb/search?cursor=abc&size=500>; rel="next"
func parseNextLink(header string) string {
	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		if !strings.Contains(part, `rel="next"`) {
			continue
		}
		start := strings.Index(part, "<")
		end := strings.Index(part, ">")
		if start >= 0 && end > start {
			return part[start+1 : end]
		}
	}
	return ""
}
