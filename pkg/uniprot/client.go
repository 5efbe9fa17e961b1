package uniprot

import (
	"context"
	"net/http"
	"time"

	mcperrors "github.com/ajitpratap0/uniprot-mcp-go/pkg/errors"
	"github.com/ajitpratap0/uniprot-mcp-go/pkg/logging"
	"github.com/ajitpratap0/uniprot-mcp-go/pkg/pagination"
)

// Stream is a lazy, single-pass sequence of search result records. Total
// reports the upstream's count of all matching records when it is known,
// which may only be after the first Next call has touched the source.
type Stream interface {
	pagination.RecordStream

	// Total returns the total number of matching records, or nil when the
	// source has not reported one
	Total() *int64
}

// Client is the query interface for one UniProt database
type Client interface {
	// Database returns the database this client queries
	Database() Database

	// Search runs a query and returns a lazy record stream. The stream is
	// not restartable; network failures during iteration surface as
	// SourceUnavailable errors from Next.
	Search(ctx context.Context, query string, fields []string) (Stream, error)

	// Fetch retrieves a single entry by identifier. A missing entry fails
	// with EntryNotFound; upstream failures with SourceUnavailable.
	Fetch(ctx context.Context, id string) (pagination.Record, error)
}

// UpstreamObserver receives a measurement for every upstream request.
// *observability.Metrics satisfies it.
type UpstreamObserver interface {
	ObserveUpstreamRequest(database, operation, status string, duration time.Duration)
}

// Config holds settings shared by all database clients
type Config struct {
	// BaseURL is the root of the UniProt REST API
	BaseURL string

	// HTTPClient is the client used for upstream requests
	HTTPClient *http.Client

	// BatchSize is the number of records requested per upstream page while
	// streaming search results
	BatchSize int

	// UserAgent is sent with every upstream request
	UserAgent string

	// Logger receives upstream request logging
	Logger logging.Logger

	// Metrics, when set, records per-request measurements
	Metrics UpstreamObserver
}

const (
	// DefaultBaseURL is the production UniProt REST endpoint
	DefaultBaseURL = "https://rest.uniprot.org"

	// DefaultBatchSize is the upstream page size used while streaming
	DefaultBatchSize = 500

	// DefaultTimeout bounds a single upstream HTTP request
	DefaultTimeout = 30 * time.Second

	defaultUserAgent = "uniprot-mcp-go"
)

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	}
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.UserAgent == "" {
		c.UserAgent = defaultUserAgent
	}
	if c.Logger == nil {
		c.Logger = logging.NewNop()
	}
	return c
}

// Registry is a fixed mapping from the closed database enum to its client.
// Lookup is validated before dispatch; there is no open-ended registration.
type Registry struct {
	clients map[Database]Client
}

// NewRegistry builds a registry with one REST client per supported database
func NewRegistry(cfg Config) *Registry {
	cfg = cfg.withDefaults()
	clients := make(map[Database]Client, len(Databases()))
	for _, db := range Databases() {
		clients[db] = newRESTClient(db, cfg)
	}
	return &Registry{clients: clients}
}

// Client returns the client for a database. Unknown values fail the same way
// ParseDatabase does so misuse cannot reach an upstream request.
func (r *Registry) Client(db Database) (Client, error) {
	client, ok := r.clients[db]
	if !ok {
		return nil, mcperrors.UnknownDatabase(string(db), DatabaseNames())
	}
	return client, nil
}
