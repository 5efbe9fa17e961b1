package server

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mcperrors "github.com/ajitpratap0/uniprot-mcp-go/pkg/errors"
	"github.com/ajitpratap0/uniprot-mcp-go/pkg/protocol"
	"github.com/ajitpratap0/uniprot-mcp-go/pkg/transport"
)

// captureTransport records registered handlers so tests can invoke them
// directly.
type captureTransport struct {
	requestHandlers      map[string]transport.RequestHandler
	notificationHandlers map[string]transport.NotificationHandler
}

func newCaptureTransport() *captureTransport {
	return &captureTransport{
		requestHandlers:      make(map[string]transport.RequestHandler),
		notificationHandlers: make(map[string]transport.NotificationHandler),
	}
}

func (t *captureTransport) Start(ctx context.Context) error { return nil }
func (t *captureTransport) Stop(ctx context.Context) error  { return nil }
func (t *captureTransport) Send(data []byte) error          { return nil }

func (t *captureTransport) RegisterRequestHandler(method string, handler transport.RequestHandler) {
	t.requestHandlers[method] = handler
}

func (t *captureTransport) RegisterNotificationHandler(method string, handler transport.NotificationHandler) {
	t.notificationHandlers[method] = handler
}

func (t *captureTransport) call(ctx context.Context, method string, params string) (interface{}, error) {
	handler, ok := t.requestHandlers[method]
	if !ok {
		return nil, mcperrors.NewErrorf(
			mcperrors.CodeMethodNotFound,
			mcperrors.CategoryTransport,
			mcperrors.SeverityError,
			"method not found: %s", method,
		)
	}
	return handler(ctx, json.RawMessage(params))
}

// stubProvider is a minimal ToolsProvider for server-level tests
type stubProvider struct {
	tools   []protocol.Tool
	lastCal string
	result  *protocol.CallToolResult
	err     error
}

func (p *stubProvider) ListTools(ctx context.Context, category string, pagination *protocol.PaginationParams) ([]protocol.Tool, int, string, bool, error) {
	return p.tools, len(p.tools), "", false, nil
}

func (p *stubProvider) CallTool(ctx context.Context, name string, input json.RawMessage) (*protocol.CallToolResult, error) {
	p.lastCal = name
	return p.result, p.err
}

func newTestServer(t *testing.T, provider ToolsProvider) (*Server, *captureTransport) {
	t.Helper()
	ct := newCaptureTransport()
	s := New(ct,
		WithName("uniprot-mcp-test"),
		WithVersion("0.0.0"),
		WithToolsProvider(provider),
	)
	return s, ct
}

func initialize(t *testing.T, ct *captureTransport) {
	t.Helper()
	_, err := ct.call(context.Background(), protocol.MethodInitialize,
		`{"protocolVersion": "2025-03-26", "name": "test-client", "version": "1.0"}`)
	require.NoError(t, err)
}

func TestInitialize(t *testing.T) {
	_, ct := newTestServer(t, &stubProvider{})

	result, err := ct.call(context.Background(), protocol.MethodInitialize,
		`{"protocolVersion": "2025-03-26", "name": "test-client", "version": "1.0"}`)
	require.NoError(t, err)

	initResult, ok := result.(*protocol.InitializeResult)
	require.True(t, ok)
	assert.Equal(t, protocol.ProtocolRevision, initResult.ProtocolVersion)
	assert.Equal(t, "uniprot-mcp-test", initResult.Name)
	assert.True(t, initResult.Capabilities[string(protocol.CapabilityTools)])
	assert.True(t, initResult.Capabilities[string(protocol.CapabilityPagination)])
}

func TestListToolsRequiresInitialize(t *testing.T) {
	_, ct := newTestServer(t, &stubProvider{})

	_, err := ct.call(context.Background(), protocol.MethodListTools, `{}`)
	require.Error(t, err)
	assert.True(t, mcperrors.IsCode(err, mcperrors.CodeServerNotReady))
}

func TestListTools(t *testing.T) {
	provider := &stubProvider{
		tools: []protocol.Tool{
			{Name: "uniprot_search"},
			{Name: "uniprot_fetch"},
		},
	}
	_, ct := newTestServer(t, provider)
	initialize(t, ct)

	result, err := ct.call(context.Background(), protocol.MethodListTools, `{}`)
	require.NoError(t, err)

	listResult, ok := result.(*protocol.ListToolsResult)
	require.True(t, ok)
	assert.Len(t, listResult.Tools, 2)
	assert.Equal(t, 2, listResult.TotalCount)
	assert.False(t, listResult.HasMore)
}

func TestCallToolDispatch(t *testing.T) {
	provider := &stubProvider{
		result: &protocol.CallToolResult{Result: json.RawMessage(`{"ok": true}`)},
	}
	_, ct := newTestServer(t, provider)
	initialize(t, ct)

	result, err := ct.call(context.Background(), protocol.MethodCallTool,
		`{"name": "uniprot_search", "input": {"query": "insulin"}}`)
	require.NoError(t, err)

	callResult, ok := result.(*protocol.CallToolResult)
	require.True(t, ok)
	assert.Equal(t, "uniprot_search", provider.lastCal)
	assert.JSONEq(t, `{"ok": true}`, string(callResult.Result))
	assert.NotEmpty(t, callResult.OperationID)
}

func TestCallToolPropagatesTypedErrors(t *testing.T) {
	provider := &stubProvider{
		err: mcperrors.InvalidCursor("bad", "malformed encoding"),
	}
	_, ct := newTestServer(t, provider)
	initialize(t, ct)

	_, err := ct.call(context.Background(), protocol.MethodCallTool,
		`{"name": "uniprot_search", "input": {}}`)
	require.Error(t, err)
	assert.True(t, mcperrors.IsCode(err, mcperrors.CodeInvalidCursor))
}

func TestCallToolMissingName(t *testing.T) {
	_, ct := newTestServer(t, &stubProvider{})
	initialize(t, ct)

	_, err := ct.call(context.Background(), protocol.MethodCallTool, `{"input": {}}`)
	require.Error(t, err)
	assert.True(t, mcperrors.IsCode(err, mcperrors.CodeMissingParameter))
}

func TestCallToolWithoutProvider(t *testing.T) {
	ct := newCaptureTransport()
	New(ct)
	initialize(t, ct)

	_, err := ct.call(context.Background(), protocol.MethodCallTool,
		`{"name": "uniprot_search"}`)
	require.Error(t, err)
	assert.True(t, mcperrors.IsCode(err, mcperrors.CodeServerInitError))
}

func TestPingEchoesTimestamp(t *testing.T) {
	_, ct := newTestServer(t, &stubProvider{})

	result, err := ct.call(context.Background(), protocol.MethodPing, `{"timestamp": 12345}`)
	require.NoError(t, err)

	pingResult, ok := result.(*protocol.PingResult)
	require.True(t, ok)
	assert.Equal(t, int64(12345), pingResult.Timestamp)
}

func TestPingWithoutTimestamp(t *testing.T) {
	_, ct := newTestServer(t, &stubProvider{})

	result, err := ct.call(context.Background(), protocol.MethodPing, `{}`)
	require.NoError(t, err)

	pingResult := result.(*protocol.PingResult)
	assert.NotZero(t, pingResult.Timestamp)
}

func TestCancelAcknowledged(t *testing.T) {
	_, ct := newTestServer(t, &stubProvider{})

	result, err := ct.call(context.Background(), protocol.MethodCancel, `{"id": 7}`)
	require.NoError(t, err)

	cancelResult := result.(*protocol.CancelResult)
	assert.False(t, cancelResult.Cancelled)
}

func TestInitializedNotificationMarksReady(t *testing.T) {
	s, ct := newTestServer(t, &stubProvider{})

	require.False(t, s.isInitialized())
	require.NoError(t, ct.notificationHandlers[protocol.MethodInitialized](context.Background(), nil))
	assert.True(t, s.isInitialized())
}
