// Package server wires the protocol handlers to a transport and a tools
// provider, forming the MCP server the binary runs.
package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	mcperrors "github.com/ajitpratap0/uniprot-mcp-go/pkg/errors"
	"github.com/ajitpratap0/uniprot-mcp-go/pkg/logging"
	"github.com/ajitpratap0/uniprot-mcp-go/pkg/observability"
	"github.com/ajitpratap0/uniprot-mcp-go/pkg/protocol"
	"github.com/ajitpratap0/uniprot-mcp-go/pkg/transport"
)

// Server exposes the tool surface over an MCP transport
type Server struct {
	transport   transport.Transport
	name        string
	version     string
	description string

	capabilities  map[string]bool
	toolsProvider ToolsProvider

	logger     logging.Logger
	middleware *logging.OperationMiddleware
	metrics    *observability.Metrics
	tracer     trace.Tracer

	initializedLock sync.RWMutex
	initialized     bool
	clientInfo      *protocol.ClientInfo
}

// ServerOption configures the server
type ServerOption func(*Server)

// WithName sets the server name reported to clients
func WithName(name string) ServerOption {
	return func(s *Server) {
		s.name = name
	}
}

// WithVersion sets the server version reported to clients
func WithVersion(version string) ServerOption {
	return func(s *Server) {
		s.version = version
	}
}

// WithDescription sets the server description reported to clients
func WithDescription(description string) ServerOption {
	return func(s *Server) {
		s.description = description
	}
}

// WithToolsProvider sets the provider backing listTools and callTool
func WithToolsProvider(provider ToolsProvider) ServerOption {
	return func(s *Server) {
		s.toolsProvider = provider
	}
}

// WithLogger sets the structured logger
func WithLogger(logger logging.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics enables request metrics collection
func WithMetrics(metrics *observability.Metrics) ServerOption {
	return func(s *Server) {
		s.metrics = metrics
	}
}

// WithTracer enables tracing of tool calls
func WithTracer(tracer trace.Tracer) ServerOption {
	return func(s *Server) {
		s.tracer = tracer
	}
}

// New creates a server bound to the given transport and registers all
// protocol handlers.
func New(t transport.Transport, options ...ServerOption) *Server {
	s := &Server{
		transport: t,
		name:      "uniprot-mcp",
		version:   "1.0.0",
		capabilities: map[string]bool{
			string(protocol.CapabilityTools):      true,
			string(protocol.CapabilityPagination): true,
			string(protocol.CapabilityLogging):    true,
		},
		logger: logging.NewNop(),
	}

	for _, option := range options {
		option(s)
	}
	s.middleware = logging.NewOperationMiddleware(s.logger)

	t.RegisterRequestHandler(protocol.MethodInitialize, s.wrap(protocol.MethodInitialize, s.handleInitialize))
	t.RegisterNotificationHandler(protocol.MethodInitialized, s.handleInitialized)
	t.RegisterRequestHandler(protocol.MethodPing, s.wrap(protocol.MethodPing, s.handlePing))
	t.RegisterRequestHandler(protocol.MethodCancel, s.wrap(protocol.MethodCancel, s.handleCancel))
	t.RegisterRequestHandler(protocol.MethodListTools, s.wrap(protocol.MethodListTools, s.handleListTools))
	t.RegisterRequestHandler(protocol.MethodCallTool, s.wrap(protocol.MethodCallTool, s.handleCallTool))

	return s
}

// Start runs the server until the context is canceled or the client
// disconnects.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("server starting",
		logging.String("name", s.name),
		logging.String("version", s.version))
	return s.transport.Start(ctx)
}

// Stop shuts the server down and flushes pending output
func (s *Server) Stop() error {
	s.logger.Info("server stopping")
	return s.transport.Stop(context.Background())
}

// wrap adapts a raw handler to the transport signature with operation
// logging around it.
func (s *Server) wrap(method string, handler transport.RequestHandler) transport.RequestHandler {
	wrapped := s.middleware.Wrap(method, func(ctx context.Context, params interface{}) (interface{}, error) {
		raw, _ := params.(json.RawMessage)
		return handler(ctx, raw)
	})
	return func(ctx context.Context, params json.RawMessage) (interface{}, error) {
		return wrapped(ctx, params)
	}
}

func (s *Server) isInitialized() bool {
	s.initializedLock.RLock()
	defer s.initializedLock.RUnlock()
	return s.initialized
}

func (s *Server) requireInitialized(method string) error {
	if !s.isInitialized() {
		return mcperrors.NewErrorf(
			mcperrors.CodeServerNotReady,
			mcperrors.CategoryTransport,
			mcperrors.SeverityError,
			"server not initialized, call %s first", protocol.MethodInitialize,
		).WithContext(&mcperrors.Context{
			Component: "Server",
			Method:    method,
			Timestamp: time.Now(),
		})
	}
	return nil
}

func (s *Server) handleInitialize(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var initParams protocol.InitializeParams
	if len(params) > 0 {
		if err := json.Unmarshal(params, &initParams); err != nil {
			return nil, mcperrors.ValidationErrorf("invalid initialize params: %v", err)
		}
	}

	s.initializedLock.Lock()
	s.clientInfo = initParams.ClientInfo
	s.initialized = true
	s.initializedLock.Unlock()

	s.logger.Info("client connected",
		logging.String("client", initParams.Name),
		logging.String("client_version", initParams.Version))

	return &protocol.InitializeResult{
		ProtocolVersion: protocol.ProtocolRevision,
		Name:            s.name,
		Version:         s.version,
		Capabilities:    s.capabilities,
		ServerInfo: &protocol.ServerInfo{
			Name:        s.name,
			Version:     s.version,
			Description: s.description,
		},
	}, nil
}

func (s *Server) handleInitialized(ctx context.Context, params json.RawMessage) error {
	s.initializedLock.Lock()
	s.initialized = true
	s.initializedLock.Unlock()

	s.logger.Debug("connection initialized")
	return nil
}

func (s *Server) handlePing(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var pingParams protocol.PingParams
	if len(params) > 0 {
		if err := json.Unmarshal(params, &pingParams); err != nil {
			return nil, mcperrors.ValidationErrorf("invalid ping params: %v", err)
		}
	}

	timestamp := pingParams.Timestamp
	if timestamp == 0 {
		timestamp = time.Now().UnixMilli()
	}
	return &protocol.PingResult{Timestamp: timestamp}, nil
}

// handleCancel acknowledges a cancel request. Messages on the stdio
// transport are processed in order, so by the time a cancel arrives the
// request it names has already completed.
func (s *Server) handleCancel(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var cancelParams protocol.CancelParams
	if len(params) > 0 {
		if err := json.Unmarshal(params, &cancelParams); err != nil {
			return nil, mcperrors.ValidationErrorf("invalid cancel params: %v", err)
		}
	}
	return &protocol.CancelResult{Cancelled: false}, nil
}

func (s *Server) handleListTools(ctx context.Context, params json.RawMessage) (interface{}, error) {
	if err := s.requireInitialized(protocol.MethodListTools); err != nil {
		return nil, err
	}
	if s.toolsProvider == nil {
		return nil, mcperrors.NewError(
			mcperrors.CodeServerInitError,
			"no tools provider configured",
			mcperrors.CategoryTransport,
			mcperrors.SeverityError,
		)
	}

	var listParams protocol.ListToolsParams
	if len(params) > 0 {
		if err := json.Unmarshal(params, &listParams); err != nil {
			return nil, mcperrors.ValidationErrorf("invalid listTools params: %v", err)
		}
	}

	pagination := protocol.PaginationParams{
		Limit:  listParams.Limit,
		Cursor: listParams.Cursor,
	}

	tools, total, nextCursor, hasMore, err := s.toolsProvider.ListTools(ctx, listParams.Category, &pagination)
	if err != nil {
		return nil, err
	}

	return &protocol.ListToolsResult{
		Tools:      tools,
		TotalCount: total,
		NextCursor: nextCursor,
		HasMore:    hasMore,
	}, nil
}

func (s *Server) handleCallTool(ctx context.Context, params json.RawMessage) (interface{}, error) {
	if err := s.requireInitialized(protocol.MethodCallTool); err != nil {
		return nil, err
	}
	if s.toolsProvider == nil {
		return nil, mcperrors.NewError(
			mcperrors.CodeServerInitError,
			"no tools provider configured",
			mcperrors.CategoryTransport,
			mcperrors.SeverityError,
		)
	}

	var callParams protocol.CallToolParams
	if err := json.Unmarshal(params, &callParams); err != nil {
		return nil, mcperrors.ValidationErrorf("invalid callTool params: %v", err)
	}
	if callParams.Name == "" {
		return nil, mcperrors.MissingParameter("name")
	}

	if s.tracer != nil {
		var span trace.Span
		ctx, span = s.tracer.Start(ctx, "callTool",
			trace.WithAttributes(attribute.String("tool.name", callParams.Name)))
		defer span.End()
	}

	start := time.Now()
	result, err := s.toolsProvider.CallTool(ctx, callParams.Name, callParams.Input)
	duration := time.Since(start)

	if s.metrics != nil {
		s.metrics.ObserveToolCall(callParams.Name, duration, err)
	}
	if s.tracer != nil && err != nil {
		span := trace.SpanFromContext(ctx)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	if err != nil {
		return nil, err
	}

	if result.OperationID == "" {
		result.OperationID = logging.NewRequestID()
	}
	return result, nil
}
