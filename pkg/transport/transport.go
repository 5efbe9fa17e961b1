// Package transport carries JSON-RPC messages between the server and its
// client. The stdio transport is the only one the server ships: requests
// arrive as newline-delimited JSON on stdin and responses leave on stdout.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	mcperrors "github.com/ajitpratap0/uniprot-mcp-go/pkg/errors"
	"github.com/ajitpratap0/uniprot-mcp-go/pkg/protocol"
)

// RequestHandler handles an incoming request and returns its result
type RequestHandler func(ctx context.Context, params json.RawMessage) (interface{}, error)

// NotificationHandler handles an incoming notification
type NotificationHandler func(ctx context.Context, params json.RawMessage) error

// Transport is the server-side message loop contract
type Transport interface {
	// Start runs the message loop until the context is canceled or the
	// input stream ends
	Start(ctx context.Context) error

	// Stop halts the transport and flushes pending output
	Stop(ctx context.Context) error

	// Send transmits a raw message to the client
	Send(data []byte) error

	// RegisterRequestHandler registers a handler for a request method
	RegisterRequestHandler(method string, handler RequestHandler)

	// RegisterNotificationHandler registers a handler for a notification
	// method
	RegisterNotificationHandler(method string, handler NotificationHandler)
}

// ErrUnsupportedMethod reports a notification method without a handler
var ErrUnsupportedMethod = errors.New("unsupported method")

// BaseTransport holds the handler registry and dispatch logic shared by
// transport implementations.
type BaseTransport struct {
	sync.RWMutex
	requestHandlers      map[string]RequestHandler
	notificationHandlers map[string]NotificationHandler
}

// NewBaseTransport creates an empty handler registry
func NewBaseTransport() *BaseTransport {
	return &BaseTransport{
		requestHandlers:      make(map[string]RequestHandler),
		notificationHandlers: make(map[string]NotificationHandler),
	}
}

// RegisterRequestHandler registers a handler for a request method
func (t *BaseTransport) RegisterRequestHandler(method string, handler RequestHandler) {
	t.Lock()
	defer t.Unlock()
	t.requestHandlers[method] = handler
}

// RegisterNotificationHandler registers a handler for a notification method
func (t *BaseTransport) RegisterNotificationHandler(method string, handler NotificationHandler) {
	t.Lock()
	defer t.Unlock()
	t.notificationHandlers[method] = handler
}

// HandleRequest dispatches a request to its handler and always produces a
// response. Handler panics and errors become JSON-RPC error responses so a
// single bad request never tears down the message loop.
func (t *BaseTransport) HandleRequest(ctx context.Context, request *protocol.Request) (resp *protocol.Response) {
	defer func() {
		if r := recover(); r != nil {
			resp = errorResponse(request.ID, mcperrors.NewErrorf(
				mcperrors.CodeInternalError,
				mcperrors.CategoryTransport,
				mcperrors.SeverityCritical,
				"internal error processing %s: %v", request.Method, r,
			))
		}
	}()

	t.RLock()
	handler, ok := t.requestHandlers[request.Method]
	t.RUnlock()

	if !ok {
		return errorResponse(request.ID, mcperrors.NewErrorf(
			mcperrors.CodeMethodNotFound,
			mcperrors.CategoryTransport,
			mcperrors.SeverityError,
			"method not found: %s", request.Method,
		))
	}

	result, err := handler(ctx, request.Params)
	if err != nil {
		return errorResponse(request.ID, err)
	}

	resp, err = protocol.NewResponse(request.ID, result)
	if err != nil {
		return errorResponse(request.ID, fmt.Errorf("failed to marshal result: %w", err))
	}
	return resp
}

// HandleNotification dispatches a notification to its handler. Panics are
// converted to errors.
func (t *BaseTransport) HandleNotification(ctx context.Context, notification *protocol.Notification) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error processing notification %s: %v", notification.Method, r)
		}
	}()

	t.RLock()
	handler, ok := t.notificationHandlers[notification.Method]
	t.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedMethod, notification.Method)
	}

	return handler(ctx, notification.Params)
}

// errorResponse builds a JSON-RPC error response, preserving the code and
// structured data of MCPError values.
func errorResponse(id interface{}, err error) *protocol.Response {
	code := mcperrors.CodeInternalError
	message := err.Error()
	var data interface{}

	if mcpErr, ok := mcperrors.AsMCPError(err); ok {
		code = mcpErr.Code()
		message = mcpErr.Error()
		data = mcpErr.Data()
	}

	resp, respErr := protocol.NewErrorResponse(id, code, message, data)
	if respErr != nil {
		resp, _ = protocol.NewErrorResponse(id, code, message, nil)
	}
	return resp
}
