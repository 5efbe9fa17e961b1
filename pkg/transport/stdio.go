package transport

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"runtime/debug"
	"sync"

	"golang.org/x/sync/errgroup"

	mcperrors "github.com/ajitpratap0/uniprot-mcp-go/pkg/errors"
	"github.com/ajitpratap0/uniprot-mcp-go/pkg/logging"
	"github.com/ajitpratap0/uniprot-mcp-go/pkg/protocol"
)

const (
	initialScanBuffer = 64 * 1024
	maxMessageSize    = 16 * 1024 * 1024
)

// StdioConfig configures a stdio transport. Reader and Writer default to
// os.Stdin and os.Stdout; overriding them is intended for tests.
type StdioConfig struct {
	Reader io.Reader
	Writer io.Writer
	Logger logging.Logger
}

// StdioTransport reads newline-delimited JSON-RPC messages from its input
// and writes responses to its output. All diagnostics go to the logger,
// never to the output stream, which belongs to the protocol.
type StdioTransport struct {
	*BaseTransport
	reader    io.Reader
	rawWriter *bufio.Writer
	logger    logging.Logger
	mutex     sync.Mutex
	done      chan struct{}
	stopOnce  sync.Once
}

// NewStdioTransport creates a stdio transport from config
func NewStdioTransport(config StdioConfig) *StdioTransport {
	reader := config.Reader
	writer := config.Writer
	logger := config.Logger

	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	return &StdioTransport{
		BaseTransport: NewBaseTransport(),
		reader:        reader,
		rawWriter:     bufio.NewWriter(writer),
		logger:        logger,
		done:          make(chan struct{}),
	}
}

// Start reads messages from the input until EOF, the context is canceled,
// or Stop is called. It blocks for the lifetime of the connection.
func (t *StdioTransport) Start(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	scanner := bufio.NewScanner(t.reader)
	scanner.Buffer(make([]byte, initialScanBuffer), maxMessageSize)

	scannerDone := make(chan struct{})

	g.Go(func() error {
		defer close(scannerDone)

		for scanner.Scan() {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case <-t.done:
				return nil
			default:
			}

			// Copy the line, the scanner reuses its buffer on the next Scan
			line := scanner.Bytes()
			data := make([]byte, len(line))
			copy(data, line)

			t.processMessage(gctx, data)
		}

		// A closed reader is how shutdown unblocks the scanner, not a
		// transport failure
		if err := scanner.Err(); err != nil &&
			!errors.Is(err, io.EOF) &&
			!errors.Is(err, io.ErrClosedPipe) &&
			!errors.Is(err, os.ErrClosed) {
			return mcperrors.StdioTransportError("read_input", err)
		}
		return nil
	})

	g.Go(func() error {
		select {
		case <-gctx.Done():
			t.closeReader()
			return gctx.Err()
		case <-t.done:
			t.closeReader()
			return nil
		case <-scannerDone:
			return nil
		}
	})

	return g.Wait()
}

// Stop halts the transport and flushes buffered output
func (t *StdioTransport) Stop(ctx context.Context) error {
	var flushErr error

	t.stopOnce.Do(func() {
		close(t.done)

		t.mutex.Lock()
		flushErr = t.rawWriter.Flush()
		t.mutex.Unlock()
	})

	if flushErr != nil {
		return mcperrors.StdioTransportError("stop", flushErr)
	}
	return nil
}

// Send writes a message line to the output. Safe for concurrent use.
func (t *StdioTransport) Send(data []byte) error {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if _, err := t.rawWriter.Write(data); err != nil {
		return mcperrors.StdioTransportError("send_message", err)
	}
	if err := t.rawWriter.WriteByte('\n'); err != nil {
		return mcperrors.StdioTransportError("send_message", err)
	}
	if err := t.rawWriter.Flush(); err != nil {
		return mcperrors.StdioTransportError("send_message", err)
	}
	return nil
}

// processMessage classifies a raw message and dispatches it. Malformed
// input is answered with a JSON-RPC error; a panic is contained to the
// message that caused it.
func (t *StdioTransport) processMessage(ctx context.Context, data []byte) {
	defer func() {
		if r := recover(); r != nil {
			t.logger.Error("panic processing message",
				logging.Any("panic", r),
				logging.String("stack", string(debug.Stack())))
		}
	}()

	switch {
	case protocol.IsRequest(data):
		var req protocol.Request
		if err := json.Unmarshal(data, &req); err != nil {
			t.sendParseError(err)
			return
		}
		resp := t.HandleRequest(ctx, &req)
		t.sendResponse(resp)

	case protocol.IsNotification(data):
		var notif protocol.Notification
		if err := json.Unmarshal(data, &notif); err != nil {
			t.sendParseError(err)
			return
		}
		if err := t.HandleNotification(ctx, &notif); err != nil {
			if errors.Is(err, ErrUnsupportedMethod) {
				t.logger.Debug("ignoring unhandled notification",
					logging.String("method", notif.Method))
			} else {
				t.logger.Warn("notification handler failed",
					logging.String("method", notif.Method),
					logging.ErrorField(err))
			}
		}

	default:
		t.sendParseError(errors.New("message is not a valid JSON-RPC request or notification"))
	}
}

func (t *StdioTransport) sendParseError(cause error) {
	t.logger.Warn("rejecting malformed message", logging.ErrorField(cause))

	resp, err := protocol.NewErrorResponse(nil, mcperrors.CodeParseError, "Parse error", nil)
	if err != nil {
		return
	}
	t.sendResponse(resp)
}

func (t *StdioTransport) sendResponse(resp *protocol.Response) {
	if resp == nil {
		return
	}

	data, err := json.Marshal(resp)
	if err != nil {
		t.logger.Error("failed to marshal response", logging.ErrorField(err))
		return
	}
	if err := t.Send(data); err != nil {
		t.logger.Error("failed to send response", logging.ErrorField(err))
	}
}

func (t *StdioTransport) closeReader() {
	// Unblocks scanner.Scan when the input supports closing
	if closer, ok := t.reader.(io.Closer); ok {
		_ = closer.Close()
	}
}
