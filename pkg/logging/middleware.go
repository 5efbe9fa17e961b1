package logging

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OperationMiddleware wraps request handlers with request-scoped logging.
// Each invocation gets a request ID (generated when the caller did not supply
// one) that is threaded through the context so deeper layers can pick it up.
type OperationMiddleware struct {
	logger Logger
}

// NewOperationMiddleware creates a new operation middleware
func NewOperationMiddleware(logger Logger) *OperationMiddleware {
	return &OperationMiddleware{logger: logger}
}

// Wrap wraps a handler function with operation logging
func (m *OperationMiddleware) Wrap(operation string, handler func(context.Context, interface{}) (interface{}, error)) func(context.Context, interface{}) (interface{}, error) {
	return func(ctx context.Context, params interface{}) (interface{}, error) {
		requestID := RequestIDFromContext(ctx)
		if requestID == "" {
			requestID = uuid.New().String()
			ctx = ContextWithRequestID(ctx, requestID)
		}

		logger := m.logger.WithFields(
			String("request_id", requestID),
			String("operation", operation),
		)

		logger.Debug("Operation started")
		start := time.Now()

		result, err := handler(ctx, params)

		duration := time.Since(start)
		if err != nil {
			logger.WithError(err).WithFields(
				Duration("duration", duration),
			).Error("Operation failed")
		} else {
			logger.WithFields(
				Duration("duration", duration),
			).Debug("Operation completed")
		}

		return result, err
	}
}

// NewRequestID generates a unique request ID
func NewRequestID() string {
	return uuid.New().String()
}
