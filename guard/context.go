package guard

import (
	"context"

	"github.com/google/uuid"
)

// contextKey is a private type for context values set by this package.
type contextKey string

// traceIDKey is the context key under which the request trace ID is stored.
const traceIDKey contextKey = "traceID"

// SetTraceID generates a fresh trace ID and stores it in the context.
// It is used by the Trace middleware and is exported for tests and for
// callers that enter the request path outside HTTP.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, traceIDKey, uuid.NewString())
}

// GetTraceID retrieves the trace ID from the context. It returns an
// empty string when no trace ID has been set.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(traceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}
