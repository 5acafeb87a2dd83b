package observability

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type contextKey int

const (
	correlationIDCtxKey contextKey = iota
	invocationCtxKey
)

// Attribute keys shared by logs and metric tags.
const (
	CorrelationIDKey = "correlation_id"
	InvocationKey    = "invocation"
	SurfaceKey       = "surface"
	UserIDKey        = "user_id"
	OperationKey     = "operation"
	DurationKey      = "duration_ms"
	ErrorKey         = "error"
)

// Surfaces a call can arrive through.
const (
	SurfaceCLI = "cli"
	SurfaceMCP = "mcp"
)

// Invocation identifies one user-facing call: a CLI command or an MCP tool.
type Invocation struct {
	Surface   string
	Operation string
	UserID    uuid.UUID
}

// WithCorrelationID adds a correlation ID to the context.
// If id is empty, a new UUID is generated.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	if id == "" {
		id = uuid.New().String()
	}
	return context.WithValue(ctx, correlationIDCtxKey, id)
}

// CorrelationIDFromContext extracts the correlation ID from context.
func CorrelationIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(correlationIDCtxKey).(string)
	return id
}

// StartInvocation records inv on ctx and gives the call a correlation ID
// unless one is already present. Loggers built by NewLogger attach both to
// every record logged with the returned context.
func StartInvocation(ctx context.Context, inv Invocation) context.Context {
	if CorrelationIDFromContext(ctx) == "" {
		ctx = WithCorrelationID(ctx, "")
	}
	return context.WithValue(ctx, invocationCtxKey, inv)
}

// InvocationFromContext returns the invocation started on ctx.
func InvocationFromContext(ctx context.Context) (Invocation, bool) {
	if ctx == nil {
		return Invocation{}, false
	}
	inv, ok := ctx.Value(invocationCtxKey).(Invocation)
	return inv, ok
}

// attr groups the invocation fields under InvocationKey so they never clash
// with a record's own operation attribute.
func (inv Invocation) attr() slog.Attr {
	args := make([]any, 0, 3)
	if inv.Surface != "" {
		args = append(args, slog.String(SurfaceKey, inv.Surface))
	}
	if inv.Operation != "" {
		args = append(args, slog.String(OperationKey, inv.Operation))
	}
	if inv.UserID != uuid.Nil {
		args = append(args, slog.String(UserIDKey, inv.UserID.String()))
	}
	return slog.Group(InvocationKey, args...)
}
