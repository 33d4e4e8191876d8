package core

import (
	"context"

	"github.com/huangsam/spans/internal/contract"
)

// Context keys for run options
type contextKey string

const suppressHeaderKey contextKey = "suppressHeader"

// WithSuppressHeader marks the context so that progress headers are not logged.
// The MCP server uses it to keep stdio clean.
func WithSuppressHeader(ctx context.Context) context.Context {
	return context.WithValue(ctx, suppressHeaderKey, true)
}

// shouldSuppressHeader returns whether headers should be suppressed from context
func shouldSuppressHeader(ctx context.Context) bool {
	val := ctx.Value(suppressHeaderKey)
	if val == nil {
		return false // default: show headers
	}
	suppress, ok := val.(bool)
	return ok && suppress
}

// logHeader writes a progress note unless the context suppresses it.
func logHeader(ctx context.Context, emoji, format string, args ...any) {
	if shouldSuppressHeader(ctx) {
		return
	}
	contract.LogInfo(emoji, format, args...)
}
