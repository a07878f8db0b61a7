package core

import "context"

// Context keys for assessment options
type contextKey string

const (
	suppressHeaderKey contextKey = "suppressHeader"
	skipStoreKey      contextKey = "skipStore"
)

// WithSuppressHeader silences the pre-assessment banner. The MCP server
// uses it so tool calls stay quiet on stderr.
func WithSuppressHeader(ctx context.Context) context.Context {
	return context.WithValue(ctx, suppressHeaderKey, true)
}

// shouldSuppressHeader returns whether the banner is suppressed in the context
func shouldSuppressHeader(ctx context.Context) bool {
	val := ctx.Value(suppressHeaderKey)
	if val == nil {
		return false // default: show the banner
	}
	suppress, ok := val.(bool)
	return ok && suppress
}

// WithSkipStore disables run recording for assessments started under the
// returned context, regardless of the configured store backend.
func WithSkipStore(ctx context.Context) context.Context {
	return context.WithValue(ctx, skipStoreKey, true)
}

// shouldSkipStore returns whether run recording should be skipped from context
func shouldSkipStore(ctx context.Context) bool {
	val := ctx.Value(skipStoreKey)
	if val == nil {
		return false // default: record runs
	}
	skip, ok := val.(bool)
	return ok && skip
}
