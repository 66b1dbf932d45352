package resolver

import "context"

type contextKey string

const (
	correlationIDKey contextKey = "correlation_id"
	releaseKey       contextKey = "release"
)

// WithCorrelationID stamps a per-attempt correlation identifier on the context.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, correlationIDKey, id)
}

// CorrelationIDFromContext extracts the correlation identifier, if any.
func CorrelationIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(correlationIDKey).(string)
	return id, ok && id != ""
}

// WithRelease stamps a human-readable release label ("artist - album").
func WithRelease(ctx context.Context, label string) context.Context {
	if label == "" {
		return ctx
	}
	return context.WithValue(ctx, releaseKey, label)
}

// ReleaseFromContext extracts the release label, if any.
func ReleaseFromContext(ctx context.Context) (string, bool) {
	label, ok := ctx.Value(releaseKey).(string)
	return label, ok && label != ""
}
