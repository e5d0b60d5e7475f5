package logging

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// contextKey is a type for context keys used by this package.
type contextKey int

const (
	requestIDKey contextKey = iota
	userKey
)

// GenerateRequestID creates a short unique request ID (16 hex characters).
func GenerateRequestID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
}

// WithRequestID returns a new context with the given request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// NewRequestContext creates a context for one command invocation on behalf of userID.
func NewRequestContext(parent context.Context, userID string) context.Context {
	if parent == nil {
		parent = context.Background()
	}
	return WithUser(WithRequestID(parent, GenerateRequestID()), userID)
}

// RequestIDFromContext extracts the request ID from the context.
// Returns empty string if no request ID is set.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithUser returns a new context carrying the acting user's ID.
func WithUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userKey, userID)
}

// UserFromContext extracts the acting user's ID from the context.
func UserFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(userKey).(string)
	return id
}

// LoggerFromContext returns a logger carrying the request ID and user found in ctx.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	logger := Logger()
	if requestID := RequestIDFromContext(ctx); requestID != "" {
		logger = logger.With(KeyRequestID, requestID)
	}
	if userID := UserFromContext(ctx); userID != "" {
		logger = logger.With(KeyUser, userID)
	}
	return logger
}
