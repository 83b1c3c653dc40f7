package obscontext

import (
	"context"
	"strings"
)

type requestIDKey struct{}
type userIDKey struct{}
type propertyIDKey struct{}

// WithRequestID stores the request identifier on the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, strings.TrimSpace(requestID))
}

// RequestIDFromContext returns the request identifier, if any.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}
	return ""
}

// WithUserID stores the authenticated user identifier on the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, strings.TrimSpace(userID))
}

// UserIDFromContext returns the authenticated user identifier, if any.
func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(userIDKey{}).(string); ok {
		return v
	}
	return ""
}

// WithPropertyID stores the property identifier resolved from the route.
func WithPropertyID(ctx context.Context, propertyID string) context.Context {
	return context.WithValue(ctx, propertyIDKey{}, strings.TrimSpace(propertyID))
}

// PropertyIDFromContext returns the property identifier, if any.
func PropertyIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(propertyIDKey{}).(string); ok {
		return v
	}
	return ""
}
