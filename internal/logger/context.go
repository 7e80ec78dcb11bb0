package logger

import "context"

// requestIDKey is an unexported type so no other package can collide
// with the key.
type requestIDKey struct{}

// WithRequestID stores the request ID on the context for later log
// correlation.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request ID carried by the context, or "" when
// none was set.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
