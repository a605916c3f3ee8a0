package analyses

import "context"

type requestIDKey struct{}

// WithRequestID carries a request ID through the processing pipeline so
// worker logs can be correlated with the originating HTTP request.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil || requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func requestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// backgroundWithRequestID detaches processing from the request lifetime
// while keeping the request ID for logs.
func backgroundWithRequestID(ctx context.Context) context.Context {
	return WithRequestID(context.Background(), requestIDFromContext(ctx))
}
