package analyses

import "context"

type logScopeKey struct{}

// logScope carries the caller identifiers stamped on every analysis log line.
type logScope struct {
	requestID string
	route     string
}

// WithRequestID attaches the request ID and route of the HTTP call that
// started an analysis. Empty values leave the context unchanged.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return withLogScope(ctx, logScope{requestID: requestID})
}

// WithRoute records which endpoint triggered the analysis.
func WithRoute(ctx context.Context, route string) context.Context {
	scope := scopeFrom(ctx)
	scope.route = route
	return withLogScope(ctx, scope)
}

func withLogScope(ctx context.Context, scope logScope) context.Context {
	if ctx == nil || scope == (logScope{}) {
		return ctx
	}
	if prev := scopeFrom(ctx); prev.requestID != "" && scope.requestID == "" {
		scope.requestID = prev.requestID
	}
	return context.WithValue(ctx, logScopeKey{}, scope)
}

func scopeFrom(ctx context.Context) logScope {
	if ctx == nil {
		return logScope{}
	}
	scope, _ := ctx.Value(logScopeKey{}).(logScope)
	return scope
}

func requestIDFromContext(ctx context.Context) string {
	return scopeFrom(ctx).requestID
}

// logFields returns a field map seeded with the request ID and route.
func logFields(ctx context.Context, req Request) map[string]any {
	scope := scopeFrom(ctx)
	fields := map[string]any{"request_id": scope.requestID}
	if scope.route != "" {
		fields["route"] = scope.route
	}
	if req.UserID != "" {
		fields["user_id"] = req.UserID
	}
	return fields
}
