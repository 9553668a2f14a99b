// Package httpscope binds a container scope to each HTTP request. The
// middleware begins a scope before the handler runs, stores it on the
// request context, and ends it once the response is written, disposing
// request-scoped instances.
package httpscope

import (
	"context"
	"net/http"

	"github.com/xraph/crucible"
	"github.com/xraph/crucible/errors"
)

// ErrNoScope is returned when a request context carries no scope, which
// usually means the middleware is not installed on the route.
var ErrNoScope = errors.New("httpscope: no scope in request context")

// scopeContextKey is the context key for storing a Scope in a stdlib
// context.Context.
type scopeContextKey struct{}

// WithScope attaches a scope to a stdlib context.Context.
// Use this for background jobs or any non-HTTP path.
func WithScope(ctx context.Context, s crucible.Scope) context.Context {
	return context.WithValue(ctx, scopeContextKey{}, s)
}

// FromContext extracts the scope from a stdlib context.Context.
// Returns the scope and true if found, nil and false otherwise.
func FromContext(ctx context.Context) (crucible.Scope, bool) {
	s, ok := ctx.Value(scopeContextKey{}).(crucible.Scope)
	return s, ok
}

// MustFromContext extracts the scope or panics. Use in handlers behind
// Middleware.
func MustFromContext(ctx context.Context) crucible.Scope {
	s, ok := FromContext(ctx)
	if !ok {
		panic("httpscope: no scope in context")
	}
	return s
}

// Middleware begins a container scope per request and ends it after the
// handler returns. Scoped capabilities resolved through the request share
// one instance for the lifetime of the request.
func Middleware(c crucible.Container) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scope := c.BeginScope()
			defer scope.End()

			next.ServeHTTP(w, r.WithContext(WithScope(r.Context(), scope)))
		})
	}
}

// Resolve resolves a capability through the request's scope with type
// safety.
func Resolve[T any](r *http.Request, capability string) (T, error) {
	var zero T
	scope, ok := FromContext(r.Context())
	if !ok {
		return zero, ErrNoScope
	}
	return crucible.ResolveScope[T](scope, capability)
}

// MustResolve resolves a capability through the request's scope or panics.
func MustResolve[T any](r *http.Request, capability string) T {
	return crucible.MustScope[T](MustFromContext(r.Context()), capability)
}
