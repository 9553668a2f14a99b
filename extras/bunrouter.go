package extras

import (
	"net/http"

	"github.com/uptrace/bunrouter"

	"github.com/xraph/crucible"
	"github.com/xraph/crucible/httpscope"
)

// ScopeMiddleware returns a bunrouter middleware that begins a container
// scope per request and ends it after the handler returns.
//
// bunrouter.Request tracks its own context, so the embedded http.Request
// is updated as well; both req.Context() and req.Request.Context() carry
// the scope downstream.
func ScopeMiddleware(c crucible.Container) bunrouter.MiddlewareFunc {
	return func(next bunrouter.HandlerFunc) bunrouter.HandlerFunc {
		return func(w http.ResponseWriter, req bunrouter.Request) error {
			scope := c.BeginScope()
			defer scope.End()

			ctx := httpscope.WithScope(req.Context(), scope)
			req.Request = req.Request.WithContext(ctx)
			return next(w, req.WithContext(ctx))
		}
	}
}

// NewBunRouter creates a bunrouter with per-request scopes installed.
func NewBunRouter(c crucible.Container) *bunrouter.Router {
	return bunrouter.New(bunrouter.Use(ScopeMiddleware(c)))
}
