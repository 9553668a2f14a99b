// Package extras integrates per-request container scopes with third-party
// HTTP routers. Each integration installs the httpscope middleware in the
// router's native middleware shape, so handlers resolve scoped
// capabilities through httpscope.Resolve.
package extras

import (
	"github.com/go-chi/chi/v5"

	"github.com/xraph/crucible"
	"github.com/xraph/crucible/httpscope"
)

// UseScopes installs per-request container scopes on a chi router.
func UseScopes(r chi.Router, c crucible.Container) {
	r.Use(httpscope.Middleware(c))
}

// NewChiRouter creates a chi router with per-request scopes installed.
func NewChiRouter(c crucible.Container) chi.Router {
	r := chi.NewRouter()
	UseScopes(r, c)
	return r
}
