package extras

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/xraph/crucible"
	"github.com/xraph/crucible/httpscope"
)

// WrapHandle adapts an httprouter.Handle so the request carries a
// container scope. Path params pass through unchanged.
//
// httprouter has no middleware chain, so each route is wrapped at
// registration:
//
//	router.GET("/users/:id", extras.WrapHandle(c, showUser))
func WrapHandle(c crucible.Container, h httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		scope := c.BeginScope()
		defer scope.End()

		h(w, r.WithContext(httpscope.WithScope(r.Context(), scope)), ps)
	}
}

// WrapHandler adapts a plain http.Handler registered on an
// httprouter.Router so the request carries a container scope.
func WrapHandler(c crucible.Container, h http.Handler) http.Handler {
	return httpscope.Middleware(c)(h)
}
