package httpscope

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xraph/crucible"
)

type requestSession struct {
	id       string
	disposed bool
}

func (s *requestSession) Dispose() error {
	s.disposed = true
	return nil
}

func newScopedContainer(t *testing.T) crucible.Container {
	t.Helper()
	c := crucible.New()
	counter := 0
	require.NoError(t, crucible.RegisterScoped(c, "session", func(r crucible.Resolver) (*requestSession, error) {
		counter++
		return &requestSession{id: fmt.Sprintf("session-%d", counter)}, nil
	}))
	return c
}

func TestMiddleware_SharesScopeWithinRequest(t *testing.T) {
	c := newScopedContainer(t)

	var first, second *requestSession
	handler := Middleware(c)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		first, err = Resolve[*requestSession](r, "session")
		require.NoError(t, err)
		second, err = Resolve[*requestSession](r, "session")
		require.NoError(t, err)
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Same(t, first, second)
}

func TestMiddleware_FreshScopePerRequest(t *testing.T) {
	c := newScopedContainer(t)

	var sessions []*requestSession
	handler := Middleware(c)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := Resolve[*requestSession](r, "session")
		require.NoError(t, err)
		sessions = append(sessions, session)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	require.Len(t, sessions, 2)
	assert.NotSame(t, sessions[0], sessions[1])
}

func TestMiddleware_DisposesAfterResponse(t *testing.T) {
	c := newScopedContainer(t)

	var session *requestSession
	handler := Middleware(c)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		session, err = Resolve[*requestSession](r, "session")
		require.NoError(t, err)
		assert.False(t, session.disposed)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	require.NotNil(t, session)
	assert.True(t, session.disposed)
}

func TestResolve_WithoutMiddleware(t *testing.T) {
	_, err := Resolve[*requestSession](httptest.NewRequest("GET", "/", nil), "session")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoScope)
}

func TestMustFromContext_Panics(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)

	assert.Panics(t, func() {
		MustFromContext(req.Context())
	})
}

func TestFromContext_RoundTrip(t *testing.T) {
	c := crucible.New()
	scope := c.BeginScope()
	defer scope.End()

	ctx := WithScope(httptest.NewRequest("GET", "/", nil).Context(), scope)

	got, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, scope.ID(), got.ID())
}

func TestMustResolve(t *testing.T) {
	c := newScopedContainer(t)

	handler := Middleware(c)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := MustResolve[*requestSession](r, "session")
		assert.NotNil(t, session)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
}
