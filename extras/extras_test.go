package extras

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xraph/crucible"
)

type session struct {
	disposed bool
}

func (s *session) Dispose() error {
	s.disposed = true
	return nil
}

func newScopedContainer(t *testing.T) crucible.Container {
	t.Helper()
	c := crucible.New()
	require.NoError(t, crucible.RegisterScoped(c, "session", func(r crucible.Resolver) (*session, error) {
		return &session{}, nil
	}))
	return c
}
