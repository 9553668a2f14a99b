package di

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	errors2 "github.com/xraph/crucible/errors"
)

func TestStart_ResolvesAndStartsSingletons(t *testing.T) {
	c := NewContainer()
	svc := &mockService{name: "database", healthy: true}

	err := c.Register("database", func(r Resolver) (any, error) {
		return svc, nil
	})
	require.NoError(t, err)

	require.NoError(t, c.Start(context.Background()))
	assert.True(t, svc.started)
}

func TestStart_DependencyOrder(t *testing.T) {
	c := NewContainer()
	var order []string

	register := func(name string, deps ...string) {
		opts := []RegisterOption{WithDependencies(deps...)}
		err := c.Register(name, func(r Resolver) (any, error) {
			return &mockServiceWithCallback{
				mockService: mockService{name: name},
				onStart: func() {
					order = append(order, name)
				},
			}, nil
		}, opts...)
		require.NoError(t, err)
	}

	register("handler", "repository")
	register("repository", "database")
	register("database")

	require.NoError(t, c.Start(context.Background()))
	assert.Equal(t, []string{"database", "repository", "handler"}, order)
}

func TestStart_AlreadyStarted(t *testing.T) {
	c := NewContainer()

	require.NoError(t, c.Start(context.Background()))

	err := c.Start(context.Background())
	assert.ErrorIs(t, err, errors2.ErrContainerStarted)
}

func TestStart_RollbackOnFailure(t *testing.T) {
	c := NewContainer()
	good := &mockService{name: "database", healthy: true}
	bad := &mockService{name: "consumer", startErr: errors.New("broker unreachable")}

	require.NoError(t, c.Register("database", func(r Resolver) (any, error) {
		return good, nil
	}))
	require.NoError(t, c.Register("consumer", func(r Resolver) (any, error) {
		return bad, nil
	}, WithDependencies("database")))

	err := c.Start(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errors2.ErrLifecycleErrorSentinel)
	assert.Contains(t, err.Error(), "broker unreachable")

	// The service started before the failure was stopped again.
	assert.True(t, good.started)
	assert.True(t, good.stopped)

	// After the rollback the container can start again.
	bad.startErr = nil
	require.NoError(t, c.Start(context.Background()))
}

func TestStart_ResolveFailure(t *testing.T) {
	c := NewContainer()

	require.NoError(t, c.Register("repository", func(r Resolver) (any, error) {
		return r.Resolve("database")
	}, WithDependencies("database")))

	err := c.Start(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errors2.ErrLifecycleErrorSentinel)
	assert.ErrorIs(t, err, errors2.ErrUnregisteredDependencySentinel)
}

func TestStart_DeclaredCycle(t *testing.T) {
	c := NewContainer()

	require.NoError(t, c.Register("a", func(r Resolver) (any, error) { return 1, nil },
		WithDependencies("b")))
	require.NoError(t, c.Register("b", func(r Resolver) (any, error) { return 2, nil },
		WithDependencies("a")))

	err := c.Start(context.Background())
	assert.ErrorIs(t, err, errors2.ErrCyclicDependencySentinel)
}

func TestStart_SkipsTransientAndScoped(t *testing.T) {
	c := NewContainer()
	invoked := false

	require.NoError(t, c.Register("request-id", func(r Resolver) (any, error) {
		invoked = true
		return 1, nil
	}, Transient()))
	require.NoError(t, c.Register("session", func(r Resolver) (any, error) {
		invoked = true
		return 2, nil
	}, Scoped()))

	require.NoError(t, c.Start(context.Background()))
	assert.False(t, invoked)
}

func TestStop_ReverseOrder(t *testing.T) {
	c := NewContainer()
	var order []string
	var mu sync.Mutex

	register := func(name string, deps ...string) {
		err := c.Register(name, func(r Resolver) (any, error) {
			return &mockServiceWithCallback{
				mockService: mockService{name: name},
				onStop: func() {
					mu.Lock()
					order = append(order, name)
					mu.Unlock()
				},
			}, nil
		}, WithDependencies(deps...))
		require.NoError(t, err)
	}

	register("database")
	register("repository", "database")

	ctx := context.Background()
	require.NoError(t, c.Start(ctx))
	require.NoError(t, c.Stop(ctx))

	mu.Lock()
	assert.Equal(t, []string{"repository", "database"}, order)
	mu.Unlock()
}

func TestStop_NotStarted(t *testing.T) {
	c := NewContainer()
	assert.NoError(t, c.Stop(context.Background()))
}

func TestStop_CollectsErrors(t *testing.T) {
	c := NewContainer()
	first := &mockService{name: "first", stopErr: errors.New("first stop failed")}
	second := &mockService{name: "second", stopErr: errors.New("second stop failed")}

	require.NoError(t, c.Register("first", func(r Resolver) (any, error) { return first, nil }))
	require.NoError(t, c.Register("second", func(r Resolver) (any, error) { return second, nil }))

	ctx := context.Background()
	require.NoError(t, c.Start(ctx))

	err := c.Stop(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors2.ErrLifecycleErrorSentinel)
	assert.Contains(t, err.Error(), "first stop failed")
	assert.Contains(t, err.Error(), "second stop failed")
}

func TestStop_ThenStartAgain(t *testing.T) {
	c := NewContainer()
	svc := &mockService{name: "database", healthy: true}

	require.NoError(t, c.Register("database", func(r Resolver) (any, error) { return svc, nil }))

	ctx := context.Background()
	require.NoError(t, c.Start(ctx))
	require.NoError(t, c.Stop(ctx))
	require.NoError(t, c.Start(ctx))
}

func TestHealth_AllChecked(t *testing.T) {
	c := NewContainer()
	healthy := &mockService{name: "database", healthy: true}
	unhealthy1 := &mockService{name: "cache", healthErr: errors.New("cache down")}
	unhealthy2 := &mockService{name: "broker", healthErr: errors.New("broker down")}

	require.NoError(t, c.Register("database", func(r Resolver) (any, error) { return healthy, nil }))
	require.NoError(t, c.Register("cache", func(r Resolver) (any, error) { return unhealthy1, nil }))
	require.NoError(t, c.Register("broker", func(r Resolver) (any, error) { return unhealthy2, nil }))

	ctx := context.Background()
	for _, name := range []string{"database", "cache", "broker"} {
		_, err := c.Resolve(name)
		require.NoError(t, err)
	}

	err := c.Health(ctx)
	require.Error(t, err)

	problems := multierr.Errors(err)
	assert.Len(t, problems, 2)
	assert.ErrorIs(t, err, errors2.ErrHealthCheckFailedSentinel)
	assert.Contains(t, err.Error(), "cache down")
	assert.Contains(t, err.Error(), "broker down")
}

func TestHealth_SkipsUnresolved(t *testing.T) {
	c := NewContainer()

	// Never resolved, so its health is never checked.
	require.NoError(t, c.Register("database", func(r Resolver) (any, error) {
		return &mockService{name: "database", healthErr: errors.New("down")}, nil
	}))

	assert.NoError(t, c.Health(context.Background()))
}

func TestHealth_Success(t *testing.T) {
	c := NewContainer()

	require.NoError(t, c.Register("database", func(r Resolver) (any, error) {
		return &mockService{name: "database", healthy: true}, nil
	}))
	_, err := c.Resolve("database")
	require.NoError(t, err)

	assert.NoError(t, c.Health(context.Background()))
}
