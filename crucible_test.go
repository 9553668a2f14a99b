package crucible

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xraph/crucible/logger"
)

type testService struct {
	name    string
	started bool
	stopped bool
	healthy bool
}

func (s *testService) Start(ctx context.Context) error { s.started = true; return nil }
func (s *testService) Stop(ctx context.Context) error  { s.stopped = true; return nil }
func (s *testService) Health(ctx context.Context) error {
	if !s.healthy {
		return errors.New("unhealthy")
	}
	return nil
}

func TestNew_RegisterAndResolve(t *testing.T) {
	c := New()

	require.NoError(t, c.Register("database", func(r Resolver) (any, error) {
		return &testService{name: "database"}, nil
	}))

	svc, err := Resolve[*testService](c, "database")
	require.NoError(t, err)
	assert.Equal(t, "database", svc.name)
}

func TestResolve_MissingTransitiveDependency(t *testing.T) {
	c := New()

	require.NoError(t, c.Register("car", func(r Resolver) (any, error) {
		engine, err := r.Resolve("engine")
		if err != nil {
			return nil, err
		}
		return map[string]any{"engine": engine}, nil
	}, WithDependencies("engine")))

	require.NoError(t, c.Register("engine", func(r Resolver) (any, error) {
		transmission, err := r.Resolve("transmission")
		if err != nil {
			return nil, err
		}
		return map[string]any{"transmission": transmission}, nil
	}, WithDependencies("transmission")))

	_, err := c.Resolve("car")
	require.Error(t, err)

	// The failure names the actually missing capability, not the one that
	// requested it, and is not misreported as a factory failure.
	assert.True(t, IsUnregisteredDependency(err))
	assert.False(t, IsFactoryFailed(err))
	assert.Contains(t, err.Error(), "transmission")
}

func TestResolve_CycleReportedWithChain(t *testing.T) {
	c := New()

	require.NoError(t, c.Register("order", func(r Resolver) (any, error) {
		return r.Resolve("invoice")
	}))
	require.NoError(t, c.Register("invoice", func(r Resolver) (any, error) {
		return r.Resolve("order")
	}))

	_, err := c.Resolve("order")
	require.Error(t, err)
	assert.True(t, IsCyclicDependency(err))
	assert.Contains(t, err.Error(), "order -> invoice -> order")
}

func TestContainer_EndToEnd(t *testing.T) {
	c := New(WithLogger(logger.NewTest(t)))

	database := &testService{name: "database", healthy: true}
	require.NoError(t, RegisterValue(c, "config", map[string]string{"dsn": "postgres://localhost"}))
	require.NoError(t, c.Register("database", func(r Resolver) (any, error) {
		if _, err := r.Resolve("config"); err != nil {
			return nil, err
		}
		return database, nil
	}, WithDependencies("config")))
	require.NoError(t, RegisterSingleton(c, "repository", func(r Resolver) (*testService, error) {
		if _, err := r.Resolve("database"); err != nil {
			return nil, err
		}
		return &testService{name: "repository", healthy: true}, nil
	}))

	require.NoError(t, c.Validate())

	ctx := context.Background()
	require.NoError(t, c.Start(ctx))
	assert.True(t, database.started)

	require.NoError(t, c.Health(ctx))

	require.NoError(t, c.Stop(ctx))
	assert.True(t, database.stopped)
}

func TestQualifiedProviders(t *testing.T) {
	c := New()

	require.NoError(t, c.Register("database", func(r Resolver) (any, error) {
		return "primary-db", nil
	}, WithQualifier("primary")))
	require.NoError(t, c.Register("database", func(r Resolver) (any, error) {
		return "replica-db", nil
	}, WithQualifier("replica")))

	primary, err := ResolveQualified[string](c, "database", "primary")
	require.NoError(t, err)
	replica, err := ResolveQualified[string](c, "database", "replica")
	require.NoError(t, err)

	assert.Equal(t, "primary-db", primary)
	assert.Equal(t, "replica-db", replica)
}

func TestScope_EndToEnd(t *testing.T) {
	c := New()

	require.NoError(t, RegisterScoped(c, "requestID", func(r Resolver) (*testService, error) {
		return &testService{name: "request"}, nil
	}))

	scope := c.BeginScope()
	first, err := ResolveScope[*testService](scope, "requestID")
	require.NoError(t, err)
	second, err := ResolveScope[*testService](scope, "requestID")
	require.NoError(t, err)
	assert.Same(t, first, second)

	require.NoError(t, scope.End())

	_, err = scope.Resolve("requestID")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrScopeEnded))
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	c := New()

	require.NoError(t, c.Register("handler", func(r Resolver) (any, error) {
		return nil, nil
	}, WithDependencies("repository", "mailer")))
	require.NoError(t, c.Register("repository", func(r Resolver) (any, error) {
		return nil, nil
	}, WithDependencies("handler")))

	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mailer")
	assert.Contains(t, err.Error(), "handler -> repository -> handler")
}

func TestDumpGraph(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = old }()

	c := New()
	require.NoError(t, c.Register("handler", func(r Resolver) (any, error) {
		return nil, nil
	}, WithDeps(Eager("repository"), Lazy("metrics"))))
	require.NoError(t, c.Register("repository", func(r Resolver) (any, error) {
		return nil, nil
	}, WithDependencies("database")))
	require.NoError(t, c.Register("database", func(r Resolver) (any, error) {
		return nil, nil
	}, Transient()))

	var buf bytes.Buffer
	require.NoError(t, DumpGraph(c, &buf))
	out := buf.String()

	assert.Contains(t, out, "handler (singleton)")
	assert.Contains(t, out, "├── repository")
	assert.Contains(t, out, "│   └── database")
	assert.Contains(t, out, "└── metrics [lazy] (missing)")
	assert.Contains(t, out, "database (transient)")
}

func TestDumpGraph_MarksCycles(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = old }()

	c := New()
	require.NoError(t, c.Register("a", func(r Resolver) (any, error) {
		return nil, nil
	}, WithDependencies("b")))
	require.NoError(t, c.Register("b", func(r Resolver) (any, error) {
		return nil, nil
	}, WithDependencies("a")))

	var buf bytes.Buffer
	require.NoError(t, DumpGraph(c, &buf))
	assert.Contains(t, buf.String(), "(cycle)")
}

func TestGraphDOT(t *testing.T) {
	c := New()
	require.NoError(t, c.Register("repository", func(r Resolver) (any, error) {
		return nil, nil
	}, WithDependencies("database")))
	require.NoError(t, c.Register("database", func(r Resolver) (any, error) {
		return nil, nil
	}))

	dot := c.Graph().DOT()
	assert.Contains(t, dot, `"repository" -> "database";`)
}
