// Package crucible is a dependency injection container built around named
// capabilities. Services register a factory under a capability name,
// optionally qualified so several providers of one capability coexist,
// declare their dependencies, and are resolved with singleton, transient,
// or scoped lifetimes.
//
// The container detects dependency cycles before any factory runs, reports
// missing registrations with the full requester chain, and can validate the
// whole registration graph up front without constructing anything. Start,
// Stop, and Health manage services in dependency order.
//
// Basic usage:
//
//	c := crucible.New()
//
//	c.Register("database", func(r crucible.Resolver) (any, error) {
//	    return sql.Open("postgres", dsn)
//	})
//
//	c.Register("userRepo", func(r crucible.Resolver) (any, error) {
//	    db, err := crucible.Resolve[*sql.DB](r, "database")
//	    if err != nil {
//	        return nil, err
//	    }
//	    return NewUserRepository(db), nil
//	}, crucible.WithDependencies("database"))
//
//	if err := c.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//	repo, err := crucible.Resolve[*UserRepository](c, "userRepo")
package crucible

import (
	"go.opentelemetry.io/otel/trace"

	"github.com/xraph/crucible/internal/di"
	"github.com/xraph/crucible/logger"
	"github.com/xraph/crucible/metrics"
)

// Container provides dependency injection with lifecycle management.
type Container = di.Container

// Scope represents a lifetime scope for scoped services.
// Typically used for HTTP requests or other bounded operations.
type Scope = di.Scope

// Resolver resolves registered capabilities. Factories receive a Resolver
// that tracks the current resolution chain.
type Resolver = di.Resolver

// Factory creates a service instance.
type Factory = di.Factory

// Key identifies a registration: a capability name plus an optional
// qualifier.
type Key = di.Key

// Lifetime controls how instances are cached.
type Lifetime = di.Lifetime

// Lifetime constants.
const (
	// LifetimeSingleton caches one instance per container.
	LifetimeSingleton = di.LifetimeSingleton
	// LifetimeTransient creates a fresh instance per resolution.
	LifetimeTransient = di.LifetimeTransient
	// LifetimeScoped caches one instance per scope.
	LifetimeScoped = di.LifetimeScoped
)

// Dep represents a dependency specification for a service.
// It describes what service is needed and how it should be resolved.
type Dep = di.Dep

// DepMode specifies how a dependency should be resolved.
type DepMode = di.DepMode

// Dependency mode constants.
const (
	// DepEager resolves the dependency immediately during service creation.
	DepEager = di.DepEager
	// DepLazy defers resolution until the dependency is first accessed.
	DepLazy = di.DepLazy
	// DepOptional resolves immediately but returns nil if not found.
	DepOptional = di.DepOptional
	// DepLazyOptional combines lazy resolution with optional behavior.
	DepLazyOptional = di.DepLazyOptional
)

// RegisterOption is a configuration option for service registration.
type RegisterOption = di.RegisterOption

// Option configures a container.
type Option = di.Option

// Service is implemented by instances that participate in container start
// and stop.
type Service = di.Service

// HealthChecker is implemented by instances that report their own health.
type HealthChecker = di.HealthChecker

// Disposer is implemented by instances that release resources when their
// scope ends.
type Disposer = di.Disposer

// ServiceInfo contains diagnostic information about a registration.
type ServiceInfo = di.ServiceInfo

// DepInfo describes one declared dependency edge in diagnostics output.
type DepInfo = di.DepInfo

// Graph is the declared dependency graph over registered keys.
type Graph = di.Graph

// New creates an empty container.
func New(opts ...Option) Container {
	return di.NewContainer(opts...)
}

// NewContainer is an alias for New.
func NewContainer(opts ...Option) Container {
	return di.NewContainer(opts...)
}

// WithLogger sets the logger used for container diagnostics.
func WithLogger(l logger.Logger) Option {
	return di.WithLogger(l)
}

// WithMetrics sets the metrics sink for container instrumentation.
func WithMetrics(m metrics.Metrics) Option {
	return di.WithMetrics(m)
}

// WithTracer records a span per resolution using the given tracer.
func WithTracer(t trace.Tracer) Option {
	return di.WithTracer(t)
}

// NewKey creates a key for an unqualified capability.
func NewKey(capability string) Key {
	return di.NewKey(capability)
}

// QualifiedKey creates a key for a capability under a qualifier.
func QualifiedKey(capability, qualifier string) Key {
	return di.QualifiedKey(capability, qualifier)
}

// Singleton makes the service a singleton (default).
func Singleton() RegisterOption {
	return di.Singleton()
}

// Transient makes the service created on each resolve.
func Transient() RegisterOption {
	return di.Transient()
}

// Scoped makes the service live for the duration of a scope.
func Scoped() RegisterOption {
	return di.Scoped()
}

// WithQualifier registers the capability under a qualifier so several
// providers of the same capability can coexist.
func WithQualifier(qualifier string) RegisterOption {
	return di.WithQualifier(qualifier)
}

// WithDependencies declares explicit dependencies by capability name.
// All dependencies are treated as eager.
func WithDependencies(capabilities ...string) RegisterOption {
	return di.WithDependencies(capabilities...)
}

// WithDependencyKeys declares eager dependencies on qualified keys.
func WithDependencyKeys(keys ...Key) RegisterOption {
	return di.WithDependencyKeys(keys...)
}

// WithDeps declares dependencies with full Dep specs (modes, qualifiers).
func WithDeps(deps ...Dep) RegisterOption {
	return di.WithDeps(deps...)
}

// WithMetadata adds diagnostic metadata to the registration.
func WithMetadata(key, value string) RegisterOption {
	return di.WithMetadata(key, value)
}

// WithGroup adds the service to a named group.
func WithGroup(group string) RegisterOption {
	return di.WithGroup(group)
}

// Eager creates an eager dependency specification.
// The dependency is resolved immediately and fails if not found.
func Eager(capability string) Dep {
	return di.Eager(capability)
}

// Lazy creates a lazy dependency specification.
// The dependency is resolved on first access.
func Lazy(capability string) Dep {
	return di.Lazy(capability)
}

// Optional creates an optional dependency specification.
// The dependency is resolved immediately but tolerated when missing.
func Optional(capability string) Dep {
	return di.Optional(capability)
}

// LazyOptional creates a lazy optional dependency specification.
// The dependency is resolved on first access and tolerated when missing.
func LazyOptional(capability string) Dep {
	return di.LazyOptional(capability)
}

// KeyDep creates a dependency on a fully qualified key.
func KeyDep(key Key, mode DepMode) Dep {
	return di.KeyDep(key, mode)
}
