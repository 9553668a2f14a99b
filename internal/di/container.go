package di

import (
	"context"
	"io"
	"sync"

	"go.opentelemetry.io/otel/trace"

	"github.com/xraph/crucible/errors"
	"github.com/xraph/crucible/logger"
	"github.com/xraph/crucible/metrics"
)

// Factory creates a service instance. The resolver it receives tracks the
// current resolution chain, so factories resolve their dependencies
// through it rather than through the container directly.
type Factory func(r Resolver) (any, error)

// Resolver resolves registered capabilities. It is implemented by the
// container, by scopes, and by the per-call resolution context handed to
// factories.
type Resolver interface {
	// Resolve returns the instance registered for an unqualified capability.
	Resolve(capability string) (any, error)

	// ResolveQualified returns the instance registered for a capability
	// under a qualifier.
	ResolveQualified(capability, qualifier string) (any, error)

	// ResolveKey returns the instance registered for a key.
	ResolveKey(key Key) (any, error)

	// Has reports whether an unqualified capability is registered.
	Has(capability string) bool

	// HasKey reports whether a key is registered.
	HasKey(key Key) bool
}

// Container provides dependency injection with lifecycle management.
type Container interface {
	Resolver

	// Register adds a factory for an unqualified capability.
	Register(capability string, factory Factory, opts ...RegisterOption) error

	// RegisterKey adds a factory for a qualified key.
	RegisterKey(key Key, factory Factory, opts ...RegisterOption) error

	// Keys returns all registered keys in registration order.
	Keys() []Key

	// BeginScope creates a new scope for request-scoped services.
	BeginScope() Scope

	// Validate checks the full registration graph without invoking any
	// factory and reports every problem found, not just the first.
	Validate() error

	// Start resolves all singletons in dependency order and starts those
	// implementing Service.
	Start(ctx context.Context) error

	// Stop stops started services in reverse dependency order.
	Stop(ctx context.Context) error

	// Health checks all instantiated singletons implementing HealthChecker.
	Health(ctx context.Context) error

	// Inspect returns diagnostic information about an unqualified
	// capability.
	Inspect(capability string) (ServiceInfo, error)

	// InspectKey returns diagnostic information about a key.
	InspectKey(key Key) (ServiceInfo, error)

	// Describe returns diagnostic information for every registration in
	// registration order.
	Describe() []ServiceInfo

	// WriteJSON writes the Describe output as indented JSON.
	WriteJSON(w io.Writer) error

	// Graph returns the declared dependency graph.
	Graph() *Graph
}

// Scope is a bounded lifetime for scoped services, typically one HTTP
// request. Scoped instances are cached per scope and disposed when the
// scope ends.
type Scope interface {
	Resolver

	// ID returns the unique scope identifier.
	ID() string

	// End disposes scoped instances in reverse creation order. It is
	// idempotent.
	End() error
}

// Service is implemented by instances that participate in container
// start and stop.
type Service interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// HealthChecker is implemented by instances that report their own health.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Disposer is implemented by instances that release resources when their
// scope ends.
type Disposer interface {
	Dispose() error
}

// containerImpl implements Container.
type containerImpl struct {
	regs    map[Key]*registration
	order   []Key
	graph   *Graph
	started bool
	mu      sync.RWMutex

	logger  logger.Logger
	metrics metrics.Metrics
	tracer  trace.Tracer
}

// Option configures a container.
type Option func(*containerImpl)

// WithLogger sets the logger used for container diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(c *containerImpl) {
		c.logger = l
	}
}

// WithMetrics sets the metrics sink for container instrumentation.
func WithMetrics(m metrics.Metrics) Option {
	return func(c *containerImpl) {
		c.metrics = m
	}
}

// WithTracer records a span per resolution using the given tracer.
func WithTracer(t trace.Tracer) Option {
	return func(c *containerImpl) {
		c.tracer = t
	}
}

// NewContainer creates an empty container.
func NewContainer(opts ...Option) Container {
	c := &containerImpl{
		regs:    make(map[Key]*registration),
		graph:   NewGraph(),
		logger:  logger.NewNoop(),
		metrics: metrics.NewNoop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register adds a factory for an unqualified capability.
func (c *containerImpl) Register(capability string, factory Factory, opts ...RegisterOption) error {
	return c.RegisterKey(NewKey(capability), factory, opts...)
}

// RegisterKey adds a factory for a qualified key. Registering the same
// key twice is an error; use a qualifier to register several providers
// of one capability.
func (c *containerImpl) RegisterKey(key Key, factory Factory, opts ...RegisterOption) error {
	merged := mergeOptions(opts)
	if key.Qualifier == "" {
		key.Qualifier = merged.qualifier
	}

	if key.Capability == "" {
		return errors.ErrEmptyCapability
	}
	if factory == nil {
		return errors.ErrInvalidFactory
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.regs[key]; exists {
		return errors.ErrDuplicateRegistration(key.String())
	}

	reg := &registration{
		key:      key,
		factory:  factory,
		lifetime: merged.lifetime(),
		deps:     merged.allDeps(),
		groups:   merged.groups,
		metadata: merged.metadata,
	}

	c.regs[key] = reg
	c.order = append(c.order, key)
	c.graph.AddNode(key, reg.deps)

	c.logger.Debug("capability registered",
		logger.String("capability", key.String()),
		logger.String("lifetime", reg.lifetime.String()),
		logger.Int("dependencies", len(reg.deps)),
	)
	c.metrics.Counter("registrations_total").Inc()

	return nil
}

// Resolve returns the instance registered for an unqualified capability.
func (c *containerImpl) Resolve(capability string) (any, error) {
	return c.ResolveKey(NewKey(capability))
}

// ResolveQualified returns the instance registered for a capability under
// a qualifier.
func (c *containerImpl) ResolveQualified(capability, qualifier string) (any, error) {
	return c.ResolveKey(QualifiedKey(capability, qualifier))
}

// ResolveKey returns the instance registered for a key. Every call runs
// in a fresh resolution context, so cycle detection covers the full
// nested chain of factory calls.
func (c *containerImpl) ResolveKey(key Key) (any, error) {
	return newResolveContext(c, nil).resolveRoot(key)
}

// Has reports whether an unqualified capability is registered.
func (c *containerImpl) Has(capability string) bool {
	return c.HasKey(NewKey(capability))
}

// HasKey reports whether a key is registered.
func (c *containerImpl) HasKey(key Key) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, exists := c.regs[key]
	return exists
}

// Keys returns all registered keys in registration order.
func (c *containerImpl) Keys() []Key {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Key(nil), c.order...)
}

// BeginScope creates a new scope for request-scoped services.
func (c *containerImpl) BeginScope() Scope {
	return newScope(c)
}

// Graph returns the declared dependency graph.
func (c *containerImpl) Graph() *Graph {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.graph
}

// lookup returns the registration for a key, or nil.
func (c *containerImpl) lookup(key Key) *registration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.regs[key]
}

// lifetimeLabel returns the lifetime metric label for a key.
func (c *containerImpl) lifetimeLabel(key Key) string {
	if reg := c.lookup(key); reg != nil {
		return reg.lifetime.String()
	}
	return "unknown"
}

func (c *containerImpl) setStarted(v bool) {
	c.mu.Lock()
	c.started = v
	c.mu.Unlock()
}
