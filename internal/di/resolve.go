package di

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/xraph/crucible/errors"
	"github.com/xraph/crucible/logger"
)

// resolveContext tracks one resolution call. Each requested key moves
// through the states requested, in progress (on the chain), and finally
// resolved or failed. The chain is what makes cycle detection work: a key
// requested while already on the chain is a cycle, reported before any
// registration lock is taken or factory invoked.
type resolveContext struct {
	container *containerImpl
	scope     *scopeImpl // nil when resolving from the container
	ctx       context.Context
	chain     []Key
	onChain   map[Key]int   // key -> position on the chain
	failures  map[Key]error // keys that already failed in this call
}

func newResolveContext(c *containerImpl, s *scopeImpl) *resolveContext {
	return &resolveContext{
		container: c,
		scope:     s,
		ctx:       context.Background(),
		onChain:   make(map[Key]int),
		failures:  make(map[Key]error),
	}
}

// Root returns the resolver this context resolves against: the scope when
// present, otherwise the container. Lazy handles bind to it so deferred
// resolutions run with a fresh chain.
func (rc *resolveContext) Root() Resolver {
	if rc.scope != nil {
		return rc.scope
	}
	return rc.container
}

// Resolve implements Resolver. Factories receive the context itself, so
// nested resolutions extend the same chain.
func (rc *resolveContext) Resolve(capability string) (any, error) {
	return rc.ResolveKey(NewKey(capability))
}

// ResolveQualified implements Resolver.
func (rc *resolveContext) ResolveQualified(capability, qualifier string) (any, error) {
	return rc.ResolveKey(QualifiedKey(capability, qualifier))
}

// ResolveKey implements Resolver.
func (rc *resolveContext) ResolveKey(key Key) (any, error) {
	return rc.resolveKey(key)
}

// Has implements Resolver.
func (rc *resolveContext) Has(capability string) bool {
	return rc.container.Has(capability)
}

// HasKey implements Resolver.
func (rc *resolveContext) HasKey(key Key) bool {
	return rc.container.HasKey(key)
}

// resolveRoot wraps the outermost resolution with instrumentation and a
// uniform error shape. Nested resolutions inside factories go through
// resolveKey directly, so the root cause is wrapped exactly once.
func (rc *resolveContext) resolveRoot(key Key) (any, error) {
	c := rc.container
	start := time.Now()

	var span trace.Span
	if c.tracer != nil {
		rc.ctx, span = c.tracer.Start(rc.ctx, "crucible.resolve",
			trace.WithAttributes(
				attribute.String("crucible.capability", key.Capability),
				attribute.String("crucible.qualifier", key.Qualifier),
			),
		)
		defer span.End()
	}

	instance, err := rc.resolveKey(key)

	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	c.metrics.Counter("resolutions_total",
		"capability", key.Capability,
		"lifetime", c.lifetimeLabel(key),
		"outcome", outcome,
	).Inc()
	c.metrics.Histogram("resolve_duration_seconds", "capability", key.Capability).ObserveDuration(start)

	if err != nil {
		if span != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		c.logger.Error("resolution failed",
			logger.String("capability", key.String()),
			logger.Error(err),
		)
		return nil, errors.NewResolutionError(key.String(), "resolve", err)
	}

	if span != nil {
		span.SetStatus(codes.Ok, "")
	}
	c.logger.Debug("capability resolved",
		logger.String("capability", key.String()),
		logger.Duration("elapsed", time.Since(start)),
	)
	return instance, nil
}

// resolveKey walks one step of the resolution. The chain check runs
// before any lock so an undeclared cycle fails fast instead of
// deadlocking on a registration lock the chain already holds.
func (rc *resolveContext) resolveKey(key Key) (any, error) {
	if err, failed := rc.failures[key]; failed {
		return nil, err
	}

	if _, walking := rc.onChain[key]; walking {
		return nil, errors.ErrCyclicDependency(keyNames(cycleChain(rc.chain, key)))
	}

	reg := rc.container.lookup(key)
	if reg == nil {
		err := errors.ErrUnregisteredDependency(key.String())
		if n := len(rc.chain); n > 0 {
			err = err.WithContext("requested_by", rc.chain[n-1].String())
		}
		rc.failures[key] = err
		return nil, err
	}

	switch reg.lifetime {
	case LifetimeScoped:
		if rc.scope == nil {
			err := errors.ErrScopeRequired(key.String())
			rc.failures[key] = err
			return nil, err
		}
		return rc.resolveScoped(reg)
	case LifetimeTransient:
		return rc.invoke(reg)
	default:
		return rc.resolveSingleton(reg)
	}
}

// resolveSingleton returns the cached instance or invokes the factory
// exactly once. The registration lock is held for the whole creation so
// concurrent resolvers wait for the first to finish; the container lock
// is never held here, leaving factories free to resolve further keys.
func (rc *resolveContext) resolveSingleton(reg *registration) (any, error) {
	// Fast path: already created (read lock).
	reg.mu.RLock()
	if reg.resolved {
		instance := reg.instance
		reg.mu.RUnlock()
		return instance, nil
	}
	reg.mu.RUnlock()

	reg.mu.Lock()
	defer reg.mu.Unlock()

	// Double-check after acquiring the write lock.
	if reg.resolved {
		return reg.instance, nil
	}

	instance, err := rc.invoke(reg)
	if err != nil {
		// Errors are never cached: a later resolve retries the factory.
		return nil, err
	}

	reg.instance = instance
	reg.resolved = true
	rc.container.metrics.Gauge("singletons_cached").Inc()

	return instance, nil
}

// resolveScoped returns the scope-cached instance or invokes the factory
// exactly once within the scope. A per-key lock keeps creation
// exactly-once without serializing the whole scope, so a scoped factory
// can resolve other scoped keys.
func (rc *resolveContext) resolveScoped(reg *registration) (any, error) {
	s := rc.scope

	if instance, ok := s.cached(reg.key); ok {
		return instance, nil
	}

	keyMu := s.lockFor(reg.key)
	keyMu.Lock()
	defer keyMu.Unlock()

	if instance, ok := s.cached(reg.key); ok {
		return instance, nil
	}

	instance, err := rc.invoke(reg)
	if err != nil {
		return nil, err
	}

	if !s.store(reg.key, instance) {
		return nil, errors.ErrScopeEnded
	}
	return instance, nil
}

// invoke runs the factory with the key pushed onto the chain. Factory
// errors that are already container errors (unregistered, cyclic, scope
// required) pass through untouched so callers see the root cause; only
// errors from the factory's own construction logic are wrapped as a
// factory failure.
func (rc *resolveContext) invoke(reg *registration) (any, error) {
	key := reg.key

	var span trace.Span
	if rc.container.tracer != nil {
		parent := rc.ctx
		rc.ctx, span = rc.container.tracer.Start(parent, "crucible.factory",
			trace.WithAttributes(attribute.String("crucible.capability", key.String())),
		)
		defer func() {
			span.End()
			rc.ctx = parent
		}()
	}

	rc.push(key)
	instance, err := reg.factory(rc)
	rc.pop()

	if err != nil {
		if !errors.IsTaxonomy(err) {
			err = errors.ErrFactoryFailed(key.String(), err)
		}
		rc.failures[key] = err
		if span != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return nil, err
	}

	return instance, nil
}

func (rc *resolveContext) push(key Key) {
	rc.onChain[key] = len(rc.chain)
	rc.chain = append(rc.chain, key)
}

func (rc *resolveContext) pop() {
	last := rc.chain[len(rc.chain)-1]
	rc.chain = rc.chain[:len(rc.chain)-1]
	delete(rc.onChain, last)
}
