package di

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/xraph/crucible/errors"
	"github.com/xraph/crucible/logger"
)

// scopeImpl implements Scope. Scoped instances are cached per scope and
// disposed in reverse creation order when the scope ends.
type scopeImpl struct {
	id        string
	container *containerImpl

	mu        sync.Mutex
	instances map[Key]any
	order     []Key
	keyLocks  map[Key]*sync.Mutex
	ended     bool
}

func newScope(c *containerImpl) Scope {
	s := &scopeImpl{
		id:        uuid.NewString(),
		container: c,
		instances: make(map[Key]any),
		keyLocks:  make(map[Key]*sync.Mutex),
	}

	c.metrics.Gauge("active_scopes").Inc()
	c.logger.Debug("scope started", logger.String("scope_id", s.id))

	return s
}

// ID returns the unique scope identifier.
func (s *scopeImpl) ID() string {
	return s.id
}

// Resolve returns the instance registered for an unqualified capability,
// caching scoped instances in this scope.
func (s *scopeImpl) Resolve(capability string) (any, error) {
	return s.ResolveKey(NewKey(capability))
}

// ResolveQualified returns the instance registered for a capability under
// a qualifier.
func (s *scopeImpl) ResolveQualified(capability, qualifier string) (any, error) {
	return s.ResolveKey(QualifiedKey(capability, qualifier))
}

// ResolveKey returns the instance registered for a key.
func (s *scopeImpl) ResolveKey(key Key) (any, error) {
	s.mu.Lock()
	ended := s.ended
	s.mu.Unlock()
	if ended {
		return nil, errors.NewResolutionError(key.String(), "resolve", errors.ErrScopeEnded)
	}

	return newResolveContext(s.container, s).resolveRoot(key)
}

// Has reports whether an unqualified capability is registered.
func (s *scopeImpl) Has(capability string) bool {
	return s.container.Has(capability)
}

// HasKey reports whether a key is registered.
func (s *scopeImpl) HasKey(key Key) bool {
	return s.container.HasKey(key)
}

// cached returns the scope-cached instance for key, if any.
func (s *scopeImpl) cached(key Key) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	instance, ok := s.instances[key]
	return instance, ok
}

// lockFor returns the creation lock for key, creating it on first use.
func (s *scopeImpl) lockFor(key Key) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	mu, ok := s.keyLocks[key]
	if !ok {
		mu = &sync.Mutex{}
		s.keyLocks[key] = mu
	}
	return mu
}

// store caches an instance. It reports false when the scope already
// ended, in which case the instance is not retained.
func (s *scopeImpl) store(key Key, instance any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return false
	}
	s.instances[key] = instance
	s.order = append(s.order, key)
	return true
}

// End disposes scoped instances in reverse creation order and collects
// every disposal error. Calling End again is a no-op.
func (s *scopeImpl) End() error {
	s.mu.Lock()
	if s.ended {
		s.mu.Unlock()
		return nil
	}
	s.ended = true
	instances := s.instances
	order := s.order
	s.instances = nil
	s.order = nil
	s.mu.Unlock()

	var errs error
	for i := len(order) - 1; i >= 0; i-- {
		key := order[i]
		d, ok := instances[key].(Disposer)
		if !ok {
			continue
		}
		if err := d.Dispose(); err != nil {
			errs = multierr.Append(errs, errors.NewResolutionError(key.String(), "dispose", err))
		}
	}

	s.container.metrics.Gauge("active_scopes").Dec()
	s.container.logger.Debug("scope ended",
		logger.String("scope_id", s.id),
		logger.Int("instances", len(order)),
	)

	return errs
}
