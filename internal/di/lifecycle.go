package di

import (
	"context"
	"time"

	"go.uber.org/multierr"

	"github.com/xraph/crucible/errors"
	"github.com/xraph/crucible/logger"
)

// Start resolves all singletons in dependency order and starts those
// implementing Service. On failure, already started services are stopped
// in reverse order and the container returns to its unstarted state.
func (c *containerImpl) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return errors.ErrContainerStarted
	}
	order, err := c.graph.TopologicalSort()
	if err != nil {
		c.mu.Unlock()
		return errors.ErrLifecycleError("start", err)
	}
	c.started = true
	c.mu.Unlock()

	began := time.Now()
	var startedKeys []Key

	for _, key := range order {
		reg := c.lookup(key)
		if reg == nil || reg.lifetime != LifetimeSingleton {
			continue
		}

		instance, err := c.ResolveKey(key)
		if err != nil {
			c.rollback(ctx, startedKeys)
			c.setStarted(false)
			return errors.ErrLifecycleError("start", err)
		}

		svc, ok := instance.(Service)
		if !ok {
			continue
		}

		if err := svc.Start(ctx); err != nil {
			c.rollback(ctx, startedKeys)
			c.setStarted(false)
			return errors.ErrLifecycleError("start", errors.NewResolutionError(key.String(), "start", err))
		}

		reg.markStarted(true)
		startedKeys = append(startedKeys, key)
	}

	c.metrics.Counter("lifecycle_transitions_total", "event", "start").Inc()
	c.logger.Info("container started",
		logger.Int("services", len(startedKeys)),
		logger.Duration("elapsed", time.Since(began)),
	)
	return nil
}

// Stop stops started services in reverse dependency order. All stop
// errors are collected; later services are still stopped when an earlier
// one fails. Stopping an unstarted container is a no-op.
func (c *containerImpl) Stop(ctx context.Context) error {
	c.mu.Lock()
	if !c.started {
		c.mu.Unlock()
		return nil
	}
	order, err := c.graph.TopologicalSort()
	if err != nil {
		c.mu.Unlock()
		return errors.ErrLifecycleError("stop", err)
	}
	c.started = false
	c.mu.Unlock()

	var errs error
	for i := len(order) - 1; i >= 0; i-- {
		if err := c.stopOne(ctx, order[i]); err != nil {
			errs = multierr.Append(errs, errors.NewResolutionError(order[i].String(), "stop", err))
		}
	}

	c.metrics.Counter("lifecycle_transitions_total", "event", "stop").Inc()
	c.logger.Info("container stopped")

	if errs != nil {
		return errors.ErrLifecycleError("stop", errs)
	}
	return nil
}

// Health checks every instantiated singleton implementing HealthChecker
// and reports all failures together. Uninstantiated registrations are
// skipped; health cannot be checked on what was never built.
func (c *containerImpl) Health(ctx context.Context) error {
	keys := c.Keys()

	var errs error
	for _, key := range keys {
		reg := c.lookup(key)
		if reg == nil || reg.lifetime != LifetimeSingleton {
			continue
		}

		instance, resolved := reg.cachedInstance()
		if !resolved {
			continue
		}

		checker, ok := instance.(HealthChecker)
		if !ok {
			continue
		}

		if err := checker.Health(ctx); err != nil {
			errs = multierr.Append(errs, errors.ErrHealthCheckFailed(key.String(), err))
		}
	}

	return errs
}

// rollback stops services in reverse order after a failed start. Stop
// errors are logged and otherwise ignored; the start error is what the
// caller needs to see.
func (c *containerImpl) rollback(ctx context.Context, keys []Key) {
	for i := len(keys) - 1; i >= 0; i-- {
		if err := c.stopOne(ctx, keys[i]); err != nil {
			c.logger.Warn("rollback stop failed",
				logger.String("capability", keys[i].String()),
				logger.Error(err),
			)
		}
	}
}

// stopOne stops a single started service.
func (c *containerImpl) stopOne(ctx context.Context, key Key) error {
	reg := c.lookup(key)
	if reg == nil {
		return nil
	}

	reg.mu.RLock()
	instance := reg.instance
	started := reg.started
	reg.mu.RUnlock()

	if !started || instance == nil {
		return nil
	}

	if svc, ok := instance.(Service); ok {
		if err := svc.Stop(ctx); err != nil {
			return err
		}
	}

	reg.markStarted(false)
	return nil
}
