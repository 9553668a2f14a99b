package di

import (
	"go.uber.org/multierr"

	"github.com/xraph/crucible/errors"
	"github.com/xraph/crucible/logger"
)

// Validate checks every registration without invoking a single factory.
// All problems are reported together rather than stopping at the first:
//
//   - required dependencies that are not registered (optional ones are
//     skipped, lazy ones still count since they must exist by first access)
//   - cycles through eager edges, each distinct cycle reported once with
//     its full chain (lazy edges break cycles and are not followed)
//   - singletons with an eager scoped dependency, which could only ever
//     resolve inside one arbitrary scope
//
// A nil return means the graph is resolvable. The combined error unwraps
// into the individual problems via multierr.Errors.
func (c *containerImpl) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var errs error

	for _, key := range c.order {
		reg := c.regs[key]
		for _, dep := range reg.deps {
			if dep.Mode.IsOptional() {
				continue
			}

			target, exists := c.regs[dep.Key]
			if !exists {
				errs = multierr.Append(errs, errors.ErrUnregisteredDependency(dep.Key.String()).
					WithContext("requested_by", key.String()))
				continue
			}

			if reg.lifetime == LifetimeSingleton && !dep.Mode.IsLazy() && target.lifetime == LifetimeScoped {
				errs = multierr.Append(errs, errors.ErrScopeRequired(dep.Key.String()).
					WithContext("requested_by", key.String()))
			}
		}
	}

	for _, cycle := range c.graph.Cycles() {
		errs = multierr.Append(errs, errors.ErrCyclicDependency(keyNames(cycle)))
	}

	if errs != nil {
		c.logger.Warn("container validation failed",
			logger.Int("problems", len(multierr.Errors(errs))),
		)
	}
	return errs
}
