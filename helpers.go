package crucible

import (
	"fmt"

	errors2 "github.com/xraph/crucible/errors"
)

// Resolve with type safety. It accepts the container, a scope, or the
// resolver handed to a factory.
func Resolve[T any](r Resolver, capability string) (T, error) {
	var zero T
	instance, err := r.Resolve(capability)
	if err != nil {
		return zero, err
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("%w: capability %s is not of type %T", errors2.ErrTypeMismatch, capability, zero)
	}
	return typed, nil
}

// ResolveQualified resolves a qualified capability with type safety.
func ResolveQualified[T any](r Resolver, capability, qualifier string) (T, error) {
	return ResolveKey[T](r, QualifiedKey(capability, qualifier))
}

// ResolveKey resolves a key with type safety.
func ResolveKey[T any](r Resolver, key Key) (T, error) {
	var zero T
	instance, err := r.ResolveKey(key)
	if err != nil {
		return zero, err
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("%w: capability %s is not of type %T", errors2.ErrTypeMismatch, key, zero)
	}
	return typed, nil
}

// Must resolves or panics - use only during startup.
func Must[T any](r Resolver, capability string) T {
	instance, err := Resolve[T](r, capability)
	if err != nil {
		panic(fmt.Sprintf("failed to resolve %s: %v", capability, err))
	}
	return instance
}

// MustKey resolves a key or panics - use only during startup.
func MustKey[T any](r Resolver, key Key) T {
	instance, err := ResolveKey[T](r, key)
	if err != nil {
		panic(fmt.Sprintf("failed to resolve %s: %v", key, err))
	}
	return instance
}

// RegisterSingleton is a convenience wrapper for a typed singleton factory.
func RegisterSingleton[T any](c Container, capability string, factory func(Resolver) (T, error)) error {
	return c.Register(capability, func(r Resolver) (any, error) {
		return factory(r)
	}, Singleton())
}

// RegisterTransient is a convenience wrapper for a typed transient factory.
func RegisterTransient[T any](c Container, capability string, factory func(Resolver) (T, error)) error {
	return c.Register(capability, func(r Resolver) (any, error) {
		return factory(r)
	}, Transient())
}

// RegisterScoped is a convenience wrapper for request-scoped services.
func RegisterScoped[T any](c Container, capability string, factory func(Resolver) (T, error)) error {
	return c.Register(capability, func(r Resolver) (any, error) {
		return factory(r)
	}, Scoped())
}

// RegisterInterface registers an implementation as an interface
// Supports all lifecycle options (Singleton, Scoped, Transient).
func RegisterInterface[I, T any](c Container, capability string, factory func(Resolver) (T, error), opts ...RegisterOption) error {
	return c.Register(capability, func(r Resolver) (any, error) {
		impl, err := factory(r)
		if err != nil {
			return nil, err
		}
		// Return as any - the type will be checked at resolve time
		return any(impl), nil
	}, opts...)
}

// RegisterValue registers a pre-built instance (always singleton).
func RegisterValue[T any](c Container, capability string, instance T) error {
	return c.Register(capability, func(r Resolver) (any, error) {
		return instance, nil
	}, Singleton())
}

// ResolveScope is a helper for resolving from a scope.
func ResolveScope[T any](s Scope, capability string) (T, error) {
	var zero T
	instance, err := s.Resolve(capability)
	if err != nil {
		return zero, err
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("%w: capability %s is not of type %T", errors2.ErrTypeMismatch, capability, zero)
	}
	return typed, nil
}

// MustScope resolves from scope or panics.
func MustScope[T any](s Scope, capability string) T {
	instance, err := ResolveScope[T](s, capability)
	if err != nil {
		panic(fmt.Sprintf("failed to resolve %s from scope: %v", capability, err))
	}
	return instance
}
