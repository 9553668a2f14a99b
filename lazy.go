package crucible

import (
	"fmt"

	errors2 "github.com/xraph/crucible/errors"
	"github.com/xraph/crucible/internal/di"
)

// LazyRef wraps a dependency that is resolved on first access.
// This is useful for breaking circular dependencies or deferring
// resolution of expensive services until they're actually needed.
//
// A LazyRef created inside a factory binds to the scope or container the
// factory resolves through, so a later Get runs with a fresh resolution
// chain. The resolved value is cached; a failed resolution is retried on
// the next Get.
type LazyRef[T any] struct {
	inner *di.LazyAny
}

// NewLazyRef creates a new lazy dependency wrapper.
func NewLazyRef[T any](r Resolver, capability string) *LazyRef[T] {
	return &LazyRef[T]{inner: di.NewLazyAny(r, NewKey(capability))}
}

// NewLazyRefKey creates a new lazy dependency wrapper for a qualified key.
func NewLazyRefKey[T any](r Resolver, key Key) *LazyRef[T] {
	return &LazyRef[T]{inner: di.NewLazyAny(r, key)}
}

// Get resolves the dependency on first call and returns the cached value
// after.
func (l *LazyRef[T]) Get() (T, error) {
	var zero T
	instance, err := l.inner.Get()
	if err != nil {
		return zero, err
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("%w: capability %s is not of type %T", errors2.ErrTypeMismatch, l.inner.Key(), zero)
	}
	return typed, nil
}

// MustGet resolves the dependency or panics.
func (l *LazyRef[T]) MustGet() T {
	value, err := l.Get()
	if err != nil {
		panic(fmt.Sprintf("lazy dependency %s failed: %v", l.inner.Key(), err))
	}
	return value
}

// IsResolved reports whether the value has been resolved.
func (l *LazyRef[T]) IsResolved() bool {
	return l.inner.IsResolved()
}

// Key returns the key this reference resolves.
func (l *LazyRef[T]) Key() Key {
	return l.inner.Key()
}

// OptionalLazyRef wraps an optional dependency that is resolved on first
// access. Get returns the zero value without error if the dependency is
// not registered.
type OptionalLazyRef[T any] struct {
	inner *di.OptionalLazyAny
}

// NewOptionalLazyRef creates a new optional lazy dependency wrapper.
func NewOptionalLazyRef[T any](r Resolver, capability string) *OptionalLazyRef[T] {
	return &OptionalLazyRef[T]{inner: di.NewOptionalLazyAny(r, NewKey(capability))}
}

// NewOptionalLazyRefKey creates a new optional lazy dependency wrapper for
// a qualified key.
func NewOptionalLazyRefKey[T any](r Resolver, key Key) *OptionalLazyRef[T] {
	return &OptionalLazyRef[T]{inner: di.NewOptionalLazyAny(r, key)}
}

// Get resolves the dependency on first call. A missing registration
// returns the zero value without error.
func (l *OptionalLazyRef[T]) Get() (T, error) {
	var zero T
	instance, err := l.inner.Get()
	if err != nil {
		return zero, err
	}
	if instance == nil {
		return zero, nil
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("%w: capability %s is not of type %T", errors2.ErrTypeMismatch, l.inner.Key(), zero)
	}
	return typed, nil
}

// IsResolved reports whether Get has completed at least once.
func (l *OptionalLazyRef[T]) IsResolved() bool {
	return l.inner.IsResolved()
}

// IsFound reports whether the dependency was registered when resolved.
func (l *OptionalLazyRef[T]) IsFound() bool {
	return l.inner.IsFound()
}

// Key returns the key this reference resolves.
func (l *OptionalLazyRef[T]) Key() Key {
	return l.inner.Key()
}

// ProviderRef wraps a dependency that is resolved on each access.
// This is useful for transient dependencies where a fresh instance is
// needed each time.
type ProviderRef[T any] struct {
	resolver Resolver
	key      Key
}

// NewProviderRef creates a new provider for transient dependencies.
func NewProviderRef[T any](r Resolver, capability string) *ProviderRef[T] {
	return &ProviderRef[T]{resolver: di.RootResolver(r), key: NewKey(capability)}
}

// NewProviderRefKey creates a new provider for a qualified key.
func NewProviderRefKey[T any](r Resolver, key Key) *ProviderRef[T] {
	return &ProviderRef[T]{resolver: di.RootResolver(r), key: key}
}

// Get resolves a fresh value. Singleton and scoped capabilities still
// return their cached instance; only transient ones construct anew.
func (p *ProviderRef[T]) Get() (T, error) {
	return ResolveKey[T](p.resolver, p.key)
}

// MustGet resolves a fresh value or panics.
func (p *ProviderRef[T]) MustGet() T {
	value, err := p.Get()
	if err != nil {
		panic(fmt.Sprintf("provider for %s failed: %v", p.key, err))
	}
	return value
}

// Key returns the key this provider resolves.
func (p *ProviderRef[T]) Key() Key {
	return p.key
}
