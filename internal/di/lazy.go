package di

import (
	"fmt"
	"sync"
)

// LazyAny defers resolution of a key until first access. Unlike an eager
// dependency it never participates in construction-order cycles, which
// makes it the tool for breaking declared circular references.
//
// The resolved value is cached. A failed resolution is not cached, so the
// next Get retries the factory.
type LazyAny struct {
	resolver Resolver
	key      Key

	mu       sync.Mutex
	resolved bool
	value    any
}

// RootResolver returns the stable resolver behind r. Factories receive a
// per-call resolution context that must not outlive the call; handles that
// defer resolution bind to the scope or container underneath it instead.
func RootResolver(r Resolver) Resolver {
	if rc, ok := r.(*resolveContext); ok {
		return rc.Root()
	}
	return r
}

// NewLazyAny creates a lazy handle for key. When called with the resolver
// handed to a factory, the handle binds to the underlying container or
// scope so later Gets run with a fresh resolution chain.
func NewLazyAny(r Resolver, key Key) *LazyAny {
	return &LazyAny{resolver: RootResolver(r), key: key}
}

// Get resolves the key on first call and returns the cached value after.
func (l *LazyAny) Get() (any, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.resolved {
		return l.value, nil
	}

	value, err := l.resolver.ResolveKey(l.key)
	if err != nil {
		return nil, err
	}

	l.value = value
	l.resolved = true
	return value, nil
}

// MustGet resolves the key, panicking on error.
func (l *LazyAny) MustGet() any {
	value, err := l.Get()
	if err != nil {
		panic(fmt.Sprintf("lazy dependency %s failed: %v", l.key, err))
	}
	return value
}

// IsResolved reports whether the value has been resolved.
func (l *LazyAny) IsResolved() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.resolved
}

// Key returns the key this handle resolves.
func (l *LazyAny) Key() Key {
	return l.key
}

// OptionalLazyAny is a lazy handle that tolerates a missing registration:
// Get returns nil without error when the key is not registered.
type OptionalLazyAny struct {
	resolver Resolver
	key      Key

	mu       sync.Mutex
	resolved bool
	found    bool
	value    any
}

// NewOptionalLazyAny creates an optional lazy handle for key.
func NewOptionalLazyAny(r Resolver, key Key) *OptionalLazyAny {
	return &OptionalLazyAny{resolver: RootResolver(r), key: key}
}

// Get resolves the key on first call. A missing registration latches as
// not found; a resolution error is retried on the next Get.
func (l *OptionalLazyAny) Get() (any, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.resolved {
		return l.value, nil
	}

	if !l.resolver.HasKey(l.key) {
		l.resolved = true
		l.found = false
		return nil, nil
	}

	value, err := l.resolver.ResolveKey(l.key)
	if err != nil {
		return nil, err
	}

	l.value = value
	l.resolved = true
	l.found = true
	return value, nil
}

// MustGet resolves the key, panicking on error. A missing registration
// returns nil without panicking.
func (l *OptionalLazyAny) MustGet() any {
	value, err := l.Get()
	if err != nil {
		panic(fmt.Sprintf("optional lazy dependency %s failed: %v", l.key, err))
	}
	return value
}

// IsResolved reports whether Get has completed at least once.
func (l *OptionalLazyAny) IsResolved() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.resolved
}

// IsFound reports whether the key was registered when resolved.
func (l *OptionalLazyAny) IsFound() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.found
}

// Key returns the key this handle resolves.
func (l *OptionalLazyAny) Key() Key {
	return l.key
}
