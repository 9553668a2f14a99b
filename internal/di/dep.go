package di

// DepMode specifies how a dependency should be resolved.
type DepMode int

const (
	// DepEager resolves the dependency immediately during service creation.
	// Fails if the dependency is not found.
	DepEager DepMode = iota

	// DepLazy defers resolution until the dependency is first accessed.
	// Useful for breaking circular dependencies or expensive services.
	DepLazy

	// DepOptional resolves immediately but returns nil if not found.
	// Does not fail if the dependency is missing.
	DepOptional

	// DepLazyOptional combines lazy resolution with optional behavior.
	// Defers resolution and returns nil if not found on access.
	DepLazyOptional
)

// String returns the mode name used in exports and graph output.
func (m DepMode) String() string {
	switch m {
	case DepEager:
		return "eager"
	case DepLazy:
		return "lazy"
	case DepOptional:
		return "optional"
	case DepLazyOptional:
		return "lazy_optional"
	default:
		return "unknown"
	}
}

// IsLazy reports whether resolution is deferred until first access.
func (m DepMode) IsLazy() bool {
	return m == DepLazy || m == DepLazyOptional
}

// IsOptional reports whether a missing registration is tolerated.
func (m DepMode) IsOptional() bool {
	return m == DepOptional || m == DepLazyOptional
}

// Dep declares a dependency edge for a registration. It names the key the
// service requires and how it should be resolved.
type Dep struct {
	Key  Key
	Mode DepMode
}

// Eager creates an eager dependency on an unqualified capability.
// The dependency is resolved immediately and fails if not found.
func Eager(capability string) Dep {
	return Dep{Key: NewKey(capability), Mode: DepEager}
}

// Lazy creates a lazy dependency on an unqualified capability.
// The dependency is resolved on first access.
func Lazy(capability string) Dep {
	return Dep{Key: NewKey(capability), Mode: DepLazy}
}

// Optional creates an optional dependency on an unqualified capability.
// The dependency is resolved immediately but tolerated when missing.
func Optional(capability string) Dep {
	return Dep{Key: NewKey(capability), Mode: DepOptional}
}

// LazyOptional creates a lazy optional dependency on an unqualified
// capability.
func LazyOptional(capability string) Dep {
	return Dep{Key: NewKey(capability), Mode: DepLazyOptional}
}

// KeyDep creates a dependency on a fully qualified key.
func KeyDep(key Key, mode DepMode) Dep {
	return Dep{Key: key, Mode: mode}
}

// DepNames extracts the canonical key names from a slice of Dep specs.
func DepNames(deps []Dep) []string {
	names := make([]string, len(deps))
	for i, d := range deps {
		names[i] = d.Key.String()
	}
	return names
}

// DepsFromNames converts capability names to eager Dep specs.
func DepsFromNames(names []string) []Dep {
	deps := make([]Dep, len(names))
	for i, name := range names {
		deps[i] = Eager(name)
	}
	return deps
}

// DepsFromKeys converts keys to eager Dep specs.
func DepsFromKeys(keys []Key) []Dep {
	deps := make([]Dep, len(keys))
	for i, key := range keys {
		deps[i] = KeyDep(key, DepEager)
	}
	return deps
}
