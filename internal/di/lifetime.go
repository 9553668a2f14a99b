package di

// Lifetime controls how long a resolved instance is reused.
type Lifetime int

const (
	// LifetimeSingleton caches one instance for the life of the container.
	// This is the default.
	LifetimeSingleton Lifetime = iota

	// LifetimeTransient creates a new instance on every resolve.
	LifetimeTransient

	// LifetimeScoped caches one instance per scope. Scoped capabilities
	// must be resolved through a scope, never from the container directly.
	LifetimeScoped
)

// String returns the lifetime name used in logs, metrics, and exports.
func (l Lifetime) String() string {
	switch l {
	case LifetimeTransient:
		return "transient"
	case LifetimeScoped:
		return "scoped"
	default:
		return "singleton"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (l Lifetime) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// parseLifetime converts a lifecycle string to a Lifetime. Unknown values
// fall back to singleton, matching the registration default.
func parseLifetime(s string) Lifetime {
	switch s {
	case "transient":
		return LifetimeTransient
	case "scoped":
		return LifetimeScoped
	default:
		return LifetimeSingleton
	}
}
