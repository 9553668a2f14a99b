package di

// RegisterOption is a configuration option for service registration.
type RegisterOption struct {
	lifecycle    string // "singleton", "scoped", or "transient"
	qualifier    string
	dependencies []string
	deps         []Dep
	metadata     map[string]string
	groups       []string
}

// Singleton makes the service a singleton (default).
func Singleton() RegisterOption {
	return RegisterOption{lifecycle: "singleton"}
}

// Transient makes the service created on each resolve.
func Transient() RegisterOption {
	return RegisterOption{lifecycle: "transient"}
}

// Scoped makes the service live for the duration of a scope.
func Scoped() RegisterOption {
	return RegisterOption{lifecycle: "scoped"}
}

// WithQualifier registers the capability under a qualifier so several
// providers of the same capability can coexist.
func WithQualifier(qualifier string) RegisterOption {
	return RegisterOption{qualifier: qualifier}
}

// WithDependencies declares explicit dependencies by capability name.
// All dependencies are treated as eager.
func WithDependencies(capabilities ...string) RegisterOption {
	return RegisterOption{dependencies: capabilities}
}

// WithDependencyKeys declares eager dependencies on qualified keys.
func WithDependencyKeys(keys ...Key) RegisterOption {
	return RegisterOption{deps: DepsFromKeys(keys)}
}

// WithDeps declares dependencies with full Dep specs (modes, qualifiers).
func WithDeps(deps ...Dep) RegisterOption {
	return RegisterOption{deps: deps}
}

// WithMetadata adds diagnostic metadata to the registration.
func WithMetadata(key, value string) RegisterOption {
	return RegisterOption{metadata: map[string]string{key: value}}
}

// WithGroup adds the service to a named group.
func WithGroup(group string) RegisterOption {
	return RegisterOption{groups: []string{group}}
}

// mergeOptions combines multiple options. The last lifecycle and
// qualifier win; dependency lists, metadata, and groups accumulate.
func mergeOptions(opts []RegisterOption) RegisterOption {
	result := RegisterOption{
		lifecycle: "singleton", // default
		metadata:  make(map[string]string),
	}

	for _, opt := range opts {
		if opt.lifecycle != "" {
			result.lifecycle = opt.lifecycle
		}
		if opt.qualifier != "" {
			result.qualifier = opt.qualifier
		}
		result.dependencies = append(result.dependencies, opt.dependencies...)
		result.deps = append(result.deps, opt.deps...)
		for k, v := range opt.metadata {
			result.metadata[k] = v
		}
		result.groups = append(result.groups, opt.groups...)
	}

	return result
}

// allDeps returns the combined dependency specs: Dep-based declarations
// first, then name-based ones converted to eager deps.
func (o RegisterOption) allDeps() []Dep {
	if len(o.deps) == 0 && len(o.dependencies) == 0 {
		return nil
	}
	out := make([]Dep, 0, len(o.deps)+len(o.dependencies))
	out = append(out, o.deps...)
	out = append(out, DepsFromNames(o.dependencies)...)
	return out
}

// lifetime converts the merged lifecycle string to a Lifetime.
func (o RegisterOption) lifetime() Lifetime {
	return parseLifetime(o.lifecycle)
}
