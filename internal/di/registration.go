package di

import "sync"

// registration holds one registered factory and its cached state.
// The registration lock is separate from the container lock so singleton
// creation never blocks unrelated lookups.
type registration struct {
	key      Key
	factory  Factory
	lifetime Lifetime
	deps     []Dep
	groups   []string
	metadata map[string]string

	mu       sync.RWMutex
	instance any
	resolved bool
	started  bool
}

// cachedInstance returns the singleton instance, if one has been created.
func (r *registration) cachedInstance() (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.instance, r.resolved
}

func (r *registration) markStarted(v bool) {
	r.mu.Lock()
	r.started = v
	r.mu.Unlock()
}
