package transform

import (
	"sort"
	"sync"
)

// Func maps a stored value to its externally visible form. Implementations
// must be pure: the same input yields the same output and the input is never
// mutated.
type Func func(v any) any

// Registry maps field names to read-time transformers.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]Func
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{funcs: make(map[string]Func)}
}

// Register associates fn with name, replacing any prior transformer. A nil fn
// removes the association.
func (r *Registry) Register(name string, fn Func) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if fn == nil {
		delete(r.funcs, name)
		return
	}
	r.funcs[name] = fn
}

// Unregister removes the transformer for name.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	delete(r.funcs, name)
	r.mu.Unlock()
}

// Has reports whether name has a transformer.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	_, ok := r.funcs[name]
	r.mu.RUnlock()
	return ok
}

// Names returns the names with a transformer, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply returns fn(v) for the transformer registered under name, or v.
func (r *Registry) Apply(name string, v any) any {
	r.mu.RLock()
	fn := r.funcs[name]
	r.mu.RUnlock()
	if fn == nil {
		return v
	}
	return fn(v)
}

// ApplyToMap returns a new map with every entry transformed by key. The input
// map is left untouched.
func (r *Registry) ApplyToMap(src map[string]any) map[string]any {
	out := make(map[string]any, len(src))
	for name, v := range src {
		out[name] = r.Apply(name, v)
	}
	return out
}
