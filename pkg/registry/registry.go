package registry

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/goliatone/go-formstate/pkg/field"
)

var (
	// ErrNotRegistered indicates Unregister was called for a name that has no
	// registered field. This is a caller bug, never a benign race.
	ErrNotRegistered = errors.New("registry: field not registered")
	// ErrEmptyName indicates a field without a name.
	ErrEmptyName = errors.New("registry: field name must not be empty")
	// ErrNilField indicates a nil field reference.
	ErrNilField = errors.New("registry: field is nil")
	// ErrUncomparableField indicates a field whose dynamic type cannot be
	// compared for identity, typically a struct value holding a slice or map.
	// Register such fields by pointer.
	ErrUncomparableField = errors.New("registry: field type is not comparable")
)

// RegisterResult describes what Register did.
type RegisterResult struct {
	// Replaced is set when another field was registered under the same name.
	// The host mounted a replacement before disposing the old instance.
	Replaced bool
	// Previous is the superseded field when Replaced is set.
	Previous field.State
}

// UnregisterResult describes what Unregister did.
type UnregisterResult struct {
	// Removed is set when the field was the active one and has been dropped.
	Removed bool
	// Superseded is set when a later registration already replaced the field;
	// nothing was removed.
	Superseded bool
}

// Registry maps field names to the active field state, in registration
// order. At most one field is active per name.
type Registry struct {
	mu     sync.RWMutex
	fields map[string]field.State
	order  []string
}

// New constructs an empty registry.
func New() *Registry {
	return &Registry{fields: make(map[string]field.State)}
}

// Register stores f under name. An existing entry is a benign replacement:
// the new field takes over the old one's position.
func (r *Registry) Register(name string, f field.State) (RegisterResult, error) {
	if name == "" {
		return RegisterResult{}, ErrEmptyName
	}
	if f == nil {
		return RegisterResult{}, fmt.Errorf("%w: %q", ErrNilField, name)
	}
	if !reflect.TypeOf(f).Comparable() {
		return RegisterResult{}, fmt.Errorf("%w: %q (%T)", ErrUncomparableField, name, f)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	previous, exists := r.fields[name]
	r.fields[name] = f
	if !exists {
		r.order = append(r.order, name)
		return RegisterResult{}, nil
	}
	return RegisterResult{Replaced: !sameField(previous, f), Previous: previous}, nil
}

// Unregister removes f when it is still the active field for name. Removal is
// gated on identity, not on name: a field superseded by a later Register is
// left alone.
func (r *Registry) Unregister(name string, f field.State) (UnregisterResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.fields[name]
	if !ok {
		return UnregisterResult{}, fmt.Errorf("%w: %q", ErrNotRegistered, name)
	}
	if !sameField(current, f) {
		return UnregisterResult{Superseded: true}, nil
	}
	delete(r.fields, name)
	for i, entry := range r.order {
		if entry == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return UnregisterResult{Removed: true}, nil
}

// sameField reports whether a and b are the same field. Values of different or
// uncomparable dynamic types are never the same field.
func sameField(a, b field.State) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || ta == nil || !ta.Comparable() {
		return false
	}
	return a == b
}

// Lookup returns the active field for name.
func (r *Registry) Lookup(name string) (field.State, bool) {
	r.mu.RLock()
	f, ok := r.fields[name]
	r.mu.RUnlock()
	return f, ok
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Fields returns the active fields in registration order.
func (r *Registry) Fields() []field.State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]field.State, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.fields[name])
	}
	return out
}

// Each calls fn for every active field in registration order, stopping when
// fn returns false. fn runs without the registry lock held, so it may call
// back into the registry.
func (r *Registry) Each(fn func(name string, f field.State) bool) {
	r.mu.RLock()
	names := append([]string(nil), r.order...)
	fields := make([]field.State, len(names))
	for i, name := range names {
		fields[i] = r.fields[name]
	}
	r.mu.RUnlock()

	for i, name := range names {
		if !fn(name, fields[i]) {
			return
		}
	}
}

// Len returns the number of active fields.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
