package registry

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/field"
)

func TestRegistry_ReplacementSurvivesStaleUnregister(t *testing.T) {
	r := New()
	a := field.NewBasic("age")
	b := field.NewBasic("age")

	if res, err := r.Register("age", a); err != nil || res.Replaced {
		t.Fatalf("first register: res=%+v err=%v", res, err)
	}
	res, err := r.Register("age", b)
	if err != nil {
		t.Fatalf("second register: %v", err)
	}
	if !res.Replaced || res.Previous != a {
		t.Fatalf("expected replacement of a, got %+v", res)
	}

	un, err := r.Unregister("age", a)
	if err != nil {
		t.Fatalf("stale unregister must not fail: %v", err)
	}
	if !un.Superseded || un.Removed {
		t.Fatalf("expected superseded no-op, got %+v", un)
	}

	got, ok := r.Lookup("age")
	if !ok || got != b {
		t.Fatalf("expected b to stay registered, got %v (ok=%v)", got, ok)
	}
}

func TestRegistry_UnregisterUnknownFails(t *testing.T) {
	r := New()
	if _, err := r.Unregister("ghost", field.NewBasic("ghost")); !errors.Is(err, ErrNotRegistered) {
		t.Fatalf("expected ErrNotRegistered, got %v", err)
	}
}

func TestRegistry_OrderIsStable(t *testing.T) {
	r := New()
	first := field.NewBasic("first")
	second := field.NewBasic("second")
	third := field.NewBasic("third")
	for _, f := range []*field.Basic{first, second, third} {
		if _, err := r.Register(f.Name(), f); err != nil {
			t.Fatalf("register %s: %v", f.Name(), err)
		}
	}

	// replacement keeps the original slot
	if _, err := r.Register("first", field.NewBasic("first")); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if diff := cmp.Diff([]string{"first", "second", "third"}, r.Names()); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}

	if _, err := r.Unregister("second", second); err != nil {
		t.Fatalf("unregister: %v", err)
	}
	if diff := cmp.Diff([]string{"first", "third"}, r.Names()); diff != "" {
		t.Fatalf("order after removal (-want +got):\n%s", diff)
	}
	if r.Len() != 2 || len(r.Fields()) != 2 {
		t.Fatalf("unexpected size %d", r.Len())
	}

	var visited []string
	r.Each(func(name string, _ field.State) bool {
		visited = append(visited, name)
		return false
	})
	if diff := cmp.Diff([]string{"first"}, visited); diff != "" {
		t.Fatalf("each should stop early (-want +got):\n%s", diff)
	}
}

func TestRegistry_RegisterSameInstanceTwice(t *testing.T) {
	r := New()
	f := field.NewBasic("x")
	_, _ = r.Register("x", f)
	res, err := r.Register("x", f)
	if err != nil || res.Replaced {
		t.Fatalf("re-registering the same instance is not a replacement: %+v %v", res, err)
	}
}

func TestRegistry_RejectsInvalidInput(t *testing.T) {
	r := New()
	if _, err := r.Register("", field.NewBasic("")); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	if _, err := r.Register("x", nil); !errors.Is(err, ErrNilField) {
		t.Fatalf("expected ErrNilField, got %v", err)
	}
}

type taggedField struct {
	*field.Basic
	tags []string
}

func TestRegistry_UncomparableFields(t *testing.T) {
	r := New()
	byValue := taggedField{Basic: field.NewBasic("x"), tags: []string{"a"}}

	if _, err := r.Register("x", byValue); !errors.Is(err, ErrUncomparableField) {
		t.Fatalf("expected ErrUncomparableField, got %v", err)
	}
	if r.Len() != 0 {
		t.Fatalf("rejected field must not be registered")
	}

	byPointer := &taggedField{Basic: field.NewBasic("x"), tags: []string{"a"}}
	if _, err := r.Register("x", byPointer); err != nil {
		t.Fatalf("pointer fields are comparable: %v", err)
	}
	un, err := r.Unregister("x", byValue)
	if err != nil || !un.Superseded {
		t.Fatalf("unregistering a different value is a stale no-op, got %+v %v", un, err)
	}
	if un, err := r.Unregister("x", byPointer); err != nil || !un.Removed {
		t.Fatalf("expected removal, got %+v %v", un, err)
	}
}
