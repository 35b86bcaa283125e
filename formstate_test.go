package formstate_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate"
	"github.com/goliatone/go-formstate/pkg/definition"
	"github.com/goliatone/go-formstate/pkg/field"
	"github.com/goliatone/go-formstate/pkg/form"
)

func TestScopeAndMount(t *testing.T) {
	ctx, ctrl := formstate.Scope(context.Background(), form.WithInitialValue(map[string]any{"age": 5}))
	age := field.NewBasic("age")
	unmount, err := formstate.Mount(ctx, age)
	if err != nil {
		t.Fatalf("mount: %v", err)
	}
	if age.Value() != 5 {
		t.Fatalf("mounted field should receive the form initial value, got %v", age.Value())
	}
	age.Edit(7)
	ctrl.Save()
	got, _ := ctrl.Value().Fields()
	if diff := cmp.Diff(map[string]any{"age": 7}, got); diff != "" {
		t.Fatalf("saved value (-want +got):\n%s", diff)
	}
	if err := unmount(); err != nil {
		t.Fatalf("unmount: %v", err)
	}
}

func TestLoadDefinition(t *testing.T) {
	ctrl, fields, err := formstate.LoadDefinition(os.DirFS("examples/forms"), "feedback")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	byName := map[string]*definition.Field{}
	for _, f := range fields {
		if err := ctrl.Register(f); err != nil {
			t.Fatalf("register %s: %v", f.Name(), err)
		}
		byName[f.Name()] = f
	}

	if v, _ := ctrl.TransformedValue("rating", false); v != int64(5) {
		t.Fatalf("cel transformer should convert the rating, got %#v", v)
	}
	if visible, _ := ctrl.Visible("email"); visible {
		t.Fatalf("email is hidden until contact is confirmed")
	}

	byName["contact"].Edit(true)
	byName["email"].Edit("  ADA@Example.COM ")
	if visible, _ := ctrl.Visible("email"); !visible {
		t.Fatalf("email should show once contact is confirmed")
	}
	if v, _ := ctrl.TransformedValue("email", false); v != "ada@example.com" {
		t.Fatalf("expr transformer = %#v", v)
	}

	byName["rating"].Edit(nil)
	if !byName["rating"].HasError() {
		t.Fatalf("autovalidate always should flag the cleared rating")
	}
}

func TestLoadDefinition_NotFound(t *testing.T) {
	_, _, err := formstate.LoadDefinition(os.DirFS("examples/forms"), "missing")
	if !errors.Is(err, definition.ErrFormNotFound) {
		t.Fatalf("expected ErrFormNotFound, got %v", err)
	}
}
