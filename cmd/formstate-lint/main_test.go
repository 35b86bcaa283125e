package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/definition"
)

func TestLintDefinition(t *testing.T) {
	def := definition.Definition{
		ID:           "broken",
		Source:       "broken.yaml",
		Autovalidate: "sometimes",
		InitialValue: map[string]any{"ghost": 1},
		Fields: []definition.FieldSpec{
			{Name: "a", Transform: &definition.Expression{Engine: "expr", Source: "value +"}},
			{Name: "b", VisibleWhen: "a >="},
			{Name: "c", Kind: "select"},
			{Name: "d"},
		},
	}

	violations := lintDefinition(def)
	var got []string
	for _, v := range violations {
		got = append(got, v.location)
	}
	want := []string{
		"form > broken",
		"form > broken > initialValue.ghost",
		"form > broken > fields.a > transform",
		"form > broken > fields.b > visibleWhen",
		"form > broken > fields.c",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("violation locations (-want +got):\n%s", diff)
	}
}

func TestLintPath_ExampleForms(t *testing.T) {
	violations, err := lintPath("../../examples/forms")
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	if len(violations) != 0 {
		t.Fatalf("example forms should lint clean, got %+v", violations)
	}
}
