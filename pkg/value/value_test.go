package value_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/value"
)

type profile struct {
	Name string `json:"name" yaml:"name"`
	Age  int    `json:"age" yaml:"age"`
}

func TestMap_CopiesInput(t *testing.T) {
	src := map[string]any{"tags": []any{"a"}}
	v := value.Map(src)
	src["tags"].([]any)[0] = "mutated"
	src["extra"] = true

	got, ok := v.Fields()
	if !ok {
		t.Fatalf("expected map-shaped value")
	}
	want := map[string]any{"tags": []any{"a"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestScalar_IsNotSplit(t *testing.T) {
	v := value.Scalar("hello")
	if v.IsMap() {
		t.Fatalf("scalar reported as map")
	}
	if _, ok := v.Lookup("hello"); ok {
		t.Fatalf("scalar lookup should miss")
	}
	if got := v.Interface(); got != "hello" {
		t.Fatalf("expected scalar interface, got %#v", got)
	}
	if v.Kind().String() != "scalar" {
		t.Fatalf("unexpected kind %s", v.Kind())
	}
}

func TestResolve(t *testing.T) {
	cases := []struct {
		name  string
		input any
		codec value.Codec
		kind  value.Kind
		want  any
	}{
		{name: "nil is empty map", input: nil, kind: value.KindMap, want: map[string]any{}},
		{name: "map stays map", input: map[string]any{"a": 1}, kind: value.KindMap, want: map[string]any{"a": 1}},
		{name: "struct without codec is scalar", input: profile{Name: "ada"}, kind: value.KindScalar, want: profile{Name: "ada"}},
		{
			name:  "struct with json codec",
			input: profile{Name: "ada", Age: 36},
			codec: value.JSONCodec{},
			kind:  value.KindMap,
			want:  map[string]any{"name": "ada", "age": float64(36)},
		},
		{
			name:  "struct with yaml codec",
			input: profile{Name: "ada", Age: 36},
			codec: value.YAMLCodec{},
			kind:  value.KindMap,
			want:  map[string]any{"name": "ada", "age": 36},
		},
		{name: "string with json codec stays scalar", input: "plain", codec: value.JSONCodec{}, kind: value.KindScalar, want: "plain"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := value.Resolve(tc.input, tc.codec)
			if got.Kind() != tc.kind {
				t.Fatalf("kind = %s, want %s", got.Kind(), tc.kind)
			}
			if diff := cmp.Diff(tc.want, got.Interface()); diff != "" {
				t.Fatalf("value mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCodecs_RejectNonObjects(t *testing.T) {
	if _, err := (value.JSONCodec{}).ToMap([]int{1, 2}); !errors.Is(err, value.ErrNotMapShaped) {
		t.Fatalf("expected ErrNotMapShaped from json codec, got %v", err)
	}
	if _, err := (value.YAMLCodec{}).ToMap("- a\n- b\n"); !errors.Is(err, value.ErrNotMapShaped) {
		t.Fatalf("expected ErrNotMapShaped from yaml codec, got %v", err)
	}
}

func TestYAMLCodec_ParsesDocuments(t *testing.T) {
	got, err := (value.YAMLCodec{}).ToMap("age: 10\nname: grace\n")
	if err != nil {
		t.Fatalf("to map: %v", err)
	}
	want := map[string]any{"age": 10, "name": "grace"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("yaml document mismatch (-want +got):\n%s", diff)
	}
}
