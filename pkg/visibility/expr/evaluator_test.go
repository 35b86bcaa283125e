package expr

import (
	"testing"

	"github.com/goliatone/go-formstate/pkg/visibility"
)

func TestEvaluatorComparisons(t *testing.T) {
	t.Parallel()

	eval := New()
	cases := []struct {
		name   string
		rule   string
		values map[string]any
		extras map[string]any
		want   bool
	}{
		{name: "empty rule is visible", rule: "  ", want: true},
		{name: "number comparison", rule: "age >= 18", values: map[string]any{"age": 21}, want: true},
		{name: "number comparison false", rule: "age >= 18", values: map[string]any{"age": 12}, want: false},
		{name: "boolean composition", rule: `country == "NO" && consent`, values: map[string]any{"country": "NO", "consent": true}, want: true},
		{name: "negation", rule: "!newsletter", values: map[string]any{"newsletter": false}, want: true},
		{name: "extras", rule: `extras.role == "admin"`, extras: map[string]any{"role": "admin"}, want: true},
		{name: "truthy string", rule: "nickname", values: map[string]any{"nickname": "ada"}, want: true},
		{name: "missing variable is falsy", rule: "nickname", want: false},
		{name: "field binding", rule: `field == "email"`, want: true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := eval.Eval("email", tc.rule, visibility.Context{Values: tc.values, Extras: tc.extras})
			if err != nil {
				t.Fatalf("Eval returned error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("Eval(%q) = %v, want %v", tc.rule, got, tc.want)
			}
		})
	}
}

func TestEvaluatorCompileError(t *testing.T) {
	t.Parallel()

	if _, err := New().Eval("x", "age >=", visibility.Context{}); err == nil {
		t.Fatalf("expected compile error")
	}
}

func TestEvaluatorCachesPrograms(t *testing.T) {
	t.Parallel()

	eval := New()
	for i := 0; i < 3; i++ {
		if _, err := eval.Eval("x", "a == 1", visibility.Context{Values: map[string]any{"a": 1}}); err != nil {
			t.Fatalf("Eval: %v", err)
		}
	}
	if len(eval.programs) != 1 {
		t.Fatalf("expected one cached program, got %d", len(eval.programs))
	}
}

func TestAlwaysVisible(t *testing.T) {
	t.Parallel()

	ok, err := visibility.Always.Eval("x", "false", visibility.Context{})
	if err != nil || !ok {
		t.Fatalf("Always should report visible, got %v %v", ok, err)
	}
}

func TestEvaluatorCheck(t *testing.T) {
	eval := New()
	if err := eval.Check(""); err != nil {
		t.Fatalf("empty rules are valid: %v", err)
	}
	if err := eval.Check("age >= 18"); err != nil {
		t.Fatalf("valid rule rejected: %v", err)
	}
	if err := eval.Check("age >="); err == nil {
		t.Fatalf("expected compile error")
	}
}
