package expr

import (
	"fmt"
	"strings"
	"sync"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"

	"github.com/goliatone/go-formstate/pkg/visibility"
)

// Evaluator evaluates visibility rules with github.com/expr-lang/expr.
//
// Form values are bound as top-level variables (`age >= 18`,
// `country == "NO" && consent`), caller extras under `extras`
// (`extras.role == "admin"`), and the field being evaluated under `field`.
// Non-boolean results are coerced by truthiness; an empty rule is visible.
type Evaluator struct {
	mu       sync.RWMutex
	programs map[string]*exprvm.Program
}

// New constructs an evaluator with an empty program cache.
func New() *Evaluator {
	return &Evaluator{programs: make(map[string]*exprvm.Program)}
}

// Eval implements visibility.Evaluator.
func (e *Evaluator) Eval(fieldName, rule string, ctx visibility.Context) (bool, error) {
	trimmed := strings.TrimSpace(rule)
	if trimmed == "" {
		return true, nil
	}
	program, err := e.compile(trimmed)
	if err != nil {
		return false, err
	}
	out, err := exprlang.Run(program, environment(fieldName, ctx))
	if err != nil {
		return false, fmt.Errorf("visibility/expr: eval %q for %s: %w", trimmed, fieldName, err)
	}
	return truthy(out), nil
}

// Check compiles rule without evaluating it.
func (e *Evaluator) Check(rule string) error {
	trimmed := strings.TrimSpace(rule)
	if trimmed == "" {
		return nil
	}
	_, err := e.compile(trimmed)
	return err
}

func (e *Evaluator) compile(rule string) (*exprvm.Program, error) {
	e.mu.RLock()
	program, ok := e.programs[rule]
	e.mu.RUnlock()
	if ok {
		return program, nil
	}

	program, err := exprlang.Compile(rule,
		exprlang.Env(map[string]any{}),
		exprlang.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, fmt.Errorf("visibility/expr: compile %q: %w", rule, err)
	}

	e.mu.Lock()
	e.programs[rule] = program
	e.mu.Unlock()
	return program, nil
}

func environment(fieldName string, ctx visibility.Context) map[string]any {
	env := make(map[string]any, len(ctx.Values)+2)
	for key, value := range ctx.Values {
		env[key] = value
	}
	extras := ctx.Extras
	if extras == nil {
		extras = map[string]any{}
	}
	env["extras"] = extras
	env["field"] = fieldName
	return env
}

func truthy(value any) bool {
	if value == nil {
		return false
	}
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return strings.TrimSpace(v) != ""
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	case float32:
		return v != 0
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	default:
		return true
	}
}
