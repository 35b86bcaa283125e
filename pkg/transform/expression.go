package transform

import (
	"fmt"
	"strings"

	exprlang "github.com/expr-lang/expr"
	celgo "github.com/google/cel-go/cel"
)

// Engine names accepted by Compile.
const (
	EngineExpr = "expr"
	EngineCEL  = "cel"
	EngineJS   = "js"
)

// ExpressionOption configures expression transformers.
type ExpressionOption func(*expressionConfig)

type expressionConfig struct {
	onError func(error)
}

// WithErrorHandler receives evaluation failures. The failing transformer
// returns its input unchanged either way.
func WithErrorHandler(fn func(error)) ExpressionOption {
	return func(cfg *expressionConfig) {
		cfg.onError = fn
	}
}

func applyExpressionOptions(opts []ExpressionOption) expressionConfig {
	var cfg expressionConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

func (cfg expressionConfig) report(err error) {
	if cfg.onError != nil && err != nil {
		cfg.onError(err)
	}
}

// Compile builds a transformer from source using the named engine. The value
// being transformed is bound to the variable `value`. An empty engine selects
// expr.
func Compile(engine, source string, opts ...ExpressionOption) (Func, error) {
	switch strings.ToLower(strings.TrimSpace(engine)) {
	case "", EngineExpr:
		return Expr(source, opts...)
	case EngineCEL:
		return CEL(source, opts...)
	case EngineJS, "javascript":
		return JS(source, opts...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, engine)
	}
}

// Expr compiles source with github.com/expr-lang/expr.
func Expr(source string, opts ...ExpressionOption) (Func, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, ErrEmptyExpression
	}
	program, err := exprlang.Compile(source,
		exprlang.Env(map[string]any{}),
		exprlang.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, wrapExpressionError(EngineExpr, source, err)
	}
	cfg := applyExpressionOptions(opts)
	return func(v any) any {
		out, err := exprlang.Run(program, map[string]any{"value": v})
		if err != nil {
			cfg.report(wrapExpressionError(EngineExpr, source, err))
			return v
		}
		return out
	}, nil
}

// CEL compiles source with github.com/google/cel-go. `value` is declared
// dynamic so one transformer serves any field type.
func CEL(source string, opts ...ExpressionOption) (Func, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, ErrEmptyExpression
	}
	env, err := celgo.NewEnv(celgo.Variable("value", celgo.DynType))
	if err != nil {
		return nil, wrapExpressionError(EngineCEL, source, err)
	}
	ast, issues := env.Compile(source)
	if issues != nil && issues.Err() != nil {
		return nil, wrapExpressionError(EngineCEL, source, issues.Err())
	}
	program, err := env.Program(ast)
	if err != nil {
		return nil, wrapExpressionError(EngineCEL, source, err)
	}
	cfg := applyExpressionOptions(opts)
	return func(v any) any {
		out, _, err := program.Eval(map[string]any{"value": v})
		if err != nil {
			cfg.report(wrapExpressionError(EngineCEL, source, err))
			return v
		}
		return out.Value()
	}, nil
}
