//go:build js_eval

package transform

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dop251/goja"
)

// JS compiles source with github.com/dop251/goja. Each evaluation runs in a
// fresh runtime so transformers never share state.
func JS(source string, opts ...ExpressionOption) (Func, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, ErrEmptyExpression
	}
	program, err := goja.Compile("", fmt.Sprintf("(function(value){ return (%s); })", source), false)
	if err != nil {
		return nil, wrapExpressionError(EngineJS, source, err)
	}
	cfg := applyExpressionOptions(opts)
	return func(v any) any {
		out, err := runJS(program, v)
		if err != nil {
			cfg.report(wrapExpressionError(EngineJS, source, err))
			return v
		}
		return out
	}, nil
}

func runJS(program *goja.Program, v any) (any, error) {
	vm := goja.New()
	wrapped, err := vm.RunProgram(program)
	if err != nil {
		return nil, err
	}
	fn, ok := goja.AssertFunction(wrapped)
	if !ok {
		return nil, errors.New("compiled program is not callable")
	}
	result, err := fn(goja.Undefined(), vm.ToValue(v))
	if err != nil {
		return nil, err
	}
	return result.Export(), nil
}

// JSAvailable reports whether the js engine is compiled in.
func JSAvailable() bool {
	return true
}
