//go:build !js_eval

package transform

// JS is unavailable without the js_eval build tag.
func JS(source string, opts ...ExpressionOption) (Func, error) {
	_ = applyExpressionOptions(opts)
	return nil, &ExpressionError{Engine: EngineJS, Expr: source, Err: ErrEngineUnavailable}
}

// JSAvailable reports whether the js engine is compiled in.
func JSAvailable() bool {
	return false
}
