package transform

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyExpression is returned when an expression transformer has no
	// source.
	ErrEmptyExpression = errors.New("transform: expression must not be empty")
	// ErrUnknownEngine is returned by Compile for unsupported engine names.
	ErrUnknownEngine = errors.New("transform: unknown expression engine")
	// ErrEngineUnavailable is returned when an engine was compiled out of the
	// binary (the js engine requires the js_eval build tag).
	ErrEngineUnavailable = errors.New("transform: expression engine unavailable")
)

// ExpressionError captures the engine and expression alongside the
// originating compile or evaluation error.
type ExpressionError struct {
	Engine string
	Expr   string
	Err    error
}

func (e *ExpressionError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("transform: %s expression %q: %v", e.Engine, e.Expr, e.Err)
}

func (e *ExpressionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func wrapExpressionError(engine, expr string, err error) error {
	if err == nil {
		return nil
	}
	var exprErr *ExpressionError
	if errors.As(err, &exprErr) {
		return err
	}
	return &ExpressionError{Engine: engine, Expr: expr, Err: err}
}
