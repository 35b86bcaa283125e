package visibility

// Evaluator decides whether a field is visible given its rule and the
// current form values.
type Evaluator interface {
	Eval(fieldName, rule string, ctx Context) (bool, error)
}

// Context carries the inputs of a rule. Values holds the transformed instant
// value of the form; Extras lets callers inject anything else (roles, feature
// flags) under the `extras` variable.
type Context struct {
	Values map[string]any
	Extras map[string]any
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(fieldName, rule string, ctx Context) (bool, error)

// Eval delegates to the underlying function.
func (fn EvaluatorFunc) Eval(fieldName, rule string, ctx Context) (bool, error) {
	return fn(fieldName, rule, ctx)
}

// Always reports every field as visible.
var Always = EvaluatorFunc(func(string, string, Context) (bool, error) {
	return true, nil
})
