package prompt

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/goliatone/go-formstate/pkg/field"
	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/value"
)

// Result is the outcome of a submitted form.
type Result struct {
	Value  value.Value
	Valid  bool
	Errors map[string]string
}

// Editor is implemented by fields that record user interaction separately
// from plain change reports (field.Basic.Edit).
type Editor interface {
	Edit(v any)
}

// Runner asks for field values on a terminal.
type Runner struct {
	driver      PromptDriver
	kinds       *Kinds
	maxAttempts int
	theme       Theme
}

// New constructs a runner backed by the survey driver unless overridden.
func New(options ...Option) *Runner {
	r := &Runner{
		kinds:       NewKinds(),
		maxAttempts: 3,
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	return r
}

// Run mounts fields into the controller scoped to ctx, asks for each of them
// and submits the form. Fields are unmounted before Run returns; the result
// captures the committed value while they are still mounted.
func (r *Runner) Run(ctx context.Context, fields ...field.State) (result Result, err error) {
	if _, ok := form.FromContext(ctx); !ok {
		return Result{}, form.ErrNoController
	}

	var unmounts []func() error
	defer func() {
		var errs []error
		for i := len(unmounts) - 1; i >= 0; i-- {
			if uerr := unmounts[i](); uerr != nil {
				errs = append(errs, uerr)
			}
		}
		if len(errs) > 0 {
			err = errors.Join(append([]error{err}, errs...)...)
		}
	}()
	for _, f := range fields {
		unmount, mountErr := form.Mount(ctx, f)
		if mountErr != nil {
			return Result{}, mountErr
		}
		unmounts = append(unmounts, unmount)
	}

	if err := r.Fill(ctx); err != nil {
		return Result{}, err
	}
	return r.Submit(ctx)
}

// Fill asks for every enabled, visible field of the controller scoped to ctx
// in registration order.
func (r *Runner) Fill(ctx context.Context) error {
	ctrl, ok := form.FromContext(ctx)
	if !ok {
		return form.ErrNoController
	}
	for _, name := range ctrl.Fields() {
		if err := r.askIfShown(ctx, ctrl, name); err != nil {
			return err
		}
	}
	return nil
}

// Submit saves and validates the form, re-asking invalid fields until it
// validates or the attempts run out. An invalid result is not an error.
func (r *Runner) Submit(ctx context.Context) (Result, error) {
	ctrl, ok := form.FromContext(ctx)
	if !ok {
		return Result{}, form.ErrNoController
	}

	for round := 1; ; round++ {
		if ctrl.SaveAndValidate(form.FocusOnInvalid(false)) {
			return Result{Value: ctrl.Value(), Valid: true, Errors: map[string]string{}}, nil
		}
		errs := ctrl.Errors()
		if round >= r.maxAttempts {
			return Result{Value: ctrl.Value(), Valid: false, Errors: errs}, nil
		}
		r.info(ctx, fmt.Sprintf("%d field(s) need attention", len(errs)))
		for _, name := range ctrl.Fields() {
			if _, invalid := errs[name]; !invalid {
				continue
			}
			if err := r.askIfShown(ctx, ctrl, name); err != nil {
				return Result{}, err
			}
		}
	}
}

func (r *Runner) askIfShown(ctx context.Context, ctrl *form.Controller, name string) error {
	f, ok := ctrl.Field(name)
	if !ok {
		return nil
	}
	if e, ok := f.(field.Enabler); ok && !e.Enabled() {
		return nil
	}
	visible, err := ctrl.Visible(name)
	if err != nil {
		return err
	}
	if !visible {
		return nil
	}
	return r.ask(ctx, ctrl, f)
}

func (r *Runner) ask(ctx context.Context, ctrl *form.Controller, f field.State) error {
	q := r.question(ctrl, f)
	kind := r.kinds.Resolve(q)

	for attempt := 1; ; attempt++ {
		answer, err := r.answer(ctx, kind, q)
		if err != nil {
			var parseErr *strconv.NumError
			if errors.As(err, &parseErr) && attempt < r.maxAttempts {
				r.warn(ctx, fmt.Sprintf("Invalid %s: not a number", q.Label))
				continue
			}
			return err
		}

		if editor, ok := f.(Editor); ok {
			editor.Edit(answer)
		} else {
			f.DidChange(answer)
		}
		if f.Validate() && !f.HasError() {
			return nil
		}
		if attempt >= r.maxAttempts {
			return fmt.Errorf("%w: %s: %s", ErrTooManyAttempts, q.Name, f.ErrorText())
		}
		r.warn(ctx, fmt.Sprintf("Invalid %s: %s", q.Label, f.ErrorText()))
		q.Current = answer
	}
}

func (r *Runner) question(ctrl *form.Controller, f field.State) Question {
	q := Question{Name: f.Name(), Label: f.Name()}
	if d, ok := f.(Describer); ok {
		if label := strings.TrimSpace(d.Label()); label != "" {
			q.Label = label
		}
		q.Help = d.Help()
		q.Kind = d.Kind()
		q.Choices = d.Choices()
	}
	if current, ok := ctrl.RawValue(f.Name(), false); ok {
		q.Current = current
	}
	return q
}

func (r *Runner) answer(ctx context.Context, kind string, q Question) (any, error) {
	switch kind {
	case KindConfirm:
		return r.driver.Confirm(ctx, q)
	case KindSelect:
		choice, err := r.driver.Choose(ctx, q)
		if err != nil || !slices.Contains(q.Choices, choice) {
			return nil, err
		}
		return choice, nil
	case KindMultiSelect:
		chosen, err := r.driver.ChooseMany(ctx, q)
		if err != nil {
			return nil, err
		}
		return knownChoices(q.Choices, chosen), nil
	case KindPassword:
		return r.driver.Password(ctx, q)
	case KindMultiline:
		return r.driver.Multiline(ctx, q)
	case KindNumber:
		raw, err := r.driver.Text(ctx, q)
		if err != nil {
			return nil, err
		}
		return parseNumber(raw)
	default:
		return r.driver.Text(ctx, q)
	}
}

func (r *Runner) info(ctx context.Context, msg string) {
	_ = r.driver.Info(ctx, r.theme.InfoPrefix+msg)
}

func (r *Runner) warn(ctx context.Context, msg string) {
	_ = r.driver.Info(ctx, r.theme.ErrorPrefix+msg)
}

// parseNumber keeps integers integral. Empty input clears the value.
func parseNumber(raw string) (any, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}
	if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return int(i), nil
	}
	return strconv.ParseFloat(trimmed, 64)
}

func stringValue(v any) string {
	switch typed := v.(type) {
	case nil:
		return ""
	case string:
		return typed
	default:
		return fmt.Sprint(typed)
	}
}

func stringSlice(v any) []string {
	switch typed := v.(type) {
	case []string:
		return typed
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			out = append(out, stringValue(item))
		}
		return out
	}
	return nil
}
