package definition

import (
	"fmt"

	"github.com/goliatone/go-formstate/pkg/field"
	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/transform"
	"github.com/goliatone/go-formstate/pkg/value"
)

// Field is a field.Basic carrying the presentation metadata of its spec.
type Field struct {
	*field.Basic
	spec FieldSpec
}

// Spec returns the declaration the field was built from.
func (f *Field) Spec() FieldSpec { return f.spec }

// Label returns the declared label, falling back to the field name.
func (f *Field) Label() string {
	if f.spec.Label != "" {
		return f.spec.Label
	}
	return f.spec.Name
}

// Help returns the declared help text.
func (f *Field) Help() string { return f.spec.Help }

// Kind returns the declared input kind ("", "text", "password", "confirm",
// "select", "multiselect", "multiline", "number").
func (f *Field) Kind() string { return f.spec.Kind }

// Choices returns the declared options for select kinds.
func (f *Field) Choices() []string { return append([]string(nil), f.spec.Options...) }

// BuildOption configures Build.
type BuildOption func(*buildConfig)

type buildConfig struct {
	onExpressionError func(field string, err error)
}

// WithExpressionErrorHandler receives runtime failures of expression
// transformers. The failing transformer leaves the value unchanged.
func WithExpressionErrorHandler(fn func(field string, err error)) BuildOption {
	return func(cfg *buildConfig) {
		cfg.onExpressionError = fn
	}
}

// Build creates the fields declared by the definition, in declaration order.
// Expression transformers are compiled here; compile failures abort the build.
func (d Definition) Build(options ...BuildOption) ([]*Field, error) {
	var cfg buildConfig
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]*Field, 0, len(d.Fields))
	for _, spec := range d.Fields {
		f, err := buildField(spec, cfg)
		if err != nil {
			return nil, fmt.Errorf("definition: form %q: %w", d.ID, err)
		}
		out = append(out, f)
	}
	return out, nil
}

func buildField(spec FieldSpec, cfg buildConfig) (*Field, error) {
	options := []field.Option{field.WithVisibleWhen(spec.VisibleWhen)}
	if spec.Initial != nil {
		options = append(options, field.WithInitialValue(value.DeepCopy(spec.Initial)))
	}
	if spec.Required {
		options = append(options, field.WithValidators(field.Required(spec.RequiredMessage)))
	}
	if spec.Disabled {
		options = append(options, field.WithDisabled())
	}

	fn, err := transformer(spec, cfg)
	if err != nil {
		return nil, err
	}
	if fn != nil {
		options = append(options, field.WithTransformer(fn))
	}

	return &Field{Basic: field.NewBasic(spec.Name, options...), spec: spec}, nil
}

func transformer(spec FieldSpec, cfg buildConfig) (transform.Func, error) {
	var steps []transform.Func
	if spec.Trim {
		steps = append(steps, transform.TrimSpace)
	}
	switch spec.Sanitize {
	case SanitizeStrip:
		steps = append(steps, transform.StripHTML)
	case SanitizeUGC:
		steps = append(steps, transform.SanitizeHTML)
	}
	if spec.Transform != nil {
		var exprOpts []transform.ExpressionOption
		if cfg.onExpressionError != nil {
			name := spec.Name
			exprOpts = append(exprOpts, transform.WithErrorHandler(func(err error) {
				cfg.onExpressionError(name, err)
			}))
		}
		fn, err := transform.Compile(spec.Transform.Engine, spec.Transform.Source, exprOpts...)
		if err != nil {
			return nil, fmt.Errorf("field %q transform: %w", spec.Name, err)
		}
		steps = append(steps, fn)
	}
	return transform.Chain(steps...), nil
}

// Options translates the form settings into controller options. Extra
// options are appended last and win over the definition.
func (d Definition) Options(extra ...form.Option) ([]form.Option, error) {
	options := []form.Option{
		form.WithID(d.ID),
		form.WithSkipDisabled(d.SkipDisabled),
		form.WithClearValueOnUnregister(d.ClearValueOnUnregister),
		form.WithDebug(d.Debug),
	}
	if d.InitialValue != nil {
		options = append(options, form.WithInitialValue(value.Clone(d.InitialValue)))
	}
	if d.Enabled != nil {
		options = append(options, form.WithEnabled(*d.Enabled))
	}

	mode, ok := form.ParseAutovalidateMode(d.Autovalidate)
	if !ok {
		return nil, fmt.Errorf("definition: form %q: unknown autovalidate mode %q", d.ID, d.Autovalidate)
	}
	options = append(options, form.WithAutovalidateMode(mode))

	switch d.PatchMode {
	case "", "strict":
		options = append(options, form.WithPatchMode(form.PatchStrict))
	case "lenient":
		options = append(options, form.WithPatchMode(form.PatchLenient))
	default:
		return nil, fmt.Errorf("definition: form %q: unknown patch mode %q", d.ID, d.PatchMode)
	}

	return append(options, extra...), nil
}

// NewController builds the controller and the fields of d without
// registering them.
func (d Definition) NewController(extra ...form.Option) (*form.Controller, []*Field, error) {
	options, err := d.Options(extra...)
	if err != nil {
		return nil, nil, err
	}
	fields, err := d.Build()
	if err != nil {
		return nil, nil, err
	}
	return form.New(options...), fields, nil
}
