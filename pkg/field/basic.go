package field

import (
	"reflect"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Validator returns an error message for v, or "" when v is acceptable.
type Validator func(v any) string

// Required rejects nil, empty strings and empty collections.
func Required(message string) Validator {
	if strings.TrimSpace(message) == "" {
		message = "this field is required"
	}
	return func(v any) string {
		switch typed := v.(type) {
		case nil:
			return message
		case string:
			if strings.TrimSpace(typed) == "" {
				return message
			}
		case []any:
			if len(typed) == 0 {
				return message
			}
		case []string:
			if len(typed) == 0 {
				return message
			}
		case map[string]any:
			if len(typed) == 0 {
				return message
			}
		}
		return ""
	}
}

// Option configures a Basic field.
type Option func(*Basic)

// WithInitialValue declares the field-level initial value.
func WithInitialValue(v any) Option {
	return func(b *Basic) {
		b.initial = v
		b.hasInitial = true
		b.value = v
	}
}

// WithValidators appends validators run by Validate and IsValid.
func WithValidators(validators ...Validator) Option {
	return func(b *Basic) {
		for _, validator := range validators {
			if validator != nil {
				b.validators = append(b.validators, validator)
			}
		}
	}
}

// WithTransformer sets the read-time value transformer.
func WithTransformer(fn func(any) any) Option {
	return func(b *Basic) {
		b.transformer = fn
	}
}

// WithDisabled marks the field as disabled.
func WithDisabled() Option {
	return func(b *Basic) {
		b.disabled = true
	}
}

// WithVisibleWhen attaches a visibility rule evaluated by the form.
func WithVisibleWhen(rule string) Option {
	return func(b *Basic) {
		b.visibleWhen = strings.TrimSpace(rule)
	}
}

// WithOnFocus registers the host callback invoked when the form focuses the
// field.
func WithOnFocus(fn func()) Option {
	return func(b *Basic) {
		b.onFocus = fn
	}
}

// WithOnEnsureVisible registers the host callback invoked when the form asks
// for the field to be scrolled into view.
func WithOnEnsureVisible(fn func()) Option {
	return func(b *Basic) {
		b.onEnsureVisible = fn
	}
}

// WithOnSaved registers a callback receiving the field value on Save.
func WithOnSaved(fn func(any)) Option {
	return func(b *Basic) {
		b.onSaved = fn
	}
}

// Basic is an in-memory State implementation. Hosts without their own widget
// layer (terminals, tests, server-side forms) can mount it directly.
type Basic struct {
	name        string
	initial     any
	hasInitial  bool
	formInitial any
	value       any
	touched     bool
	errorText   string
	customError string
	validators  []Validator
	transformer func(any) any
	disabled    bool
	visibleWhen string
	form        Form

	onFocus         func()
	onEnsureVisible func()
	onSaved         func(any)

	focusCount  int
	scrollCount int
}

// NewBasic constructs a field named name.
func NewBasic(name string, options ...Option) *Basic {
	b := &Basic{name: strings.TrimSpace(name)}
	for _, opt := range options {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Name implements State.
func (b *Basic) Name() string { return b.name }

// InitialValue implements State.
func (b *Basic) InitialValue() (any, bool) { return b.initial, b.hasInitial }

// Value implements State.
func (b *Basic) Value() any { return b.value }

// IsValid reports whether every validator accepts the current value and no
// custom error was set through Invalidate. It does not change the error text.
func (b *Basic) IsValid() bool {
	if b.customError != "" {
		return false
	}
	return b.runValidators() == ""
}

// IsDirty reports whether the value differs from the initial value.
func (b *Basic) IsDirty() bool {
	return !equalValues(b.value, b.baseline())
}

// SetInitialValue implements Initializer. A field-level initial value wins.
func (b *Basic) SetInitialValue(v any) {
	if b.hasInitial {
		return
	}
	b.formInitial = v
}

func (b *Basic) baseline() any {
	if b.hasInitial {
		return b.initial
	}
	return b.formInitial
}

// IsTouched reports whether the user edited the field.
func (b *Basic) IsTouched() bool { return b.touched }

// HasError implements State.
func (b *Basic) HasError() bool { return b.ErrorText() != "" }

// ErrorText returns the custom error when set, else the last validation error.
func (b *Basic) ErrorText() string {
	if b.customError != "" {
		return b.customError
	}
	return b.errorText
}

// Enabled reports whether the field accepts input. A disabled form disables
// all of its fields.
func (b *Basic) Enabled() bool {
	if b.disabled {
		return false
	}
	if b.form != nil && !b.form.Enabled() {
		return false
	}
	return true
}

// SetDisabled toggles the field-level disabled flag.
func (b *Basic) SetDisabled(disabled bool) { b.disabled = disabled }

// VisibleWhen implements Conditional.
func (b *Basic) VisibleWhen() string { return b.visibleWhen }

// ValueTransformer implements Transformer.
func (b *Basic) ValueTransformer() func(any) any { return b.transformer }

// Attach implements Attacher.
func (b *Basic) Attach(form Form) { b.form = form }

// SetValue adopts v. Values pushed by the form are not reported back.
func (b *Basic) SetValue(v any, source Source) {
	if source == SourceForm {
		b.value = v
		return
	}
	b.DidChange(v)
}

// DidChange adopts v and reports it to the attached form.
func (b *Basic) DidChange(v any) {
	b.value = v
	if b.form != nil {
		b.form.SetInternalFieldValue(b.name, v)
	}
}

// Edit records a user interaction: the field becomes touched and the change
// is reported like DidChange.
func (b *Basic) Edit(v any) {
	b.touched = true
	b.DidChange(v)
}

// Validate runs the validators, clearing any custom error first.
func (b *Basic) Validate() bool {
	b.customError = ""
	if !b.Enabled() {
		b.errorText = ""
		return true
	}
	b.errorText = b.runValidators()
	return b.errorText == ""
}

// Invalidate forces an error message until the next Validate or Reset.
func (b *Basic) Invalidate(errorText string) {
	b.customError = strings.TrimSpace(errorText)
}

// Save hands the current value to the OnSaved callback.
func (b *Basic) Save() {
	if b.onSaved != nil {
		b.onSaved(b.value)
	}
}

// Reset restores the initial value, clears errors and touch state, and
// reports the restored value through the normal change path.
func (b *Basic) Reset() {
	b.touched = false
	b.errorText = ""
	b.customError = ""
	b.DidChange(b.baseline())
}

// Focus implements State.
func (b *Basic) Focus() {
	b.focusCount++
	if b.onFocus != nil {
		b.onFocus()
	}
}

// EnsureVisible implements State.
func (b *Basic) EnsureVisible() {
	b.scrollCount++
	if b.onEnsureVisible != nil {
		b.onEnsureVisible()
	}
}

// FocusCount returns how many times the field received focus.
func (b *Basic) FocusCount() int { return b.focusCount }

// ScrollCount returns how many times the field was asked to become visible.
func (b *Basic) ScrollCount() int { return b.scrollCount }

func (b *Basic) runValidators() string {
	for _, validator := range b.validators {
		if msg := strings.TrimSpace(validator(b.value)); msg != "" {
			return msg
		}
	}
	return ""
}

var exportAll = cmp.Exporter(func(reflect.Type) bool { return true })

func equalValues(a, b any) bool {
	return cmp.Equal(a, b, cmpopts.EquateEmpty(), exportAll)
}

var (
	_ State       = (*Basic)(nil)
	_ Transformer = (*Basic)(nil)
	_ Enabler     = (*Basic)(nil)
	_ Conditional = (*Basic)(nil)
	_ Attacher    = (*Basic)(nil)
	_ Initializer = (*Basic)(nil)
)
