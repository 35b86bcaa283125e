package form

import (
	"fmt"

	"github.com/goliatone/go-formstate/pkg/field"
	"github.com/goliatone/go-formstate/pkg/value"
	"github.com/goliatone/go-formstate/pkg/visibility"
)

// IsValid reports whether every registered field is valid.
func (c *Controller) IsValid() bool {
	valid := true
	c.fields.Each(func(_ string, f field.State) bool {
		valid = f.IsValid()
		return valid
	})
	return valid
}

// IsDirty reports whether any registered field is dirty.
func (c *Controller) IsDirty() bool {
	dirty := false
	c.fields.Each(func(_ string, f field.State) bool {
		dirty = f.IsDirty()
		return !dirty
	})
	return dirty
}

// IsTouched reports whether any registered field was touched.
func (c *Controller) IsTouched() bool {
	touched := false
	c.fields.Each(func(_ string, f field.State) bool {
		touched = f.IsTouched()
		return !touched
	})
	return touched
}

// Errors maps field names to error text for fields currently reporting an
// error.
func (c *Controller) Errors() map[string]string {
	out := make(map[string]string)
	c.fields.Each(func(name string, f field.State) bool {
		if f.HasError() {
			out[name] = f.ErrorText()
		}
		return true
	})
	return out
}

// InstantValue returns the live form value with transformers applied.
// Scalar-shaped forms return the raw value untransformed.
func (c *Controller) InstantValue() value.Value {
	return c.view(false)
}

// Value returns the value committed by the last Save with transformers
// applied. With SkipDisabled, disabled fields are omitted.
func (c *Controller) Value() value.Value {
	return c.view(true)
}

// InitialValue returns the form-level initial value.
func (c *Controller) InitialValue() value.Value {
	return c.initial
}

// RawValue returns the untransformed entry for name from the instant or
// saved buffer, falling back to the initial value.
func (c *Controller) RawValue(name string, fromSaved bool) (any, bool) {
	return c.store.Raw(name, fromSaved)
}

// TransformedValue returns RawValue passed through the field's transformer.
func (c *Controller) TransformedValue(name string, fromSaved bool) (any, bool) {
	raw, ok := c.store.Raw(name, fromSaved)
	if !ok {
		return nil, false
	}
	return c.transforms.Apply(name, raw), true
}

// Fields returns the registered field names in registration order.
func (c *Controller) Fields() []string {
	return c.fields.Names()
}

// Field returns the active field registered under name.
func (c *Controller) Field(name string) (field.State, bool) {
	return c.fields.Lookup(name)
}

// Enabled reports the form-level enabled flag. A disabled form disables all
// of its fields.
func (c *Controller) Enabled() bool {
	return c.cfg.enabled
}

// Visible evaluates the visibility rule of the named field against the
// transformed instant value. Fields without a rule are visible.
func (c *Controller) Visible(name string) (bool, error) {
	f, ok := c.fields.Lookup(name)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	cond, ok := f.(field.Conditional)
	if !ok || cond.VisibleWhen() == "" {
		return true, nil
	}
	values, _ := c.InstantValue().Fields()
	visible, err := c.cfg.evaluator.Eval(name, cond.VisibleWhen(), visibility.Context{
		Values: values,
		Extras: c.cfg.extras,
	})
	if err != nil {
		c.diagnose(LevelError, "visible", name, "visibility rule failed", err)
		return false, err
	}
	return visible, nil
}

func (c *Controller) view(fromSaved bool) value.Value {
	if !c.initial.IsMap() {
		return c.scalarView(fromSaved)
	}

	var raw map[string]any
	if fromSaved {
		raw = c.store.Saved()
		if c.cfg.skipDisabled {
			for name := range raw {
				if f, ok := c.fields.Lookup(name); ok && !c.fieldEnabled(f) {
					delete(raw, name)
				}
			}
		}
	} else {
		raw = c.store.Instant()
	}
	return value.Map(c.transforms.ApplyToMap(raw))
}

// scalarView exposes the raw value of the first registered field, or the
// initial scalar when no field holds one.
func (c *Controller) scalarView(fromSaved bool) value.Value {
	names := c.fields.Names()
	if len(names) > 0 {
		if v, ok := c.store.Raw(names[0], fromSaved); ok {
			return value.Scalar(v)
		}
	}
	return c.initial
}

func (c *Controller) fieldEnabled(f field.State) bool {
	if !c.cfg.enabled {
		return false
	}
	if e, ok := f.(field.Enabler); ok {
		return e.Enabled()
	}
	return true
}
