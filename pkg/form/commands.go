package form

import (
	"fmt"

	"github.com/goliatone/go-formstate/pkg/field"
	"github.com/goliatone/go-formstate/pkg/value"
)

// ValidateOption configures Validate.
type ValidateOption func(*validateOptions)

type validateOptions struct {
	focusOnInvalid bool
	autoScroll     bool
}

// FocusOnInvalid controls whether the first invalid field receives focus.
// Enabled by default.
func FocusOnInvalid(focus bool) ValidateOption {
	return func(o *validateOptions) {
		o.focusOnInvalid = focus
	}
}

// AutoScrollWhenFocusOnInvalid additionally asks the focused invalid field to
// scroll into view.
func AutoScrollWhenFocusOnInvalid(scroll bool) ValidateOption {
	return func(o *validateOptions) {
		o.autoScroll = scroll
	}
}

// Save runs every field's save step, then snapshots the instant buffer into
// the saved buffer.
func (c *Controller) Save() {
	c.fields.Each(func(_ string, f field.State) bool {
		f.Save()
		return true
	})
	c.store.SnapshotToSaved()
	c.emit(Event{Kind: EventSave})
}

// Validate validates every field and reports whether none is invalid. The
// first invalid field in registration order is focused unless disabled by
// FocusOnInvalid(false), and scrolled into view with
// AutoScrollWhenFocusOnInvalid(true).
func (c *Controller) Validate(options ...ValidateOption) bool {
	opts := validateOptions{focusOnInvalid: true}
	for _, opt := range options {
		if opt != nil {
			opt(&opts)
		}
	}

	var invalid []string
	var first field.State
	c.fields.Each(func(name string, f field.State) bool {
		if ok := f.Validate(); !ok || f.HasError() {
			invalid = append(invalid, name)
			if first == nil {
				first = f
			}
		}
		return true
	})

	if first != nil && opts.focusOnInvalid {
		first.Focus()
		if opts.autoScroll {
			first.EnsureVisible()
		}
	}

	c.emit(Event{Kind: EventValidate, Metadata: map[string]any{
		"valid":   len(invalid) == 0,
		"invalid": invalid,
	}})
	return len(invalid) == 0
}

// SaveAndValidate saves, then validates with the given options.
func (c *Controller) SaveAndValidate(options ...ValidateOption) bool {
	c.Save()
	return c.Validate(options...)
}

// Reset asks every field to return to its initial value. Fields report the
// restored values through the normal change path.
func (c *Controller) Reset() {
	c.resetting = true
	defer func() { c.resetting = false }()

	c.fields.Each(func(_ string, f field.State) bool {
		f.Reset()
		return true
	})
	c.emit(Event{Kind: EventReset})
}

// PatchValue hands each entry of patch to the matching registered field as
// an external change. Fields absent from patch are untouched; entries without
// a registered field are ignored.
//
// Patches must be field maps (map[string]any or a map-shaped value.Value).
// In lenient mode other values are coerced through the codec first.
func (c *Controller) PatchValue(patch any) error {
	fields, err := c.patchFields(patch)
	if err != nil {
		c.diagnose(LevelError, "patch", "", "", err)
		return err
	}

	var patched []string
	c.fields.Each(func(name string, f field.State) bool {
		if v, ok := fields[name]; ok {
			f.DidChange(v)
			patched = append(patched, name)
		}
		return true
	})
	if c.cfg.debug && len(patched) < len(fields) {
		c.debug("patch", "", fmt.Sprintf("%d patch entries matched no registered field", len(fields)-len(patched)))
	}
	c.emit(Event{Kind: EventPatch, Metadata: map[string]any{"fields": patched}})
	return nil
}

// InvalidateField forces an error on the named field, optionally focusing it.
func (c *Controller) InvalidateField(name, errorText string, focus bool) error {
	if err := c.invalidate(name, errorText, focus); err != nil {
		return err
	}
	c.emit(Event{Kind: EventInvalidate, Field: name, Metadata: map[string]any{"error": errorText}})
	return nil
}

func (c *Controller) invalidate(name, errorText string, focus bool) error {
	f, ok := c.fields.Lookup(name)
	if !ok {
		err := fmt.Errorf("%w: %q", ErrUnknownField, name)
		c.diagnose(LevelError, "invalidate", name, "", err)
		return err
	}
	f.Invalidate(errorText)
	if focus {
		f.Focus()
	}
	return nil
}

func (c *Controller) patchFields(patch any) (map[string]any, error) {
	switch typed := patch.(type) {
	case map[string]any:
		return typed, nil
	case value.Value:
		if fields, ok := typed.Fields(); ok {
			return fields, nil
		}
		patch = typed.Scalar()
	}
	if c.cfg.patchMode == PatchLenient && c.cfg.codec != nil {
		fields, err := c.cfg.codec.ToMap(patch)
		if err != nil {
			return nil, fmt.Errorf("%w: %s codec: %v", ErrUnsupportedPatch, c.cfg.codec.Name(), err)
		}
		return fields, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedPatch, patch)
}
