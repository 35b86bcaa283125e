package form

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/goliatone/go-formstate/pkg/field"
	"github.com/goliatone/go-formstate/pkg/registry"
	"github.com/goliatone/go-formstate/pkg/store"
	"github.com/goliatone/go-formstate/pkg/transform"
	"github.com/goliatone/go-formstate/pkg/value"
	visexpr "github.com/goliatone/go-formstate/pkg/visibility/expr"
)

// Controller aggregates registered fields into one form. It owns the field
// registry, the value store and the transformer registry for its lifetime.
//
// A Controller is driven from a single goroutine: fields call back into it
// synchronously (DidChange reports through SetInternalFieldValue), so it holds
// no lock across those calls.
type Controller struct {
	id         string
	cfg        config
	initial    value.Value
	store      *store.Store
	transforms *transform.Registry
	fields     *registry.Registry
	resetting  bool
}

// New constructs a controller. The initial value shape is resolved here and
// stays fixed for the controller's lifetime.
func New(options ...Option) *Controller {
	cfg := defaultConfig()
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.id == "" {
		cfg.id = uuid.NewString()
	}
	if cfg.evaluator == nil {
		cfg.evaluator = visexpr.New()
	}
	if cfg.patchMode == PatchLenient && cfg.codec == nil {
		cfg.codec = value.JSONCodec{}
	}

	initial := value.Resolve(cfg.initialValue, cfg.codec)
	return &Controller{
		id:         cfg.id,
		cfg:        cfg,
		initial:    initial,
		store:      store.New(initial),
		transforms: transform.NewRegistry(),
		fields:     registry.New(),
	}
}

// ID returns the controller identifier carried by events and diagnostics.
func (c *Controller) ID() string { return c.id }

// Register mounts f under f.Name().
//
// A field already registered under the same name is replaced, not rejected:
// hosts mount the replacement before disposing the previous instance. The
// field's transformer is associated, its instant value seeded (field initial
// value first, form initial value second) when the form clears values on
// unregister or holds none yet, and the resolved value pushed into the field
// tagged field.SourceForm. Fields implementing field.Initializer without an
// initial value of their own receive the form's initial value as baseline.
func (c *Controller) Register(f field.State) error {
	if f == nil {
		err := registry.ErrNilField
		c.diagnose(LevelError, "register", "", "", err)
		return fmt.Errorf("form: register: %w", err)
	}
	name := f.Name()
	res, err := c.fields.Register(name, f)
	if err != nil {
		c.diagnose(LevelError, "register", name, "", err)
		return fmt.Errorf("form: register: %w", err)
	}
	if res.Replaced {
		c.debug("register", name, "replacing field still registered under the same name")
	}

	var fn transform.Func
	if t, ok := f.(field.Transformer); ok {
		fn = t.ValueTransformer()
	}
	c.transforms.Register(name, fn)

	if a, ok := f.(field.Attacher); ok {
		a.Attach(c)
	}

	if _, own := f.InitialValue(); !own {
		if initializer, ok := f.(field.Initializer); ok {
			if v, ok := c.initial.Lookup(name); ok {
				initializer.SetInitialValue(v)
			}
		}
	}

	if c.cfg.clearValueOnUnregister || !c.store.HasInstant(name) {
		if v, ok := f.InitialValue(); ok {
			c.setInstant(name, v)
		} else if v, ok := c.initial.Lookup(name); ok {
			c.setInstant(name, v)
		}
	}
	if v, ok := c.store.Raw(name, false); ok {
		f.SetValue(v, field.SourceForm)
	}

	if c.cfg.autovalidate == AutovalidateAlways {
		f.Validate()
	}
	c.emit(Event{Kind: EventRegister, Field: name, Metadata: map[string]any{"replaced": res.Replaced}})
	return nil
}

// Unregister unmounts f. Only the active field for its name is removed; a
// field already superseded by a later Register is left alone. Unregistering
// a name that was never registered returns ErrNotRegistered and changes
// nothing.
func (c *Controller) Unregister(f field.State) error {
	if f == nil {
		err := registry.ErrNilField
		c.diagnose(LevelError, "unregister", "", "", err)
		return fmt.Errorf("form: unregister: %w", err)
	}
	name := f.Name()
	res, err := c.fields.Unregister(name, f)
	if err != nil {
		c.diagnose(LevelError, "unregister", name, "unregister called for a field that was never registered", err)
		return fmt.Errorf("form: unregister: %w", err)
	}
	if res.Superseded {
		c.debug("unregister", name, "ignoring unregister of a field already replaced under the same name")
		return nil
	}

	c.transforms.Unregister(name)
	if c.cfg.clearValueOnUnregister {
		c.store.RemoveInstant(name)
		c.store.RemoveSaved(name)
		c.notifyChanged(name)
	}
	c.emit(Event{Kind: EventUnregister, Field: name})
	return nil
}

// SetInternalFieldValue records a change reported by a field and notifies
// change listeners. Fields call it for changes they originate.
func (c *Controller) SetInternalFieldValue(name string, v any) {
	c.setInstant(name, v)
	if c.resetting && c.cfg.autovalidate != AutovalidateAlways {
		return
	}
	if c.cfg.autovalidate == AutovalidateDisabled {
		return
	}
	if f, ok := c.fields.Lookup(name); ok {
		f.Validate()
	}
}

// RemoveInternalFieldValue drops the instant entry for name.
func (c *Controller) RemoveInternalFieldValue(name string) {
	c.store.RemoveInstant(name)
	c.notifyChanged(name)
}

func (c *Controller) setInstant(name string, v any) {
	c.store.SetInstant(name, v)
	c.notifyChanged(name)
}

func (c *Controller) notifyChanged(name string) {
	if c.cfg.onChanged != nil {
		c.cfg.onChanged()
	}
	if c.cfg.hooks.Enabled() {
		c.emit(Event{Kind: EventChange, Field: name})
	}
}

func (c *Controller) emit(event Event) {
	if !c.cfg.hooks.Enabled() {
		return
	}
	event.FormID = c.id
	if err := c.cfg.hooks.Notify(event); err != nil {
		c.diagnose(LevelError, "hooks", event.Field, "hook failed for "+event.Kind, err)
	}
}

func (c *Controller) debug(op, name, message string) {
	if !c.cfg.debug {
		return
	}
	c.diagnose(LevelWarn, op, name, message, nil)
}

func (c *Controller) diagnose(level Level, op, name, message string, err error) {
	c.cfg.logger.LogDiagnostic(Diagnostic{
		Level:   level,
		FormID:  c.id,
		Op:      op,
		Field:   name,
		Message: message,
		Err:     err,
	})
}

var _ field.Form = (*Controller)(nil)
