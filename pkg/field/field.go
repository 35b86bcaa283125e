package field

// Source tags where a value change originated so a field can tell a value the
// form pushed into it apart from one it produced itself.
type Source int

const (
	// SourceField marks changes the field originated (user edits, DidChange).
	// Fields report these back to their form.
	SourceField Source = iota
	// SourceForm marks values the form pushed into the field. Fields must not
	// report these back, otherwise form and field would update each other
	// forever.
	SourceForm
)

func (s Source) String() string {
	switch s {
	case SourceField:
		return "field"
	case SourceForm:
		return "form"
	default:
		return "unknown"
	}
}

// State is the capability set a form controller consumes from a mounted
// field. The controller references a State, it never creates or disposes one.
type State interface {
	Name() string
	// InitialValue returns the field-level initial value, if the field
	// declares one.
	InitialValue() (any, bool)
	Value() any

	IsValid() bool
	IsDirty() bool
	IsTouched() bool
	HasError() bool
	ErrorText() string

	SetValue(v any, source Source)
	// DidChange is the external value-change handler: the field adopts v and
	// reports it to its form as its own change.
	DidChange(v any)
	Validate() bool
	Invalidate(errorText string)
	Save()
	Reset()

	Focus()
	EnsureVisible()
}

// Transformer is implemented by fields that expose a read-time value
// transform.
type Transformer interface {
	ValueTransformer() func(any) any
}

// Enabler is implemented by fields that can be individually disabled.
type Enabler interface {
	Enabled() bool
}

// Conditional is implemented by fields with a visibility rule.
type Conditional interface {
	VisibleWhen() string
}

// Form is the view of the owning form a field reports into.
type Form interface {
	SetInternalFieldValue(name string, v any)
	Enabled() bool
}

// Initializer is implemented by fields without a field-level initial value
// that accept the one the form resolves for them. The value becomes the
// baseline for dirty tracking and Reset.
type Initializer interface {
	SetInitialValue(v any)
}

// Attacher is implemented by fields that want a handle on the form they are
// registered with.
type Attacher interface {
	Attach(form Form)
}
