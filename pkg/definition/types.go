package definition

// Catalog keeps the definitions parsed by LoadFS keyed by form id. It is safe
// for concurrent readers when treated as immutable after construction.
type Catalog struct {
	forms map[string]Definition
	order []string
}

// Definition describes a single form.
type Definition struct {
	ID                     string         `json:"id" yaml:"id"`
	Title                  string         `json:"title" yaml:"title"`
	Description            string         `json:"description,omitempty" yaml:"description,omitempty"`
	InitialValue           map[string]any `json:"initialValue,omitempty" yaml:"initialValue,omitempty"`
	SkipDisabled           bool           `json:"skipDisabled,omitempty" yaml:"skipDisabled,omitempty"`
	Enabled                *bool          `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	ClearValueOnUnregister bool           `json:"clearValueOnUnregister,omitempty" yaml:"clearValueOnUnregister,omitempty"`
	Autovalidate           string         `json:"autovalidate,omitempty" yaml:"autovalidate,omitempty"`
	PatchMode              string         `json:"patchMode,omitempty" yaml:"patchMode,omitempty"`
	Debug                  bool           `json:"debug,omitempty" yaml:"debug,omitempty"`
	Fields                 []FieldSpec    `json:"fields" yaml:"fields"`
	Source                 string         `json:"-" yaml:"-"`
}

// FieldSpec declares one field of a definition.
type FieldSpec struct {
	Name            string      `json:"name" yaml:"name"`
	Label           string      `json:"label,omitempty" yaml:"label,omitempty"`
	Help            string      `json:"help,omitempty" yaml:"help,omitempty"`
	Kind            string      `json:"kind,omitempty" yaml:"kind,omitempty"`
	Initial         any         `json:"initial,omitempty" yaml:"initial,omitempty"`
	Required        bool        `json:"required,omitempty" yaml:"required,omitempty"`
	RequiredMessage string      `json:"requiredMessage,omitempty" yaml:"requiredMessage,omitempty"`
	Options         []string    `json:"options,omitempty" yaml:"options,omitempty"`
	Trim            bool        `json:"trim,omitempty" yaml:"trim,omitempty"`
	Sanitize        string      `json:"sanitize,omitempty" yaml:"sanitize,omitempty"`
	Transform       *Expression `json:"transform,omitempty" yaml:"transform,omitempty"`
	VisibleWhen     string      `json:"visibleWhen,omitempty" yaml:"visibleWhen,omitempty"`
	Disabled        bool        `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}

// Expression is a transformer written in one of the engines supported by
// transform.Compile.
type Expression struct {
	Engine string `json:"engine" yaml:"engine"`
	Source string `json:"source" yaml:"source"`
}

// Sanitize modes accepted by FieldSpec.Sanitize.
const (
	SanitizeNone  = ""
	SanitizeStrip = "strip"
	SanitizeUGC   = "ugc"
)
