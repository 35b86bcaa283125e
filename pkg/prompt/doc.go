// Package prompt is a terminal host for form controllers. It mounts fields
// into the controller scoped to a context, asks for each visible field
// through a PromptDriver (survey by default) and submits the form with
// SaveAndValidate, re-asking invalid fields until the form validates.
package prompt
