package form

import (
	"errors"

	"github.com/goliatone/go-formstate/pkg/registry"
)

var (
	// ErrNotRegistered is returned when unregistering a field whose name was
	// never registered.
	ErrNotRegistered = registry.ErrNotRegistered
	// ErrUnsupportedPatch is returned by PatchValue when the patch is not a
	// field map and cannot be coerced into one.
	ErrUnsupportedPatch = errors.New("form: unsupported patch value")
	// ErrUnknownField is returned by operations addressing a field by name
	// when no such field is registered.
	ErrUnknownField = errors.New("form: unknown field")
	// ErrNoController is returned by Mount when the context carries no
	// controller.
	ErrNoController = errors.New("form: no controller in context")
)
