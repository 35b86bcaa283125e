package formstate

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-formstate/pkg/definition"
	"github.com/goliatone/go-formstate/pkg/field"
	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/value"
)

// Controller aliases form.Controller for callers importing the root package.
type Controller = form.Controller

// Option aliases form.Option.
type Option = form.Option

// Field aliases field.State, the capability set every mounted field exposes.
type Field = field.State

// Value aliases value.Value, the tagged union returned by the value views.
type Value = value.Value

// Definition aliases definition.Definition.
type Definition = definition.Definition

// New constructs a form controller.
func New(options ...Option) *Controller {
	return form.New(options...)
}

// Scope returns a context carrying a new controller together with the
// controller itself, ready for fields to Mount.
func Scope(ctx context.Context, options ...Option) (context.Context, *Controller) {
	ctrl := form.New(options...)
	return form.WithController(ctx, ctrl), ctrl
}

// Mount registers f with the nearest controller scoped to ctx.
func Mount(ctx context.Context, f Field) (func() error, error) {
	return form.Mount(ctx, f)
}

// LoadDefinition loads the definition with the given id from fsys and builds
// its controller and fields. The fields are not registered.
func LoadDefinition(fsys fs.FS, id string, options ...Option) (*Controller, []*definition.Field, error) {
	catalog, err := definition.LoadFS(fsys)
	if err != nil {
		return nil, nil, err
	}
	def, ok := catalog.Form(id)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", definition.ErrFormNotFound, id)
	}
	return def.NewController(options...)
}
