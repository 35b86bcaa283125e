package form

import (
	"context"

	"github.com/goliatone/go-formstate/pkg/field"
)

type controllerKey struct{}

// WithController scopes c to ctx. Descendants find the nearest enclosing
// controller through FromContext; an inner WithController shadows an outer
// one.
func WithController(ctx context.Context, c *Controller) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, controllerKey{}, c)
}

// FromContext returns the nearest controller scoped to ctx.
func FromContext(ctx context.Context) (*Controller, bool) {
	if ctx == nil {
		return nil, false
	}
	c, ok := ctx.Value(controllerKey{}).(*Controller)
	return c, ok && c != nil
}

// Mount registers f with the controller scoped to ctx and returns the
// matching unmount function.
func Mount(ctx context.Context, f field.State) (unmount func() error, err error) {
	c, ok := FromContext(ctx)
	if !ok {
		return nil, ErrNoController
	}
	if err := c.Register(f); err != nil {
		return nil, err
	}
	return func() error {
		return c.Unregister(f)
	}, nil
}
