// Package form implements the form controller: it aggregates independently
// mounted fields into one form, keeps the live (instant) and committed
// (saved) value buffers in sync with them, and runs save, validate, reset and
// patch across all registered fields.
//
// Fields locate their controller through the context (WithController,
// FromContext, Mount) rather than through an explicit reference threaded
// down the host tree.
//
//	ctrl := form.New(form.WithInitialValue(map[string]any{"age": 5}))
//	ctx := form.WithController(context.Background(), ctrl)
//	unmount, _ := form.Mount(ctx, field.NewBasic("age"))
//	defer unmount()
//	ctrl.SaveAndValidate()
package form
