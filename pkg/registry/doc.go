// Package registry tracks which field state is active for each field name.
//
// Hosts may mount a replacement field before the previous instance is
// disposed, so the protocol is:
//
//   - Register over an existing name replaces the entry and reports it; it is
//     never an error.
//   - Unregister compares identity. The active field is removed; a field that
//     was already superseded is left alone and reported as such.
//   - Unregister for a name that was never registered returns
//     ErrNotRegistered.
package registry
