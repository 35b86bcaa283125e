// Package store implements the dual-buffer value store behind a form
// controller. Snapshots are deep copies, so a saved value never changes until
// the next save.
package store
