// Package field defines the capability interface a form controller consumes
// from mounted fields, the Source tag carried by every value push, and Basic,
// a reference field implementation for hosts without a widget layer.
package field
