// Package definition loads declarative form definitions from JSON or YAML
// documents and turns them into the fields and controller options that
// pkg/form consumes. A definition describes one form: its settings, its
// initial value and an ordered list of fields with validators, transformers
// and visibility rules.
package definition
