// Package value models the shape of a form value. A form is either
// map-shaped (one entry per field name, transformers apply by key) or scalar
// (an opaque single value returned as is). The shape is resolved once, when
// the controller is constructed, optionally coercing opaque inputs through a
// Codec backed by encoding/json or yaml.v3.
package value
