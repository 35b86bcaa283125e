package value

import (
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrNotMapShaped is returned when a codec cannot turn a value into a field map.
var ErrNotMapShaped = errors.New("value: not map-shaped")

// Codec coerces opaque values (structs, encoded documents) into a field map.
type Codec interface {
	Name() string
	ToMap(v any) (map[string]any, error)
}

// CodecFunc adapts a function to Codec.
type CodecFunc func(v any) (map[string]any, error)

// Name implements Codec.
func (fn CodecFunc) Name() string { return "func" }

// ToMap implements Codec.
func (fn CodecFunc) ToMap(v any) (map[string]any, error) {
	if fn == nil {
		return nil, ErrNotMapShaped
	}
	return fn(v)
}

// JSONCodec round-trips values through encoding/json. Struct tags decide the
// field names. Raw []byte and json.RawMessage inputs are decoded directly.
type JSONCodec struct{}

// Name implements Codec.
func (JSONCodec) Name() string { return "json" }

// ToMap implements Codec.
func (JSONCodec) ToMap(v any) (map[string]any, error) {
	if m, ok := v.(map[string]any); ok {
		return Clone(m), nil
	}
	var raw []byte
	switch typed := v.(type) {
	case nil:
		return nil, fmt.Errorf("%w: nil", ErrNotMapShaped)
	case []byte:
		raw = typed
	case json.RawMessage:
		raw = typed
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("value: json encode: %w", err)
		}
		raw = encoded
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotMapShaped, err)
	}
	if out == nil {
		return nil, fmt.Errorf("%w: null document", ErrNotMapShaped)
	}
	return out, nil
}

// YAMLCodec round-trips values through yaml.v3. Struct `yaml` tags decide the
// field names. Raw []byte and string inputs are parsed as YAML documents.
type YAMLCodec struct{}

// Name implements Codec.
func (YAMLCodec) Name() string { return "yaml" }

// ToMap implements Codec.
func (YAMLCodec) ToMap(v any) (map[string]any, error) {
	if m, ok := v.(map[string]any); ok {
		return Clone(m), nil
	}
	var raw []byte
	switch typed := v.(type) {
	case nil:
		return nil, fmt.Errorf("%w: nil", ErrNotMapShaped)
	case []byte:
		raw = typed
	case string:
		raw = []byte(typed)
	default:
		encoded, err := yaml.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("value: yaml encode: %w", err)
		}
		raw = encoded
	}
	var out map[string]any
	if err := yaml.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotMapShaped, err)
	}
	if out == nil {
		return nil, fmt.Errorf("%w: empty document", ErrNotMapShaped)
	}
	return out, nil
}

// Resolve turns an arbitrary initial value into a Value. Maps stay maps; a
// Value passes through; anything else is coerced through codec when one is
// supplied and falls back to a Scalar when coercion is impossible.
func Resolve(v any, codec Codec) Value {
	switch typed := v.(type) {
	case nil:
		return Map(nil)
	case Value:
		return typed
	case map[string]any:
		return Map(typed)
	}
	if codec != nil {
		if fields, err := codec.ToMap(v); err == nil {
			return Map(fields)
		}
	}
	return Scalar(v)
}
