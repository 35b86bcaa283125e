package value

import "sort"

// Kind distinguishes the two shapes a form value can take.
type Kind int

const (
	// KindMap is a key-value form value keyed by field name.
	KindMap Kind = iota
	// KindScalar is an opaque single value that is never split by field.
	KindScalar
)

func (k Kind) String() string {
	switch k {
	case KindMap:
		return "map"
	case KindScalar:
		return "scalar"
	default:
		return "unknown"
	}
}

// Value is a form value resolved to either a map or a scalar at construction
// time. The zero Value is an empty map.
type Value struct {
	kind   Kind
	fields map[string]any
	scalar any
}

// Map wraps a field map. The map is copied so later caller mutations do not
// leak into the Value.
func Map(fields map[string]any) Value {
	return Value{kind: KindMap, fields: Clone(fields)}
}

// Scalar wraps an opaque value that transformers and patches never split.
func Scalar(v any) Value {
	return Value{kind: KindScalar, scalar: DeepCopy(v)}
}

// Kind reports the shape of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsMap reports whether the value is map-shaped.
func (v Value) IsMap() bool {
	return v.kind == KindMap
}

// Fields returns a copy of the field map. Scalar values return nil, false.
func (v Value) Fields() (map[string]any, bool) {
	if v.kind != KindMap {
		return nil, false
	}
	return Clone(v.fields), true
}

// Scalar returns the wrapped scalar, or nil for map-shaped values.
func (v Value) Scalar() any {
	if v.kind != KindScalar {
		return nil
	}
	return DeepCopy(v.scalar)
}

// Lookup returns the entry for name when the value is map-shaped.
func (v Value) Lookup(name string) (any, bool) {
	if v.kind != KindMap || v.fields == nil {
		return nil, false
	}
	entry, ok := v.fields[name]
	return entry, ok
}

// Keys returns the sorted field names of a map-shaped value.
func (v Value) Keys() []string {
	if v.kind != KindMap || len(v.fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(v.fields))
	for key := range v.fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of entries of a map-shaped value.
func (v Value) Len() int {
	if v.kind != KindMap {
		return 0
	}
	return len(v.fields)
}

// Interface returns the value as a plain Go value: map[string]any for maps,
// the wrapped value for scalars. Useful when serializing.
func (v Value) Interface() any {
	if v.kind == KindScalar {
		return v.Scalar()
	}
	out, _ := v.Fields()
	if out == nil {
		out = map[string]any{}
	}
	return out
}

// Clone returns a deep copy of src. A nil source yields an empty map.
func Clone(src map[string]any) map[string]any {
	if len(src) == 0 {
		return make(map[string]any)
	}
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = DeepCopy(v)
	}
	return out
}

// DeepCopy copies nested maps and slices; other values are returned as is.
func DeepCopy(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		clone := make(map[string]any, len(typed))
		for k, v := range typed {
			clone[k] = DeepCopy(v)
		}
		return clone
	case []any:
		clone := make([]any, len(typed))
		for i, v := range typed {
			clone[i] = DeepCopy(v)
		}
		return clone
	case []string:
		return append([]string(nil), typed...)
	default:
		return typed
	}
}
