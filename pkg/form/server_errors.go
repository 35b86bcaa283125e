package form

import (
	"sort"
	"strconv"
	"strings"
)

// ErrorMapping splits a server error payload into field-level and form-level
// messages. Field keys are registered field names.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MapErrors matches the keys of payload (JSON pointers, dotted or bracketed
// paths, optionally wrapped in body/request/data segments) against names.
// Keys matching no name, and the usual form-level keys ("", "form",
// "__all__", "non_field_errors"), land in Form.
func MapErrors(names []string, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{Fields: make(map[string][]string)}
	if len(payload) == 0 {
		return mapping
	}

	known := make(map[string]struct{}, len(names))
	for _, name := range names {
		known[name] = struct{}{}
	}

	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		messages := normalizeMessages(payload[key])
		if len(messages) == 0 {
			continue
		}
		name, formLevel := mapErrorPath(key, known)
		if formLevel {
			mapping.Form = append(mapping.Form, messages...)
			continue
		}
		mapping.Fields[name] = normalizeMessages(append(mapping.Fields[name], messages...))
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

// ApplyErrors maps payload onto the registered fields and invalidates each
// matched field with its messages joined by "; ". With focus, the first
// invalidated field in registration order receives focus. The mapping is
// returned so hosts can surface the form-level messages. A single
// EventInvalidate covers the whole payload.
func (c *Controller) ApplyErrors(payload map[string][]string, focus bool) ErrorMapping {
	names := c.fields.Names()
	mapping := MapErrors(names, payload)

	var invalidated []string
	for _, name := range names {
		messages, ok := mapping.Fields[name]
		if !ok {
			continue
		}
		if err := c.invalidate(name, strings.Join(messages, "; "), focus && len(invalidated) == 0); err != nil {
			continue
		}
		invalidated = append(invalidated, name)
	}
	c.emit(Event{Kind: EventInvalidate, Metadata: map[string]any{
		"fields": invalidated,
		"form":   mapping.Form,
	}})
	return mapping
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}
	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func mapErrorPath(raw string, known map[string]struct{}) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if _, ok := known[trimmed]; ok && trimmed != "" {
		return trimmed, false
	}
	if isFormLevelKey(trimmed) {
		return "", true
	}

	segments := parsePathSegments(trimmed)
	best := ""
	for _, variant := range segmentVariants(segments) {
		if match := longestMatch(variant, known); len(match) > len(best) {
			best = match
		}
	}
	if best == "" {
		return "", true
	}
	return best, false
}

func parsePathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	for strings.HasPrefix(clean, "#") || strings.HasPrefix(clean, "/") || strings.HasPrefix(clean, ".") || strings.HasPrefix(clean, "$") {
		clean = clean[1:]
	}
	clean = strings.NewReplacer("[", ".", "]", "", "//", "/").Replace(clean)
	clean = strings.Trim(clean, "./")
	if clean == "" {
		return nil
	}

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

func segmentVariants(segments []string) [][]string {
	if len(segments) == 0 {
		return nil
	}
	unwrapped := dropWrapperSegments(segments)
	return [][]string{
		segments,
		unwrapped,
		stripNumericSegments(segments),
		stripNumericSegments(unwrapped),
	}
}

var wrapperSegments = map[string]struct{}{
	"body":       {},
	"request":    {},
	"payload":    {},
	"data":       {},
	"attributes": {},
}

func dropWrapperSegments(segments []string) []string {
	out := segments
	for len(out) > 0 {
		if _, ok := wrapperSegments[strings.ToLower(out[0])]; !ok {
			break
		}
		out = out[1:]
	}
	return out
}

func stripNumericSegments(segments []string) []string {
	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		if _, err := strconv.Atoi(segment); err == nil {
			continue
		}
		out = append(out, segment)
	}
	return out
}

// longestMatch returns the longest dotted prefix of segments naming a known
// field.
func longestMatch(segments []string, known map[string]struct{}) string {
	for end := len(segments); end > 0; end-- {
		candidate := strings.Join(segments[:end], ".")
		if _, ok := known[candidate]; ok {
			return candidate
		}
	}
	return ""
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "base", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}
