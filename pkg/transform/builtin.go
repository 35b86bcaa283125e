package transform

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Chain composes transformers left to right. Nil entries are skipped.
func Chain(fns ...Func) Func {
	chain := make([]Func, 0, len(fns))
	for _, fn := range fns {
		if fn != nil {
			chain = append(chain, fn)
		}
	}
	if len(chain) == 0 {
		return nil
	}
	if len(chain) == 1 {
		return chain[0]
	}
	return func(v any) any {
		for _, fn := range chain {
			v = fn(v)
		}
		return v
	}
}

// TrimSpace trims string values; other values pass through.
func TrimSpace(v any) any {
	switch typed := v.(type) {
	case string:
		return strings.TrimSpace(typed)
	case []string:
		out := make([]string, len(typed))
		for i, s := range typed {
			out[i] = strings.TrimSpace(s)
		}
		return out
	default:
		return v
	}
}

var (
	strictPolicyOnce sync.Once
	strictPolicy     *bluemonday.Policy
	ugcPolicyOnce    sync.Once
	ugcPolicy        *bluemonday.Policy
)

// StripHTML removes every tag from string values.
func StripHTML(v any) any {
	strictPolicyOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return sanitizeWith(strictPolicy, v)
}

// SanitizeHTML keeps user-generated-content markup (links, emphasis, lists)
// and drops scripts, styles and event handlers.
func SanitizeHTML(v any) any {
	ugcPolicyOnce.Do(func() {
		ugcPolicy = bluemonday.UGCPolicy()
	})
	return sanitizeWith(ugcPolicy, v)
}

// SanitizeWith builds a transformer around a caller-supplied policy.
func SanitizeWith(policy *bluemonday.Policy) Func {
	if policy == nil {
		return nil
	}
	return func(v any) any {
		return sanitizeWith(policy, v)
	}
}

func sanitizeWith(policy *bluemonday.Policy, v any) any {
	switch typed := v.(type) {
	case string:
		return policy.Sanitize(typed)
	case []string:
		out := make([]string, len(typed))
		for i, s := range typed {
			out[i] = policy.Sanitize(s)
		}
		return out
	default:
		return v
	}
}
