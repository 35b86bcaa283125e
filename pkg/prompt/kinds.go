package prompt

import (
	"sort"
	"strings"
	"sync"
)

// Prompt kinds understood by the runner.
const (
	KindText        = "text"
	KindPassword    = "password"
	KindConfirm     = "confirm"
	KindSelect      = "select"
	KindMultiSelect = "multiselect"
	KindMultiline   = "multiline"
	KindNumber      = "number"
)

// Question is what the runner knows about a field when choosing how to ask
// for it.
type Question struct {
	Name    string
	Label   string
	Help    string
	Kind    string
	Choices []string
	Current any
}

// Describer is implemented by fields that carry presentation metadata.
// Fields without it are asked for by name as text.
type Describer interface {
	Label() string
	Help() string
	Kind() string
	Choices() []string
}

// Matcher decides whether a kind should handle the question.
type Matcher func(q Question) bool

type rule struct {
	kind     string
	priority int
	match    Matcher
	order    int
}

// Kinds picks a prompt kind for questions without an explicit one. Higher
// priority wins; ties fall back to registration order. Questions no rule
// matches are asked as text.
type Kinds struct {
	mu    sync.RWMutex
	rules []rule
}

// NewKinds constructs a resolver with the built-in rules registered.
func NewKinds() *Kinds {
	k := &Kinds{}
	k.registerBuiltins()
	return k
}

// Register adds a matcher for kind with the provided priority.
func (k *Kinds) Register(kind string, priority int, matcher Matcher) {
	if k == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(kind)
	if trimmed == "" {
		return
	}
	k.mu.Lock()
	defer k.mu.Unlock()

	k.rules = append(k.rules, rule{
		kind:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(k.rules),
	})
}

// Resolve returns the kind for q. An explicit q.Kind is honoured before
// matcher evaluation.
func (k *Kinds) Resolve(q Question) string {
	if explicit := strings.ToLower(strings.TrimSpace(q.Kind)); explicit != "" {
		return explicit
	}
	if k == nil {
		return KindText
	}
	k.mu.RLock()
	rules := append([]rule(nil), k.rules...)
	k.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(q) {
			return entry.kind
		}
	}
	return KindText
}

func (k *Kinds) registerBuiltins() {
	k.Register(KindConfirm, 90, func(q Question) bool {
		_, ok := q.Current.(bool)
		return ok
	})

	k.Register(KindMultiSelect, 80, func(q Question) bool {
		if len(q.Choices) == 0 {
			return false
		}
		switch q.Current.(type) {
		case []any, []string:
			return true
		}
		return false
	})

	k.Register(KindSelect, 70, func(q Question) bool {
		return len(q.Choices) > 0
	})

	k.Register(KindPassword, 60, func(q Question) bool {
		name := strings.ToLower(q.Name)
		return strings.Contains(name, "password") || strings.Contains(name, "secret")
	})

	k.Register(KindNumber, 50, func(q Question) bool {
		switch q.Current.(type) {
		case int, int32, int64, float32, float64:
			return true
		}
		return false
	})
}
