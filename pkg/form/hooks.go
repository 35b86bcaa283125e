package form

import (
	"errors"
	"strings"
	"time"
)

// Event kinds emitted to hooks.
const (
	EventRegister   = "register"
	EventUnregister = "unregister"
	EventChange     = "change"
	EventSave       = "save"
	EventValidate   = "validate"
	EventReset      = "reset"
	EventPatch      = "patch"
	EventInvalidate = "invalidate"
)

// Event describes a completed controller operation.
type Event struct {
	Kind       string
	FormID     string
	Field      string
	Metadata   map[string]any
	OccurredAt time.Time
}

// Hook receives controller events. Hooks run synchronously on the caller's
// goroutine and must not block.
type Hook interface {
	Notify(event Event) error
}

// HookFunc allows plain functions to satisfy Hook.
type HookFunc func(event Event) error

// Notify dispatches to the underlying function.
func (fn HookFunc) Notify(event Event) error {
	if fn == nil {
		return nil
	}
	return fn(event)
}

// Hooks fans out events to zero or more hooks.
type Hooks []Hook

// Enabled reports whether there are any hooks to notify.
func (h Hooks) Enabled() bool {
	return len(h) > 0
}

// Notify forwards the event to every hook, returning a joined error if any
// fail. Events without a kind are dropped.
func (h Hooks) Notify(event Event) error {
	if len(h) == 0 {
		return nil
	}
	normalized := normalizeEvent(event)
	if normalized.Kind == "" {
		return nil
	}
	var errs []error
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.Notify(normalized); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}

func normalizeEvent(event Event) Event {
	normalized := event
	normalized.Kind = strings.TrimSpace(event.Kind)
	normalized.Field = strings.TrimSpace(event.Field)
	if len(event.Metadata) > 0 {
		normalized.Metadata = make(map[string]any, len(event.Metadata))
		for key, v := range event.Metadata {
			normalized.Metadata[key] = v
		}
	} else {
		normalized.Metadata = nil
	}
	if normalized.OccurredAt.IsZero() {
		normalized.OccurredAt = time.Now()
	}
	return normalized
}
