package form

import (
	"strings"

	"github.com/goliatone/go-formstate/pkg/value"
	"github.com/goliatone/go-formstate/pkg/visibility"
)

// AutovalidateMode controls when fields re-validate on their own.
type AutovalidateMode int

const (
	// AutovalidateDisabled validates only when Validate is called.
	AutovalidateDisabled AutovalidateMode = iota
	// AutovalidateAlways validates a field when it registers and on every
	// change it reports.
	AutovalidateAlways
	// AutovalidateOnUserInteraction validates a field after it reports a
	// change of its own.
	AutovalidateOnUserInteraction
)

func (m AutovalidateMode) String() string {
	switch m {
	case AutovalidateDisabled:
		return "disabled"
	case AutovalidateAlways:
		return "always"
	case AutovalidateOnUserInteraction:
		return "onUserInteraction"
	default:
		return "unknown"
	}
}

// ParseAutovalidateMode maps configuration strings onto a mode. Unknown
// values report false.
func ParseAutovalidateMode(raw string) (AutovalidateMode, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "disabled", "never":
		return AutovalidateDisabled, true
	case "always":
		return AutovalidateAlways, true
	case "onuserinteraction", "on-user-interaction", "on_user_interaction":
		return AutovalidateOnUserInteraction, true
	default:
		return AutovalidateDisabled, false
	}
}

// PatchMode selects how PatchValue treats patches that are not field maps.
type PatchMode int

const (
	// PatchStrict rejects non-map patches with ErrUnsupportedPatch.
	PatchStrict PatchMode = iota
	// PatchLenient coerces non-map patches through the configured codec
	// (JSON when none is set) before rejecting them.
	PatchLenient
)

func (m PatchMode) String() string {
	if m == PatchLenient {
		return "lenient"
	}
	return "strict"
}

type config struct {
	id                     string
	initialValue           any
	codec                  value.Codec
	skipDisabled           bool
	enabled                bool
	clearValueOnUnregister bool
	autovalidate           AutovalidateMode
	patchMode              PatchMode
	debug                  bool
	logger                 Logger
	hooks                  Hooks
	onChanged              func()
	evaluator              visibility.Evaluator
	extras                 map[string]any
}

func defaultConfig() config {
	return config{
		enabled: true,
		logger:  noopLogger{},
	}
}

// Option configures a Controller.
type Option func(*config)

// WithID overrides the generated controller identifier.
func WithID(id string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			cfg.id = trimmed
		}
	}
}

// WithInitialValue sets the form-level initial value: a map, a value.Value,
// or an opaque value coerced through the codec (see WithCodec). Values that
// cannot be coerced make the form scalar-shaped.
func WithInitialValue(v any) Option {
	return func(cfg *config) {
		cfg.initialValue = v
	}
}

// WithCodec sets the codec used to coerce opaque initial values and lenient
// patches into field maps.
func WithCodec(codec value.Codec) Option {
	return func(cfg *config) {
		cfg.codec = codec
	}
}

// WithSkipDisabled omits disabled fields from the committed value.
func WithSkipDisabled(skip bool) Option {
	return func(cfg *config) {
		cfg.skipDisabled = skip
	}
}

// WithEnabled disables every field when false, overriding field-level state.
func WithEnabled(enabled bool) Option {
	return func(cfg *config) {
		cfg.enabled = enabled
	}
}

// WithClearValueOnUnregister drops a field's values from both buffers when
// it unregisters, and reseeds them when a field registers again.
func WithClearValueOnUnregister(clear bool) Option {
	return func(cfg *config) {
		cfg.clearValueOnUnregister = clear
	}
}

// WithAutovalidateMode selects when fields validate on their own.
func WithAutovalidateMode(mode AutovalidateMode) Option {
	return func(cfg *config) {
		cfg.autovalidate = mode
	}
}

// WithPatchMode selects strict or lenient handling of non-map patches.
func WithPatchMode(mode PatchMode) Option {
	return func(cfg *config) {
		cfg.patchMode = mode
	}
}

// WithDebug enables warn-level diagnostics for benign registration races.
func WithDebug(debug bool) Option {
	return func(cfg *config) {
		cfg.debug = debug
	}
}

// WithLogger sets the diagnostics sink. A nil logger discards diagnostics.
func WithLogger(logger Logger) Option {
	return func(cfg *config) {
		if logger == nil {
			cfg.logger = noopLogger{}
			return
		}
		cfg.logger = logger
	}
}

// WithHooks appends lifecycle hooks notified after each command.
func WithHooks(hooks ...Hook) Option {
	return func(cfg *config) {
		for _, hook := range hooks {
			if hook != nil {
				cfg.hooks = append(cfg.hooks, hook)
			}
		}
	}
}

// WithOnChanged registers the change notification, invoked synchronously
// whenever an instant value changes.
func WithOnChanged(fn func()) Option {
	return func(cfg *config) {
		cfg.onChanged = fn
	}
}

// WithVisibilityEvaluator overrides the evaluator used by Visible.
func WithVisibilityEvaluator(evaluator visibility.Evaluator) Option {
	return func(cfg *config) {
		cfg.evaluator = evaluator
	}
}

// WithVisibilityExtras exposes extra context to visibility rules under the
// `extras` variable.
func WithVisibilityExtras(extras map[string]any) Option {
	return func(cfg *config) {
		cfg.extras = value.Clone(extras)
	}
}
