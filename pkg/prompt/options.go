package prompt

// Theme captures optional message prefixes the runner applies when printing
// through the driver.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures the Runner.
type Option func(*Runner)

// WithPromptDriver overrides the prompt driver used by the runner.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Runner) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithKinds overrides the kind resolver.
func WithKinds(kinds *Kinds) Option {
	return func(r *Runner) {
		if kinds != nil {
			r.kinds = kinds
		}
	}
}

// WithMaxAttempts bounds how often a field is re-asked after failing
// validation, and how many submit rounds are attempted. Values below 1 are
// ignored.
func WithMaxAttempts(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.maxAttempts = n
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Runner) {
		r.theme = theme
	}
}
