package form

import (
	"fmt"
	"log"
	"strings"
)

// Level grades a diagnostic.
type Level int

const (
	LevelDebug Level = iota
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// Diagnostic describes something the controller noticed while running an
// operation. Warn-level diagnostics cover benign registration races; errors
// cover caller-contract violations and failing hooks.
type Diagnostic struct {
	Level   Level
	FormID  string
	Op      string
	Field   string
	Message string
	Err     error
}

func (d Diagnostic) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "formstate[%s] %s %s", d.FormID, d.Level, d.Op)
	if d.Field != "" {
		fmt.Fprintf(&b, " field=%s", d.Field)
	}
	if d.Message != "" {
		fmt.Fprintf(&b, ": %s", d.Message)
	}
	if d.Err != nil {
		fmt.Fprintf(&b, " err=%v", d.Err)
	}
	return b.String()
}

// Logger records diagnostics.
type Logger interface {
	LogDiagnostic(Diagnostic)
}

// LoggerFunc adapts a function to Logger.
type LoggerFunc func(Diagnostic)

// LogDiagnostic implements Logger.
func (f LoggerFunc) LogDiagnostic(d Diagnostic) {
	if f != nil {
		f(d)
	}
}

type noopLogger struct{}

func (noopLogger) LogDiagnostic(Diagnostic) {}

// StdLogger writes diagnostics through a standard library logger. A nil
// logger uses log.Default().
func StdLogger(l *log.Logger) Logger {
	if l == nil {
		l = log.Default()
	}
	return LoggerFunc(func(d Diagnostic) {
		l.Println(d.String())
	})
}
