package regioncache

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

type Logger interface {
	DebugEnabled() bool
	SetDebug(enabled bool)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// DefaultLogger writes "[prefix/scope] LEVEL: msg" lines. Scoped loggers made
// with With share the debug switch of their root.
type DefaultLogger struct {
	state  *logState
	prefix string
	scope  string
	out    *log.Logger
	err    *log.Logger
}

type logState struct {
	mu    sync.Mutex
	debug bool
}

func NewDefaultLogger(prefix string, debug bool) *DefaultLogger {
	return newDefaultLoggerTo(os.Stdout, os.Stderr, log.LstdFlags|log.Lmicroseconds, prefix, debug)
}

func newDefaultLoggerTo(out, err io.Writer, flags int, prefix string, debug bool) *DefaultLogger {
	return &DefaultLogger{
		state:  &logState{debug: debug},
		prefix: prefix,
		out:    log.New(out, "", flags),
		err:    log.New(err, "", flags),
	}
}

// With returns a logger whose lines are tagged with scope, e.g. the level a
// region cache belongs to.
func (l *DefaultLogger) With(scope string) *DefaultLogger {
	child := *l
	if l.scope != "" {
		scope = l.scope + "/" + scope
	}
	child.scope = scope
	return &child
}

func (l *DefaultLogger) DebugEnabled() bool {
	l.state.mu.Lock()
	defer l.state.mu.Unlock()
	return l.state.debug
}

func (l *DefaultLogger) SetDebug(enabled bool) {
	l.state.mu.Lock()
	l.state.debug = enabled
	l.state.mu.Unlock()
}

func (l *DefaultLogger) tag() string {
	switch {
	case l.prefix != "" && l.scope != "":
		return "[" + l.prefix + "/" + l.scope + "] "
	case l.prefix != "":
		return "[" + l.prefix + "] "
	case l.scope != "":
		return "[" + l.scope + "] "
	}
	return ""
}

func (l *DefaultLogger) line(level string, format string, args ...any) string {
	return l.tag() + level + ": " + fmt.Sprintf(format, args...)
}

func (l *DefaultLogger) Debugf(format string, args ...any) {
	if !l.DebugEnabled() {
		return
	}
	l.out.Print(l.line("DEBUG", format, args...))
}

func (l *DefaultLogger) Infof(format string, args ...any) {
	l.out.Print(l.line("INFO", format, args...))
}

func (l *DefaultLogger) Warnf(format string, args ...any) {
	l.err.Print(l.line("WARN", format, args...))
}

func (l *DefaultLogger) Errorf(format string, args ...any) {
	l.err.Print(l.line("ERROR", format, args...))
}

// levelLogger tags base with the level index when it supports scoping.
func levelLogger(base Logger, level int) Logger {
	if l, ok := base.(*DefaultLogger); ok {
		return l.With(fmt.Sprintf("level %d", level))
	}
	return base
}

// LoggingModule installs a default logger as a resource.
type LoggingModule struct {
	Prefix string
	Debug  bool
}

func (m LoggingModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(NewDefaultLogger(m.Prefix, m.Debug))
}

type nopLogger struct{}

func NewNopLogger() Logger { return &nopLogger{} }

func (n *nopLogger) DebugEnabled() bool                { return false }
func (n *nopLogger) SetDebug(enabled bool)             {}
func (n *nopLogger) Debugf(format string, args ...any) {}
func (n *nopLogger) Infof(format string, args ...any)  {}
func (n *nopLogger) Warnf(format string, args ...any)  {}
func (n *nopLogger) Errorf(format string, args ...any) {}

// Logger returns the installed DefaultLogger, or a no-op logger. Never nil.
func (app *App) Logger() Logger {
	if app == nil {
		return NewNopLogger()
	}
	if l, ok := Resource[DefaultLogger](app); ok {
		return l
	}
	return NewNopLogger()
}
