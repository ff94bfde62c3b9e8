// Package trace is the debug logging facility for the solver bridge.
// It produces an indented, human-readable transcript of solver
// interactions. At verbosity 0 every method is a cheap early return,
// so callers can log unconditionally.
package trace

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// Verbosity levels. Level 1 logs goal-engine activity (assumptions,
// goals, query outcomes); level 2 additionally logs raw solver
// traffic and indent motion.
const (
	LevelSilent  = 0
	LevelEngine  = 1
	LevelVerbose = 2
)

const indentStep = 2

// Logger writes indented trace lines to a writer. A nil Logger and a
// silent Logger are both valid and do nothing. Loggers are not safe
// for concurrent use; each solver session owns its own.
type Logger struct {
	w      io.Writer
	level  int
	indent int
	color  bool
	tag    string
}

// New returns a logger writing to w at the given verbosity. Label
// coloring is enabled only when w is a terminal.
func New(w io.Writer, level int) *Logger {
	color := false
	if f, ok := w.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Logger{w: w, level: level, color: color}
}

// Nop returns an inert logger satisfying the full interface.
func Nop() *Logger { return &Logger{} }

// SetTag attaches a short session tag prefixed to every line, so
// transcripts from concurrently running sessions stay attributable.
func (l *Logger) SetTag(tag string) {
	if l != nil {
		l.tag = tag
	}
}

// SetLevel changes the verbosity of an existing logger.
func (l *Logger) SetLevel(level int) {
	if l != nil {
		l.level = level
	}
}

// Level returns the current verbosity, 0 for a nil or silent logger.
func (l *Logger) Level() int {
	if l == nil {
		return LevelSilent
	}
	return l.level
}

func (l *Logger) enabled(level int) bool {
	return l != nil && l.w != nil && l.level >= level
}

func (l *Logger) write(line string) {
	pad := strings.Repeat(" ", l.indent)
	if l.tag != "" {
		fmt.Fprintf(l.w, "[%s] %s%s\n", l.tag, pad, line)
		return
	}
	fmt.Fprintf(l.w, "%s%s\n", pad, line)
}

// Message logs a formatted line at engine granularity.
func (l *Logger) Message(format string, args ...any) {
	if !l.enabled(LevelEngine) {
		return
	}
	l.write(fmt.Sprintf(format, args...))
}

// Raw logs one line of wire traffic. The process driver calls this
// for every command sent and every response received.
func (l *Logger) Raw(dir, line string) {
	if !l.enabled(LevelVerbose) {
		return
	}
	l.write(dir + " " + line)
}

// Log writes each loggable value at the current indent.
func (l *Logger) Log(items ...Loggable) {
	if !l.enabled(LevelEngine) {
		return
	}
	for _, it := range items {
		for _, line := range it.traceLines() {
			l.write(line)
		}
	}
}

// Tab increases the indent. At verbose level the motion itself is
// recorded, which makes unbalanced nesting visible in transcripts.
func (l *Logger) Tab() {
	if l == nil {
		return
	}
	if l.enabled(LevelVerbose) {
		l.write(">")
	}
	l.indent += indentStep
}

// Untab decreases the indent.
func (l *Logger) Untab() {
	if l == nil {
		return
	}
	l.indent -= indentStep
	if l.indent < 0 {
		l.indent = 0
	}
	if l.enabled(LevelVerbose) {
		l.write("<")
	}
}

// Block logs a label, runs fn one indent level deeper, and restores
// the indent on every exit path, including errors and panics.
func (l *Logger) Block(label string, fn func() error) error {
	if l.enabled(LevelEngine) {
		l.write(l.paint(label))
	}
	l.Tab()
	defer l.Untab()
	return fn()
}

func (l *Logger) paint(label string) string {
	if l.color {
		return "\x1b[36m" + label + "\x1b[0m"
	}
	return label
}
