package logging

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorError = lipgloss.Color("196") // Red
	colorMuted = lipgloss.Color("240") // Dark gray
)

// ConsoleLogger writes log messages to a writer, one line per message.
// Safe for concurrent use by multiple goroutines.
type ConsoleLogger struct {
	out     io.Writer
	verbose bool
	mu      sync.Mutex

	verbosePrefix string
	errorPrefix   string
}

// NewConsoleLogger creates a new ConsoleLogger writing to out.
// If verbose is false, Verbose() calls are no-ops.
// If styled is true, message prefixes are colored for terminal output.
func NewConsoleLogger(out io.Writer, verbose, styled bool) *ConsoleLogger {
	l := &ConsoleLogger{
		out:           out,
		verbose:       verbose,
		verbosePrefix: "[VERBOSE] ",
		errorPrefix:   "[ERROR] ",
	}
	if styled {
		r := lipgloss.NewRenderer(out)
		l.verbosePrefix = r.NewStyle().Foreground(colorMuted).Render("[VERBOSE]") + " "
		l.errorPrefix = r.NewStyle().Foreground(colorError).Bold(true).Render("[ERROR]") + " "
	}
	return l
}

// Verbose logs detailed diagnostic information if verbose mode is enabled.
func (l *ConsoleLogger) Verbose(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.write(l.verbosePrefix, format, args)
}

// Info logs informational messages about normal operations.
func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	l.write("", format, args)
}

// Error logs error messages.
func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.write(l.errorPrefix, format, args)
}

func (l *ConsoleLogger) write(prefix, format string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(args) > 0 {
		fmt.Fprintf(l.out, prefix+format+"\n", args...)
	} else {
		fmt.Fprint(l.out, prefix+format+"\n")
	}
}
