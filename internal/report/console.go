package report

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/vvka-141/stguard/pkg/stguard"
)

const errorPrefix = "ERROR:"

// Console writes findings to a stream, one line each.
type Console struct {
	mu     sync.Mutex
	out    io.Writer
	prefix string
}

// NewConsole creates a console reporter. When styled is true the prefix is
// colored for terminal output.
func NewConsole(out io.Writer, styled bool) *Console {
	prefix := errorPrefix
	if styled {
		prefix = lipgloss.NewRenderer(out).NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true).
			Render(errorPrefix)
	}
	return &Console{out: out, prefix: prefix}
}

// Record implements stguard.Reporter.
func (c *Console) Record(f stguard.Finding) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := fmt.Fprintf(c.out, "%s %s\n", c.prefix, f); err != nil {
		return fmt.Errorf("failed to write finding: %w", err)
	}
	return nil
}

// Flush implements stguard.Reporter. Console output is unbuffered.
func (c *Console) Flush() error {
	return nil
}
