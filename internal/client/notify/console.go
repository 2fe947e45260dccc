package notify

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// ConsoleNotifier prints one styled line per notification, the terminal
// counterpart of a toast.
type ConsoleNotifier struct {
	mu     sync.Mutex
	w      io.Writer
	styles map[Severity]lipgloss.Style
	text   lipgloss.Style
}

func NewConsoleNotifier(w io.Writer) *ConsoleNotifier {
	r := lipgloss.NewRenderer(w)
	badge := func(color string) lipgloss.Style {
		return r.NewStyle().Bold(true).Padding(0, 1).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color(color))
	}
	return &ConsoleNotifier{
		w: w,
		styles: map[Severity]lipgloss.Style{
			Success: badge("10"),
			Error:   badge("9"),
			Info:    badge("12"),
			Warning: badge("11"),
		},
		text: r.NewStyle().PaddingLeft(1),
	}
}

func (c *ConsoleNotifier) Notify(_ context.Context, severity Severity, message string) {
	style, ok := c.styles[severity]
	if !ok {
		style = c.styles[Info]
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.w, style.Render(string(severity))+c.text.Render(message))
}
