package ui

import (
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Console serializes notice lines from several goroutines and ends each line
// with "\r\n", so output stays aligned while the terminal is in raw mode.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsole wraps w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Write(p []byte) (int, error) {
	out := make([]byte, 0, len(p)+4)
	for i, b := range p {
		if b == '\n' && (i == 0 || p[i-1] != '\r') {
			out = append(out, '\r')
		}
		out = append(out, b)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := c.w.Write(out); err != nil {
		return 0, err
	}
	return len(p), nil
}

// SettleBackground resolves the terminal background once. Adaptive colors
// otherwise query the terminal on first render, which reads from the same
// tty as the key reader.
func SettleBackground() {
	lipgloss.SetHasDarkBackground(lipgloss.HasDarkBackground())
}
