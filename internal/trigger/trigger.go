// Package trigger waits for the user to ask dizzymouse to stop.
package trigger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// keyModel quits on the first key.
type keyModel struct {
	pressed bool
}

func (m keyModel) Init() tea.Cmd {
	return nil
}

func (m keyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		m.pressed = true
		return m, tea.Quit
	}
	return m, nil
}

func (m keyModel) View() string {
	return ""
}

// Interactive reports whether f is a terminal a key can be read from.
func Interactive(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// WaitForKeypress blocks until one key is read from in, returning nil, or
// until ctx ends, returning ctx.Err(). A terminal input is held in raw mode
// for the wait so a single key is enough. Nothing is rendered: standard
// output stays free for notices.
func WaitForKeypress(ctx context.Context, in io.Reader) error {
	if f, ok := in.(*os.File); ok && Interactive(f) {
		fd := int(f.Fd())
		state, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("failed to enter raw mode: %w", err)
		}
		defer term.Restore(fd, state)
	}

	p := tea.NewProgram(
		keyModel{},
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(io.Discard),
		tea.WithoutRenderer(),
		tea.WithoutSignalHandler(),
	)

	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("keypress reader failed: %w", err)
	}

	if m, ok := final.(keyModel); ok && m.pressed {
		return nil
	}
	return ctx.Err()
}

// Watch starts WaitForKeypress on a goroutine and calls stop once it returns
// for any reason other than ctx ending.
func Watch(ctx context.Context, in io.Reader, stop func()) <-chan error {
	errc := make(chan error, 1)
	go func() {
		err := WaitForKeypress(ctx, in)
		if ctx.Err() == nil {
			stop()
		}
		errc <- err
	}()
	return errc
}
