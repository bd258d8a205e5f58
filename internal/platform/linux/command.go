//go:build linux

package linux

import (
	"fmt"
	"strconv"
)

// CommandPointer moves the pointer by running an external tool, with dx and
// dy appended to Args.
type CommandPointer struct {
	Cmd  string
	Args []string
}

// NewXdotoolPointer uses "xdotool mousemove_relative". The "--" keeps
// negative deltas from being read as options.
func NewXdotoolPointer(path string) *CommandPointer {
	return &CommandPointer{Cmd: path, Args: []string{"mousemove_relative", "--"}}
}

func (c *CommandPointer) MoveRelative(dx, dy int) error {
	args := make([]string, 0, len(c.Args)+2)
	args = append(args, c.Args...)
	args = append(args, strconv.Itoa(dx), strconv.Itoa(dy))

	if out, err := runVerbose(c.Cmd, args...); err != nil {
		return fmt.Errorf("%s failed: %w (output: %q)", c.Cmd, err, out)
	}
	return nil
}

func (c *CommandPointer) Name() string {
	return c.Cmd
}

func (c *CommandPointer) Close() error {
	return nil
}
