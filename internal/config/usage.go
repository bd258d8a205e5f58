package config

import (
	"fmt"
	"io"
)

// Usage writes the help text.
func Usage(w io.Writer) {
	fmt.Fprintf(w, `Usage: dizzymouse [flags] [seconds]

Moves the mouse pointer by one pixel every [seconds] (default %d, less than %d)
so the screen does not lock. Press any key to stop.

Flags:
  -v, --version   Show version information
      --debug     Write diagnostics to debug.log
  -h, --help      Show this help
`, int(DefaultInterval.Seconds()), int(MaxInterval.Seconds()))
}
