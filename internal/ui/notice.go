package ui

import (
	"fmt"
	"io"
)

// Warn writes a recoverable warning line, such as a rejected interval argument.
func Warn(w io.Writer, format string, args ...any) {
	writeLine(w, Current.Warning.Render(fmt.Sprintf(format, args...)))
}

// Fail writes a non-fatal failure line, such as a rejected pointer move.
func Fail(w io.Writer, format string, args ...any) {
	writeLine(w, Current.Error.Render(fmt.Sprintf(format, args...)))
}

// Info writes a plain informational line.
func Info(w io.Writer, format string, args ...any) {
	writeLine(w, Current.Info.Render(fmt.Sprintf(format, args...)))
}

func writeLine(w io.Writer, s string) {
	if w == nil {
		return
	}
	// Console notices are best effort.
	_, _ = fmt.Fprintln(w, s)
}
