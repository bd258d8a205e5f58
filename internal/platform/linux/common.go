//go:build linux

package linux

import (
	"bytes"
	"os/exec"
	"strings"
)

// runVerbose executes a command and returns the combined output (stdout+stderr) and any error.
func runVerbose(name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	err := cmd.Run()
	return strings.TrimSpace(buf.String()), err
}
