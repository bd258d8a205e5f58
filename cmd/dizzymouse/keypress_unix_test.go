//go:build linux || darwin

package main

import (
	"bytes"
	"os"
	"os/exec"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creack/pty"
	"github.com/stigoleg/dizzymouse/internal/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ptyCapture collects everything the child writes to its terminal.
type ptyCapture struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (c *ptyCapture) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.Write(p)
}

func (c *ptyCapture) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.String()
}

// TestKeypressStopsWhileFailing presses a key on a real terminal while every
// tick is printing a failure notice, and expects a clean exit.
func TestKeypressStopsWhileFailing(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping terminal test in short mode")
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestKeypressHelper")
	cmd.Env = append(os.Environ(), "TEST_KEYPRESS_HELPER=1", "TERM=xterm-256color")

	tty, err := pty.Start(cmd)
	if err != nil {
		t.Skipf("no pty available: %v", err)
	}
	defer tty.Close()

	out := &ptyCapture{}
	copied := make(chan struct{})
	go func() {
		defer close(copied)
		buf := make([]byte, 1024)
		for {
			n, err := tty.Read(buf)
			if n > 0 {
				out.Write(buf[:n])
			}
			if err != nil {
				return
			}
		}
	}()

	// Wait for two notices so the key arrives while the mover is writing.
	require.Eventually(t, func() bool {
		return strings.Count(out.String(), "Failed to move the mouse") >= 2
	}, 20*time.Second, 20*time.Millisecond, "helper never printed failures: %q", out.String())

	_, err = tty.Write([]byte("x"))
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case err := <-done:
		assert.NoError(t, err, "process should exit with status 0 after a key")
	case <-time.After(5 * time.Second):
		cmd.Process.Kill()
		t.Fatalf("process did not exit after a key; output: %q", out.String())
	}

	text := out.String()
	assert.NotContains(t, text, "\x1b[?25l", "no cursor control on stdout")
	assert.NotContains(t, text, "\x1b[?2004h", "no bracketed paste on stdout")
	for _, line := range strings.SplitAfter(text, "\n") {
		if strings.HasSuffix(line, "\n") {
			assert.True(t, strings.HasSuffix(line, "\r\n"), "line without carriage return: %q", line)
		}
	}
}

// TestKeypressHelper is a helper function for TestKeypressStopsWhileFailing
func TestKeypressHelper(t *testing.T) {
	if os.Getenv("TEST_KEYPRESS_HELPER") != "1" {
		return
	}

	newInjector = func() (platform.PointerInjector, error) {
		f := platform.NewFakeInjector(0)
		for call := 1; call <= 100; call++ {
			f.FailOn(call)
		}
		return f, nil
	}

	// Interval of one second, the smallest the argument allows.
	os.Exit(run([]string{"1"}, os.Stdin, os.Stdout))
}
