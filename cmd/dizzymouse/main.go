package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/stigoleg/dizzymouse/internal/config"
	"github.com/stigoleg/dizzymouse/internal/mover"
	"github.com/stigoleg/dizzymouse/internal/platform"
	"github.com/stigoleg/dizzymouse/internal/trigger"
	"github.com/stigoleg/dizzymouse/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	appVersion     = "1.0.0"
	cleanupTimeout = 5 * time.Second
	terminalWait   = time.Second
)

// newInjector is replaced in tests.
var newInjector = platform.NewPointerInjector

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout))
}

func run(args []string, stdin *os.File, stdout io.Writer) int {
	// Diagnostics stay off the console unless --debug is given.
	log.SetOutput(io.Discard)

	interactive := trigger.Interactive(stdin)
	if interactive {
		// Must happen before the key reader owns the terminal.
		ui.SettleBackground()
	}
	console := ui.NewConsole(stdout)

	cfg := config.Parse(args, console)
	if cfg.ShowHelp {
		config.Usage(console)
		return 0
	}
	if cfg.ShowVersion {
		fmt.Fprintf(console, "DizzyMouse Version: %s\n", appVersion)
		return 0
	}

	if cfg.Debug {
		f, err := tea.LogToFile("debug.log", "dizzymouse")
		if err == nil {
			defer f.Close()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), getSignalsForPlatform()...)
	defer stop()

	injector, err := newInjector()
	if err != nil {
		log.Printf("main: %v", err)
		injector = platform.Unavailable(err)
	}

	cleanup := mover.NewCleanupManager(cleanupTimeout)
	cleanup.Register("injector", injector.Close)

	m := mover.New(injector, cfg.Interval, console)
	if err := m.Start(ctx); err != nil {
		log.Printf("main: %v", err)
	}
	cleanup.Register("mover", m.Stop)

	if interactive {
		keyDone := trigger.Watch(ctx, stdin, stop)
		cleanup.Register("terminal", func() error {
			// Let the key reader restore the terminal before exiting.
			select {
			case <-keyDone:
			case <-time.After(terminalWait):
			}
			return nil
		})
	} else {
		log.Printf("main: stdin is not a terminal, waiting for a signal")
	}

	<-ctx.Done()
	log.Printf("main: shutting down")

	if err := cleanup.Execute(); err != nil {
		log.Printf("main: cleanup: %v", err)
	}
	return 0
}
