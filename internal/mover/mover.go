// Package mover runs the loop that nudges the pointer on a fixed interval.
package mover

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/stigoleg/dizzymouse/internal/platform"
	"github.com/stigoleg/dizzymouse/internal/ui"
)

const defaultStopTimeout = 5 * time.Second

var (
	ErrAlreadyRunning = errors.New("mover already running")
	ErrStopTimeout    = errors.New("mover did not stop in time")
)

// Health represents the runtime health of pointer injection
type Health int

const (
	HealthUnknown Health = iota
	HealthOK
	HealthFailed
)

func (h Health) String() string {
	switch h {
	case HealthOK:
		return "ok"
	case HealthFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// SleepFunc waits for d and reports false if ctx ended first.
type SleepFunc func(ctx context.Context, d time.Duration) bool

// Option configures a Mover.
type Option func(*Mover)

// WithSleep replaces the interval wait, mainly so tests can drive ticks.
func WithSleep(fn SleepFunc) Option {
	return func(m *Mover) {
		if fn != nil {
			m.sleep = fn
		}
	}
}

// Mover moves the pointer by one pixel per tick, flipping direction each
// time so the pointer never drifts.
type Mover struct {
	injector platform.PointerInjector
	interval time.Duration
	out      io.Writer
	sleep    SleepFunc

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}

	// direction is owned by the loop goroutine
	direction int

	ticks int64
	// failures counts consecutive rejected moves
	failures int64
}

// New creates a Mover. Failure notices are written to out.
func New(injector platform.PointerInjector, interval time.Duration, out io.Writer, opts ...Option) *Mover {
	m := &Mover{
		injector:  injector,
		interval:  interval,
		out:       out,
		sleep:     sleepContext,
		direction: 1,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Interval returns the wait between ticks.
func (m *Mover) Interval() time.Duration {
	return m.interval
}

// Run ticks until ctx is cancelled. It always returns nil; a rejected move is
// reported and the loop keeps its schedule. Run must not be called concurrently.
func (m *Mover) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		m.tick()
		if !m.sleep(ctx, m.interval) {
			return nil
		}
	}
}

func (m *Mover) tick() {
	d := m.direction
	m.direction = -d

	atomic.AddInt64(&m.ticks, 1)
	if err := m.injector.MoveRelative(d, d); err != nil {
		atomic.AddInt64(&m.failures, 1)
		log.Printf("mover: move (%d,%d) via %s failed: %v", d, d, m.injector.Name(), err)
		ui.Fail(m.out, "Failed to move the mouse")
		return
	}
	atomic.StoreInt64(&m.failures, 0)
}

// Start runs the loop on a background goroutine.
func (m *Mover) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return ErrAlreadyRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	m.cancel = cancel
	m.done = done
	m.running = true

	go func() {
		defer close(done)
		_ = m.Run(ctx)

		m.mu.Lock()
		if m.done == done {
			m.running = false
		}
		m.mu.Unlock()
		log.Printf("mover: loop exited after %d ticks", m.Ticks())
	}()

	log.Printf("mover: started (interval=%s, injector=%s)", m.interval, m.injector.Name())
	return nil
}

// IsRunning returns whether the loop is active
func (m *Mover) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// Stop cancels the loop and waits for it to exit
func (m *Mover) Stop() error {
	return m.StopWithTimeout(0)
}

// StopWithTimeout cancels the loop and waits up to timeout for it to exit.
// No move is submitted after the cancel, though one already in flight may
// finish.
func (m *Mover) StopWithTimeout(timeout time.Duration) error {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return nil
	}

	if timeout <= 0 {
		timeout = defaultStopTimeout
	}

	cancel := m.cancel
	done := m.done
	m.cancel = nil
	m.running = false
	m.mu.Unlock()

	cancel()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-done:
		log.Printf("mover: stopped")
		return nil
	case <-timer.C:
		log.Printf("mover: stop timeout exceeded after %v", timeout)
		return ErrStopTimeout
	}
}

// Ticks returns how many moves have been attempted.
func (m *Mover) Ticks() int64 {
	return atomic.LoadInt64(&m.ticks)
}

// Health reports whether the most recent move succeeded.
func (m *Mover) Health() Health {
	if atomic.LoadInt64(&m.failures) > 0 {
		return HealthFailed
	}
	if atomic.LoadInt64(&m.ticks) == 0 {
		return HealthUnknown
	}
	return HealthOK
}

func sleepContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return ctx.Err() == nil
	}
}
