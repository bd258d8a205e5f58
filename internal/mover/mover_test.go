package mover

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stigoleg/dizzymouse/internal/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingSleep lets the loop run n ticks without waiting.
func countingSleep(n int, waits *[]time.Duration) SleepFunc {
	count := 0
	return func(ctx context.Context, d time.Duration) bool {
		*waits = append(*waits, d)
		count++
		return count < n
	}
}

// stepSleep hands each wait to the test and blocks until released or cancelled.
type stepSleep struct {
	waits   chan time.Duration
	release chan struct{}
}

func newStepSleep() *stepSleep {
	return &stepSleep{
		waits:   make(chan time.Duration, 1),
		release: make(chan struct{}),
	}
}

func (s *stepSleep) sleep(ctx context.Context, d time.Duration) bool {
	select {
	case s.waits <- d:
	case <-ctx.Done():
		return false
	}
	select {
	case <-s.release:
		return ctx.Err() == nil
	case <-ctx.Done():
		return false
	}
}

// safeBuffer guards a bytes.Buffer written by the loop goroutine.
type safeBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *safeBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *safeBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

func receiveMove(t *testing.T, inj *platform.FakeInjector) platform.Move {
	t.Helper()
	select {
	case m := <-inj.Calls():
		return m
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a move")
		return platform.Move{}
	}
}

func TestDirectionAlternates(t *testing.T) {
	inj := platform.NewFakeInjector(16)
	var waits []time.Duration
	m := New(inj, 30*time.Second, &bytes.Buffer{}, WithSleep(countingSleep(6, &waits)))

	require.NoError(t, m.Run(context.Background()))

	want := []platform.Move{
		{DX: 1, DY: 1},
		{DX: -1, DY: -1},
		{DX: 1, DY: 1},
		{DX: -1, DY: -1},
		{DX: 1, DY: 1},
		{DX: -1, DY: -1},
	}
	assert.Equal(t, want, inj.Moves())
	assert.Equal(t, int64(6), m.Ticks())

	require.Len(t, waits, 6)
	for _, d := range waits {
		assert.Equal(t, 30*time.Second, d)
	}
}

func TestFailureDoesNotStopLoop(t *testing.T) {
	inj := platform.NewFakeInjector(16)
	inj.FailOn(2)
	var out bytes.Buffer
	var waits []time.Duration
	m := New(inj, time.Second, &out, WithSleep(countingSleep(4, &waits)))

	require.NoError(t, m.Run(context.Background()))

	assert.Len(t, inj.Moves(), 4, "every tick should attempt a move")
	assert.Len(t, waits, 4, "a failed tick still waits the full interval")
	assert.Equal(t, 1, strings.Count(out.String(), "Failed to move the mouse"))
	assert.Equal(t, HealthOK, m.Health(), "a later success clears the failure")
}

func TestHealth(t *testing.T) {
	inj := platform.NewFakeInjector(4)
	inj.FailOn(1)
	var waits []time.Duration
	m := New(inj, time.Second, &bytes.Buffer{}, WithSleep(countingSleep(1, &waits)))

	assert.Equal(t, HealthUnknown, m.Health())
	require.NoError(t, m.Run(context.Background()))
	assert.Equal(t, HealthFailed, m.Health())
	assert.Equal(t, "failed", m.Health().String())
}

func TestRunWithCancelledContext(t *testing.T) {
	inj := platform.NewFakeInjector(4)
	m := New(inj, time.Second, &bytes.Buffer{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, m.Run(ctx))
	assert.Empty(t, inj.Moves())
}

func TestStopHaltsMoves(t *testing.T) {
	inj := platform.NewFakeInjector(16)
	steps := newStepSleep()
	m := New(inj, 10*time.Second, &bytes.Buffer{}, WithSleep(steps.sleep))

	require.NoError(t, m.Start(context.Background()))
	assert.True(t, m.IsRunning())

	assert.Equal(t, platform.Move{DX: 1, DY: 1}, receiveMove(t, inj))
	assert.Equal(t, 10*time.Second, <-steps.waits)

	steps.release <- struct{}{}
	assert.Equal(t, platform.Move{DX: -1, DY: -1}, receiveMove(t, inj))
	<-steps.waits

	require.NoError(t, m.Stop())
	assert.False(t, m.IsRunning())

	// Releasing a cancelled wait must not produce another tick.
	select {
	case steps.release <- struct{}{}:
		t.Fatal("loop should no longer be waiting")
	default:
	}
	assert.Len(t, inj.Moves(), 2)
}

func TestStartTwice(t *testing.T) {
	inj := platform.NewFakeInjector(4)
	steps := newStepSleep()
	m := New(inj, time.Minute, &bytes.Buffer{}, WithSleep(steps.sleep))

	require.NoError(t, m.Start(context.Background()))
	defer m.Stop()

	assert.ErrorIs(t, m.Start(context.Background()), ErrAlreadyRunning)
}

func TestStopIsIdempotent(t *testing.T) {
	inj := platform.NewFakeInjector(4)
	m := New(inj, time.Minute, &bytes.Buffer{})

	assert.NoError(t, m.Stop(), "stopping an idle mover is a no-op")

	require.NoError(t, m.Start(context.Background()))
	receiveMove(t, inj)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, m.Stop())
		}()
	}
	wg.Wait()
	assert.False(t, m.IsRunning())
}

func TestParentContextEndsLoop(t *testing.T) {
	inj := platform.NewFakeInjector(4)
	m := New(inj, time.Minute, &bytes.Buffer{})

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, m.Start(ctx))
	receiveMove(t, inj)
	cancel()

	assert.Eventually(t, func() bool { return !m.IsRunning() }, 2*time.Second, 10*time.Millisecond)
	assert.Len(t, inj.Moves(), 1)
}

func TestRealIntervalTicks(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping timing test in short mode")
	}

	inj := platform.NewFakeInjector(64)
	out := &safeBuffer{}
	inj.FailOn(2)
	m := New(inj, 10*time.Millisecond, out)

	require.NoError(t, m.Start(context.Background()))
	for i := 0; i < 3; i++ {
		receiveMove(t, inj)
	}
	require.NoError(t, m.Stop())

	n := len(inj.Moves())
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, n, len(inj.Moves()), "no moves after stop")
	assert.Contains(t, out.String(), "Failed to move the mouse")
}

type blockingInjector struct {
	entered chan struct{}
	unblock chan struct{}
}

func (b *blockingInjector) MoveRelative(dx, dy int) error {
	close(b.entered)
	<-b.unblock
	return nil
}

func (b *blockingInjector) Name() string { return "blocking" }
func (b *blockingInjector) Close() error { return nil }

func TestStopWithTimeout(t *testing.T) {
	inj := &blockingInjector{entered: make(chan struct{}), unblock: make(chan struct{})}
	m := New(inj, time.Minute, &bytes.Buffer{})

	require.NoError(t, m.Start(context.Background()))
	<-inj.entered

	start := time.Now()
	err := m.StopWithTimeout(50 * time.Millisecond)
	assert.ErrorIs(t, err, ErrStopTimeout)
	assert.Less(t, time.Since(start), time.Second)
	assert.False(t, m.IsRunning())

	close(inj.unblock)
}
