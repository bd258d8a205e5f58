package platform

import (
	"fmt"
	"sync"
)

// Move is one relative pointer move.
type Move struct {
	DX int
	DY int
}

// FakeInjector records moves instead of touching the pointer. Failures can be
// scheduled per call number (1-based).
type FakeInjector struct {
	mu     sync.Mutex
	moves  []Move
	failAt map[int]bool
	closed bool
	calls  chan Move
}

// NewFakeInjector creates a fake that also publishes every call on Calls,
// buffering up to buffer calls. Calls beyond the buffer are dropped from the
// channel but still recorded.
func NewFakeInjector(buffer int) *FakeInjector {
	return &FakeInjector{
		failAt: make(map[int]bool),
		calls:  make(chan Move, buffer),
	}
}

// FailOn makes the given call numbers report a rejected move.
func (f *FakeInjector) FailOn(calls ...int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range calls {
		f.failAt[c] = true
	}
}

func (f *FakeInjector) MoveRelative(dx, dy int) error {
	f.mu.Lock()
	m := Move{DX: dx, DY: dy}
	f.moves = append(f.moves, m)
	n := len(f.moves)
	fail := f.failAt[n]
	f.mu.Unlock()

	select {
	case f.calls <- m:
	default:
	}

	if fail {
		return fmt.Errorf("%w: fake call %d", ErrInjectionRejected, n)
	}
	return nil
}

func (f *FakeInjector) Name() string {
	return "fake"
}

func (f *FakeInjector) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// Moves returns every attempted move, failed ones included.
func (f *FakeInjector) Moves() []Move {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Move, len(f.moves))
	copy(out, f.moves)
	return out
}

// Calls publishes each attempted move as it happens.
func (f *FakeInjector) Calls() <-chan Move {
	return f.calls
}

// Closed reports whether Close was called.
func (f *FakeInjector) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}
