package mover

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
)

// CleanupManager runs registered shutdown steps once, newest first, within a timeout.
type CleanupManager struct {
	mu          sync.Mutex
	steps       []cleanupStep
	timeout     time.Duration
	cleanupOnce sync.Once
	err         error
}

type cleanupStep struct {
	name string
	fn   func() error
}

// NewCleanupManager creates a new cleanup manager with the specified timeout
func NewCleanupManager(timeout time.Duration) *CleanupManager {
	if timeout <= 0 {
		timeout = defaultStopTimeout
	}
	return &CleanupManager{timeout: timeout}
}

// Register adds a named cleanup step
func (cm *CleanupManager) Register(name string, fn func() error) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.steps = append(cm.steps, cleanupStep{name: name, fn: fn})
}

// Execute runs every step in reverse registration order. Later calls return
// the result of the first.
func (cm *CleanupManager) Execute() error {
	cm.cleanupOnce.Do(func() {
		cm.err = cm.executeWithTimeout()
	})
	return cm.err
}

func (cm *CleanupManager) executeWithTimeout() error {
	cm.mu.Lock()
	steps := make([]cleanupStep, len(cm.steps))
	copy(steps, cm.steps)
	cm.mu.Unlock()

	if len(steps) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), cm.timeout)
	defer cancel()

	done := make(chan struct{})
	var mu sync.Mutex
	var errs []error

	go func() {
		defer close(done)
		for i := len(steps) - 1; i >= 0; i-- {
			step := steps[i]
			err := runStep(step)

			mu.Lock()
			if err != nil {
				errs = append(errs, err)
			}
			mu.Unlock()
		}
	}()

	select {
	case <-done:
	case <-ctx.Done():
		log.Printf("cleanup: timeout after %v, some resources may not have been released", cm.timeout)
		mu.Lock()
		errs = append(errs, errors.New("cleanup timeout exceeded"))
		mu.Unlock()
	}

	mu.Lock()
	defer mu.Unlock()
	return errors.Join(errs...)
}

func runStep(step cleanupStep) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("cleanup: panic in %s: %v", step.name, r)
			err = fmt.Errorf("%s: panic during cleanup", step.name)
		}
	}()

	if err := step.fn(); err != nil {
		log.Printf("cleanup: error in %s: %v", step.name, err)
		return fmt.Errorf("%s: %w", step.name, err)
	}
	log.Printf("cleanup: %s done", step.name)
	return nil
}
