// Package clock provides an injectable time source and a scheduler whose
// callbacks fire on the caller's goroutine, so tests can advance virtual time.
package clock

import (
	"sync"
	"time"
)

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// Real is the system clock.
type Real struct{}

// Now returns time.Now with its monotonic reading.
func (Real) Now() time.Time {
	return time.Now()
}

// Mock is a manually controlled clock for tests.
type Mock struct {
	mu  sync.RWMutex
	now time.Time
}

// NewMock creates a Mock set to start.
func NewMock(start time.Time) *Mock {
	return &Mock{now: start}
}

// Now returns the mocked current time.
func (m *Mock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// Set moves the clock to t.
func (m *Mock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

// Advance moves the clock forward by d.
func (m *Mock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}
