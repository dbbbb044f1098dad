package clock

import (
	"sort"
	"sync"
	"time"
)

// Task is a callback scheduled on a Scheduler.
type Task struct {
	deadline time.Time
	seq      uint64
	fn       func()
	done     chan struct{}

	mu      sync.Mutex
	fired   bool
	stopped bool
}

// Deadline returns the time at or after which the task fires.
func (t *Task) Deadline() time.Time { return t.deadline }

// Done is closed once the callback has run.
func (t *Task) Done() <-chan struct{} { return t.done }

// Fired reports whether the callback has run.
func (t *Task) Fired() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.fired
}

// Stop prevents the task from firing. It reports whether the task was still pending.
func (t *Task) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	wasPending := !t.fired && !t.stopped
	t.stopped = true
	return wasPending
}

// claim marks the task fired unless it was stopped first.
func (t *Task) claim() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.fired = true
	return true
}

// Scheduler runs delayed callbacks when Run is called and their deadline has
// passed on its Clock. Nothing runs in the background.
type Scheduler struct {
	clock Clock

	mu    sync.Mutex
	seq   uint64
	tasks []*Task
}

// NewScheduler creates a scheduler reading time from c.
func NewScheduler(c Clock) *Scheduler {
	if c == nil {
		c = Real{}
	}
	return &Scheduler{clock: c}
}

// Clock returns the scheduler's time source.
func (s *Scheduler) Clock() Clock { return s.clock }

// AfterFunc schedules fn to run on the first Run at or after now+d.
// A task never fires inside the call that scheduled it.
func (s *Scheduler) AfterFunc(d time.Duration, fn func()) *Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	t := &Task{
		deadline: s.clock.Now().Add(d),
		seq:      s.seq,
		fn:       fn,
		done:     make(chan struct{}),
	}
	s.tasks = append(s.tasks, t)
	return t
}

// Pending returns the number of tasks that have neither fired nor been stopped.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, t := range s.tasks {
		t.mu.Lock()
		if !t.fired && !t.stopped {
			n++
		}
		t.mu.Unlock()
	}
	return n
}

// Run fires every due task in deadline order, ties in scheduling order, and
// returns how many fired. Tasks scheduled by a callback wait for the next Run.
func (s *Scheduler) Run() int {
	now := s.clock.Now()

	s.mu.Lock()
	var due, rest []*Task
	for _, t := range s.tasks {
		t.mu.Lock()
		live := !t.fired && !t.stopped
		t.mu.Unlock()
		switch {
		case !live:
		case !t.deadline.After(now):
			due = append(due, t)
		default:
			rest = append(rest, t)
		}
	}
	s.tasks = rest
	s.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool {
		if due[i].deadline.Equal(due[j].deadline) {
			return due[i].seq < due[j].seq
		}
		return due[i].deadline.Before(due[j].deadline)
	})

	fired := 0
	for _, t := range due {
		if !t.claim() {
			continue
		}
		if t.fn != nil {
			t.fn()
		}
		close(t.done)
		fired++
	}
	return fired
}
