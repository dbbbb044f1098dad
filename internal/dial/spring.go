package dial

import (
	"io"
	"log"
	"time"

	"github.com/iburimskiy/rotary-dial/internal/clock"
)

const (
	// DefaultReturnSpeed is the spring-back speed in degrees per second.
	DefaultReturnSpeed = 100
	// DefaultSettle is added after the return before state is reset.
	DefaultSettle = 100 * time.Millisecond
)

// Animator renders the return to rest. It is told once per return where the
// dial starts and how long the travel takes. An error is logged and the
// return completes on schedule regardless.
type Animator interface {
	Animate(fromDeg float64, d time.Duration) error
}

// AnimatorFunc adapts a function to Animator.
type AnimatorFunc func(fromDeg float64, d time.Duration) error

// Animate calls f.
func (f AnimatorFunc) Animate(fromDeg float64, d time.Duration) error { return f(fromDeg, d) }

// Spring drives the linear return from the released angle to zero.
type Spring struct {
	sched    *clock.Scheduler
	gate     *Gate
	animator Animator
	logger   *log.Logger
	speed    float64
	settle   time.Duration

	active   bool
	from     float64
	started  time.Time
	duration time.Duration
	task     *clock.Task
}

// NewSpring creates an idle spring. speed is in degrees per second.
func NewSpring(sched *clock.Scheduler, gate *Gate, animator Animator, logger *log.Logger, speed float64, settle time.Duration) *Spring {
	if speed <= 0 {
		speed = DefaultReturnSpeed
	}
	if settle < 0 {
		settle = 0
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if sched == nil {
		sched = clock.NewScheduler(nil)
	}
	if gate == nil {
		gate = &Gate{}
	}
	return &Spring{
		sched:    sched,
		gate:     gate,
		animator: animator,
		logger:   logger,
		speed:    speed,
		settle:   settle,
	}
}

// DurationFor returns how long a return from deg takes.
func (s *Spring) DurationFor(deg float64) time.Duration {
	if deg <= 0 {
		return 0
	}
	return time.Duration(deg / s.speed * float64(time.Second))
}

// Start locks the gate and schedules completion at the return duration plus
// the settle margin. done runs exactly once, from the scheduler. A second
// Start while active is refused.
func (s *Spring) Start(r Release, done func(Release)) bool {
	if s.active || r.Deg <= 0 {
		return false
	}
	s.gate.lock()
	s.active = true
	s.from = r.Deg
	s.started = s.sched.Clock().Now()
	s.duration = s.DurationFor(r.Deg)

	if s.animator != nil {
		if err := s.animator.Animate(s.from, s.duration); err != nil {
			s.logger.Printf("animator unavailable, returning without it: %v", err)
		}
	}

	s.task = s.sched.AfterFunc(s.duration+s.settle, func() {
		s.finish()
		if done != nil {
			done(r)
		}
	})
	return true
}

func (s *Spring) finish() {
	s.active = false
	s.from = 0
	s.task = nil
	s.gate.unlock()
}

// Active reports whether a return is in progress.
func (s *Spring) Active() bool { return s.active }

// Duration returns the travel time of the current return.
func (s *Spring) Duration() time.Duration { return s.duration }

// Angle returns the animated rotation. It falls linearly from the released
// angle and is exactly zero from the end of the travel onwards.
func (s *Spring) Angle() float64 {
	if !s.active || s.duration <= 0 {
		return 0
	}
	elapsed := s.sched.Clock().Now().Sub(s.started)
	if elapsed >= s.duration {
		return 0
	}
	if elapsed <= 0 {
		return s.from
	}
	return s.from * (1 - clamp01(float64(elapsed)/float64(s.duration)))
}

// Remaining returns the time left until completion, settle included.
func (s *Spring) Remaining() time.Duration {
	if !s.active || s.task == nil {
		return 0
	}
	left := s.task.Deadline().Sub(s.sched.Clock().Now())
	if left < 0 {
		return 0
	}
	return left
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
