// Package dial models a rotary telephone dial: pointer drags become a rotation,
// the rotation selects a digit, and on release the dial springs back to rest
// and commits the digit.
//
// All methods are meant to be called from one goroutine, the host's update
// loop. Completion of a return happens inside Update, never in the background.
package dial

import (
	"io"
	"log"
	"time"

	"github.com/iburimskiy/rotary-dial/internal/clock"
)

// DefaultRadius is the hole radius used when Options.Radius is unset.
const DefaultRadius = 200

// Env holds the dial's collaborators.
type Env struct {
	Locator   Locator
	Scheduler *clock.Scheduler
	Animator  Animator
	Logger    *log.Logger

	// OnLock is told when the interaction lock is taken and released.
	OnLock func(locked bool)
}

// Options tunes the dial.
type Options struct {
	Radius      float64
	ReturnSpeed float64
	Settle      time.Duration
}

// DefaultOptions returns the stock dial.
func DefaultOptions() Options {
	return Options{
		Radius:      DefaultRadius,
		ReturnSpeed: DefaultReturnSpeed,
		Settle:      DefaultSettle,
	}
}

// Dial owns the tracker, the spring, the gate and the display.
type Dial struct {
	layout  *Layout
	gate    *Gate
	tracker *Tracker
	spring  *Spring
	display *Display
	sched   *clock.Scheduler
	logger  *log.Logger
}

// New wires a dial. A nil Scheduler uses the real clock; a nil Logger discards.
func New(env Env, opts Options) *Dial {
	if opts.Radius <= 0 {
		opts.Radius = DefaultRadius
	}
	if env.Scheduler == nil {
		env.Scheduler = clock.NewScheduler(clock.Real{})
	}
	if env.Logger == nil {
		env.Logger = log.New(io.Discard, "", 0)
	}

	layout := NewLayout(opts.Radius)
	gate := &Gate{onShift: env.OnLock}
	return &Dial{
		layout:  layout,
		gate:    gate,
		tracker: NewTracker(layout, env.Locator, gate),
		spring:  NewSpring(env.Scheduler, gate, env.Animator, env.Logger, opts.ReturnSpeed, opts.Settle),
		display: NewDisplay(),
		sched:   env.Scheduler,
		logger:  env.Logger,
	}
}

// PointerDown begins a drag unless one is active or the dial is returning.
func (d *Dial) PointerDown(x, y float64) bool {
	if !d.tracker.PointerDown(x, y) {
		return false
	}
	d.display.SetPreview(NoDigit)
	d.logger.Printf("drag start at %.1f°", d.tracker.StartDeg())
	return true
}

// PointerMove updates rotation and preview during a drag.
func (d *Dial) PointerMove(x, y float64) bool {
	if !d.tracker.PointerMove(x, y) {
		return false
	}
	d.display.SetPreview(d.tracker.Preview())
	return true
}

// PointerUp releases the dial. A release with no rotation resolves at once
// with nothing committed and no lock taken.
func (d *Dial) PointerUp() bool {
	r, ok := d.tracker.PointerUp()
	if !ok {
		return false
	}
	if r.Deg <= 0 {
		d.tracker.Reset()
		d.display.SetPreview(NoDigit)
		d.logger.Printf("release without rotation")
		return true
	}

	d.logger.Printf("release at %.1f°, preview %q, return %s", r.Deg, r.Preview, d.spring.DurationFor(r.Deg))
	if !d.spring.Start(r, d.settle) {
		// Unreachable while the tracker and the spring agree on phase.
		d.tracker.Reset()
		d.display.SetPreview(NoDigit)
	}
	return true
}

// settle is the only path that resets rotation and appends to the display.
func (d *Dial) settle(r Release) {
	d.tracker.Reset()
	if r.Preview.Valid() {
		d.display.Append(r.Preview)
		d.logger.Printf("commit %s, sequence %s", r.Preview, d.display)
	}
	d.display.SetPreview(NoDigit)
}

// Update runs due scheduled work and returns how many tasks fired.
func (d *Dial) Update() int {
	return d.sched.Run()
}

// Rotation returns the angle to draw the dial at.
func (d *Dial) Rotation() float64 {
	if d.spring.Active() {
		return d.spring.Angle()
	}
	return d.tracker.Rotation()
}

// DragRotation returns the accumulated rotation of the current drag, which
// stays at its released value until the return completes.
func (d *Dial) DragRotation() float64 { return d.tracker.Rotation() }

// Phase returns the gesture phase.
func (d *Dial) Phase() Phase { return d.tracker.Phase() }

// Locked reports whether input is suppressed by a return in progress.
func (d *Dial) Locked() bool { return d.gate.Locked() }

// Returning reports whether the return animation is active.
func (d *Dial) Returning() bool { return d.spring.Active() }

// Remaining returns the time left before the current return completes.
func (d *Dial) Remaining() time.Duration { return d.spring.Remaining() }

// ReturnDuration returns how long a return from deg would take.
func (d *Dial) ReturnDuration(deg float64) time.Duration { return d.spring.DurationFor(deg) }

// Display returns the digit readout.
func (d *Dial) Display() *Display { return d.display }

// Layout returns the slot table.
func (d *Dial) Layout() *Layout { return d.layout }

// Tracker exposes the gesture tracker's read side.
func (d *Dial) Tracker() *Tracker { return d.tracker }

// Gate exposes the interaction lock.
func (d *Dial) Gate() *Gate { return d.gate }
