package dial

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/rotary-dial/internal/clock"
)

const (
	centerX = 250
	centerY = 250
	reach   = 150
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

type fixture struct {
	dial  *Dial
	clock *clock.Mock
	sched *clock.Scheduler
	locks []bool
}

func newFixture(t *testing.T, animator Animator) *fixture {
	t.Helper()
	f := &fixture{clock: clock.NewMock(epoch)}
	f.sched = clock.NewScheduler(f.clock)
	f.dial = New(Env{
		Locator:   FixedCenter{X: centerX, Y: centerY},
		Scheduler: f.sched,
		Animator:  animator,
		OnLock:    func(locked bool) { f.locks = append(f.locks, locked) },
	}, DefaultOptions())
	return f
}

func at(deg float64) (float64, float64) {
	return PointerAt(deg, reach, centerX, centerY)
}

// drag presses at start and moves clockwise in 5° steps to start+rot.
func (f *fixture) drag(t *testing.T, start, rot float64) {
	t.Helper()
	require.True(t, f.dial.PointerDown(at(start)))
	for d := 5.0; d < rot; d += 5 {
		f.dial.PointerMove(at(start + d))
	}
	f.dial.PointerMove(at(start + rot))
}

// advance moves virtual time forward and runs what became due.
func (f *fixture) advance(d time.Duration) int {
	f.clock.Advance(d)
	return f.dial.Update()
}

func digits(ds ...int) []Digit {
	out := make([]Digit, len(ds))
	for i, d := range ds {
		out[i] = Digit(d)
	}
	return out
}

func TestEndToEndDigitTwo(t *testing.T) {
	f := newFixture(t, nil)

	f.drag(t, 10, 85)
	assert.Equal(t, Digit(2), f.dial.Display().Preview())
	assert.InDelta(t, 85, f.dial.DragRotation(), 1e-9)

	require.True(t, f.dial.PointerUp())
	assert.True(t, f.dial.Locked())
	assert.True(t, f.dial.Returning())

	f.advance(850*time.Millisecond + 100*time.Millisecond)

	assert.Empty(t, cmp.Diff(digits(2), f.dial.Display().Digits()))
	assert.Equal(t, 0.0, f.dial.Rotation())
	assert.Equal(t, 0.0, f.dial.DragRotation())
	assert.False(t, f.dial.Locked())
	assert.Equal(t, Idle, f.dial.Phase())
	assert.Equal(t, NoDigit, f.dial.Display().Preview())
}

func TestRoundTripDigitFiveCommitsOnce(t *testing.T) {
	f := newFixture(t, nil)

	f.drag(t, 10, 170)
	require.True(t, f.dial.PointerUp())

	// Nothing is committed before completion.
	f.advance(time.Second)
	assert.Equal(t, 0, f.dial.Display().Len())

	f.advance(time.Second)
	assert.Equal(t, digits(5), f.dial.Display().Digits())
	assert.Equal(t, 0.0, f.dial.Rotation())

	f.advance(10 * time.Second)
	assert.Equal(t, digits(5), f.dial.Display().Digits())
}

func TestRotationIsMonotonicDuringDrag(t *testing.T) {
	f := newFixture(t, nil)
	require.True(t, f.dial.PointerDown(at(20)))

	path := []float64{30, 60, 50, 40, 90, 70, 100, 95, 20, 110}
	prev := 0.0
	for _, deg := range path {
		f.dial.PointerMove(at(deg))
		cur := f.dial.DragRotation()
		assert.GreaterOrEqual(t, cur, prev, "rotation decreased moving to %v", deg)
		prev = cur
	}
	assert.InDelta(t, 90, prev, 1e-9)
}

func TestPreviewFromClampedMax(t *testing.T) {
	f := newFixture(t, nil)
	require.True(t, f.dial.PointerDown(at(20)))

	f.dial.PointerMove(at(20 + 55))
	assert.Equal(t, Digit(1), f.dial.Display().Preview())

	// Moving back does not change the digit: the max still classifies as 1.
	f.dial.PointerMove(at(20 + 30))
	assert.Equal(t, Digit(1), f.dial.Display().Preview())

	f.dial.PointerMove(at(20 + 70))
	assert.Equal(t, NoDigit, f.dial.Display().Preview())
}

func TestReleaseWithoutRotationIsNoop(t *testing.T) {
	f := newFixture(t, nil)

	require.True(t, f.dial.PointerDown(at(40)))
	require.True(t, f.dial.PointerUp())

	assert.False(t, f.dial.Locked())
	assert.False(t, f.dial.Returning())
	assert.Equal(t, Idle, f.dial.Phase())
	assert.Equal(t, 0.0, f.dial.Rotation())
	assert.Equal(t, 0, f.dial.Display().Len())
	assert.Equal(t, 0, f.sched.Pending())
	assert.Empty(t, f.locks)

	// Backward-only movement leaves rotation at zero, so this is a no-op too.
	require.True(t, f.dial.PointerDown(at(90)))
	f.dial.PointerMove(at(60))
	require.True(t, f.dial.PointerUp())
	assert.Equal(t, 0, f.sched.Pending())
	assert.Empty(t, f.locks)
}

func TestPointerDownIgnoredWhileReturning(t *testing.T) {
	f := newFixture(t, nil)

	f.drag(t, 10, 85)
	start := f.dial.Tracker().StartDeg()
	require.True(t, f.dial.PointerUp())

	f.advance(300 * time.Millisecond)
	assert.False(t, f.dial.PointerDown(at(200)))
	assert.False(t, f.dial.PointerMove(at(300)))
	assert.False(t, f.dial.PointerUp())
	assert.Equal(t, start, f.dial.Tracker().StartDeg())
	assert.Equal(t, Returning, f.dial.Phase())

	f.advance(time.Second)
	assert.False(t, f.dial.Locked())
	assert.True(t, f.dial.PointerDown(at(200)))
	assert.InDelta(t, 200, f.dial.Tracker().StartDeg(), 1e-9)
}

func TestLockTogglesOncePerReturn(t *testing.T) {
	f := newFixture(t, nil)

	for i := 0; i < 3; i++ {
		f.drag(t, 10, 85)
		require.True(t, f.dial.PointerUp())
		f.advance(2 * time.Second)
	}
	assert.Equal(t, []bool{true, false, true, false, true, false}, f.locks)
	assert.Equal(t, 3, f.dial.Gate().Cycles())
	assert.Equal(t, digits(2, 2, 2), f.dial.Display().Digits())
}

func TestReleaseInDeadZoneCommitsNothing(t *testing.T) {
	f := newFixture(t, nil)

	f.drag(t, 10, 40)
	assert.Equal(t, NoDigit, f.dial.Display().Preview())
	require.True(t, f.dial.PointerUp())
	assert.True(t, f.dial.Locked())

	f.advance(400*time.Millisecond + DefaultSettle)
	assert.False(t, f.dial.Locked())
	assert.Equal(t, 0, f.dial.Display().Len())
	assert.Equal(t, 0.0, f.dial.Rotation())
}

func TestUndeterminedGeometry(t *testing.T) {
	mounted := false
	sched := clock.NewScheduler(clock.NewMock(epoch))
	d := New(Env{
		Locator: LocatorFunc(func() (float64, float64, bool) {
			return centerX, centerY, mounted
		}),
		Scheduler: sched,
	}, DefaultOptions())

	// Pointer-down engages with a start angle of zero.
	require.True(t, d.PointerDown(at(120)))
	assert.Equal(t, 0.0, d.Tracker().StartDeg())
	assert.True(t, d.Tracker().Engaged())

	// Moves are dropped until the dial has a position.
	assert.False(t, d.PointerMove(at(200)))
	assert.Equal(t, 0.0, d.DragRotation())

	mounted = true
	assert.True(t, d.PointerMove(at(85)))
	assert.InDelta(t, 85, d.DragRotation(), 1e-9)
	assert.Equal(t, Digit(2), d.Display().Preview())
}

func TestAnimatorReceivesReturn(t *testing.T) {
	var gotFrom float64
	var gotDur time.Duration
	calls := 0
	f := newFixture(t, AnimatorFunc(func(from float64, d time.Duration) error {
		calls++
		gotFrom, gotDur = from, d
		return nil
	}))

	f.drag(t, 10, 180)
	require.True(t, f.dial.PointerUp())

	assert.Equal(t, 1, calls)
	assert.InDelta(t, 180, gotFrom, 1e-9)
	assert.InDelta(t, 1.8, gotDur.Seconds(), 1e-6)
}

func TestFailingAnimatorStillUnlocks(t *testing.T) {
	f := newFixture(t, AnimatorFunc(func(float64, time.Duration) error {
		return errors.New("no renderer")
	}))

	f.drag(t, 10, 170)
	require.True(t, f.dial.PointerUp())
	assert.True(t, f.dial.Locked())

	f.advance(1700*time.Millisecond + DefaultSettle)
	assert.False(t, f.dial.Locked())
	assert.Equal(t, digits(5), f.dial.Display().Digits())
}

func TestRotationFollowsSpringDuringReturn(t *testing.T) {
	f := newFixture(t, nil)

	f.drag(t, 10, 100)
	require.True(t, f.dial.PointerUp())
	assert.InDelta(t, 100, f.dial.Rotation(), 1e-9)

	f.advance(500 * time.Millisecond)
	assert.InDelta(t, 50, f.dial.Rotation(), 1e-6)
	// Drag rotation holds its released value until completion.
	assert.InDelta(t, 100, f.dial.DragRotation(), 1e-9)

	f.advance(500 * time.Millisecond)
	assert.Equal(t, 0.0, f.dial.Rotation())
	assert.True(t, f.dial.Locked(), "still inside the settle margin")
	assert.InDelta(t, float64(100*time.Millisecond), float64(f.dial.Remaining()), float64(time.Microsecond))

	f.advance(100 * time.Millisecond)
	assert.False(t, f.dial.Locked())
	assert.Equal(t, time.Duration(0), f.dial.Remaining())
}

func TestPointerEventsWhileIdle(t *testing.T) {
	f := newFixture(t, nil)
	assert.False(t, f.dial.PointerMove(at(50)))
	assert.False(t, f.dial.PointerUp())
	assert.Equal(t, Idle, f.dial.Phase())
	assert.Empty(t, f.locks)
}

func TestSecondPointerDownDuringDragIgnored(t *testing.T) {
	f := newFixture(t, nil)
	require.True(t, f.dial.PointerDown(at(10)))
	start := f.dial.Tracker().StartDeg()
	assert.False(t, f.dial.PointerDown(at(100)))
	assert.Equal(t, start, f.dial.Tracker().StartDeg())
}
