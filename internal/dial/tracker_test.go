package dial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackerPhases(t *testing.T) {
	gate := &Gate{}
	tr := NewTracker(NewLayout(200), FixedCenter{X: centerX, Y: centerY}, gate)
	assert.Equal(t, Idle, tr.Phase())
	assert.False(t, tr.Engaged())

	require.True(t, tr.PointerDown(at(10)))
	assert.Equal(t, Dragging, tr.Phase())
	assert.True(t, tr.Engaged())
	assert.InDelta(t, 10, tr.StartDeg(), 1e-9)

	require.True(t, tr.PointerMove(at(180)))
	r, ok := tr.PointerUp()
	require.True(t, ok)
	assert.InDelta(t, 170, r.Deg, 1e-9)
	assert.Equal(t, Digit(5), r.Preview)

	// Released, but nothing is cleared until Reset.
	assert.Equal(t, Returning, tr.Phase())
	assert.True(t, tr.Engaged())
	assert.InDelta(t, 170, tr.Rotation(), 1e-9)
	assert.Equal(t, Digit(5), tr.Preview())

	_, ok = tr.PointerUp()
	assert.False(t, ok)

	tr.Reset()
	assert.Equal(t, Idle, tr.Phase())
	assert.False(t, tr.Engaged())
	assert.Equal(t, 0.0, tr.Rotation())
	assert.Equal(t, NoDigit, tr.Preview())
}

func TestTrackerRefusesDownWhileGateLocked(t *testing.T) {
	gate := &Gate{}
	tr := NewTracker(NewLayout(200), FixedCenter{X: centerX, Y: centerY}, gate)

	gate.lock()
	assert.False(t, tr.PointerDown(at(10)))
	assert.Equal(t, Idle, tr.Phase())
	assert.Equal(t, 0.0, tr.StartDeg())

	gate.unlock()
	assert.True(t, tr.PointerDown(at(10)))
}

func TestTrackerNilGate(t *testing.T) {
	tr := NewTracker(NewLayout(200), FixedCenter{}, nil)
	assert.True(t, tr.PointerDown(0, 10))
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "dragging", Dragging.String())
	assert.Equal(t, "returning", Returning.String())
	assert.Equal(t, "unknown", Phase(9).String())
}
