package dial

// Phase is the gesture tracker's state.
type Phase int

const (
	// Idle waits for a pointer-down.
	Idle Phase = iota
	// Dragging follows pointer moves and accumulates rotation.
	Dragging
	// Returning has handed the release to the spring and waits for Reset.
	Returning
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Returning:
		return "returning"
	default:
		return "unknown"
	}
}

// Release is the rotation and preview captured at pointer-up.
type Release struct {
	Deg     float64
	Preview Digit
}

// Tracker turns pointer events into a rotation and a previewed digit.
type Tracker struct {
	layout  *Layout
	locator Locator
	gate    *Gate

	phase    Phase
	engaged  bool
	startDeg float64
	current  float64
	preview  Digit
}

// NewTracker creates an idle tracker. Pointer-downs are refused while gate is locked.
func NewTracker(layout *Layout, locator Locator, gate *Gate) *Tracker {
	if gate == nil {
		gate = &Gate{}
	}
	return &Tracker{
		layout:  layout,
		locator: locator,
		gate:    gate,
		preview: NoDigit,
	}
}

// PointerDown starts a drag. It reports whether the event was accepted.
func (t *Tracker) PointerDown(x, y float64) bool {
	if t.phase != Idle || t.gate.Locked() {
		return false
	}
	start, ok := locate(t.locator, x, y)
	if !ok {
		start = 0
	}
	t.phase = Dragging
	t.engaged = true
	t.startDeg = start
	t.current = 0
	t.preview = NoDigit
	return true
}

// PointerMove updates the rotation. Rotation never decreases during a drag,
// and the preview is reclassified from the clamped value on every move.
func (t *Tracker) PointerMove(x, y float64) bool {
	if t.phase != Dragging {
		return false
	}
	deg, ok := locate(t.locator, x, y)
	if !ok {
		return false
	}
	live := deg - t.startDeg
	if live > t.current {
		t.current = live
	}
	t.preview = t.layout.Classify(t.current)
	return true
}

// PointerUp ends the drag and returns what should spring back. State is left
// in place until Reset.
func (t *Tracker) PointerUp() (Release, bool) {
	if t.phase != Dragging {
		return Release{}, false
	}
	t.phase = Returning
	return Release{Deg: t.current, Preview: t.preview}, true
}

// Reset returns the tracker to Idle with no rotation.
func (t *Tracker) Reset() {
	t.phase = Idle
	t.engaged = false
	t.current = 0
	t.preview = NoDigit
}

// Phase returns the current phase.
func (t *Tracker) Phase() Phase { return t.phase }

// Engaged reports whether a drag has started and not yet been reset.
func (t *Tracker) Engaged() bool { return t.engaged }

// StartDeg returns the pointer angle captured at the last accepted pointer-down.
func (t *Tracker) StartDeg() float64 { return t.startDeg }

// Rotation returns the accumulated rotation of the current drag.
func (t *Tracker) Rotation() float64 { return t.current }

// Preview returns the digit under the current rotation, or NoDigit.
func (t *Tracker) Preview() Digit { return t.preview }
