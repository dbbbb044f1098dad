// Package headless dials a number with synthetic pointer events, without a
// window. It drives the same dial.Dial the window does.
package headless

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iburimskiy/rotary-dial/internal/dial"
)

const (
	// startDeg is where every synthetic drag grabs the dial.
	startDeg = 10
	// grabReach is how far from the centre the synthetic pointer sits.
	grabReach = 150
)

// ErrTickLimit is returned when the script has not finished within Config.Ticks.
var ErrTickLimit = errors.New("headless: tick limit reached")

// Config controls the headless runner.
type Config struct {
	Hz      int
	Ticks   uint64  // stop after N ticks (0 = no limit)
	DegTick float64 // drag speed, degrees per tick
}

func (c Config) withDefaults() Config {
	if c.Hz <= 0 {
		c.Hz = 60
	}
	if c.DegTick <= 0 {
		c.DegTick = 12
	}
	return c
}

// ParseNumber reads a digit string. Spaces, dashes, dots and parentheses are
// skipped; anything else is an error.
func ParseNumber(s string) ([]dial.Digit, error) {
	var out []dial.Digit
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			out = append(out, dial.Digit(r-'0'))
		case strings.ContainsRune(" -.()", r):
		default:
			return nil, fmt.Errorf("invalid character %q at %d", r, i)
		}
	}
	if len(out) == 0 {
		return nil, errors.New("no digits to dial")
	}
	return out, nil
}

// Rotation returns the drag that selects d: the middle of its accept range.
func Rotation(d dial.Digit) float64 {
	return float64(int(d)*dial.SlotGap) + 25
}

// Script walks a dial through one drag per digit.
type Script struct {
	d      *dial.Dial
	cx, cy float64
	step   float64
	digits []dial.Digit

	next     int
	dragging bool
	target   float64
	at       float64
}

// NewScript prepares to dial digits on d, whose centre is at (cx, cy).
func NewScript(d *dial.Dial, cx, cy float64, digits []dial.Digit, degPerTick float64) *Script {
	if degPerTick <= 0 {
		degPerTick = Config{}.withDefaults().DegTick
	}
	return &Script{d: d, cx: cx, cy: cy, step: degPerTick, digits: digits}
}

// Done reports whether every digit has been dialed and the dial is at rest.
func (s *Script) Done() bool {
	return s.next >= len(s.digits) && !s.dragging && s.d.Phase() == dial.Idle
}

// Tick runs due dial work, then advances the script by one step.
func (s *Script) Tick() {
	s.d.Update()

	if s.dragging {
		s.at += s.step
		if s.at > s.target {
			s.at = s.target
		}
		s.d.PointerMove(s.pointer(startDeg + s.at))
		if s.at >= s.target {
			s.d.PointerUp()
			s.dragging = false
		}
		return
	}

	if s.next >= len(s.digits) || s.d.Phase() != dial.Idle || s.d.Locked() {
		return
	}
	if s.d.PointerDown(s.pointer(startDeg)) {
		s.target = Rotation(s.digits[s.next])
		s.at = 0
		s.dragging = true
		s.next++
	}
}

func (s *Script) pointer(deg float64) (float64, float64) {
	return dial.PointerAt(deg, grabReach, s.cx, s.cy)
}

// Run ticks the script on a real ticker until it finishes or ctx is done.
func Run(ctx context.Context, s *Script, cfg Config) error {
	cfg = cfg.withDefaults()

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			s.Tick()
			if s.Done() {
				return nil
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return ErrTickLimit
			}
		}
	}
}
