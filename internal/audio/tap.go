package audio

import (
	"math"
	"sync"

	"github.com/faiface/beep"
)

// Tap wraps a beep.Streamer and keeps the last N samples in a ring buffer so
// the renderer can light the finger stop while the ratchet clicks.
type Tap struct {
	Source    beep.Streamer
	buffer    [][2]float64
	nextIndex int
	mu        sync.RWMutex
}

// NewTap creates a tap with room for ringSize samples and no source.
func NewTap(ringSize int) *Tap {
	if ringSize <= 0 {
		ringSize = 1
	}
	return &Tap{buffer: make([][2]float64, ringSize)}
}

// Wrap routes src through the tap.
func (t *Tap) Wrap(src beep.Streamer) beep.Streamer {
	return &tapped{tap: t, src: src}
}

type tapped struct {
	tap *Tap
	src beep.Streamer
}

func (s *tapped) Stream(samples [][2]float64) (int, bool) {
	n, ok := s.src.Stream(samples)
	if n > 0 {
		s.tap.record(samples[:n])
	}
	return n, ok
}

func (s *tapped) Err() error { return s.src.Err() }

func (t *Tap) record(samples [][2]float64) {
	t.mu.Lock()
	for _, smp := range samples {
		t.buffer[t.nextIndex] = smp
		t.nextIndex++
		if t.nextIndex >= len(t.buffer) {
			t.nextIndex = 0
		}
	}
	t.mu.Unlock()
}

// Decay fades the recorded samples toward silence. The renderer calls it once
// per frame so the glow dies out after the last click.
func (t *Tap) Decay(factor float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.buffer {
		t.buffer[i][0] *= factor
		t.buffer[i][1] *= factor
	}
}

// Snapshot returns up to the last n samples, most recent last.
func (t *Tap) Snapshot(n int) [][2]float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if n > len(t.buffer) {
		n = len(t.buffer)
	}
	out := make([][2]float64, 0, n)
	idx := t.nextIndex - 1
	if idx < 0 {
		idx = len(t.buffer) - 1
	}
	for i := 0; i < n; i++ {
		out = append(out, t.buffer[idx])
		idx--
		if idx < 0 {
			idx = len(t.buffer) - 1
		}
	}
	// chronological order
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Level returns the RMS of the buffered samples, mixed to mono.
func (t *Tap) Level() float64 {
	samples := t.Snapshot(len(t.buffer))
	if len(samples) == 0 {
		return 0
	}
	var sumSquares float64
	for _, s := range samples {
		mono := (s[0] + s[1]) * 0.5
		sumSquares += mono * mono
	}
	return math.Sqrt(sumSquares / float64(len(samples)))
}
