// Package audio synthesises the ratchet clicks a rotary dial makes on its way
// back to rest.
package audio

import (
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/faiface/beep"
)

// SlotDeg is the travel between two ratchet clicks.
const SlotDeg = 30

// ErrNoPlayer is returned by Animate when no output is attached.
var ErrNoPlayer = errors.New("audio: no player")

// Player starts playback of a streamer. The game passes speaker.Play.
type Player func(s beep.Streamer)

// Ratchet clicks once per slot of travel during the return.
type Ratchet struct {
	sr       beep.SampleRate
	clickLen int
	play     Player
	tap      *Tap
	rng      *rand.Rand
}

// NewRatchet creates a ratchet rendering at sr with clicks of length click.
// play may be nil; Animate then reports ErrNoPlayer.
func NewRatchet(sr beep.SampleRate, click time.Duration, play Player, tap *Tap) *Ratchet {
	n := sr.N(click)
	if n < 1 {
		n = 1
	}
	return &Ratchet{
		sr:       sr,
		clickLen: n,
		play:     play,
		tap:      tap,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Animate plays the click train for a return from fromDeg lasting d.
func (r *Ratchet) Animate(fromDeg float64, d time.Duration) error {
	if r.play == nil {
		return ErrNoPlayer
	}
	s, _ := r.Train(fromDeg, d)
	if s == nil {
		return nil
	}
	if r.tap != nil {
		s = r.tap.Wrap(s)
	}
	r.play(s)
	return nil
}

// Train returns the click train for a return and its length in samples.
// The streamer is nil when the travel is shorter than one slot.
func (r *Ratchet) Train(fromDeg float64, d time.Duration) (beep.Streamer, int) {
	offsets := ClickPlan(fromDeg, d)
	if len(offsets) == 0 {
		return nil, 0
	}

	var parts []beep.Streamer
	pos := 0
	for _, off := range offsets {
		at := r.sr.N(off)
		if at < pos {
			at = pos
		}
		if gap := at - pos; gap > 0 {
			parts = append(parts, beep.Silence(gap))
		}
		parts = append(parts, click(r.clickLen, r.rng))
		pos = at + r.clickLen
	}
	return beep.Seq(parts...), pos
}

// ClickPlan returns when each click sounds, measured from the start of the
// return. A click falls each time another SlotDeg of travel has passed the
// finger stop, so the last one lands at d when fromDeg is a whole number of slots.
func ClickPlan(fromDeg float64, d time.Duration) []time.Duration {
	if fromDeg < SlotDeg || d <= 0 {
		return nil
	}
	n := int(fromDeg / SlotDeg)
	out := make([]time.Duration, n)
	for k := 1; k <= n; k++ {
		out[k-1] = time.Duration(float64(d) * float64(k*SlotDeg) / fromDeg)
	}
	return out
}

// click is a short burst of noise with an exponential envelope.
func click(n int, rng *rand.Rand) beep.Streamer {
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= n {
			return 0, false
		}
		i := 0
		for ; i < len(samples) && pos < n; i++ {
			env := math.Exp(-5 * float64(pos) / float64(n))
			v := (rng.Float64()*2 - 1) * env * 0.8
			samples[i][0], samples[i][1] = v, v
			pos++
		}
		return i, true
	})
}
