package game

import (
	"fmt"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"

	"github.com/iburimskiy/rotary-dial/internal/audio"
	"github.com/iburimskiy/rotary-dial/internal/config"
)

// sound owns the speaker. Clicks are added to a mixer that plays for the
// lifetime of the window.
type sound struct {
	mixer   *beep.Mixer
	volume  *effects.Volume
	tap     *audio.Tap
	ratchet *audio.Ratchet
}

func newSound(cfg config.Audio) (*sound, error) {
	sr := beep.SampleRate(cfg.SampleRate)
	bufferSize := sr.N(time.Second / 20)
	if err := speaker.Init(sr, bufferSize); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}

	s := &sound{
		mixer: &beep.Mixer{},
		tap:   audio.NewTap(config.LevelWindow),
	}
	s.volume = &effects.Volume{
		Streamer: s.mixer,
		Base:     2,
		Volume:   cfg.Volume,
	}
	s.ratchet = audio.NewRatchet(sr, time.Duration(cfg.ClickMs)*time.Millisecond, s.play, s.tap)

	speaker.Play(s.volume)
	return s, nil
}

func (s *sound) play(st beep.Streamer) {
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

func (s *sound) toggleMute() bool {
	speaker.Lock()
	s.volume.Silent = !s.volume.Silent
	muted := s.volume.Silent
	speaker.Unlock()
	return muted
}

func (s *sound) level() float64 {
	return s.tap.Level()
}

func (s *sound) close() {
	speaker.Lock()
	speaker.Clear()
	speaker.Unlock()
}
