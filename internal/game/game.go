// Package game hosts the rotary dial in an ebiten window.
package game

import (
	"errors"
	"io"
	"log"
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/rotary-dial/internal/clock"
	"github.com/iburimskiy/rotary-dial/internal/config"
	"github.com/iburimskiy/rotary-dial/internal/dial"
)

const tps = 60

// Options are the window's runtime switches.
type Options struct {
	Mute bool
	// Logger receives dial transitions. Nil discards them.
	Logger *log.Logger
}

// Game is the ebiten.Game driving one dial.
type Game struct {
	cfg    config.Config
	logger *log.Logger

	dial    *dial.Dial
	pointer pointer
	sound   *sound

	// dial centre, set on first Layout
	cx, cy  float64
	mounted bool

	glyphs map[rune]*ebiten.Image

	muted   bool
	notice  string
	lastErr error
}

// New builds the window state. Audio failures are logged and the dial runs silent.
func New(cfg config.Config, opts Options) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	g := &Game{cfg: cfg, logger: logger, muted: opts.Mute}

	var animator dial.Animator
	if cfg.Audio.Enabled {
		s, err := newSound(cfg.Audio)
		if err != nil {
			logger.Printf("audio disabled: %v", err)
		} else {
			g.sound = s
			animator = s.ratchet
			if opts.Mute {
				s.toggleMute()
			}
		}
	}

	g.dial = dial.New(dial.Env{
		Locator:   dial.LocatorFunc(g.center),
		Scheduler: clock.NewScheduler(clock.Real{}),
		Animator:  animator,
		Logger:    logger,
		OnLock:    g.onLock,
	}, dial.Options{
		Radius:      cfg.Dial.HoleRadius,
		ReturnSpeed: cfg.Dial.ReturnSpeed,
		Settle:      time.Duration(cfg.Dial.SettleMs) * time.Millisecond,
	})
	return g, nil
}

// Run opens the window and blocks until it closes.
func (g *Game) Run() error {
	ebiten.SetWindowSize(g.cfg.Window.Width, g.cfg.Window.Height)
	ebiten.SetWindowTitle(g.cfg.Window.Title)
	ebiten.SetTPS(tps)
	defer g.close()

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// Dial returns the dial the window drives.
func (g *Game) Dial() *dial.Dial { return g.dial }

func (g *Game) center() (float64, float64, bool) {
	return g.cx, g.cy, g.mounted
}

func (g *Game) onLock(locked bool) {
	if locked {
		ebiten.SetCursorShape(ebiten.CursorShapeNotAllowed)
		return
	}
	ebiten.SetCursorShape(ebiten.CursorShapeDefault)
}

func (g *Game) Update() error {
	// Completion of a return runs first so a press on the same frame sees the unlock.
	g.dial.Update()
	g.pointer.poll(g.dial)

	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copySequence()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) && g.sound != nil {
		g.muted = g.sound.toggleMute()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	if g.sound != nil {
		g.sound.tap.Decay(glowDecay)
	}
	return nil
}

func (g *Game) copySequence() {
	seq := g.dial.Display().String()
	if seq == "" {
		g.notice = "nothing to copy"
		return
	}
	if err := clipboard.WriteAll(seq); err != nil {
		g.lastErr = err
		g.logger.Printf("copy to clipboard: %v", err)
		return
	}
	g.lastErr = nil
	g.notice = "copied " + seq
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.cfg.Window.Width, g.cfg.Window.Height
	g.cx = float64(w) / 2
	g.cy = float64(h) - g.cfg.Dial.Radius
	g.mounted = true
	return w, h
}

func (g *Game) close() {
	if g.sound != nil {
		g.sound.close()
	}
}
