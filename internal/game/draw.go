package game

import (
	"image/color"
	"math"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/rotary-dial/internal/config"
	"github.com/iburimskiy/rotary-dial/internal/dial"
)

const (
	glowDecay = 0.8

	// Debug font cell
	glyphW = 6
	glyphH = 16

	labelScale   = 2
	readoutScale = 5
)

var (
	backgroundColor = color.RGBA{R: 18, G: 20, B: 28, A: 255}
	plateColor      = color.RGBA{R: 34, G: 38, B: 48, A: 255}
	rimColor        = color.RGBA{R: 70, G: 78, B: 96, A: 255}
	capColor        = color.RGBA{R: 52, G: 58, B: 72, A: 255}
	stopColor       = color.RGBA{R: 68, G: 68, B: 68, A: 255}
	previewColor    = color.RGBA{R: 120, G: 210, B: 255, A: 255}
)

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	rot := g.dial.Rotation()
	g.drawReadout(screen)
	g.drawPlate(screen, rot)
	g.drawLabels(screen, rot)
	g.drawFingerStop(screen)
	g.drawStatus(screen)
}

// holeAt returns where slot s's hole is drawn with the dial turned by rot degrees.
func (g *Game) holeAt(s dial.Slot, rot float64) (float64, float64) {
	dx, dy := s.Position.Screen()
	dx, dy = rotate(dx, dy, rot)
	return g.cx + dx, g.cy + dy
}

func (g *Game) drawPlate(screen *ebiten.Image, rot float64) {
	r := float32(g.cfg.Dial.Radius)
	vector.DrawFilledCircle(screen, float32(g.cx), float32(g.cy), r, plateColor, true)
	vector.StrokeCircle(screen, float32(g.cx), float32(g.cy), r-1, 2, rimColor, true)

	preview := g.dial.Display().Preview()
	for _, s := range g.dial.Layout().Slots() {
		x, y := g.holeAt(s, rot)
		vector.DrawFilledCircle(screen, float32(x), float32(y), config.HoleSize, backgroundColor, true)
		if s.Digit == preview {
			vector.StrokeCircle(screen, float32(x), float32(y), config.HoleSize+3, 3, previewColor, true)
		}
	}

	capR := float32(g.cfg.Dial.HoleRadius - 2*config.HoleSize)
	if capR > 0 {
		vector.DrawFilledCircle(screen, float32(g.cx), float32(g.cy), capR, capColor, true)
	}
}

// drawLabels prints the numerals at their resting positions. A numeral shows
// only where a hole passes over it.
func (g *Game) drawLabels(screen *ebiten.Image, rot float64) {
	slots := g.dial.Layout().Slots()
	for _, s := range slots {
		lx, ly := g.holeAt(s, 0)

		var vis float64
		for _, h := range slots {
			hx, hy := g.holeAt(h, rot)
			vis = math.Max(vis, clamp01(1-math.Hypot(hx-lx, hy-ly)/config.HoleSize))
		}
		if vis <= 0 {
			continue
		}

		r, gg, b := hsvToRgb(float64(s.Digit)*36, 0.35, 1)
		clr := color.RGBA{R: r, G: gg, B: b, A: 255}
		w := glyphW * labelScale
		g.drawDigits(screen, s.Digit.String(), lx-float64(w)/2, ly-glyphH*labelScale/2, labelScale, clr, float32(vis))
	}
}

func (g *Game) drawFingerStop(screen *ebiten.Image) {
	clr := stopColor
	if g.sound != nil {
		boost := uint8(187 * clamp01(g.sound.level()*6))
		clr = color.RGBA{R: stopColor.R + boost, G: stopColor.G + boost/2, B: stopColor.B, A: 255}
	}
	h := float32(config.FingerStopSize)
	vector.DrawFilledRect(screen, float32(g.cx), float32(g.cy)-h/2, config.FingerStopLen, h, clr, true)
}

func (g *Game) drawReadout(screen *ebiten.Image) {
	seq := g.dial.Display().String()
	preview := g.dial.Display().Preview().String()

	maxCells := int(float64(g.cfg.Window.Width)/float64(glyphW*readoutScale)) - 1
	if maxCells < 1 {
		maxCells = 1
	}
	// keep the tail of long sequences on screen
	if n := len(seq) + len(preview); n > maxCells {
		drop := n - maxCells
		if drop > len(seq) {
			drop = len(seq)
		}
		seq = seq[drop:]
	}

	y := 28.0
	x := 12.0
	white := color.RGBA{R: 235, G: 235, B: 235, A: 255}
	g.drawDigits(screen, seq, x, y, readoutScale, white, 1)
	x += float64(len(seq) * glyphW * readoutScale)
	g.drawDigits(screen, preview, x, y, readoutScale, previewColor, 1)
}

func (g *Game) drawStatus(screen *ebiten.Image) {
	var status string
	switch {
	case g.dial.Returning():
		status = "Returning - unlocks in " + formatRemaining(g.dial.Remaining())
	case g.dial.Phase() == dial.Dragging:
		status = "Dragging " + strconv.FormatFloat(g.dial.DragRotation(), 'f', 0, 64) + " deg"
	default:
		status = "Drag a hole clockwise to the finger stop"
	}
	if g.muted {
		status += " | muted"
	}
	if g.notice != "" {
		status += " | " + g.notice
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 8)
}

// drawDigits draws s with the debug font scaled up and tinted.
func (g *Game) drawDigits(dst *ebiten.Image, s string, x, y, scale float64, clr color.Color, alpha float32) {
	if s == "" {
		return
	}
	if g.glyphs == nil {
		g.glyphs = make(map[rune]*ebiten.Image)
	}
	for i, r := range s {
		img, ok := g.glyphs[r]
		if !ok {
			img = ebiten.NewImage(glyphW, glyphH)
			ebitenutil.DebugPrint(img, string(r))
			g.glyphs[r] = img
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(x+float64(i*glyphW)*scale, y)
		op.ColorScale.ScaleWithColor(clr)
		op.ColorScale.ScaleAlpha(alpha)
		op.Filter = ebiten.FilterNearest
		dst.DrawImage(img, op)
	}
}
