package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type pointerSource int

const (
	pointerNone pointerSource = iota
	pointerMouse
	pointerTouch
)

// pointer turns ebiten's mouse and touch state into one down/move/up stream.
// Only one pointer is followed at a time; the first touch wins over later ones.
type pointer struct {
	source   pointerSource
	touch    ebiten.TouchID
	touchIDs []ebiten.TouchID
	lastX    int
	lastY    int
}

// pointerSink receives the pointer stream. Down returns false when refused.
type pointerSink interface {
	PointerDown(x, y float64) bool
	PointerMove(x, y float64) bool
	PointerUp() bool
}

func (p *pointer) poll(sink pointerSink) {
	switch p.source {
	case pointerMouse:
		if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
			sink.PointerUp()
			p.source = pointerNone
			return
		}
		x, y := ebiten.CursorPosition()
		p.move(sink, x, y)
		return
	case pointerTouch:
		if inpututil.IsTouchJustReleased(p.touch) {
			sink.PointerUp()
			p.source = pointerNone
			return
		}
		x, y := ebiten.TouchPosition(p.touch)
		p.move(sink, x, y)
		return
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if sink.PointerDown(float64(x), float64(y)) {
			p.source = pointerMouse
			p.lastX, p.lastY = x, y
		}
		return
	}

	p.touchIDs = inpututil.AppendJustPressedTouchIDs(p.touchIDs[:0])
	if len(p.touchIDs) == 0 {
		return
	}
	id := p.touchIDs[0]
	x, y := ebiten.TouchPosition(id)
	if sink.PointerDown(float64(x), float64(y)) {
		p.source = pointerTouch
		p.touch = id
		p.lastX, p.lastY = x, y
	}
}

func (p *pointer) move(sink pointerSink, x, y int) {
	if x == p.lastX && y == p.lastY {
		return
	}
	p.lastX, p.lastY = x, y
	sink.PointerMove(float64(x), float64(y))
}
