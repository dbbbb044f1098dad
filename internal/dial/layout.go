package dial

import (
	"math"
	"strconv"
)

const (
	// SlotCount is the number of digit slots on the dial.
	SlotCount = 10
	// SlotGap is the angular spacing between adjacent slots, in degrees.
	SlotGap = 30

	// slotOffset puts digit 0's hole four slots round from 3 o'clock.
	slotOffset = 4

	acceptLow  = 15
	acceptHigh = 35
)

// Digit is a dialable digit. NoDigit marks the absence of one.
type Digit int

// NoDigit is returned when an angle falls outside every slot.
const NoDigit Digit = -1

// Valid reports whether d is 0..9.
func (d Digit) Valid() bool { return d >= 0 && d <= 9 }

func (d Digit) String() string {
	if !d.Valid() {
		return ""
	}
	return strconv.Itoa(int(d))
}

// Range is an open interval of rotation, in degrees. Both ends are excluded.
type Range struct {
	Low, High float64
}

// Contains reports whether Low < deg < High.
func (r Range) Contains(deg float64) bool {
	return deg > r.Low && deg < r.High
}

// Slot is one digit's hole position and the rotation that selects it.
type Slot struct {
	Digit    Digit
	Position Point
	Accept   Range
}

// Layout is the fixed slot table. It is never modified after NewLayout.
type Layout struct {
	radius float64
	slots  [SlotCount]Slot
}

// NewLayout builds the ten slots with holes at the given radius.
func NewLayout(radius float64) *Layout {
	l := &Layout{radius: radius}
	gap := math.Pi / 6
	for i := range l.slots {
		l.slots[i] = Slot{
			Digit:    Digit(i),
			Position: PolarToCartesian(float64(i+slotOffset)*gap, radius),
			Accept: Range{
				Low:  float64(i*SlotGap + acceptLow),
				High: float64(i*SlotGap + acceptHigh),
			},
		}
	}
	return l
}

// Radius returns the hole radius the layout was built with.
func (l *Layout) Radius() float64 { return l.radius }

// Slots returns a copy of the slot table ordered by digit.
func (l *Layout) Slots() []Slot {
	out := make([]Slot, len(l.slots))
	copy(out, l.slots[:])
	return out
}

// Classify returns the digit whose range contains deg, or NoDigit.
func (l *Layout) Classify(deg float64) Digit {
	for _, s := range l.slots {
		if s.Accept.Contains(deg) {
			return s.Digit
		}
	}
	return NoDigit
}
