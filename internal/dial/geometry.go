package dial

import "math"

// Point is a cartesian offset from the dial centre.
type Point struct {
	X, Y float64
}

// Screen returns the point as a screen offset (dx, dy). The layout keeps X on
// the vertical axis and Y on the horizontal one, so the two are swapped here.
func (p Point) Screen() (dx, dy float64) {
	return p.Y, p.X
}

// Locator reports the dial centre in screen coordinates. ok is false while the
// dial has no on-screen position yet.
type Locator interface {
	Center() (x, y float64, ok bool)
}

// LocatorFunc adapts a function to Locator.
type LocatorFunc func() (x, y float64, ok bool)

// Center calls f.
func (f LocatorFunc) Center() (x, y float64, ok bool) { return f() }

// FixedCenter is a Locator that always reports the same centre.
type FixedCenter struct {
	X, Y float64
}

// Center returns the fixed centre.
func (c FixedCenter) Center() (x, y float64, ok bool) { return c.X, c.Y, true }

// PolarToCartesian converts an angle in radians and a radius to a point.
func PolarToCartesian(angle, radius float64) Point {
	return Point{
		X: math.Cos(angle) * radius,
		Y: math.Sin(angle) * radius,
	}
}

// PointerAngle returns the pointer's angle around (cx, cy) in degrees, in [0,360).
// Zero is at 3 o'clock and the angle grows clockwise on screen. The atan2
// arguments are (dx, dy), not (dy, dx); slot ranges are defined in this frame.
func PointerAngle(px, py, cx, cy float64) float64 {
	dx := px - cx
	dy := py - cy

	d := math.Atan2(dx, dy)*-180/math.Pi + 90
	if d < 0 {
		d += 360
	}
	// -1e-15 + 360 rounds to 360.
	if d >= 360 {
		d -= 360
	}
	return d
}

// PointerAt returns the screen position at angle deg and distance radius from
// (cx, cy), in the frame PointerAngle measures.
func PointerAt(deg, radius, cx, cy float64) (x, y float64) {
	phi := (90 - deg) * math.Pi / 180
	return cx + math.Sin(phi)*radius, cy + math.Cos(phi)*radius
}

// locate measures the pointer angle against the Locator's centre.
func locate(l Locator, px, py float64) (float64, bool) {
	if l == nil {
		return 0, false
	}
	cx, cy, ok := l.Center()
	if !ok {
		return 0, false
	}
	return PointerAngle(px, py, cx, cy), true
}
