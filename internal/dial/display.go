package dial

import "strings"

// Display holds the committed digits and the digit previewed by the current drag.
type Display struct {
	digits  []Digit
	preview Digit
}

// NewDisplay returns an empty display with no preview.
func NewDisplay() *Display {
	return &Display{preview: NoDigit}
}

// Append commits d to the end of the sequence. Invalid digits are dropped.
func (d *Display) Append(digit Digit) {
	if !digit.Valid() {
		return
	}
	d.digits = append(d.digits, digit)
}

// SetPreview replaces the transient preview. NoDigit clears it.
func (d *Display) SetPreview(digit Digit) {
	if !digit.Valid() {
		digit = NoDigit
	}
	d.preview = digit
}

// Preview returns the previewed digit or NoDigit.
func (d *Display) Preview() Digit { return d.preview }

// Digits returns a copy of the committed sequence.
func (d *Display) Digits() []Digit {
	out := make([]Digit, len(d.digits))
	copy(out, d.digits)
	return out
}

// Len returns the number of committed digits.
func (d *Display) Len() int { return len(d.digits) }

// String renders the committed digits without the preview.
func (d *Display) String() string {
	var b strings.Builder
	for _, digit := range d.digits {
		b.WriteString(digit.String())
	}
	return b.String()
}
