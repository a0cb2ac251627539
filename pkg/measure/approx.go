package measure

import (
	"unicode/utf8"

	"github.com/matzehuels/thumbkit/pkg/flow"
)

// Approximation ratios relative to font size.
const (
	ApproxCharWidth  = 0.55
	ApproxLineHeight = 1.2
	ApproxAscent     = 0.9
)

// Approx estimates text extents from rune counts.
type Approx struct{}

func (Approx) advance(size float64) func(string) float64 {
	w := size * ApproxCharWidth
	return func(s string) float64 {
		return float64(utf8.RuneCountInString(s)) * w
	}
}

// Fingerprint implements [Fingerprinter].
func (Approx) Fingerprint() string { return "approx" }

// Line implements [Measurer].
func (a Approx) Line(f Font, text string) flow.Size {
	return flow.Size{W: a.advance(f.Size)(text), H: f.Size * ApproxLineHeight}
}

// Block implements [Measurer].
func (a Approx) Block(f Font, text string, width float64) TextBlock {
	adv := a.advance(f.Size)
	return block(wrap(text, width, adv), f.Size*ApproxLineHeight, f.Size*ApproxAscent, adv)
}
