// Package measure sizes text for layout.
//
// The layout engine works with boxes; this package turns strings into
// boxes. [OpenType] uses real font metrics from a [fonts.Registry];
// [Approx] uses a fixed per-character ratio and is handy for deterministic
// tests and previews.
package measure

import (
	"fmt"
	"strings"

	"github.com/matzehuels/thumbkit/pkg/flow"
)

// Font identifies a face at a size.
type Font struct {
	Family string
	Weight string
	Size   float64
}

// TextBlock is a wrapped, measured paragraph.
type TextBlock struct {
	Lines      []string
	Width      float64 // widest line
	Height     float64 // len(Lines) * LineHeight
	LineHeight float64
	Ascent     float64 // baseline offset of the first line
}

// Measurer measures single lines and wrapped blocks.
type Measurer interface {
	// Line measures text on one line; newlines are not interpreted.
	Line(f Font, text string) flow.Size
	// Block wraps text to width and measures the result.
	Block(f Font, text string, width float64) TextBlock
}

// Fingerprinter is implemented by measurers that can name the metrics
// they measure with. Equal fingerprints measure text identically.
type Fingerprinter interface {
	Fingerprint() string
}

// Fingerprint returns m's fingerprint, or its type name if m does not
// implement [Fingerprinter].
func Fingerprint(m Measurer) string {
	if f, ok := m.(Fingerprinter); ok {
		return f.Fingerprint()
	}
	return fmt.Sprintf("%T", m)
}

// wrap splits text into lines no wider than width according to advance.
// Explicit newlines always break; a word wider than width stands alone.
func wrap(text string, width float64, advance func(string) float64) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		cur := words[0]
		for _, w := range words[1:] {
			next := cur + " " + w
			if advance(next) > width {
				lines = append(lines, cur)
				cur = w
				continue
			}
			cur = next
		}
		lines = append(lines, cur)
	}
	return lines
}

func block(lines []string, lineHeight, ascent float64, advance func(string) float64) TextBlock {
	b := TextBlock{Lines: lines, LineHeight: lineHeight, Ascent: ascent}
	for _, l := range lines {
		b.Width = max(b.Width, advance(l))
	}
	b.Height = float64(len(lines)) * lineHeight
	return b
}
