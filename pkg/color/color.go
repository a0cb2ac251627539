// Package color parses the hex colour strings used in thumbnail styles.
//
// Colours are carried through the scene tree as normalised RGB triples in
// [0,1], which is what host document APIs expect. Parsing never fails: a
// string that is not a six-digit hex colour becomes black, matching the
// behaviour clients already depend on.
package color

import (
	"fmt"
	"image/color"
	"regexp"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var hexPattern = regexp.MustCompile(`(?i)^#?([a-f\d]{2})([a-f\d]{2})([a-f\d]{2})$`)

// RGB is a colour with channels normalised to [0,1].
type RGB struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// Common colours.
var (
	Black       = RGB{0, 0, 0}
	White       = RGB{1, 1, 1}
	Placeholder = RGB{0.8, 0.8, 0.8}
)

// ParseHex converts "#RRGGBB" (case-insensitive, leading # optional) to RGB.
// Anything else yields Black.
func ParseHex(s string) RGB {
	c, ok := parse(s)
	if !ok {
		return Black
	}
	return c
}

// Valid reports whether s is a well-formed hex colour.
func Valid(s string) bool {
	_, ok := parse(s)
	return ok
}

func parse(s string) (RGB, bool) {
	m := hexPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return RGB{}, false
	}
	c, err := colorful.Hex("#" + strings.ToLower(m[1]+m[2]+m[3]))
	if err != nil {
		return RGB{}, false
	}
	return RGB{R: c.R, G: c.G, B: c.B}, true
}

// Hex returns the colour as a lowercase "#rrggbb" string.
func (c RGB) Hex() string {
	return c.colorful().Clamped().Hex()
}

// NRGBA converts the colour to an opaque image/color value.
func (c RGB) NRGBA() color.NRGBA {
	r, g, b := c.colorful().Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

// String implements fmt.Stringer.
func (c RGB) String() string {
	return fmt.Sprintf("rgb(%.3f, %.3f, %.3f)", c.R, c.G, c.B)
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}
