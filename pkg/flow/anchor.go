package flow

// Position names a vertical placement preference.
type Position string

const (
	Top          Position = "top"
	Middle       Position = "middle"
	Bottom       Position = "bottom"
	AboveHeading Position = "above-heading"
)

// DefaultTextGap is the gap between heading and description.
const DefaultTextGap = 24.0

// Anchor returns the y-origin of a stack of the given height inside a
// canvas of canvasHeight with vertical safe margin marginY.
// Unrecognised positions are treated as [Bottom].
func Anchor(pos Position, canvasHeight, marginY, stackHeight float64) float64 {
	switch pos {
	case Top:
		return marginY
	case Middle:
		return (canvasHeight - stackHeight) / 2
	default:
		return canvasHeight - marginY - stackHeight
	}
}

// StackHeight sums the heights of present elements (height > 0) and adds
// gap between consecutive present elements.
func StackHeight(gap float64, heights ...float64) float64 {
	var total float64
	n := 0
	for _, h := range heights {
		if h <= 0 {
			continue
		}
		if n > 0 {
			total += gap
		}
		total += h
		n++
	}
	return total
}

// TextStack is the vertical placement of a heading and optional description.
type TextStack struct {
	HeadingY     float64
	DescriptionY float64 // meaningless when there is no description
	Top          float64 // topmost y of the stack
	Bottom       float64 // bottommost y of the stack
}

// StackText anchors a heading of headingH and an optional description of
// descH (0 means absent) according to headingPos, using gap between them.
// When descPos is [AboveHeading] the description comes first.
func StackText(headingPos, descPos Position, canvasHeight, marginY, headingH, descH, gap float64) TextStack {
	stackH := StackHeight(gap, headingH, descH)
	y := Anchor(headingPos, canvasHeight, marginY, stackH)

	s := TextStack{Top: y, Bottom: y + stackH}
	switch {
	case descH > 0 && descPos == AboveHeading:
		s.DescriptionY = y
		s.HeadingY = y + descH + gap
	case descH > 0:
		s.HeadingY = y
		s.DescriptionY = y + headingH + gap
	default:
		s.HeadingY = y
	}
	return s
}
