package flow

// Point is a position in canvas units.
type Point struct {
	X, Y float64
}

// Size is the intrinsic extent of an item to pack.
type Size struct {
	W, H float64
}

// Placement is the computed top-left corner of one item and the row it
// landed on (0-based).
type Placement struct {
	X, Y float64
	Row  int
}

// Line describes one packed row.
type Line struct {
	Y      float64 // top of the row
	Width  float64 // from origin.X to the right edge of the last item
	Height float64 // tallest item, or the fixed row height
	Count  int     // number of items on the row
}

// Result is the output of [Pack].
type Result struct {
	Placements []Placement
	Lines      []Line
	Width      float64 // widest row
	Height     float64 // from origin.Y to the bottom of the last row
}

// Align controls where an item sits vertically inside a taller row.
type Align int

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
)

// Option configures [Pack].
type Option func(*packer)

type packer struct {
	rowSpacing    float64
	hasRowSpacing bool
	fixedHeight   float64
	align         Align
}

// WithRowSpacing sets the vertical gap between rows. Without it the
// horizontal spacing is used.
func WithRowSpacing(s float64) Option {
	return func(p *packer) { p.rowSpacing, p.hasRowSpacing = s, true }
}

// WithFixedRowHeight makes every row exactly h tall regardless of item
// heights.
func WithFixedRowHeight(h float64) Option {
	return func(p *packer) { p.fixedHeight = h }
}

// WithAlign sets vertical alignment of items within their row.
func WithAlign(a Align) Option {
	return func(p *packer) { p.align = a }
}

// Pack lays items out in rows starting at origin. See the package
// documentation for the wrapping rule.
func Pack(origin Point, maxWidth, spacing float64, items []Size, opts ...Option) Result {
	p := packer{}
	for _, opt := range opts {
		opt(&p)
	}
	if !p.hasRowSpacing {
		p.rowSpacing = spacing
	}

	res := Result{Placements: make([]Placement, len(items))}
	if len(items) == 0 {
		return res
	}

	limit := origin.X + maxWidth
	x, y := origin.X, origin.Y
	row := Line{Y: y}
	rowStart := 0

	closeRow := func(end int) {
		if p.fixedHeight > 0 {
			row.Height = p.fixedHeight
		}
		p.alignRow(res.Placements[rowStart:end], items[rowStart:end], row.Height)
		res.Lines = append(res.Lines, row)
		res.Width = max(res.Width, row.Width)
	}

	for i, it := range items {
		if row.Count > 0 && x+it.W > limit {
			closeRow(i)
			x = origin.X
			y += row.Height + p.rowSpacing
			row = Line{Y: y}
			rowStart = i
		}

		res.Placements[i] = Placement{X: x, Y: y, Row: len(res.Lines)}
		row.Count++
		row.Height = max(row.Height, it.H)
		row.Width = x + it.W - origin.X
		x += it.W + spacing
	}
	closeRow(len(items))

	last := res.Lines[len(res.Lines)-1]
	res.Height = last.Y + last.Height - origin.Y
	return res
}

func (p packer) alignRow(ps []Placement, items []Size, height float64) {
	if p.align == AlignStart {
		return
	}
	for i := range ps {
		slack := height - items[i].H
		if p.align == AlignCenter {
			slack /= 2
		}
		ps[i].Y += slack
	}
}
