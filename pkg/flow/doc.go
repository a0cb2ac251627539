// Package flow packs fixed-size boxes into left-to-right rows.
//
// # Overview
//
// The engine takes an origin, a maximum row width, an inter-item spacing
// and an ordered list of item sizes, and returns the top-left offset of
// every item. Items advance the cursor by width+spacing; an item that would
// cross origin.X+maxWidth starts a new row below the tallest item of the row
// just closed. The first item of a row is always placed, so an item wider
// than maxWidth sits alone on its row rather than being dropped.
//
//	res := flow.Pack(flow.Point{X: 160, Y: 120}, 1600, 12, sizes)
//	for i, p := range res.Placements {
//	    fmt.Println(i, p.X, p.Y, p.Row)
//	}
//
// # Options
//
//   - [WithRowSpacing]: vertical gap between rows (defaults to spacing)
//   - [WithFixedRowHeight]: treat every row as this tall (single-height variant)
//   - [WithAlign]: vertical alignment of items inside their row
//
// # Vertical Anchors
//
// [Anchor] turns a named position (top, middle, bottom) into the y-origin
// of a stack of elements inside a canvas with a safe margin, and
// [StackText] places a heading/description pair with a fixed gap.
//
// Everything here is pure arithmetic. Negative sizes are a caller error and
// are not checked.
package flow
