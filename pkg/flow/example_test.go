package flow_test

import (
	"fmt"

	"github.com/matzehuels/thumbkit/pkg/flow"
)

func ExamplePack() {
	items := []flow.Size{{W: 100, H: 40}, {W: 100, H: 40}, {W: 100, H: 40}}

	res := flow.Pack(flow.Point{}, 250, 10, items)
	for _, p := range res.Placements {
		fmt.Printf("(%g, %g) row %d\n", p.X, p.Y, p.Row)
	}
	fmt.Println("Size:", res.Width, "x", res.Height)
	// Output:
	// (0, 0) row 0
	// (110, 0) row 0
	// (0, 50) row 1
	// Size: 210 x 90
}

func ExampleAnchor() {
	fmt.Println(flow.Anchor(flow.Top, 1080, 120, 50))
	fmt.Println(flow.Anchor(flow.Bottom, 1080, 120, 50))
	fmt.Println(flow.Anchor(flow.Middle, 1080, 120, 50))
	// Output:
	// 120
	// 910
	// 515
}
