package compose

import (
	"github.com/matzehuels/thumbkit/pkg/canvas"
	"github.com/matzehuels/thumbkit/pkg/flow"
	"github.com/matzehuels/thumbkit/pkg/measure"
	"github.com/matzehuels/thumbkit/pkg/scene"
)

// tagGroupOrder is the paint order of tag groups.
var tagGroupOrder = []flow.Position{flow.Top, flow.AboveHeading, flow.Bottom}

// tagGroupOf maps a tag position to its group. Tags only know top,
// above-heading and bottom; anything else joins the bottom group.
func tagGroupOf(p flow.Position) flow.Position {
	switch p {
	case flow.Top, flow.AboveHeading:
		return p
	default:
		return flow.Bottom
	}
}

// tags returns one frame per non-empty tag group.
func (b *builder) tags(stack flow.TextStack) []*scene.Node {
	if len(b.res.Tags) == 0 {
		return nil
	}
	groups := map[flow.Position][]canvas.Tag{}
	for _, t := range b.res.Tags {
		g := tagGroupOf(t.Position)
		groups[g] = append(groups[g], t)
	}

	var out []*scene.Node
	for _, pos := range tagGroupOrder {
		if tags := groups[pos]; len(tags) > 0 {
			out = append(out, b.tagGroup(pos, tags, stack))
		}
	}
	return out
}

func (b *builder) tagGroup(pos flow.Position, tags []canvas.Tag, stack flow.TextStack) *scene.Node {
	p := b.res.Preset
	pad := p.TagPadding

	nodes := make([]*scene.Node, len(tags))
	sizes := make([]flow.Size, len(tags))
	for i, t := range tags {
		label := b.measurer.Block(measure.Font{Family: canvas.FallbackFont, Weight: t.FontWeight, Size: t.FontSize}, t.Text, b.content.W)
		w, h := label.Width+2*pad, label.Height+2*pad
		sizes[i] = flow.Size{W: w, H: h}

		fill := b.color("tag fill", t.FillColor)
		tag := &scene.Node{
			Kind:         scene.KindFrame,
			Name:         scene.NameTag,
			Width:        w,
			Height:       h,
			Fill:         &fill,
			CornerRadius: t.CornerRadius(),
		}
		tag.Add(&scene.Node{
			Kind:   scene.KindText,
			Name:   t.Text,
			X:      pad,
			Y:      pad,
			Width:  label.Width,
			Height: label.Height,
			Text:   textOf(t.Text, canvas.FallbackFont, t.FontWeight, t.FontSize, b.color("tag text", t.TextColor), label),
		})
		nodes[i] = tag
	}

	packed := flow.Pack(flow.Point{}, b.content.W, p.TagSpacing, sizes)
	for i, pl := range packed.Placements {
		nodes[i].X, nodes[i].Y = pl.X, pl.Y
	}

	var y float64
	switch pos {
	case flow.Top:
		y = p.Region.MarginY
	case flow.AboveHeading:
		y = stack.Top - p.TagHeadingGap - packed.Height
	default:
		y = p.Region.Height - p.Region.MarginY - packed.Height
	}
	return scene.Frame(scene.NameTagGroup, b.content.X, y, packed.Width, packed.Height).Add(nodes...)
}
